package format

import (
	"errors"
	"fmt"

	"github.com/reoring/jsonmodel"
)

// ErrTooLarge is returned by Limit when a payload exceeds MaxDecode.
var ErrTooLarge = errors.New("format: payload too large")

// Limit wraps another codec to enforce a maximum allowed payload size at
// Decode time. Encode is forwarded to Inner unchanged. If MaxDecode <= 0,
// size limiting is disabled.
type Limit struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner     Codec
	MaxDecode int
}

func (c Limit) Name() string { return c.Inner.Name() }

func (c Limit) Encode(v jsonmodel.Value) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit) Decode(b []byte) (jsonmodel.Value, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return jsonmodel.Value{}, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}

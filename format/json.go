package format

import (
	"fmt"

	"github.com/reoring/jsonmodel"
)

// JSON returns the codec backed by the active jsonmodel JSON driver.
// Decoding honours opts like jsonmodel.Parse.
func JSON(opts ...jsonmodel.ParseOpt) Codec { return jsonCodec{opts: opts} }

type jsonCodec struct{ opts []jsonmodel.ParseOpt }

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Encode(v jsonmodel.Value) ([]byte, error) {
	b, err := jsonmodel.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("format: json encode: %w", err)
	}
	return b, nil
}

func (c jsonCodec) Decode(b []byte) (jsonmodel.Value, error) {
	return jsonmodel.Parse(b, c.opts...)
}

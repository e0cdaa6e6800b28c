package format

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/reoring/jsonmodel"
)

// CBOR serializes Value trees with fxamacker/cbor. The zero value is NOT
// ready to use. Construct with NewCBOR or MustCBOR.
//
// Maps decode with arbitrary key types but only text keys are accepted when
// converting to a Value. Byte strings become base64 text, bignums keep their
// digits and time tags become RFC3339Nano strings.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR constructs a CBOR codec.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions (smaller/faster defaults).
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{BigIntDec: cbor.BigIntDecodePointer}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error. Handy for package-level
// variables in tests and examples.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (CBOR) Name() string { return "cbor" }

// Encode encodes v as CBOR using the configured EncMode.
func (c CBOR) Encode(v jsonmodel.Value) ([]byte, error) {
	b, err := c.enc.Marshal(v.ToAny())
	if err != nil {
		return nil, fmt.Errorf("format: cbor encode: %w", err)
	}
	return b, nil
}

// Decode decodes b using the configured DecMode.
func (c CBOR) Decode(b []byte) (jsonmodel.Value, error) {
	var x any
	if err := c.dec.Unmarshal(b, &x); err != nil {
		return jsonmodel.Value{}, fmt.Errorf("format: cbor decode: %w", err)
	}
	return jsonmodel.FromAny(x)
}

package format

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/jsonmodel"
)

// Msgpack returns the vmihailenco/msgpack/v5 codec. Map keys are written
// sorted so equal values encode to equal bytes.
func Msgpack() Codec { return msgpackCodec{} }

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }

func (msgpackCodec) Encode(v jsonmodel.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v.ToAny()); err != nil {
		return nil, fmt.Errorf("format: msgpack encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Decode(b []byte) (jsonmodel.Value, error) {
	var x any
	if err := msgpack.Unmarshal(b, &x); err != nil {
		return jsonmodel.Value{}, fmt.Errorf("format: msgpack decode: %w", err)
	}
	return jsonmodel.FromAny(x)
}

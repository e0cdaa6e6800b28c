// Package format converts jsonmodel values to and from wire formats other
// than JSON text: YAML, CBOR, MessagePack and protobuf structpb messages.
//
// Every codec produces and consumes jsonmodel.Value trees, so models decode
// the same way regardless of where the bytes came from.
package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reoring/jsonmodel"
)

// Codec encodes/decodes Value trees to []byte.
type Codec interface {
	Name() string
	Encode(v jsonmodel.Value) ([]byte, error)
	Decode(b []byte) (jsonmodel.Value, error)
}

// Names lists the names ByName accepts, in a stable order.
var Names = []string{"json", "yaml", "cbor", "msgpack", "protobuf"}

// ByName returns the codec registered under name. "yml" and "pb" are accepted
// as aliases.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON(), nil
	case "yaml", "yml":
		return YAML(), nil
	case "cbor":
		return NewCBOR(true)
	case "msgpack", "mpk":
		return Msgpack(), nil
	case "protobuf", "pb":
		return Protobuf(), nil
	}
	return nil, fmt.Errorf("format: unknown format %q (want one of %s)", name, strings.Join(Names, ", "))
}

// ForPath picks a codec from the file extension of path, falling back to def
// when the extension is unknown.
func ForPath(path, def string) (Codec, error) {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		if c, err := ByName(ext); err == nil {
			return c, nil
		}
	}
	return ByName(def)
}

// DecodeModel decodes b with c and then builds a T with dec.
func DecodeModel[T any](c Codec, dec jsonmodel.Decoder[T], b []byte) (T, error) {
	v, err := c.Decode(b)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Decode(v)
}

// EncodeModel renders v with enc and then encodes the tree with c.
func EncodeModel[T any](c Codec, enc jsonmodel.Encoder[T], v T) ([]byte, error) {
	return c.Encode(enc.Encode(v))
}

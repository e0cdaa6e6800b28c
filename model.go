package jsonmodel

// Encodable is implemented by anything that can render itself as a Value:
// Value, Object, and model types that choose to.
type Encodable interface {
	JSONValue() Value
}

// Encoded adapts a typed value to Encodable through enc.
func Encoded[T any](v T, enc Encoder[T]) Encodable { return enc.Encode(v) }

// EncodedOptional is Encoded for optional fields: a nil pointer yields a nil
// Encodable, which Build emits as null.
func EncodedOptional[T any](p *T, enc Encoder[T]) Encodable {
	if p == nil {
		return nil
	}
	return enc.Encode(*p)
}

// Model builds the codec of a model type from its decode constructor and its
// encode function.
//
// Decoding demands an object (NotAnObject otherwise), wraps it in Object[K]
// and calls decode; on failure the zero T is returned, so partially decoded
// values never escape. Encoding passes encode's fields to Build.
func Model[K Key, T any](decode func(Object[K]) (T, error), encode func(T) Fields[K]) Codec[T] {
	return modelCodec[K, T]{decode: decode, encode: encode}
}

type modelCodec[K Key, T any] struct {
	decode func(Object[K]) (T, error)
	encode func(T) Fields[K]
}

func (m modelCodec[K, T]) Decode(v Value) (T, error) {
	var zero T
	o, err := From[K](v)
	if err != nil {
		return zero, err
	}
	t, err := m.decode(o)
	if err != nil {
		return zero, err
	}
	return t, nil
}

func (m modelCodec[K, T]) Encode(v T) Value { return Build(m.encode(v)) }

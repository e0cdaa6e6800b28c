package jsonmodel

import (
	"io"
)

// Decoder builds a T from a Value.
type Decoder[T any] interface {
	Decode(v Value) (T, error)
}

// Encoder renders a T as a Value.
type Encoder[T any] interface {
	Encode(v T) Value
}

// Codec performs both directions for T.
type Codec[T any] interface {
	Decoder[T]
	Encoder[T]
}

// DecoderFunc adapts a function to Decoder. It is the custom transform hook
// for values the built-in codecs do not anticipate.
type DecoderFunc[T any] func(Value) (T, error)

func (f DecoderFunc[T]) Decode(v Value) (T, error) { return f(v) }

// EncoderFunc adapts a function to Encoder.
type EncoderFunc[T any] func(T) Value

func (f EncoderFunc[T]) Encode(v T) Value { return f(v) }

// NewCodec pairs a decode and an encode function.
func NewCodec[T any](dec func(Value) (T, error), enc func(T) Value) Codec[T] {
	return funcCodec[T]{dec: dec, enc: enc}
}

type funcCodec[T any] struct {
	dec DecoderFunc[T]
	enc EncoderFunc[T]
}

func (c funcCodec[T]) Decode(v Value) (T, error) { return c.dec(v) }
func (c funcCodec[T]) Encode(v T) Value          { return c.enc(v) }

// ---- primitives ----

// String returns the codec for JSON strings.
func String() Codec[string] { return stringCodec{} }

// Int returns the codec for integral JSON numbers that fit in int.
func Int() Codec[int] { return intCodec{} }

// Int64 returns the codec for integral JSON numbers that fit in int64.
func Int64() Codec[int64] { return int64Codec{} }

// Float returns the codec for JSON numbers as float64.
func Float() Codec[float64] { return floatCodec{} }

// Bool returns the codec for JSON booleans.
func Bool() Codec[bool] { return boolCodec{} }

// Raw returns the identity codec over Value; decoding never fails.
func Raw() Codec[Value] { return rawCodec{} }

type stringCodec struct{}

func (stringCodec) Decode(v Value) (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", invalidElement()
	}
	return s, nil
}
func (stringCodec) Encode(s string) Value { return NewString(s) }

type intCodec struct{}

func (intCodec) Decode(v Value) (int, error) {
	i, ok := v.AsInt()
	if !ok {
		return 0, invalidElement()
	}
	return i, nil
}
func (intCodec) Encode(i int) Value { return NewInt(i) }

type int64Codec struct{}

func (int64Codec) Decode(v Value) (int64, error) {
	i, ok := v.AsInt64()
	if !ok {
		return 0, invalidElement()
	}
	return i, nil
}
func (int64Codec) Encode(i int64) Value { return NewInt64(i) }

type floatCodec struct{}

func (floatCodec) Decode(v Value) (float64, error) {
	f, ok := v.AsFloat()
	if !ok {
		return 0, invalidElement()
	}
	return f, nil
}
func (floatCodec) Encode(f float64) Value { return NewFloat(f) }

type boolCodec struct{}

func (boolCodec) Decode(v Value) (bool, error) {
	b, ok := v.AsBool()
	if !ok {
		return false, invalidElement()
	}
	return b, nil
}
func (boolCodec) Encode(b bool) Value { return NewBool(b) }

type rawCodec struct{}

func (rawCodec) Decode(v Value) (Value, error) { return v, nil }
func (rawCodec) Encode(v Value) Value          { return v }

// StringAs projects JSON strings onto a named string type.
func StringAs[T ~string]() Codec[T] { return stringAsCodec[T]{} }

type stringAsCodec[T ~string] struct{}

func (stringAsCodec[T]) Decode(v Value) (T, error) {
	s, err := stringCodec{}.Decode(v)
	return T(s), err
}
func (stringAsCodec[T]) Encode(s T) Value { return NewString(string(s)) }

// Enum is the codec for string-backed enumerations: only the listed raw
// values decode, anything else is InvalidElement.
func Enum[T ~string](values ...T) Codec[T] {
	allowed := make(map[T]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return enumCodec[T]{allowed: allowed}
}

type enumCodec[T ~string] struct{ allowed map[T]struct{} }

func (c enumCodec[T]) Decode(v Value) (T, error) {
	s, ok := v.AsString()
	if !ok {
		return "", invalidElement()
	}
	if _, ok := c.allowed[T(s)]; !ok {
		return "", invalidElement()
	}
	return T(s), nil
}
func (enumCodec[T]) Encode(s T) Value { return NewString(string(s)) }

// Nullable maps JSON null to a nil pointer and delegates everything else.
func Nullable[T any](c Codec[T]) Codec[*T] { return nullableCodec[T]{inner: c} }

type nullableCodec[T any] struct{ inner Codec[T] }

func (c nullableCodec[T]) Decode(v Value) (*T, error) { return decodeOptional[T](c.inner, v) }

func (c nullableCodec[T]) Encode(p *T) Value {
	if p == nil {
		return Null()
	}
	return c.inner.Encode(*p)
}

// decodeOptional short-circuits null without consulting dec.
func decodeOptional[T any](dec Decoder[T], v Value) (*T, error) {
	if v.IsNull() {
		return nil, nil
	}
	t, err := dec.Decode(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ---- byte-level entry points ----

// DecodeBytes parses b with the active JSON driver and decodes the result.
func DecodeBytes[T any](dec Decoder[T], b []byte, opts ...ParseOpt) (T, error) {
	v, err := Parse(b, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Decode(v)
}

// DecodeReader is DecodeBytes for an io.Reader.
func DecodeReader[T any](dec Decoder[T], r io.Reader, opts ...ParseOpt) (T, error) {
	v, err := ParseReader(r, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Decode(v)
}

// EncodeBytes encodes v and renders it as compact JSON.
func EncodeBytes[T any](enc Encoder[T], v T) ([]byte, error) {
	return Marshal(enc.Encode(v))
}

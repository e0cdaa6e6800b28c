package jsonmodel

import "sort"

// SliceOf is the codec for arrays whose elements use c. Decoding fails on the
// first bad element, wrapped with its index.
func SliceOf[T any](c Codec[T]) Codec[[]T] { return sliceCodec[T]{elem: c} }

type sliceCodec[T any] struct{ elem Codec[T] }

func (c sliceCodec[T]) Decode(v Value) ([]T, error) { return decodeSlice[T](c.elem, v) }
func (c sliceCodec[T]) Encode(xs []T) Value       { return encodeSlice[T](c.elem, xs) }

// FlatSliceOf decodes arrays leniently: elements dec rejects are dropped.
func FlatSliceOf[T any](dec Decoder[T]) Decoder[[]T] {
	return DecoderFunc[[]T](func(v Value) ([]T, error) { return decodeFlat(dec, v) })
}

// MapOf is the codec for objects used as string-keyed maps. Members are
// decoded in key order; the first failure is wrapped with its member name.
func MapOf[T any](c Codec[T]) Codec[map[string]T] { return mapCodec[T]{elem: c} }

type mapCodec[T any] struct{ elem Codec[T] }

func (c mapCodec[T]) Decode(v Value) (map[string]T, error) { return decodeMap[T](c.elem, v) }
func (c mapCodec[T]) Encode(m map[string]T) Value        { return encodeMap[T](c.elem, m) }

func decodeSlice[T any](dec Decoder[T], v Value) ([]T, error) {
	if v.kind != KindArray {
		return nil, invalidElement()
	}
	out := make([]T, 0, len(v.arr))
	for i, e := range v.arr {
		t, err := dec.Decode(e)
		if err != nil {
			return nil, ForKey(Index(i), err)
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeFlat[T any](dec Decoder[T], v Value) ([]T, error) {
	if v.kind != KindArray {
		return nil, invalidElement()
	}
	out := make([]T, 0, len(v.arr))
	for _, e := range v.arr {
		if t, err := dec.Decode(e); err == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func decodeMap[T any](dec Decoder[T], v Value) (map[string]T, error) {
	if v.kind != KindObject {
		return nil, invalidElement()
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]T, len(keys))
	for _, k := range keys {
		t, err := dec.Decode(v.obj[k])
		if err != nil {
			return nil, ForKey(k, err)
		}
		out[k] = t
	}
	return out, nil
}

func encodeSlice[T any](enc Encoder[T], xs []T) Value {
	arr := make([]Value, len(xs))
	for i, x := range xs {
		arr[i] = enc.Encode(x)
	}
	return Value{kind: KindArray, arr: arr}
}

func encodeMap[T any](enc Encoder[T], m map[string]T) Value {
	obj := make(map[string]Value, len(m))
	for k, x := range m {
		obj[k] = enc.Encode(x)
	}
	return Value{kind: KindObject, obj: obj}
}

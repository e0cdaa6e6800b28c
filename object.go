package jsonmodel

import (
	"strconv"
	"time"
)

// Key is the constraint for a model's key schema: a named string type whose
// constants enumerate the keys the model recognizes.
//
//	type PersonKey string
//
//	const (
//		FirstName PersonKey = "firstName"
//		LastName  PersonKey = "lastName"
//	)
type Key interface{ ~string }

// Object is a JSON object viewed through the key schema K. It is read-only
// and safe to share.
type Object[K Key] struct {
	v Value
}

// From validates that v is an object and wraps it. The value is held as is.
func From[K Key](v Value) (Object[K], error) {
	if v.kind != KindObject {
		return Object[K]{}, notAnObject()
	}
	return Object[K]{v: v}, nil
}

// Fields maps schema keys to the values to emit. A nil entry is emitted as an
// explicit JSON null, so every listed key appears in the output.
type Fields[K Key] map[K]Encodable

// Build constructs an object from fields.
func Build[K Key](fields Fields[K]) Value {
	obj := make(map[string]Value, len(fields))
	for k, e := range fields {
		if e == nil {
			obj[string(k)] = Null()
			continue
		}
		obj[string(k)] = e.JSONValue()
	}
	return Value{kind: KindObject, obj: obj}
}

// Get returns the raw value under key, or null when the key is absent.
func (o Object[K]) Get(key K) Value {
	e, _ := o.v.Lookup(string(key))
	return e
}

// Has reports whether key is present (even if its value is null).
func (o Object[K]) Has(key K) bool {
	_, ok := o.v.Lookup(string(key))
	return ok
}

// Keys returns the keys present in the object, sorted.
func (o Object[K]) Keys() []K {
	names := o.v.Keys()
	out := make([]K, len(names))
	for i, n := range names {
		out[i] = K(n)
	}
	return out
}

// Value returns the underlying object value.
func (o Object[K]) Value() Value { return o.v }

// JSONValue makes an Object usable as a Build entry.
func (o Object[K]) JSONValue() Value { return o.v }

// Object returns the nested object at path, keeping the same key schema.
func (o Object[K]) Object(path ...K) (Object[K], error) {
	return at(o, path, From[K])
}

// Nested returns the nested object at path viewed through another key schema.
func Nested[K2 Key, K Key](o Object[K], path ...K) (Object[K2], error) {
	return at(o, path, From[K2])
}

// at walks path and applies decode to the value found at its end. Every
// failure is wrapped with the key of the level it passed through, so a failure
// at depth N carries exactly N key frames, outermost first.
func at[T any, K Key](o Object[K], path []K, decode func(Value) (T, error)) (T, error) {
	if len(path) == 0 {
		panic("jsonmodel: key path must not be empty")
	}
	key := path[0]
	var (
		v   T
		err error
	)
	if len(path) == 1 {
		v, err = decode(o.Get(key))
	} else {
		var child Object[K]
		if child, err = From[K](o.Get(key)); err == nil {
			v, err = at(child, path[1:], decode)
		}
	}
	if err != nil {
		var zero T
		return zero, ForKey(string(key), err)
	}
	return v, nil
}

// Required decodes the value at path. Absent and null values go to dec like
// any other value, so primitive decoders report InvalidElement for them.
func Required[T any, K Key](o Object[K], dec Decoder[T], path ...K) (T, error) {
	return at(o, path, dec.Decode)
}

// Optional decodes the value at path, returning nil when it is null or absent.
// dec is not consulted for null. Objects along the path must still exist.
func Optional[T any, K Key](o Object[K], dec Decoder[T], path ...K) (*T, error) {
	return at(o, path, func(v Value) (*T, error) { return decodeOptional(dec, v) })
}

// Slice decodes an array at path, failing on the first bad element with its
// index as an extra key frame.
func Slice[T any, K Key](o Object[K], dec Decoder[T], path ...K) ([]T, error) {
	return at(o, path, func(v Value) ([]T, error) { return decodeSlice(dec, v) })
}

// FlatMap decodes an array at path, silently dropping elements dec rejects.
// It fails only when the value is not an array.
func FlatMap[T any, K Key](o Object[K], dec Decoder[T], path ...K) ([]T, error) {
	return at(o, path, func(v Value) ([]T, error) { return decodeFlat(dec, v) })
}

// Map decodes an object at path into a string-keyed map, failing on the first
// bad member with its name as an extra key frame.
func Map[T any, K Key](o Object[K], dec Decoder[T], path ...K) (map[string]T, error) {
	return at(o, path, func(v Value) (map[string]T, error) { return decodeMap(dec, v) })
}

// Date decodes a string at path and parses it with f.
func Date[K Key](o Object[K], f DateFormatter, path ...K) (time.Time, error) {
	return at(o, path, func(v Value) (time.Time, error) { return decodeDate(f, v) })
}

// Transform decodes the value at path with an arbitrary function. Errors that
// are not DecodeErrors are reported as InvalidElement with the original error
// kept in Err.
func Transform[T any, K Key](o Object[K], fn func(Value) (T, error), path ...K) (T, error) {
	return at(o, path, fn)
}

// Index returns the key frame used for array element i.
func Index(i int) string { return strconv.Itoa(i) }

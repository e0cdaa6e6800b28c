package jsonmodel

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"time"

	eng "github.com/reoring/jsonmodel/internal/engine"
)

// Kind enumerates the variants of a JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable JSON value. The zero Value is JSON null.
//
// Numbers keep their literal text, so 3 and 3.0 remain distinguishable and
// large integers survive untouched. Arrays and objects are never exposed for
// mutation; accessors hand out copies.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or number literal
	arr  []Value
	obj  map[string]Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// NewBool returns a JSON boolean.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt returns a JSON number holding i.
func NewInt(i int) Value { return NewInt64(int64(i)) }

// NewInt64 returns a JSON number holding i.
func NewInt64(i int64) Value { return Value{kind: KindNumber, s: strconv.FormatInt(i, 10)} }

// NewFloat returns a JSON number holding f. NaN and infinities have no JSON
// representation and yield null.
func NewFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewNumber returns a JSON number from its literal text.
func NewNumber(text string) (Value, error) {
	if !validNumber(text) {
		return Value{}, fmt.Errorf("jsonmodel: invalid number literal %q", text)
	}
	return Value{kind: KindNumber, s: text}, nil
}

// NewString returns a JSON string.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewArray returns a JSON array of the given elements.
func NewArray(elems ...Value) Value {
	arr := make([]Value, len(elems))
	copy(arr, elems)
	return Value{kind: KindArray, arr: arr}
}

// NewObject returns a JSON object holding a copy of m.
func NewObject(m map[string]Value) Value {
	obj := make(map[string]Value, len(m))
	for k, v := range m {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool extracts a boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt64 extracts an integral number. Numbers written with a fraction or
// exponent are accepted when their value is integral and fits.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// AsInt extracts an integral number that fits in int.
func (v Value) AsInt() (int, bool) {
	i, ok := v.AsInt64()
	if !ok || int64(int(i)) != i {
		return 0, false
	}
	return int(i), true
}

// AsFloat extracts any finite number.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// AsString extracts a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray returns a copy of the elements of an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out, true
}

// AsObject returns a copy of the members of an object.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	out := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		out[k] = e
	}
	return out, true
}

// NumberText returns the literal text of a number.
func (v Value) NumberText() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.s, true
}

// Len returns the number of elements of an array or members of an object, and
// 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Index returns the i-th array element, or null when out of range or not an
// array.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Lookup returns the member named key of an object.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	e, ok := v.obj[key]
	return e, ok
}

// Keys returns the member names of an object in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSONValue lets a Value stand wherever an Encodable is expected.
func (v Value) JSONValue() Value { return v }

// Equal reports deep equality. Numbers compare by value, so 1 equals 1.0.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindNumber:
		return numbersEqual(v.s, o.s)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, e := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	ra, ok1 := new(big.Rat).SetString(a)
	rb, ok2 := new(big.Rat).SetString(b)
	return ok1 && ok2 && ra.Cmp(rb) == 0
}

// ToAny converts v into plain Go values: nil, bool, string, int64 (or uint64
// for large positive integers), float64, []any and map[string]any.
func (v Value) ToAny() any {
	return v.tree(func(text string) any {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return u
		}
		f, _ := strconv.ParseFloat(text, 64)
		return f
	})
}

func (v Value) tree(number func(string) any) any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return number(v.s)
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.tree(number)
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.tree(number)
		}
		return out
	}
	return nil
}

// String renders v as compact JSON.
func (v Value) String() string {
	b, err := Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// MarshalJSON implements json.Marshaler through the active JSON driver.
func (v Value) MarshalJSON() ([]byte, error) { return Marshal(v) }

// UnmarshalJSON implements json.Unmarshaler through the active JSON driver.
func (v *Value) UnmarshalJSON(b []byte) error {
	parsed, err := Parse(b)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// jsonNumber matches number types from encoding/json and go-json alike.
type jsonNumber interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

// FromAny converts a tree of plain Go values into a Value. It accepts what
// JSON, YAML, CBOR and MessagePack decoders produce when decoding into any:
// maps keyed by strings (map[any]any is accepted when every key is a string),
// slices, every integer and float width, json.Number, *big.Int, []byte
// (rendered as standard base64) and time.Time (rendered as RFC3339Nano).
func FromAny(x any) (Value, error) { return fromAny(x, "") }

// MustFromAny is like FromAny but panics on error. Intended for tests and
// package-level fixtures.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

func fromAny(x any, path string) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case Encodable:
		return t.JSONValue(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case int:
		return NewInt64(int64(t)), nil
	case int8:
		return NewInt64(int64(t)), nil
	case int16:
		return NewInt64(int64(t)), nil
	case int32:
		return NewInt64(int64(t)), nil
	case int64:
		return NewInt64(t), nil
	case uint:
		return Value{kind: KindNumber, s: strconv.FormatUint(uint64(t), 10)}, nil
	case uint8:
		return NewInt64(int64(t)), nil
	case uint16:
		return NewInt64(int64(t)), nil
	case uint32:
		return NewInt64(int64(t)), nil
	case uint64:
		return Value{kind: KindNumber, s: strconv.FormatUint(t, 10)}, nil
	case float32:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, nil
		}
		return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 32)}, nil
	case float64:
		return NewFloat(t), nil
	case eng.Number:
		return Value{kind: KindNumber, s: string(t)}, nil
	case *big.Int:
		if t == nil {
			return Value{}, nil
		}
		return Value{kind: KindNumber, s: t.String()}, nil
	case jsonNumber:
		v, err := NewNumber(t.String())
		if err != nil {
			return Value{}, conversionError(path, err)
		}
		return v, nil
	case []byte:
		return NewString(base64.StdEncoding.EncodeToString(t)), nil
	case time.Time:
		return NewString(t.Format(time.RFC3339Nano)), nil
	case []Value:
		return NewArray(t...), nil
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			v, err := fromAny(e, path+"/"+strconv.Itoa(i))
			if err != nil {
				return Value{}, err
			}
			arr[i] = v
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]Value:
		return NewObject(t), nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := fromAny(e, path+"/"+k)
			if err != nil {
				return Value{}, err
			}
			obj[k] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	case map[any]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, conversionError(path, fmt.Errorf("non-string object key %v (%T)", k, k))
			}
			v, err := fromAny(e, path+"/"+ks)
			if err != nil {
				return Value{}, err
			}
			obj[ks] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	}
	return Value{}, conversionError(path, fmt.Errorf("unsupported type %T", x))
}

func conversionError(path string, err error) error {
	if path == "" {
		path = "/"
	}
	return fmt.Errorf("jsonmodel: convert %s: %w", path, err)
}

// validNumber checks the JSON number grammar (RFC 8259 §6).
func validNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

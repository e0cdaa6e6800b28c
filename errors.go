package jsonmodel

import (
	"errors"
	"strings"

	"github.com/reoring/jsonmodel/i18n"
)

// Reason classifies a DecodeError.
type Reason int

const (
	// NotAnObject: an object was required but the value is another variant.
	NotAnObject Reason = iota + 1
	// InvalidElement: the value has the wrong variant, or a custom transform
	// rejected it.
	InvalidElement
	// InvalidFormat: a string is present but does not match the expected
	// pattern (dates).
	InvalidFormat
	// InvalidValueForKey wraps the failure found under one key.
	InvalidValueForKey
)

func (r Reason) String() string {
	switch r {
	case NotAnObject:
		return "NotAnObject"
	case InvalidElement:
		return "InvalidElement"
	case InvalidFormat:
		return "InvalidFormat"
	case InvalidValueForKey:
		return "InvalidValueForKey"
	}
	return "Reason(?)"
}

// Issue codes for the leaf reasons (stable strings for i18n and logs).
const (
	CodeNotAnObject   = "not_an_object"
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
)

// DecodeError is a decode failure annotated with the key path that led to it.
//
// Read outer to inner, the InvalidValueForKey frames spell the key path from
// the decode root to the failing value; the innermost frame holds the leaf
// reason.
type DecodeError struct {
	Reason Reason
	// Key and Cause are set for InvalidValueForKey only.
	Key   string
	Cause *DecodeError
	// Err optionally records the underlying failure of a leaf (a time.Parse
	// error, a custom transform error). It is not part of equality.
	Err error
}

// Leaf sentinels for comparison with errors.Is or Equal. Decoders never
// return them directly and ForKey copies them, so a DecodeError obtained from
// a decode may be modified without affecting them.
var (
	ErrNotAnObject    = &DecodeError{Reason: NotAnObject}
	ErrInvalidElement = &DecodeError{Reason: InvalidElement}
	ErrInvalidFormat  = &DecodeError{Reason: InvalidFormat}
)

func notAnObject() *DecodeError    { return &DecodeError{Reason: NotAnObject} }
func invalidElement() *DecodeError { return &DecodeError{Reason: InvalidElement} }

// ForKey wraps cause with one key frame. A cause that is not a DecodeError is
// recorded as InvalidElement with the original error kept in Err.
func ForKey(key string, cause error) *DecodeError {
	return &DecodeError{Reason: InvalidValueForKey, Key: key, Cause: asLeaf(cause)}
}

func asLeaf(err error) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) && de != nil {
		if de == ErrNotAnObject || de == ErrInvalidElement || de == ErrInvalidFormat {
			c := *de
			return &c
		}
		return de
	}
	return &DecodeError{Reason: InvalidElement, Err: err}
}

// AsDecodeError extracts a *DecodeError from err using errors.As.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Error renders the chain as "[outer][inner]: message".
func (e *DecodeError) Error() string { return e.render(englishMessage) }

// Localize renders like Error, with the leaf message produced by the current
// i18n translator.
func (e *DecodeError) Localize() string {
	return e.render(func(leaf *DecodeError) string {
		return i18n.T(leaf.Code(), map[string]string{"path": e.Pointer()})
	})
}

func (e *DecodeError) render(message func(*DecodeError) string) string {
	b := &strings.Builder{}
	leaf := e
	for leaf.Reason == InvalidValueForKey && leaf.Cause != nil {
		b.WriteString("[")
		b.WriteString(leaf.Key)
		b.WriteString("]")
		leaf = leaf.Cause
	}
	if leaf != e {
		b.WriteString(": ")
	}
	b.WriteString(message(leaf))
	return b.String()
}

func englishMessage(leaf *DecodeError) string {
	switch leaf.Reason {
	case NotAnObject:
		return "JSON is not an object"
	case InvalidFormat:
		return "Invalid format"
	default:
		return "Invalid element"
	}
}

// Unwrap exposes the cause of a key frame, or the underlying error of a leaf,
// so errors.Is(err, ErrInvalidElement) matches at any depth.
func (e *DecodeError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	if e.Err != nil {
		return e.Err
	}
	return nil
}

// Is reports structural equality with target.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && e.Equal(t)
}

// Equal compares reason, and for key frames the key and cause, recursively.
func (e *DecodeError) Equal(o *DecodeError) bool {
	for {
		if e == nil || o == nil {
			return e == o
		}
		if e.Reason != o.Reason {
			return false
		}
		if e.Reason != InvalidValueForKey {
			return true
		}
		if e.Key != o.Key {
			return false
		}
		e, o = e.Cause, o.Cause
	}
}

// Path returns the keys of the chain, outermost first.
func (e *DecodeError) Path() []string {
	var keys []string
	for cur := e; cur != nil && cur.Reason == InvalidValueForKey; cur = cur.Cause {
		keys = append(keys, cur.Key)
	}
	return keys
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders Path as an RFC 6901 JSON Pointer ("/" for the root).
func (e *DecodeError) Pointer() string {
	keys := e.Path()
	if len(keys) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, k := range keys {
		b.WriteString("/")
		b.WriteString(pointerEscaper.Replace(k))
	}
	return b.String()
}

// Leaf returns the innermost, non-key frame.
func (e *DecodeError) Leaf() *DecodeError {
	cur := e
	for cur.Reason == InvalidValueForKey && cur.Cause != nil {
		cur = cur.Cause
	}
	return cur
}

// Code returns the issue code of the leaf reason.
func (e *DecodeError) Code() string {
	switch e.Leaf().Reason {
	case NotAnObject:
		return CodeNotAnObject
	case InvalidFormat:
		return CodeInvalidFormat
	default:
		return CodeInvalidType
	}
}

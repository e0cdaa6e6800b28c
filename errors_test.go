package jsonmodel_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	jm "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/i18n"
)

func TestDecodeError_Rendering(t *testing.T) {
	err := jm.ForKey("country", jm.ForKey("city", jm.ForKey("name", jm.ErrInvalidElement)))
	if got := err.Error(); got != "[country][city][name]: Invalid element" {
		t.Fatalf("render: %q", got)
	}
	if got := jm.ForKey("country", jm.ErrNotAnObject).Error(); got != "[country]: JSON is not an object" {
		t.Fatalf("render: %q", got)
	}
	if got := jm.ErrInvalidFormat.Error(); got != "Invalid format" {
		t.Fatalf("render: %q", got)
	}
}

func TestDecodeError_Equality(t *testing.T) {
	a := jm.ForKey("a", jm.ForKey("b", jm.ErrInvalidElement))
	b := jm.ForKey("a", jm.ForKey("b", jm.ErrInvalidElement))
	if !a.Equal(b) {
		t.Fatalf("expected equal")
	}
	if a.Equal(jm.ForKey("a", jm.ForKey("c", jm.ErrInvalidElement))) {
		t.Fatalf("different key must not be equal")
	}
	if a.Equal(jm.ForKey("a", jm.ForKey("b", jm.ErrNotAnObject))) {
		t.Fatalf("different leaf must not be equal")
	}
	// the underlying error is not part of equality
	withErr := &jm.DecodeError{Reason: jm.InvalidElement, Err: errors.New("x")}
	if !withErr.Equal(jm.ErrInvalidElement) {
		t.Fatalf("Err must not affect equality")
	}
}

func TestDecodeError_EqualPinsWholeChain(t *testing.T) {
	want := jm.ForKey("first", jm.ForKey("third", jm.ErrNotAnObject))
	extra := jm.ForKey("extra", want)
	if extra.Equal(want) || want.Equal(extra) {
		t.Fatalf("an extra outer frame must break equality")
	}
	// errors.Is matches any suffix of the chain
	if !errors.Is(extra, want) {
		t.Fatalf("errors.Is should find the inner chain")
	}
}

func TestDecodeError_SentinelsSurviveMutation(t *testing.T) {
	_, err := jm.String().Decode(jm.NewInt(1))
	de, _ := jm.AsDecodeError(err)
	de.Reason = jm.InvalidFormat

	wrapped := jm.ForKey("a", jm.ErrNotAnObject)
	wrapped.Cause.Reason = jm.InvalidElement

	_, err = jm.From[personKey](jm.NewInt(1))
	de, _ = jm.AsDecodeError(err)
	de.Key = "x"

	if jm.ErrInvalidElement.Reason != jm.InvalidElement || jm.ErrNotAnObject.Reason != jm.NotAnObject || jm.ErrNotAnObject.Key != "" {
		t.Fatalf("sentinels changed: %+v %+v", jm.ErrInvalidElement, jm.ErrNotAnObject)
	}
}

func TestDecodeError_WrappedByFmt(t *testing.T) {
	inner := jm.ForKey("a", jm.ErrInvalidElement)
	err := fmt.Errorf("load person: %w", inner)
	de, ok := jm.AsDecodeError(err)
	if !ok || !de.Equal(inner) {
		t.Fatalf("AsDecodeError: %v, %v", de, ok)
	}
	if !errors.Is(err, jm.ErrInvalidElement) {
		t.Fatalf("errors.Is should reach the leaf")
	}
	if _, ok := jm.AsDecodeError(errors.New("plain")); ok {
		t.Fatalf("plain error is not a DecodeError")
	}
}

func TestDecodeError_PathPointerLeaf(t *testing.T) {
	err := jm.ForKey("a/b", jm.ForKey("~c", jm.ErrInvalidFormat))
	if p := err.Path(); len(p) != 2 || p[0] != "a/b" || p[1] != "~c" {
		t.Fatalf("path: %v", p)
	}
	if got := err.Pointer(); got != "/a~1b/~0c" {
		t.Fatalf("pointer: %s", got)
	}
	if err.Leaf().Reason != jm.InvalidFormat || err.Code() != jm.CodeInvalidFormat {
		t.Fatalf("leaf: %v %s", err.Leaf().Reason, err.Code())
	}
	if jm.ErrNotAnObject.Pointer() != "/" {
		t.Fatalf("root pointer")
	}
}

func TestDecodeError_Localize(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	err := jm.ForKey("born", &jm.DecodeError{Reason: jm.InvalidFormat, Err: &time.ParseError{}})
	i18n.SetLanguage("ja")
	if got := err.Localize(); got != "[born]: 形式が不正です" {
		t.Fatalf("localize: %q", got)
	}
	// Error always renders English
	if got := err.Error(); got != "[born]: Invalid format" {
		t.Fatalf("error: %q", got)
	}
}

func TestReason_String(t *testing.T) {
	if jm.InvalidValueForKey.String() != "InvalidValueForKey" || jm.NotAnObject.String() != "NotAnObject" {
		t.Fatalf("reason names")
	}
}

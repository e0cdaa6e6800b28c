package json

import (
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/jsonmodel/internal/engine"
)

func collect(t *testing.T, in string) []eng.Token {
	t.Helper()
	src := NewReader(strings.NewReader(in))
	var out []eng.Token
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		out = append(out, tok)
	}
}

func TestNextToken_KeysAndValues(t *testing.T) {
	toks := collect(t, `{"k":"v","n":[1.50,true,null],"o":{"x":"y"}}`)
	kinds := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindBeginArray, eng.KindNumber, eng.KindBool, eng.KindNull, eng.KindEndArray,
		eng.KindKey, eng.KindBeginObject, eng.KindKey, eng.KindString, eng.KindEndObject,
		eng.KindEndObject,
	}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(kinds), toks)
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d: kind %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[5].Number != "1.50" {
		t.Fatalf("number text: %q", toks[5].Number)
	}
	if toks[12].String != "y" || toks[11].String != "x" {
		t.Fatalf("nested key/value: %+v %+v", toks[11], toks[12])
	}
}

func TestNextToken_StringValueEqualToKey(t *testing.T) {
	toks := collect(t, `{"a":"a","b":["b"]}`)
	if toks[1].Kind != eng.KindKey || toks[2].Kind != eng.KindString {
		t.Fatalf("first member: %+v %+v", toks[1], toks[2])
	}
	if toks[3].Kind != eng.KindKey || toks[5].Kind != eng.KindString {
		t.Fatalf("array member: %+v", toks)
	}
}

func TestMarshal_RawNumbersAndNoHTMLEscape(t *testing.T) {
	b, err := Marshal(map[string]any{"n": RawNumber("1.50"), "s": "<a&b>", "l": []any{nil, true}})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != `{"l":[null,true],"n":1.50,"s":"<a&b>"}` {
		t.Fatalf("marshal: %s", got)
	}
}

// Package gojson produces engine tokens with github.com/goccy/go-json.
//
// go-json's Decoder.Token does not check separators, so each document is read
// in full and validated with go-json's Valid before it is tokenized.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/jsonmodel/internal/engine"
)

type frame struct {
	object    bool
	expectKey bool
}

// ErrSyntax reports a document go-json's validator rejected.
var ErrSyntax = errors.New("gojson: invalid JSON syntax")

type source struct {
	r     io.Reader
	dec   *j.Decoder
	err   error
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// load reads and validates the whole input on first use. Empty input is left
// to the decoder so it surfaces as io.EOF.
func (s *source) load() error {
	if s.dec != nil || s.err != nil {
		return s.err
	}
	b, err := io.ReadAll(s.r)
	if err != nil {
		s.err = err
		return err
	}
	if len(bytes.TrimSpace(b)) > 0 && !j.Valid(b) {
		s.err = ErrSyntax
		return s.err
	}
	s.dec = j.NewDecoder(bytes.NewReader(b))
	s.dec.UseNumber()
	return nil
}

func (s *source) NextToken() (eng.Token, error) {
	if err := s.load(); err != nil {
		return eng.Token{}, err
	}
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	out := eng.Token{Offset: -1}

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectKey: true})
			out.Kind = eng.KindBeginObject
		case '[':
			s.stack = append(s.stack, frame{})
			out.Kind = eng.KindBeginArray
		case '}':
			s.pop()
			out.Kind = eng.KindEndObject
		case ']':
			s.pop()
			out.Kind = eng.KindEndArray
		}
		return out, nil
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].expectKey {
			s.stack[n-1].expectKey = false
			out.Kind, out.String = eng.KindKey, v
			return out, nil
		}
		out.Kind, out.String = eng.KindString, v
	case bool:
		out.Kind, out.Bool = eng.KindBool, v
	case j.Number:
		out.Kind, out.Number = eng.KindNumber, string(v)
	case float64:
		out.Kind, out.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		out.Kind = eng.KindNull
	}
	s.valueDone()
	return out, nil
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectKey = true
	}
}

func (s *source) Location() int64 { return -1 }

// Marshal renders a tree of map[string]any, []any and scalars without HTML
// escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := j.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// RawNumber wraps number text so Marshal emits it verbatim.
func RawNumber(text string) any { return j.RawMessage(text) }

// Package stream slices a token stream into independently decodable values.
package stream

import (
	"io"

	eng "github.com/reoring/jsonmodel/internal/engine"
)

// Subtree exposes exactly one value of an enclosing token stream: the token
// handed to NewSubtree followed by everything up to its matching end token.
// After that it reports io.EOF and leaves inner positioned at the next value.
type Subtree struct {
	inner eng.TokenSource
	first *eng.Token
	// depth counts open containers inside the subtree.
	depth int
	done  bool
}

// NewSubtree starts a subtree at first, which the caller already consumed
// from inner.
func NewSubtree(first eng.Token, inner eng.TokenSource) *Subtree {
	return &Subtree{inner: inner, first: &first}
}

func (s *Subtree) NextToken() (eng.Token, error) {
	if s.done {
		return eng.Token{}, io.EOF
	}
	var tok eng.Token
	if s.first != nil {
		tok, s.first = *s.first, nil
	} else {
		var err error
		if tok, err = s.inner.NextToken(); err != nil {
			if err == io.EOF {
				return eng.Token{}, io.ErrUnexpectedEOF
			}
			return eng.Token{}, err
		}
	}
	switch tok.Kind {
	case eng.KindBeginObject, eng.KindBeginArray:
		s.depth++
	case eng.KindEndObject, eng.KindEndArray:
		s.depth--
	}
	if s.depth <= 0 {
		s.done = true
	}
	return tok, nil
}

func (s *Subtree) Location() int64 { return s.inner.Location() }

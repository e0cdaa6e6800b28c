package jsonmodel

import (
	"errors"
	"io"

	eng "github.com/reoring/jsonmodel/internal/engine"
	"github.com/reoring/jsonmodel/internal/stream"
)

// DecodeEach reads a top-level JSON array from r one element at a time,
// decodes each element with dec and hands it to fn. Only one element is held
// in memory at once.
//
// A root that is not an array is InvalidElement. An element dec rejects stops
// the stream with its index as the key frame; an error from fn is returned
// as is. MaxBytes counts bytes read from r.
func DecodeEach[T any](r io.Reader, dec Decoder[T], fn func(i int, v T) error, opts ...ParseOpt) error {
	opt := lastOpt(opts)
	var capped *cappedReader
	if opt.MaxBytes > 0 {
		capped = &cappedReader{r: r, max: opt.MaxBytes}
		r = capped
	}
	src := eng.WrapWithEnforcement(CurrentJSONDriver().NewReader(r), opt.enforce())
	fail := func(err error) error {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if capped != nil && capped.exceeded() {
			return &ParseError{Code: CodeTruncated, Offset: capped.max, Err: errMaxBytes}
		}
		return toParseError(err, src.Location())
	}

	tok, err := src.NextToken()
	if err != nil {
		return fail(err)
	}
	if tok.Kind != eng.KindBeginArray {
		return invalidElement()
	}
	for i := 0; ; i++ {
		if tok, err = src.NextToken(); err != nil {
			return fail(err)
		}
		if tok.Kind == eng.KindEndArray {
			break
		}
		tree, err := eng.DecodeTree(stream.NewSubtree(tok, src))
		if err != nil {
			return fail(err)
		}
		v, err := FromAny(tree)
		if err != nil {
			return &ParseError{Code: CodeParseError, Offset: -1, Err: err}
		}
		t, err := dec.Decode(v)
		if err != nil {
			return ForKey(Index(i), err)
		}
		if err := fn(i, t); err != nil {
			return err
		}
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			err = eng.ErrTrailingData
		}
		return fail(err)
	}
	if capped != nil && capped.exceeded() {
		return fail(nil)
	}
	return nil
}

// cappedReader fails once more than max bytes have been read.
type cappedReader struct {
	r   io.Reader
	n   int64
	max int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.exceeded() {
		return n, errMaxBytes
	}
	return n, err
}

func (c *cappedReader) exceeded() bool { return c.n > c.max }

// IsParseError reports whether err carries a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

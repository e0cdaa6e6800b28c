package jsonmodel

import (
	"bytes"
	"errors"
	"io"
	"sync"

	eng "github.com/reoring/jsonmodel/internal/engine"
	"github.com/reoring/jsonmodel/source/gojson"
	jsonsrc "github.com/reoring/jsonmodel/source/json"
)

// TokenSource is the token stream a JSONDriver produces.
type TokenSource = eng.TokenSource

// Token is one JSON token. Number tokens keep their literal text.
type Token = eng.Token

// TokenKind enumerates token kinds.
type TokenKind = eng.Kind

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// JSONDriver is the pluggable JSON backend. NewReader tokenizes input;
// Marshal renders trees of map[string]any, []any, string, bool, nil and the
// values returned by RawNumber, which must emit number text verbatim.
type JSONDriver interface {
	NewReader(r io.Reader) TokenSource
	Marshal(v any) ([]byte, error)
	RawNumber(text string) any
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = stdJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the encoding/json driver.
func UseDefaultJSONDriver() { SetJSONDriver(stdJSONDriver{}) }

// CurrentJSONDriver returns the active driver.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// StdJSONDriver returns the encoding/json backed driver (default).
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

// GoJSONDriver returns the github.com/goccy/go-json backed driver. Its reader
// validates each document in full before tokenizing, so DecodeEach holds the
// whole input in memory under this driver.
func GoJSONDriver() JSONDriver { return goJSONDriver{} }

type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) TokenSource { return jsonsrc.NewReader(r) }
func (stdJSONDriver) Marshal(v any) ([]byte, error)     { return jsonsrc.Marshal(v) }
func (stdJSONDriver) RawNumber(text string) any         { return jsonsrc.RawNumber(text) }
func (stdJSONDriver) Name() string                      { return "encoding/json" }

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) TokenSource { return gojson.NewReader(r) }
func (goJSONDriver) Marshal(v any) ([]byte, error)     { return gojson.Marshal(v) }
func (goJSONDriver) RawNumber(text string) any         { return gojson.RawNumber(text) }
func (goJSONDriver) Name() string                      { return "goccy/go-json" }

// Parse reads one JSON document into a Value with the active driver.
func Parse(b []byte, opts ...ParseOpt) (Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return Value{}, &ParseError{Code: CodeTruncated, Offset: opt.MaxBytes, Err: errMaxBytes}
	}
	return ParseSource(CurrentJSONDriver().NewReader(bytes.NewReader(b)), opt)
}

// ParseReader is Parse for an io.Reader. When MaxBytes is set the input is
// read up front and rejected once it exceeds the cap.
func ParseReader(r io.Reader, opts ...ParseOpt) (Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return Value{}, &ParseError{Code: CodeParseError, Offset: -1, Err: err}
		}
		return Parse(data, opt)
	}
	return ParseSource(CurrentJSONDriver().NewReader(r), opt)
}

// ParseSource builds a Value from any token source, applying opt.
func ParseSource(src TokenSource, opt ParseOpt) (Value, error) {
	enforced := eng.WrapWithEnforcement(src, opt.enforce())
	tree, err := eng.DecodeTree(enforced)
	if err != nil {
		return Value{}, toParseError(err, src.Location())
	}
	v, err := FromAny(tree)
	if err != nil {
		return Value{}, &ParseError{Code: CodeParseError, Offset: -1, Err: err}
	}
	return v, nil
}

// Marshal renders v as compact JSON with the active driver. Numbers are
// written with their original text.
func Marshal(v Value) ([]byte, error) {
	d := CurrentJSONDriver()
	return d.Marshal(v.tree(d.RawNumber))
}

var errMaxBytes = errors.New("max bytes exceeded")

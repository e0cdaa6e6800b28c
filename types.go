package jsonmodel

import (
	"errors"
	"strconv"

	eng "github.com/reoring/jsonmodel/internal/engine"
)

// Severity expresses how a parse-level issue is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options. The zero value parses anything well
// formed with no limits; duplicate keys keep the last value.
type ParseOpt struct {
	OnDuplicateKey Severity
	MaxDepth       int
	MaxBytes       int64
	// OnIssue receives duplicate keys reported under Warn.
	OnIssue func(ParseIssue)
}

// ParseIssue is a non-fatal finding reported during parsing.
type ParseIssue struct {
	Code    string
	Path    string // JSON Pointer
	Message string
}

// Parse issue codes.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// ParseError reports input that could not be turned into a Value: malformed
// JSON, trailing data, or a violated ParseOpt limit.
type ParseError struct {
	Code   string
	Path   string // JSON Pointer when known
	Offset int64  // byte offset, -1 if the driver does not track it
	Err    error
}

func (e *ParseError) Error() string {
	msg := "jsonmodel: " + e.Code
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Offset >= 0 {
		msg += " (offset " + strconv.FormatInt(e.Offset, 10) + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func (o ParseOpt) enforce() eng.EnforceOptions {
	var sink func(eng.SimpleIssue)
	if o.OnIssue != nil {
		sink = func(si eng.SimpleIssue) {
			o.OnIssue(ParseIssue{Code: si.Code, Path: si.Path, Message: si.Message})
		}
	}
	return eng.EnforceOptions{
		OnDuplicate: toEngineDup(o.OnDuplicateKey),
		MaxDepth:    o.MaxDepth,
		MaxBytes:    o.MaxBytes,
		IssueSink:   sink,
	}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func toParseError(err error, offset int64) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return &ParseError{Code: ie.Code, Path: ie.Path, Offset: offset, Err: errors.New(ie.Message)}
	}
	return &ParseError{Code: CodeParseError, Offset: offset, Err: err}
}

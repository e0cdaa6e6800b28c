package jsonmodel

import "time"

// DateFormatter converts between date strings and time.Time.
type DateFormatter interface {
	Parse(s string) (time.Time, error)
	Format(t time.Time) string
}

// Layout is a Go reference-time layout used as a DateFormatter. Strings
// without a zone are read as UTC.
type Layout string

func (l Layout) Parse(s string) (time.Time, error) { return time.Parse(string(l), s) }
func (l Layout) Format(t time.Time) string         { return t.Format(string(l)) }

// InLocation returns a formatter for layout that reads zone-less strings in
// loc and formats times in loc.
func InLocation(layout string, loc *time.Location) DateFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return locatedLayout{layout: layout, loc: loc}
}

type locatedLayout struct {
	layout string
	loc    *time.Location
}

func (l locatedLayout) Parse(s string) (time.Time, error) {
	return time.ParseInLocation(l.layout, s, l.loc)
}
func (l locatedLayout) Format(t time.Time) string { return t.In(l.loc).Format(l.layout) }

// RFC3339 accepts RFC3339 with or without fractional seconds and formats in
// UTC with trailing zeros trimmed.
var RFC3339 DateFormatter = rfc3339{}

type rfc3339 struct{}

func (rfc3339) Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func (rfc3339) Format(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// DateOf is the codec for date strings handled by f. A non-string value is
// InvalidElement; a string f cannot parse is InvalidFormat.
func DateOf(f DateFormatter) Codec[time.Time] { return dateCodec{f: f} }

type dateCodec struct{ f DateFormatter }

func (c dateCodec) Decode(v Value) (time.Time, error) { return decodeDate(c.f, v) }
func (c dateCodec) Encode(t time.Time) Value          { return NewString(c.f.Format(t)) }

func decodeDate(f DateFormatter, v Value) (time.Time, error) {
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, invalidElement()
	}
	t, err := f.Parse(s)
	if err != nil {
		return time.Time{}, &DecodeError{Reason: InvalidFormat, Err: err}
	}
	return t, nil
}

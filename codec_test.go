package jsonmodel_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	jm "github.com/reoring/jsonmodel"
)

func TestPrimitiveCodecs_RejectWrongVariant(t *testing.T) {
	cases := []struct {
		name string
		in   string
		dec  func(jm.Value) error
	}{
		{"string", `1`, func(v jm.Value) error { _, err := jm.String().Decode(v); return err }},
		{"int", `"1"`, func(v jm.Value) error { _, err := jm.Int().Decode(v); return err }},
		{"int-fraction", `1.5`, func(v jm.Value) error { _, err := jm.Int().Decode(v); return err }},
		{"int64", `true`, func(v jm.Value) error { _, err := jm.Int64().Decode(v); return err }},
		{"float", `null`, func(v jm.Value) error { _, err := jm.Float().Decode(v); return err }},
		{"bool", `0`, func(v jm.Value) error { _, err := jm.Bool().Decode(v); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.dec(mustParse(t, tc.in)); !errors.Is(err, jm.ErrInvalidElement) {
				t.Fatalf("expected InvalidElement, got %v", err)
			}
		})
	}
}

type color string

const (
	red  color = "red"
	blue color = "blue"
)

func TestEnumAndStringAs(t *testing.T) {
	c := jm.Enum(red, blue)
	got, err := c.Decode(jm.NewString("blue"))
	if err != nil || got != blue {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := c.Decode(jm.NewString("green")); !errors.Is(err, jm.ErrInvalidElement) {
		t.Fatalf("unknown raw value must fail: %v", err)
	}
	if v := c.Encode(red); !v.Equal(jm.NewString("red")) {
		t.Fatalf("encode: %s", v)
	}
	s, err := jm.StringAs[color]().Decode(jm.NewString("green"))
	if err != nil || s != "green" {
		t.Fatalf("StringAs: %q, %v", s, err)
	}
}

func TestNullable(t *testing.T) {
	c := jm.Nullable(jm.Int())
	p, err := c.Decode(jm.Null())
	if err != nil || p != nil {
		t.Fatalf("null: %v, %v", p, err)
	}
	p, err = c.Decode(jm.NewInt(4))
	if err != nil || p == nil || *p != 4 {
		t.Fatalf("4: %v, %v", p, err)
	}
	if !c.Encode(nil).IsNull() {
		t.Fatalf("nil must encode as null")
	}
}

func TestSliceOfAndMapOf(t *testing.T) {
	sc := jm.SliceOf(jm.Int())
	xs, err := sc.Decode(mustParse(t, `[1,2,3]`))
	if err != nil || len(xs) != 3 || xs[2] != 3 {
		t.Fatalf("decode: %v, %v", xs, err)
	}
	if got := sc.Encode(nil).String(); got != `[]` {
		t.Fatalf("nil slice: %s", got)
	}
	if _, err := sc.Decode(mustParse(t, `{}`)); !errors.Is(err, jm.ErrInvalidElement) {
		t.Fatalf("non-array: %v", err)
	}

	mc := jm.MapOf(jm.Bool())
	m, err := mc.Decode(mustParse(t, `{"a":true,"b":false}`))
	if err != nil || !m["a"] || m["b"] {
		t.Fatalf("map: %v, %v", m, err)
	}
	if got := mc.Encode(m).String(); got != `{"a":true,"b":false}` {
		t.Fatalf("encode: %s", got)
	}

	flat, err := jm.FlatSliceOf[int](jm.Int()).Decode(mustParse(t, `[1,"x",null,2]`))
	if err != nil || len(flat) != 2 {
		t.Fatalf("flat: %v, %v", flat, err)
	}
}

type eventKey string

const (
	evStarted eventKey = "started"
	evLocal   eventKey = "local"
)

func TestDate(t *testing.T) {
	o := mustObject[eventKey](t, `{"started":"2024-03-01T10:20:30.5+02:00","local":"2024-03-01"}`)
	ts, err := jm.Date(o, jm.RFC3339, evStarted)
	if err != nil {
		t.Fatal(err)
	}
	if got := jm.RFC3339.Format(ts); got != "2024-03-01T08:20:30.5Z" {
		t.Fatalf("format: %s", got)
	}
	day, err := jm.Date(o, jm.Layout(time.DateOnly), evLocal)
	if err != nil || day.Day() != 1 {
		t.Fatalf("layout: %v, %v", day, err)
	}

	_, err = jm.Date(o, jm.RFC3339, evLocal)
	if de, ok := jm.AsDecodeError(err); !ok || !de.Equal(jm.ForKey("local", jm.ErrInvalidFormat)) {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}
	var pe *time.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("time.ParseError should be reachable: %v", err)
	}

	bad := mustObject[eventKey](t, `{"started":17}`)
	if _, err := jm.Date(bad, jm.RFC3339, evStarted); !isChain(err, jm.ForKey("started", jm.ErrInvalidElement)) {
		t.Fatalf("non-string date: %v", err)
	}
}

func TestInLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := jm.InLocation("2006-01-02 15:04", tokyo)
	ts, err := jm.DateOf(f).Decode(jm.NewString("2024-01-01 09:00"))
	if err != nil {
		t.Fatal(err)
	}
	if !ts.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("parsed %v", ts)
	}
	if got := jm.DateOf(f).Encode(ts.UTC()); !got.Equal(jm.NewString("2024-01-01 09:00")) {
		t.Fatalf("encode %s", got)
	}
}

type account struct {
	ID      string
	Balance int64
	Note    *string
	Tags    []string
}

type accountKey string

const (
	accID      accountKey = "id"
	accBalance accountKey = "balance"
	accNote    accountKey = "note"
	accTags    accountKey = "tags"
)

var accountCodec = jm.Model(
	func(o jm.Object[accountKey]) (account, error) {
		id, err := jm.Required(o, jm.String(), accID)
		if err != nil {
			return account{}, err
		}
		bal, err := jm.Required(o, jm.Int64(), accBalance)
		if err != nil {
			return account{}, err
		}
		note, err := jm.Optional(o, jm.String(), accNote)
		if err != nil {
			return account{}, err
		}
		tags, err := jm.Slice(o, jm.String(), accTags)
		if err != nil {
			return account{}, err
		}
		return account{ID: id, Balance: bal, Note: note, Tags: tags}, nil
	},
	func(a account) jm.Fields[accountKey] {
		return jm.Fields[accountKey]{
			accID:      jm.NewString(a.ID),
			accBalance: jm.NewInt64(a.Balance),
			accNote:    jm.EncodedOptional(a.Note, jm.String()),
			accTags:    jm.Encoded(a.Tags, jm.SliceOf(jm.String())),
		}
	},
)

func TestModel_RoundTrip(t *testing.T) {
	note := "vip"
	for _, a := range []account{
		{ID: "a1", Balance: 1 << 40, Note: &note, Tags: []string{"x", "y"}},
		{ID: "a2", Balance: -5, Tags: []string{}},
	} {
		b, err := jm.EncodeBytes(accountCodec, a)
		if err != nil {
			t.Fatal(err)
		}
		got, err := jm.DecodeBytes(accountCodec, b)
		if err != nil {
			t.Fatalf("decode %s: %v", b, err)
		}
		if got.ID != a.ID || got.Balance != a.Balance || len(got.Tags) != len(a.Tags) {
			t.Fatalf("round trip: %+v vs %+v", got, a)
		}
		if (got.Note == nil) != (a.Note == nil) || (a.Note != nil && *got.Note != *a.Note) {
			t.Fatalf("note: %v vs %v", got.Note, a.Note)
		}
	}
}

func TestModel_DecodeFailures(t *testing.T) {
	if _, err := jm.DecodeBytes(accountCodec, []byte(`[1]`)); !errors.Is(err, jm.ErrNotAnObject) {
		t.Fatalf("array root: %v", err)
	}
	_, err := jm.DecodeBytes(accountCodec, []byte(`{"id":"a","balance":1,"tags":["ok",2]}`))
	if err == nil || err.Error() != "[tags][1]: Invalid element" {
		t.Fatalf("tags: %v", err)
	}
	_, err = jm.DecodeReader(accountCodec, strings.NewReader(`{"id":`))
	var pe *jm.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T %v", err, err)
	}
}

func TestModel_NestedInSlice(t *testing.T) {
	v := mustParse(t, `[{"id":"a","balance":1,"tags":[]},{"id":"b","tags":[]}]`)
	_, err := jm.SliceOf(accountCodec).Decode(v)
	want := jm.ForKey("1", jm.ForKey("balance", jm.ErrInvalidElement))
	if !isChain(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestUUID(t *testing.T) {
	c := jm.UUID()
	id, err := c.Decode(jm.NewString("{6BA7B810-9DAD-11D1-80B4-00C04FD430C8}"))
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Encode(id); !got.Equal(jm.NewString("6ba7b810-9dad-11d1-80b4-00c04fd430c8")) {
		t.Fatalf("encode: %s", got)
	}
	if _, err := c.Decode(jm.NewString("nope")); !errors.Is(err, jm.ErrInvalidFormat) {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}
	if _, err := c.Decode(jm.NewInt(1)); !errors.Is(err, jm.ErrInvalidElement) {
		t.Fatalf("expected InvalidElement, got %v", err)
	}
}

func isChain(err error, want *jm.DecodeError) bool {
	de, ok := jm.AsDecodeError(err)
	return ok && de.Equal(want)
}

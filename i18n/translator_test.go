package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg != "Invalid element" {
		t.Fatalf("expected english message, got %q", msg)
	}
	if msg := T("not_an_object", nil); msg != "JSON is not an object" {
		t.Fatalf("expected english message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_format", nil); msg == "Invalid format" || msg == "" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "E:" + code }

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)

	if msg := T("invalid_type", nil); msg != "E:invalid_type" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestMatch(t *testing.T) {
	cases := map[string]string{
		"ja":             "ja",
		"ja-JP":          "ja",
		"fr, ja;q=0.8":   "ja",
		"en-GB":          "en",
		"de":             "en",
		"":               "en",
		"not a language": "en",
	}
	for in, want := range cases {
		if got := Match(in); got != want {
			t.Fatalf("Match(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetLanguage_RegionalTag(t *testing.T) {
	SetLanguage("ja-JP")
	defer SetLanguage("en")
	if msg := T("not_an_object", nil); msg != "JSONがオブジェクトではありません" {
		t.Fatalf("unexpected message %q", msg)
	}
}

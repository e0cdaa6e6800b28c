// Package i18n translates decode issue codes into human-readable messages.
package i18n

import (
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for issue codes.
// data provides optional metadata to embed in the message (for example,
// "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "not_an_object":
			return "JSONがオブジェクトではありません"
		case "invalid_type":
			return "要素が不正です"
		case "invalid_format":
			return "形式が不正です"
		}
	default: // "en"
		switch code {
		case "not_an_object":
			return "JSON is not an object"
		case "invalid_type":
			return "Invalid element"
		case "invalid_format":
			return "Invalid format"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

var supported = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// SetLanguage switches the built-in Translator to the best match for the
// given BCP 47 tags or Accept-Language values ("ja-JP", "ja;q=0.9, en").
// Unsupported languages fall back to English.
func SetLanguage(langs ...string) {
	SetTranslator(dictTranslator{lang: Match(langs...)})
}

// Match returns the built-in dictionary language ("en" or "ja") that best
// serves langs.
func Match(langs ...string) string {
	tag, _ := language.MatchStrings(supported, langs...)
	base, _ := tag.Base()
	if base.String() == "ja" {
		return "ja"
	}
	return "en"
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}

package echomw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonmodel"
)

type noteKey string

const noteText noteKey = "text"

var noteCodec = jsonmodel.Model(
	func(o jsonmodel.Object[noteKey]) (string, error) { return jsonmodel.Required(o, jsonmodel.String(), noteText) },
	func(s string) jsonmodel.Fields[noteKey] { return jsonmodel.Fields[noteKey]{noteText: jsonmodel.NewString(s)} },
)

func TestDecodeJSON(t *testing.T) {
	e := echo.New()
	e.POST("/notes", func(c echo.Context) error {
		text, _ := GetDecoded[string](c)
		return c.String(http.StatusOK, text)
	}, DecodeJSON[string](noteCodec, jsonmodel.ParseOpt{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"text":"hi"}`)))
	if rec.Code != http.StatusOK || rec.Body.String() != "hi" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`[]`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"not_an_object"`) {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

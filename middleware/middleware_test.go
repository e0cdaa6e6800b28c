package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonmodel"
)

type userKey string

const (
	userName   userKey = "name"
	userActive userKey = "active"
)

type user struct {
	Name   string
	Active bool
}

var userCodec = jsonmodel.Model(
	func(o jsonmodel.Object[userKey]) (user, error) {
		var (
			u   user
			err error
		)
		if u.Name, err = jsonmodel.Required(o, jsonmodel.String(), userName); err != nil {
			return u, err
		}
		active, err := jsonmodel.Optional(o, jsonmodel.Bool(), userActive)
		if err != nil {
			return u, err
		}
		u.Active = active == nil || *active
		return u, nil
	},
	func(u user) jsonmodel.Fields[userKey] {
		return jsonmodel.Fields[userKey]{userName: jsonmodel.NewString(u.Name), userActive: jsonmodel.NewBool(u.Active)}
	},
)

func serve(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := DecodeJSON[user](userCodec, jsonmodel.ParseOpt{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := DecodedFromContext[user](r.Context())
		require.True(t, ok)
		WriteJSON(w, http.StatusOK, map[string]any{"name": u.Name, "active": u.Active})
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))
	return rec
}

func TestDecodeJSON(t *testing.T) {
	rec := serve(t, `{"name":"alice"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"alice","active":true}`, rec.Body.String())
}

func TestDecodeJSON_DecodeError(t *testing.T) {
	rec := serve(t, `{"name":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"[name]: Invalid element","code":"invalid_type","pointer":"/name"}`, rec.Body.String())
}

func TestDecodeJSON_DuplicateKeyRejectedByDefault(t *testing.T) {
	rec := serve(t, `{"name":"a","name":"b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"duplicate_key"`)
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	rec := serve(t, `{"name":"`+strings.Repeat("x", DefaultMaxBytes)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"truncated"`)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, jsonmodel.Error, Resolve(jsonmodel.ParseOpt{}).OnDuplicateKey)
	custom := jsonmodel.ParseOpt{MaxDepth: 3}
	assert.Equal(t, 3, Resolve(custom).MaxDepth)
	assert.Equal(t, jsonmodel.Ignore, Resolve(custom).OnDuplicateKey)
}

func TestErrorPayload_Plain(t *testing.T) {
	assert.Equal(t, map[string]any{"error": "boom"}, ErrorPayload(errors.New("boom")))
}

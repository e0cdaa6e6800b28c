// Package middleware decodes JSON request bodies with jsonmodel decoders at
// HTTP boundaries. Framework adapters live in the gin and echo submodules.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/reoring/jsonmodel"
)

// ctxKeyDecoded is a typed context key for storing a decoded T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a decoded T to the context.
func ContextWithDecoded[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, v)
}

// DecodedFromContext retrieves a decoded T from context.
func DecodedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(T)
	return v, ok
}

// DefaultMaxBytes caps request bodies under DefaultParseOpt.
const DefaultMaxBytes = 1 << 20

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are capped at DefaultMaxBytes
func DefaultParseOpt() jsonmodel.ParseOpt {
	return jsonmodel.ParseOpt{OnDuplicateKey: jsonmodel.Error, MaxBytes: DefaultMaxBytes}
}

// Resolve returns opt, or DefaultParseOpt when opt is the zero value.
func Resolve(opt jsonmodel.ParseOpt) jsonmodel.ParseOpt {
	if opt.OnDuplicateKey == jsonmodel.Ignore && opt.MaxBytes == 0 && opt.MaxDepth == 0 && opt.OnIssue == nil {
		return DefaultParseOpt()
	}
	return opt
}

// ErrorPayload shapes a decode or parse failure for JSON responses.
// Decode errors carry the localized message, the issue code and the JSON
// Pointer of the failing value.
func ErrorPayload(err error) map[string]any {
	if de, ok := jsonmodel.AsDecodeError(err); ok {
		return map[string]any{"error": de.Localize(), "code": de.Code(), "pointer": de.Pointer()}
	}
	var pe *jsonmodel.ParseError
	if errors.As(err, &pe) {
		out := map[string]any{"error": pe.Error(), "code": pe.Code}
		if pe.Path != "" {
			out["pointer"] = pe.Path
		}
		return out
	}
	return map[string]any{"error": err.Error()}
}

// DecodeBody decodes r's body with dec.
func DecodeBody[T any](r *http.Request, dec jsonmodel.Decoder[T], opt jsonmodel.ParseOpt) (T, error) {
	if r.Body == nil {
		var zero T
		return zero, &jsonmodel.ParseError{Code: jsonmodel.CodeParseError, Offset: -1, Err: errors.New("empty body")}
	}
	return jsonmodel.DecodeReader(dec, r.Body, Resolve(opt))
}

// DecodeJSON decodes the request body with dec, stores the result in the
// request context, and on failure answers 400 with ErrorPayload.
func DecodeJSON[T any](dec jsonmodel.Decoder[T], opt jsonmodel.ParseOpt) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := DecodeBody(r, dec, opt)
			if err != nil {
				WriteJSON(w, http.StatusBadRequest, ErrorPayload(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), v)))
		})
	}
}

// WriteJSON renders payload with the active jsonmodel driver.
func WriteJSON(w http.ResponseWriter, status int, payload map[string]any) {
	b, err := jsonmodel.Marshal(jsonmodel.MustFromAny(payload))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Dosada05/retrogaming-api/negotiation"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// FormatURLParam is the chi URL parameter of the /leaderboard/{format} route.
const FormatURLParam = "format"

// Negotiate chooses the response representation. An explicit format (".xml"
// suffix picked up by chi's URLFormat, or a {format} segment) wins over the
// Accept header. When nothing acceptable remains the request ends with 406.
//
// It must run after routing (r.With) so that {format} is already bound.
func Negotiate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept")

		var (
			format negotiation.Format
			err    error
		)
		if explicit := explicitFormat(r); explicit != "" {
			format, err = negotiation.ParseFormat(explicit)
		} else {
			format, err = negotiation.FromAccept(r.Header.Get("Accept"))
		}
		if err != nil {
			if errors.Is(err, negotiation.ErrNotAcceptable) {
				writeError(w, http.StatusNotAcceptable, err.Error())
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), formatContextKey, format)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func explicitFormat(r *http.Request) string {
	if f := chi.URLParam(r, FormatURLParam); f != "" {
		return f
	}
	if f, ok := r.Context().Value(chiMiddleware.URLFormatCtxKey).(string); ok {
		return f
	}
	return ""
}

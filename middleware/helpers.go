package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Dosada05/retrogaming-api/models"
	"github.com/Dosada05/retrogaming-api/negotiation"
)

type contextKey string

const (
	apiVersionContextKey contextKey = "api_version"
	formatContextKey     contextKey = "response_format"
)

// APIVersionFromContext returns the version resolved by APIVersion, or the
// default version when the middleware did not run.
func APIVersionFromContext(ctx context.Context) models.APIVersion {
	if v, ok := ctx.Value(apiVersionContextKey).(models.APIVersion); ok && v != "" {
		return v
	}
	return models.DefaultAPIVersion
}

// FormatFromContext returns the representation chosen by Negotiate. Without
// negotiation the default (JSON) is used.
func FormatFromContext(ctx context.Context) negotiation.Format {
	if f, ok := ctx.Value(formatContextKey).(negotiation.Format); ok && f != negotiation.FormatUnknown {
		return f
	}
	return negotiation.Supported[0]
}

// writeError пишет JSON-ошибку в том же конверте, что и handlers.
func writeError(w http.ResponseWriter, status int, payload interface{}) {
	js, err := json.Marshal(map[string]interface{}{"error": payload})
	if err != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", negotiation.FormatJSON.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(append(js, '\n'))
}

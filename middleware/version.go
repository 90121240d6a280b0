package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dosada05/retrogaming-api/models"
	"github.com/go-chi/chi/v5"
)

const (
	HeaderSupportedVersions = "api-supported-versions"

	// VersionURLParam is the chi URL parameter carrying the version segment.
	VersionURLParam = "version"
)

// APIVersion resolves the {version} URL parameter. A route without the
// parameter means the default version; an empty or unsupported one is rejected
// with 400. The supported versions are reported on every response.
func APIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderSupportedVersions, models.SupportedAPIVersionsHeader())

		raw, bound := versionParam(r)
		version, ok := models.ParseAPIVersion(raw)
		if !ok || (bound && strings.TrimSpace(raw) == "") {
			writeError(w, http.StatusBadRequest, map[string]string{
				"code":    "UnsupportedApiVersion",
				"message": fmt.Sprintf("the requested API version %q is not supported; supported versions: %s", raw, models.SupportedAPIVersionsHeader()),
			})
			return
		}

		ctx := context.WithValue(r.Context(), apiVersionContextKey, version)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// versionParam also reports whether the matched route declares {version}:
// "/api/v/leaderboard" binds it to "".
func versionParam(r *http.Request) (string, bool) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "", false
	}
	for i, key := range rctx.URLParams.Keys {
		if key == VersionURLParam {
			return rctx.URLParams.Values[i], true
		}
	}
	return "", false
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/retrogaming-api/docs"
	"github.com/Dosada05/retrogaming-api/models"
	"github.com/Dosada05/retrogaming-api/negotiation"
)

var errEmptyDocument = errors.New("openapi document is empty")

type DocsHandler struct {
	logger *slog.Logger
}

func NewDocsHandler(logger *slog.Logger) *DocsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocsHandler{logger: logger}
}

// Document serves the registered OpenAPI document of one API version.
func (h *DocsHandler) Document(version models.APIVersion) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := docs.Read(version)
		if err != nil || doc == "" {
			if err == nil {
				err = errEmptyDocument
			}
			serverErrorResponse(h.logger, w, r, err)
			return
		}
		w.Header().Set("Content-Type", negotiation.FormatJSON.ContentType())
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(doc)); err != nil {
			h.logger.WarnContext(r.Context(), "failed to write openapi document", slog.Any("error", err))
		}
	}
}

// UI serves the Swagger UI assets. Paths the UI does not know are answered by
// notFound instead of the UI's own plain-text 404.
func (h *DocsHandler) UI(ui http.Handler, notFound http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw := &notFoundSuppressor{ResponseWriter: w}
		ui.ServeHTTP(sw, r)
		if sw.notFound {
			w.Header().Del("Content-Type")
			w.Header().Del("Content-Length")
			notFound.ServeHTTP(w, r)
		}
	}
}

// notFoundSuppressor swallows a 404 status and its body.
type notFoundSuppressor struct {
	http.ResponseWriter
	wroteHeader bool
	notFound    bool
}

func (w *notFoundSuppressor) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if status == http.StatusNotFound {
		w.notFound = true
		return
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *notFoundSuppressor) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.notFound {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/retrogaming-api/middleware"
	"github.com/Dosada05/retrogaming-api/negotiation"
	"github.com/Dosada05/retrogaming-api/services"
)

type jsonResponse map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", negotiation.FormatJSON.ContentType())
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// writeNegotiated encodes data in the format chosen by middleware.Negotiate.
// Encoding happens before the status line is written, so an encoding failure
// can still be reported as a 500 and a client never sees half a body.
func writeNegotiated(w http.ResponseWriter, r *http.Request, status int, data interface{}, headers http.Header) (bool, error) {
	format := middleware.FormatFromContext(r.Context())
	body, err := negotiation.Marshal(format, data)
	if err != nil {
		return false, err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)
	_, err = w.Write(body)
	return true, err
}

func errorResponse(logger *slog.Logger, w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		logger.ErrorContext(r.Context(), "failed to write error response",
			slog.Int("status", status),
			slog.Any("error", err))
	}
}

func serverErrorResponse(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(logger, w, r, http.StatusInternalServerError, message)
}

func serviceUnavailableResponse(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	logger.WarnContext(r.Context(), "service unavailable",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the service is temporarily unable to handle your request"
	errorResponse(logger, w, r, http.StatusServiceUnavailable, message)
}

// NotFoundResponse and MethodNotAllowedResponse are the status pages used in development.
func NotFoundResponse(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message := "the requested resource could not be found"
		errorResponse(logger, w, r, http.StatusNotFound, message)
	}
}

func MethodNotAllowedResponse(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message := "the " + r.Method + " method is not supported for this resource"
		errorResponse(logger, w, r, http.StatusMethodNotAllowed, message)
	}
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Клиент ушёл: отвечать некому, просто фиксируем.
	case errors.Is(err, context.Canceled):
		logger.InfoContext(r.Context(), "request canceled by client", slog.String("path", r.URL.Path))

	case errors.Is(err, context.DeadlineExceeded):
		serviceUnavailableResponse(logger, w, r, err)

	// Нарушение целостности хранилища не маскируем: 500 + подробный лог.
	case errors.Is(err, services.ErrScoreGamerMissing):
		logger.ErrorContext(r.Context(), "score references a missing gamer", slog.Any("error", err))
		serverErrorResponse(logger, w, r, err)

	default:
		serverErrorResponse(logger, w, r, err)
	}
}

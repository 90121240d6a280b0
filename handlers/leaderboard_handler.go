package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/retrogaming-api/middleware"
	"github.com/Dosada05/retrogaming-api/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
	logger             *slog.Logger
}

func NewLeaderboardHandler(ls services.LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardHandler{
		leaderboardService: ls,
		logger:             logger,
	}
}

// GetLeaderboard отдаёт весь текущий лидерборд в согласованном формате (JSON/XML).
// Версия API и формат уже выбраны middleware.APIVersion и middleware.Negotiate.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboardService.GetLeaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(h.logger, w, r, err)
		return
	}

	written, err := writeNegotiated(w, r, http.StatusOK, board, nil)
	if err != nil {
		if !written {
			serverErrorResponse(h.logger, w, r, err)
			return
		}
		h.logger.WarnContext(r.Context(), "failed to write leaderboard response", slog.Any("error", err))
		return
	}

	h.logger.DebugContext(r.Context(), "leaderboard served",
		slog.String("api_version", middleware.APIVersionFromContext(r.Context()).String()),
		slog.String("format", middleware.FormatFromContext(r.Context()).String()),
		slog.Int("entries", len(board)))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/retrogaming-api/models"
	"github.com/Dosada05/retrogaming-api/repositories"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) (models.Leaderboard, error)
}

type leaderboardService struct {
	scoreRepo repositories.ScoreRepository
	logger    *slog.Logger
}

func NewLeaderboardService(scoreRepo repositories.ScoreRepository, logger *slog.Logger) LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &leaderboardService{
		scoreRepo: scoreRepo,
		logger:    logger,
	}
}

// GetLeaderboard reads every score with its gamer and projects it. It returns
// either the whole current leaderboard or an error, never a partial result.
func (s *leaderboardService) GetLeaderboard(ctx context.Context) (models.Leaderboard, error) {
	scores, err := s.scoreRepo.ListWithGamers(ctx)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrGamerNotFound):
			return nil, fmt.Errorf("%w: %w", ErrScoreGamerMissing, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %w", ErrLeaderboardUnavailable, err)
		}
	}

	entries, err := ProjectLeaderboard(scores)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "leaderboard projected", slog.Int("entries", len(entries)))
	return entries, nil
}

// ProjectLeaderboard maps scores to leaderboard entries one to one, keeping
// the input order. A score without a resolved gamer fails the whole projection.
func ProjectLeaderboard(scores []models.Score) (models.Leaderboard, error) {
	entries := make(models.Leaderboard, 0, len(scores))
	for _, score := range scores {
		if score.Gamer == nil {
			return nil, fmt.Errorf("%w: score %d (gamer %d)", ErrScoreGamerMissing, score.ID, score.GamerID)
		}
		entries = append(entries, models.LeaderboardEntry{
			Game:     score.Game,
			Nickname: score.Gamer.Nickname,
			Points:   score.Points,
		})
	}
	return entries, nil
}

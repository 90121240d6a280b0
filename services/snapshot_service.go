package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/Dosada05/retrogaming-api/negotiation"
	"github.com/Dosada05/retrogaming-api/storage"
	"golang.org/x/sync/errgroup"
)

// SnapshotObject describes one published representation of the leaderboard.
type SnapshotObject struct {
	Format negotiation.Format `json:"format"`
	Key    string             `json:"key"`
	URL    string             `json:"url"`
	ETag   string             `json:"etag"`
}

type SnapshotResult struct {
	Entries int              `json:"entries"`
	Objects []SnapshotObject `json:"objects"`
}

type SnapshotService interface {
	Publish(ctx context.Context) (*SnapshotResult, error)
}

type snapshotService struct {
	leaderboard LeaderboardService
	uploader    storage.FileUploader
	prefix      string
	logger      *slog.Logger
}

func NewSnapshotService(leaderboard LeaderboardService, uploader storage.FileUploader, prefix string, logger *slog.Logger) SnapshotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &snapshotService{
		leaderboard: leaderboard,
		uploader:    uploader,
		prefix:      strings.Trim(prefix, "/"),
		logger:      logger,
	}
}

// Publish reads the leaderboard once and uploads it in every supported format.
// Both encodings come from the same in-memory snapshot, so they always carry
// the same entries.
func (s *snapshotService) Publish(ctx context.Context) (*SnapshotResult, error) {
	board, err := s.leaderboard.GetLeaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotPublishFailed, err)
	}

	payloads := make(map[negotiation.Format][]byte, len(negotiation.Supported))
	for _, f := range negotiation.Supported {
		body, err := negotiation.Marshal(f, board)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSnapshotPublishFailed, err)
		}
		payloads[f] = body
	}

	objects := make([]SnapshotObject, len(negotiation.Supported))
	g, gCtx := errgroup.WithContext(ctx)
	for i, f := range negotiation.Supported {
		key := s.objectKey(f)
		body := payloads[f]
		g.Go(func() error {
			res, err := s.uploader.Upload(gCtx, key, f.ContentType(), bytes.NewReader(body))
			if err != nil {
				return err
			}
			objects[i] = SnapshotObject{Format: f, Key: res.Key, URL: res.Location, ETag: res.ETag}
			s.logger.InfoContext(gCtx, "leaderboard snapshot uploaded",
				slog.String("format", f.String()),
				slog.String("key", res.Key),
				slog.Int("bytes", len(body)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotPublishFailed, err)
	}

	return &SnapshotResult{Entries: len(board), Objects: objects}, nil
}

func (s *snapshotService) objectKey(f negotiation.Format) string {
	name := "leaderboard." + f.String()
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

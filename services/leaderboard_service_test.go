package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/Dosada05/retrogaming-api/models"
	"github.com/Dosada05/retrogaming-api/repositories"
)

type fakeScoreRepository struct {
	scores []models.Score
	err    error
	calls  int
}

func (f *fakeScoreRepository) ListWithGamers(ctx context.Context) ([]models.Score, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Score, len(f.scores))
	copy(out, f.scores)
	return out, nil
}

func (f *fakeScoreRepository) Ping(ctx context.Context) error {
	return f.err
}

func gamer(id int, nickname string) *models.Gamer {
	return &models.Gamer{ID: id, Nickname: nickname}
}

func TestProjectLeaderboard(t *testing.T) {
	ace := gamer(1, "Ace")
	blinky := gamer(2, "Blinky")
	scores := []models.Score{
		{ID: 1, Game: "Pac-Man", Points: 9000, GamerID: 1, Gamer: ace},
		{ID: 2, Game: "Galaga", Points: 10, GamerID: 2, Gamer: blinky},
		{ID: 3, Game: "Pac-Man", Points: 9000, GamerID: 1, Gamer: ace},
	}

	got, err := ProjectLeaderboard(scores)
	if err != nil {
		t.Fatalf("ProjectLeaderboard() error = %v", err)
	}

	// Порядок входа сохраняется, дубликаты не схлопываются.
	want := models.Leaderboard{
		{Game: "Pac-Man", Nickname: "Ace", Points: 9000},
		{Game: "Galaga", Nickname: "Blinky", Points: 10},
		{Game: "Pac-Man", Nickname: "Ace", Points: 9000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProjectLeaderboard() = %+v, want %+v", got, want)
	}
}

func TestProjectLeaderboardEmpty(t *testing.T) {
	for _, in := range [][]models.Score{nil, {}} {
		got, err := ProjectLeaderboard(in)
		if err != nil {
			t.Fatalf("ProjectLeaderboard(%v) error = %v", in, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("ProjectLeaderboard(%v) = %#v, want empty non-nil", in, got)
		}
	}
}

func TestProjectLeaderboardMissingGamer(t *testing.T) {
	scores := []models.Score{
		{ID: 1, Game: "Pac-Man", Points: 1, GamerID: 1, Gamer: gamer(1, "Ace")},
		{ID: 2, Game: "Galaga", Points: 2, GamerID: 7},
	}

	got, err := ProjectLeaderboard(scores)
	if !errors.Is(err, ErrScoreGamerMissing) {
		t.Fatalf("ProjectLeaderboard() error = %v, want ErrScoreGamerMissing", err)
	}
	if got != nil {
		t.Fatalf("ProjectLeaderboard() returned partial result %+v", got)
	}
}

func TestGetLeaderboard(t *testing.T) {
	repo := &fakeScoreRepository{scores: []models.Score{
		{ID: 1, Game: "Pac-Man", Points: 9000, GamerID: 1, Gamer: gamer(1, "Ace")},
	}}
	svc := NewLeaderboardService(repo, nil)

	first, err := svc.GetLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	second, err := svc.GetLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("second GetLeaderboard() error = %v", err)
	}

	want := models.Leaderboard{{Game: "Pac-Man", Nickname: "Ace", Points: 9000}}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("GetLeaderboard() = %+v, want %+v", first, want)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated GetLeaderboard() differs: %+v vs %+v", first, second)
	}
	if repo.calls != 2 {
		t.Fatalf("store queried %d times, want 2 (no caching)", repo.calls)
	}
}

func TestGetLeaderboardErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{
			name:    "missing gamer",
			repoErr: fmt.Errorf("%w: score 3 references gamer 9", repositories.ErrGamerNotFound),
			want:    ErrScoreGamerMissing,
		},
		{
			name:    "store unavailable",
			repoErr: fmt.Errorf("%w: connection refused", repositories.ErrStoreUnavailable),
			want:    ErrLeaderboardUnavailable,
		},
		{
			name:    "query failure",
			repoErr: errors.New("no such table: scores"),
			want:    ErrLeaderboardUnavailable,
		},
		{
			name:    "canceled",
			repoErr: context.Canceled,
			want:    context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLeaderboardService(&fakeScoreRepository{err: tt.repoErr}, nil)
			got, err := svc.GetLeaderboard(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("GetLeaderboard() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Fatalf("GetLeaderboard() returned %+v alongside error", got)
			}
		})
	}
}

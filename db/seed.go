package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/retrogaming-api/models"
)

// SampleGamers и SampleScores заполняют пустое хранилище в режиме development.
var (
	SampleGamers = []models.Gamer{
		{ID: 1, Nickname: "LX360"},
		{ID: 2, Nickname: "LeekGeek"},
		{ID: 3, Nickname: "Ace"},
	}

	SampleScores = []models.Score{
		{ID: 1, Game: "Pac-Man", Points: 6287, GamerID: 1},
		{ID: 2, Game: "Donkey Kong", Points: 1064500, GamerID: 2},
		{ID: 3, Game: "Pac-Man", Points: 9000, GamerID: 3},
		{ID: 4, Game: "Galaga", Points: 3137560, GamerID: 1},
	}
)

// Seed inserts the sample gamers and scores when the gamers table is empty.
// It reports whether anything was inserted.
func Seed(ctx context.Context, db *sql.DB, driver string) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gamers`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count gamers: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() // no-op после Commit

	if err := insertGamers(ctx, tx, driver, SampleGamers); err != nil {
		return false, err
	}
	if err := insertScores(ctx, tx, driver, SampleScores); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return true, nil
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertGamers(ctx context.Context, ex Execer, driver string, gamers []models.Gamer) error {
	query := fmt.Sprintf(`INSERT INTO gamers (id, nickname) VALUES (%s, %s)`,
		placeholder(driver, 1), placeholder(driver, 2))
	for _, g := range gamers {
		if _, err := ex.ExecContext(ctx, query, g.ID, g.Nickname); err != nil {
			return fmt.Errorf("failed to insert gamer %d: %w", g.ID, err)
		}
	}
	return nil
}

func insertScores(ctx context.Context, ex Execer, driver string, scores []models.Score) error {
	query := fmt.Sprintf(`INSERT INTO scores (id, game, points, gamer_id) VALUES (%s, %s, %s, %s)`,
		placeholder(driver, 1), placeholder(driver, 2), placeholder(driver, 3), placeholder(driver, 4))
	for _, s := range scores {
		if _, err := ex.ExecContext(ctx, query, s.ID, s.Game, s.Points, s.GamerID); err != nil {
			return fmt.Errorf("failed to insert score %d: %w", s.ID, err)
		}
	}
	return nil
}

// InsertGamers and InsertScores load fixtures outside of Seed (tests, imports).
func InsertGamers(ctx context.Context, ex Execer, driver string, gamers ...models.Gamer) error {
	return insertGamers(ctx, ex, driver, gamers)
}

func InsertScores(ctx context.Context, ex Execer, driver string, scores ...models.Score) error {
	return insertScores(ctx, ex, driver, scores)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/retrogaming-api/models"
	"github.com/lib/pq"
)

var (
	// ErrGamerNotFound: score ссылается на несуществующего игрока (нарушение целостности хранилища).
	ErrGamerNotFound    = errors.New("gamer referenced by score not found")
	ErrStoreUnavailable = errors.New("score store unavailable")
)

type ScoreRepository interface {
	// ListWithGamers returns every score with its Gamer populated, in store order.
	ListWithGamers(ctx context.Context) ([]models.Score, error)
	Ping(ctx context.Context) error
}

type sqlScoreRepository struct {
	db *sql.DB
}

// NewSQLScoreRepository works with both the postgres and the sqlite driver:
// the read path uses no bind parameters, so the query is dialect neutral.
func NewSQLScoreRepository(db *sql.DB) ScoreRepository {
	return &sqlScoreRepository{db: db}
}

func (r *sqlScoreRepository) ListWithGamers(ctx context.Context) ([]models.Score, error) {
	// LEFT JOIN, чтобы score без игрока не пропадал молча.
	query := `
		SELECT
			s.id, s.game, s.points, s.gamer_id,
			g.id, g.nickname
		FROM scores s
		LEFT JOIN gamers g ON g.id = s.gamer_id
		ORDER BY s.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	scores := make([]models.Score, 0)
	for rows.Next() {
		var (
			score         models.Score
			gamerID       sql.NullInt64
			gamerNickname sql.NullString
		)
		if err := rows.Scan(&score.ID, &score.Game, &score.Points, &score.GamerID, &gamerID, &gamerNickname); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		if !gamerID.Valid {
			return nil, fmt.Errorf("%w: score %d references gamer %d", ErrGamerNotFound, score.ID, score.GamerID)
		}
		score.Gamer = &models.Gamer{
			ID:       int(gamerID.Int64),
			Nickname: gamerNickname.String,
		}
		scores = append(scores, score)
	}

	// Критически важная проверка ошибки после цикла
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return scores, nil
}

func (r *sqlScoreRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// classifyError marks connection-level failures as ErrStoreUnavailable so the
// service can tell an unreachable store apart from a broken query.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "57": // connection_exception, operator_intervention
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}
	return err
}

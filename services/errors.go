package services

import "errors"

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	// Хранилище недоступно или запрос к нему завершился ошибкой.
	ErrLeaderboardUnavailable = errors.New("leaderboard could not be read from the score store")

	// Нарушение целостности: score ссылается на отсутствующего игрока.
	ErrScoreGamerMissing = errors.New("score references a gamer that does not exist")

	ErrSnapshotPublishFailed = errors.New("failed to publish leaderboard snapshot")
)

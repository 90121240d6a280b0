package models

// Gamer представляет игрока с отображаемым никнеймом.
type Gamer struct {
	ID       int    `json:"id" db:"id"`
	Nickname string `json:"nickname" db:"nickname"`
}

package models

// Score is a recorded result for a game. Gamer is populated by the repository
// when the score is loaded together with its owner.
type Score struct {
	ID      int    `json:"id" db:"id"`
	Game    string `json:"game" db:"game"`
	Points  int    `json:"points" db:"points"`
	GamerID int    `json:"gamer_id" db:"gamer_id"`

	Gamer *Gamer `json:"gamer,omitempty" db:"-"`
}

package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

// Result is one finished game in the history.
type Result struct {
	GameID     string               `json:"game_id"     db:"game_id"`
	Winner     string               `json:"winner"      db:"winner"`
	HumanMark  string               `json:"human_mark"  db:"human_mark"`
	Difficulty tictactoe.Difficulty `json:"difficulty"  db:"difficulty"`
	FinishedAt time.Time            `json:"finished_at" db:"finished_at"`
}

func NewResult(game *Game, finishedAt time.Time) *Result {
	return &Result{
		GameID:     game.ID,
		Winner:     game.Winner,
		HumanMark:  game.HumanMark,
		Difficulty: game.Difficulty,
		FinishedAt: finishedAt,
	}
}

// Stats aggregates the history of one difficulty from the human's point of view.
type Stats struct {
	Difficulty tictactoe.Difficulty `json:"difficulty" db:"difficulty"`
	Played     int                  `json:"played"     db:"played"`
	HumanWins  int                  `json:"human_wins" db:"human_wins"`
	BotWins    int                  `json:"bot_wins"   db:"bot_wins"`
	Ties       int                  `json:"ties"       db:"ties"`
}

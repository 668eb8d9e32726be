package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = tictactoe.MarkX
	PlayerO   = tictactoe.MarkO
	PlayerTie = tictactoe.Tie

	EmptyCell = tictactoe.Empty
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrInvalidGame       = errors.New("invalid game")
)

// Game is a single human-versus-bot session together with the running score of both marks.
type Game struct {
	ID         string               `json:"id"`
	Board      [9]string            `json:"board"`
	HumanMark  string               `json:"human_mark"`
	BotMark    string               `json:"bot_mark"`
	Turn       string               `json:"turn"`
	Difficulty tictactoe.Difficulty `json:"difficulty"`
	Status     string               `json:"status"`
	Winner     string               `json:"winner"`
	ScoreX     int                  `json:"score_x"`
	ScoreO     int                  `json:"score_o"`
}

// NewGame - creates an ongoing game where X moves first.
func NewGame(id, humanMark string, difficulty tictactoe.Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		HumanMark:  humanMark,
		BotMark:    tictactoe.Opponent(humanMark),
		Turn:       PlayerX,
		Difficulty: difficulty,
		Status:     StatusOngoing,
	}
}

func (that *Game) DetermineGameResult() string {
	return tictactoe.Result(that.Board)
}

// UpdateGameState - finishes the game on a win or a tie and credits the winner.
func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
		that.addPoint(winner)
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(playerMark string, cell int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if result := that.DetermineGameResult(); result != EmptyCell {
		return fmt.Errorf("%w: board is already decided (%q) but status is %s", ErrInvalidGame, result, that.Status)
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.Turn = tictactoe.Opponent(playerMark)

	that.UpdateGameState()

	return nil
}

// NewRound - clears the board and keeps marks, difficulty and score.
func (that *Game) NewRound() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = ""
	that.Status = StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Validate - checks a game received from a client before it is stored or played.
func (that *Game) Validate() error {
	if !tictactoe.IsValidMark(that.HumanMark) || that.BotMark != tictactoe.Opponent(that.HumanMark) {
		return fmt.Errorf("%w: human %q, bot %q", ErrInvalidGame, that.HumanMark, that.BotMark)
	}

	if err := that.Difficulty.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGame, err)
	}

	for i, cell := range that.Board {
		if cell != EmptyCell && !tictactoe.IsValidMark(cell) {
			return fmt.Errorf("%w: cell %d holds %q", ErrInvalidGame, i, cell)
		}
	}

	if that.IsOngoing() && !tictactoe.IsValidMark(that.Turn) {
		return fmt.Errorf("%w: turn %q", ErrInvalidGame, that.Turn)
	}

	if that.ScoreX < 0 || that.ScoreO < 0 {
		return fmt.Errorf("%w: negative score", ErrInvalidGame)
	}

	if err := that.ConfirmKnownStatus(); err != nil {
		return err
	}

	return that.confirmBoardMatchesStatus()
}

// confirmBoardMatchesStatus - an ongoing game has an undecided board, a finished one names its result as winner.
func (that *Game) confirmBoardMatchesStatus() error {
	result := that.DetermineGameResult()

	if that.IsOngoing() && result != EmptyCell {
		return fmt.Errorf("%w: ongoing game with decided board (%q)", ErrInvalidGame, result)
	}

	if that.IsFinished() && (result == EmptyCell || that.Winner != result) {
		return fmt.Errorf("%w: finished game with winner %q, board says %q", ErrInvalidGame, that.Winner, result)
	}

	return nil
}

func (that *Game) ConfirmKnownStatus() error {
	if that.IsOngoing() || that.IsFinished() {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
}

func (that *Game) addPoint(mark string) {
	if mark == PlayerX {
		that.ScoreX++
	} else {
		that.ScoreO++
	}
}

// GetRandomMarks - returns a random (human, bot) mark pair.
func GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}

package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects the move strategy of the bot.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty - converts user input into a Difficulty, ignoring case and surrounding spaces.
func ParseDifficulty(value string) (Difficulty, error) {
	difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value)))
	if err := difficulty.Validate(); err != nil {
		return "", err
	}

	return difficulty, nil
}

func (that Difficulty) Validate() error {
	switch that {
	case Easy, Normal, Hard:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(that))
	}
}

func (that Difficulty) String() string {
	return string(that)
}

package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrGameAlreadyWon   = errors.New("game already has a winner")
	ErrInvalidMarks     = errors.New("invalid player marks")
)

// chance that a tier plays the SmartMove instead of a random cell.
const (
	easySmartChance   = 0.2
	normalSmartChance = 0.7
)

// Engine chooses bot moves. It is safe for concurrent use as long as its Rand is.
type Engine struct {
	rnd Rand
}

// NewEngine - creates an engine over rnd. A nil rnd is replaced by a time-seeded locked source.
func NewEngine(rnd Rand) *Engine {
	if rnd == nil {
		rnd = NewLockedRand(time.Now().UnixNano())
	}

	return &Engine{rnd: rnd}
}

// ChooseMove - returns the bot's next cell for the given difficulty.
// Boards that are already won or full are rejected.
func (that *Engine) ChooseMove(board [BoardSize]string, botMark, humanMark string, difficulty Difficulty) (int, error) {
	if err := validateMarks(botMark, humanMark); err != nil {
		return -1, err
	}

	if err := difficulty.Validate(); err != nil {
		return -1, err
	}

	if IsWinner(board, botMark) || IsWinner(board, humanMark) {
		return -1, ErrGameAlreadyWon
	}

	available := AvailableCells(board)
	if len(available) == 0 {
		return -1, ErrNoAvailableMoves
	}

	switch difficulty {
	case Easy:
		return that.gatedMove(board, botMark, humanMark, available, easySmartChance), nil
	case Normal:
		return that.gatedMove(board, botMark, humanMark, available, normalSmartChance), nil
	default:
		return BestMove(board, botMark, humanMark), nil
	}
}

func (that *Engine) gatedMove(board [BoardSize]string, botMark, humanMark string, available []int, smartChance float64) int {
	if that.rnd.Float64() < smartChance {
		return SmartMove(board, botMark, humanMark, available, that.rnd)
	}

	return randomCell(that.rnd, available)
}

func validateMarks(botMark, humanMark string) error {
	if !IsValidMark(botMark) || !IsValidMark(humanMark) {
		return fmt.Errorf("%w: bot %q, human %q", ErrInvalidMarks, botMark, humanMark)
	}

	if botMark == humanMark {
		return fmt.Errorf("%w: both players use %q", ErrInvalidMarks, botMark)
	}

	return nil
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedRand - returns a Rand that may be shared between goroutines.
func NewLockedRand(seed int64) Rand {
	return &lockedRand{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // game moves, not secrets
	}
}

func (that *lockedRand) Float64() float64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Float64()
}

func (that *lockedRand) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

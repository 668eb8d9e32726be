package tictactoe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// winOrBlockBoard - O wins at 2, the other available cells are 5, 6, 7, 8.
var winOrBlockBoard = [BoardSize]string{
	MarkO, MarkO, Empty,
	MarkX, MarkX, Empty,
	Empty, Empty, Empty,
}

func TestEngine_ChooseMove(t *testing.T) {
	t.Run("Hard tier uses the search", func(t *testing.T) {
		// Given: an engine whose random source must not be touched
		engine := NewEngine(&stubRand{})
		board := [BoardSize]string{MarkX, MarkX, Empty, Empty, Empty, Empty, Empty, Empty, Empty}

		// When: the bot chooses a hard move
		move, err := engine.ChooseMove(board, MarkO, MarkX, Hard)

		// Then: it blocks like the search does
		require.NoError(t, err)
		assert.Equal(t, 2, move)
	})

	t.Run("Easy tier below the gate plays the smart move", func(t *testing.T) {
		// Given: the gate roll is just below 0.2
		engine := NewEngine(&stubRand{floats: []float64{0.19}})

		// When: the bot chooses an easy move
		move, err := engine.ChooseMove(winOrBlockBoard, MarkO, MarkX, Easy)

		// Then: the winning cell is taken
		require.NoError(t, err)
		assert.Equal(t, 2, move)
	})

	t.Run("Easy tier above the gate plays randomly", func(t *testing.T) {
		// Given: the gate roll is 0.2 and the random pick is the fourth available cell
		engine := NewEngine(&stubRand{floats: []float64{0.2}, ints: []int{3}})

		// When: the bot chooses an easy move
		move, err := engine.ChooseMove(winOrBlockBoard, MarkO, MarkX, Easy)

		// Then: cell 7 is played
		require.NoError(t, err)
		assert.Equal(t, 7, move)
	})

	t.Run("Normal tier gate is 0.7", func(t *testing.T) {
		smart := NewEngine(&stubRand{floats: []float64{0.69}})
		random := NewEngine(&stubRand{floats: []float64{0.7}, ints: []int{1}})

		smartMove, err := smart.ChooseMove(winOrBlockBoard, MarkO, MarkX, Normal)
		require.NoError(t, err)

		randomMove, err := random.ChooseMove(winOrBlockBoard, MarkO, MarkX, Normal)
		require.NoError(t, err)

		assert.Equal(t, 2, smartMove)
		assert.Equal(t, 5, randomMove)
	})

	t.Run("Does not modify the board", func(t *testing.T) {
		engine := NewEngine(NewLockedRand(7))
		board := winOrBlockBoard

		for _, difficulty := range []Difficulty{Easy, Normal, Hard} {
			_, err := engine.ChooseMove(board, MarkO, MarkX, difficulty)
			require.NoError(t, err)
		}

		assert.Equal(t, winOrBlockBoard, board)
	})
}

func TestEngine_ChooseMove_Preconditions(t *testing.T) {
	full := [BoardSize]string{MarkX, MarkO, MarkX, MarkX, MarkO, MarkO, MarkO, MarkX, MarkX}
	won := [BoardSize]string{MarkX, MarkX, MarkX, MarkO, MarkO, Empty, Empty, Empty, Empty}
	wonAndFull := [BoardSize]string{MarkX, MarkX, MarkX, MarkO, MarkO, MarkX, MarkO, MarkX, MarkO}

	for _, difficulty := range []Difficulty{Easy, Normal, Hard} {
		t.Run(difficulty.String(), func(t *testing.T) {
			engine := NewEngine(&stubRand{})

			// When: the board is full
			move, err := engine.ChooseMove(full, MarkO, MarkX, difficulty)

			// Then: no move is guessed
			require.ErrorIs(t, err, ErrNoAvailableMoves)
			assert.Equal(t, -1, move)

			// When: the board already has a winner
			_, err = engine.ChooseMove(won, MarkO, MarkX, difficulty)
			require.ErrorIs(t, err, ErrGameAlreadyWon)

			_, err = engine.ChooseMove(wonAndFull, MarkX, MarkO, difficulty)
			require.ErrorIs(t, err, ErrGameAlreadyWon)
		})
	}

	t.Run("Invalid marks", func(t *testing.T) {
		engine := NewEngine(&stubRand{})
		var board [BoardSize]string

		_, err := engine.ChooseMove(board, MarkO, MarkO, Hard)
		require.ErrorIs(t, err, ErrInvalidMarks)

		_, err = engine.ChooseMove(board, "Z", MarkX, Hard)
		require.ErrorIs(t, err, ErrInvalidMarks)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		engine := NewEngine(&stubRand{})
		var board [BoardSize]string

		_, err := engine.ChooseMove(board, MarkO, MarkX, Difficulty("impossible"))
		require.ErrorIs(t, err, ErrUnknownDifficulty)
	})
}

func TestEngine_ChooseMove_Distribution(t *testing.T) {
	const trials = 10000

	// smart play always picks 2, random play picks it one time in five
	tests := []struct {
		difficulty Difficulty
		expected   float64
	}{
		{difficulty: Easy, expected: 0.2 + 0.8/5},
		{difficulty: Normal, expected: 0.7 + 0.3/5},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty.String(), func(t *testing.T) {
			// Given: a seeded engine
			engine := NewEngine(NewLockedRand(42))
			available := AvailableCells(winOrBlockBoard)

			// When: the bot moves many times on the same board
			hits := 0
			for range trials {
				move, err := engine.ChooseMove(winOrBlockBoard, MarkO, MarkX, tt.difficulty)
				require.NoError(t, err)
				require.Contains(t, available, move)

				if move == 2 {
					hits++
				}
			}

			// Then: the winning cell shows up about as often as the gate predicts
			assert.InDelta(t, tt.expected, float64(hits)/trials, 0.05)
		})
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	// Given: one engine shared by many goroutines
	engine := NewEngine(nil)
	board := [BoardSize]string{MarkX, Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty}

	var wg sync.WaitGroup
	moves := make([]int, 16)

	// When: all of them ask for moves at once
	for i := range moves {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := engine.ChooseMove(board, MarkO, MarkX, Easy)
			if err != nil {
				moves[i] = -1
				return
			}

			moves[i], err = engine.ChooseMove(board, MarkO, MarkX, Hard)
			if err != nil {
				moves[i] = -1
			}
		}()
	}
	wg.Wait()

	// Then: every hard answer is the same center move
	for _, move := range moves {
		assert.Equal(t, 4, move)
	}
}

package tictactoe

import "math"

const winScore = 10

// searcher owns the board it explores; every placement is undone before the call returns.
type searcher struct {
	board [BoardSize]string
	bot   string
	human string
}

// BestMove - full-depth minimax for the bot. Ties go to the lowest cell index.
// Returns -1 if the board has no empty cell.
func BestMove(board [BoardSize]string, botMark, humanMark string) int {
	s := &searcher{board: board, bot: botMark, human: humanMark}

	bestScore := math.MinInt
	bestMove := -1

	for cell := range s.board {
		if s.board[cell] != Empty {
			continue
		}

		s.board[cell] = s.bot
		score := s.minimax(0, false)
		s.board[cell] = Empty

		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove
}

// minimax - scores the position for the bot; faster bot wins and slower human wins score higher.
func (that *searcher) minimax(depth int, maximizing bool) int {
	if IsWinner(that.board, that.bot) {
		return winScore - depth
	}

	if IsWinner(that.board, that.human) {
		return depth - winScore
	}

	if IsFull(that.board) {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for cell := range that.board {
			if that.board[cell] != Empty {
				continue
			}

			that.board[cell] = that.bot
			best = max(best, that.minimax(depth+1, false))
			that.board[cell] = Empty
		}

		return best
	}

	best := math.MaxInt
	for cell := range that.board {
		if that.board[cell] != Empty {
			continue
		}

		that.board[cell] = that.human
		best = min(best, that.minimax(depth+1, true))
		that.board[cell] = Empty
	}

	return best
}

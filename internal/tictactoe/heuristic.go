package tictactoe

import "slices"

// Rand - source of randomness for tier gating and tie-breaks. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SmartMove - picks a move by fixed rules: win now, block the human, center, random corner,
// random edge, random cell. available must hold at least one empty cell.
func SmartMove(board [BoardSize]string, botMark, humanMark string, available []int, rnd Rand) int {
	for _, cell := range available {
		if winsAt(board, cell, botMark) {
			return cell
		}
	}

	for _, cell := range available {
		if winsAt(board, cell, humanMark) {
			return cell
		}
	}

	if slices.Contains(available, center) {
		return center
	}

	if cells := onlyAvailable(corners[:], available); len(cells) > 0 {
		return randomCell(rnd, cells)
	}

	if cells := onlyAvailable(edges[:], available); len(cells) > 0 {
		return randomCell(rnd, cells)
	}

	return randomCell(rnd, available)
}

// winsAt - board is a copy, so the hypothetical mark never leaks to the caller.
func winsAt(board [BoardSize]string, cell int, mark string) bool {
	board[cell] = mark
	return IsWinner(board, mark)
}

func onlyAvailable(candidates, available []int) []int {
	cells := make([]int, 0, len(candidates))
	for _, cell := range candidates {
		if slices.Contains(available, cell) {
			cells = append(cells, cell)
		}
	}

	return cells
}

func randomCell(rnd Rand, cells []int) int {
	return cells[rnd.Intn(len(cells))]
}

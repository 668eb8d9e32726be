package tictactoe

import "strings"

const (
	MarkX = "X"
	MarkO = "O"
	Tie   = "-"

	Empty = ""

	BoardSize = 9
)

// WinCombos - every line that wins the game: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

var (
	corners = [...]int{0, 2, 6, 8}
	edges   = [...]int{1, 3, 5, 7}
)

const center = 4

// IsWinner - reports whether mark occupies a whole line.
func IsWinner(board [BoardSize]string, mark string) bool {
	for _, combo := range WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsFull - reports whether no cell is empty.
func IsFull(board [BoardSize]string) bool {
	for _, cell := range board {
		if cell == Empty {
			return false
		}
	}

	return true
}

// AvailableCells - returns the empty cells in ascending order.
func AvailableCells(board [BoardSize]string) []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range board {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// Result - returns the winning mark, Tie for a full board, or Empty while the game goes on.
func Result(board [BoardSize]string) string {
	for _, mark := range [...]string{MarkX, MarkO} {
		if IsWinner(board, mark) {
			return mark
		}
	}

	if IsFull(board) {
		return Tie
	}

	return Empty
}

// IsValidMark - reports whether mark is one of the two player marks.
func IsValidMark(mark string) bool {
	return mark == MarkX || mark == MarkO
}

// NormalizeMark - trims and upper-cases user input so "x" and " O" read as marks.
func NormalizeMark(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// Opponent - returns the other player mark.
func Opponent(mark string) string {
	if mark == MarkX {
		return MarkO
	}
	return MarkX
}

package tictactoe

import "fmt"

// stubRand replays scripted values and fails loudly when the script runs out.
type stubRand struct {
	floats []float64
	ints   []int
}

func (that *stubRand) Float64() float64 {
	if len(that.floats) == 0 {
		panic("stubRand: unexpected Float64 call")
	}
	value := that.floats[0]
	that.floats = that.floats[1:]
	return value
}

func (that *stubRand) Intn(n int) int {
	if len(that.ints) == 0 {
		panic("stubRand: unexpected Intn call")
	}
	value := that.ints[0]
	that.ints = that.ints[1:]
	if value >= n {
		panic(fmt.Sprintf("stubRand: scripted %d out of range %d", value, n))
	}
	return value
}

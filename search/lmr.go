package search

import "math"

// lmrTable[depth][moveIndex] is the precomputed late-move reduction amount,
// floor(ln(depth)*ln(moveIndex)/2).
var lmrTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			r := math.Log(float64(d)) * math.Log(float64(m)) / 2.0
			lmrTable[d][m] = int(r)
		}
	}
}

func lmrReduction(depth, moveIndex int) int {
	if depth >= 64 {
		depth = 63
	}
	if moveIndex >= 64 {
		moveIndex = 63
	}
	return lmrTable[depth][moveIndex]
}

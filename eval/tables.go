// Package eval scores a Position in centipawns from the side-to-move's
// point of view, blending middlegame/endgame term pairs by a material-derived
// phase (PeSTO-style tapered evaluation).
package eval

import "chessengine/board"

const (
	Mate          = 100000
	Infinity      = 200000
	Draw          = 0
	MateThreshold = Mate - 200
)

// phaseWeight[pt] is the non-pawn material's contribution to the phase
// metric; total at the game's start is 24.
var phaseWeight = [7]int32{
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
}

const totalPhase = 24

// materialValue is the PeSTO base material value per piece type, added on
// top of the incrementally maintained Position.psqt positional term.
var materialValue = [7]board.ScorePair{
	board.Pawn:   board.S(82, 94),
	board.Knight: board.S(337, 281),
	board.Bishop: board.S(365, 297),
	board.Rook:   board.S(477, 512),
	board.Queen:  board.S(1025, 936),
}

var bishopPairBonus = board.S(30, 40)

var doubledPawnPenalty = board.S(-10, -15)
var isolatedPawnPenalty = board.S(-15, -20)

var passedPawnMG = [8]int32{0, 5, 10, 20, 35, 60, 100, 0}
var passedPawnEG = [8]int32{0, 10, 20, 35, 55, 90, 150, 0}

var rookOpenFileBonus = board.S(15, 10)
var rookSemiOpenFileBonus = board.S(8, 5)

var mobilityBaseline = [7]int32{
	board.Knight: 4,
	board.Bishop: 7,
	board.Rook:   7,
	board.Queen:  14,
}
var mobilityValue = [7]board.ScorePair{
	board.Knight: board.S(4, 4),
	board.Bishop: board.S(3, 3),
	board.Rook:   board.S(2, 2),
	board.Queen:  board.S(1, 1),
}

var kingAttackerWeight = [7]int32{
	board.Knight: 7,
	board.Bishop: 5,
	board.Rook:   4,
	board.Queen:  4,
}

var kingShelterBonus = board.S(15, 0)
var kingStormPenalty = board.S(10, 0)
var kingSemiOpenFilePenalty = board.S(-20, 0)
var kingOpenFilePenalty = board.S(-10, 0)

var fileMask [8]board.Bitboard

func init() {
	for f := 0; f < 8; f++ {
		var m board.Bitboard
		for r := 0; r < 8; r++ {
			m |= board.Bit(board.SquareOf(f, r))
		}
		fileMask[f] = m
	}
}

func adjacentFilesMask(file int) board.Bitboard {
	var m board.Bitboard
	if file > 0 {
		m |= fileMask[file-1]
	}
	if file < 7 {
		m |= fileMask[file+1]
	}
	return m
}

// Package attacks precomputes every attack lookup the rest of the engine
// needs — knight/king leaper tables and magic-number sliding-attack tables
// for rook and bishop — all process-global, built once, and read-only
// thereafter. Every query here is a pure function of (square, occupancy)
// and never allocates.
package attacks

import "chessengine/board"

var (
	knightAttacks [64]board.Bitboard
	kingAttacks   [64]board.Bitboard
	pawnAttacks   [2][64]board.Bitboard
)

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func buildLeapers() {
	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8
		var knight, king board.Bitboard
		for _, off := range knightOffsets {
			if rf, ff := rank+off[0], file+off[1]; inBounds(rf, ff) {
				knight |= board.Bit(board.SquareOf(ff, rf))
			}
		}
		for _, off := range kingOffsets {
			if rf, ff := rank+off[0], file+off[1]; inBounds(rf, ff) {
				king |= board.Bit(board.SquareOf(ff, rf))
			}
		}
		knightAttacks[sq] = knight
		kingAttacks[sq] = king

		var wAtt, bAtt board.Bitboard
		if rank < 7 {
			if file > 0 {
				wAtt |= board.Bit(board.SquareOf(file-1, rank+1))
			}
			if file < 7 {
				wAtt |= board.Bit(board.SquareOf(file+1, rank+1))
			}
		}
		if rank > 0 {
			if file > 0 {
				bAtt |= board.Bit(board.SquareOf(file-1, rank-1))
			}
			if file < 7 {
				bAtt |= board.Bit(board.SquareOf(file+1, rank-1))
			}
		}
		pawnAttacks[board.White][sq] = wAtt
		pawnAttacks[board.Black][sq] = bAtt
	}
}

func inBounds(rank, file int) bool { return rank >= 0 && rank < 8 && file >= 0 && file < 8 }

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq board.Square) board.Bitboard { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq board.Square) board.Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(c board.Color, sq board.Square) board.Bitboard { return pawnAttacks[c][sq] }

package board

import "math/rand"

// Zobrist keys, process-global and read-only after init. Indexed
// zobristPiece[color][pieceType][square]; pieceType 0 is unused (NoPieceType).
var (
	zobristPiece     [2][7][64]uint64
	zobristSide      uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
)

// fixed seed: reproducible hashes across runs and processes, required by
// spec section 5 ("initialization must complete deterministically").
const zobristSeed = 0xC0DE

func init() {
	rnd := rand.New(rand.NewSource(zobristSeed))
	for c := 0; c < 2; c++ {
		for pt := 1; pt <= 6; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][pt][sq] = rnd.Uint64()
			}
		}
	}
	zobristSide = rnd.Uint64()
	for i := range zobristCastle {
		zobristCastle[i] = rnd.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rnd.Uint64()
	}
}

func pieceKey(p Piece, sq Square) uint64 {
	return zobristPiece[p.Color][p.Type][sq]
}

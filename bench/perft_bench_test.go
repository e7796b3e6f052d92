package bench

import (
	"testing"

	"chessengine/fen"
	"chessengine/movegen"
)

func benchPerft(b *testing.B, fenStr string, depth int) {
	pos, err := fen.Parse(fenStr)
	if err != nil {
		b.Fatalf("fen.Parse: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = movegen.Perft(pos, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, fen.StartPos, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3)
}

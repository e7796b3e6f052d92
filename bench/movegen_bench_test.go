package bench

import (
	"testing"

	"chessengine/fen"
	"chessengine/movegen"
)

func benchGenerateLegal(b *testing.B, fenStr string) {
	pos, err := fen.Parse(fenStr)
	if err != nil {
		b.Fatalf("fen.Parse: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = movegen.GenerateLegal(pos, nil)
	}
}

func BenchmarkGenerateLegal_Initial(b *testing.B) {
	benchGenerateLegal(b, fen.StartPos)
}

func BenchmarkGenerateLegal_Kiwipete(b *testing.B) {
	benchGenerateLegal(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
}

func BenchmarkGenerateLegal_Pos6(b *testing.B) {
	benchGenerateLegal(b, "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10")
}

func benchGenerateLegalCaptures(b *testing.B, fenStr string) {
	pos, err := fen.Parse(fenStr)
	if err != nil {
		b.Fatalf("fen.Parse: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = movegen.GenerateLegalCaptures(pos, nil)
	}
}

func BenchmarkGenerateLegalCaptures_EnPassant(b *testing.B) {
	benchGenerateLegalCaptures(b, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
}

func BenchmarkMakeUnmake_AllMoves_Initial(b *testing.B) {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		b.Fatalf("fen.Parse: %v", err)
	}
	moves := movegen.GenerateLegal(pos, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			undo := pos.MakeMove(m)
			pos.UnmakeMove(m, undo)
		}
	}
}

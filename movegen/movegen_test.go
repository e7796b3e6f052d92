package movegen

import (
	"testing"

	"chessengine/board"
	"chessengine/fen"
)

func mustParse(t *testing.T, f string) *board.Position {
	t.Helper()
	pos, err := fen.Parse(f)
	if err != nil {
		t.Fatalf("fen.Parse(%q): %v", f, err)
	}
	return pos
}

func TestPerftStartPos(t *testing.T) {
	pos := mustParse(t, fen.StartPos)
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		if got := Perft(pos, c.depth); got != c.want {
			t.Errorf("perft(startpos, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		if got := Perft(pos, c.depth); got != c.want {
			t.Errorf("perft(kiwipete, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	pos := mustParse(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, c := range cases {
		if got := Perft(pos, c.depth); got != c.want {
			t.Errorf("perft(position3, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPromotionPosition(t *testing.T) {
	pos := mustParse(t, "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N w - - 0 1")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 24},
		{2, 496},
		{3, 9483},
	}
	for _, c := range cases {
		if got := Perft(pos, c.depth); got != c.want {
			t.Errorf("perft(promotion, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestCheckmateDetection(t *testing.T) {
	pos := mustParse(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3") // fool's mate
	if !IsCheckmate(pos) {
		t.Fatalf("expected checkmate")
	}
	if IsStalemate(pos) {
		t.Fatalf("checkmate position must not also be stalemate")
	}
}

func TestStalemateDetection(t *testing.T) {
	// Black king confined to h8 by the white king on f7 and queen on g6,
	// with no check: the textbook king-and-queen stalemate.
	pos := mustParse(t, "7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	if !IsStalemate(pos) {
		t.Fatalf("expected stalemate")
	}
	if IsCheckmate(pos) {
		t.Fatalf("stalemate position must not also be checkmate")
	}
}

func TestFiftyMoveRule(t *testing.T) {
	pos := mustParse(t, "8/8/8/4k3/8/8/4K3/8 w - - 100 60")
	if !IsDrawBy50(pos) {
		t.Fatalf("expected draw by fifty-move rule at halfmove clock 100")
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := mustParse(t, fen.StartPos)
	entries, total := Divide(pos, 3)
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	if sum != total {
		t.Fatalf("divide entries sum to %d, total reported %d", sum, total)
	}
	if total != Perft(pos, 3) {
		t.Fatalf("divide total %d != perft %d", total, Perft(pos, 3))
	}
}

func TestPerftDetailedCountsAtDepth4(t *testing.T) {
	pos := mustParse(t, fen.StartPos)
	counts := PerftDetailed(pos, 4)
	if counts.Nodes != 197281 {
		t.Fatalf("nodes = %d, want 197281", counts.Nodes)
	}
	if counts.Captures != 1576 {
		t.Fatalf("captures = %d, want 1576", counts.Captures)
	}
	if counts.EnPassant != 0 {
		t.Fatalf("en passant = %d, want 0 at depth 4 from startpos", counts.EnPassant)
	}
	if counts.Castles != 0 {
		t.Fatalf("castles = %d, want 0 at depth 4 from startpos", counts.Castles)
	}
	if counts.Checks != 469 {
		t.Fatalf("checks = %d, want 469", counts.Checks)
	}
}

package search

import (
	"testing"

	"chessengine/board"
	"chessengine/eval"
	"chessengine/fen"
	"chessengine/tt"

	"github.com/rs/zerolog"
)

func testConfig(maxDepth int) Config {
	return Config{MaxDepth: maxDepth, Logger: zerolog.Nop()}
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move, Qh5-h8 mates: the h-file is open, the knight on g6
	// guards h8 and f8, the queen on h8 covers h7, and the black pawns on
	// f7/g7 block the rest.
	pos, err := fen.Parse("6k1/5pp1/6N1/7Q/8/8/8/6K1 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	engine := NewEngine(tt.New(1 << 20))
	move, score := engine.Search(pos, nil, testConfig(3), nil)

	want := board.Move{From: board.SquareOf(7, 4), To: board.SquareOf(7, 7), Kind: board.Normal}
	if move != want {
		t.Fatalf("best move = %+v, want %+v (Qh5-h8#)", move, want)
	}
	if score < eval.Mate-10 {
		t.Fatalf("score = %d, want a near-mate score", score)
	}
}

func TestSearchFindsHangingQueenCapture(t *testing.T) {
	// Black queen on e4 hangs to the white knight on c3; no other move
	// should score as well for White.
	pos, err := fen.Parse("4k3/8/8/8/4q3/2N5/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	engine := NewEngine(tt.New(1 << 20))
	move, _ := engine.Search(pos, nil, testConfig(4), nil)

	want := board.Move{From: board.SquareOf(2, 2), To: board.SquareOf(4, 3), Kind: board.CaptureMove}
	if move != want {
		t.Fatalf("best move = %+v, want %+v (Nxe4)", move, want)
	}
}

func TestSearchInfoCallbackReceivesIncreasingDepths(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	engine := NewEngine(tt.New(1 << 20))

	var depths []int
	var lastNodes uint64
	engine.Search(pos, nil, testConfig(3), func(info Info) {
		depths = append(depths, info.Depth)
		if info.Nodes < lastNodes {
			t.Fatalf("nodes decreased between iterations: %d -> %d", lastNodes, info.Nodes)
		}
		lastNodes = info.Nodes
	})

	if len(depths) != 3 {
		t.Fatalf("got %d info callbacks, want 3", len(depths))
	}
	for i, d := range depths {
		if d != i+1 {
			t.Fatalf("depths = %v, want strictly increasing from 1", depths)
		}
	}
}

func TestSearchWithRandomizeEqualMovesStillFindsMate(t *testing.T) {
	// RandomizeEqualMoves only reorders ties at the root; it must never
	// cause the search to miss a forced mate it would otherwise find.
	pos, err := fen.Parse("6k1/5pp1/6N1/7Q/8/8/8/6K1 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	engine := NewEngine(tt.New(1 << 20))
	cfg := testConfig(3)
	cfg.RandomizeEqualMoves = true
	move, score := engine.Search(pos, nil, cfg, nil)

	want := board.Move{From: board.SquareOf(7, 4), To: board.SquareOf(7, 7), Kind: board.Normal}
	if move != want {
		t.Fatalf("best move = %+v, want %+v (Qh5-h8#)", move, want)
	}
	if score < eval.Mate-10 {
		t.Fatalf("score = %d, want a near-mate score", score)
	}
}

func TestSearchReturnsLegalMove(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	engine := NewEngine(tt.New(1 << 20))
	move, _ := engine.Search(pos, nil, testConfig(2), nil)
	if move.IsNull() {
		t.Fatalf("expected a non-null move from the start position")
	}
}

func TestRepetitionOrFiftyDetectsFiftyMoveRule(t *testing.T) {
	if !isRepetitionOrFifty(1, 100, nil, nil) {
		t.Fatalf("expected halfmove clock 100 to count as a draw")
	}
}

func TestRepetitionOrFiftyDetectsRepeatedPosition(t *testing.T) {
	searchStack := []uint64{10, 20, 30}
	if !isRepetitionOrFifty(20, 40, searchStack, nil) {
		t.Fatalf("expected a repeated hash within the search stack to count as a draw")
	}
}

func TestRepetitionOrFiftyIgnoresPositionsBeyondHalfmoveWindow(t *testing.T) {
	gameHistory := []uint64{99}
	if isRepetitionOrFifty(99, 0, nil, gameHistory) {
		t.Fatalf("a halfmove clock of 0 means no prior position can still be reachable")
	}
}

func TestRepetitionOrFiftyNeedsTwoGameHistoryMatches(t *testing.T) {
	gameHistory := []uint64{60, 50, 70}
	if isRepetitionOrFifty(50, 40, nil, gameHistory) {
		t.Fatalf("a single gameHistory match should not yet count as a draw")
	}
}

func TestRepetitionOrFiftyDrawsOnSecondGameHistoryMatch(t *testing.T) {
	gameHistory := []uint64{50, 60, 50, 70, 50}
	if !isRepetitionOrFifty(50, 40, nil, gameHistory) {
		t.Fatalf("expected a draw once the position has repeated twice within gameHistory")
	}
}

func TestLMRReductionGrowsWithDepthAndMoveIndex(t *testing.T) {
	if got := lmrReduction(3, 1); got != 0 {
		t.Fatalf("lmrReduction(3, 1) = %d, want 0 for an early move", got)
	}
	small := lmrReduction(6, 6)
	large := lmrReduction(20, 40)
	if large < small {
		t.Fatalf("lmrReduction should grow with depth and move index: depth=6/move=6 -> %d, depth=20/move=40 -> %d", small, large)
	}
}

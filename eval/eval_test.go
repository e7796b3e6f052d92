package eval

import (
	"testing"

	"chessengine/board"
	"chessengine/fen"
)

func TestStartPosIsBalanced(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := Evaluate(pos); got != 0 {
		t.Fatalf("start position eval = %d, want 0 (symmetric)", got)
	}
}

func TestEvaluateIsSideToMoveRelative(t *testing.T) {
	// A position with White up a queen should score positively for White to
	// move and, with the queen's color swapped (still White to move), score
	// negatively.
	whiteUp, err := fen.Parse("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if Evaluate(whiteUp) <= 0 {
		t.Fatalf("white up a queen should evaluate positively for the side to move")
	}

	blackUp, err := fen.Parse("4k3/8/8/8/8/8/8/q3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if Evaluate(blackUp) >= 0 {
		t.Fatalf("white down a queen should evaluate negatively for the side to move")
	}
}

func TestBishopPairBonusApplied(t *testing.T) {
	noBishopPair, err := fen.Parse("4k3/8/8/8/8/3B4/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	withBishopPair, err := fen.Parse("4k3/8/8/8/8/2BB4/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Adding a second bishop should gain more than one bishop's raw material
	// difference would predict on its own, thanks to the pair bonus; a loose
	// check that it's strictly better than a one-bishop baseline suffices
	// here without re-deriving the exact centipawn gap.
	if Evaluate(withBishopPair) <= Evaluate(noBishopPair) {
		t.Fatalf("second bishop should not make the position worse")
	}
}

func TestComputePhaseClampedToTotal(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := computePhase(pos); got != totalPhase {
		t.Fatalf("start position phase = %d, want %d", got, totalPhase)
	}
}

func TestIsPassedPawn(t *testing.T) {
	enemyPawns := board.Bit(board.SquareOf(3, 6)) // d7, not on the a/b/c files
	if !isPassed(board.SquareOf(1, 4), board.White, enemyPawns) {
		t.Fatalf("b5 pawn with no c/a/b-file enemy pawns ahead should be passed")
	}

	blockingPawns := board.Bit(board.SquareOf(1, 6)) // b7 directly ahead
	if isPassed(board.SquareOf(1, 4), board.White, blockingPawns) {
		t.Fatalf("b5 pawn with a b7 enemy pawn ahead should not be passed")
	}
}

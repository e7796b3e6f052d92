package fen

import (
	"testing"

	"chessengine/board"
)

func TestParseStartPosRoundTrips(t *testing.T) {
	pos, err := Parse(StartPos)
	if err != nil {
		t.Fatalf("Parse(StartPos) error: %v", err)
	}
	if got := String(pos); got != StartPos {
		t.Fatalf("round trip = %q, want %q", got, StartPos)
	}
	if pos.SideToMove() != board.White {
		t.Fatalf("side to move = %v, want White", pos.SideToMove())
	}
	if pos.CastlingRights() != board.AllCastlingRights {
		t.Fatalf("castling rights = %v, want all", pos.CastlingRights())
	}
}

func TestParseRejectsMalformedFEN(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq", // fewer than 4 fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",            // wrong rank count
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",  // bad side
	}
	for _, c := range cases {
		if _, err := Parse(c); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", c)
		}
	}
}

func TestParseRejectsIllegalPosition(t *testing.T) {
	// no black king
	fenStr := "rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1"
	if _, err := Parse(fenStr); err == nil {
		t.Fatalf("Parse accepted a position with no black king")
	}
}

func TestParseEnPassantSquare(t *testing.T) {
	fenStr := "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"
	pos, err := Parse(fenStr)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if pos.EnPassantSquare() != board.SquareOf(3, 5) {
		t.Fatalf("en passant square = %d, want d6", pos.EnPassantSquare())
	}
}

package board

import "testing"

func startPosition() *Position {
	p := NewEmpty()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f, pt := range backRank {
		p.SetPiece(SquareOf(f, 0), Piece{Type: pt, Color: White})
		p.SetPiece(SquareOf(f, 7), Piece{Type: pt, Color: Black})
		p.SetPiece(SquareOf(f, 1), Piece{Type: Pawn, Color: White})
		p.SetPiece(SquareOf(f, 6), Piece{Type: Pawn, Color: Black})
	}
	p.SetCastlingRights(AllCastlingRights)
	p.RecomputeAfterSetup()
	return p
}

func TestBitboardsConsistentWithSquares(t *testing.T) {
	p := startPosition()
	for sq := Square(0); sq < 64; sq++ {
		pc := p.PieceAt(sq)
		bit := Bit(sq)
		inOcc := p.Occupied()&bit != 0
		hasPiece := pc != NoPiece
		if inOcc != hasPiece {
			t.Fatalf("square %d: occupied=%v piece=%v mismatch", sq, inOcc, pc)
		}
		if hasPiece {
			if p.PieceBB(pc.Type)&bit == 0 {
				t.Fatalf("square %d: pieceBB[%v] missing bit", sq, pc.Type)
			}
			if p.ColorBB(pc.Color)&bit == 0 {
				t.Fatalf("square %d: colorBB[%v] missing bit", sq, pc.Color)
			}
		}
	}
}

func TestKingSquareCache(t *testing.T) {
	p := startPosition()
	if p.KingSquare(White) != SquareOf(4, 0) {
		t.Fatalf("white king square = %d, want e1", p.KingSquare(White))
	}
	if p.KingSquare(Black) != SquareOf(4, 7) {
		t.Fatalf("black king square = %d, want e8", p.KingSquare(Black))
	}
}

func TestHashStableAcrossMakeUnmake(t *testing.T) {
	p := startPosition()
	before := p.Hash()
	m := Move{From: SquareOf(4, 1), To: SquareOf(4, 3), Kind: Normal}
	undo := p.MakeMove(m)
	if p.Hash() == before {
		t.Fatalf("hash did not change after a move")
	}
	if got := p.ComputeHash(); got != p.Hash() {
		t.Fatalf("incremental hash %d diverged from recomputed hash %d", p.Hash(), got)
	}
	p.UnmakeMove(m, undo)
	if p.Hash() != before {
		t.Fatalf("hash after unmake = %d, want %d", p.Hash(), before)
	}
}

func TestPSQTStableAcrossMakeUnmake(t *testing.T) {
	p := startPosition()
	before := p.PSQT()
	m := Move{From: SquareOf(4, 1), To: SquareOf(4, 3), Kind: Normal}
	undo := p.MakeMove(m)
	if got := p.ComputePSQT(); got != p.PSQT() {
		t.Fatalf("incremental psqt %v diverged from recomputed %v", p.PSQT(), got)
	}
	p.UnmakeMove(m, undo)
	if p.PSQT() != before {
		t.Fatalf("psqt after unmake = %v, want %v", p.PSQT(), before)
	}
}

func TestPSQTIsWhiteMinusBlackOriented(t *testing.T) {
	p := NewEmpty()
	p.SetPiece(SquareOf(4, 3), Piece{Type: Knight, Color: White})
	p.RecomputeAfterSetup()
	whiteOnly := p.PSQT()

	p2 := NewEmpty()
	p2.SetPiece(SquareOf(4, 4), Piece{Type: Knight, Color: Black})
	p2.RecomputeAfterSetup()
	blackOnly := p2.PSQT()

	// A knight centralized for White and the mirror square for Black should
	// contribute equal-magnitude, opposite-sign terms.
	if whiteOnly.MG != -blackOnly.MG || whiteOnly.EG != -blackOnly.EG {
		t.Fatalf("expected mirrored opposite-sign contributions, got %v and %v", whiteOnly, blackOnly)
	}
}

func TestCastlingRightsClearedByRookAndKingMoves(t *testing.T) {
	p := startPosition()
	m := Move{From: SquareOf(7, 0), To: SquareOf(7, 3), Kind: Normal} // h1 rook moves
	undo := p.MakeMove(m)
	if p.CastlingRights()&WhiteKingSide != 0 {
		t.Fatalf("expected white kingside rights cleared after h1 rook moves")
	}
	p.UnmakeMove(m, undo)
	if p.CastlingRights()&WhiteKingSide == 0 {
		t.Fatalf("expected white kingside rights restored after unmake")
	}
}

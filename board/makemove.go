package board

// UndoInfo captures everything MakeMove needs to reverse a move: the
// captured piece (for en passant, the pawn actually removed, not the
// piece on the move's destination square), and the previous irreversible
// state.
type UndoInfo struct {
	Captured       Piece
	CapturedSquare Square
	PrevCastling   CastlingRights
	PrevEnPassant  Square
	PrevHalfmove   int
	PrevHash       uint64
}

// MakeMove applies m, which must be pseudo-legal; behavior is undefined for
// an illegal move (see spec section 4.2's "Failure model" — legality is the
// move generator's job, which makes each candidate, tests for check and
// unmakes it; it is not this function's).
func (pos *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		PrevCastling:  pos.castlingRights,
		PrevEnPassant: pos.enPassantSq,
		PrevHalfmove:  pos.halfmoveClock,
		PrevHash:      pos.hash,
	}

	mover := pos.squares[m.From]
	us := pos.sideToMove
	them := us.Other()

	if pos.castlingRights != 0 {
		pos.hash ^= zobristCastle[pos.castlingRights]
	}
	if pos.enPassantSq != NoSquare {
		pos.hash ^= zobristEnPassant[pos.enPassantSq.File()]
	}

	switch m.Kind {
	case Castling:
		pos.removePiece(m.From)
		pos.addPiece(m.To, mover)
		rookFrom, rookTo := castlingRookSquares(m.To)
		rook := pos.removePiece(rookFrom)
		pos.addPiece(rookTo, rook)
		undo.CapturedSquare = NoSquare

	case EnPassant:
		pos.removePiece(m.From)
		capSq := SquareOf(m.To.File(), m.From.Rank())
		undo.Captured = pos.removePiece(capSq)
		undo.CapturedSquare = capSq
		pos.addPiece(m.To, mover)

	case Promotion:
		pos.removePiece(m.From)
		pos.addPiece(m.To, Piece{Type: m.PromoteTo, Color: us})
		undo.CapturedSquare = NoSquare

	case PromotionCapture:
		pos.removePiece(m.From)
		undo.Captured = pos.removePiece(m.To)
		undo.CapturedSquare = m.To
		pos.addPiece(m.To, Piece{Type: m.PromoteTo, Color: us})

	case CaptureMove:
		pos.removePiece(m.From)
		undo.Captured = pos.removePiece(m.To)
		undo.CapturedSquare = m.To
		pos.addPiece(m.To, mover)

	default: // Normal
		pos.removePiece(m.From)
		pos.addPiece(m.To, mover)
		undo.CapturedSquare = NoSquare
	}

	if mover.Type == Pawn || m.IsCapture() {
		pos.halfmoveClock = 0
	} else {
		pos.halfmoveClock++
	}
	if us == Black {
		pos.fullmoveNumber++
	}

	pos.castlingRights &^= castlingLossMask(m.From) | castlingLossMask(m.To)

	pos.enPassantSq = NoSquare
	if mover.Type == Pawn {
		diff := int(m.To) - int(m.From)
		if diff == 16 || diff == -16 {
			pos.enPassantSq = SquareOf(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		}
	}

	if pos.castlingRights != 0 {
		pos.hash ^= zobristCastle[pos.castlingRights]
	}
	if pos.enPassantSq != NoSquare {
		pos.hash ^= zobristEnPassant[pos.enPassantSq.File()]
	}
	pos.hash ^= zobristSide
	pos.sideToMove = them

	return undo
}

// UnmakeMove reverses m using the UndoInfo returned by the matching
// MakeMove call. m and undo must correspond to the immediately preceding
// make; behavior is undefined otherwise.
func (pos *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := pos.sideToMove
	us := them.Other()
	pos.sideToMove = us

	switch m.Kind {
	case Castling:
		king := pos.removePiece(m.To)
		pos.addPiece(m.From, king)
		rookFrom, rookTo := castlingRookSquares(m.To)
		rook := pos.removePiece(rookTo)
		pos.addPiece(rookFrom, rook)

	case EnPassant:
		pawn := pos.removePiece(m.To)
		pos.addPiece(m.From, pawn)
		pos.addPiece(undo.CapturedSquare, undo.Captured)

	case Promotion:
		pos.removePiece(m.To)
		pos.addPiece(m.From, Piece{Type: Pawn, Color: us})

	case PromotionCapture:
		pos.removePiece(m.To)
		pos.addPiece(m.From, Piece{Type: Pawn, Color: us})
		pos.addPiece(m.To, undo.Captured)

	case CaptureMove:
		mover := pos.removePiece(m.To)
		pos.addPiece(m.From, mover)
		pos.addPiece(m.To, undo.Captured)

	default: // Normal
		mover := pos.removePiece(m.To)
		pos.addPiece(m.From, mover)
	}

	pos.castlingRights = undo.PrevCastling
	pos.enPassantSq = undo.PrevEnPassant
	pos.halfmoveClock = undo.PrevHalfmove
	pos.hash = undo.PrevHash

	if us == Black {
		pos.fullmoveNumber--
	}
}

// NullMoveUndo captures the state MakeNullMove must restore.
type NullMoveUndo struct {
	PrevEnPassant Square
	PrevHash      uint64
}

// MakeNullMove flips the side to move and clears en passant; used only by
// null-move pruning. It does not touch castling rights, material or king
// squares.
func (pos *Position) MakeNullMove() NullMoveUndo {
	undo := NullMoveUndo{PrevEnPassant: pos.enPassantSq, PrevHash: pos.hash}
	if pos.enPassantSq != NoSquare {
		pos.hash ^= zobristEnPassant[pos.enPassantSq.File()]
		pos.enPassantSq = NoSquare
	}
	pos.hash ^= zobristSide
	pos.sideToMove = pos.sideToMove.Other()
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (pos *Position) UnmakeNullMove(undo NullMoveUndo) {
	pos.sideToMove = pos.sideToMove.Other()
	pos.enPassantSq = undo.PrevEnPassant
	pos.hash = undo.PrevHash
}

// castlingLossMask returns which castling rights are forfeited when a piece
// moves to or from sq — a king move clears both of that color's rights, a
// rook leaving its home square or a capture landing on a rook's home square
// clears the corresponding single right.
func castlingLossMask(sq Square) CastlingRights {
	switch sq {
	case 4: // e1
		return WhiteKingSide | WhiteQueenSide
	case 60: // e8
		return BlackKingSide | BlackQueenSide
	case 7: // h1
		return WhiteKingSide
	case 0: // a1
		return WhiteQueenSide
	case 63: // h8
		return BlackKingSide
	case 56: // a8
		return BlackQueenSide
	default:
		return 0
	}
}

// castlingRookSquares returns the rook's from/to squares for a castling move
// whose king destination is kingTo.
func castlingRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6: // g1
		return 7, 5
	case 2: // c1
		return 0, 3
	case 62: // g8
		return 63, 61
	case 58: // c8
		return 56, 59
	default:
		return NoSquare, NoSquare
	}
}

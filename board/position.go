package board

// Position owns the canonical game state and is the only mutator of it. The
// squares array, the piece/color/occupancy bitboards, the king squares, the
// hash and the psqt accumulator always describe the same placement; every
// field here is kept in sync by addPiece/removePiece and the make/unmake
// dispatch in makemove.go.
type Position struct {
	squares        [64]Piece
	pieceBB        [7]Bitboard // index 1..6 (PieceType); 0 unused
	colorBB        [2]Bitboard
	occupied       Bitboard
	kingSquare     [2]Square
	sideToMove     Color
	castlingRights CastlingRights
	enPassantSq    Square
	halfmoveClock  int
	fullmoveNumber int
	hash           uint64
	psqt           ScorePair
}

// NewEmpty returns a Position with no pieces, White to move, no castling
// rights, no en-passant square, ready for a parser to populate via SetPiece.
func NewEmpty() *Position {
	p := &Position{
		sideToMove:     White,
		enPassantSq:    NoSquare,
		fullmoveNumber: 1,
		kingSquare:     [2]Square{NoSquare, NoSquare},
	}
	for sq := range p.squares {
		p.squares[sq] = NoPiece
	}
	p.hash = p.ComputeHash()
	return p
}

// Clone returns a deep, independent copy (value type, no shared state).
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

func (p *Position) PieceAt(sq Square) Piece      { return p.squares[sq] }
func (p *Position) Occupied() Bitboard           { return p.occupied }
func (p *Position) ColorBB(c Color) Bitboard     { return p.colorBB[c] }
func (p *Position) PieceBB(pt PieceType) Bitboard { return p.pieceBB[pt] }
func (p *Position) PiecesOf(c Color, pt PieceType) Bitboard {
	return p.pieceBB[pt] & p.colorBB[c]
}
func (p *Position) SideToMove() Color              { return p.sideToMove }
func (p *Position) KingSquare(c Color) Square      { return p.kingSquare[c] }
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }
func (p *Position) EnPassantSquare() Square        { return p.enPassantSq }
func (p *Position) HalfmoveClock() int             { return p.halfmoveClock }
func (p *Position) FullmoveNumber() int            { return p.fullmoveNumber }
func (p *Position) Hash() uint64                   { return p.hash }
func (p *Position) PSQT() ScorePair                { return p.psqt }

// ComputeHash recomputes the Zobrist key from scratch; used by tests to
// check the incrementally maintained hash never drifts.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if pc := p.squares[sq]; pc != NoPiece {
			h ^= pieceKey(pc, sq)
		}
	}
	if p.sideToMove == Black {
		h ^= zobristSide
	}
	h ^= zobristCastle[p.castlingRights]
	if p.enPassantSq != NoSquare {
		h ^= zobristEnPassant[p.enPassantSq.File()]
	}
	return h
}

// ComputePSQT recomputes the piece-square accumulator from scratch.
func (p *Position) ComputePSQT() ScorePair {
	var acc ScorePair
	for sq := Square(0); sq < 64; sq++ {
		if pc := p.squares[sq]; pc != NoPiece {
			acc = acc.Add(signedPST(pc, sq))
		}
	}
	return acc
}

// addPiece places p on an empty square and updates every derived field.
func (pos *Position) addPiece(sq Square, p Piece) {
	pos.squares[sq] = p
	bit := Bit(sq)
	pos.pieceBB[p.Type] |= bit
	pos.colorBB[p.Color] |= bit
	pos.occupied |= bit
	pos.hash ^= pieceKey(p, sq)
	pos.psqt = pos.psqt.Add(signedPST(p, sq))
	if p.Type == King {
		pos.kingSquare[p.Color] = sq
	}
}

// removePiece clears sq (which must be occupied) and returns the piece that
// was there.
func (pos *Position) removePiece(sq Square) Piece {
	p := pos.squares[sq]
	bit := Bit(sq)
	pos.squares[sq] = NoPiece
	pos.pieceBB[p.Type] &^= bit
	pos.colorBB[p.Color] &^= bit
	pos.occupied &^= bit
	pos.hash ^= pieceKey(p, sq)
	pos.psqt = pos.psqt.Sub(signedPST(p, sq))
	return p
}

// signedPST orients a piece's positional bonus to a white-minus-black
// reference frame: White's own bonus adds, Black's own bonus subtracts
// ("color-oriented" per spec.md section 3, item 6), so psqt can be summed
// directly alongside the evaluator's other white-minus-black terms.
func signedPST(p Piece, sq Square) ScorePair {
	v := PST(p, sq)
	if p.Color == Black {
		return v.Neg()
	}
	return v
}

// SetPiece is for parser-time construction only; it does not participate in
// make/unmake and callers must call RecomputeAfterSetup afterwards.
func (pos *Position) SetPiece(sq Square, p Piece) {
	if pos.squares[sq] != NoPiece {
		pos.removePiece(sq)
	}
	if p != NoPiece {
		pos.addPiece(sq, p)
	}
}

func (pos *Position) SetSideToMove(c Color) { pos.sideToMove = c }
func (pos *Position) SetCastlingRights(cr CastlingRights) {
	pos.castlingRights = cr
}
func (pos *Position) SetEnPassantSquare(sq Square) { pos.enPassantSq = sq }
func (pos *Position) SetHalfmoveClock(n int)       { pos.halfmoveClock = n }
func (pos *Position) SetFullmoveNumber(n int)      { pos.fullmoveNumber = n }

// RecomputeAfterSetup recomputes hash and psqt from scratch and is called
// once by the FEN parser after all pieces/flags are set via SetPiece/Set*.
func (pos *Position) RecomputeAfterSetup() {
	pos.hash = pos.ComputeHash()
	pos.psqt = pos.ComputePSQT()
}

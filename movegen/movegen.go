// Package movegen enumerates pseudo-legal and legal moves from a Position,
// using the attacks package's leaper and magic-bitboard lookups.
package movegen

import (
	"chessengine/attacks"
	"chessengine/board"
)

// promotionOrder is the fixed Q, R, B, N order spec.md mandates for both
// promotions and promotion-captures.
var promotionOrder = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// GeneratePseudoLegal appends every pseudo-legal move in pos to out and
// returns the extended slice. Castling is only generated when the
// intervening squares are empty and not attacked, per spec.md 4.3 — that
// much of castling's legality is checked here because it can't be expressed
// as "play it and see"; full legality (king not left in check after a
// non-castling move) is left to GenerateLegal's filter.
func GeneratePseudoLegal(pos *board.Position, out []board.Move) []board.Move {
	us := pos.SideToMove()
	them := us.Other()
	friends := pos.ColorBB(us)
	enemies := pos.ColorBB(them)
	occ := pos.Occupied()

	out = genPawnMoves(pos, us, enemies, occ, out)

	for bb := pos.PiecesOf(us, board.Knight); bb != 0; {
		from := board.PopLSB(&bb)
		out = genLeaperMoves(from, attacks.KnightAttacks(from), friends, enemies, out)
	}
	for bb := pos.PiecesOf(us, board.Bishop); bb != 0; {
		from := board.PopLSB(&bb)
		out = genLeaperMoves(from, attacks.BishopAttacks(from, occ), friends, enemies, out)
	}
	for bb := pos.PiecesOf(us, board.Rook); bb != 0; {
		from := board.PopLSB(&bb)
		out = genLeaperMoves(from, attacks.RookAttacks(from, occ), friends, enemies, out)
	}
	for bb := pos.PiecesOf(us, board.Queen); bb != 0; {
		from := board.PopLSB(&bb)
		out = genLeaperMoves(from, attacks.QueenAttacks(from, occ), friends, enemies, out)
	}

	kingSq := pos.KingSquare(us)
	out = genLeaperMoves(kingSq, attacks.KingAttacks(kingSq), friends, enemies, out)
	out = genCastling(pos, us, occ, out)

	return out
}

// genLeaperMoves serializes an attack bitboard (already masked or not) into
// Normal/Capture moves from a fixed origin square.
func genLeaperMoves(from board.Square, targets, friends, enemies board.Bitboard, out []board.Move) []board.Move {
	targets &^= friends
	for targets != 0 {
		to := board.PopLSB(&targets)
		if enemies&board.Bit(to) != 0 {
			out = append(out, board.Move{From: from, To: to, Kind: board.CaptureMove})
		} else {
			out = append(out, board.Move{From: from, To: to, Kind: board.Normal})
		}
	}
	return out
}

func genPawnMoves(pos *board.Position, us board.Color, enemies board.Bitboard, occ board.Bitboard, out []board.Move) []board.Move {
	forward := 8
	startRank, promoRank := 1, 7
	doublePushRank := 3
	if us == board.Black {
		forward = -8
		startRank, promoRank = 6, 0
		doublePushRank = 4
	}

	for bb := pos.PiecesOf(us, board.Pawn); bb != 0; {
		from := board.PopLSB(&bb)
		to := board.Square(int(from) + forward)
		if to >= 0 && to < 64 && occ&board.Bit(to) == 0 {
			if to.Rank() == promoRank {
				out = appendPromotions(out, from, to, board.Promotion)
			} else {
				out = append(out, board.Move{From: from, To: to, Kind: board.Normal})
				if from.Rank() == startRank {
					to2 := board.Square(int(from) + 2*forward)
					if occ&board.Bit(to2) == 0 && to2.Rank() == doublePushRank {
						out = append(out, board.Move{From: from, To: to2, Kind: board.Normal})
					}
				}
			}
		}

		for _, capTo := range pawnCaptureSquares(from, us) {
			if enemies&board.Bit(capTo) != 0 {
				if capTo.Rank() == promoRank {
					out = appendPromotions(out, from, capTo, board.PromotionCapture)
				} else {
					out = append(out, board.Move{From: from, To: capTo, Kind: board.CaptureMove})
				}
			} else if capTo == pos.EnPassantSquare() {
				out = append(out, board.Move{From: from, To: capTo, Kind: board.EnPassant})
			}
		}
	}
	return out
}

func pawnCaptureSquares(from board.Square, us board.Color) []board.Square {
	file, rank := from.File(), from.Rank()
	dr := 1
	if us == board.Black {
		dr = -1
	}
	var out []board.Square
	if file > 0 {
		out = append(out, board.SquareOf(file-1, rank+dr))
	}
	if file < 7 {
		out = append(out, board.SquareOf(file+1, rank+dr))
	}
	return out
}

func appendPromotions(out []board.Move, from, to board.Square, kind board.MoveKind) []board.Move {
	for _, pt := range promotionOrder {
		out = append(out, board.Move{From: from, To: to, Kind: kind, PromoteTo: pt})
	}
	return out
}

func genCastling(pos *board.Position, us board.Color, occ board.Bitboard, out []board.Move) []board.Move {
	rights := pos.CastlingRights()
	them := us.Other()
	if us == board.White {
		if rights&board.WhiteKingSide != 0 && occ&0x60 == 0 &&
			!anyAttacked(pos, them, 4, 5, 6) {
			out = append(out, board.Move{From: 4, To: 6, Kind: board.Castling})
		}
		if rights&board.WhiteQueenSide != 0 && occ&0x0E == 0 &&
			!anyAttacked(pos, them, 4, 3, 2) {
			out = append(out, board.Move{From: 4, To: 2, Kind: board.Castling})
		}
	} else {
		if rights&board.BlackKingSide != 0 && occ&(0x60<<56) == 0 &&
			!anyAttacked(pos, them, 60, 61, 62) {
			out = append(out, board.Move{From: 60, To: 62, Kind: board.Castling})
		}
		if rights&board.BlackQueenSide != 0 && occ&(0x0E<<56) == 0 &&
			!anyAttacked(pos, them, 60, 59, 58) {
			out = append(out, board.Move{From: 60, To: 58, Kind: board.Castling})
		}
	}
	return out
}

func anyAttacked(pos *board.Position, by board.Color, squares ...board.Square) bool {
	for _, sq := range squares {
		if IsSquareAttacked(pos, sq, by) {
			return true
		}
	}
	return false
}

// IsSquareAttacked is a union-of-attacks test: knight, king, pawn, and
// slider (bishop/rook via magic lookups) attacks into sq from byColor.
func IsSquareAttacked(pos *board.Position, sq board.Square, byColor board.Color) bool {
	occ := pos.Occupied()
	if attacks.KnightAttacks(sq)&pos.PiecesOf(byColor, board.Knight) != 0 {
		return true
	}
	if attacks.KingAttacks(sq)&pos.PiecesOf(byColor, board.King) != 0 {
		return true
	}
	if attacks.PawnAttacks(byColor.Other(), sq)&pos.PiecesOf(byColor, board.Pawn) != 0 {
		return true
	}
	bishopsQueens := pos.PiecesOf(byColor, board.Bishop) | pos.PiecesOf(byColor, board.Queen)
	if attacks.BishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := pos.PiecesOf(byColor, board.Rook) | pos.PiecesOf(byColor, board.Queen)
	if attacks.RookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// IsInCheck reports whether side's king is attacked by the opponent.
func IsInCheck(pos *board.Position, side board.Color) bool {
	return IsSquareAttacked(pos, pos.KingSquare(side), side.Other())
}

// GenerateLegal filters GeneratePseudoLegal down to moves that do not leave
// the side-to-move's own king in check. The filter plays each candidate on
// pos itself (make, check, unmake) rather than on a cloned struct — same
// observable result as the spec's "scratch copy" wording, cheaper in
// practice, and pos is restored exactly via UnmakeMove before returning.
func GenerateLegal(pos *board.Position, out []board.Move) []board.Move {
	var buf [256]board.Move
	pseudo := GeneratePseudoLegal(pos, buf[:0])
	us := pos.SideToMove()
	for _, m := range pseudo {
		undo := pos.MakeMove(m)
		if !IsInCheck(pos, us) {
			out = append(out, m)
		}
		pos.UnmakeMove(m, undo)
	}
	return out
}

// GenerateLegalCaptures mirrors GenerateLegal but keeps only captures,
// en-passant and promotions (including quiet Q/R/B/N promotions, which are
// tactically active enough to matter in quiescence).
func GenerateLegalCaptures(pos *board.Position, out []board.Move) []board.Move {
	var buf [256]board.Move
	pseudo := GeneratePseudoLegal(pos, buf[:0])
	us := pos.SideToMove()
	for _, m := range pseudo {
		if !m.IsCapture() && !m.IsPromotion() {
			continue
		}
		undo := pos.MakeMove(m)
		if !IsInCheck(pos, us) {
			out = append(out, m)
		}
		pos.UnmakeMove(m, undo)
	}
	return out
}

// IsCheckmate reports whether the side to move is checkmated.
func IsCheckmate(pos *board.Position) bool {
	return IsInCheck(pos, pos.SideToMove()) && !HasLegalMove(pos)
}

// IsStalemate reports whether the side to move is stalemated.
func IsStalemate(pos *board.Position) bool {
	return !IsInCheck(pos, pos.SideToMove()) && !HasLegalMove(pos)
}

// IsDrawBy50 reports the 50-move (100 half-move) rule.
func IsDrawBy50(pos *board.Position) bool { return pos.HalfmoveClock() >= 100 }

// HasLegalMove reports whether the side to move has at least one legal
// move, without building the full list.
func HasLegalMove(pos *board.Position) bool {
	var buf [256]board.Move
	pseudo := GeneratePseudoLegal(pos, buf[:0])
	us := pos.SideToMove()
	for _, m := range pseudo {
		undo := pos.MakeMove(m)
		inCheck := IsInCheck(pos, us)
		pos.UnmakeMove(m, undo)
		if !inCheck {
			return true
		}
	}
	return false
}

// Perft is a pure recursive leaf-count enumeration used as the move
// generator's correctness oracle (spec.md section 8).
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var buf [256]board.Move
	moves := GenerateLegal(pos, buf[:0])
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := pos.MakeMove(m)
		nodes += Perft(pos, depth-1)
		pos.UnmakeMove(m, undo)
	}
	return nodes
}

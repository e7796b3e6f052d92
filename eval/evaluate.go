package eval

import (
	"chessengine/attacks"
	"chessengine/board"
)

// Evaluate returns an integer centipawn score from the side-to-move's point
// of view (spec.md section 4.4).
func Evaluate(pos *board.Position) int {
	white := sideTerms(pos, board.White)
	black := sideTerms(pos, board.Black)
	total := white.Sub(black).Add(pos.PSQT())

	phase := computePhase(pos)
	final := (total.MG*phase + total.EG*(totalPhase-phase)) / totalPhase

	if pos.SideToMove() == board.Black {
		return int(-final)
	}
	return int(final)
}

func computePhase(pos *board.Position) int32 {
	phase := int32(0)
	for _, pt := range []board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen} {
		count := pos.PieceBB(pt).Count()
		phase += phaseWeight[pt] * int32(count)
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

// sideTerms computes every evaluation term for one color, white-perspective
// signed (i.e. not yet negated for Black).
func sideTerms(pos *board.Position, us board.Color) board.ScorePair {
	var total board.ScorePair

	for _, pt := range []board.PieceType{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		count := int32(pos.PiecesOf(us, pt).Count())
		total = total.Add(materialValue[pt].Mul(count))
	}

	if pos.PiecesOf(us, board.Bishop).Count() >= 2 {
		total = total.Add(bishopPairBonus)
	}

	total = total.Add(pawnStructureTerms(pos, us))
	total = total.Add(rookFileTerms(pos, us))
	total = total.Add(mobilityTerms(pos, us))
	total = total.Add(kingSafetyTerms(pos, us))

	return total
}

func pawnStructureTerms(pos *board.Position, us board.Color) board.ScorePair {
	var total board.ScorePair
	ownPawns := pos.PiecesOf(us, board.Pawn)
	enemyPawns := pos.PiecesOf(us.Other(), board.Pawn)

	for f := 0; f < 8; f++ {
		count := (ownPawns & fileMask[f]).Count()
		if count == 0 {
			continue
		}
		if count > 1 {
			total = total.Add(doubledPawnPenalty.Mul(int32(count - 1)))
		}
		if ownPawns&adjacentFilesMask(f) == 0 {
			total = total.Add(isolatedPawnPenalty.Mul(int32(count)))
		}
	}

	for bb := ownPawns; bb != 0; {
		sq := board.PopLSB(&bb)
		if isPassed(sq, us, enemyPawns) {
			rank := sq.Rank()
			if us == board.Black {
				rank = 7 - rank
			}
			total = total.Add(board.S(passedPawnMG[rank], passedPawnEG[rank]))
		}
	}
	return total
}

// isPassed reports whether the pawn on sq (of color us) has no enemy pawn
// on its own or either adjacent file on any rank strictly ahead of it.
func isPassed(sq board.Square, us board.Color, enemyPawns board.Bitboard) bool {
	file := sq.File()
	blockers := fileMask[file] | adjacentFilesMask(file)
	var aheadMask board.Bitboard
	if us == board.White {
		for r := sq.Rank() + 1; r < 8; r++ {
			aheadMask |= rankMask(r)
		}
	} else {
		for r := sq.Rank() - 1; r >= 0; r-- {
			aheadMask |= rankMask(r)
		}
	}
	return enemyPawns&blockers&aheadMask == 0
}

func rankMask(rank int) board.Bitboard {
	var m board.Bitboard
	for f := 0; f < 8; f++ {
		m |= board.Bit(board.SquareOf(f, rank))
	}
	return m
}

func rookFileTerms(pos *board.Position, us board.Color) board.ScorePair {
	var total board.ScorePair
	ownPawns := pos.PiecesOf(us, board.Pawn)
	enemyPawns := pos.PiecesOf(us.Other(), board.Pawn)
	for bb := pos.PiecesOf(us, board.Rook); bb != 0; {
		sq := board.PopLSB(&bb)
		f := fileMask[sq.File()]
		ownOnFile := ownPawns & f
		enemyOnFile := enemyPawns & f
		if ownOnFile == 0 && enemyOnFile == 0 {
			total = total.Add(rookOpenFileBonus)
		} else if ownOnFile == 0 && enemyOnFile != 0 {
			total = total.Add(rookSemiOpenFileBonus)
		}
	}
	return total
}

// mobilityTerms scores knight/bishop/rook/queen mobility and returns the
// side's total; as a side effect callers that also need king-safety
// attacker counts recompute attack sets there directly (evaluate's
// allocation-free contract is per spec.md 4.1 only for the attack-table
// queries themselves, not this per-node scratch accounting).
func mobilityTerms(pos *board.Position, us board.Color) board.ScorePair {
	var total board.ScorePair
	occ := pos.Occupied()
	friends := pos.ColorBB(us)
	mobilityArea := ^friends &^ enemyPawnAttacks(pos, us)

	score := func(pt board.PieceType, targets board.Bitboard) {
		count := int32((targets & mobilityArea).Count())
		total = total.Add(mobilityValue[pt].Mul(count - mobilityBaseline[pt]))
	}

	for bb := pos.PiecesOf(us, board.Knight); bb != 0; {
		sq := board.PopLSB(&bb)
		score(board.Knight, attacks.KnightAttacks(sq))
	}
	for bb := pos.PiecesOf(us, board.Bishop); bb != 0; {
		sq := board.PopLSB(&bb)
		score(board.Bishop, attacks.BishopAttacks(sq, occ))
	}
	for bb := pos.PiecesOf(us, board.Rook); bb != 0; {
		sq := board.PopLSB(&bb)
		score(board.Rook, attacks.RookAttacks(sq, occ))
	}
	for bb := pos.PiecesOf(us, board.Queen); bb != 0; {
		sq := board.PopLSB(&bb)
		score(board.Queen, attacks.QueenAttacks(sq, occ))
	}
	return total
}

func enemyPawnAttacks(pos *board.Position, us board.Color) board.Bitboard {
	them := us.Other()
	var att board.Bitboard
	for bb := pos.PiecesOf(them, board.Pawn); bb != 0; {
		sq := board.PopLSB(&bb)
		att |= attacks.PawnAttacks(them, sq)
	}
	return att
}

func kingSafetyTerms(pos *board.Position, us board.Color) board.ScorePair {
	them := us.Other()
	kingSq := pos.KingSquare(us)
	if kingSq == board.NoSquare {
		return board.ScorePair{}
	}
	kingFile := kingSq.File()
	region := fileMask[kingFile] | adjacentFilesMask(kingFile)

	var total board.ScorePair
	ownPawns := pos.PiecesOf(us, board.Pawn)
	enemyPawns := pos.PiecesOf(them, board.Pawn)

	var aheadMask board.Bitboard
	if us == board.White {
		for r := kingSq.Rank() + 1; r <= kingSq.Rank()+2 && r < 8; r++ {
			aheadMask |= rankMask(r)
		}
	} else {
		for r := kingSq.Rank() - 1; r >= kingSq.Rank()-2 && r >= 0; r-- {
			aheadMask |= rankMask(r)
		}
	}
	shelterPawns := int32((ownPawns & region & aheadMask).Count())
	stormPawns := int32((enemyPawns & region & aheadMask).Count())
	total = total.Add(kingShelterBonus.Mul(shelterPawns))
	total = total.Sub(kingStormPenalty.Mul(stormPawns))

	for f := kingFile - 1; f <= kingFile+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		if ownPawns&fileMask[f] != 0 {
			continue
		}
		if enemyPawns&fileMask[f] != 0 {
			total = total.Add(kingSemiOpenFilePenalty)
		} else {
			total = total.Add(kingOpenFilePenalty)
		}
	}

	kingZone := attacks.KingAttacks(kingSq) | board.Bit(kingSq)
	occ := pos.Occupied()
	var danger int32
	for _, pt := range []board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen} {
		for bb := pos.PiecesOf(them, pt); bb != 0; {
			sq := board.PopLSB(&bb)
			var att board.Bitboard
			switch pt {
			case board.Knight:
				att = attacks.KnightAttacks(sq)
			case board.Bishop:
				att = attacks.BishopAttacks(sq, occ)
			case board.Rook:
				att = attacks.RookAttacks(sq, occ)
			case board.Queen:
				att = attacks.QueenAttacks(sq, occ)
			}
			if att&kingZone != 0 {
				danger += kingAttackerWeight[pt]
			}
		}
	}
	total.MG -= (danger * danger) / 8

	return total
}

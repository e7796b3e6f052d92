package attacks

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"chessengine/board"
)

type magicEntry struct {
	mask  board.Bitboard
	magic uint64
	shift uint
	table []board.Bitboard
}

var (
	rookMagics   [64]magicEntry
	bishopMagics [64]magicEntry
)

var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// slidingAttack walks each direction from sq until it runs off the board or
// hits an occupied square (inclusive of that blocker, since the blocker is
// itself attacked).
func slidingAttack(sq board.Square, occ board.Bitboard, dirs [4][2]int) board.Bitboard {
	var att board.Bitboard
	file, rank := sq.File(), sq.Rank()
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for f >= 0 && f < 8 && r >= 0 && r < 8 {
			target := board.SquareOf(f, r)
			att |= board.Bit(target)
			if occ&board.Bit(target) != 0 {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return att
}

// relevantMask is the slidingAttack with the board edge excluded in each
// ray direction (the edge square itself can never block a blocker's own
// relevance, since nothing lies beyond it).
func relevantMask(sq board.Square, dirs [4][2]int) board.Bitboard {
	var mask board.Bitboard
	file, rank := sq.File(), sq.Rank()
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for {
			nf, nr := f+d[0], r+d[1]
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				break
			}
			mask |= board.Bit(board.SquareOf(f, r))
			f, r = nf, nr
		}
	}
	return mask
}

// subsetsOf enumerates every subset of mask via the Carry-Rippler trick.
func subsetsOf(mask board.Bitboard) []board.Bitboard {
	var subsets []board.Bitboard
	subset := board.Bitboard(0)
	for {
		subsets = append(subsets, subset)
		subset = (subset - mask) & mask
		if subset == 0 {
			break
		}
	}
	return subsets
}

// sparseRandom63 draws a 64-bit candidate with few set bits, the
// conventional shape for a promising magic multiplier.
func sparseRandom63() uint64 {
	return frand.Uint64n(1<<63-1) & frand.Uint64n(1<<63-1) & frand.Uint64n(1<<63-1)
}

// findMagic searches for a collision-free magic multiplier for sq given its
// relevant-occupancy mask, trying sparse random candidates until one maps
// every subset of mask to a unique (or equal-attack) table slot.
func findMagic(sq board.Square, mask board.Bitboard, dirs [4][2]int) magicEntry {
	bits := mask.Count()
	shift := uint(64 - bits)
	subsets := subsetsOf(mask)
	attacksFor := make([]board.Bitboard, len(subsets))
	for i, occ := range subsets {
		attacksFor[i] = slidingAttack(sq, occ, dirs)
	}

	table := make([]board.Bitboard, 1<<bits)
	used := make([]bool, 1<<bits)

	for attempt := 0; ; attempt++ {
		candidate := sparseRandom63()
		for i := range used {
			used[i] = false
		}
		ok := true
		for i, occ := range subsets {
			idx := (uint64(occ) * candidate) >> shift
			if used[idx] && table[idx] != attacksFor[i] {
				ok = false
				break
			}
			used[idx] = true
			table[idx] = attacksFor[i]
		}
		if ok {
			out := make([]board.Bitboard, 1<<bits)
			copy(out, table)
			return magicEntry{mask: mask, magic: candidate, shift: shift, table: out}
		}
		if attempt > 2_000_000 {
			panic(fmt.Sprintf("magic search failed to converge for square %d", sq))
		}
	}
}

func (e *magicEntry) attacks(occ board.Bitboard) board.Bitboard {
	idx := (uint64(occ&e.mask) * e.magic) >> e.shift
	return e.table[idx]
}

// buildMagics fills rookMagics and bishopMagics. The two piece kinds are
// independent, so they are searched concurrently with errgroup — a one-shot
// bounded job that runs at init time, strictly before any Position or
// Search exists (see SPEC_FULL.md section 4.9/5).
func buildMagics() error {
	var g errgroup.Group
	g.Go(func() error {
		for sq := board.Square(0); sq < 64; sq++ {
			mask := relevantMask(sq, rookDirs)
			rookMagics[sq] = findMagic(sq, mask, rookDirs)
		}
		return nil
	})
	g.Go(func() error {
		for sq := board.Square(0); sq < 64; sq++ {
			mask := relevantMask(sq, bishopDirs)
			bishopMagics[sq] = findMagic(sq, mask, bishopDirs)
		}
		return nil
	})
	return g.Wait()
}

// RookAttacks returns the rook's attack set from sq given the full board
// occupancy.
func RookAttacks(sq board.Square, occ board.Bitboard) board.Bitboard {
	return rookMagics[sq].attacks(occ)
}

// BishopAttacks returns the bishop's attack set from sq given the full
// board occupancy.
func BishopAttacks(sq board.Square, occ board.Bitboard) board.Bitboard {
	return bishopMagics[sq].attacks(occ)
}

// QueenAttacks is the union of rook and bishop attacks.
func QueenAttacks(sq board.Square, occ board.Bitboard) board.Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// Package order scores and sorts a move list so the search explores the
// moves most likely to cut off first: the transposition-table move, then
// MVV-LVA captures/promotions and killers by score, then other quiet moves.
// The fixed killer scores (8000, 7000) sit above most capture scores; only
// captures of a queen and queen promotions score higher.
package order

import (
	"chessengine/board"

	"lukechampine.com/frand"
)

const (
	ttMoveScore  = 1_000_000
	killer1Score = 8_000
	killer2Score = 7_000
	quietScore   = 0
)

// pieceValue mirrors eval's material scale but kept local and integer-only:
// move ordering never needs the tapered score, just a victim/attacker rank.
var pieceValue = [7]int32{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
}

// Killers holds the two most recent quiet moves that produced a beta
// cutoff at a given ply, per spec.md 4.6.
type Killers struct {
	slots [2]board.Move
}

// Store records m as the newest killer at this ply, shifting the previous
// newest into the second slot. Captures are never stored as killers.
func (k *Killers) Store(m board.Move) {
	if m == k.slots[0] {
		return
	}
	k.slots[1] = k.slots[0]
	k.slots[0] = m
}

func (k *Killers) Match(m board.Move) int {
	switch m {
	case k.slots[0]:
		return 1
	case k.slots[1]:
		return 2
	default:
		return 0
	}
}

// scored pairs a move with its ordering score for a single selection-sort
// pass; kept as a parallel slice rather than embedding the score in Move so
// board.Move stays a small value type unconcerned with search bookkeeping.
type scored struct {
	move  board.Move
	score int32
}

// Sort scores moves against an optional TT move and killer pair, then
// reorders them in place by descending score using the same incremental
// selection sort the teacher's orderNextMove performs (moves already
// explored don't need to be re-sorted, which matters more than asymptotic
// complexity for the short lists legal move generation produces).
func Sort(moves []board.Move, pos *board.Position, ttMove board.Move, killers *Killers) {
	scoredMoves := make([]scored, len(moves))
	for i, m := range moves {
		scoredMoves[i] = scored{move: m, score: score(m, pos, ttMove, killers)}
	}
	for i := range scoredMoves {
		best := i
		for j := i + 1; j < len(scoredMoves); j++ {
			if scoredMoves[j].score > scoredMoves[best].score {
				best = j
			}
		}
		scoredMoves[i], scoredMoves[best] = scoredMoves[best], scoredMoves[i]
		moves[i] = scoredMoves[i].move
	}
}

// score follows spec.md 4.6 literally: a capture scores victim*10-attacker,
// a promotion adds promoValue*10 on top of whatever capture score already
// applies (so a queen promotion and a pawn capturing a queen land in the
// same neighborhood instead of one unconditionally outranking the other).
func score(m board.Move, pos *board.Position, ttMove board.Move, killers *Killers) int32 {
	if !ttMove.IsNull() && m == ttMove {
		return ttMoveScore
	}
	if m.IsCapture() || m.IsPromotion() {
		var s int32
		if m.IsCapture() {
			s = mvvLva(m, pos)
		}
		if m.IsPromotion() {
			s += pieceValue[m.PromoteTo] * 10
		}
		return s
	}
	if killers != nil {
		switch killers.Match(m) {
		case 1:
			return killer1Score
		case 2:
			return killer2Score
		}
	}
	return quietScore
}

// mvvLva is victim value * 10 - attacker value, per spec.md 4.6; en passant's
// victim is always a pawn even though the captured square differs from m.To.
func mvvLva(m board.Move, pos *board.Position) int32 {
	attacker := pos.PieceAt(m.From).Type
	var victim board.PieceType
	if m.Kind == board.EnPassant {
		victim = board.Pawn
	} else {
		victim = pos.PieceAt(m.To).Type
	}
	return pieceValue[victim]*10 - pieceValue[attacker]
}

// ExtractCaptures sorts a capture-only move list by MVV-LVA alone, for
// quiescence search where there is no TT move or killer context.
func ExtractCaptures(moves []board.Move, pos *board.Position) {
	scoredMoves := make([]scored, len(moves))
	for i, m := range moves {
		scoredMoves[i] = scored{move: m, score: mvvLva(m, pos)}
	}
	for i := range scoredMoves {
		best := i
		for j := i + 1; j < len(scoredMoves); j++ {
			if scoredMoves[j].score > scoredMoves[best].score {
				best = j
			}
		}
		scoredMoves[i], scoredMoves[best] = scoredMoves[best], scoredMoves[i]
		moves[i] = scoredMoves[i].move
	}
}

// ShuffleEqual randomizes the order of moves sharing the top score, used
// only when Config.RandomizeEqualMoves opts in; disabled by default so
// perft and mate-search tests stay deterministic.
func ShuffleEqual(moves []board.Move, pos *board.Position, ttMove board.Move, killers *Killers) {
	Sort(moves, pos, ttMove, killers)
	if len(moves) < 2 {
		return
	}
	top := score(moves[0], pos, ttMove, killers)
	end := 1
	for end < len(moves) && score(moves[end], pos, ttMove, killers) == top {
		end++
	}
	frand.Shuffle(end, func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
}

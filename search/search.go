// Package search implements iterative-deepening alpha-beta with principal
// variation search, null-move pruning, late-move reductions and
// quiescence search, backed by the tt and order packages.
package search

import (
	"time"

	"chessengine/board"
	"chessengine/eval"
	"chessengine/movegen"
	"chessengine/order"
	"chessengine/tt"
)

// Engine owns one transposition table and the per-search scratch state
// (killers, PV table, node counter) needed across an iterative-deepening
// run. A single Engine must not be used by two concurrent Search calls;
// neither the table nor the scratch state here is synchronized.
type Engine struct {
	table *tt.Table

	killers     [MaxPly]order.Killers
	pvTable     [MaxPly][MaxPly]board.Move
	pvLength    [MaxPly]int
	searchStack []uint64

	nodes    uint64
	stopped  bool
	deadline time.Time
	hasLimit bool

	cfg Config
}

// NewEngine wraps an existing transposition table; callers construct the
// table once (tt.New) and reuse it across searches so cached entries
// survive between moves.
func NewEngine(table *tt.Table) *Engine {
	return &Engine{table: table}
}

// Search runs iterative deepening from pos up to cfg.MaxDepth and/or
// cfg.MoveTime, calling info after every completed depth, and returns the
// best move found and its score from the side-to-move's point of view.
// gameHistory holds Zobrist hashes of positions reached earlier in the
// game (for repetition detection); it does not include pos itself.
func (e *Engine) Search(pos *board.Position, gameHistory []uint64, cfg Config, info InfoFunc) (board.Move, int) {
	e.cfg = cfg
	e.nodes = 0
	e.stopped = false
	e.searchStack = e.searchStack[:0]
	e.table.NewSearch()

	if cfg.MoveTime > 0 {
		e.deadline = time.Now().Add(cfg.MoveTime)
		e.hasLimit = true
	} else {
		e.hasLimit = false
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxPly-1 {
		maxDepth = MaxPly - 1
	}

	start := time.Now()
	var bestMove board.Move
	var bestScore int

	for depth := 1; depth <= maxDepth; depth++ {
		e.pvLength[0] = 0
		score := e.negamax(pos, gameHistory, -eval.Infinity, eval.Infinity, depth, 0)

		if e.stopped && depth > 1 {
			break
		}

		if e.pvLength[0] > 0 {
			bestMove = e.pvTable[0][0]
			bestScore = score
		}

		if info != nil {
			pv := make([]board.Move, e.pvLength[0])
			copy(pv, e.pvTable[0][:e.pvLength[0]])
			info(Info{Depth: depth, Score: score, Nodes: e.nodes, Elapsed: time.Since(start), PV: pv})
		}

		e.cfg.Logger.Debug().Int("depth", depth).Int("score", score).Uint64("nodes", e.nodes).Msg("iteration-done")

		if bestScore >= eval.Mate-maxDepth {
			break
		}
		if e.stopped {
			break
		}
	}

	return bestMove, bestScore
}

func (e *Engine) timeUp() bool {
	if e.nodes&1023 != 0 {
		return e.stopped
	}
	if e.cfg.Stop != nil && e.cfg.Stop.Load() {
		e.stopped = true
	}
	if e.hasLimit && time.Now().After(e.deadline) {
		e.stopped = true
	}
	return e.stopped
}

// negamax searches pos to depth plies from ply, returning a score from the
// side-to-move's point of view. alpha/beta are in that same perspective.
func (e *Engine) negamax(pos *board.Position, gameHistory []uint64, alpha, beta, depth, ply int) int {
	e.nodes++
	e.pvLength[ply] = ply

	if e.timeUp() {
		return 0
	}

	isPV := beta-alpha > 1
	isRoot := ply == 0

	if !isRoot {
		if isRepetitionOrFifty(pos.Hash(), pos.HalfmoveClock(), e.searchStack, gameHistory) {
			return eval.Draw
		}
	}

	inCheck := movegen.IsInCheck(pos, pos.SideToMove())

	if depth <= 0 && !inCheck {
		return e.quiescence(pos, alpha, beta, ply)
	}
	if inCheck {
		depth++ // check extension: never resolve a check at depth 0
	}

	if ply >= MaxPly-1 {
		return eval.Evaluate(pos)
	}

	hash := pos.Hash()
	var ttMove board.Move
	probeResult, hit := e.table.Probe(hash)
	if hit {
		if !isRoot && !isPV && int(probeResult.Depth) >= depth {
			score := tt.ScoreFromTT(int(probeResult.Score), ply)
			switch probeResult.Bound {
			case tt.Exact:
				return score
			case tt.Lower:
				if score >= beta {
					return score
				}
			case tt.Upper:
				if score <= alpha {
					return score
				}
			}
		}
		ttMove = tt.DecodeMove(probeResult.Move)
	}

	var buf [256]board.Move
	moves := movegen.GenerateLegal(pos, buf[:0])
	if len(moves) == 0 {
		if inCheck {
			return -eval.Mate + ply
		}
		return eval.Draw
	}

	// Null-move pruning: skip our move entirely and see if the opponent is
	// still unable to improve past beta. Disabled in check, at PV nodes,
	// at the root, and when we have no non-pawn material (zugzwang risk).
	if !inCheck && !isPV && !isRoot && depth >= 3 && hasNonPawnMaterial(pos, pos.SideToMove()) {
		e.searchStack = append(e.searchStack, hash)
		undo := pos.MakeNullMove()
		score := -e.negamax(pos, gameHistory, -beta, -beta+1, depth-1-2, ply+1)
		e.searchStack = e.searchStack[:len(e.searchStack)-1]
		pos.UnmakeNullMove(undo)
		if e.stopped {
			return 0
		}
		if score >= beta {
			e.cfg.Logger.Debug().Int("depth", depth).Int("ply", ply).Msg("null-move-cutoff")
			return score
		}
	}

	if isRoot && e.cfg.RandomizeEqualMoves {
		order.ShuffleEqual(moves, pos, ttMove, &e.killers[ply])
	} else {
		order.Sort(moves, pos, ttMove, &e.killers[ply])
	}

	bestScore := -eval.Infinity
	var bestMove board.Move
	bound := tt.Upper
	legalIndex := 0

	for _, m := range moves {
		e.searchStack = append(e.searchStack, hash)
		undo := pos.MakeMove(m)
		legalIndex++
		givesCheck := movegen.IsInCheck(pos, pos.SideToMove())

		var score int
		if legalIndex == 1 {
			score = -e.negamax(pos, gameHistory, -beta, -alpha, depth-1, ply+1)
		} else {
			reduction := 0
			if depth >= 3 && legalIndex >= 2 && !m.IsCapture() && !m.IsPromotion() && !inCheck && !givesCheck {
				reduction = lmrReduction(depth, legalIndex)
				if maxReduction := depth - 2; reduction > maxReduction {
					reduction = maxReduction
				}
			}
			score = -e.negamax(pos, gameHistory, -alpha-1, -alpha, depth-1-reduction, ply+1)
			if score > alpha && reduction > 0 {
				score = -e.negamax(pos, gameHistory, -alpha-1, -alpha, depth-1, ply+1)
			}
			if score > alpha && score < beta {
				score = -e.negamax(pos, gameHistory, -beta, -alpha, depth-1, ply+1)
			}
		}

		e.searchStack = e.searchStack[:len(e.searchStack)-1]
		pos.UnmakeMove(m, undo)

		if e.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = tt.Exact
				e.updatePV(ply, m)
			}
		}

		if alpha >= beta {
			bound = tt.Lower
			if !m.IsCapture() {
				e.killers[ply].Store(m)
			}
			break
		}
	}

	e.table.Store(hash, int16(tt.ScoreToTT(bestScore, ply)), int16(depth), bound, tt.EncodeMove(bestMove))

	return bestScore
}

func (e *Engine) updatePV(ply int, m board.Move) {
	e.pvTable[ply][ply] = m
	for i := ply + 1; i < e.pvLength[ply+1]; i++ {
		e.pvTable[ply][i] = e.pvTable[ply+1][i]
	}
	e.pvLength[ply] = e.pvLength[ply+1]
	if e.pvLength[ply] <= ply {
		e.pvLength[ply] = ply + 1
	}
}

func hasNonPawnMaterial(pos *board.Position, side board.Color) bool {
	for _, pt := range []board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen} {
		if pos.PiecesOf(side, pt) != 0 {
			return true
		}
	}
	return false
}

// quiescence resolves captures/promotions (and, when in check, all legal
// replies) until the position is quiet, preventing the horizon effect at
// the end of the main search.
func (e *Engine) quiescence(pos *board.Position, alpha, beta, ply int) int {
	e.nodes++

	if e.timeUp() {
		return 0
	}
	if ply >= MaxPly-1 {
		return eval.Evaluate(pos)
	}

	inCheck := movegen.IsInCheck(pos, pos.SideToMove())
	standPat := eval.Evaluate(pos)

	if !inCheck {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	hash := pos.Hash()
	if probeResult, hit := e.table.Probe(hash); hit && probeResult.Depth == 0 {
		score := tt.ScoreFromTT(int(probeResult.Score), ply)
		switch probeResult.Bound {
		case tt.Exact:
			return score
		case tt.Lower:
			if score >= beta {
				return score
			}
		case tt.Upper:
			if score <= alpha {
				return score
			}
		}
	}

	var buf [256]board.Move
	var moves []board.Move
	if inCheck {
		moves = movegen.GenerateLegal(pos, buf[:0])
		if len(moves) == 0 {
			return -eval.Mate + ply
		}
		order.Sort(moves, pos, board.NullMove, nil)
	} else {
		moves = movegen.GenerateLegalCaptures(pos, buf[:0])
		order.ExtractCaptures(moves, pos)
	}

	bestScore := standPat
	if inCheck {
		bestScore = -eval.Infinity
	}
	bound := tt.Upper

	for _, m := range moves {
		undo := pos.MakeMove(m)
		score := -e.quiescence(pos, -beta, -alpha, ply+1)
		pos.UnmakeMove(m, undo)

		if e.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
			bound = tt.Exact
		}
		if alpha >= beta {
			bound = tt.Lower
			break
		}
	}

	e.table.Store(hash, int16(tt.ScoreToTT(bestScore, ply)), 0, bound, 0)

	return bestScore
}

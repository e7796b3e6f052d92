package search

import (
	"sync/atomic"
	"time"

	"chessengine/board"

	"github.com/rs/zerolog"
)

// MaxPly bounds both recursion depth and the killer-move table; a search
// this deep has never been reached by any legal chess game.
const MaxPly = 128

// Config drives a single Search call: time/depth limits, an optional
// external stop flag, and the ambient logging/randomization hooks.
type Config struct {
	MaxDepth int           // 0 means "no depth limit, rely on MoveTime/Stop"
	MoveTime time.Duration // 0 means "no time limit, rely on MaxDepth/Stop"

	// Stop, when non-nil, is polled periodically (every 1024 nodes) in
	// addition to MoveTime; the caller sets it from another goroutine to
	// implement a UCI "stop" command.
	Stop *atomic.Bool

	Logger zerolog.Logger

	// RandomizeEqualMoves shuffles equally-scored moves at the ordering
	// stage; off by default so perft/mate tests stay deterministic.
	RandomizeEqualMoves bool
}

// Info is one iterative-deepening progress report, handed to the caller's
// callback after each completed depth.
type Info struct {
	Depth   int
	Score   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Move
}

// InfoFunc receives one Info per completed iteration; a nil InfoFunc is
// valid and simply means nobody is listening.
type InfoFunc func(Info)

// Package uci implements a text-protocol loop that drives a search.Engine:
// uci, isready, ucinewgame, position, go, stop, quit.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"chessengine/board"
	"chessengine/fen"
	"chessengine/movegen"
	"chessengine/search"
	"chessengine/tt"

	"github.com/rs/zerolog"
)

const (
	engineName   = "chessengine"
	engineAuthor = "chessengine"
)

// Driver owns the live game state between UCI commands: the current
// position, move history (for repetition detection) and the search
// engine/table that persists across "go" calls within one game.
type Driver struct {
	pos     *board.Position
	history []uint64

	engine *search.Engine
	stop   atomic.Bool
	logger zerolog.Logger

	out *bufio.Writer
}

// New constructs a Driver with a freshly allocated transposition table and
// the startpos loaded.
func New(out io.Writer, logger zerolog.Logger) *Driver {
	table := tt.New(64 << 20)
	pos, _ := fen.Parse(fen.StartPos)
	return &Driver{
		pos:     pos,
		engine:  search.NewEngine(table),
		logger:  logger,
		out:     bufio.NewWriter(out),
	}
}

// Run reads UCI commands from in, one per line, until "quit" or EOF.
func (d *Driver) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "uci":
			d.handleUCI()
		case "isready":
			d.println("readyok")
		case "ucinewgame":
			d.handleNewGame()
		case "position":
			d.handlePosition(fields[1:])
		case "go":
			d.handleGo(fields[1:])
		case "stop":
			d.stop.Store(true)
		case "quit":
			d.out.Flush()
			return
		default:
			d.println(fmt.Sprintf("info string unknown command %s", fields[0]))
		}
	}
	d.out.Flush()
}

func (d *Driver) println(s string) {
	fmt.Fprintln(d.out, s)
	d.out.Flush()
}

func (d *Driver) handleUCI() {
	d.println(fmt.Sprintf("id name %s", engineName))
	d.println(fmt.Sprintf("id author %s", engineAuthor))
	d.println("uciok")
}

func (d *Driver) handleNewGame() {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		d.logger.Error().Err(err).Msg("ucinewgame: failed to reset position")
		return
	}
	d.pos = pos
	d.history = d.history[:0]
}

func (d *Driver) handlePosition(args []string) {
	if len(args) == 0 {
		d.println("info string malformed position command")
		return
	}

	var pos *board.Position
	var rest []string
	switch strings.ToLower(args[0]) {
	case "startpos":
		p, err := fen.Parse(fen.StartPos)
		if err != nil {
			d.logger.Error().Err(err).Msg("position startpos: parse failed")
			return
		}
		pos = p
		rest = args[1:]
	case "fen":
		fenFields := args[1:]
		end := 0
		for end < len(fenFields) && strings.ToLower(fenFields[end]) != "moves" {
			end++
		}
		p, err := fen.Parse(strings.Join(fenFields[:end], " "))
		if err != nil {
			d.println(fmt.Sprintf("info string %v", err))
			return
		}
		pos = p
		rest = fenFields[end:]
	default:
		d.println("info string invalid position subcommand")
		return
	}

	var history []uint64
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			var buf [256]board.Move
			legal := movegen.GenerateLegal(pos, buf[:0])
			m, ok := findMove(legal, moveStr)
			if !ok {
				d.println(fmt.Sprintf("info string move %s not found for current position", moveStr))
				continue
			}
			history = append(history, pos.Hash())
			pos.MakeMove(m)
		}
	}

	d.pos = pos
	d.history = history
}

func findMove(legal []board.Move, s string) (board.Move, bool) {
	for _, m := range legal {
		if strings.EqualFold(m.String(), s) {
			return m, true
		}
	}
	return board.Move{}, false
}

func (d *Driver) handleGo(args []string) {
	var wtime, btime, winc, binc, depth, movetime int
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "wtime":
			i++
			wtime = atoiOr(args, i)
		case "btime":
			i++
			btime = atoiOr(args, i)
		case "winc":
			i++
			winc = atoiOr(args, i)
		case "binc":
			i++
			binc = atoiOr(args, i)
		case "depth":
			i++
			depth = atoiOr(args, i)
		case "movetime":
			i++
			movetime = atoiOr(args, i)
		case "infinite":
			depth = 0
			movetime = 0
		}
	}

	cfg := search.Config{Logger: d.logger}
	d.stop.Store(false)
	cfg.Stop = &d.stop

	if depth > 0 {
		cfg.MaxDepth = depth
	}

	switch {
	case movetime > 0:
		cfg.MoveTime = time.Duration(movetime) * time.Millisecond
	case wtime > 0 || btime > 0:
		myTime, myInc := wtime, winc
		if d.pos.SideToMove() == board.Black {
			myTime, myInc = btime, binc
		}
		cfg.MoveTime = allocateTime(myTime, myInc)
	}

	best, score := d.engine.Search(d.pos, d.history, cfg, func(info search.Info) {
		d.printInfo(info)
	})
	_ = score
	d.println(fmt.Sprintf("bestmove %s", best.String()))
}

// allocateTime follows the classic remaining/30 + increment budget, clamped
// above by remaining/3 (never commit a third of the clock to one move) and
// below by a 50ms floor (never search for an unusably short slice).
func allocateTime(remainingMs, incMs int) time.Duration {
	budget := remainingMs/30 + incMs
	if ceiling := remainingMs / 3; budget > ceiling {
		budget = ceiling
	}
	if budget < 50 {
		budget = 50
	}
	return time.Duration(budget) * time.Millisecond
}

func atoiOr(args []string, i int) int {
	if i < 0 || i >= len(args) {
		return 0
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0
	}
	return n
}

func (d *Driver) printInfo(info search.Info) {
	pv := make([]string, len(info.PV))
	for i, m := range info.PV {
		pv[i] = m.String()
	}
	d.println(fmt.Sprintf("info depth %d score cp %d nodes %d time %d pv %s",
		info.Depth, info.Score, info.Nodes, info.Elapsed.Milliseconds(), strings.Join(pv, " ")))
}

// Package tt implements the lockless, packed transposition table: a flat
// array of 64-byte (one cache line) clusters of 4 entries, each entry
// exactly 10 bytes. Memory layout is load-bearing here — see the static
// size assertions in init().
package tt

import (
	"unsafe"

	"chessengine/board"
)

// Bound tags what a stored score means relative to the search window that
// produced it.
type Bound uint8

const (
	NoBound Bound = iota
	Exact
	Lower // fail-high: true score >= stored
	Upper // fail-low: true score <= stored
)

// entry is exactly 10 bytes: every field here is naturally aligned to its
// own size with nothing wider than 2 bytes, so the Go compiler inserts no
// padding between them.
type entry struct {
	key      uint16 // top 16 bits of the position hash
	score    int16
	move16   uint16
	depth    int16
	genBound uint8 // (generation << 2) | bound
}

const entrySize = unsafe.Sizeof(entry{})
const clusterEntries = 4

// cluster is padded out to exactly one 64-byte cache line.
type cluster struct {
	entries [clusterEntries]entry
	_       [64 - clusterEntries*entrySize]byte
}

const clusterSize = unsafe.Sizeof(cluster{})

func init() {
	if entrySize != 10 {
		panic("tt: entry must be exactly 10 bytes")
	}
	if clusterSize != 64 {
		panic("tt: cluster must be exactly 64 bytes")
	}
}

// Table is the transposition table. Its cluster array is owned for the
// table's lifetime and must not be resized while a search holds a
// reference to it (spec.md section 5).
type Table struct {
	clusters   []cluster
	mask       uint64 // clusterCount - 1, clusterCount is a power of two
	generation uint8  // 6 bits, wraps at 64

	probes    uint64
	hits      uint64
	overwrite uint64
}

// New allocates a table sized to approximately sizeBytes, rounded down to a
// power-of-two cluster count.
func New(sizeBytes int) *Table {
	count := sizeBytes / int(clusterSize)
	if count < 1 {
		count = 1
	}
	pow := 1
	for pow*2 <= count {
		pow *= 2
	}
	return &Table{clusters: make([]cluster, pow), mask: uint64(pow - 1)}
}

func (t *Table) clusterIndex(hash uint64) uint64 { return hash & t.mask }

func verificationKey(hash uint64) uint16 { return uint16(hash >> 48) }

// Probe looks up hash and, on a hit, returns the stored score/depth/bound/
// move and true. On a miss it returns the zero Result and false — a TT
// miss is not an error (spec.md section 7).
type Result struct {
	Score int16
	Depth int16
	Bound Bound
	Move  uint16
}

func (t *Table) Probe(hash uint64) (Result, bool) {
	t.probes++
	key := verificationKey(hash)
	cl := &t.clusters[t.clusterIndex(hash)]
	for i := range cl.entries {
		e := &cl.entries[i]
		if e.genBound != 0 && e.key == key {
			t.hits++
			return Result{Score: e.score, Depth: e.depth, Bound: Bound(e.genBound & 3), Move: e.move16}, true
		}
	}
	return Result{}, false
}

// Store writes (hash, score, depth, bound, move16) into the table,
// choosing a slot by the priority spec.md section 4.5 lays out: same-key
// update (gated by depth/EXACT), then the first empty slot, then the
// lowest depth-4*age entry.
func (t *Table) Store(hash uint64, score int16, depth int16, bound Bound, move16 uint16) {
	key := verificationKey(hash)
	cl := &t.clusters[t.clusterIndex(hash)]

	for i := range cl.entries {
		e := &cl.entries[i]
		if e.genBound != 0 && e.key == key {
			if depth >= e.depth || bound == Exact {
				t.writeEntry(e, key, score, depth, bound, move16)
			}
			return
		}
	}

	for i := range cl.entries {
		e := &cl.entries[i]
		if e.genBound == 0 {
			t.writeEntry(e, key, score, depth, bound, move16)
			return
		}
	}

	worst := &cl.entries[0]
	worstValue := t.replacementValue(worst)
	for i := 1; i < clusterEntries; i++ {
		e := &cl.entries[i]
		if v := t.replacementValue(e); v < worstValue {
			worst, worstValue = e, v
		}
	}
	t.overwrite++
	t.writeEntry(worst, key, score, depth, bound, move16)
}

func (t *Table) replacementValue(e *entry) int32 {
	age := (uint8(t.generation) - (e.genBound >> 2)) & 0x3F
	return int32(e.depth) - 4*int32(age)
}

func (t *Table) writeEntry(e *entry, key uint16, score, depth int16, bound Bound, move16 uint16) {
	e.key = key
	e.score = score
	e.depth = depth
	e.move16 = move16
	e.genBound = (t.generation << 2) | uint8(bound)
}

// NewSearch advances the 6-bit generation counter, wrapping at 64.
func (t *Table) NewSearch() { t.generation = (t.generation + 1) & 0x3F }

// Clear zeroes every cluster and resets generation/stats.
func (t *Table) Clear() {
	for i := range t.clusters {
		t.clusters[i] = cluster{}
	}
	t.generation = 0
	t.probes, t.hits, t.overwrite = 0, 0, 0
}

// Stats returns (probes, hits, overwrites) for telemetry.
func (t *Table) Stats() (uint64, uint64, uint64) { return t.probes, t.hits, t.overwrite }

// Prefetch is a hint the search may call when it knows a hash shortly
// before using it; Go has no portable non-temporal prefetch intrinsic, so
// this touches the cluster to pull it into cache rather than issuing an
// actual prefetch instruction.
func (t *Table) Prefetch(hash uint64) {
	_ = t.clusters[t.clusterIndex(hash)]
}

// ScoreToTT adjusts a mate score to be relative to the root before storing,
// per spec.md section 4.5.
func ScoreToTT(score int, ply int) int {
	if score >= MateThreshold {
		return score + ply
	}
	if score <= -MateThreshold {
		return score - ply
	}
	return score
}

// ScoreFromTT is ScoreToTT's inverse, applied on probe.
func ScoreFromTT(score int, ply int) int {
	if score >= MateThreshold {
		return score - ply
	}
	if score <= -MateThreshold {
		return score + ply
	}
	return score
}

const MateThreshold = 100000 - 200

// EncodeMove packs a board.Move into the TT's 16-bit move encoding:
// from:6, to:6, typePromo:4.
func EncodeMove(m board.Move) uint16 {
	if m.IsNull() {
		return 0
	}
	var typePromo uint16
	switch m.Kind {
	case board.Normal:
		typePromo = 0
	case board.CaptureMove:
		typePromo = 1
	case board.EnPassant:
		typePromo = 2
	case board.Castling:
		typePromo = 3
	case board.Promotion:
		typePromo = 4 + promoIndex(m.PromoteTo)
	case board.PromotionCapture:
		typePromo = 8 + promoIndex(m.PromoteTo)
	}
	return uint16(m.From)&0x3F | (uint16(m.To)&0x3F)<<6 | (typePromo&0xF)<<12
}

func promoIndex(pt board.PieceType) uint16 {
	switch pt {
	case board.Queen:
		return 0
	case board.Knight:
		return 1
	case board.Bishop:
		return 2
	case board.Rook:
		return 3
	default:
		return 0
	}
}

var promoPieceFromIndex = [4]board.PieceType{board.Queen, board.Knight, board.Bishop, board.Rook}

// DecodeMove reconstructs a board.Move from the TT's 16-bit encoding. The
// move's from/to/kind/promotion are recovered exactly; callers still need
// the live Position to know whether a "Capture" kind is correct in the
// face of zobrist collisions, which is why TT moves are always validated
// against the legal move list before being played.
func DecodeMove(move16 uint16) board.Move {
	if move16 == 0 {
		return board.NullMove
	}
	from := board.Square(move16 & 0x3F)
	to := board.Square((move16 >> 6) & 0x3F)
	typePromo := (move16 >> 12) & 0xF
	switch {
	case typePromo == 0:
		return board.Move{From: from, To: to, Kind: board.Normal}
	case typePromo == 1:
		return board.Move{From: from, To: to, Kind: board.CaptureMove}
	case typePromo == 2:
		return board.Move{From: from, To: to, Kind: board.EnPassant}
	case typePromo == 3:
		return board.Move{From: from, To: to, Kind: board.Castling}
	case typePromo >= 4 && typePromo <= 7:
		return board.Move{From: from, To: to, Kind: board.Promotion, PromoteTo: promoPieceFromIndex[typePromo-4]}
	default:
		return board.Move{From: from, To: to, Kind: board.PromotionCapture, PromoteTo: promoPieceFromIndex[typePromo-8]}
	}
}

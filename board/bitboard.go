package board

import "math/bits"

// PopLSB clears and returns the least-significant set square of bb.
// The caller must guard against a zero bitboard; calling this on an empty
// bitboard is a precondition violation, not a recoverable error.
func PopLSB(bb *Bitboard) Square {
	sq := Square(bits.TrailingZeros64(uint64(*bb)))
	*bb &= *bb - 1
	return sq
}

// LSB returns the least-significant set square of bb without clearing it.
// The caller must guard against a zero bitboard.
func LSB(bb Bitboard) Square { return Square(bits.TrailingZeros64(uint64(bb))) }

// MSB returns the most-significant set square of bb without clearing it.
// The caller must guard against a zero bitboard.
func MSB(bb Bitboard) Square { return Square(63 - bits.LeadingZeros64(uint64(bb))) }

// Count returns the number of set bits.
func (bb Bitboard) Count() int { return bits.OnesCount64(uint64(bb)) }

// Empty reports whether no bit is set.
func (bb Bitboard) Empty() bool { return bb == 0 }

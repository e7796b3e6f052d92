package search

// isRepetitionOrFifty reports whether pos should be scored as a draw by
// repetition or the fifty-move rule. searchStack holds the hashes of the
// positions on the current search path above pos (the root first, the
// parent last; pos itself is not on it); gameHistory holds
// hashes from moves played before the search began. The scan window is
// bounded by the halfmove clock, since no position further back than the
// last pawn move or capture can repeat the current one (spec.md 4.7).
//
// A single match within searchStack suffices: the search already knows it
// will reach the same position again if it repeats it a second time, so
// treating it as a draw immediately avoids searching a losing line twice.
// A match that only shows up in gameHistory (positions already played
// before this search began) needs a second match before it counts,
// matching the threefold-repetition rule for positions the search cannot
// itself force a return to.
func isRepetitionOrFifty(hash uint64, halfmoveClock int, searchStack []uint64, gameHistory []uint64) bool {
	if halfmoveClock >= 100 {
		return true
	}

	remaining := halfmoveClock
	for i := len(searchStack) - 1; i >= 0 && remaining > 0; i-- {
		if searchStack[i] == hash {
			return true
		}
		remaining--
	}
	matches := 0
	for i := len(gameHistory) - 1; i >= 0 && remaining > 0; i-- {
		if gameHistory[i] == hash {
			matches++
			if matches >= 2 {
				return true
			}
		}
		remaining--
	}
	return false
}

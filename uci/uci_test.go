package uci

import (
	"testing"
	"time"
)

func TestAllocateTimeUsesBaseFormula(t *testing.T) {
	got := allocateTime(6000, 100)
	want := time.Duration(6000/30+100) * time.Millisecond
	if got != want {
		t.Fatalf("allocateTime(6000, 100) = %v, want %v", got, want)
	}
}

func TestAllocateTimeClampsToRemainingThird(t *testing.T) {
	// remaining/30 + inc would be 3000/30 + 5000 = 5100ms, but remaining/3
	// is only 1000ms, so the ceiling must win (and sits comfortably above
	// the 50ms floor, so the floor never gets a say here).
	got := allocateTime(3000, 5000)
	want := time.Duration(3000/3) * time.Millisecond
	if got != want {
		t.Fatalf("allocateTime(3000, 5000) = %v, want %v (clamped to remaining/3)", got, want)
	}
}

func TestAllocateTimeFloorsAt50ms(t *testing.T) {
	got := allocateTime(300, 0)
	if got != 50*time.Millisecond {
		t.Fatalf("allocateTime(300, 0) = %v, want 50ms floor", got)
	}
}

func TestAllocateTimeFloorsEvenWhenPositiveButBelow50(t *testing.T) {
	got := allocateTime(600, 0)
	// 600/30 = 20ms, below the 50ms floor even though it's positive.
	if got != 50*time.Millisecond {
		t.Fatalf("allocateTime(600, 0) = %v, want 50ms floor", got)
	}
}

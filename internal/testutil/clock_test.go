package testutil

import (
	"testing"
	"time"
)

func TestFixedClock_Advances(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	c := NewFixedClock(start, time.Minute)

	if got := c.Now(); !got.Equal(start) {
		t.Errorf("first Now() = %v, want %v", got, start)
	}
	if got := c.Now(); !got.Equal(start.Add(time.Minute)) {
		t.Errorf("second Now() = %v, want %v", got, start.Add(time.Minute))
	}
}

func TestFixedClock_PeekDoesNotAdvance(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	c := NewFixedClock(start, time.Minute)

	if got := c.Peek(); !got.Equal(start) {
		t.Errorf("Peek() = %v, want %v", got, start)
	}
	if got := c.Now(); !got.Equal(start) {
		t.Errorf("Now() after Peek() = %v, want %v", got, start)
	}
}

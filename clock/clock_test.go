package clock

import (
	"testing"
	"time"
)

func TestManual(t *testing.T) {
	c := NewManual()
	if c.Elapsed() != 0 {
		t.Fatalf("new clock should start at zero")
	}
	c.Advance(250 * time.Millisecond)
	c.Advance(250 * time.Millisecond)
	if got := c.Elapsed(); got != 500*time.Millisecond {
		t.Fatalf("Elapsed = %v, want 500ms", got)
	}
	c.Set(2 * time.Second)
	if got := c.Elapsed(); got != 2*time.Second {
		t.Fatalf("Elapsed = %v, want 2s", got)
	}
}

func TestRealIsMonotonic(t *testing.T) {
	var c Clock = NewReal()
	a := c.Elapsed()
	b := c.Elapsed()
	if a < 0 || b < a {
		t.Fatalf("elapsed went backwards: %v then %v", a, b)
	}
}

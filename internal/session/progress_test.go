package session

import (
	"testing"
	"time"
)

func TestProgressMessageIsPure(t *testing.T) {
	if got := ProgressMessage(OpNone, 10*time.Second); got != "" {
		t.Fatalf("idle must have no progress line, got %q", got)
	}
	a := ProgressMessage(OpAdvancing, 0)
	if a == "" {
		t.Fatal("advancing must have a progress line")
	}
	if b := ProgressMessage(OpAdvancing, 0); b != a {
		t.Fatalf("same inputs gave different messages: %q vs %q", a, b)
	}
}

func TestProgressMessageRotates(t *testing.T) {
	first := ProgressMessage(OpEnding, 0)
	second := ProgressMessage(OpEnding, progressInterval)
	if first == second {
		t.Fatal("message did not rotate after the interval")
	}
	wrap := time.Duration(len(endingMessages)) * progressInterval
	if got := ProgressMessage(OpEnding, wrap); got != first {
		t.Fatalf("rotation must wrap around, got %q", got)
	}
}

package session

import (
	"testing"
	"time"
)

func TestZeroStateIsIdle(t *testing.T) {
	var st State
	if st.Busy() {
		t.Fatalf("zero state must be idle, got op %q", st.Op)
	}
	if got := st.Elapsed(); got != 0 {
		t.Fatalf("zero state has no elapsed time, got %v", got)
	}
	if got := ProgressMessage(st.Op, 5*time.Second); got != "" {
		t.Fatalf("zero state must have no progress line, got %q", got)
	}
}

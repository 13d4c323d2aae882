package session

import (
	"errors"
	"time"

	"github.com/mjarlund/fableday-tui/internal/story"
)

// Operation names the session's current long-running operation. Exactly one
// holds at a time. OpNone is the empty string so a zero State is idle.
type Operation string

const (
	OpNone      Operation = ""
	OpLoading   Operation = "loading"
	OpAdvancing Operation = "advancing"
	OpEnding    Operation = "ending"
)

// Guard errors. These mark caller contract violations and busy rejections;
// they are returned synchronously, never recorded in the error reporter,
// and callers are expected to prevent them by checking State first.
var (
	ErrBusy          = errors.New("another operation is in flight")
	ErrNoSnapshot    = errors.New("no story loaded")
	ErrStoryComplete = errors.New("story can no longer advance")
	ErrStoryOpen     = errors.New("story is not ready for an ending")
	ErrEndingExists  = errors.New("story already has an ending")
)

// State is a copy of the session's visible state at one instant. The
// chapter slice and ending pointer are shared but immutable: reloads swap
// them wholesale, never edit them in place.
//
// A State with HasSnapshot false and an occupied load slot means the
// initial load failed and there is nothing to show.
type State struct {
	StoryID     string
	HasSnapshot bool
	Snapshot    story.Snapshot
	Chapters    []story.Chapter
	Ending      *story.Ending
	Selection   story.Selection
	Op          Operation
	Started     time.Time
	Errors      Errors
}

// Busy reports whether any operation is in flight.
func (s State) Busy() bool { return s.Op != OpNone }

// Elapsed is how long the current operation has been running.
func (s State) Elapsed() time.Duration {
	if s.Op == OpNone || s.Started.IsZero() {
		return 0
	}
	return time.Since(s.Started)
}

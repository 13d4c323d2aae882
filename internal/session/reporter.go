package session

import "sync"

// Slot identifies which operation produced an error.
type Slot string

const (
	SlotLoad    Slot = "load"
	SlotCreate  Slot = "create"
	SlotAdvance Slot = "advance"
	SlotEnding  Slot = "ending"
	SlotDelete  Slot = "delete"
)

// Errors is a snapshot of the occupied reporter slots.
type Errors map[Slot]string

// Reporter keeps the last failure per operation. Slots are independent:
// recording one never clears another, and dismissing clears only the slot
// it names. Failures are display-only; the reporter never touches session
// state.
type Reporter struct {
	mu    sync.Mutex
	slots Errors
}

func NewReporter() *Reporter {
	return &Reporter{slots: make(Errors)}
}

// Report records err in slot. A nil err clears the slot, so a successful
// retry removes its own stale failure.
func (r *Reporter) Report(slot Slot, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.slots, slot)
		return
	}
	r.slots[slot] = err.Error()
}

// Dismiss clears one slot.
func (r *Reporter) Dismiss(slot Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, slot)
}

// Message returns the recorded failure for slot, if any.
func (r *Reporter) Message(slot Slot) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.slots[slot]
	return msg, ok
}

// All returns a copy of every occupied slot.
func (r *Reporter) All() Errors {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(Errors, len(r.slots))
	for k, v := range r.slots {
		out[k] = v
	}
	return out
}

package session

import "time"

// Progress lines are cosmetic and purely derived: the same operation and
// elapsed time always produce the same message, so the UI re-renders them
// from a timer tick without holding extra state.

const progressInterval = 3 * time.Second

var advanceMessages = []string{
	"writing the next day",
	"weighing consequences",
	"following open threads",
	"shaping the chapter",
}

var endingMessages = []string{
	"gathering loose threads",
	"closing the arc",
	"writing the final pages",
}

var loadingMessages = []string{
	"fetching the story",
	"still fetching",
}

// ProgressMessage returns the status line for an operation that has been
// running for elapsed time, rotating to the next message every few seconds.
// Idle returns the empty string.
func ProgressMessage(op Operation, elapsed time.Duration) string {
	msgs := messagesFor(op)
	if len(msgs) == 0 {
		return ""
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return msgs[int(elapsed/progressInterval)%len(msgs)]
}

func messagesFor(op Operation) []string {
	switch op {
	case OpAdvancing:
		return advanceMessages
	case OpEnding:
		return endingMessages
	case OpLoading:
		return loadingMessages
	default:
		return nil
	}
}

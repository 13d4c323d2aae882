package api

import "fmt"

// RemoteError is a failed call against the story service. Status holds the
// HTTP status code, or 0 when the request never completed. Detail is the
// service's own explanation when the error body carried one, otherwise a
// per-operation fallback message.
type RemoteError struct {
	Status int
	Detail string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Detail, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

// Unwrap exposes the underlying transport error, if any.
func (e *RemoteError) Unwrap() error { return e.Err }

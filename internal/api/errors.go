package api

import "fmt"

// RemoteMutationError reports a backend rejection of a decide/undo or
// other mutating call. The review session surfaces it as a toast and
// never rolls local state back because of it.
type RemoteMutationError struct {
	Op         string
	ItemID     string
	StatusCode int
	Message    string
}

func (e *RemoteMutationError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("%s %s: backend returned %d: %s", e.Op, e.ItemID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Message)
}

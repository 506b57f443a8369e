package core

import "fmt"

// EventType represents the type of external change to a memo set's on-disk files.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an external change to a memo set record file, observed by
// the gateway's watcher. Hosts react by reloading the store.
type Event struct {
	Type      EventType
	Set       string // memo set title
	Timestamp int64  // Unix timestamp
}

// String implements fmt.Stringer (and thereby lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Set)
}

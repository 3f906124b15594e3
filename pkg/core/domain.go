// Package core holds the location registry domain.
package core

import "golang.org/x/text/cases"

// Entry is a named location inside a category.
type Entry struct {
	Name string
	Text string
}

// Category groups entries under a theme. Entries keep the order in which
// they were first stored.
type Category struct {
	Name    string
	Entries []Entry
}

// Lookup resolves an entry name case-insensitively.
func (c Category) Lookup(name string) (Entry, int, bool) {
	for i, e := range c.Entries {
		if EqualFold(e.Name, name) {
			return e, i, true
		}
	}
	return Entry{}, -1, false
}

func (c Category) clone() Category {
	out := Category{Name: c.Name, Entries: make([]Entry, len(c.Entries))}
	copy(out.Entries, c.Entries)
	return out
}

// PinRecord points at the single live summary message.
type PinRecord struct {
	ChannelID string
	MessageID string
}

// IsZero reports whether no pin has been recorded.
func (p PinRecord) IsZero() bool {
	return p.ChannelID == "" || p.MessageID == ""
}

// Document is the full persisted state.
type Document struct {
	Categories []Category
	Pin        PinRecord
}

// EqualFold compares two keys using Unicode case folding.
func EqualFold(a, b string) bool {
	// Casers keep state and must not be shared.
	return cases.Fold().String(a) == cases.Fold().String(b)
}

// EventType represents the type of change observed on the backing document.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change made to the backing document outside this process.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}

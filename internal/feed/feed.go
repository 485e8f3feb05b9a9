// Package feed keeps the dashboard's rolling event log: a bounded,
// newest-first list of classified lines received from the session layer.
package feed

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Capacity bounds the feed; the oldest entry is evicted on overflow.
const Capacity = 100

// Category tells where a line came from.
type Category string

const (
	Outbound Category = "outbound"
	Inbound  Category = "inbound"
	System   Category = "system"
)

// Entry is one immutable log line.
type Entry struct {
	ID        string
	Timestamp string
	Category  Category
	Message   string
}

// Classify maps the session layer's prefix convention to a category and
// returns the message with its prefix stripped. Lines without a recognized
// prefix are system lines, unchanged.
func Classify(line string) (Category, string) {
	switch {
	case strings.HasPrefix(line, "TX: "):
		return Outbound, strings.TrimPrefix(line, "TX: ")
	case strings.HasPrefix(line, "RX: "):
		return Inbound, strings.TrimPrefix(line, "RX: ")
	case strings.HasPrefix(line, "SYS: "):
		return System, strings.TrimPrefix(line, "SYS: ")
	default:
		return System, line
	}
}

// Feed is the bounded newest-first log. Not safe for concurrent use; the
// UI owns it and feeds it from its own update loop.
type Feed struct {
	entries []Entry
	now     func() time.Time
}

// New returns an empty feed.
func New() *Feed {
	return &Feed{now: time.Now}
}

// Add classifies a line, prepends it as a new entry, and evicts the oldest
// entry when over capacity.
func (f *Feed) Add(line string) Entry {
	cat, msg := Classify(line)
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: f.now().Format("15:04:05"),
		Category:  cat,
		Message:   msg,
	}
	f.entries = append([]Entry{e}, f.entries...)
	if len(f.entries) > Capacity {
		f.entries = f.entries[:Capacity]
	}
	return e
}

// Entries returns the current entries, newest first.
func (f *Feed) Entries() []Entry {
	return f.entries
}

// Len reports the number of entries held.
func (f *Feed) Len() int {
	return len(f.entries)
}

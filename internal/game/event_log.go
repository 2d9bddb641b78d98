package game

import (
	"fmt"
	"strings"
)

// EventLogEntry is one recorded gameplay event.
type EventLogEntry struct {
	Step     int
	Ball     string  // label e.g. "b12", or "--" for session-wide events
	Tier     int     // -1 when not tied to a tier
	Category string  // session, drop, merge, score, gameover, clear
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[S=0042] b7    merge     complete         tier 2 → 3
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[S=%04d] %-5s %-9s %-16s %s",
		e.Step, e.Ball, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for one session. It is unbounded and
// meant for tests, headless reports and UI feeds.
type EventLog struct {
	entries []EventLogEntry
	verbose bool
}

// NewEventLog creates an EventLog. Verbose mode also keeps per-collision
// entries, which are noisy.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(step int, ball string, tier int, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventLogEntry{
		Step:     step,
		Ball:     ball,
		Tier:     tier,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(step int, ball string, tier int, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(step, ball, tier, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	return el.entries
}

// Filter returns entries matching category and/or key. Empty matches anything.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if an entry matches category, key and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

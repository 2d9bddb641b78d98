package app

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 280
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Step     int
	Tier     int // -1 for session-wide lines
	Category string
	Message  string
}

// Feed is a ring buffer of recent round events rendered beside the playfield.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
	cursor  int // entries of the current event log already copied in
	source  *game.EventLog
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (f *Feed) Add(step, tier int, category, msg string) {
	f.entries[f.head] = FeedEntry{Step: step, Tier: tier, Category: category, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Note adds a line that did not come from the event log.
func (f *Feed) Note(msg string) { f.Add(-1, -1, "app", msg) }

// Sync copies event log entries recorded since the last call. Switching to a
// different log starts over from its first entry.
func (f *Feed) Sync(el *game.EventLog) {
	if el != f.source {
		f.source = el
		f.cursor = 0
	}
	entries := el.Entries()
	for _, e := range entries[f.cursor:] {
		if e.Category == "collision" {
			continue
		}
		f.Add(e.Step, e.Tier, e.Category, fmt.Sprintf("%s %s %s", e.Ball, e.Key, e.Value))
	}
	f.cursor = len(entries)
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Draw renders the feed panel at panelX.
func (f *Feed) Draw(screen *ebiten.Image, face text.Face, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 40, G: 28, B: 20, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 123, G: 84, B: 57, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 18, color.RGBA{R: 123, G: 84, B: 57, A: 255}, false)
	drawText(screen, face, "EVENTS", panelX+8, 2, color.White)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const recent = 3

	y := 22
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 70, G: 50, B: 36, A: 160}, false)
		}
		if e.Tier >= 0 {
			vector.FillRect(screen, float32(panelX+5), float32(y+4), 4, 6, tierColor(e.Tier), false)
		}
		line := e.Message
		if e.Step >= 0 {
			line = fmt.Sprintf("%5d %-8s %s", e.Step, e.Category, e.Message)
		}
		drawText(screen, face, line, panelX+12, y, color.RGBA{R: 255, G: 232, B: 158, A: 255})
		y += feedLineHeight
	}
}

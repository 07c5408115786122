package studio

import (
	"slices"
	"time"

	"voxtone/internal/catalog"
)

// HistoryLimit is how many generations the session keeps.
const HistoryLimit = 5

// HistoryItem records one successful main generation.
type HistoryItem struct {
	ID string
	// Text is the text that was read aloud.
	Text string
	// PromptText holds the manual instruction, set only in manual mode.
	PromptText string
	Voice      catalog.VoiceName
	StyleName  string
	Mode       Mode
	Clip       *Clip
	CreatedAt  time.Time
}

// History is a most-recent-first list bounded to a fixed number of items.
// Evicted items are simply dropped.
type History struct {
	limit int
	items []HistoryItem
}

// NewHistory returns an empty history keeping at most limit items.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &History{limit: limit}
}

// Push prepends item, evicting the oldest entry past the limit.
func (h *History) Push(item HistoryItem) {
	h.items = slices.Insert(h.items, 0, item)
	if len(h.items) > h.limit {
		clear(h.items[h.limit:])
		h.items = h.items[:h.limit]
	}
}

// Items returns the entries, most recent first.
func (h *History) Items() []HistoryItem {
	return slices.Clone(h.items)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.items)
}

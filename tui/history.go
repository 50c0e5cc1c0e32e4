// Package tui provides the Bubble Tea terminal UI for Netherhall: a
// scrollback viewport, a status bar, and an input line with history.
package tui

// History keeps recent commands in a fixed-size ring with cursor-based
// navigation for the up/down arrow keys.
type History struct {
	buf    []string
	size   int // live entries, at most len(buf)
	head   int // slot the next entry will be written to
	cursor int // steps back from the newest entry; 0 = not navigating
}

// NewHistory creates a history ring holding at most capacity commands.
func NewHistory(capacity int) *History {
	return &History{buf: make([]string, capacity)}
}

// at returns the entry n steps back from the write position (1 = newest).
func (h *History) at(n int) string {
	return h.buf[(h.head-n+len(h.buf))%len(h.buf)]
}

// Push records a command. Repeating the newest entry is a no-op.
func (h *History) Push(cmd string) {
	if h.size > 0 && h.at(1) == cmd {
		return
	}
	h.buf[h.head] = cmd
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Prev steps toward older entries, sticking at the oldest.
// Returns false when history is empty.
func (h *History) Prev() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	if h.cursor < h.size {
		h.cursor++
	}
	return h.at(h.cursor), true
}

// Next steps back toward the newest entry. Returns false once the cursor
// passes it, meaning the input line should go back to fresh text.
func (h *History) Next() (string, bool) {
	if h.cursor <= 1 {
		h.cursor = 0
		return "", false
	}
	h.cursor--
	return h.at(h.cursor), true
}

// ResetCursor abandons navigation.
func (h *History) ResetCursor() {
	h.cursor = 0
}

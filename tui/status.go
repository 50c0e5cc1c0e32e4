package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// current room, score, sanity, and move count. Sanity turns red when the
// player is close to the edge.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	roomName := s.Room
	if room, ok := m.engine.World.Rooms[s.Room]; ok && room.Title != "" {
		roomName = room.Title
	}

	left := " " + roomName
	right := fmt.Sprintf("Score: %d | Sanity: %d | Moves: %d ", s.Score, s.Sanity, s.Moves)

	style := styleStatusBar
	if s.Sanity <= 25 {
		style = styleSanityLow
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return style.Width(m.width).Render(bar)
}

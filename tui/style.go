package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindYouSee
	kindExits
	kindDialogue
	kindSystem
	kindError
	kindTrace
)

// The palette leans cold: grays for the house, a sickly candle-yellow for
// anything that speaks, red only when the narration pushes back.
var (
	styleStatusBar = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Bold(true)

	styleSanityLow = styleStatusBar.Foreground(lipgloss.Color("167"))

	styleInputPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("67"))
	stylePlayerInput = styleInputPrompt

	styleYouSee = lipgloss.NewStyle().Bold(true)

	kindStyles = map[lineKind]lipgloss.Style{
		kindRoomDesc: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		kindYouSee:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		kindExits:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		kindDialogue: lipgloss.NewStyle().Foreground(lipgloss.Color("228")),
		kindSystem:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		kindError:    lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		kindTrace:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
)

// Refusal phrasings that read better in the error color.
var errorPrefixes = []string{
	"You don't",
	"You can't",
	"You aren't",
	"I don't",
	"None of those",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	if strings.HasPrefix(line, "[trace]") {
		return kindTrace
	}
	if len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']' {
		return kindSystem
	}
	if strings.HasPrefix(line, "You see:") {
		return kindYouSee
	}
	if strings.HasPrefix(line, "Exits:") {
		return kindExits
	}
	for _, p := range errorPrefixes {
		if strings.HasPrefix(line, p) {
			return kindError
		}
	}
	if hasSpokenQuote(line) {
		return kindDialogue
	}
	return kindRoomDesc
}

// hasSpokenQuote reports whether the line carries a quoted passage long
// enough to be speech rather than a title or an inscription.
func hasSpokenQuote(line string) bool {
	for _, q := range []string{`"`, `'`} {
		rest := line
		for {
			open := strings.Index(rest, q)
			if open < 0 {
				break
			}
			end := strings.Index(rest[open+1:], q)
			if end < 0 {
				break
			}
			if end > 5 {
				return true
			}
			rest = rest[open+1+end+1:]
		}
	}
	return false
}

// styledYouSee renders "You see: item1, item2." with item names bold.
func styledYouSee(line string) string {
	rest, found := strings.CutPrefix(line, "You see: ")
	if !found {
		return kindStyles[kindRoomDesc].Render(line)
	}
	return kindStyles[kindRoomDesc].Render("You see: ") + styleYouSee.Render(rest)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return kindStyles[kindSystem].Render("[" + text + "]")
}

// Package cli provides plain terminal I/O for the Netherhall engine: a
// prompt loop, word-wrapped output, and a handful of slash meta-commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/tmorvan/netherhall/engine"
	"github.com/tmorvan/netherhall/internal/session"
	"github.com/tmorvan/netherhall/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Store     session.Store
	Log       *slog.Logger
	In        io.Reader
	Out       io.Writer
	Width     int
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine and save store.
func New(eng *engine.Engine, store session.Store, log *slog.Logger) *CLI {
	eng.Device = session.NewDevice(context.Background(), store, eng.State.SessionID)
	return &CLI{
		Engine: eng,
		Store:  store,
		Log:    log,
		In:     os.Stdin,
		Out:    os.Stdout,
		Width:  78,
	}
}

// Run starts the game loop: intro, then prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printWrapped(c.Engine.Intro())
	c.printLine("")

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.HandleInput(input)
		c.Log.Debug("command handled",
			"session_id", c.Engine.State.SessionID,
			"input", input, "kind", result.Kind, "success", result.Success)
		c.printWrapped(result.Message)
		if c.Trace {
			c.printTrace(result)
		}

		if c.Engine.QuitRequested() {
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/saves":
		c.cmdSaves()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSaves() {
	slots, err := c.Store.List(context.Background(), c.Engine.State.SessionID)
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saved games.")
		return
	}
	c.printSystem("Saved games: " + strings.Join(slots, ", "))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /saves        — List saved games",
		"  /quit         — Exit without saving",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
		"  look (l)               — Describe the room",
		"  examine <thing> (x)    — Look closely at something",
		"  go <dir>               — Move (or just type n/s/e/w/u/d)",
		"  take / drop <item>     — Pick up or put down",
		"  open / close / lock / unlock",
		"  put <item> in <thing>  — Stow something",
		"  talk to <npc>, ask <npc> about <topic>",
		"  inventory (i)          — Check what you're carrying",
		"  save / restore [name]  — Keep or resume a game",
		"  score, diagnose        — How you're doing, in points and in mind",
		"  again (g)              — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Session: %s", s.SessionID))
	c.printSystem(fmt.Sprintf("Room: %s  Moves: %d  Score: %d  Sanity: %d", s.Room, s.Moves, s.Score, s.Sanity))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Inventory))
	if len(s.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Counters) > 0 {
		c.printSystem(fmt.Sprintf("Counters: %v", s.Counters))
	}
}

func (c *CLI) printTrace(result types.ActionResult) {
	c.printSystem(fmt.Sprintf("[trace] kind=%s success=%v room_changed=%v state_changed=%v",
		result.Kind, result.Success, result.RoomChanged, result.StateChanged))
	if len(result.Objects) > 0 {
		c.printSystem(fmt.Sprintf("[trace] objects: %v", result.Objects))
	}
}

func (c *CLI) printWrapped(text string) {
	if text == "" {
		return
	}
	c.printLine(wordwrap.String(text, c.Width))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

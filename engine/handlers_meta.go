package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/resolve"
	"github.com/tmorvan/netherhall/engine/save"
	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleInventory(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	if len(e.State.Inventory) == 0 {
		return ok("You are empty-handed.")
	}
	lines := []string{"You are carrying:"}
	for _, id := range e.State.Inventory {
		line := "  a " + resolve.DisplayName(e.World, id)
		if e.World.Objects[id].Has(types.CapLight) && state.BoolProp(e.State, e.World, id, "is_lit") {
			line += " (providing light)"
		}
		lines = append(lines, line)
	}
	return ok(strings.Join(lines, "\n"))
}

func handleWait(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	return okState("Time passes. In this house, that is not a neutral thing.")
}

func handleScore(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	msg := fmt.Sprintf("Your score is %d", e.State.Score)
	if max := e.World.Info.MaxScore; max > 0 {
		msg += fmt.Sprintf(" of a possible %d", max)
	}
	msg += fmt.Sprintf(", in %d moves.", e.State.Moves)
	return ok(msg)
}

func handleDiagnose(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	s := e.State.Sanity
	var verdict string
	switch {
	case s >= 80:
		verdict = "Your mind is clear. For now."
	case s >= 50:
		verdict = "Your hands shake a little. You tell yourself it's the cold."
	case s >= 20:
		verdict = "The corners of the room keep moving when you aren't looking. You are not well."
	default:
		verdict = "You can no longer tell which of the voices is yours."
	}
	return ok(fmt.Sprintf("Sanity: %d/%d. %s", s, types.SanityMax, verdict))
}

func handleSave(e *Engine, cmd types.ParsedCommand, _, _ string) types.ActionResult {
	if e.Device == nil {
		return fail(types.ResultPersistenceFailure, "There is nowhere to save to.")
	}
	blob, err := save.Snapshot(e.State, e.World)
	if err != nil {
		return fail(types.ResultPersistenceFailure, "Saving failed: "+err.Error())
	}
	name := slotName(cmd)
	if err := e.Device.Store(name, blob); err != nil {
		return fail(types.ResultPersistenceFailure, "Saving failed: "+err.Error())
	}
	return ok(fmt.Sprintf("Saved to %q.", name))
}

func handleRestore(e *Engine, cmd types.ParsedCommand, _, _ string) types.ActionResult {
	if e.Device == nil {
		return fail(types.ResultPersistenceFailure, "There is nothing to restore from.")
	}
	name := slotName(cmd)
	blob, err := e.Device.Fetch(name)
	if err != nil {
		return fail(types.ResultPersistenceFailure, "Restoring failed: "+err.Error())
	}
	restored, err := save.Restore(blob, e.World)
	if err != nil {
		return fail(types.ResultPersistenceFailure, "Restoring failed: "+err.Error())
	}
	// The swap happens only after the snapshot decoded and validated whole;
	// a bad slot can never leave a half-restored session behind.
	e.State = restored
	res := okState(joinLines("Restored.", strings.Join(e.describeRoom(e.State.Room, true), "\n")))
	res.RoomChanged = true
	return res
}

func handleRestart(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	id := e.State.SessionID
	e.State = state.New(e.World)
	e.State.SessionID = id
	e.State.Visited[e.World.Info.Start] = true
	res := okState(e.Intro())
	res.RoomChanged = true
	return res
}

func handleQuit(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	e.quitRequested = true
	return ok("The manor will be waiting.")
}

// QuitRequested reports whether the player asked to end the session.
func (e *Engine) QuitRequested() bool {
	return e.quitRequested
}

func handleVerbose(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	e.State.Verbosity = types.Verbose
	return ok("Maximum verbosity. Full descriptions on every visit.")
}

func handleBrief(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	e.State.Verbosity = types.Brief
	return ok("Brief descriptions. Full text on first visit only.")
}

func handleSuperbrief(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	e.State.Verbosity = types.Superbrief
	return ok("Superbrief descriptions. Room names only.")
}

// slotName extracts a save slot name from the command, defaulting sensibly.
func slotName(cmd types.ParsedCommand) string {
	name := strings.TrimSpace(cmd.Object)
	if name == "" {
		return "default"
	}
	return strings.ReplaceAll(name, " ", "-")
}

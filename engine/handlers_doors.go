package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleOpen(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapOpenable) {
		return capFail(fmt.Sprintf("%s doesn't open.", capitalize(e.name(objID))))
	}
	if state.BoolProp(e.State, e.World, objID, "is_open") {
		return conflict("It's already open.")
	}
	if def.Has(types.CapLockable) && state.BoolProp(e.State, e.World, objID, "is_locked") {
		return conflict(fmt.Sprintf("%s is locked.", capitalize(e.name(objID))))
	}

	state.SetProp(e.State, objID, "is_open", true)
	e.rearmScripted(objID, "close")
	lines := []string{fmt.Sprintf("You open %s.", e.name(objID))}
	if def.Kind == types.KindContainer {
		if inside := state.Contents(e.State, e.World, objID); len(inside) > 0 {
			lines = append(lines, fmt.Sprintf("Inside you find %s.", e.listContents(inside)))
		}
	}
	lines = append(lines, e.fireScripted(objID, "open", "")...)
	return okState(strings.Join(lines, "\n"), objID)
}

func handleClose(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapOpenable) {
		return capFail(fmt.Sprintf("%s doesn't close.", capitalize(e.name(objID))))
	}
	if !state.BoolProp(e.State, e.World, objID, "is_open") {
		return conflict("It's already closed.")
	}

	state.SetProp(e.State, objID, "is_open", false)
	e.rearmScripted(objID, "open")
	lines := []string{fmt.Sprintf("You close %s.", e.name(objID))}
	lines = append(lines, e.fireScripted(objID, "close", "")...)
	return okState(strings.Join(lines, "\n"), objID)
}

func handleLock(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	return e.setLock(objID, targetID, true)
}

func handleUnlock(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	return e.setLock(objID, targetID, false)
}

func (e *Engine) setLock(objID, targetID string, locked bool) types.ActionResult {
	verb := "unlock"
	if locked {
		verb = "lock"
	}
	def := e.World.Objects[objID]
	if !def.Has(types.CapLockable) {
		return capFail(fmt.Sprintf("%s has no lock.", capitalize(e.name(objID))))
	}
	if state.BoolProp(e.State, e.World, objID, "is_locked") == locked {
		if locked {
			return conflict("It's already locked.")
		}
		return conflict("It isn't locked.")
	}
	if locked && state.BoolProp(e.State, e.World, objID, "is_open") {
		return conflict("You'll have to close it first.")
	}
	if !state.InInventory(e.State, targetID) {
		return conflict("You aren't carrying that.")
	}
	if key := state.StringProp(e.State, e.World, objID, "key"); key != targetID {
		return conflict(fmt.Sprintf("%s doesn't fit the lock.", capitalize(e.name(targetID))))
	}

	state.SetProp(e.State, objID, "is_locked", locked)
	lines := []string{fmt.Sprintf("The lock turns with a heavy click. %s is now %sed.",
		capitalize(e.name(objID)), verb)}
	lines = append(lines, e.fireScripted(objID, verb, targetID)...)
	return okState(strings.Join(lines, "\n"), objID, targetID)
}

// handleTurn covers both "turn crank" and "turn on/off lamp". The parser
// leaves on/off in the preposition slot.
func handleTurn(e *Engine, cmd types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]

	switch cmd.Preposition {
	case "on", "off":
		wantOn := cmd.Preposition == "on"
		prop := "is_on"
		if def.Has(types.CapLight) {
			prop = "is_lit"
		} else if !def.Has(types.CapTurnable) {
			return capFail(fmt.Sprintf("%s has no switch.", capitalize(e.name(objID))))
		}
		if state.BoolProp(e.State, e.World, objID, prop) == wantOn {
			if wantOn {
				return conflict("It's already on.")
			}
			return conflict("It's already off.")
		}
		if wantOn && def.Has(types.CapLight) && e.State.LampFuel == 0 {
			return conflict(fmt.Sprintf("%s is spent. Nothing happens.", capitalize(e.name(objID))))
		}

		state.SetProp(e.State, objID, prop, wantOn)
		var lines []string
		if wantOn {
			lines = append(lines, fmt.Sprintf("%s is now on.", capitalize(e.name(objID))))
			lines = append(lines, e.fireScripted(objID, "turn_on", "")...)
		} else {
			lines = append(lines, fmt.Sprintf("%s is now off.", capitalize(e.name(objID))))
			lines = append(lines, e.fireScripted(objID, "turn_off", "")...)
			if state.BoolProp(e.State, e.World, objID, "reversible") {
				e.rearmScripted(objID, "turn_on")
			}
		}
		return okState(strings.Join(lines, "\n"), objID)
	}

	if !def.Has(types.CapTurnable) {
		return capFail(fmt.Sprintf("%s doesn't turn.", capitalize(e.name(objID))))
	}
	lines := e.fireScripted(objID, "turn", "")
	if len(lines) == 0 {
		return ok(fmt.Sprintf("You turn %s. Nothing else happens.", e.name(objID)))
	}
	return okState(strings.Join(lines, "\n"), objID)
}

func handlePush(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	return e.shove(objID, "push", "You push %s. It doesn't yield.")
}

func handlePull(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	return e.shove(objID, "pull", "You pull %s. It doesn't yield.")
}

func (e *Engine) shove(objID, verb, stuck string) types.ActionResult {
	def := e.World.Objects[objID]
	if lines := e.fireScripted(objID, verb, ""); len(lines) > 0 {
		return okState(strings.Join(lines, "\n"), objID)
	}
	if !def.Has(types.CapMoveable) {
		return capFail(fmt.Sprintf(stuck, e.name(objID)))
	}
	return ok(fmt.Sprintf("You %s %s a little. Dust sifts down from above.", verb, e.name(objID)))
}

func handleTie(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapTieable) {
		return capFail(fmt.Sprintf("You can't tie %s to anything.", e.name(objID)))
	}
	prev := state.StringProp(e.State, e.World, objID, "tied_to")
	if prev == targetID {
		return conflict(fmt.Sprintf("It's already tied to %s.", e.name(targetID)))
	}
	if anchor := state.StringProp(e.State, e.World, objID, "anchor"); anchor != "" && anchor != targetID {
		return conflict(fmt.Sprintf("%s won't hold a knot.", capitalize(e.name(targetID))))
	}

	var lines []string
	if prev != "" {
		// Tying to a new anchor releases the old binding first.
		state.SetProp(e.State, objID, "tied_to", "")
		lines = append(lines, fmt.Sprintf("(first untying %s from %s)", e.name(objID), e.name(prev)))
		lines = append(lines, e.fireScripted(objID, "untie", prev)...)
		e.rearmScripted(objID, "tie")
	}
	if state.InInventory(e.State, objID) {
		state.MoveObject(e.State, e.World, objID, e.State.Room)
	}
	state.SetProp(e.State, objID, "tied_to", targetID)
	e.rearmScripted(objID, "untie")
	lines = append(lines, fmt.Sprintf("You tie %s to %s.", e.name(objID), e.name(targetID)))
	lines = append(lines, e.fireScripted(objID, "tie", targetID)...)
	return okState(strings.Join(lines, "\n"), objID, targetID)
}

func handleUntie(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapTieable) {
		return capFail(fmt.Sprintf("%s isn't tied to anything.", capitalize(e.name(objID))))
	}
	anchor := state.StringProp(e.State, e.World, objID, "tied_to")
	if anchor == "" {
		return conflict("It isn't tied to anything.")
	}

	state.SetProp(e.State, objID, "tied_to", "")
	e.rearmScripted(objID, "tie")
	lines := []string{fmt.Sprintf("You untie %s from %s.", e.name(objID), e.name(anchor))}
	lines = append(lines, e.fireScripted(objID, "untie", anchor)...)
	return okState(strings.Join(lines, "\n"), objID)
}

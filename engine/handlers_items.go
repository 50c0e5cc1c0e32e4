package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleTake(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]

	if state.InInventory(e.State, objID) {
		return conflict("You're already carrying that.")
	}
	switch def.Kind {
	case types.KindScenery:
		return capFail(fmt.Sprintf("%s is part of the manor. It stays.", capitalize(e.name(objID))))
	case types.KindNPC, types.KindCreature:
		return capFail(fmt.Sprintf("I doubt %s would appreciate that.", e.name(objID)))
	}
	if !def.Has(types.CapTakeable) {
		return capFail(fmt.Sprintf("You can't take %s.", e.name(objID)))
	}
	if e.State.Vehicle == objID {
		return conflict("You'd have to get out of it first.")
	}
	if len(e.State.Inventory) >= maxCarried {
		return conflict("Your hands are full. Drop something first.")
	}

	state.MoveObject(e.State, e.World, objID, types.LocInventory)
	lines := append([]string{"Taken."}, e.fireScripted(objID, "take", "")...)
	return okState(strings.Join(lines, "\n"), objID)
}

func handleDrop(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	if !state.InInventory(e.State, objID) {
		return conflict("You aren't carrying that.")
	}
	state.MoveObject(e.State, e.World, objID, e.State.Room)
	return okState("Dropped.", objID)
}

func handlePut(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	if objID == targetID {
		return conflict("You can't put something inside itself.")
	}
	tdef := e.World.Objects[targetID]
	if tdef.Kind != types.KindContainer {
		return capFail(fmt.Sprintf("You can't put things in %s.", e.name(targetID)))
	}
	if tdef.Has(types.CapOpenable) && !state.BoolProp(e.State, e.World, targetID, "is_open") {
		return conflict(fmt.Sprintf("%s is closed.", capitalize(e.name(targetID))))
	}
	if state.Location(e.State, e.World, targetID) == types.LocInsidePrefix+objID {
		return conflict("Not while it's inside the other one.")
	}

	prefix, held := e.requireHeld(objID)
	if !held {
		return conflict("You aren't carrying that.")
	}

	state.MoveObject(e.State, e.World, objID, types.LocInsidePrefix+targetID)
	msg := joinLines(prefix, "Done.")
	lines := append([]string{msg}, e.fireScripted(targetID, "receive", objID)...)
	return okState(strings.Join(lines, "\n"), objID, targetID)
}

func handleGive(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	tdef := e.World.Objects[targetID]
	if tdef.Kind != types.KindNPC && tdef.Kind != types.KindCreature {
		return capFail(fmt.Sprintf("%s has no use for gifts.", capitalize(e.name(targetID))))
	}

	// Gifts come from the hand, never from the floor.
	if !state.InInventory(e.State, objID) {
		return conflict("You aren't carrying that.")
	}

	if fx := e.fireScripted(targetID, "give:"+objID, objID); len(fx) > 0 {
		state.MoveObject(e.State, e.World, objID, types.LocHeldPrefix+targetID)
		return okState(strings.Join(fx, "\n"), objID, targetID)
	}
	if state.StringProp(e.State, e.World, targetID, "wants") == objID {
		state.MoveObject(e.State, e.World, objID, types.LocHeldPrefix+targetID)
		return okState(fmt.Sprintf("%s takes %s with an eagerness that unsettles you.",
			capitalize(e.name(targetID)), e.name(objID)), objID, targetID)
	}
	return ok(fmt.Sprintf("%s shows no interest.", capitalize(e.name(targetID))))
}

func handleThrow(e *Engine, cmd types.ParsedCommand, objID, targetID string) types.ActionResult {
	if _, held := e.requireHeld(objID); !held {
		return conflict("You aren't carrying that.")
	}

	if targetID != "" {
		tdef := e.World.Objects[targetID]
		if tdef.Kind == types.KindCreature || tdef.Kind == types.KindNPC {
			state.MoveObject(e.State, e.World, objID, e.State.Room)
			res := e.strike(targetID, objID, true)
			res.Message = joinLines(
				fmt.Sprintf("You hurl %s at %s.", e.name(objID), e.name(targetID)), res.Message)
			return res
		}
	}

	if state.BoolProp(e.State, e.World, objID, "fragile") {
		state.Destroy(e.State, e.World, objID)
		return okState(fmt.Sprintf("%s shatters against the floor. The echo takes too long to die.",
			capitalize(e.name(objID))), objID)
	}
	state.MoveObject(e.State, e.World, objID, e.State.Room)
	return okState(fmt.Sprintf("%s sails through the air and lands nearby.", capitalize(e.name(objID))), objID)
}

func handleEat(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapEdible) {
		return capFail(fmt.Sprintf("%s is not food, whatever it once was.", capitalize(e.name(objID))))
	}
	if _, held := e.requireHeld(objID); !held {
		return conflict("You aren't carrying that.")
	}
	state.Destroy(e.State, e.World, objID)
	msg := "You eat it. Not bad, considering where you found it."
	if n := state.IntProp(e.State, e.World, objID, "sanity_restore"); n > 0 {
		state.AdjustSanity(e.State, n)
		msg = joinLines(msg, "Warmth spreads through you. You feel steadier.")
	}
	return okState(msg, objID)
}

func handleDrink(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if def.Has(types.CapFillable) {
		liquid := state.StringProp(e.State, e.World, objID, "filled_with")
		if liquid == "" {
			return conflict(fmt.Sprintf("%s is empty.", capitalize(e.name(objID))))
		}
		state.SetProp(e.State, objID, "filled_with", "")
		msg := fmt.Sprintf("You drink the %s.", liquid)
		if liquid == "water" {
			state.AdjustSanity(e.State, 2)
			msg = joinLines(msg, "Cold and clean. Your head clears a little.")
		}
		return okState(msg, objID)
	}
	if !def.Has(types.CapDrinkable) {
		return capFail(fmt.Sprintf("You can't drink %s.", e.name(objID)))
	}
	if _, held := e.requireHeld(objID); !held {
		return conflict("You aren't carrying that.")
	}
	state.Destroy(e.State, e.World, objID)
	msg := "You drink it down."
	if n := state.IntProp(e.State, e.World, objID, "sanity_restore"); n > 0 {
		state.AdjustSanity(e.State, n)
		msg = joinLines(msg, "The fog behind your eyes thins.")
	}
	return okState(msg, objID)
}

package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleFill(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapFillable) {
		return capFail(fmt.Sprintf("%s won't hold liquid.", capitalize(e.name(objID))))
	}
	if state.StringProp(e.State, e.World, objID, "filled_with") != "" {
		return ok("It's already full.")
	}

	liquid := ""
	if targetID != "" {
		liquid = state.StringProp(e.State, e.World, targetID, "liquid")
		if liquid == "" {
			return conflict(fmt.Sprintf("There's nothing in %s to fill it from.", e.name(targetID)))
		}
	} else if room := e.World.Rooms[e.State.Room]; room.Water {
		liquid = "water"
	} else if has, okW := room.Props["has_water"].(bool); okW && has {
		liquid = "water"
	} else {
		return conflict("There's no water here.")
	}

	prefix, held := e.requireHeld(objID)
	if !held {
		return conflict("You aren't carrying that.")
	}
	state.SetProp(e.State, objID, "filled_with", liquid)
	return okState(joinLines(prefix, fmt.Sprintf("You fill %s with %s.", e.name(objID), liquid)), objID)
}

func handlePour(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapFillable) {
		return capFail(fmt.Sprintf("You can't pour %s.", e.name(objID)))
	}
	liquid := state.StringProp(e.State, e.World, objID, "filled_with")
	if liquid == "" {
		return conflict("It's already empty.")
	}

	state.SetProp(e.State, objID, "filled_with", "")
	if targetID != "" && liquid == "water" && state.BoolProp(e.State, e.World, targetID, "burning") {
		state.SetProp(e.State, targetID, "burning", false)
		return okState(fmt.Sprintf("The water hisses over %s and the flames die.", e.name(targetID)), objID, targetID)
	}
	return okState(fmt.Sprintf("The %s soaks into the floorboards and is gone.", liquid), objID)
}

func handleBurn(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapFlammable) {
		return capFail(fmt.Sprintf("%s won't burn.", capitalize(e.name(objID))))
	}

	flame := targetID
	if flame == "" {
		flame = e.litFlame()
	} else if !state.BoolProp(e.State, e.World, flame, "is_lit") &&
		!state.BoolProp(e.State, e.World, flame, "burning") {
		return conflict(fmt.Sprintf("%s isn't lit.", capitalize(e.name(flame))))
	}
	if flame == "" {
		return conflict("You have nothing to light it with.")
	}

	lines := []string{fmt.Sprintf("%s catches, flares, and collapses into ash.", capitalize(e.name(objID)))}
	lines = append(lines, e.fireScripted(objID, "burn", flame)...)
	state.Destroy(e.State, e.World, objID)
	return okState(strings.Join(lines, "\n"), objID)
}

func handleCut(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	blade := e.carriedWith(types.CapSharp, targetID)
	if blade == "" {
		if targetID != "" {
			return capFail(fmt.Sprintf("%s isn't sharp enough.", capitalize(e.name(targetID))))
		}
		return conflict("You have nothing sharp.")
	}

	def := e.World.Objects[objID]
	if !def.Has(types.CapCuttable) {
		return capFail(fmt.Sprintf("%s resists the blade.", capitalize(e.name(objID))))
	}
	if state.BoolProp(e.State, e.World, objID, "is_cut") {
		return conflict("It's already been cut.")
	}

	state.SetProp(e.State, objID, "is_cut", true)
	lines := []string{fmt.Sprintf("You cut %s with %s.", e.name(objID), e.name(blade))}
	lines = append(lines, e.fireScripted(objID, "cut", blade)...)
	return okState(strings.Join(lines, "\n"), objID, blade)
}

func handleDig(e *Engine, cmd types.ParsedCommand, objID, targetID string) types.ActionResult {
	tool := e.carriedWith(types.CapDigging, targetID)
	if tool == "" {
		return conflict("You have nothing to dig with.")
	}

	if objID != "" {
		if lines := e.fireScripted(objID, "dig", tool); len(lines) > 0 {
			return okState(strings.Join(lines, "\n"), objID, tool)
		}
		return ok(fmt.Sprintf("Digging at %s accomplishes nothing.", e.name(objID)))
	}

	room := e.World.Rooms[e.State.Room]
	if !room.Diggable {
		return conflict("The ground here is too hard to dig.")
	}
	dugFlag := "dug:" + e.State.Room
	if e.State.Flags[dugFlag] {
		return ok("You've already dug this ground over. There's nothing left.")
	}
	e.State.Flags[dugFlag] = true

	if room.Props != nil {
		if buried, okB := room.Props["buried"].(string); okB && buried != "" {
			state.MoveObject(e.State, e.World, buried, e.State.Room)
			return okState(fmt.Sprintf("Your %s strikes something. You uncover %s!",
				e.World.Objects[tool].Name, e.name(buried)), buried, tool)
		}
	}
	return okState("You dig a shallow hole and find only worms and black earth.", tool)
}

func handleInflate(e *Engine, _ types.ParsedCommand, objID, targetID string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapInflatable) {
		return capFail(fmt.Sprintf("%s can't be inflated.", capitalize(e.name(objID))))
	}
	if state.BoolProp(e.State, e.World, objID, "inflated") {
		return conflict("It's already inflated.")
	}
	pump := targetID
	if pump == "" {
		for _, id := range e.State.Inventory {
			if state.BoolProp(e.State, e.World, id, "pump") {
				pump = id
				break
			}
		}
	} else if !state.BoolProp(e.State, e.World, pump, "pump") {
		return capFail(fmt.Sprintf("You can't inflate anything with %s.", e.name(pump)))
	}
	if pump == "" {
		return conflict("You don't have a pump. Your lungs aren't up to it.")
	}

	state.SetProp(e.State, objID, "inflated", true)
	lines := []string{fmt.Sprintf("%s swells into shape.", capitalize(e.name(objID)))}
	lines = append(lines, e.fireScripted(objID, "inflate", pump)...)
	return okState(strings.Join(lines, "\n"), objID, pump)
}

func handleDeflate(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapInflatable) {
		return capFail(fmt.Sprintf("%s can't be deflated.", capitalize(e.name(objID))))
	}
	if !state.BoolProp(e.State, e.World, objID, "inflated") {
		return conflict("It's already deflated.")
	}
	if e.State.Vehicle == objID {
		return conflict("Not while you're in it.")
	}

	state.SetProp(e.State, objID, "inflated", false)
	return okState(fmt.Sprintf("%s sighs flat.", capitalize(e.name(objID))), objID)
}

func handleWave(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	return e.gesture(objID, "wave",
		fmt.Sprintf("You wave %s around. The shadows do not wave back.", e.name(objID)))
}

func handleRub(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	return e.gesture(objID, "rub",
		fmt.Sprintf("You rub %s. A layer of grime comes away on your hand.", e.name(objID)))
}

func handleShake(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if def.Kind == types.KindContainer && !e.canSeeInside(objID) {
		if len(state.Contents(e.State, e.World, objID)) > 0 {
			return ok(fmt.Sprintf("Something shifts and rattles inside %s.", e.name(objID)))
		}
	}
	return e.gesture(objID, "shake",
		fmt.Sprintf("You shake %s. Nothing falls out but dust.", e.name(objID)))
}

func handleSqueeze(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	return e.gesture(objID, "squeeze",
		fmt.Sprintf("You squeeze %s. It keeps its secrets.", e.name(objID)))
}

func handleTouch(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	return e.gesture(objID, "touch",
		fmt.Sprintf("%s is cold. Colder than the room.", capitalize(e.name(objID))))
}

func handleKnock(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	msg := fmt.Sprintf("You knock on %s. The sound is swallowed whole.", e.name(objID))
	if def.Kind == types.KindDoor {
		msg = "You knock. For a long moment you are sure something on the other side is listening."
	}
	return e.gesture(objID, "knock", msg)
}

// gesture fires an object's scripted response for a flavor verb, falling
// back to the supplied default line.
func (e *Engine) gesture(objID, verb, fallback string) types.ActionResult {
	if lines := e.fireScripted(objID, verb, ""); len(lines) > 0 {
		return okState(strings.Join(lines, "\n"), objID)
	}
	return ok(fallback, objID)
}

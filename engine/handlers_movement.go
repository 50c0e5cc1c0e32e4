package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleGo(e *Engine, cmd types.ParsedCommand, _, _ string) types.ActionResult {
	return e.moveDirection(cmd.Direction)
}

func (e *Engine) moveDirection(dir string) types.ActionResult {
	exits := state.RoomExits(e.State, e.World, e.State.Room)
	dest, present := exits[dir]
	if !present {
		return conflict("You can't go that way.")
	}
	if dest == "" {
		return conflict(fmt.Sprintf("The way %s is shut against you.", dir))
	}

	destRoom, okRoom := e.World.Rooms[dest]
	if !okRoom {
		return conflict("You can't go that way.")
	}

	if destRoom.Water && !e.afloat() {
		return conflict("Black water stretches ahead. You'll need something that floats.")
	}
	if !destRoom.Water && e.afloat() && e.State.Vehicle != "" {
		// Beaching is allowed; the vehicle stays at the waterline.
		v := e.State.Vehicle
		e.State.Vehicle = ""
		res := e.arrive(dest)
		res.Message = joinLines(fmt.Sprintf("You step out of %s onto solid ground.", e.name(v)), res.Message)
		return res
	}

	return e.arrive(dest)
}

// arrive commits a room change and renders the arrival text.
func (e *Engine) arrive(dest string) types.ActionResult {
	e.State.Room = dest
	if e.State.Vehicle != "" {
		state.MoveObject(e.State, e.World, e.State.Vehicle, dest)
	}

	var extra []string
	if state.MarkVisited(e.State, dest) {
		if room := e.World.Rooms[dest]; room.VisitScore > 0 {
			state.AddScore(e.State, room.VisitScore)
		}
	}
	if room := e.World.Rooms[dest]; room.Props != nil {
		if pen, okP := room.Props["sanity_penalty"]; okP {
			if n, okN := toInt(pen); okN && n > 0 {
				state.AdjustSanity(e.State, -n)
				extra = append(extra, "A chill crawls up your spine.")
			}
		}
	}

	lines := e.describeRoom(dest, false)
	lines = append(lines, extra...)
	res := okState(strings.Join(lines, "\n"))
	res.RoomChanged = true
	return res
}

// afloat reports whether the player is aboard something that handles water.
func (e *Engine) afloat() bool {
	if e.State.Vehicle == "" {
		return false
	}
	return state.StringProp(e.State, e.World, e.State.Vehicle, "medium") == "water"
}

func handleEnter(e *Engine, cmd types.ParsedCommand, objID, _ string) types.ActionResult {
	if objID != "" {
		def := e.World.Objects[objID]
		if def.Has(types.CapBoardable) {
			return handleBoard(e, cmd, objID, "")
		}
		return conflict(fmt.Sprintf("You can't get inside %s.", e.name(objID)))
	}
	exits := state.RoomExits(e.State, e.World, e.State.Room)
	if _, okIn := exits["in"]; okIn {
		return e.moveDirection("in")
	}
	return conflict("There's nothing here to enter.")
}

func handleLeave(e *Engine, cmd types.ParsedCommand, _, _ string) types.ActionResult {
	if e.State.Vehicle != "" {
		return handleDisembark(e, cmd, "", "")
	}
	exits := state.RoomExits(e.State, e.World, e.State.Room)
	if _, okOut := exits["out"]; okOut {
		return e.moveDirection("out")
	}
	return conflict("You'll have to say which way you want to go.")
}

func handleClimb(e *Engine, cmd types.ParsedCommand, objID, _ string) types.ActionResult {
	if cmd.Direction != "" {
		if objID != "" && !e.World.Objects[objID].Has(types.CapClimbable) {
			return capFail(fmt.Sprintf("%s isn't something you can climb.", capitalize(e.name(objID))))
		}
		exits := state.RoomExits(e.State, e.World, e.State.Room)
		if _, present := exits[cmd.Direction]; !present {
			return conflict("You can't climb that way.")
		}
		return e.moveDirection(cmd.Direction)
	}
	if objID == "" {
		exits := state.RoomExits(e.State, e.World, e.State.Room)
		if _, okUp := exits["up"]; okUp {
			return e.moveDirection("up")
		}
		return conflict("There's nothing here to climb.")
	}

	def := e.World.Objects[objID]
	if !def.Has(types.CapClimbable) {
		return capFail(fmt.Sprintf("%s isn't something you can climb.", capitalize(e.name(objID))))
	}
	if lines := e.fireScripted(objID, "climb", ""); len(lines) > 0 {
		res := okState(strings.Join(lines, "\n"))
		return res
	}
	if dest := state.StringProp(e.State, e.World, objID, "climb_dest"); dest != "" {
		res := e.arrive(dest)
		res.Message = joinLines(fmt.Sprintf("You clamber up %s.", e.name(objID)), res.Message)
		return res
	}
	return ok(fmt.Sprintf("You climb %s a short way, find nothing, and come back down.", e.name(objID)))
}

func handleBoard(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapBoardable) {
		return capFail(fmt.Sprintf("%s isn't something you can board.", capitalize(e.name(objID))))
	}
	if state.Location(e.State, e.World, objID) != e.State.Room {
		return fail(types.ResultObjectNotPresent, fmt.Sprintf("%s isn't here.", capitalize(e.name(objID))))
	}
	if e.State.Vehicle == objID {
		return conflict(fmt.Sprintf("You're already aboard %s.", e.name(objID)))
	}
	if def.Has(types.CapInflatable) && !state.BoolProp(e.State, e.World, objID, "inflated") {
		return conflict(fmt.Sprintf("%s is a sad puddle of rubber. Inflate it first.", capitalize(e.name(objID))))
	}

	var prefix string
	if prev := e.State.Vehicle; prev != "" {
		prefix = fmt.Sprintf("You climb out of %s.", e.name(prev))
	}
	e.State.Vehicle = objID
	return okState(joinLines(prefix, fmt.Sprintf("You climb aboard %s.", e.name(objID))), objID)
}

func handleDisembark(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	if e.State.Vehicle == "" {
		return conflict("You aren't in or on anything.")
	}
	room := e.World.Rooms[e.State.Room]
	if room.Water {
		return conflict("Into that water? The things beneath the surface would love that.")
	}
	v := e.State.Vehicle
	e.State.Vehicle = ""
	return okState(fmt.Sprintf("You climb out of %s.", e.name(v)), v)
}

func handleJump(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	return ok("You jump on the spot. The floorboards groan their disapproval.")
}

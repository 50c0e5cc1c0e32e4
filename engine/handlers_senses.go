package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/resolve"
	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleLook(e *Engine, cmd types.ParsedCommand, objID, _ string) types.ActionResult {
	if objID != "" {
		return handleExamine(e, cmd, objID, "")
	}
	if cmd.Direction != "" {
		room := e.World.Rooms[e.State.Room]
		if room.Props != nil {
			if view, okV := room.Props["view_"+cmd.Direction].(string); okV {
				return ok(view)
			}
		}
		return ok(fmt.Sprintf("You see nothing special to the %s.", cmd.Direction))
	}
	return ok(strings.Join(e.describeRoom(e.State.Room, true), "\n"))
}

func handleExamine(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]

	var lines []string
	if def.Description != "" {
		lines = append(lines, def.Description)
	} else {
		lines = append(lines, fmt.Sprintf("You see nothing special about %s.", e.name(objID)))
	}

	if def.Has(types.CapOpenable) {
		if state.BoolProp(e.State, e.World, objID, "is_open") {
			lines = append(lines, fmt.Sprintf("%s is open.", capitalize(e.name(objID))))
		} else {
			lines = append(lines, fmt.Sprintf("%s is closed.", capitalize(e.name(objID))))
		}
	}
	if def.Kind == types.KindContainer && e.canSeeInside(objID) {
		if inside := state.Contents(e.State, e.World, objID); len(inside) > 0 {
			lines = append(lines, fmt.Sprintf("%s contains %s.", capitalize(e.name(objID)), e.listContents(inside)))
		}
	}
	if def.Has(types.CapReadable) && def.Text != "" {
		lines = append(lines, "There is writing on it. You could READ it.")
	}

	lines = append(lines, e.fireScripted(objID, "examine", "")...)
	return ok(strings.Join(lines, "\n"), objID)
}

func handleRead(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if !def.Has(types.CapReadable) || def.Text == "" {
		return capFail(fmt.Sprintf("There's nothing written on %s.", e.name(objID)))
	}
	lines := []string{def.Text}
	lines = append(lines, e.fireScripted(objID, "read", "")...)
	return ok(strings.Join(lines, "\n"), objID)
}

func handleSearch(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]

	if fx := e.fireScripted(objID, "search", ""); len(fx) > 0 {
		return okState(strings.Join(fx, "\n"), objID)
	}

	if def.Kind == types.KindContainer {
		if !e.canSeeInside(objID) {
			return conflict(fmt.Sprintf("%s is closed.", capitalize(e.name(objID))))
		}
		inside := state.Contents(e.State, e.World, objID)
		if len(inside) == 0 {
			return ok(fmt.Sprintf("%s is empty.", capitalize(e.name(objID))))
		}
		return ok(fmt.Sprintf("%s contains %s.", capitalize(e.name(objID)), e.listContents(inside)), objID)
	}

	return ok(fmt.Sprintf("You find nothing of interest in %s.", e.name(objID)))
}

func handleListen(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	if objID != "" {
		if sound := state.StringProp(e.State, e.World, objID, "sound"); sound != "" {
			return ok(sound)
		}
		return ok(fmt.Sprintf("%s makes no sound.", capitalize(e.name(objID))))
	}
	room := e.World.Rooms[e.State.Room]
	if room.Audio != "" {
		return ok(room.Audio)
	}
	return ok("You hear nothing but your own heartbeat.")
}

func handleSmell(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	if objID != "" {
		if smell := state.StringProp(e.State, e.World, objID, "smell"); smell != "" {
			return ok(smell)
		}
		return ok(fmt.Sprintf("%s smells of dust and old wood.", capitalize(e.name(objID))))
	}
	room := e.World.Rooms[e.State.Room]
	if room.Smell != "" {
		return ok(room.Smell)
	}
	return ok("The air smells of mildew and something fainter, sweeter, wrong.")
}

// canSeeInside reports whether a container's contents are visible.
func (e *Engine) canSeeInside(id string) bool {
	def := e.World.Objects[id]
	if def.Has(types.CapTransparent) {
		return true
	}
	if !def.Has(types.CapOpenable) {
		return true
	}
	return state.BoolProp(e.State, e.World, id, "is_open")
}

func (e *Engine) listContents(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, "a "+resolve.DisplayName(e.World, id))
	}
	if len(names) == 2 {
		return names[0] + " and " + names[1]
	}
	if len(names) > 2 {
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
	return names[0]
}

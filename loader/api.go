package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Room "id" { ... } — curried: Room("id") returns a function that
	// takes the definition table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// One curried constructor per object kind.
	kinds := map[string]string{
		"Item":      "item",
		"Container": "container",
		"Door":      "door",
		"Vehicle":   "vehicle",
		"Scenery":   "scenery",
		"NPC":       "npc",
		"Creature":  "creature",
	}
	for global, kind := range kinds {
		k := kind
		L.SetGlobal(global, L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				coll.objects = append(coll.objects, rawObject{id: id, kind: k, table: tbl})
				return 0
			}))
			return 1
		}))
	}
}

// effectHelper builds a Lua global that returns an effect table of the
// given type with the named string parameters filled from its arguments.
func effectHelper(L *lua.LState, effType string, params ...string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(effType))
		for i, p := range params {
			tbl.RawSetString(p, L.CheckAny(i+1))
		}
		L.Push(tbl)
		return 1
	})
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", effectHelper(L, "say", "text"))
	// SetFlag("flag", value)
	L.SetGlobal("SetFlag", effectHelper(L, "set_flag", "flag", "value"))
	// SetProp("object", "prop", value)
	L.SetGlobal("SetProp", effectHelper(L, "set_prop", "object", "prop", "value"))
	// MoveObject("object", "location")
	L.SetGlobal("MoveObject", effectHelper(L, "move_object", "object", "to"))
	// MovePlayer("room")
	L.SetGlobal("MovePlayer", effectHelper(L, "move_player", "room"))
	// Reveal("object") — brings a void-located object into the current room.
	L.SetGlobal("Reveal", effectHelper(L, "reveal", "object"))
	// Destroy("object")
	L.SetGlobal("Destroy", effectHelper(L, "destroy", "object"))
	// OpenExit("room", "direction", "target")
	L.SetGlobal("OpenExit", effectHelper(L, "open_exit", "room", "direction", "target"))
	// CloseExit("room", "direction")
	L.SetGlobal("CloseExit", effectHelper(L, "close_exit", "room", "direction"))
	// AddScore(points)
	L.SetGlobal("AddScore", effectHelper(L, "add_score", "points"))
	// AdjustSanity(amount)
	L.SetGlobal("AdjustSanity", effectHelper(L, "adjust_sanity", "amount"))
	// IncCounter("counter", amount)
	L.SetGlobal("IncCounter", effectHelper(L, "inc_counter", "counter", "amount"))
}

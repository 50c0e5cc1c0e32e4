package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/effects"
	"github.com/tmorvan/netherhall/engine/resolve"
	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

// maxCarried caps the inventory. Crates and sacks don't raise it; the manor
// rewards choosing what to hold.
const maxCarried = 7

func ok(msg string, objects ...string) types.ActionResult {
	return types.ActionResult{Success: true, Kind: types.ResultOK, Message: msg, Objects: objects}
}

func okState(msg string, objects ...string) types.ActionResult {
	r := ok(msg, objects...)
	r.StateChanged = true
	return r
}

func fail(kind types.ResultKind, msg string) types.ActionResult {
	return types.ActionResult{Kind: kind, Message: msg}
}

func capFail(msg string) types.ActionResult {
	return fail(types.ResultCapabilityMismatch, msg)
}

func conflict(msg string) types.ActionResult {
	return fail(types.ResultStateConflict, msg)
}

// fireScripted runs an object's authored effects for a verb, at most once.
// Closing, untying, or switching an object back off can re-arm the key via
// rearmScripted. The returned lines are already interpolated.
func (e *Engine) fireScripted(id, verb string, targetID string) []string {
	def, okDef := e.World.Objects[id]
	if !okDef {
		return nil
	}
	effs, okFx := def.Effects[verb]
	if !okFx || len(effs) == 0 {
		return nil
	}
	flag := "fx:" + id + ":" + verb
	if e.State.Flags[flag] {
		return nil
	}
	e.State.Flags[flag] = true
	ctx := effects.Context{Verb: verb, ObjectID: id, TargetID: targetID}
	return effects.Apply(e.State, e.World, effs, ctx)
}

// rearmScripted lets a reversible interaction fire again next time.
func (e *Engine) rearmScripted(id, verb string) {
	delete(e.State.Flags, "fx:"+id+":"+verb)
}

// requireHeld ensures the object is in the player's hands, picking it up
// implicitly when it is takeable and in reach.
func (e *Engine) requireHeld(id string) (string, bool) {
	if state.InInventory(e.State, id) {
		return "", true
	}
	def := e.World.Objects[id]
	if !def.Has(types.CapTakeable) {
		return "", false
	}
	if len(e.State.Inventory) >= maxCarried {
		return "", false
	}
	state.MoveObject(e.State, e.World, id, types.LocInventory)
	return fmt.Sprintf("(first taking %s)", e.name(id)), true
}

// carriedWith finds a carried object with the given capability, preferring
// an explicit target when one resolved.
func (e *Engine) carriedWith(c types.Capability, targetID string) string {
	if targetID != "" {
		def := e.World.Objects[targetID]
		if def.Has(c) && state.InInventory(e.State, targetID) {
			return targetID
		}
		return ""
	}
	for _, id := range e.State.Inventory {
		if e.World.Objects[id].Has(c) {
			return id
		}
	}
	return ""
}

// litFlame finds an active light source in hand or in the room.
func (e *Engine) litFlame() string {
	for _, id := range resolve.Reachable(e.State, e.World) {
		def := e.World.Objects[id]
		if def.Has(types.CapLight) && state.BoolProp(e.State, e.World, id, "is_lit") {
			return id
		}
	}
	return ""
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

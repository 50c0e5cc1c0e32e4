package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleAttack(e *Engine, cmd types.ParsedCommand, objID, targetID string) types.ActionResult {
	def := e.World.Objects[objID]
	if def.Kind != types.KindCreature && def.Kind != types.KindNPC {
		return capFail(fmt.Sprintf("Attacking %s would accomplish nothing.", e.name(objID)))
	}
	if def.Kind == types.KindNPC && !state.BoolProp(e.State, e.World, objID, "hostile") {
		state.AdjustSanity(e.State, -3)
		return conflict(fmt.Sprintf("You raise your hand against %s and stop yourself. What is this place doing to you?",
			e.name(objID)))
	}

	weapon := e.carriedWith(types.CapWeapon, targetID)
	if weapon == "" && targetID != "" {
		return capFail(fmt.Sprintf("%s is no weapon.", capitalize(e.name(targetID))))
	}
	if weapon == "" {
		state.AdjustSanity(e.State, -5)
		return conflict(fmt.Sprintf("Bare-handed against %s? Your nerve fails before your fists land.",
			e.name(objID)))
	}

	res := e.strike(objID, weapon, false)
	res.Message = joinLines(fmt.Sprintf("You swing %s at %s.", e.name(weapon), e.name(objID)), res.Message)
	return res
}

// strike applies one blow to a creature. Thrown weapons land softer than
// held ones.
func (e *Engine) strike(creatureID, weaponID string, thrown bool) types.ActionResult {
	damage := state.IntProp(e.State, e.World, weaponID, "damage")
	if damage <= 0 {
		damage = 1
	}
	if thrown && damage > 1 {
		damage--
	}

	health := state.IntProp(e.State, e.World, creatureID, "health")
	if health <= 0 {
		health = 3
	}
	health -= damage
	state.SetProp(e.State, creatureID, "health", health)

	if health <= 0 {
		var lines []string
		lines = append(lines, fmt.Sprintf("%s convulses, thins like smoke, and is gone.",
			capitalize(e.name(creatureID))))
		lines = append(lines, e.fireScripted(creatureID, "die", weaponID)...)
		if n := state.IntProp(e.State, e.World, creatureID, "kill_score"); n > 0 {
			state.AddScore(e.State, n)
		}
		state.Destroy(e.State, e.World, creatureID)
		return okState(strings.Join(lines, "\n"), creatureID, weaponID)
	}

	lines := []string{fmt.Sprintf("%s shudders under the blow but holds its shape.",
		capitalize(e.name(creatureID)))}
	if state.BoolProp(e.State, e.World, creatureID, "hostile") {
		state.AdjustSanity(e.State, -4)
		lines = append(lines, fmt.Sprintf("%s surges back at you. Cold floods your mind.",
			capitalize(e.name(creatureID))))
		if e.State.Flags["game_over"] {
			lines = append(lines, "The cold does not recede. It never recedes.")
		}
	}
	return okState(strings.Join(lines, "\n"), creatureID, weaponID)
}

package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/effects"
	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func handleTalk(e *Engine, _ types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if def.Kind != types.KindNPC {
		if def.Kind == types.KindCreature {
			return conflict(fmt.Sprintf("%s answers with a sound you will be hearing in your sleep.", capitalize(e.name(objID))))
		}
		return capFail(fmt.Sprintf("Talking to %s would mark you as far gone indeed.", e.name(objID)))
	}
	return e.speak(objID, "hello")
}

func handleAsk(e *Engine, cmd types.ParsedCommand, objID, _ string) types.ActionResult {
	def := e.World.Objects[objID]
	if def.Kind != types.KindNPC {
		return capFail(fmt.Sprintf("%s is in no position to answer questions.", capitalize(e.name(objID))))
	}
	topic := strings.TrimSpace(cmd.Target)
	if topic == "" {
		return e.awaitParameter(types.RoleTool, cmd, fmt.Sprintf("What do you want to ask %s about?", e.name(objID)))
	}
	return e.speak(objID, topic)
}

// speak plays one of an NPC's topics, honoring flag gates. Topic effects
// run every time the topic is raised; world authors gate one-shot rewards
// behind flags of their own.
func (e *Engine) speak(npcID, topic string) types.ActionResult {
	def := e.World.Objects[npcID]

	entry, found := def.Topics[topic]
	if found && entry.RequiresFlag != "" && !e.State.Flags[entry.RequiresFlag] {
		found = false
	}
	if !found {
		if fallback, okF := def.Topics["default"]; okF && topic != "hello" {
			entry, found = fallback, true
		}
	}
	if !found {
		if topic == "hello" {
			return ok(fmt.Sprintf("%s regards you in silence.", capitalize(e.name(npcID))))
		}
		return ok(fmt.Sprintf("%s has nothing to say about that.", capitalize(e.name(npcID))))
	}

	lines := []string{entry.Text}
	if len(entry.Effects) > 0 {
		ctx := effects.Context{Verb: "ask", ObjectID: npcID}
		lines = append(lines, effects.Apply(e.State, e.World, entry.Effects, ctx)...)
		return okState(strings.Join(lines, "\n"), npcID)
	}
	return ok(strings.Join(lines, "\n"), npcID)
}

func handlePray(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	state.AdjustSanity(e.State, 2)
	return ok("You whisper a prayer. Nothing answers, but the act itself steadies you.")
}

func handleSing(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	return ok("You sing a few bars. The house seems to lean in and listen. You stop.")
}

func handleYell(e *Engine, _ types.ParsedCommand, _, _ string) types.ActionResult {
	return ok("Your shout rolls down the corridors and comes back wrong, in a voice not quite yours.")
}

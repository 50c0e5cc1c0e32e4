// Package engine executes parsed commands against the world model and the
// per-session game state: a verb router, one handler family per functional
// area, and the disambiguation state machine that carries questions across
// turns. One call chain per command, no internal concurrency; the engine
// shares the immutable World across sessions and owns nothing but the
// GameState it was given.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tmorvan/netherhall/engine/parser"
	"github.com/tmorvan/netherhall/engine/resolve"
	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

// SaveDevice is the external persistence collaborator for the SAVE and
// RESTORE verbs. Implementations live outside the core (files, Redis).
type SaveDevice interface {
	Store(name string, blob []byte) error
	Fetch(name string) ([]byte, error)
}

// Engine binds a world, one session's state, and the verb registry.
type Engine struct {
	World  *state.World
	State  *types.GameState
	Vocab  *parser.Vocab
	Device SaveDevice // optional; SAVE/RESTORE report failure when nil

	verbs         map[string]verbSpec
	quitRequested bool
}

// New creates an engine with a fresh session positioned at the start room.
func New(w *state.World) *Engine {
	e := &Engine{
		World: w,
		State: state.New(w),
		Vocab: BuildVocab(w),
		verbs: registry(),
	}
	e.State.Visited[w.Info.Start] = true
	return e
}

// HandleInput is the single external entry point: parse, route, handle.
// All per-command errors are folded into the ActionResult; malformed input
// never terminates the session.
func (e *Engine) HandleInput(raw string) types.ActionResult {
	if e.State.Flags["game_over"] {
		// Only the session verbs still work once the tale is over.
		if cmd, err := parser.Parse(raw, e.Vocab); err == nil {
			switch cmd.Verb {
			case "restart", "restore", "quit", "score":
				return e.Execute(cmd)
			}
		}
		return types.ActionResult{
			Kind:    types.ResultStateConflict,
			Message: "Your tale has ended. RESTART to begin again, or RESTORE a saved game.",
		}
	}

	if e.State.Pending != nil {
		if res, handled := e.resumePending(raw); handled {
			return e.finish(res)
		}
		// Pending state was cancelled by a fresh command; fall through.
	}

	cmd, err := parser.Parse(raw, e.Vocab)
	if err != nil {
		return types.ActionResult{
			Kind:    types.ResultNotUnderstood,
			Message: err.Error(),
		}
	}

	return e.finish(e.Execute(cmd))
}

// Execute routes a parsed command to its handler. Exposed separately from
// HandleInput so tests and scripted front ends can drive pre-parsed commands.
func (e *Engine) Execute(cmd types.ParsedCommand) types.ActionResult {
	spec, ok := e.verbs[cmd.Verb]
	if !ok {
		if parser.Known(cmd.Verb) {
			return types.ActionResult{
				Kind:    types.ResultNotYetAvailable,
				Message: fmt.Sprintf("The word %q is recognized, but that action isn't available yet.", cmd.Verb),
			}
		}
		return types.ActionResult{
			Kind:    types.ResultNotUnderstood,
			Message: fmt.Sprintf("I don't know the word %q.", cmd.Verb),
		}
	}
	if spec.handler == nil {
		return types.ActionResult{
			Kind:    types.ResultNotYetAvailable,
			Message: fmt.Sprintf("The word %q is recognized, but that action isn't available yet.", cmd.Verb),
		}
	}

	// Metadata contract: required roles are present before the handler runs.
	if spec.needsDirection && cmd.Direction == "" {
		return e.awaitParameter(types.RoleDirection, cmd, "Which direction?")
	}
	if spec.needsObject && cmd.Object == "" && len(cmd.Modifiers) == 0 {
		return e.awaitParameter(types.RoleObject, cmd, spec.objectPrompt)
	}
	if spec.needsTarget && cmd.Target == "" {
		return e.awaitParameter(types.RoleTool, cmd, spec.targetPrompt)
	}

	var objID, targetID string
	if !spec.ignoreObject {
		if cmd.Object != "" || len(cmd.Modifiers) > 0 {
			id, res, ok := e.resolveRef(cmd, cmd.Object, cmd.Modifiers)
			if !ok {
				return res
			}
			objID = id
		}
		if cmd.Target != "" && !spec.rawTarget {
			id, res, ok := e.resolveRef(cmd, cmd.Target, nil)
			if !ok {
				return res
			}
			targetID = id
		}
	}

	return spec.handler(e, cmd, objID, targetID)
}

// resolveRef resolves one object phrase, converting resolution errors into
// results and arming the disambiguation machine on ambiguity.
func (e *Engine) resolveRef(cmd types.ParsedCommand, phrase string, mods []string) (string, types.ActionResult, bool) {
	id, err := resolve.Object(e.State, e.World, phrase, mods)
	if err == nil {
		return id, types.ActionResult{}, true
	}
	if amb, ok := err.(*resolve.AmbiguityError); ok {
		e.State.Pending = &types.Pending{
			Kind:       types.PendingDisambiguation,
			Candidates: amb.Candidates,
			Command:    cmd,
		}
		return "", types.ActionResult{
			Kind:    types.ResultAmbiguousReference,
			Message: fmt.Sprintf("Which %s do you mean, %s?", amb.Phrase, listQualified(e.World, amb.Candidates)),
		}, false
	}
	return "", types.ActionResult{
		Kind:    types.ResultObjectNotPresent,
		Message: err.Error(),
	}, false
}

// finish applies end-of-turn bookkeeping: move counting, lamp fuel, and the
// toll of lingering in the dark.
func (e *Engine) finish(res types.ActionResult) types.ActionResult {
	if res.Success {
		e.State.Moves++
	}

	if lines := e.tickLamp(); len(lines) > 0 {
		res.Message = joinLines(res.Message, lines...)
	}

	if res.Success && e.inDarkness() {
		state.AdjustSanity(e.State, -2)
		res.Message = joinLines(res.Message, "The darkness presses in around you. Your thoughts grow ragged.")
		if e.State.Flags["game_over"] {
			res.Message = joinLines(res.Message, "Something in the dark finally finds you. Your mind gives way.")
		}
	}

	return res
}

// tickLamp burns fuel while any carried light is lit, extinguishing every
// lit light when the reserve runs dry.
func (e *Engine) tickLamp() []string {
	var lit []string
	for _, id := range e.State.Inventory {
		def, ok := e.World.Objects[id]
		if ok && def.Has(types.CapLight) && state.BoolProp(e.State, e.World, id, "is_lit") {
			lit = append(lit, id)
		}
	}
	if len(lit) == 0 {
		return nil
	}
	if e.State.LampFuel > 0 {
		e.State.LampFuel--
		if e.State.LampFuel == 20 {
			return []string{"Your light flickers ominously. It won't last much longer."}
		}
	}
	if e.State.LampFuel == 0 {
		var out []string
		for _, id := range lit {
			state.SetProp(e.State, id, "is_lit", false)
			out = append(out, fmt.Sprintf("The %s gutters and goes out.", resolve.DisplayName(e.World, id)))
		}
		return out
	}
	return nil
}

// inDarkness reports whether the player is in a dark room with no lit
// light source in reach.
func (e *Engine) inDarkness() bool {
	room, ok := e.World.Rooms[e.State.Room]
	if !ok || !room.Dark {
		return false
	}
	for _, id := range resolve.Reachable(e.State, e.World) {
		def, ok := e.World.Objects[id]
		if ok && def.Has(types.CapLight) && state.BoolProp(e.State, e.World, id, "is_lit") {
			return false
		}
	}
	return true
}

// Intro returns the opening text: game banner, intro, and the start room.
func (e *Engine) Intro() string {
	var lines []string
	info := e.World.Info
	lines = append(lines, fmt.Sprintf("%s v%s by %s", info.Title, info.Version, info.Author))
	if info.Intro != "" {
		lines = append(lines, "", info.Intro)
	}
	lines = append(lines, "")
	lines = append(lines, e.describeRoom(e.State.Room, true)...)
	return strings.Join(lines, "\n")
}

// describeRoom renders a room per the session's verbosity setting. full
// forces the long description (LOOK, first visit).
func (e *Engine) describeRoom(roomID string, full bool) []string {
	room, ok := e.World.Rooms[roomID]
	if !ok {
		return []string{"You are somewhere unknown."}
	}

	if e.roomIsDark(roomID) {
		return []string{"It is pitch black. You can't see a thing — and you are not certain you are alone."}
	}

	var out []string
	out = append(out, room.Title)

	showLong := full
	switch e.State.Verbosity {
	case types.Verbose:
		showLong = true
	case types.Brief:
		showLong = showLong || !e.State.Visited[roomID]
	case types.Superbrief:
		// Title only unless explicitly asked to look.
	}
	if showLong {
		desc := room.Description
		if room.Themed != "" && e.State.Flags["nightfall"] {
			desc = room.Themed
		}
		out = append(out, desc)
	}

	if names := e.visibleObjectNames(roomID); len(names) > 0 {
		out = append(out, "You see: "+strings.Join(names, ", ")+".")
	}

	exits := state.RoomExits(e.State, e.World, roomID)
	if len(exits) > 0 {
		dirs := make([]string, 0, len(exits))
		for dir := range exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		out = append(out, "Exits: "+strings.Join(dirs, ", ")+".")
	}

	return out
}

// visibleObjectNames lists non-scenery objects in a room, deterministic order.
func (e *Engine) visibleObjectNames(roomID string) []string {
	var names []string
	for _, id := range state.ObjectsIn(e.State, e.World, roomID) {
		def := e.World.Objects[id]
		if def.Kind == types.KindScenery || def.Kind == types.KindDoor {
			continue
		}
		names = append(names, resolve.QualifiedName(e.World, id))
	}
	return names
}

// roomIsDark is like inDarkness but for an arbitrary room.
func (e *Engine) roomIsDark(roomID string) bool {
	room, ok := e.World.Rooms[roomID]
	if !ok || !room.Dark {
		return false
	}
	if roomID != e.State.Room {
		return true
	}
	return e.inDarkness()
}

// name returns "the <display name>" for narrative messages.
func (e *Engine) name(id string) string {
	return "the " + resolve.DisplayName(e.World, id)
}

func listQualified(w *state.World, ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, "the "+resolve.QualifiedName(w, id))
	}
	if len(names) == 2 {
		return names[0] + " or " + names[1]
	}
	return strings.Join(names, ", ")
}

func joinLines(msg string, extra ...string) string {
	parts := []string{}
	if msg != "" {
		parts = append(parts, msg)
	}
	for _, x := range extra {
		if x != "" {
			parts = append(parts, x)
		}
	}
	return strings.Join(parts, "\n")
}

// Package effects applies scripted world-data effects to the game state.
// Every effect type is one atomic operation; effect lists are validated at
// load time, so application cannot fail partway through a command.
package effects

import (
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

// Context carries the resolved command context for template interpolation.
type Context struct {
	Verb     string
	ObjectID string
	TargetID string
}

// Known is the closed set of effect types the loader accepts.
var Known = map[string]bool{
	"say":           true,
	"set_flag":      true,
	"set_prop":      true,
	"move_object":   true,
	"move_player":   true,
	"reveal":        true,
	"destroy":       true,
	"open_exit":     true,
	"close_exit":    true,
	"add_score":     true,
	"adjust_sanity": true,
	"inc_counter":   true,
}

// Apply runs a list of effects against the state and returns the narrative
// lines they produced.
func Apply(s *types.GameState, w *state.World, effs []types.Effect, ctx Context) []string {
	var output []string

	for _, eff := range effs {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, w, ctx))

		case "set_flag":
			flag, _ := eff.Params["flag"].(string)
			value, ok := eff.Params["value"].(bool)
			if !ok {
				value = true
			}
			s.Flags[flag] = value

		case "set_prop":
			id := resolveRef(eff.Params["object"], ctx)
			prop, _ := eff.Params["prop"].(string)
			state.SetProp(s, id, prop, eff.Params["value"])

		case "move_object":
			id := resolveRef(eff.Params["object"], ctx)
			to, _ := eff.Params["to"].(string)
			state.MoveObject(s, w, id, to)

		case "move_player":
			room, _ := eff.Params["room"].(string)
			s.Room = room
			s.Vehicle = ""

		case "reveal":
			// Bring a hidden object into the current room. Idempotent:
			// revealing an already-placed object is a no-op.
			id := resolveRef(eff.Params["object"], ctx)
			if state.Location(s, w, id) != s.Room {
				state.MoveObject(s, w, id, s.Room)
			}

		case "destroy":
			id := resolveRef(eff.Params["object"], ctx)
			state.Destroy(s, w, id)

		case "open_exit":
			room, _ := eff.Params["room"].(string)
			dir, _ := eff.Params["direction"].(string)
			target, _ := eff.Params["target"].(string)
			if room == "" {
				room = s.Room
			}
			state.SetExit(s, room, dir, target)

		case "close_exit":
			room, _ := eff.Params["room"].(string)
			dir, _ := eff.Params["direction"].(string)
			if room == "" {
				room = s.Room
			}
			state.SetExit(s, room, dir, "")

		case "add_score":
			state.AddScore(s, toInt(eff.Params["points"]))

		case "adjust_sanity":
			state.AdjustSanity(s, toInt(eff.Params["amount"]))

		case "inc_counter":
			name, _ := eff.Params["counter"].(string)
			s.Counters[name] += toInt(eff.Params["amount"])
		}
	}

	return output
}

// resolveRef handles the {object} and {target} placeholders in effect params.
func resolveRef(v any, ctx Context) string {
	s, _ := v.(string)
	s = strings.ReplaceAll(s, "{object}", ctx.ObjectID)
	s = strings.ReplaceAll(s, "{target}", ctx.TargetID)
	return s
}

// interpolate replaces template variables in narrative text.
func interpolate(text string, w *state.World, ctx Context) string {
	if !strings.Contains(text, "{") {
		return text
	}
	r := strings.NewReplacer(
		"{verb}", ctx.Verb,
		"{object}", objectName(w, ctx.ObjectID),
		"{target}", objectName(w, ctx.TargetID),
	)
	return r.Replace(text)
}

func objectName(w *state.World, id string) string {
	if def, ok := w.Objects[id]; ok && def.Name != "" {
		return def.Name
	}
	return id
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

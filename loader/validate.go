package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/tmorvan/netherhall/engine/effects"
	"github.com/tmorvan/netherhall/engine/parser"
	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled world for referential integrity. Loading
// fails on the first bad world rather than surfacing broken references at
// play time.
func validate(w *state.World) error {
	ve := &ValidationError{}

	if w.Info.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if w.Info.Start == "" {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if _, ok := w.Rooms[w.Info.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", w.Info.Start))
	}

	for roomID, room := range w.Rooms {
		for dir, target := range room.Exits {
			if target != "" {
				if _, ok := w.Rooms[target]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"room %q exit %q points to undefined room %q", roomID, dir, target))
				}
			}
		}
		if room.Props != nil {
			if buried, ok := room.Props["buried"].(string); ok && buried != "" {
				if _, ok := w.Objects[buried]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"room %q buries undefined object %q", roomID, buried))
				}
			}
		}
	}

	for objID, obj := range w.Objects {
		if obj.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("object %q has no name", objID))
		}
		validateLocation(objID, obj.Location, w, ve)
		for c := range obj.Caps {
			if !types.KnownCapabilities[c] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"object %q declares unknown capability %q", objID, c))
			}
		}
		if obj.Has(types.CapLockable) && !obj.Has(types.CapOpenable) {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"object %q is lockable but not openable", objID))
		}
		validatePropRefs(objID, obj.Props, w, ve)

		for verb, effs := range obj.Effects {
			if base := strings.SplitN(verb, ":", 2)[0]; !knownEffectVerb(base) {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"object %q has effects for unrecognized verb %q", objID, verb))
			}
			validateEffects(fmt.Sprintf("object %q verb %q", objID, verb), effs, w, ve)
		}
		for name, topic := range obj.Topics {
			validateEffects(fmt.Sprintf("object %q topic %q", objID, name), topic.Effects, w, ve)
		}
	}

	for _, warn := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateLocation(objID, loc string, w *state.World, ve *ValidationError) {
	switch {
	case loc == "", loc == types.LocInventory, loc == types.LocVoid:
		return
	case strings.HasPrefix(loc, types.LocInsidePrefix):
		inner := strings.TrimPrefix(loc, types.LocInsidePrefix)
		if _, ok := w.Objects[inner]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"object %q starts inside undefined object %q", objID, inner))
		}
	case strings.HasPrefix(loc, types.LocHeldPrefix):
		inner := strings.TrimPrefix(loc, types.LocHeldPrefix)
		if _, ok := w.Objects[inner]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"object %q starts held by undefined object %q", objID, inner))
		}
	default:
		if _, ok := w.Rooms[loc]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"object %q location %q does not match any defined room", objID, loc))
		}
	}
}

// validatePropRefs checks the props whose values name other world entities.
func validatePropRefs(objID string, props map[string]any, w *state.World, ve *ValidationError) {
	objectRefProps := []string{"key", "wants", "anchor"}
	for _, p := range objectRefProps {
		if ref, ok := props[p].(string); ok && ref != "" {
			if _, defined := w.Objects[ref]; !defined {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"object %q prop %q references undefined object %q", objID, p, ref))
			}
		}
	}
	if dest, ok := props["climb_dest"].(string); ok && dest != "" {
		if _, defined := w.Rooms[dest]; !defined {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"object %q climb_dest references undefined room %q", objID, dest))
		}
	}
}

func validateEffects(where string, effs []types.Effect, w *state.World, ve *ValidationError) {
	for _, eff := range effs {
		if !effects.Known[eff.Type] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: unknown effect type %q", where, eff.Type))
			continue
		}

		checkObject := func(param string) {
			ref, ok := eff.Params[param].(string)
			if !ok || ref == "" || isTemplate(ref) {
				return
			}
			if _, defined := w.Objects[ref]; !defined {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: effect %s references undefined object %q", where, eff.Type, ref))
			}
		}
		checkRoom := func(param string) {
			ref, ok := eff.Params[param].(string)
			if !ok || ref == "" || isTemplate(ref) {
				return
			}
			if _, defined := w.Rooms[ref]; !defined {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: effect %s references undefined room %q", where, eff.Type, ref))
			}
		}

		switch eff.Type {
		case "set_prop", "reveal", "destroy":
			checkObject("object")
		case "move_object":
			checkObject("object")
			if to, ok := eff.Params["to"].(string); ok {
				validateLocation("(effect)", to, w, ve)
			}
		case "move_player":
			checkRoom("room")
		case "open_exit":
			checkRoom("room")
			checkRoom("target")
		case "close_exit":
			checkRoom("room")
		}
	}
}

// knownEffectVerb reports whether a verb key on an effects table matches
// something the engine will ever fire.
func knownEffectVerb(verb string) bool {
	if parser.Known(verb) {
		return true
	}
	switch verb {
	case "turn_on", "turn_off", "receive", "die", "give":
		return true
	}
	return false
}

// isTemplate reports whether the string contains a placeholder the engine
// substitutes at fire time.
func isTemplate(s string) bool {
	return strings.Contains(s, "{") && strings.Contains(s, "}")
}

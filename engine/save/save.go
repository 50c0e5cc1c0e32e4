// Package save serializes a game session to a versioned JSON envelope and
// restores it with full validation. A restore either yields a complete,
// internally consistent state or an error; it never produces a partial one.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

// FormatVersion is bumped whenever the envelope layout changes shape.
const FormatVersion = 1

var (
	// ErrCorruptSave means the blob is not a well-formed snapshot.
	ErrCorruptSave = errors.New("save data is corrupt")
	// ErrIncompatibleSave means the snapshot is from a different format
	// version or a different world.
	ErrIncompatibleSave = errors.New("save data is from an incompatible version")
)

// envelope wraps the session state with enough metadata to reject saves
// from other worlds or format revisions.
type envelope struct {
	Version int             `json:"version"`
	World   string          `json:"world"`
	State   types.GameState `json:"state"`
}

// Snapshot encodes the full session state. Every field of GameState is
// serialized; Snapshot followed by Restore yields a state that plays on
// identically.
func Snapshot(s *types.GameState, w *state.World) ([]byte, error) {
	env := envelope{
		Version: FormatVersion,
		World:   w.Info.Title,
		State:   *s,
	}
	blob, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding save: %w", err)
	}
	return blob, nil
}

// Restore decodes and validates a snapshot against the world it will play
// in. The returned state is freshly allocated; the caller swaps it in only
// on success.
func Restore(blob []byte, w *state.World) (*types.GameState, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("%w: format version %d", ErrIncompatibleSave, env.Version)
	}
	if env.World != "" && env.World != w.Info.Title {
		return nil, fmt.Errorf("%w: saved from %q", ErrIncompatibleSave, env.World)
	}

	s := env.State
	normalize(&s)
	if err := validate(&s, w); err != nil {
		return nil, err
	}
	return &s, nil
}

// normalize replaces nil maps and slices so restored states behave like
// freshly created ones.
func normalize(s *types.GameState) {
	if s.Inventory == nil {
		s.Inventory = []string{}
	}
	if s.Objects == nil {
		s.Objects = map[string]types.ObjectState{}
	}
	if s.Exits == nil {
		s.Exits = map[string]map[string]string{}
	}
	if s.Flags == nil {
		s.Flags = map[string]bool{}
	}
	if s.Counters == nil {
		s.Counters = map[string]int{}
	}
	if s.Visited == nil {
		s.Visited = map[string]bool{}
	}
}

// validate cross-checks every reference in the snapshot against the world
// definitions. Any dangling reference fails the whole restore.
func validate(s *types.GameState, w *state.World) error {
	if _, ok := w.Rooms[s.Room]; !ok {
		return fmt.Errorf("%w: unknown room %q", ErrCorruptSave, s.Room)
	}
	for _, id := range s.Inventory {
		if _, ok := w.Objects[id]; !ok {
			return fmt.Errorf("%w: unknown object %q in inventory", ErrCorruptSave, id)
		}
	}
	for id, os := range s.Objects {
		if _, ok := w.Objects[id]; !ok {
			return fmt.Errorf("%w: state for unknown object %q", ErrCorruptSave, id)
		}
		if err := checkLocation(os.Location, w); err != nil {
			return fmt.Errorf("object %q: %w", id, err)
		}
	}
	for roomID, exits := range s.Exits {
		if _, ok := w.Rooms[roomID]; !ok {
			return fmt.Errorf("%w: exit overrides for unknown room %q", ErrCorruptSave, roomID)
		}
		for dir, dest := range exits {
			if dest == "" {
				continue
			}
			if _, ok := w.Rooms[dest]; !ok {
				return fmt.Errorf("%w: exit %s/%s leads to unknown room %q", ErrCorruptSave, roomID, dir, dest)
			}
		}
	}
	if s.Vehicle != "" {
		if _, ok := w.Objects[s.Vehicle]; !ok {
			return fmt.Errorf("%w: unknown vehicle %q", ErrCorruptSave, s.Vehicle)
		}
	}
	if s.Sanity < types.SanityMin || s.Sanity > types.SanityMax {
		return fmt.Errorf("%w: sanity %d out of range", ErrCorruptSave, s.Sanity)
	}
	return nil
}

func checkLocation(loc string, w *state.World) error {
	switch {
	case loc == "", loc == types.LocInventory, loc == types.LocVoid:
		return nil
	case strings.HasPrefix(loc, types.LocInsidePrefix):
		id := loc[len(types.LocInsidePrefix):]
		if _, ok := w.Objects[id]; !ok {
			return fmt.Errorf("%w: container %q not defined", ErrCorruptSave, id)
		}
	case strings.HasPrefix(loc, types.LocHeldPrefix):
		id := loc[len(types.LocHeldPrefix):]
		if _, ok := w.Objects[id]; !ok {
			return fmt.Errorf("%w: holder %q not defined", ErrCorruptSave, id)
		}
	default:
		if _, ok := w.Rooms[loc]; !ok {
			return fmt.Errorf("%w: room %q not defined", ErrCorruptSave, loc)
		}
	}
	return nil
}

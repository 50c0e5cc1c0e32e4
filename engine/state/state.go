// Package state manages the per-session game state as an overlay over the
// immutable world definitions: reads check the session first and fall back
// to the base defs, writes only ever touch the session.
package state

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tmorvan/netherhall/types"
)

// World holds the immutable game definitions produced by the loader.
// It is shared read-only across sessions and never mutated after load.
type World struct {
	Info    types.WorldInfo
	Rooms   map[string]types.RoomDef
	Objects map[string]types.ObjectDef
}

// StartingLamp is the fuel budget for light sources that burn down.
const StartingLamp = 300

// New creates a fresh session state positioned at the world's start room.
func New(w *World) *types.GameState {
	return &types.GameState{
		SessionID: uuid.NewString(),
		Room:      w.Info.Start,
		Inventory: []string{},
		Objects:   map[string]types.ObjectState{},
		Flags:     map[string]bool{},
		Counters:  map[string]int{},
		Sanity:    types.SanityMax,
		LampFuel:  StartingLamp,
		Verbosity: types.Brief,
		Visited:   map[string]bool{},
	}
}

// Prop returns an object property, checking the session overlay first and
// falling back to the base definition. Returns the value and whether it was found.
func Prop(s *types.GameState, w *World, id, key string) (any, bool) {
	if os, ok := s.Objects[id]; ok {
		if v, ok := os.Props[key]; ok {
			return v, true
		}
	}
	if def, ok := w.Objects[id]; ok {
		if v, ok := def.Props[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// BoolProp returns a boolean property, or false if unset or non-boolean.
func BoolProp(s *types.GameState, w *World, id, key string) bool {
	v, ok := Prop(s, w, id, key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IntProp returns an integer property, or 0 if unset or non-numeric.
func IntProp(s *types.GameState, w *World, id, key string) int {
	v, ok := Prop(s, w, id, key)
	if !ok {
		return 0
	}
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

// StringProp returns a string property, or "" if unset.
func StringProp(s *types.GameState, w *World, id, key string) string {
	v, ok := Prop(s, w, id, key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// SetProp writes an object property into the session overlay.
func SetProp(s *types.GameState, id, key string, value any) {
	os := s.Objects[id]
	if os.Props == nil {
		os.Props = map[string]any{}
	}
	os.Props[key] = value
	s.Objects[id] = os
}

// Location returns the effective location of an object.
func Location(s *types.GameState, w *World, id string) string {
	if os, ok := s.Objects[id]; ok && os.Location != "" {
		return os.Location
	}
	if def, ok := w.Objects[id]; ok {
		return def.Location
	}
	return ""
}

// MoveObject relocates an object. The location field is the single source
// of truth; inventory membership is kept in step in the same call, so a
// move can never duplicate or orphan an object.
func MoveObject(s *types.GameState, w *World, id, to string) {
	from := Location(s, w, id)

	os := s.Objects[id]
	os.Location = to
	s.Objects[id] = os

	if from == types.LocInventory && to != types.LocInventory {
		s.Inventory = removeID(s.Inventory, id)
	}
	if to == types.LocInventory && from != types.LocInventory {
		if !containsID(s.Inventory, id) {
			s.Inventory = append(s.Inventory, id)
		}
	}
}

// Destroy moves an object to the unreachable sink. Objects are never
// deallocated, only exiled.
func Destroy(s *types.GameState, w *World, id string) {
	MoveObject(s, w, id, types.LocVoid)
}

// ObjectsIn returns the IDs of objects whose effective location matches loc,
// sorted for deterministic output.
func ObjectsIn(s *types.GameState, w *World, loc string) []string {
	var out []string
	for id := range w.Objects {
		if Location(s, w, id) == loc {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Contents returns the IDs of objects inside a container.
func Contents(s *types.GameState, w *World, containerID string) []string {
	return ObjectsIn(s, w, types.LocInsidePrefix+containerID)
}

// Held returns the IDs of objects an NPC carries.
func Held(s *types.GameState, w *World, npcID string) []string {
	return ObjectsIn(s, w, types.LocHeldPrefix+npcID)
}

// InInventory reports whether the player carries the object.
func InInventory(s *types.GameState, id string) bool {
	return containsID(s.Inventory, id)
}

// RoomExits returns the effective exits for a room: base topology with the
// session's open/close overrides layered on top. An override with an empty
// target closes the exit.
func RoomExits(s *types.GameState, w *World, roomID string) map[string]string {
	room, ok := w.Rooms[roomID]
	if !ok {
		return nil
	}
	exits := make(map[string]string, len(room.Exits))
	for dir, target := range room.Exits {
		exits[dir] = target
	}
	for dir, target := range s.Exits[roomID] {
		if target == "" {
			delete(exits, dir)
		} else {
			exits[dir] = target
		}
	}
	return exits
}

// SetExit records a session exit override. Empty target closes the exit.
func SetExit(s *types.GameState, roomID, dir, target string) {
	if s.Exits == nil {
		s.Exits = map[string]map[string]string{}
	}
	if s.Exits[roomID] == nil {
		s.Exits[roomID] = map[string]string{}
	}
	s.Exits[roomID][dir] = target
}

// AdjustSanity applies a delta to sanity, clamped to [SanityMin, SanityMax].
// Reaching the floor sets the game_over flag.
func AdjustSanity(s *types.GameState, delta int) {
	s.Sanity += delta
	if s.Sanity < types.SanityMin {
		s.Sanity = types.SanityMin
	}
	if s.Sanity > types.SanityMax {
		s.Sanity = types.SanityMax
	}
	if s.Sanity == types.SanityMin {
		s.Flags["game_over"] = true
	}
}

// AddScore increments the session score.
func AddScore(s *types.GameState, points int) {
	s.Score += points
}

// MarkVisited records a first visit and returns true exactly once per room.
func MarkVisited(s *types.GameState, roomID string) bool {
	if s.Visited[roomID] {
		return false
	}
	s.Visited[roomID] = true
	return true
}

// InVehicle reports whether the player is aboard a vehicle.
func InVehicle(s *types.GameState) bool {
	return s.Vehicle != ""
}

// InsideWhat returns the container ID a location refers to, or "".
func InsideWhat(loc string) string {
	if strings.HasPrefix(loc, types.LocInsidePrefix) {
		return strings.TrimPrefix(loc, types.LocInsidePrefix)
	}
	return ""
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

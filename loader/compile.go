// Package loader loads Lua world content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
	lua "github.com/yuin/gopher-lua"
)

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// rawObject holds an object table before compilation.
type rawObject struct {
	id    string
	kind  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Sequential integer keys from 1 make an array.
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// tableToStrings converts a Lua array table to a []string.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableToAnyMap converts a Lua table to a map[string]any.
func tableToAnyMap(tbl *lua.LTable) map[string]any {
	if tbl == nil {
		return nil
	}
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}

// compile converts all collected Lua data into a World.
func compile(coll *collector) (*state.World, error) {
	w := &state.World{
		Rooms:   map[string]types.RoomDef{},
		Objects: map[string]types.ObjectDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	w.Info = compileInfo(coll.game)

	for _, raw := range coll.rooms {
		if _, dup := w.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("duplicate room id %q", raw.id)
		}
		w.Rooms[raw.id] = compileRoom(raw)
	}

	for _, raw := range coll.objects {
		if _, dup := w.Objects[raw.id]; dup {
			return nil, fmt.Errorf("duplicate object id %q", raw.id)
		}
		obj, err := compileObject(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling object %s: %w", raw.id, err)
		}
		w.Objects[raw.id] = obj
	}

	return w, nil
}

func compileInfo(tbl *lua.LTable) types.WorldInfo {
	return types.WorldInfo{
		Title:    getString(tbl, "title"),
		Author:   getString(tbl, "author"),
		Version:  getString(tbl, "version"),
		Start:    getString(tbl, "start"),
		Intro:    getString(tbl, "intro"),
		MaxScore: getInt(tbl, "max_score"),
	}
}

func compileRoom(raw rawRoom) types.RoomDef {
	tbl := raw.table
	return types.RoomDef{
		ID:          raw.id,
		Title:       getString(tbl, "title"),
		Description: getString(tbl, "description"),
		Themed:      getString(tbl, "themed"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
		Audio:       getString(tbl, "audio"),
		Smell:       getString(tbl, "smell"),
		Dark:        getBool(tbl, "dark", false),
		Water:       getBool(tbl, "water", false),
		Diggable:    getBool(tbl, "diggable", false),
		VisitScore:  getInt(tbl, "visit_score"),
		Props:       tableToAnyMap(getTable(tbl, "props")),
	}
}

func compileObject(raw rawObject) (types.ObjectDef, error) {
	tbl := raw.table
	obj := types.ObjectDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Synonyms:    tableToStrings(getTable(tbl, "synonyms")),
		Adjectives:  tableToStrings(getTable(tbl, "adjectives")),
		Kind:        types.ObjectKind(raw.kind),
		Description: getString(tbl, "description"),
		Text:        getString(tbl, "text"),
		Location:    getString(tbl, "location"),
		Props:       tableToAnyMap(getTable(tbl, "props")),
	}

	obj.Caps = map[types.Capability]bool{}
	for _, c := range tableToStrings(getTable(tbl, "caps")) {
		obj.Caps[types.Capability(c)] = true
	}

	// Plain items are takeable unless the author says otherwise.
	if obj.Kind == types.KindItem && !getBool(tbl, "fixed", false) {
		obj.Caps[types.CapTakeable] = true
	}

	if topicsTbl := getTable(tbl, "topics"); topicsTbl != nil {
		obj.Topics = compileTopics(topicsTbl)
	}
	if effectsTbl := getTable(tbl, "effects"); effectsTbl != nil {
		obj.Effects = compileEffectMap(effectsTbl)
	}

	return obj, nil
}

func compileTopics(tbl *lua.LTable) map[string]types.TopicDef {
	topics := map[string]types.TopicDef{}
	tbl.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		topicTbl, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		topic := types.TopicDef{
			Text:         getString(topicTbl, "text"),
			RequiresFlag: getString(topicTbl, "requires_flag"),
		}
		if effTbl := getTable(topicTbl, "effects"); effTbl != nil {
			topic.Effects = compileEffects(effTbl)
		}
		topics[string(key)] = topic
	})
	return topics
}

// compileEffectMap reads the per-verb effects table: verb name keys, each
// holding a list of effect tables.
func compileEffectMap(tbl *lua.LTable) map[string][]types.Effect {
	m := map[string][]types.Effect{}
	tbl.ForEach(func(k, v lua.LValue) {
		verb, ok := k.(lua.LString)
		if !ok {
			return
		}
		if effTbl, ok := v.(*lua.LTable); ok {
			m[string(verb)] = compileEffects(effTbl)
		}
	})
	return m
}

func compileEffects(tbl *lua.LTable) []types.Effect {
	var effs []types.Effect
	for i := 1; i <= tbl.MaxN(); i++ {
		if effTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			effs = append(effs, compileEffect(effTbl))
		}
	}
	return effs
}

func compileEffect(tbl *lua.LTable) types.Effect {
	effType := getString(tbl, "type")
	params := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			key := string(ks)
			if key != "type" {
				params[key] = toGoValue(v)
			}
		}
	})
	return types.Effect{
		Type:   effType,
		Params: params,
	}
}

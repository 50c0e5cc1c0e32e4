// Package types defines the shared data structures for the Netherhall engine.
// This package contains only type definitions and trivial accessors — no game logic.
package types

// ObjectKind tags an object with its broad category.
type ObjectKind string

const (
	KindItem      ObjectKind = "item"
	KindContainer ObjectKind = "container"
	KindDoor      ObjectKind = "door"
	KindVehicle   ObjectKind = "vehicle"
	KindScenery   ObjectKind = "scenery"
	KindNPC       ObjectKind = "npc"
	KindCreature  ObjectKind = "creature"
)

// Capability declares which verbs may legally apply to an object.
type Capability string

const (
	CapTakeable    Capability = "takeable"
	CapOpenable    Capability = "openable"
	CapLockable    Capability = "lockable"
	CapClimbable   Capability = "climbable"
	CapTurnable    Capability = "turnable"
	CapMoveable    Capability = "moveable"
	CapTieable     Capability = "tieable"
	CapFlammable   Capability = "flammable"
	CapCuttable    Capability = "cuttable"
	CapDigging     Capability = "digging" // tool usable for DIG
	CapSharp       Capability = "sharp"   // tool usable for CUT
	CapInflatable  Capability = "inflatable"
	CapReadable    Capability = "readable"
	CapFillable    Capability = "fillable"
	CapBoardable   Capability = "boardable"
	CapLight       Capability = "light" // light source
	CapWeapon      Capability = "weapon"
	CapTransparent Capability = "transparent"
	CapEdible      Capability = "edible"
	CapDrinkable   Capability = "drinkable"
)

// KnownCapabilities is the closed set accepted by the world loader.
var KnownCapabilities = map[Capability]bool{
	CapTakeable: true, CapOpenable: true, CapLockable: true,
	CapClimbable: true, CapTurnable: true, CapMoveable: true,
	CapTieable: true, CapFlammable: true, CapCuttable: true,
	CapDigging: true, CapSharp: true, CapInflatable: true,
	CapReadable: true, CapFillable: true, CapBoardable: true,
	CapLight: true, CapWeapon: true, CapTransparent: true,
	CapEdible: true, CapDrinkable: true,
}

// Object location sentinels. A location is a room ID, LocInventory,
// LocVoid, or a prefixed reference (inside a container, held by an NPC).
const (
	LocInventory    = "inventory"
	LocVoid         = "void" // unreachable sink for destroyed objects
	LocInsidePrefix = "inside:"
	LocHeldPrefix   = "held:"
)

// ObjectDef is the immutable definition of a world object.
type ObjectDef struct {
	ID          string
	Name        string
	Synonyms    []string // alternate nouns, e.g. "lantern" for "lamp"
	Adjectives  []string // distinguishing modifiers, e.g. "rusty"
	Kind        ObjectKind
	Description string
	Text        string // contents shown by READ
	Caps        map[Capability]bool
	Location    string         // starting location
	Props       map[string]any // initial state bag (is_open, health, liquid, ...)
	Topics      map[string]TopicDef
	Effects     map[string][]Effect // verb → scripted effects
}

// Has reports whether the definition declares a capability.
func (o ObjectDef) Has(c Capability) bool {
	return o.Caps[c]
}

// TopicDef is one dialogue topic on an NPC.
type TopicDef struct {
	Text         string
	RequiresFlag string // topic hidden until this flag is set
	Effects      []Effect
}

// RoomDef is the immutable definition of a room. Topology never changes;
// contained objects and per-room flags live in the session overlay.
type RoomDef struct {
	ID          string
	Title       string
	Description string
	Themed      string            // themed variant, shown once the manor turns
	Exits       map[string]string // direction → room ID
	Audio       string            // LISTEN response
	Smell       string            // SMELL response
	Dark        bool
	Water       bool
	Diggable    bool
	VisitScore  int            // first-visit bonus
	Props       map[string]any // extra fields tolerated from world data
}

// WorldInfo holds game metadata from world data.
type WorldInfo struct {
	Title    string
	Author   string
	Version  string
	Start    string
	Intro    string
	MaxScore int
}

// Effect is a single atomic state mutation instruction attached to world
// data (scripted verb effects, dialogue effects).
type Effect struct {
	Type   string
	Params map[string]any
}

// ParsedCommand is the structured form of one player command.
// Verb is always present when parsing succeeds; everything else is optional.
// Immutable once constructed.
type ParsedCommand struct {
	Verb        string
	Object      string   // primary object phrase, canonicalized
	Modifiers   []string // adjectives attached to the object phrase
	Preposition string
	Target      string // secondary object phrase
	Direction   string
	Raw         string
}

// ResultKind classifies an ActionResult per the engine's error taxonomy.
type ResultKind string

const (
	ResultOK                 ResultKind = "ok"
	ResultNotUnderstood      ResultKind = "not_understood"
	ResultNotYetAvailable    ResultKind = "not_yet_available"
	ResultMissingParameter   ResultKind = "missing_parameter"
	ResultAmbiguousReference ResultKind = "ambiguous_reference"
	ResultObjectNotPresent   ResultKind = "object_not_present"
	ResultCapabilityMismatch ResultKind = "capability_mismatch"
	ResultStateConflict      ResultKind = "state_conflict"
	ResultPersistenceFailure ResultKind = "persistence_failure"
)

// ActionResult is the output of one executed command.
type ActionResult struct {
	Success      bool
	Kind         ResultKind
	Message      string
	RoomChanged  bool
	StateChanged bool
	Objects      []string // object IDs affected
}

// Role names used by MissingParameter results and AwaitingParameter state.
const (
	RoleObject    = "object"
	RoleTool      = "tool"
	RoleDirection = "direction"
)

// PendingKind distinguishes the two transient input states.
type PendingKind string

const (
	PendingDisambiguation PendingKind = "disambiguation"
	PendingParameter      PendingKind = "parameter"
)

// Pending holds a question the engine asked the player. The next raw input
// is interpreted against it instead of as a fresh command, unless it parses
// as a new full command.
type Pending struct {
	Kind       PendingKind   `json:"kind"`
	Candidates []string      `json:"candidates,omitempty"` // object IDs, disambiguation only
	Role       string        `json:"role,omitempty"`       // parameter only
	Command    ParsedCommand `json:"command"`
}

// Verbosity controls repeat-visit room description detail.
type Verbosity string

const (
	Verbose    Verbosity = "verbose"
	Brief      Verbosity = "brief"
	Superbrief Verbosity = "superbrief"
)

// ObjectState holds the per-session overrides for one object.
type ObjectState struct {
	Location string         `json:"location,omitempty"` // overrides base location if non-empty
	Props    map[string]any `json:"props,omitempty"`
}

// Sanity bounds, inclusive.
const (
	SanityMin = 0
	SanityMax = 100
)

// GameState is the complete mutable per-session state. One per active game,
// mutated only by handlers, serialized wholesale for save/restore.
type GameState struct {
	SessionID string                       `json:"session_id"`
	Room      string                       `json:"room"`
	Inventory []string                     `json:"inventory"`
	Objects   map[string]ObjectState       `json:"objects"`
	Exits     map[string]map[string]string `json:"exits,omitempty"` // room → direction → target overrides ("" = closed)
	Flags     map[string]bool              `json:"flags"`
	Counters  map[string]int               `json:"counters"`
	Sanity    int                          `json:"sanity"`
	Score     int                          `json:"score"`
	Moves     int                          `json:"moves"`
	LampFuel  int                          `json:"lamp_fuel"`
	Verbosity Verbosity                    `json:"verbosity"`
	Visited   map[string]bool              `json:"visited"`
	Vehicle   string                       `json:"vehicle,omitempty"`
	Pending   *Pending                     `json:"pending,omitempty"`
}

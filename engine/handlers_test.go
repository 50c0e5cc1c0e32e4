package engine

import (
	"strings"
	"testing"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

func TestMailboxScenario(t *testing.T) {
	e := newTestEngine(t)

	// The leaflet is sealed away until the mailbox opens.
	res := e.HandleInput("take leaflet")
	if res.Kind != types.ResultObjectNotPresent {
		t.Fatalf("leaflet reachable through a closed mailbox: %+v", res)
	}

	res = e.HandleInput("open mailbox")
	if !res.Success {
		t.Fatalf("open mailbox failed: %+v", res)
	}
	if !strings.Contains(res.Message, "leaflet") {
		t.Errorf("opening did not reveal contents: %q", res.Message)
	}

	res = e.HandleInput("take leaflet")
	if !res.Success {
		t.Fatalf("take leaflet failed: %+v", res)
	}

	res = e.HandleInput("read leaflet")
	if !strings.Contains(res.Message, "DO NOT STAY PAST DARK") {
		t.Errorf("read = %q", res.Message)
	}
}

func TestOpenClose_Idempotence(t *testing.T) {
	e := newTestEngine(t)

	e.HandleInput("open mailbox")
	res := e.HandleInput("open mailbox")
	if res.Success || res.Kind != types.ResultStateConflict {
		t.Errorf("second open = %+v, want state_conflict", res)
	}
	if res.Message != "It's already open." {
		t.Errorf("message = %q", res.Message)
	}

	e.HandleInput("close mailbox")
	res = e.HandleInput("close mailbox")
	if res.Success || res.Kind != types.ResultStateConflict {
		t.Errorf("second close = %+v, want state_conflict", res)
	}
}

func TestTake_Refusals(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("take crank")
	if res.Kind != types.ResultCapabilityMismatch {
		t.Errorf("taking scenery = %+v, want capability_mismatch", res)
	}

	res = e.HandleInput("take butler")
	if res.Kind != types.ResultCapabilityMismatch {
		t.Errorf("taking an NPC = %+v, want capability_mismatch", res)
	}

	e.HandleInput("take lamp")
	res = e.HandleInput("take lamp")
	if res.Kind != types.ResultStateConflict {
		t.Errorf("taking a carried object = %+v, want state_conflict", res)
	}
}

func TestTake_CarryLimit(t *testing.T) {
	e := newTestEngine(t)
	// Pad the hands full; only the count matters to the limit.
	e.State.Inventory = []string{"i1", "i2", "i3", "i4", "i5", "i6", "i7"}

	res := e.HandleInput("take lamp")
	if res.Success || res.Kind != types.ResultStateConflict {
		t.Errorf("result = %+v, want state_conflict", res)
	}
	if !strings.Contains(res.Message, "hands are full") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestDrop(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("drop lamp")
	if res.Success {
		t.Errorf("dropped something not carried: %+v", res)
	}

	e.HandleInput("take lamp")
	res = e.HandleInput("drop lamp")
	if !res.Success {
		t.Fatalf("drop failed: %+v", res)
	}
	if got := state.Location(e.State, e.World, "lamp"); got != "hall" {
		t.Errorf("lamp at %q, want hall", got)
	}
}

func TestPut(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("take key")

	res := e.HandleInput("put key in mailbox")
	if res.Success || res.Kind != types.ResultStateConflict {
		t.Errorf("put into closed container = %+v, want state_conflict", res)
	}

	e.HandleInput("open mailbox")
	res = e.HandleInput("put key in mailbox")
	if !res.Success {
		t.Fatalf("put failed: %+v", res)
	}
	if got := state.Location(e.State, e.World, "key"); got != types.LocInsidePrefix+"mailbox" {
		t.Errorf("key at %q", got)
	}
}

func TestPut_ImplicitTake(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("open mailbox")

	res := e.HandleInput("put key in mailbox")
	if !res.Success {
		t.Fatalf("put failed: %+v", res)
	}
	if !strings.Contains(res.Message, "first taking") {
		t.Errorf("no implicit-take notice: %q", res.Message)
	}
}

func TestLockedChest(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("open chest")
	if res.Success || !strings.Contains(res.Message, "locked") {
		t.Fatalf("open locked chest = %+v", res)
	}

	// The wrong key does not fit.
	e.HandleInput("take lamp")
	res = e.HandleInput("unlock chest with lamp")
	if res.Success || !strings.Contains(res.Message, "doesn't fit") {
		t.Errorf("wrong key = %+v", res)
	}

	e.HandleInput("take key")
	res = e.HandleInput("unlock chest with key")
	if !res.Success {
		t.Fatalf("unlock failed: %+v", res)
	}
	res = e.HandleInput("open chest")
	if !res.Success {
		t.Errorf("open after unlock failed: %+v", res)
	}

	// Locking demands a closed lid.
	res = e.HandleInput("lock chest with key")
	if res.Success || !strings.Contains(res.Message, "close it first") {
		t.Errorf("lock while open = %+v", res)
	}
	e.HandleInput("close chest")
	res = e.HandleInput("lock chest with key")
	if !res.Success {
		t.Errorf("lock failed: %+v", res)
	}
}

func TestTurn_ScriptedEffectFiresOnce(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("turn crank")
	if !res.Success || !strings.Contains(res.Message, "Chains rattle") {
		t.Fatalf("first turn = %+v", res)
	}
	if !e.State.Flags["cranked"] {
		t.Error("flag not set by scripted effect")
	}

	res = e.HandleInput("turn crank")
	if strings.Contains(res.Message, "Chains rattle") {
		t.Errorf("scripted effect fired twice: %q", res.Message)
	}
	if !strings.Contains(res.Message, "Nothing else happens") {
		t.Errorf("second turn = %q", res.Message)
	}
}

func TestTalkAndAsk(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("talk to butler")
	if !strings.Contains(res.Message, "Good evening") {
		t.Errorf("hello topic = %q", res.Message)
	}

	res = e.HandleInput("ask butler about cellar")
	if !strings.Contains(res.Message, "would not go down") {
		t.Errorf("cellar topic = %q", res.Message)
	}

	// Unknown topics fall back to the default line.
	res = e.HandleInput("ask butler about weather")
	if !strings.Contains(res.Message, "pretends not to hear") {
		t.Errorf("default topic = %q", res.Message)
	}
}

func TestAsk_FlagGatedTopic(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("ask butler about master")
	if !strings.Contains(res.Message, "pretends not to hear") {
		t.Errorf("gated topic leaked: %q", res.Message)
	}

	e.HandleInput("turn crank")
	res = e.HandleInput("ask butler about master")
	if !strings.Contains(res.Message, "indisposed") {
		t.Errorf("unlocked topic = %q", res.Message)
	}
}

func TestAsk_PromptsForTopic(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("ask butler")
	if res.Kind != types.ResultMissingParameter {
		t.Fatalf("result = %+v, want missing_parameter", res)
	}
	if !strings.Contains(res.Message, "ask the butler about") {
		t.Errorf("prompt = %q", res.Message)
	}

	res = e.HandleInput("cellar")
	if !strings.Contains(res.Message, "would not go down") {
		t.Errorf("reply answer = %q", res.Message)
	}
}

func TestGive(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("take key")

	res := e.HandleInput("give key to butler")
	if !res.Success {
		t.Fatalf("give failed: %+v", res)
	}
	if got := state.Location(e.State, e.World, "key"); got != types.LocHeldPrefix+"butler" {
		t.Errorf("key at %q, want held by the butler", got)
	}

	e.HandleInput("take lamp")
	res = e.HandleInput("give lamp to butler")
	if !strings.Contains(res.Message, "no interest") {
		t.Errorf("unwanted gift = %q", res.Message)
	}
	if !state.InInventory(e.State, "lamp") {
		t.Error("refused gift left the player's hands")
	}
}

func TestAttack(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("take lamp")
	e.HandleInput("turn on lamp")
	e.HandleInput("take rusty sword")
	e.HandleInput("down")

	// Naming a non-weapon as the instrument is refused outright.
	res := e.Execute(types.ParsedCommand{Verb: "attack", Object: "ghoul", Target: "lamp"})
	if res.Success || !strings.Contains(res.Message, "no weapon") {
		t.Errorf("lamp as weapon = %+v", res)
	}

	before := e.State.Sanity
	res = e.HandleInput("attack ghoul")
	if !res.Success {
		t.Fatalf("first blow failed: %+v", res)
	}
	if !strings.Contains(res.Message, "holds its shape") {
		t.Errorf("first blow = %q", res.Message)
	}
	// A hostile survivor strikes back at the mind.
	if e.State.Sanity != before-4 {
		t.Errorf("Sanity = %d, want %d", e.State.Sanity, before-4)
	}

	res = e.HandleInput("attack ghoul")
	if !strings.Contains(res.Message, "gone") {
		t.Errorf("killing blow = %q", res.Message)
	}
	if got := state.Location(e.State, e.World, "ghoul"); got != types.LocVoid {
		t.Errorf("ghoul at %q, want void", got)
	}
	if e.State.Score != 5 {
		t.Errorf("Score = %d, want kill bonus 5", e.State.Score)
	}
}

func TestAttack_BareHanded(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("take lamp")
	e.HandleInput("turn on lamp")
	e.HandleInput("down")

	before := e.State.Sanity
	res := e.HandleInput("attack ghoul")
	if res.Success {
		t.Fatalf("bare-handed attack succeeded: %+v", res)
	}
	if e.State.Sanity != before-5 {
		t.Errorf("Sanity = %d, want %d", e.State.Sanity, before-5)
	}
}

func TestThrow_AtCreature(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("take lamp")
	e.HandleInput("turn on lamp")
	e.HandleInput("take silver sword")
	e.HandleInput("down")

	// Thrown, the heavy sword still lands hard enough to finish it.
	res := e.HandleInput("throw sword at ghoul")
	if !res.Success {
		t.Fatalf("throw failed: %+v", res)
	}
	if !strings.Contains(res.Message, "hurl") {
		t.Errorf("message = %q", res.Message)
	}
	if got := state.Location(e.State, e.World, "ghoul"); got != types.LocVoid {
		t.Errorf("ghoul survived a thrown blade: at %q", got)
	}
	// The sword lands in the room, not the void.
	if got := state.Location(e.State, e.World, "silver_sword"); got != "cellar" {
		t.Errorf("sword at %q, want cellar", got)
	}
}

func TestInventoryListing(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("inventory")
	if !strings.Contains(res.Message, "empty-handed") {
		t.Errorf("empty inventory = %q", res.Message)
	}

	e.HandleInput("take lamp")
	e.HandleInput("turn on lamp")
	res = e.HandleInput("i")
	if !strings.Contains(res.Message, "lamp") || !strings.Contains(res.Message, "providing light") {
		t.Errorf("inventory = %q", res.Message)
	}
}

func TestDiagnose(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("diagnose")
	if !strings.Contains(res.Message, "100/100") {
		t.Errorf("diagnose = %q", res.Message)
	}

	e.State.Sanity = 10
	res = e.HandleInput("diagnose")
	if !strings.Contains(res.Message, "10/100") {
		t.Errorf("diagnose = %q", res.Message)
	}
}

func TestExamine(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("x lamp")
	if !strings.Contains(res.Message, "dented but serviceable") {
		t.Errorf("examine = %q", res.Message)
	}

	// Containers report their open state.
	res = e.HandleInput("examine mailbox")
	if !strings.Contains(res.Message, "closed") {
		t.Errorf("examine closed container = %q", res.Message)
	}
}

func TestSearch(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("look in mailbox")
	if res.Success || !strings.Contains(res.Message, "closed") {
		t.Errorf("search closed = %+v", res)
	}

	e.HandleInput("open mailbox")
	res = e.HandleInput("search mailbox")
	if !strings.Contains(res.Message, "leaflet") {
		t.Errorf("search = %q", res.Message)
	}
}

func TestClimbAndLeave(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("take lamp")
	e.HandleInput("turn on lamp")
	e.HandleInput("down")

	res := e.HandleInput("climb up")
	if !res.Success {
		t.Fatalf("climb up failed: %+v", res)
	}
	if e.State.Room != "hall" {
		t.Errorf("Room = %q, want hall", e.State.Room)
	}

	res = e.HandleInput("leave")
	if res.Success {
		t.Errorf("leave with no out exit succeeded: %+v", res)
	}
}

func TestClimb_NamedObjectMustBeClimbable(t *testing.T) {
	e := newTestEngine(t)

	// A matching exit alone isn't enough when the named object can't be
	// climbed.
	res := e.Execute(types.ParsedCommand{Verb: "climb", Object: "crank", Direction: "down"})
	if res.Success || res.Kind != types.ResultCapabilityMismatch {
		t.Errorf("climb down crank = %+v, want capability refusal", res)
	}
	if e.State.Room != "hall" {
		t.Errorf("Room = %q, player moved anyway", e.State.Room)
	}

	res = e.Execute(types.ParsedCommand{Verb: "climb", Direction: "east"})
	if res.Success || !strings.Contains(res.Message, "can't climb that way") {
		t.Errorf("climb with no exit = %+v", res)
	}
}

func TestTieUntie_RoundTrip(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("north")

	res := e.HandleInput("tie rope to hook")
	if !res.Success {
		t.Fatalf("tie failed: %+v", res)
	}
	if got := state.StringProp(e.State, e.World, "rope", "tied_to"); got != "hook" {
		t.Errorf("tied_to = %q, want hook", got)
	}

	res = e.HandleInput("untie rope")
	if !res.Success {
		t.Fatalf("untie failed: %+v", res)
	}
	if got := state.StringProp(e.State, e.World, "rope", "tied_to"); got != "" {
		t.Errorf("tied_to = %q after untie, want empty", got)
	}
}

func TestTie_RetieReleasesOldBinding(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("north")
	e.HandleInput("tie rope to hook")

	res := e.HandleInput("tie rope to railing")
	if !res.Success {
		t.Fatalf("retie failed: %+v", res)
	}
	if !strings.Contains(res.Message, "untying") {
		t.Errorf("retie did not narrate the release: %q", res.Message)
	}
	if got := state.StringProp(e.State, e.World, "rope", "tied_to"); got != "railing" {
		t.Errorf("tied_to = %q, want railing", got)
	}

	// Retying to the same anchor is the only refusal left.
	res = e.HandleInput("tie rope to railing")
	if res.Success || res.Kind != types.ResultStateConflict {
		t.Errorf("tie to current anchor = %+v, want conflict", res)
	}
}

func TestFillPour_RoundTrip(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("north")
	e.HandleInput("take jar")

	res := e.HandleInput("fill jar")
	if !res.Success {
		t.Fatalf("fill failed: %+v", res)
	}
	if got := state.StringProp(e.State, e.World, "jar", "filled_with"); got != "water" {
		t.Errorf("filled_with = %q, want water", got)
	}

	// Filling a full jar changes nothing and still counts as success.
	res = e.HandleInput("fill jar")
	if !res.Success || !strings.Contains(res.Message, "already full") {
		t.Errorf("refill = %+v, want benign already-full", res)
	}

	res = e.HandleInput("pour jar")
	if !res.Success {
		t.Fatalf("pour failed: %+v", res)
	}
	if got := state.StringProp(e.State, e.World, "jar", "filled_with"); got != "" {
		t.Errorf("filled_with = %q after pour, want empty", got)
	}

	// Pouring an empty jar has nothing to give.
	res = e.HandleInput("pour jar")
	if res.Success {
		t.Errorf("pour of empty jar succeeded: %+v", res)
	}
}

func TestInflateDeflate_RoundTrip(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("inflate raft")
	if res.Success {
		t.Fatalf("inflate without a pump succeeded: %+v", res)
	}

	e.HandleInput("take pump")
	res = e.HandleInput("inflate raft")
	if !res.Success {
		t.Fatalf("inflate failed: %+v", res)
	}
	if !state.BoolProp(e.State, e.World, "raft", "inflated") {
		t.Error("raft not marked inflated")
	}

	res = e.HandleInput("deflate raft")
	if !res.Success {
		t.Fatalf("deflate failed: %+v", res)
	}
	if state.BoolProp(e.State, e.World, "raft", "inflated") {
		t.Error("raft still marked inflated")
	}
}

func TestBoardDisembark_RoundTrip(t *testing.T) {
	e := newTestEngine(t)

	res := e.HandleInput("board raft")
	if res.Success {
		t.Fatalf("boarded a deflated raft: %+v", res)
	}

	e.HandleInput("take pump")
	e.HandleInput("inflate raft")
	res = e.HandleInput("board raft")
	if !res.Success {
		t.Fatalf("board failed: %+v", res)
	}
	if e.State.Vehicle != "raft" {
		t.Errorf("Vehicle = %q, want raft", e.State.Vehicle)
	}

	// Deflating the raft out from under yourself is refused.
	res = e.HandleInput("deflate raft")
	if res.Success {
		t.Errorf("deflated an occupied raft: %+v", res)
	}

	res = e.HandleInput("disembark")
	if !res.Success {
		t.Fatalf("disembark failed: %+v", res)
	}
	if e.State.Vehicle != "" {
		t.Errorf("Vehicle = %q after disembark, want empty", e.State.Vehicle)
	}
}

func TestBurn_RoomFlameSuffices(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput("turn on lamp")
	e.HandleInput("open mailbox")
	e.HandleInput("take leaflet")

	// The lit lamp is still on the hall floor, not in hand.
	res := e.HandleInput("burn leaflet")
	if !res.Success {
		t.Fatalf("burn with a room flame failed: %+v", res)
	}
	if got := state.Location(e.State, e.World, "leaflet"); got != types.LocVoid {
		t.Errorf("leaflet at %q, want destroyed", got)
	}
}

func TestGive_RequiresHeld(t *testing.T) {
	e := newTestEngine(t)

	// The key is on the hall floor, in reach but not in hand.
	res := e.HandleInput("give key to butler")
	if res.Success || res.Kind != types.ResultStateConflict {
		t.Errorf("give from the floor = %+v, want conflict", res)
	}
	if got := state.Location(e.State, e.World, "key"); got != "hall" {
		t.Errorf("key at %q, want hall", got)
	}
}

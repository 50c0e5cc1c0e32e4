// Package parser converts raw command text into ParsedCommand structs.
// Intentionally dumb: no NLP, just tables and position. Parsing is a pure
// function of the input text and static vocabulary — no state, no clock,
// no randomness.
package parser

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/types"
)

// NotUnderstoodError is returned when no recognizable verb is found.
type NotUnderstoodError struct {
	Input string
}

func (e *NotUnderstoodError) Error() string {
	return fmt.Sprintf("I don't understand %q.", e.Input)
}

// Vocab supplies world-specific noun vocabulary: object synonyms mapped to
// canonical nouns, and the adjectives that may qualify them. A nil Vocab is
// valid; noun tokens then pass through untouched.
type Vocab struct {
	Nouns      map[string]string // synonym → canonical noun
	Adjectives map[string]bool
}

var directionExpansions = map[string]string{
	"n": "north", "s": "south", "e": "east", "w": "west",
	"ne": "northeast", "nw": "northwest", "se": "southeast", "sw": "southwest",
	"u": "up", "d": "down",
}

var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"northeast": true, "northwest": true, "southeast": true, "southwest": true,
	"up": true, "down": true, "in": true, "out": true,
}

// Single- and double-letter shortcuts for whole commands.
var abbreviations = map[string]string{
	"l": "look",
	"x": "examine",
	"i": "inventory",
	"z": "wait",
}

var verbAliases = map[string]string{
	// Look / Examine
	"inspect": "examine", "study": "examine", "observe": "examine",
	"describe": "examine",

	// Movement
	"walk": "go", "run": "go", "head": "go", "proceed": "go", "travel": "go",

	// Take / Drop
	"get": "take", "grab": "take", "hold": "take", "carry": "take",
	"discard": "drop", "insert": "put", "place": "put",

	// Doors and locks
	"shut": "close",

	// Manipulation
	"press": "push", "shove": "push", "drag": "pull", "tug": "pull",
	"yank": "pull", "rotate": "turn", "twist": "turn", "crank": "turn",
	"fasten": "tie", "attach": "tie", "hitch": "tie",
	"detach": "untie", "unfasten": "untie",
	"ignite": "burn", "incinerate": "burn", "light": "burn",
	"slice": "cut", "chop": "cut", "sever": "cut",
	"excavate": "dig", "pump": "inflate",
	"empty": "pour", "spill": "pour",
	"pet": "rub", "polish": "rub", "stroke": "rub",
	"brandish": "wave", "flourish": "wave",
	"grip": "squeeze", "crush": "squeeze",
	"scale": "climb",

	// Combat
	"hit": "attack", "fight": "attack", "strike": "attack", "kill": "attack",
	"punch": "attack", "stab": "attack", "slay": "attack",
	"toss": "throw", "hurl": "throw", "lob": "throw",

	// Social
	"speak": "talk", "chat": "talk", "converse": "talk",
	"offer": "give", "hand": "give", "feed": "give",

	// Senses
	"sniff": "smell", "hear": "listen", "feel": "touch",
	"peruse": "read",

	// Vehicles
	"embark": "board", "mount": "board",
	"dismount": "disembark", "unboard": "disembark",

	// Consumption
	"consume": "eat", "devour": "eat", "bite": "eat", "taste": "eat",
	"sip": "drink", "quaff": "drink", "swallow": "drink",

	// Flavor
	"leap": "jump", "hop": "jump", "scream": "yell", "shout": "yell",
	"rap": "knock", "chant": "sing", "hum": "sing",

	// Meta
	"inv": "inventory", "store": "save", "load": "restore",
	"q": "quit", "exit": "leave",
}

// canonicalVerbs is the closed set of verbs the engine may dispatch.
// A first token outside this set (after alias expansion) fails parsing.
var canonicalVerbs = map[string]bool{
	"go": true, "enter": true, "leave": true, "climb": true,
	"board": true, "disembark": true,
	"look": true, "examine": true, "read": true, "listen": true,
	"smell": true, "search": true,
	"inventory": true, "score": true, "diagnose": true, "wait": true,
	"verbose": true, "brief": true, "superbrief": true,
	"take": true, "drop": true, "put": true, "give": true, "throw": true,
	"open": true, "close": true, "lock": true, "unlock": true,
	"turn": true, "push": true, "pull": true, "tie": true, "untie": true,
	"fill": true, "pour": true, "inflate": true, "deflate": true,
	"burn": true, "cut": true, "dig": true,
	"wave": true, "rub": true, "shake": true, "squeeze": true,
	"touch": true, "knock": true, "pray": true, "sing": true,
	"jump": true, "yell": true, "eat": true, "drink": true,
	"attack": true, "talk": true, "ask": true, "show": true,
	"save": true, "restore": true, "restart": true, "quit": true,
	// Recognized verbs without handlers yet; the router reports them
	// as not-yet-available rather than not-understood.
	"swim": true, "buy": true, "sleep": true, "dance": true,
}

// Known reports whether a canonical verb is part of the game vocabulary.
func Known(verb string) bool {
	return canonicalVerbs[verb]
}

var prepositions = map[string]bool{
	"with": true, "to": true, "in": true, "on": true, "from": true,
	"at": true, "under": true, "behind": true, "through": true, "off": true,
	"about": true, "into": true, "onto": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Verbs whose object slot may name a direction instead of an object.
var directionalVerbs = map[string]bool{
	"go": true, "climb": true, "look": true, "push": true, "throw": true,
}

// Parse converts raw input into a ParsedCommand. The verb field of a
// successful parse is always non-empty; all other fields are optional.
// Identical input always yields an identical ParsedCommand.
func Parse(input string, vocab *Vocab) (types.ParsedCommand, error) {
	raw := input
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return types.ParsedCommand{}, &NotUnderstoodError{Input: raw}
	}

	words := strings.Fields(strings.ToLower(trimmed))
	words = stripArticles(words)
	if len(words) == 0 {
		return types.ParsedCommand{}, &NotUnderstoodError{Input: raw}
	}

	// Bare direction: "n", "south" → go <direction>.
	if len(words) == 1 {
		tok := words[0]
		if dir, ok := directionExpansions[tok]; ok {
			return types.ParsedCommand{Verb: "go", Direction: dir, Raw: raw}, nil
		}
		if directionNames[tok] {
			return types.ParsedCommand{Verb: "go", Direction: tok, Raw: raw}, nil
		}
		if full, ok := abbreviations[tok]; ok {
			return types.ParsedCommand{Verb: full, Raw: raw}, nil
		}
	}

	// Abbreviated verb with arguments: "x mailbox".
	if full, ok := abbreviations[words[0]]; ok {
		words[0] = full
	}

	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	if !canonicalVerbs[verb] {
		return types.ParsedCommand{}, &NotUnderstoodError{Input: raw}
	}

	cmd := types.ParsedCommand{Verb: verb, Raw: raw}
	rest := words[1:]

	// Split on the first preposition: verb / object phrase / prep / target phrase.
	objectWords, prep, targetWords := splitOnPreposition(rest, verb)
	cmd.Preposition = prep

	objectWords = extractDirection(&cmd, objectWords)

	cmd.Object, cmd.Modifiers = canonicalizePhrase(objectWords, vocab)
	cmd.Target, _ = canonicalizePhrase(targetWords, vocab)

	return cmd, nil
}

// expandMultiWordVerbs normalizes common verb+particle phrases before
// alias expansion: "look at", "pick up", "put down", "get out", etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	switch words[0] {
	case "look":
		if words[1] == "at" {
			return append([]string{"examine"}, words[2:]...)
		}
		if words[1] == "in" || words[1] == "inside" || words[1] == "under" || words[1] == "behind" {
			return append([]string{"search"}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "put":
		if words[1] == "down" {
			return append([]string{"drop"}, words[2:]...)
		}
		if words[1] == "out" {
			return append([]string{"pour"}, words[2:]...)
		}
	case "get":
		if words[1] == "out" || words[1] == "off" {
			return append([]string{"disembark"}, words[2:]...)
		}
		if words[1] == "in" || words[1] == "on" {
			return append([]string{"board"}, words[2:]...)
		}
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "blow":
		if words[1] == "up" {
			return append([]string{"inflate"}, words[2:]...)
		}
	case "set":
		if words[1] == "fire" { // "set fire to X"
			rest := words[2:]
			if len(rest) > 0 && rest[0] == "to" {
				rest = rest[1:]
			}
			return append([]string{"burn"}, rest...)
		}
	}
	return words
}

// splitOnPreposition splits the argument words on the first preposition
// token. TURN keeps a leading on/off as its preposition with the object
// after it ("turn on lamp"); everything else treats words before the
// preposition as the object and words after as the target.
func splitOnPreposition(words []string, verb string) (object []string, prep string, target []string) {
	if verb == "turn" && len(words) > 0 && (words[0] == "on" || words[0] == "off") {
		return words[1:], words[0], nil
	}
	for i, w := range words {
		if prepositions[w] {
			return words[:i], w, words[i+1:]
		}
	}
	return words, "", nil
}

// extractDirection pulls a direction token out of the object phrase for
// verbs that accept one ("climb up ladder", "go north").
func extractDirection(cmd *types.ParsedCommand, words []string) []string {
	if !directionalVerbs[cmd.Verb] {
		return words
	}
	var rest []string
	for _, w := range words {
		if cmd.Direction == "" {
			if dir, ok := directionExpansions[w]; ok {
				cmd.Direction = dir
				continue
			}
			if directionNames[w] && w != "in" && w != "out" {
				cmd.Direction = w
				continue
			}
		}
		rest = append(rest, w)
	}
	return rest
}

// canonicalizePhrase maps a noun phrase through the vocabulary: known
// adjectives become modifiers, synonym nouns are canonicalized, and the
// remaining words are joined into the phrase.
func canonicalizePhrase(words []string, vocab *Vocab) (string, []string) {
	if len(words) == 0 {
		return "", nil
	}
	var mods []string
	var nouns []string
	for _, w := range words {
		if vocab != nil && vocab.Adjectives[w] {
			mods = append(mods, w)
			continue
		}
		if vocab != nil {
			if canon, ok := vocab.Nouns[w]; ok {
				nouns = append(nouns, canon)
				continue
			}
		}
		nouns = append(nouns, w)
	}
	// A phrase that was all adjectives ("rusty") keeps them as modifiers
	// with an empty noun; disambiguation replies rely on this.
	return strings.Join(nouns, " "), mods
}

func stripArticles(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			out = append(out, w)
		}
	}
	return out
}

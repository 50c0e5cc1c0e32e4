// Package resolve maps object phrases from parsed commands to object IDs,
// enforcing reachability: a command can only name what the player could
// plausibly touch or see right now.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tmorvan/netherhall/engine/state"
	"github.com/tmorvan/netherhall/types"
)

// AmbiguityError indicates multiple reachable objects matched a phrase.
type AmbiguityError struct {
	Phrase     string
	Candidates []string // object IDs, sorted
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("which %s do you mean?", e.Phrase)
}

// NotFoundError indicates no reachable object matched a phrase.
type NotFoundError struct {
	Phrase string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("You don't see any %s here.", e.Phrase)
}

// Reachable returns the IDs of all objects the player can currently act on:
// objects in the room, in inventory, and inside open or transparent
// containers that are themselves reachable. Sorted for determinism.
func Reachable(s *types.GameState, w *state.World) []string {
	seen := map[string]bool{}
	var frontier []string

	frontier = append(frontier, state.ObjectsIn(s, w, s.Room)...)
	frontier = append(frontier, s.Inventory...)

	var out []string
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)

		def, ok := w.Objects[id]
		if !ok {
			continue
		}
		// Contents of open or transparent containers are in reach.
		if def.Kind == types.KindContainer || def.Has(types.CapOpenable) {
			if state.BoolProp(s, w, id, "is_open") || def.Has(types.CapTransparent) {
				frontier = append(frontier, state.Contents(s, w, id)...)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Object resolves a single phrase (plus modifiers) against the reachable
// set. Returns the object ID, a NotFoundError, or an AmbiguityError whose
// candidates feed the disambiguation state machine.
func Object(s *types.GameState, w *state.World, phrase string, mods []string) (string, error) {
	if phrase == "" && len(mods) == 0 {
		return "", &NotFoundError{Phrase: phrase}
	}

	var matches []string
	for _, id := range Reachable(s, w) {
		def := w.Objects[id]
		if Matches(def, phrase, mods) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Phrase: displayPhrase(phrase, mods)}
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", &AmbiguityError{Phrase: displayPhrase(phrase, mods), Candidates: matches}
	}
}

// Matches reports whether an object definition answers to the given noun
// phrase and modifiers. The noun must match the name, a synonym, or the ID;
// every modifier must match one of the object's adjectives or name words.
// An empty noun with modifiers matches on modifiers alone.
func Matches(def types.ObjectDef, phrase string, mods []string) bool {
	if phrase != "" && !nounMatches(def, phrase) {
		return false
	}
	if phrase == "" && len(mods) == 0 {
		return false
	}
	for _, m := range mods {
		if !adjectiveMatches(def, m) {
			return false
		}
	}
	return true
}

// Narrow filters prior ambiguity candidates by a follow-up reply, matching
// its words against each candidate's adjectives, name words, and synonyms.
func Narrow(w *state.World, candidates []string, reply string) []string {
	words := strings.Fields(strings.ToLower(reply))
	if len(words) == 0 {
		return nil
	}
	var out []string
	for _, id := range candidates {
		def, ok := w.Objects[id]
		if !ok {
			continue
		}
		all := true
		for _, word := range words {
			if !adjectiveMatches(def, word) && !nounMatches(def, word) {
				all = false
				break
			}
		}
		if all {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DisplayName returns the player-facing name of an object.
func DisplayName(w *state.World, id string) string {
	if def, ok := w.Objects[id]; ok && def.Name != "" {
		return def.Name
	}
	return id
}

// QualifiedName returns "adjective name" for disambiguation prompts so the
// player can tell candidates apart. An adjective already part of the name
// is not repeated.
func QualifiedName(w *state.World, id string) string {
	def, ok := w.Objects[id]
	if !ok {
		return id
	}
	nameWords := map[string]bool{}
	for _, word := range strings.Fields(strings.ToLower(def.Name)) {
		nameWords[word] = true
	}
	for _, adj := range def.Adjectives {
		if !nameWords[strings.ToLower(adj)] {
			return adj + " " + def.Name
		}
	}
	return def.Name
}

func nounMatches(def types.ObjectDef, noun string) bool {
	noun = strings.ToLower(noun)
	if strings.ToLower(def.Name) == noun {
		return true
	}
	for _, word := range strings.Fields(strings.ToLower(def.Name)) {
		if word == noun {
			return true
		}
	}
	for _, syn := range def.Synonyms {
		if strings.ToLower(syn) == noun {
			return true
		}
	}
	if strings.ToLower(def.ID) == noun {
		return true
	}
	if strings.ReplaceAll(noun, " ", "_") == strings.ToLower(def.ID) {
		return true
	}
	return false
}

func adjectiveMatches(def types.ObjectDef, word string) bool {
	word = strings.ToLower(word)
	for _, adj := range def.Adjectives {
		if strings.ToLower(adj) == word {
			return true
		}
	}
	for _, nw := range strings.Fields(strings.ToLower(def.Name)) {
		if nw == word {
			return true
		}
	}
	return false
}

func displayPhrase(phrase string, mods []string) string {
	if len(mods) == 0 {
		return phrase
	}
	if phrase == "" {
		return strings.Join(mods, " ")
	}
	return strings.Join(mods, " ") + " " + phrase
}

package engine

import (
	"strings"

	"github.com/tmorvan/netherhall/engine/parser"
	"github.com/tmorvan/netherhall/engine/state"
)

// BuildVocab derives the parser's noun vocabulary from world definitions:
// every object name word and synonym becomes a noun token, every declared
// adjective a modifier token. Synonyms map to the object's primary noun so
// "lantern" and "lamp" parse identically.
func BuildVocab(w *state.World) *parser.Vocab {
	v := &parser.Vocab{
		Nouns:      map[string]string{},
		Adjectives: map[string]bool{},
	}
	for _, def := range w.Objects {
		words := strings.Fields(strings.ToLower(def.Name))
		if len(words) == 0 {
			continue
		}
		primary := words[len(words)-1]
		v.Nouns[primary] = primary
		for _, syn := range def.Synonyms {
			v.Nouns[strings.ToLower(syn)] = primary
		}
		for _, adj := range def.Adjectives {
			v.Adjectives[strings.ToLower(adj)] = true
		}
		// Leading name words ("brass" in "brass lantern") work as modifiers.
		for _, w := range words[:len(words)-1] {
			v.Adjectives[w] = true
		}
	}
	return v
}

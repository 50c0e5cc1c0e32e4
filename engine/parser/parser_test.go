package parser

import (
	"reflect"
	"testing"

	"github.com/tmorvan/netherhall/types"
)

func testVocab() *Vocab {
	return &Vocab{
		Nouns: map[string]string{
			"lamp":    "lamp",
			"lantern": "lamp",
			"sword":   "sword",
			"mailbox": "mailbox",
			"box":     "mailbox",
		},
		Adjectives: map[string]bool{
			"rusty":  true,
			"silver": true,
			"brass":  true,
		},
	}
}

func TestParse(t *testing.T) {
	vocab := testVocab()

	tests := []struct {
		name  string
		input string
		want  types.ParsedCommand
	}{
		// Bare directions.
		{
			name:  "bare direction word",
			input: "north",
			want:  types.ParsedCommand{Verb: "go", Direction: "north"},
		},
		{
			name:  "single letter direction",
			input: "n",
			want:  types.ParsedCommand{Verb: "go", Direction: "north"},
		},
		{
			name:  "two letter diagonal",
			input: "ne",
			want:  types.ParsedCommand{Verb: "go", Direction: "northeast"},
		},
		{
			name:  "up abbreviation",
			input: "u",
			want:  types.ParsedCommand{Verb: "go", Direction: "up"},
		},

		// Command abbreviations.
		{
			name:  "l is look",
			input: "l",
			want:  types.ParsedCommand{Verb: "look"},
		},
		{
			name:  "i is inventory",
			input: "i",
			want:  types.ParsedCommand{Verb: "inventory"},
		},
		{
			name:  "x with object",
			input: "x mailbox",
			want:  types.ParsedCommand{Verb: "examine", Object: "mailbox"},
		},
		{
			name:  "z is wait",
			input: "z",
			want:  types.ParsedCommand{Verb: "wait"},
		},

		// Verb aliases.
		{
			name:  "get is take",
			input: "get lamp",
			want:  types.ParsedCommand{Verb: "take", Object: "lamp"},
		},
		{
			name:  "grab is take",
			input: "grab sword",
			want:  types.ParsedCommand{Verb: "take", Object: "sword"},
		},
		{
			name:  "hit is attack",
			input: "hit sword",
			want:  types.ParsedCommand{Verb: "attack", Object: "sword"},
		},
		{
			name:  "q is quit",
			input: "q",
			want:  types.ParsedCommand{Verb: "quit"},
		},

		// Articles are dropped.
		{
			name:  "article before object",
			input: "take the lamp",
			want:  types.ParsedCommand{Verb: "take", Object: "lamp"},
		},
		{
			name:  "articles everywhere",
			input: "put the lamp in the mailbox",
			want:  types.ParsedCommand{Verb: "put", Object: "lamp", Preposition: "in", Target: "mailbox"},
		},

		// Synonyms canonicalize through the vocabulary.
		{
			name:  "synonym noun",
			input: "take lantern",
			want:  types.ParsedCommand{Verb: "take", Object: "lamp"},
		},
		{
			name:  "synonym for container",
			input: "open box",
			want:  types.ParsedCommand{Verb: "open", Object: "mailbox"},
		},

		// Adjectives become modifiers.
		{
			name:  "adjective plus noun",
			input: "take rusty sword",
			want:  types.ParsedCommand{Verb: "take", Object: "sword", Modifiers: []string{"rusty"}},
		},
		{
			name:  "bare adjective keeps modifier with empty noun",
			input: "take rusty",
			want:  types.ParsedCommand{Verb: "take", Modifiers: []string{"rusty"}},
		},

		// Multi-word verb phrases.
		{
			name:  "look at",
			input: "look at lamp",
			want:  types.ParsedCommand{Verb: "examine", Object: "lamp"},
		},
		{
			name:  "pick up",
			input: "pick up lamp",
			want:  types.ParsedCommand{Verb: "take", Object: "lamp"},
		},
		{
			name:  "put down",
			input: "put down lamp",
			want:  types.ParsedCommand{Verb: "drop", Object: "lamp"},
		},
		{
			name:  "look in is search",
			input: "look in mailbox",
			want:  types.ParsedCommand{Verb: "search", Object: "mailbox"},
		},
		{
			name:  "talk to",
			input: "talk to sword",
			want:  types.ParsedCommand{Verb: "talk", Object: "sword"},
		},
		{
			name:  "get out is disembark",
			input: "get out",
			want:  types.ParsedCommand{Verb: "disembark"},
		},
		{
			name:  "set fire to",
			input: "set fire to lamp",
			want:  types.ParsedCommand{Verb: "burn", Object: "lamp"},
		},

		// Prepositions split object and target.
		{
			name:  "unlock with key",
			input: "unlock mailbox with lamp",
			want:  types.ParsedCommand{Verb: "unlock", Object: "mailbox", Preposition: "with", Target: "lamp"},
		},
		{
			name:  "ask about topic",
			input: "ask sword about lamp",
			want:  types.ParsedCommand{Verb: "ask", Object: "sword", Preposition: "about", Target: "lamp"},
		},

		// TURN keeps a leading on/off as its preposition.
		{
			name:  "turn on lamp",
			input: "turn on lamp",
			want:  types.ParsedCommand{Verb: "turn", Object: "lamp", Preposition: "on"},
		},
		{
			name:  "turn off lamp",
			input: "turn off lamp",
			want:  types.ParsedCommand{Verb: "turn", Object: "lamp", Preposition: "off"},
		},

		// Directional verbs pull direction tokens out of the object slot.
		{
			name:  "go north",
			input: "go north",
			want:  types.ParsedCommand{Verb: "go", Direction: "north"},
		},
		{
			name:  "climb up",
			input: "climb up",
			want:  types.ParsedCommand{Verb: "climb", Direction: "up"},
		},
		{
			name:  "look north",
			input: "look north",
			want:  types.ParsedCommand{Verb: "look", Direction: "north"},
		},
		{
			name:  "walk alias with direction",
			input: "walk south",
			want:  types.ParsedCommand{Verb: "go", Direction: "south"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, vocab)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			tt.want.Raw = tt.input
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_NotUnderstood(t *testing.T) {
	for _, input := range []string{"", "   ", "xyzzy", "frobnicate the lamp"} {
		_, err := Parse(input, testVocab())
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want NotUnderstoodError", input)
		}
		if _, isNU := err.(*NotUnderstoodError); !isNU {
			t.Errorf("Parse(%q) error = %T, want *NotUnderstoodError", input, err)
		}
	}
}

func TestParse_Deterministic(t *testing.T) {
	vocab := testVocab()
	first, err := Parse("put the rusty sword in the mailbox", vocab)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Parse("put the rusty sword in the mailbox", vocab)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("parse %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestParse_NilVocabPassesNounsThrough(t *testing.T) {
	got, err := Parse("take widget", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Object != "widget" {
		t.Errorf("Object = %q, want %q", got.Object, "widget")
	}
}

func TestKnown(t *testing.T) {
	for _, verb := range []string{"go", "take", "ask", "swim", "dance"} {
		if !Known(verb) {
			t.Errorf("Known(%q) = false, want true", verb)
		}
	}
	if Known("frobnicate") {
		t.Error(`Known("frobnicate") = true, want false`)
	}
}

package engine

import (
	"fmt"
	"strings"

	"github.com/tmorvan/netherhall/engine/parser"
	"github.com/tmorvan/netherhall/engine/resolve"
	"github.com/tmorvan/netherhall/types"
)

// awaitParameter records a missing-role question and returns the prompt.
// The next input is offered to resumePending before normal parsing.
func (e *Engine) awaitParameter(role string, cmd types.ParsedCommand, prompt string) types.ActionResult {
	if prompt == "" {
		prompt = fmt.Sprintf("What do you want to %s?", cmd.Verb)
	}
	e.State.Pending = &types.Pending{
		Kind:    types.PendingParameter,
		Role:    role,
		Command: cmd,
	}
	return types.ActionResult{
		Kind:    types.ResultMissingParameter,
		Message: prompt,
	}
}

// resumePending consumes the reply to an outstanding question. It returns
// handled=false when the reply is a fresh command in its own right; the
// caller then clears nothing here because the pending state has already
// been discarded.
//
// The machine is one-shot: whatever happens, Pending is cleared before a
// second command runs.
func (e *Engine) resumePending(raw string) (types.ActionResult, bool) {
	p := e.State.Pending

	// A reply that parses as a command in its own right abandons the
	// question, except when it is the very answer the question asked for.
	if cmd, err := parser.Parse(raw, e.Vocab); err == nil {
		e.State.Pending = nil
		if p.Kind == types.PendingParameter && p.Role == types.RoleDirection &&
			cmd.Verb == "go" && cmd.Direction != "" {
			answered := p.Command
			answered.Direction = cmd.Direction
			return e.Execute(answered), true
		}
		return e.Execute(cmd), true
	}

	reply := strings.ToLower(strings.TrimSpace(raw))
	if reply == "" {
		e.State.Pending = nil
		return types.ActionResult{
			Kind:    types.ResultNotUnderstood,
			Message: "I beg your pardon?",
		}, true
	}

	switch p.Kind {
	case types.PendingDisambiguation:
		e.State.Pending = nil
		narrowed := resolve.Narrow(e.World, p.Candidates, reply)
		switch len(narrowed) {
		case 1:
			cmd := rebindCommand(p.Command, narrowed[0])
			return e.Execute(cmd), true
		case 0:
			return types.ActionResult{
				Kind:    types.ResultNotUnderstood,
				Message: fmt.Sprintf("None of those match %q.", reply),
			}, true
		default:
			return types.ActionResult{
				Kind:    types.ResultAmbiguousReference,
				Message: fmt.Sprintf("That still doesn't narrow it down: %s.", listQualified(e.World, narrowed)),
			}, true
		}

	case types.PendingParameter:
		e.State.Pending = nil
		cmd := p.Command
		switch p.Role {
		case types.RoleDirection:
			// A valid direction reply was consumed above.
			return types.ActionResult{
				Kind:    types.ResultNotUnderstood,
				Message: fmt.Sprintf("%q is not a direction.", reply),
			}, true
		case types.RoleTool:
			cmd.Target = stripLeadingArticles(reply)
		default:
			cmd.Object = stripLeadingArticles(reply)
		}
		return e.Execute(cmd), true
	}

	e.State.Pending = nil
	return types.ActionResult{}, false
}

// rebindCommand replaces the ambiguous phrase with the chosen object's ID,
// which resolves uniquely no matter how the world names its objects.
func rebindCommand(cmd types.ParsedCommand, id string) types.ParsedCommand {
	cmd.Object = id
	cmd.Modifiers = nil
	return cmd
}

func stripLeadingArticles(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 && (words[0] == "the" || words[0] == "a" || words[0] == "an") {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

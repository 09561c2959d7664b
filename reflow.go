package book2pdf

import (
	"context"
	"regexp"
	"strings"
)

// Definition-list source syntax: "- term TEXT:" introduces a multi-line
// definition.
var (
	termPattern       = regexp.MustCompile(`^- term (.+):`)
	leadingWhitespace = regexp.MustCompile(`^\s+`)
)

// definitionMarker introduces a definition body in the target dialect.
const definitionMarker = ":    "

// reflowState tracks progress through a multi-line definition list.
type reflowState int

const (
	stateStart reflowState = iota
	stateStartDefinitionList
	stateFirstDefinitionLine
	stateContinuingDefinition
)

// reflowDefinitionLists re-emits a line stream with definition lists
// reformatted: term on its own line, definition indented and introduced
// by the definition marker after a blank line.
//
// This is a single forward pass with one line of lookahead. The pushback
// slot holds at most one unconsumed line; pushed-back lines already went
// through the rewriter and are not rewritten again.
func reflowDefinitionLists(ctx context.Context, lines []string, rewrite func(context.Context, string) (string, error)) ([]string, error) {
	out := make([]string, 0, len(lines))

	state := stateStart
	var pushback string
	havePushback := false

	for len(lines) > 0 || havePushback {
		var line string
		if havePushback {
			line = pushback
			havePushback = false
		} else {
			rewritten, err := rewrite(ctx, lines[0])
			if err != nil {
				return nil, err
			}
			line = rewritten
			lines = lines[1:]
		}

		switch state {
		case stateStart:
			if match := termPattern.FindStringSubmatch(line); match != nil {
				out = append(out, match[1])
				state = stateStartDefinitionList
			} else {
				out = append(out, line)
			}

		case stateStartDefinitionList:
			// Separate the term from its definition, then reprocess the
			// same line as the first definition line.
			pushback = line
			havePushback = true
			out = append(out, "")
			state = stateFirstDefinitionLine

		case stateFirstDefinitionLine:
			out = append(out, definitionMarker+strings.TrimLeft(line, " \t"))
			state = stateContinuingDefinition

		case stateContinuingDefinition:
			switch {
			case line == "":
				out = append(out, "")
			case leadingWhitespace.MatchString(line):
				out = append(out, "    "+strings.TrimLeft(line, " \t"))
			default:
				// Definition ended; reprocess this line from the start state.
				state = stateStart
				pushback = line
				havePushback = true
			}
		}
	}

	return out, nil
}

package book2pdf

import (
	"context"
	"reflect"
	"testing"
)

// passthroughRewrite feeds lines to the reflow machine unchanged.
func passthroughRewrite(_ context.Context, line string) (string, error) {
	return line, nil
}

func TestReflowDefinitionLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "single definition",
			input:    []string{"- term Foo:", "  bar baz", "", "next"},
			expected: []string{"Foo", "", ":    bar baz", "", "next"},
		},
		{
			name:     "no definition list",
			input:    []string{"plain", "", "lines"},
			expected: []string{"plain", "", "lines"},
		},
		{
			name: "continuation lines are re-indented",
			input: []string{
				"- term associativity:",
				"  how operators group",
				"  in the absence of parentheses",
				"",
				"after",
			},
			expected: []string{
				"associativity",
				"",
				":    how operators group",
				"    in the absence of parentheses",
				"",
				"after",
			},
		},
		{
			name: "blank lines keep the definition open",
			input: []string{
				"- term precedence:",
				"  binding strength",
				"",
				"  still part of the definition",
				"unindented ends it",
			},
			expected: []string{
				"precedence",
				"",
				":    binding strength",
				"",
				"    still part of the definition",
				"unindented ends it",
			},
		},
		{
			name: "consecutive definitions",
			input: []string{
				"- term alpha:",
				"  first",
				"- term beta:",
				"  second",
			},
			expected: []string{
				"alpha",
				"",
				":    first",
				"beta",
				"",
				":    second",
			},
		},
		{
			name:     "definition at end of input",
			input:    []string{"- term omega:", "  last"},
			expected: []string{"omega", "", ":    last"},
		},
		{
			name:     "empty input",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reflowDefinitionLists(context.Background(), tt.input, passthroughRewrite)
			if err != nil {
				t.Fatalf("reflowDefinitionLists() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("reflowDefinitionLists() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReflowRewritesFreshLinesOnly(t *testing.T) {
	t.Parallel()

	// Count how many times each line passes through the rewriter:
	// pushed-back lines must not be rewritten twice.
	counts := map[string]int{}
	countingRewrite := func(_ context.Context, line string) (string, error) {
		counts[line]++
		return line, nil
	}

	input := []string{"- term Foo:", "  bar", "", "next"}
	if _, err := reflowDefinitionLists(context.Background(), input, countingRewrite); err != nil {
		t.Fatalf("reflowDefinitionLists() error = %v", err)
	}

	for line, n := range counts {
		if n != 1 {
			t.Errorf("line %q rewritten %d times, want 1", line, n)
		}
	}
}

func TestReflowPropagatesRewriteError(t *testing.T) {
	t.Parallel()

	failingRewrite := func(_ context.Context, line string) (string, error) {
		if line == "boom" {
			return "", ErrUnknownReference
		}
		return line, nil
	}

	_, err := reflowDefinitionLists(context.Background(), []string{"ok", "boom"}, failingRewrite)
	if err == nil {
		t.Fatal("reflowDefinitionLists() error = nil, want error")
	}
}

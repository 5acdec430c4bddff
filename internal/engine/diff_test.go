package engine

import (
	"reflect"
	"strings"
	"testing"

	"resumatch/internal/types"
)

func tok(typ types.DiffType, word string) types.DiffToken {
	return types.DiffToken{Type: typ, Word: word}
}

func TestDiffWords(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name      string
		original  string
		optimized string
		expected  []types.DiffToken
	}{
		{
			name:      "single word replaced",
			original:  "fast learner",
			optimized: "quick learner",
			expected: []types.DiffToken{
				tok(types.DiffRemoved, "fast"),
				tok(types.DiffAdded, "quick"),
				tok(types.DiffUnchanged, "learner"),
			},
		},
		{
			name:      "identical inputs are all unchanged",
			original:  "managed a team of six",
			optimized: "managed a team of six",
			expected: []types.DiffToken{
				tok(types.DiffUnchanged, "managed"),
				tok(types.DiffUnchanged, "a"),
				tok(types.DiffUnchanged, "team"),
				tok(types.DiffUnchanged, "of"),
				tok(types.DiffUnchanged, "six"),
			},
		},
		{
			name:      "word inserted in the middle",
			original:  "built services in Go",
			optimized: "built scalable services in Go",
			expected: []types.DiffToken{
				tok(types.DiffUnchanged, "built"),
				tok(types.DiffAdded, "scalable"),
				tok(types.DiffUnchanged, "services"),
				tok(types.DiffUnchanged, "in"),
				tok(types.DiffUnchanged, "Go"),
			},
		},
		{
			name:      "word removed from the middle",
			original:  "built legacy services in Go",
			optimized: "built services in Go",
			expected: []types.DiffToken{
				tok(types.DiffUnchanged, "built"),
				tok(types.DiffRemoved, "legacy"),
				tok(types.DiffUnchanged, "services"),
				tok(types.DiffUnchanged, "in"),
				tok(types.DiffUnchanged, "Go"),
			},
		},
		{
			name:      "replacement emits removed before added",
			original:  "a b c",
			optimized: "a x c",
			expected: []types.DiffToken{
				tok(types.DiffUnchanged, "a"),
				tok(types.DiffRemoved, "b"),
				tok(types.DiffAdded, "x"),
				tok(types.DiffUnchanged, "c"),
			},
		},
		{
			name:      "empty original is all additions",
			original:  "",
			optimized: "new content here",
			expected: []types.DiffToken{
				tok(types.DiffAdded, "new"),
				tok(types.DiffAdded, "content"),
				tok(types.DiffAdded, "here"),
			},
		},
		{
			name:      "empty optimized is all removals",
			original:  "old content",
			optimized: "",
			expected: []types.DiffToken{
				tok(types.DiffRemoved, "old"),
				tok(types.DiffRemoved, "content"),
			},
		},
		{
			name:      "both empty",
			original:  "",
			optimized: "",
			expected:  []types.DiffToken{},
		},
		{
			name:      "diff is case sensitive",
			original:  "Python developer",
			optimized: "python developer",
			expected: []types.DiffToken{
				tok(types.DiffRemoved, "Python"),
				tok(types.DiffAdded, "python"),
				tok(types.DiffUnchanged, "developer"),
			},
		},
		{
			name:      "whitespace runs collapse",
			original:  "one\ttwo\n three",
			optimized: "one two three",
			expected: []types.DiffToken{
				tok(types.DiffUnchanged, "one"),
				tok(types.DiffUnchanged, "two"),
				tok(types.DiffUnchanged, "three"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.DiffWords(tt.original, tt.optimized)

			if len(tt.expected) == 0 && len(result.Tokens) == 0 {
				return
			}
			if !reflect.DeepEqual(result.Tokens, tt.expected) {
				t.Errorf("expected tokens %v, got %v", tt.expected, result.Tokens)
			}
		})
	}
}

func TestDiffWordsSummary(t *testing.T) {
	svc := newTestService()

	result := svc.DiffWords("fast learner who ships", "quick learner who ships daily")

	expected := types.DiffSummary{Added: 2, Removed: 1, Unchanged: 3}
	if result.Summary != expected {
		t.Errorf("expected summary %+v, got %+v", expected, result.Summary)
	}
	if len(result.Tokens) != 6 {
		t.Errorf("expected 6 tokens, got %d", len(result.Tokens))
	}
}

// The diff must be reconstructive: dropping added tokens yields the
// original, dropping removed tokens yields the optimized text.
func TestDiffWordsReconstruction(t *testing.T) {
	svc := newTestService()

	pairs := []struct {
		original  string
		optimized string
	}{
		{"fast learner", "quick learner"},
		{"led a small team building internal tools", "led a distributed team building customer tools"},
		{"", "entirely new"},
		{"entirely gone", ""},
		{"a a a b", "a b a"},
	}

	for _, pair := range pairs {
		result := svc.DiffWords(pair.original, pair.optimized)

		var fromRemoved, fromAdded []string
		for _, token := range result.Tokens {
			switch token.Type {
			case types.DiffRemoved:
				fromRemoved = append(fromRemoved, token.Word)
			case types.DiffAdded:
				fromAdded = append(fromAdded, token.Word)
			default:
				fromRemoved = append(fromRemoved, token.Word)
				fromAdded = append(fromAdded, token.Word)
			}
		}

		if got, want := strings.Join(fromRemoved, " "), strings.Join(strings.Fields(pair.original), " "); got != want {
			t.Errorf("original not reconstructible: expected %q, got %q", want, got)
		}
		if got, want := strings.Join(fromAdded, " "), strings.Join(strings.Fields(pair.optimized), " "); got != want {
			t.Errorf("optimized not reconstructible: expected %q, got %q", want, got)
		}
	}
}

func BenchmarkDiffWords(b *testing.B) {
	svc := newTestService()
	original := strings.Repeat("managed cross functional team delivering quarterly roadmap ", 20)
	optimized := strings.Repeat("led cross functional team shipping quarterly roadmap ", 20)

	for b.Loop() {
		svc.DiffWords(original, optimized)
	}
}

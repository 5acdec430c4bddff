package engine

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercases and splits on punctuation",
			input:    "Senior Engineer, Backend (Go)",
			expected: []string{"senior", "engineer", "backend", "go"},
		},
		{
			name:     "keeps tech-name runes",
			input:    "C++ / C# / Node.js",
			expected: []string{"c++", "c#", "node.js"},
		},
		{
			name:     "trims sentence-final dots",
			input:    "Ship it. Ship it again.",
			expected: []string{"ship", "it", "ship", "it", "again"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "punctuation only",
			input:    "--- ,,, !!!",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		word     string
		expected string
	}{
		{"managing", "manag"},
		{"managed", "manag"},
		{"manage", "manag"},
		{"planning", "plan"},
		{"applied", "apply"},
		{"technologies", "technology"},
		{"developers", "developer"},
		{"passed", "pass"},
		{"go", "go"},
		{"sql", "sql"},
		{"process", "process"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := stem(tt.word); got != tt.expected {
				t.Errorf("stem(%q): expected %q, got %q", tt.word, tt.expected, got)
			}
		})
	}
}

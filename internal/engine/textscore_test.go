package engine

import (
	"reflect"
	"strings"
	"testing"
)

func TestScoreText(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name            string
		job             string
		resume          string
		expectedScore   int
		expectedMatched []string
		expectedMissing []string
	}{
		{
			name:            "frequency-ranked keywords, alphabetical output",
			job:             "Python developers build Python pipelines",
			resume:          "python developer",
			expectedScore:   50,
			expectedMatched: []string{"developers", "python"},
			expectedMissing: []string{"build", "pipelines"},
		},
		{
			name:            "stop words and short tokens are ignored",
			job:             "We are looking for a go developer with the required skills",
			resume:          "developer",
			expectedScore:   50,
			expectedMatched: []string{"developer"},
			expectedMissing: []string{"looking"},
		},
		{
			name:            "empty job description scores zero",
			job:             "",
			resume:          "python developer",
			expectedScore:   0,
			expectedMatched: []string{},
			expectedMissing: []string{},
		},
		{
			name:            "empty resume misses everything",
			job:             "kubernetes kubernetes terraform",
			resume:          "",
			expectedScore:   0,
			expectedMatched: []string{},
			expectedMissing: []string{"kubernetes", "terraform"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.ScoreText(tt.job, tt.resume)

			if result.Score != tt.expectedScore {
				t.Errorf("expected score %d, got %d", tt.expectedScore, result.Score)
			}
			if !reflect.DeepEqual(result.MatchedKeywords, tt.expectedMatched) {
				t.Errorf("expected matched %v, got %v", tt.expectedMatched, result.MatchedKeywords)
			}
			if !reflect.DeepEqual(result.MissingKeywords, tt.expectedMissing) {
				t.Errorf("expected missing %v, got %v", tt.expectedMissing, result.MissingKeywords)
			}
		})
	}
}

func TestScoreTextTopKeywordsLimit(t *testing.T) {
	svc := NewService(Options{TopKeywords: 2}, nil)

	// alpha appears three times, beta twice, gamma once; only the top two
	// survive the cut.
	job := "alpha alpha alpha beta beta gamma"
	result := svc.ScoreText(job, "alpha document")

	if !reflect.DeepEqual(result.MatchedKeywords, []string{"alpha"}) {
		t.Errorf("expected matched [alpha], got %v", result.MatchedKeywords)
	}
	if !reflect.DeepEqual(result.MissingKeywords, []string{"beta"}) {
		t.Errorf("expected missing [beta], got %v", result.MissingKeywords)
	}
	if result.Score != 50 {
		t.Errorf("expected score 50, got %d", result.Score)
	}
}

func TestScoreTextDefaultLimit(t *testing.T) {
	svc := newTestService()

	// 50 distinct terms; only DefaultTopKeywords of them count.
	var terms []string
	for _, prefix := range []string{"term", "word"} {
		for _, suffix := range []string{"aa", "ab", "ac", "ad", "ae", "af", "ag", "ah", "ai", "aj",
			"ba", "bb", "bc", "bd", "be", "bf", "bg", "bh", "bi", "bj",
			"ca", "cb", "cc", "cd", "ce"} {
			terms = append(terms, prefix+suffix)
		}
	}
	result := svc.ScoreText(strings.Join(terms, " "), "")

	total := len(result.MatchedKeywords) + len(result.MissingKeywords)
	if total != DefaultTopKeywords {
		t.Errorf("expected %d candidate keywords, got %d", DefaultTopKeywords, total)
	}
}

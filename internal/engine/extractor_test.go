package engine

import (
	"reflect"
	"testing"
)

func newTestService() *Service {
	return NewService(Options{}, nil)
}

func TestExtractKeywords(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name     string
		input    string
		expected map[Category][]string
	}{
		{
			name:  "single-word terms across categories",
			input: "We need Python and Docker experience plus strong communication. You will develop new services.",
			expected: map[Category][]string{
				CategoryTechnical: {"python"},
				CategoryTools:     {"docker"},
				CategorySoft:      {"communication"},
				CategoryVerbs:     {"develop"},
			},
		},
		{
			name:  "multi-word phrase wins over its words",
			input: "Experience with machine learning pipelines",
			expected: map[Category][]string{
				CategoryTechnical: {"machine learning"},
			},
		},
		{
			name:  "case insensitive",
			input: "PYTHON, Kubernetes, LEADERSHIP",
			expected: map[Category][]string{
				CategoryTechnical: {"python"},
				CategoryTools:     {"kubernetes"},
				CategorySoft:      {"leadership"},
			},
		},
		{
			name:  "duplicates reported once in first-seen order",
			input: "Python and Java. More Python. Java again, then Go.",
			expected: map[Category][]string{
				CategoryTechnical: {"python", "java", "go"},
			},
		},
		{
			name:  "inflected action verbs match by stem",
			input: "You will be developing features and managing releases",
			expected: map[Category][]string{
				CategoryVerbs: {"develop", "manage"},
			},
		},
		{
			name:  "punctuated tech names survive tokenization",
			input: "Strong C++ and C# background, Node.js a plus",
			expected: map[Category][]string{
				CategoryTechnical: {"c++", "c#", "node.js"},
			},
		},
		{
			name:     "empty input yields empty categories",
			input:    "",
			expected: map[Category][]string{},
		},
		{
			name:     "no vocabulary terms present",
			input:    "lorem ipsum dolor sit amet",
			expected: map[Category][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw := svc.ExtractKeywords(tt.input)

			got := map[Category][]string{
				CategoryTechnical: kw.TechnicalSkills,
				CategoryTools:     kw.Tools,
				CategorySoft:      kw.SoftSkills,
				CategoryVerbs:     kw.ActionVerbs,
			}
			for cat, list := range got {
				want := tt.expected[cat]
				if len(want) == 0 && len(list) == 0 {
					continue
				}
				if !reflect.DeepEqual(list, want) {
					t.Errorf("category %d: expected %v, got %v", cat, want, list)
				}
			}
		})
	}
}

func TestExtractKeywordsNeverNil(t *testing.T) {
	kw := newTestService().ExtractKeywords("")

	// Empty categories must be empty slices, not nil, so JSON renders [].
	for name, list := range map[string][]string{
		"technical_skills": kw.TechnicalSkills,
		"tools":            kw.Tools,
		"soft_skills":      kw.SoftSkills,
		"action_verbs":     kw.ActionVerbs,
	} {
		if list == nil {
			t.Errorf("%s: expected empty slice, got nil", name)
		}
		if len(list) != 0 {
			t.Errorf("%s: expected no keywords, got %v", name, list)
		}
	}
}

func TestExtractKeywordsCustomVocabulary(t *testing.T) {
	svc := NewService(Options{
		Vocabulary: VocabularyLists{
			TechnicalSkills: []string{"quantum computing"},
			Tools:           []string{"internal-deploy-tool"},
		},
	}, nil)

	kw := svc.ExtractKeywords("We use quantum computing research and internal-deploy-tool daily, plus Python.")

	if !reflect.DeepEqual(kw.TechnicalSkills, []string{"quantum computing", "python"}) {
		t.Errorf("expected custom technical term merged with defaults, got %v", kw.TechnicalSkills)
	}
	if !reflect.DeepEqual(kw.Tools, []string{"internal deploy tool"}) {
		t.Errorf("expected normalized custom tool, got %v", kw.Tools)
	}
}

func TestExtractKeywordsCategoryPriority(t *testing.T) {
	// A term listed in two custom categories lands in the higher-priority
	// one only.
	svc := NewService(Options{
		Vocabulary: VocabularyLists{
			TechnicalSkills: []string{"orchestration"},
			SoftSkills:      []string{"orchestration"},
		},
	}, nil)

	kw := svc.ExtractKeywords("orchestration expertise")

	if !reflect.DeepEqual(kw.TechnicalSkills, []string{"orchestration"}) {
		t.Errorf("expected orchestration as technical skill, got %v", kw.TechnicalSkills)
	}
	if len(kw.SoftSkills) != 0 {
		t.Errorf("expected no soft skills, got %v", kw.SoftSkills)
	}
}

func BenchmarkExtractKeywords(b *testing.B) {
	svc := newTestService()
	job := "Senior engineer: Python, Go, Docker, Kubernetes, PostgreSQL, machine learning, " +
		"strong communication and leadership. You will design, build and deploy distributed systems."

	for b.Loop() {
		svc.ExtractKeywords(job)
	}
}

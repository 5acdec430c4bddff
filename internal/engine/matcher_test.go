package engine

import (
	"reflect"
	"testing"

	"resumatch/internal/types"
)

func TestMatchResumeText(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name            string
		resume          string
		keywords        types.ExtractedKeywords
		expectedScore   int
		expectedMatched []string
		expectedMissing []string
	}{
		{
			name:   "half the keywords present",
			resume: "Senior developer with 5 years of Python experience",
			keywords: types.ExtractedKeywords{
				TechnicalSkills: []string{"python", "react"},
			},
			expectedScore:   50,
			expectedMatched: []string{"python"},
			expectedMissing: []string{"react"},
		},
		{
			name:   "all keywords present",
			resume: "Python and Docker, strong communication",
			keywords: types.ExtractedKeywords{
				TechnicalSkills: []string{"python"},
				Tools:           []string{"docker"},
				SoftSkills:      []string{"communication"},
			},
			expectedScore:   100,
			expectedMatched: []string{"python", "docker", "communication"},
			expectedMissing: []string{},
		},
		{
			name:   "no keywords present",
			resume: "Accountant with payroll background",
			keywords: types.ExtractedKeywords{
				TechnicalSkills: []string{"python", "go"},
			},
			expectedScore:   0,
			expectedMatched: []string{},
			expectedMissing: []string{"python", "go"},
		},
		{
			name:            "empty keyword set scores zero",
			resume:          "Python developer",
			keywords:        types.ExtractedKeywords{},
			expectedScore:   0,
			expectedMatched: []string{},
			expectedMissing: []string{},
		},
		{
			name:   "match is case insensitive",
			resume: "PYTHON EXPERT",
			keywords: types.ExtractedKeywords{
				TechnicalSkills: []string{"python"},
			},
			expectedScore:   100,
			expectedMatched: []string{"python"},
			expectedMissing: []string{},
		},
		{
			name:   "single-word keyword matches inflected form",
			resume: "Managed a team of six engineers",
			keywords: types.ExtractedKeywords{
				ActionVerbs: []string{"manage"},
			},
			expectedScore:   100,
			expectedMatched: []string{"manage"},
			expectedMissing: []string{},
		},
		{
			name:   "multi-word keyword needs the full phrase",
			resume: "Built several machine pipelines for learning platforms",
			keywords: types.ExtractedKeywords{
				TechnicalSkills: []string{"machine learning"},
			},
			expectedScore:   0,
			expectedMatched: []string{},
			expectedMissing: []string{"machine learning"},
		},
		{
			name:   "rounding to nearest integer",
			resume: "python go",
			keywords: types.ExtractedKeywords{
				TechnicalSkills: []string{"python", "go", "rust"},
			},
			expectedScore:   67,
			expectedMatched: []string{"python", "go"},
			expectedMissing: []string{"rust"},
		},
		{
			name:   "duplicate keywords across categories counted once",
			resume: "python shop",
			keywords: types.ExtractedKeywords{
				TechnicalSkills: []string{"python"},
				Tools:           []string{"python"},
			},
			expectedScore:   100,
			expectedMatched: []string{"python"},
			expectedMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.MatchResumeText(tt.resume, tt.keywords)

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

func TestMatchResumeStructuredFields(t *testing.T) {
	svc := newTestService()

	resume := types.ParsedResume{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Skills: []string{"Python", "PostgreSQL"},
		Experience: []types.Experience{
			{
				Title:            "Backend Engineer",
				Company:          "Analytical Engines Ltd",
				Duration:         "2021-2024",
				Responsibilities: []string{"Built Docker-based deploy pipeline"},
			},
		},
		Education: []types.Education{
			{Degree: "BSc Mathematics", Institution: "Cambridge", Year: "2018"},
		},
	}
	keywords := types.ExtractedKeywords{
		TechnicalSkills: []string{"python"},
		Tools:           []string{"postgresql", "docker", "kubernetes"},
		SoftSkills:      []string{"mathematics"},
	}

	result := svc.MatchResume(resume, keywords)

	// Skills, responsibilities and education all contribute searchable text.
	expectedMatched := []string{"python", "postgresql", "docker", "mathematics"}
	if !reflect.DeepEqual(result.MatchedKeywords, expectedMatched) {
		t.Errorf("expected matched %v, got %v", expectedMatched, result.MatchedKeywords)
	}
	if !reflect.DeepEqual(result.MissingKeywords, []string{"kubernetes"}) {
		t.Errorf("expected missing [kubernetes], got %v", result.MissingKeywords)
	}
	if result.Score != 80 {
		t.Errorf("expected score 80, got %d", result.Score)
	}
}

func TestAnalyzeMatch(t *testing.T) {
	svc := newTestService()

	resume := types.ParsedResume{Skills: []string{"Python", "Docker"}}
	job := "Looking for Python and Docker plus Terraform"

	kw, result := svc.AnalyzeMatch(resume, job)

	if len(kw.TechnicalSkills) == 0 || kw.TechnicalSkills[0] != "python" {
		t.Errorf("expected python extracted, got %v", kw.TechnicalSkills)
	}
	if !reflect.DeepEqual(result.MissingKeywords, []string{"terraform"}) {
		t.Errorf("expected missing [terraform], got %v", result.MissingKeywords)
	}
	if result.Score != 67 {
		t.Errorf("expected score 67, got %d", result.Score)
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"resumatch/internal/engine"
	"resumatch/internal/observability"
	"resumatch/internal/types"
)

func newMatchHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{}, nil)
	if err != nil {
		t.Fatalf("Failed to create observability manager: %v", err)
	}
	s := newTestServer()
	s.Engine = engine.NewService(engine.Options{}, nil)
	return s.createMatchHandler(om)
}

func postMatch(t *testing.T, handler http.HandlerFunc, req MatchRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/match", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	handler(w, r)
	return w
}

func TestMatchHandlerSuppliedKeywords(t *testing.T) {
	handler := newMatchHandler(t)

	// No jobDescription at all: the supplied keyword sets must be used as-is.
	w := postMatch(t, handler, MatchRequest{
		ResumeText: "Go developer with Docker experience",
		Keywords: &types.ExtractedKeywords{
			TechnicalSkills: []string{"go", "rust"},
			Tools:           []string{"docker"},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result types.MatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !slices.Equal(result.MatchedKeywords, []string{"go", "docker"}) {
		t.Errorf("Expected matched [go docker], got %v", result.MatchedKeywords)
	}
	if !slices.Equal(result.MissingKeywords, []string{"rust"}) {
		t.Errorf("Expected missing [rust], got %v", result.MissingKeywords)
	}
	if result.Score != 67 {
		t.Errorf("Expected score 67, got %d", result.Score)
	}
}

func TestMatchHandlerSuppliedKeywordsStructuredResume(t *testing.T) {
	handler := newMatchHandler(t)

	w := postMatch(t, handler, MatchRequest{
		Resume: &types.ParsedResume{
			Name:   "Sam Doe",
			Skills: []string{"Kubernetes", "Terraform"},
		},
		Keywords: &types.ExtractedKeywords{
			TechnicalSkills: []string{"kubernetes"},
			Tools:           []string{"jenkins"},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result types.MatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !slices.Equal(result.MatchedKeywords, []string{"kubernetes"}) {
		t.Errorf("Expected matched [kubernetes], got %v", result.MatchedKeywords)
	}
	if !slices.Equal(result.MissingKeywords, []string{"jenkins"}) {
		t.Errorf("Expected missing [jenkins], got %v", result.MissingKeywords)
	}
	if result.Score != 50 {
		t.Errorf("Expected score 50, got %d", result.Score)
	}
}

func TestMatchHandlerMissingKeywordsAndJobDescription(t *testing.T) {
	handler := newMatchHandler(t)

	w := postMatch(t, handler, MatchRequest{ResumeText: "Go developer"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestMatchHandlerExtractsWhenKeywordsAbsent(t *testing.T) {
	handler := newMatchHandler(t)

	w := postMatch(t, handler, MatchRequest{
		ResumeText:     "Senior Python engineer",
		JobDescription: "Looking for Python experience",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result types.MatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !slices.Contains(result.MatchedKeywords, "python") {
		t.Errorf("Expected python among matched keywords, got %v", result.MatchedKeywords)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadKeywordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	content := `{"technical_skills": ["go", "rust"], "tools": ["docker"]}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write keywords file: %v", err)
	}

	kw, err := loadKeywordsFile(path)
	if err != nil {
		t.Fatalf("Failed to load keywords file: %v", err)
	}
	if !slices.Equal(kw.TechnicalSkills, []string{"go", "rust"}) {
		t.Errorf("Expected technical skills [go rust], got %v", kw.TechnicalSkills)
	}
	if !slices.Equal(kw.Tools, []string{"docker"}) {
		t.Errorf("Expected tools [docker], got %v", kw.Tools)
	}
}

func TestLoadKeywordsFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatalf("Failed to write keywords file: %v", err)
	}

	if _, err := loadKeywordsFile(path); err == nil {
		t.Errorf("Expected error for malformed keywords file")
	}
}

func TestLoadKeywordsFileMissing(t *testing.T) {
	if _, err := loadKeywordsFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Errorf("Expected error for missing keywords file")
	}
}

func TestParseResumeContent(t *testing.T) {
	resume, text, err := parseResumeContent("  {\"name\": \"Sam Doe\", \"skills\": [\"Go\"]}")
	if err != nil {
		t.Fatalf("Failed to parse JSON resume: %v", err)
	}
	if resume == nil || resume.Name != "Sam Doe" {
		t.Errorf("Expected structured resume for Sam Doe, got %+v", resume)
	}
	if text != "" {
		t.Errorf("Expected empty text for JSON resume, got %q", text)
	}

	resume, text, err = parseResumeContent("Plain text resume")
	if err != nil {
		t.Fatalf("Failed to parse plain resume: %v", err)
	}
	if resume != nil {
		t.Errorf("Expected nil structured resume for plain text")
	}
	if text != "Plain text resume" {
		t.Errorf("Expected plain text passthrough, got %q", text)
	}

	if _, _, err := parseResumeContent("{broken"); err == nil {
		t.Errorf("Expected error for malformed JSON resume")
	}
}

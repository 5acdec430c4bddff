package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeVocabFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write vocabulary file: %v", err)
	}
	return path
}

func TestLoadVocabularyFromFiles(t *testing.T) {
	dir := t.TempDir()

	skillsFile := writeVocabFile(t, dir, "skills.txt", "# internal stack\nquantum computing\nerlang\n\n  elixir  \n")
	verbsFile := writeVocabFile(t, dir, "verbs.txt", "spearhead\norchestrate\n")

	cfg := &Config{}
	cfg.Engine.Vocabulary.TechnicalSkills = []string{"cobol"}
	cfg.Engine.Vocabulary.TechnicalSkillsFile = skillsFile
	cfg.Engine.Vocabulary.ActionVerbsFile = verbsFile

	if err := cfg.validateVocabularyFiles(); err != nil {
		t.Fatalf("Expected validation to pass, got: %v", err)
	}
	if err := cfg.loadVocabularyFromFiles(); err != nil {
		t.Fatalf("Expected loading to succeed, got: %v", err)
	}

	// File terms append after inline terms; comments and blanks are skipped.
	expectedSkills := []string{"cobol", "quantum computing", "erlang", "elixir"}
	if !reflect.DeepEqual(cfg.Engine.Vocabulary.TechnicalSkills, expectedSkills) {
		t.Errorf("Expected technical skills %v, got %v", expectedSkills, cfg.Engine.Vocabulary.TechnicalSkills)
	}
	expectedVerbs := []string{"spearhead", "orchestrate"}
	if !reflect.DeepEqual(cfg.Engine.Vocabulary.ActionVerbs, expectedVerbs) {
		t.Errorf("Expected action verbs %v, got %v", expectedVerbs, cfg.Engine.Vocabulary.ActionVerbs)
	}
}

func TestValidateVocabularyFilesMissing(t *testing.T) {
	cfg := &Config{}
	cfg.Engine.Vocabulary.ToolsFile = filepath.Join(t.TempDir(), "does-not-exist.txt")
	cfg.Engine.Vocabulary.SoftSkillsFile = filepath.Join(t.TempDir(), "also-missing.txt")

	err := cfg.validateVocabularyFiles()
	if err == nil {
		t.Fatalf("Expected validation error for missing files")
	}
	// Both problems should surface in one pass.
	if !strings.Contains(err.Error(), "tools vocabulary file not found") {
		t.Errorf("Expected tools file error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "softSkills vocabulary file not found") {
		t.Errorf("Expected softSkills file error, got: %v", err)
	}
}

func TestLoadVocabularyFileEmpty(t *testing.T) {
	dir := t.TempDir()
	emptyFile := writeVocabFile(t, dir, "empty.txt", "# only a comment\n\n")

	cfg := &Config{}
	cfg.Engine.Vocabulary.ToolsFile = emptyFile

	err := cfg.loadVocabularyFromFiles()
	if err == nil {
		t.Fatalf("Expected error for vocabulary file with no terms")
	}
	if !strings.Contains(err.Error(), "contains no terms") {
		t.Errorf("Expected 'contains no terms' error, got: %v", err)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := &Config{
		Engine: EngineConfig{
			TopKeywords: 25,
			Vocabulary: VocabularyConfig{
				TechnicalSkills: []string{"zig"},
				SoftSkills:      []string{"grit"},
			},
		},
	}

	opts := cfg.EngineOptions()

	if opts.TopKeywords != 25 {
		t.Errorf("Expected TopKeywords 25, got %d", opts.TopKeywords)
	}
	if !reflect.DeepEqual(opts.Vocabulary.TechnicalSkills, []string{"zig"}) {
		t.Errorf("Expected technical skills [zig], got %v", opts.Vocabulary.TechnicalSkills)
	}
	if !reflect.DeepEqual(opts.Vocabulary.SoftSkills, []string{"grit"}) {
		t.Errorf("Expected soft skills [grit], got %v", opts.Vocabulary.SoftSkills)
	}
}

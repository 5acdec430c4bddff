package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// vocabularyFileSpec pairs a configured file path with the inline list that
// receives its terms.
type vocabularyFileSpec struct {
	category string
	path     string
	target   *[]string
}

func (c *Config) vocabularyFileSpecs() []vocabularyFileSpec {
	voc := &c.Engine.Vocabulary
	return []vocabularyFileSpec{
		{"technicalSkills", voc.TechnicalSkillsFile, &voc.TechnicalSkills},
		{"tools", voc.ToolsFile, &voc.Tools},
		{"softSkills", voc.SoftSkillsFile, &voc.SoftSkills},
		{"actionVerbs", voc.ActionVerbsFile, &voc.ActionVerbs},
	}
}

// validateVocabularyFiles checks that configured vocabulary files exist
// before any loading is attempted, so all path problems surface at once.
func (c *Config) validateVocabularyFiles() error {
	var validationErrors []string

	for _, spec := range c.vocabularyFileSpecs() {
		if spec.path == "" {
			continue
		}
		absPath, err := filepath.Abs(spec.path)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s vocabulary: %s", spec.category, spec.path))
			continue
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s vocabulary file not found: %s", spec.category, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("vocabulary file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}
	return nil
}

// loadVocabularyFromFiles reads custom vocabulary terms from external files
// and appends them to the corresponding inline lists.
func (c *Config) loadVocabularyFromFiles() error {
	loaded := 0
	for _, spec := range c.vocabularyFileSpecs() {
		if spec.path == "" {
			continue
		}
		terms, err := loadVocabularyFile(spec.path, spec.category)
		if err != nil {
			return err
		}
		*spec.target = append(*spec.target, terms...)
		loaded += len(terms)
	}

	if loaded > 0 {
		log.Printf("[CONFIG] Loaded %d custom vocabulary terms from files", loaded)
	}
	return nil
}

// loadVocabularyFile parses one term per line; blank lines and lines
// starting with '#' are skipped.
func loadVocabularyFile(path, category string) ([]string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s vocabulary file '%s': %w", category, path, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s vocabulary file '%s': %w", category, absPath, err)
	}

	var terms []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}

	if len(terms) == 0 {
		return nil, fmt.Errorf("%s vocabulary file '%s' contains no terms", category, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s vocabulary from file: %s (%d terms)", category, absPath, len(terms))
	return terms, nil
}

package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumatch/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ExtractedKeywords", &KeywordsTextFormatter{})
	registry.RegisterFormatter("markdown", "ExtractedKeywords", &KeywordsMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchResult", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchResult", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "DiffResult", &DiffTextFormatter{})
	registry.RegisterFormatter("markdown", "DiffResult", &DiffMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ExtractedKeywords:
		return "ExtractedKeywords"
	case types.MatchResult:
		return "MatchResult"
	case types.DiffResult:
		return "DiffResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// writeKeywordSection writes one category section in text form
func writeKeywordSection(output *strings.Builder, title string, terms []string) {
	output.WriteString(title)
	output.WriteString(":\n")
	if len(terms) == 0 {
		output.WriteString("  (none)\n")
	}
	for _, term := range terms {
		output.WriteString(fmt.Sprintf("  - %s\n", term))
	}
	output.WriteString("\n")
}

// KeywordsTextFormatter handles text formatting for extracted keywords
type KeywordsTextFormatter struct{}

func (ktf *KeywordsTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractedKeywords)
	if !ok {
		return "", fmt.Errorf("expected ExtractedKeywords, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== EXTRACTED KEYWORDS ===\n\n")
	writeKeywordSection(&output, "Technical Skills", result.TechnicalSkills)
	writeKeywordSection(&output, "Tools", result.Tools)
	writeKeywordSection(&output, "Soft Skills", result.SoftSkills)
	writeKeywordSection(&output, "Action Verbs", result.ActionVerbs)

	return output.String(), nil
}

func (ktf *KeywordsTextFormatter) SupportedType() string {
	return "ExtractedKeywords"
}

// KeywordsMarkdownFormatter handles markdown formatting for extracted keywords
type KeywordsMarkdownFormatter struct{}

func (kmf *KeywordsMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractedKeywords)
	if !ok {
		return "", fmt.Errorf("expected ExtractedKeywords, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Extracted Keywords\n\n")
	sections := []struct {
		title string
		terms []string
	}{
		{"Technical Skills", result.TechnicalSkills},
		{"Tools", result.Tools},
		{"Soft Skills", result.SoftSkills},
		{"Action Verbs", result.ActionVerbs},
	}
	for _, section := range sections {
		output.WriteString("## " + section.title + "\n\n")
		if len(section.terms) == 0 {
			output.WriteString("_none_\n")
		}
		for _, term := range section.terms {
			output.WriteString(fmt.Sprintf("- %s\n", term))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (kmf *KeywordsMarkdownFormatter) SupportedType() string {
	return "ExtractedKeywords"
}

// MatchTextFormatter handles text formatting for match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS MATCH RESULT ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n\n", result.Score))
	writeKeywordSection(&output, "Matched Keywords", result.MatchedKeywords)
	writeKeywordSection(&output, "Missing Keywords", result.MissingKeywords)

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchResult"
}

// MatchMarkdownFormatter handles markdown formatting for match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Match Result\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.Score))

	output.WriteString("## Matched Keywords\n\n")
	if len(result.MatchedKeywords) == 0 {
		output.WriteString("_none_\n")
	}
	for _, term := range result.MatchedKeywords {
		output.WriteString(fmt.Sprintf("- %s\n", term))
	}
	output.WriteString("\n## Missing Keywords\n\n")
	if len(result.MissingKeywords) == 0 {
		output.WriteString("_none_\n")
	}
	for _, term := range result.MissingKeywords {
		output.WriteString(fmt.Sprintf("- %s\n", term))
	}
	output.WriteString("\n")

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchResult"
}

// DiffTextFormatter handles text formatting for word diffs. Removed words
// are wrapped in [-...-], added words in {+...+}.
type DiffTextFormatter struct{}

func (dtf *DiffTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.DiffResult)
	if !ok {
		return "", fmt.Errorf("expected DiffResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== WORD DIFF ===\n\n")
	words := make([]string, 0, len(result.Tokens))
	for _, token := range result.Tokens {
		switch token.Type {
		case types.DiffAdded:
			words = append(words, "{+"+token.Word+"+}")
		case types.DiffRemoved:
			words = append(words, "[-"+token.Word+"-]")
		default:
			words = append(words, token.Word)
		}
	}
	output.WriteString(strings.Join(words, " "))
	output.WriteString("\n\n")
	output.WriteString(fmt.Sprintf("Added: %d, Removed: %d, Unchanged: %d\n",
		result.Summary.Added, result.Summary.Removed, result.Summary.Unchanged))

	return output.String(), nil
}

func (dtf *DiffTextFormatter) SupportedType() string {
	return "DiffResult"
}

// DiffMarkdownFormatter handles markdown formatting for word diffs
type DiffMarkdownFormatter struct{}

func (dmf *DiffMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.DiffResult)
	if !ok {
		return "", fmt.Errorf("expected DiffResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Word Diff\n\n")
	words := make([]string, 0, len(result.Tokens))
	for _, token := range result.Tokens {
		switch token.Type {
		case types.DiffAdded:
			words = append(words, "**"+token.Word+"**")
		case types.DiffRemoved:
			words = append(words, "~~"+token.Word+"~~")
		default:
			words = append(words, token.Word)
		}
	}
	output.WriteString(strings.Join(words, " "))
	output.WriteString("\n\n")
	output.WriteString(fmt.Sprintf("**Added:** %d | **Removed:** %d | **Unchanged:** %d\n",
		result.Summary.Added, result.Summary.Removed, result.Summary.Unchanged))

	return output.String(), nil
}

func (dmf *DiffMarkdownFormatter) SupportedType() string {
	return "DiffResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()

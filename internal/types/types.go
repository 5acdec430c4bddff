package types

// ExtractedKeywords holds categorized keywords pulled from a job description.
// Each category is case-insensitively deduplicated and preserves first-seen
// order. A term never appears in more than one category; conflicts are
// resolved by category priority (technical skills first, action verbs last).
type ExtractedKeywords struct {
	TechnicalSkills []string `json:"technical_skills"`
	Tools           []string `json:"tools"`
	SoftSkills      []string `json:"soft_skills"`
	ActionVerbs     []string `json:"action_verbs"`
}

// IsEmpty reports whether all four categories are empty.
func (k ExtractedKeywords) IsEmpty() bool {
	return len(k.TechnicalSkills) == 0 && len(k.Tools) == 0 &&
		len(k.SoftSkills) == 0 && len(k.ActionVerbs) == 0
}

// ParsedResume is the structured resume representation the matcher consumes.
// Parsing files into this shape is the caller's responsibility.
type ParsedResume struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// Experience represents a single employment entry in a resume.
type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// Education represents a single education entry in a resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// MatchResult is the outcome of scoring a resume against job keywords.
// MatchedKeywords and MissingKeywords partition the job keyword union and
// both preserve job-keyword order.
type MatchResult struct {
	Score           int      `json:"ats_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// DiffType classifies a single word in a word-level diff.
type DiffType string

const (
	DiffAdded     DiffType = "added"
	DiffRemoved   DiffType = "removed"
	DiffUnchanged DiffType = "unchanged"
)

// DiffToken is one word of the edit script aligning original and optimized
// resume text. Concatenating the words of all non-removed tokens reproduces
// the optimized text's word sequence; non-added tokens reproduce the original.
type DiffToken struct {
	Type DiffType `json:"type"`
	Word string   `json:"word"`
}

// DiffSummary counts tokens by type for a computed diff.
type DiffSummary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// DiffResult is the full output of the word diff engine.
type DiffResult struct {
	Tokens  []DiffToken `json:"tokens"`
	Summary DiffSummary `json:"summary"`
}

// ExtractKeywordsInput represents the input for keyword extraction.
type ExtractKeywordsInput struct {
	JobDescription string `json:"jobDescription"`
}

// MatchResumeInput represents the input for resume matching. Keywords may be
// supplied directly; when absent they are extracted from JobDescription.
type MatchResumeInput struct {
	Resume         ParsedResume       `json:"resume"`
	Keywords       *ExtractedKeywords `json:"keywords,omitempty"`
	JobDescription string             `json:"jobDescription,omitempty"`
}

// DiffWordsInput represents the input for the word diff engine.
type DiffWordsInput struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
}

// ScoreTextInput represents the input for frequency-based text scoring.
type ScoreTextInput struct {
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
}

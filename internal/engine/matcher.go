package engine

import (
	"math"
	"strings"

	"resumatch/internal/types"
)

// MatchResume scores a structured resume against extracted job keywords.
// Every field of the resume contributes to the searchable text.
func (s *Service) MatchResume(resume types.ParsedResume, keywords types.ExtractedKeywords) types.MatchResult {
	return matchAgainst(flattenResume(resume), keywords)
}

// MatchResumeText scores raw resume text against extracted job keywords.
func (s *Service) MatchResumeText(resumeText string, keywords types.ExtractedKeywords) types.MatchResult {
	return matchAgainst(resumeText, keywords)
}

// flattenResume concatenates all textual fields of a resume into one
// searchable blob.
func flattenResume(r types.ParsedResume) string {
	var b strings.Builder
	add := func(parts ...string) {
		for _, p := range parts {
			if p == "" {
				continue
			}
			b.WriteString(p)
			b.WriteByte('\n')
		}
	}
	add(r.Name, r.Email, r.Phone)
	add(r.Skills...)
	for _, exp := range r.Experience {
		add(exp.Title, exp.Company, exp.Duration)
		add(exp.Responsibilities...)
	}
	for _, edu := range r.Education {
		add(edu.Degree, edu.Institution, edu.Year)
	}
	return b.String()
}

// keywordUnion flattens all four keyword categories into one ordered list,
// deduplicated, preserving category priority order.
func keywordUnion(kw types.ExtractedKeywords) []string {
	var union []string
	seen := make(map[string]bool)
	for _, list := range [][]string{kw.TechnicalSkills, kw.Tools, kw.SoftSkills, kw.ActionVerbs} {
		for _, term := range list {
			term = strings.ToLower(term)
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			union = append(union, term)
		}
	}
	return union
}

// matchAgainst computes the ATS score: the rounded percentage of job
// keywords present in the searchable text. Single-word keywords also match
// by stem, so "manage" finds "managed".
func matchAgainst(searchable string, kw types.ExtractedKeywords) types.MatchResult {
	union := keywordUnion(kw)
	result := types.MatchResult{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
	}
	if len(union) == 0 {
		return result
	}

	flat := strings.ToLower(searchable)
	stems := stemSet(flat)
	for _, term := range union {
		present := strings.Contains(flat, term)
		if !present && !strings.Contains(term, " ") {
			present = stems[stem(term)]
		}
		if present {
			result.MatchedKeywords = append(result.MatchedKeywords, term)
		} else {
			result.MissingKeywords = append(result.MissingKeywords, term)
		}
	}
	result.Score = roundPercent(len(result.MatchedKeywords), len(union))
	return result
}

// roundPercent returns round(100*part/total), 0 when total is zero.
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

package engine

import (
	"sort"

	"resumatch/internal/types"
)

// DefaultTopKeywords bounds how many frequent job-description terms the
// text scorer compares against.
const DefaultTopKeywords = 40

// ScoreText computes an ATS score without any vocabulary: the most frequent
// content words of the job description become the keyword set, and the
// resume text is checked for each. Matched and missing lists come back
// alphabetically sorted.
func (s *Service) ScoreText(jobDescription, resumeText string) types.MatchResult {
	result := types.MatchResult{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
	}

	freq := make(map[string]int)
	order := make(map[string]int)
	for i, tok := range contentTokens(jobDescription) {
		if _, ok := freq[tok]; !ok {
			order[tok] = i
		}
		freq[tok]++
	}
	if len(freq) == 0 {
		return result
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	// Most frequent first; ties go to the term seen earlier in the text.
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return order[terms[i]] < order[terms[j]]
	})
	if len(terms) > s.topKeywords {
		terms = terms[:s.topKeywords]
	}

	resumeWords := make(map[string]bool)
	resumeStems := make(map[string]bool)
	for _, tok := range tokenize(resumeText) {
		resumeWords[tok] = true
		resumeStems[stem(tok)] = true
	}

	for _, term := range terms {
		if resumeWords[term] || resumeStems[stem(term)] {
			result.MatchedKeywords = append(result.MatchedKeywords, term)
		} else {
			result.MissingKeywords = append(result.MissingKeywords, term)
		}
	}
	sort.Strings(result.MatchedKeywords)
	sort.Strings(result.MissingKeywords)
	result.Score = roundPercent(len(result.MatchedKeywords), len(terms))
	return result
}

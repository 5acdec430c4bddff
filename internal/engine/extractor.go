package engine

import (
	"strings"

	"resumatch/internal/types"
)

// maxPhraseWindow bounds the n-gram scan; no built-in term is longer than
// four words.
const maxPhraseWindow = 4

// ExtractKeywords scans a job description for known vocabulary terms and
// groups them by category. Longer phrases win over their constituent words:
// "machine learning" is reported once as a technical skill, not as two
// unrelated tokens. Order within each category follows first appearance in
// the text.
func (s *Service) ExtractKeywords(jobDescription string) types.ExtractedKeywords {
	kw := types.ExtractedKeywords{
		TechnicalSkills: []string{},
		Tools:           []string{},
		SoftSkills:      []string{},
		ActionVerbs:     []string{},
	}
	tokens := tokenize(jobDescription)
	seen := make(map[string]bool)

	add := func(e vocabEntry) {
		if seen[e.term] {
			return
		}
		seen[e.term] = true
		switch e.category {
		case CategoryTechnical:
			kw.TechnicalSkills = append(kw.TechnicalSkills, e.term)
		case CategoryTools:
			kw.Tools = append(kw.Tools, e.term)
		case CategorySoft:
			kw.SoftSkills = append(kw.SoftSkills, e.term)
		case CategoryVerbs:
			kw.ActionVerbs = append(kw.ActionVerbs, e.term)
		}
	}

	window := maxPhraseWindow
	if s.vocab.maxPhrase > window {
		window = s.vocab.maxPhrase
	}

	for i := 0; i < len(tokens); {
		matched := false
		limit := window
		if rest := len(tokens) - i; rest < limit {
			limit = rest
		}
		for n := limit; n >= 2; n-- {
			phrase := strings.Join(tokens[i:i+n], " ")
			if e, ok := s.vocab.lookupPhrase(phrase); ok {
				add(e)
				i += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if e, ok := s.vocab.lookupToken(tokens[i]); ok {
			add(e)
		}
		i++
	}
	return kw
}

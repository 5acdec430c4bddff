package engine

import (
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to keyword scoring.
var stopWords = map[string]bool{
	"and": true, "the": true, "are": true, "for": true, "from": true,
	"has": true, "have": true, "was": true, "were": true, "will": true,
	"with": true, "you": true, "your": true, "their": true, "they": true,
	"this": true, "that": true, "those": true, "these": true, "our": true,
	"role": true, "job": true, "work": true, "team": true, "skills": true,
	"experience": true, "years": true, "required": true, "preferred": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "its": true, "been": true,
	"each": true, "new": true, "use": true, "using": true, "used": true,
	"well": true, "able": true, "such": true, "join": true, "candidate": true,
}

// tokenize splits text into ordered lowercase word tokens. Letters, digits
// and the tech-name runes + # . are word characters, so "c++", "c#" and
// "node.js" survive as single tokens; trailing dots are trimmed.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// contentTokens returns tokens suitable for frequency scoring: at least three
// characters, starting with a letter, not a stop word.
func contentTokens(text string) []string {
	var out []string
	for _, tok := range tokenize(text) {
		if len(tok) < 3 || stopWords[tok] {
			continue
		}
		if r := rune(tok[0]); !unicode.IsLetter(r) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// stemSet returns the set of stemmed tokens in text, used for stem-based
// presence tests.
func stemSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenize(text) {
		set[stem(tok)] = true
	}
	return set
}

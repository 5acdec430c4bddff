package engine

import "strings"

// stem reduces a lowercase word to a light stem by stripping common English
// suffixes. It is deliberately crude: the same function is applied to both
// vocabulary terms and document tokens, so "managing", "managed" and "manage"
// all collapse to the same key without a full stemming algorithm.
func stem(w string) string {
	if len(w) < 4 {
		return w
	}
	switch {
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		w = undouble(w[:len(w)-3])
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		w = w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		w = w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		w = undouble(w[:len(w)-2])
	case strings.HasSuffix(w, "es") && len(w) > 4:
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		w = w[:len(w)-1]
	}
	// Drop a trailing e so "manage" and "managing" meet at "manag".
	if len(w) > 4 && strings.HasSuffix(w, "e") {
		w = w[:len(w)-1]
	}
	return w
}

// undouble collapses a doubled final consonant left over after suffix
// removal ("plann" -> "plan", "shipp" -> "ship").
func undouble(w string) string {
	n := len(w)
	if n < 3 {
		return w
	}
	last := w[n-1]
	if last != w[n-2] || last == 's' || isVowel(last) {
		return w
	}
	return w[:n-1]
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

package engine

import (
	"strings"

	"resumatch/internal/types"
)

// DiffWords computes a word-level diff between two texts using a longest
// common subsequence over whitespace-split words. Every word of both inputs
// appears exactly once in the output: common words as unchanged, the rest
// as removed (original only) or added (optimized only). At a replacement
// the removed word precedes the added one.
func (s *Service) DiffWords(original, optimized string) types.DiffResult {
	a := strings.Fields(original)
	b := strings.Fields(optimized)
	n, m := len(a), len(b)

	// dp[i][j] = LCS length of a[:i] and b[:j], flattened row-major.
	width := m + 1
	dp := make([]int, (n+1)*width)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				dp[i*width+j] = dp[(i-1)*width+j-1] + 1
			} else if dp[(i-1)*width+j] >= dp[i*width+j-1] {
				dp[i*width+j] = dp[(i-1)*width+j]
			} else {
				dp[i*width+j] = dp[i*width+j-1]
			}
		}
	}

	// Backtrace from the far corner, collecting tokens in reverse. Ties
	// prefer the added branch so the forward order reads removed, added.
	tokens := make([]types.DiffToken, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			tokens = append(tokens, types.DiffToken{Type: types.DiffUnchanged, Word: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i*width+j-1] >= dp[(i-1)*width+j]):
			tokens = append(tokens, types.DiffToken{Type: types.DiffAdded, Word: b[j-1]})
			j--
		default:
			tokens = append(tokens, types.DiffToken{Type: types.DiffRemoved, Word: a[i-1]})
			i--
		}
	}
	for l, r := 0, len(tokens)-1; l < r; l, r = l+1, r-1 {
		tokens[l], tokens[r] = tokens[r], tokens[l]
	}

	result := types.DiffResult{Tokens: tokens}
	for _, tok := range tokens {
		switch tok.Type {
		case types.DiffAdded:
			result.Summary.Added++
		case types.DiffRemoved:
			result.Summary.Removed++
		default:
			result.Summary.Unchanged++
		}
	}
	return result
}

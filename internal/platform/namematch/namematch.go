// Package namematch decides whether two free-text opponent names denote the
// same team, tolerating case, whitespace, and minor punctuation or typo
// differences.
package namematch

import (
	"strings"
	"unicode"
)

// DefaultThreshold is the similarity floor at which two names are
// considered the same opponent.
const DefaultThreshold = 0.7

// substringScore is the fixed tier for containment, covering pairs like
// "Titans" vs "Titans FC".
const substringScore = 0.8

// Normalize produces the canonical comparison form: trimmed, lowercased,
// whitespace runs collapsed to one space, and . , - _ stripped. The result
// is for comparison only, never display.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSpace := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case r == '.' || r == ',' || r == '-' || r == '_':
			// stripped
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Similarity scores two names in [0,1] over their normalized forms:
// identical 1.0, one-sided empty 0.0, containment 0.8, otherwise
// 1 - editDistance/maxLen.
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return substringScore
	}

	ra := []rune(na)
	rb := []rune(nb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	score := 1.0 - float64(editDistance(ra, rb))/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

// Match reports whether two names clear the threshold. A non-positive
// threshold selects DefaultThreshold.
func Match(a, b string, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Similarity(a, b) >= threshold
}

// BestMatch is the winning candidate of a FindBestMatch scan.
type BestMatch struct {
	Name       string
	Similarity float64
}

// FindBestMatch scans candidates for the highest-similarity name at or
// above the threshold. Ties keep the first-seen candidate: replacement
// requires a strictly greater score.
func FindBestMatch(input string, candidates []string, threshold float64) (BestMatch, bool) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if strings.TrimSpace(input) == "" || len(candidates) == 0 {
		return BestMatch{}, false
	}

	best := BestMatch{Similarity: -1}
	for _, candidate := range candidates {
		score := Similarity(input, candidate)
		if score > best.Similarity {
			best = BestMatch{Name: candidate, Similarity: score}
		}
	}

	if best.Similarity < threshold {
		return BestMatch{}, false
	}
	return best, true
}

// editDistance is the classic two-row Levenshtein computation with unit
// cost for insert, delete, and substitute.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			minimum := deletion
			if insertion < minimum {
				minimum = insertion
			}
			if substitution < minimum {
				minimum = substitution
			}
			curr[j] = minimum
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

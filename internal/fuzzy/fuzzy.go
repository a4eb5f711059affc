// Package fuzzy provides typo suggestions for unknown option names
// Used by optset/errors.go to build "did you mean" hints
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher provides fuzzy matching over option names.
// Distances are counted in runes, so non-ASCII names behave like ASCII ones.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a new fuzzy matcher with the given max edit distance
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // single letters are short options, nothing useful to suggest
	}
}

// Match represents a fuzzy match result
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// FindBest finds the best matching string from candidates
// Returns empty string if no good match found
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches finds all matching strings from candidates, sorted by quality.
// Ties keep candidate order.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	in := []rune(strings.ToLower(input))
	if len(in) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		cand := []rune(strings.ToLower(candidate))

		// Skip exact matches (not fuzzy)
		if string(in) == string(cand) {
			continue
		}

		distance := m.levenshteinDistance(in, cand)
		if distance <= m.maxDistance {
			matches = append(matches, Match{
				Value:    candidate,
				Distance: distance,
				Score:    m.calculateScore(in, cand, distance),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// maxRawScore is the sum of the weights in calculateScore
const maxRawScore = 1.0 + 0.3 + 0.2 + 0.1

// calculateScore computes a match quality score (0.0 to 1.0)
// Factors: edit distance, length difference, prefix matching, common characters.
// The sum is scaled rather than clamped so bonuses still separate close matches.
func (m *Matcher) calculateScore(input, candidate []rune, distance int) float64 {
	if distance > m.maxDistance {
		return 0.0
	}

	maxLen := max(len(input), len(candidate))
	if maxLen == 0 {
		return 1.0
	}

	editScore := 1.0 - (float64(distance) / float64(maxLen))

	prefixBonus := 0.0
	if prefixLen := commonPrefixLength(input, candidate); prefixLen > 0 {
		prefixBonus = float64(prefixLen) / float64(min(len(input), len(candidate))) * 0.3
	}

	lengthDiff := abs(len(input) - len(candidate))
	lengthBonus := (1.0 - float64(lengthDiff)/float64(maxLen)) * 0.2

	charBonus := float64(countCommonChars(input, candidate)) / float64(maxLen) * 0.1

	return (editScore + prefixBonus + lengthBonus + charBonus) / maxRawScore
}

// levenshteinDistance calculates edit distance between two rune slices.
// Returns maxDistance+1 as soon as the result is known to exceed maxDistance.
func (m *Matcher) levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	// two rows instead of the full matrix
	previousRow := make([]int, len(a)+1)
	currentRow := make([]int, len(a)+1)
	for i := range previousRow {
		previousRow[i] = i
	}

	for i := 1; i <= len(b); i++ {
		currentRow[0] = i
		minInRow := i

		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}

			currentRow[j] = min(
				currentRow[j-1]+1,     // insertion
				previousRow[j]+1,      // deletion
				previousRow[j-1]+cost, // substitution
			)
			minInRow = min(minInRow, currentRow[j])
		}

		if minInRow > m.maxDistance {
			return m.maxDistance + 1
		}

		previousRow, currentRow = currentRow, previousRow
	}

	return previousRow[len(a)]
}

func commonPrefixLength(a, b []rune) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func countCommonChars(a, b []rune) int {
	charCount := make(map[rune]int, len(a))
	for _, r := range a {
		charCount[r]++
	}

	common := 0
	for _, r := range b {
		if charCount[r] > 0 {
			common++
			charCount[r]--
		}
	}
	return common
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// DefaultMaxDistance is the edit distance used for option suggestions
const DefaultMaxDistance = 2

// FindBestOption finds the registered long option name closest to input.
// input and names are bare names without leading dashes.
func FindBestOption(input string, names []string) string {
	return NewMatcher(DefaultMaxDistance).FindBest(input, names)
}

// FindSuggestions finds up to maxSuggestions candidates for error messages
func FindSuggestions(input string, candidates []string, maxDistance, maxSuggestions int) []string {
	matches := NewMatcher(maxDistance).FindMatches(input, candidates)

	suggestions := make([]string, 0, min(len(matches), maxSuggestions))
	for i, match := range matches {
		if i >= maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Value)
	}
	return suggestions
}

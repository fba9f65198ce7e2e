package repository

import "strings"

// minMatchingWords is the number of query words that must match entry words
// for an entry to count as relevant
const minMatchingWords = 2

// IsRelevant reports whether at least two query words match words of text.
// See matchingWords for the matching rule.
func IsRelevant(query, text string) bool {
	return matchingWords(query, text) >= minMatchingWords
}

// RelevanceScore returns the share of query words that match words of text,
// in [0,1], under the same rule as IsRelevant. An empty query scores 0.
func RelevanceScore(query, text string) float64 {
	n := len(strings.Fields(query))
	if n == 0 {
		return 0
	}
	score := float64(matchingWords(query, text)) / float64(n)
	if score > 1 {
		return 1
	}
	return score
}

// matchingWords counts the query words that are a substring of some text
// word, or contain one. Comparison is case-insensitive and tokenization is
// by whitespace only, so trailing punctuation stays attached to a word.
func matchingWords(query, text string) int {
	queryWords := strings.Fields(strings.ToLower(query))
	textWords := strings.Fields(strings.ToLower(text))

	matches := 0
	for _, qw := range queryWords {
		for _, tw := range textWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				matches++
				break
			}
		}
	}
	return matches
}

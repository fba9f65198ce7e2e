package service

import (
	"strings"
	"unicode"

	"legalconsult-backend/models"
)

const (
	validationBaseline = 0.8
	validationFloor    = 0.3

	genericPenalty      = 0.2
	jurisdictionPenalty = 0.1
	stalenessPenalty    = 0.1
)

var (
	genericPhrases = []string{
		"in general", "typically", "usually", "generally speaking", "as a rule",
		"بشكل عام", "عادة", "غالباً",
	}

	jurisdictionKeywords = []string{
		"saudi", "law", "court", "statute", "system", "regulation",
		"نظام", "قانون", "محكمة", "المملكة", "السعودي", "السعودية",
	}

	stalePhrases = []string{
		"old law", "previous system", "former regulation",
		"النظام القديم", "النظام السابق", "اللائحة السابقة",
	}
)

const (
	issueGeneric      = "Answer relies on generic statements rather than specific legal provisions"
	issueJurisdiction = "Answer does not reference the Saudi legal system"
	issueStale        = "Answer may rely on superseded laws or regulations"
)

// recommendations maps each issue to its remediation
var recommendations = map[string]string{
	issueGeneric:      "Cite the specific article and law that govern the question.",
	issueJurisdiction: "Ground the answer in the applicable Saudi law, regulation or court practice.",
	issueStale:        "Verify the answer against the laws and regulations currently in force.",
}

// ValidateAnswer runs the heuristic checks over an answer. The result is
// deterministic for a given answer; refs are accepted for future checks.
func ValidateAnswer(answer string, refs []models.LegalReference) models.ValidationResult {
	tokens := answerTokens(answer)
	issues := make([]string, 0, 3)
	confidence := validationBaseline

	if containsAny(tokens, genericPhrases) {
		issues = append(issues, issueGeneric)
		confidence -= genericPenalty
	}
	if !containsAny(tokens, jurisdictionKeywords) {
		issues = append(issues, issueJurisdiction)
		confidence -= jurisdictionPenalty
	}
	if containsAny(tokens, stalePhrases) {
		issues = append(issues, issueStale)
		confidence -= stalenessPenalty
	}

	if confidence < validationFloor {
		confidence = validationFloor
	}

	recs := make([]string, 0, len(issues))
	for _, issue := range issues {
		recs = append(recs, recommendations[issue])
	}

	return models.ValidationResult{
		IsValid:         len(issues) == 0,
		Issues:          issues,
		Confidence:      confidence,
		Recommendations: recs,
	}
}

// answerTokens lower-cases text, drops combining marks (Arabic diacritics)
// and splits on anything that is not a letter or digit
func answerTokens(text string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.FieldsFunc(b.String(), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// arabicProclitics are the prefixes that attach to an Arabic word without
// changing it, longest first
var arabicProclitics = []string{"وال", "بال", "فال", "كال", "لل", "ال", "و", "ب", "ل", "ف", "ك"}

// tokenMatches reports whether an answer token is word. Latin words also
// match their plural in s; Arabic words also match behind a proclitic, so
// "لنظام" matches "نظام" while "إعادة" does not match "عادة".
func tokenMatches(token, word string) bool {
	if token == word {
		return true
	}
	if word[0] < 0x80 {
		return token == word+"s"
	}
	for _, p := range arabicProclitics {
		if strings.HasPrefix(token, p) && token[len(p):] == word {
			return true
		}
	}
	return false
}

// containsAny reports whether any phrase occurs in tokens as a run of whole words
func containsAny(tokens []string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(tokens, answerTokens(p)) {
			return true
		}
	}
	return false
}

func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		matched := true
		for j, word := range phrase {
			if !tokenMatches(tokens[i+j], word) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

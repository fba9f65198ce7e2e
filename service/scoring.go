package service

import (
	"unicode/utf8"

	"legalconsult-backend/models"
)

const (
	// MaxScore caps confidence and success probability
	MaxScore = 0.95

	noReferenceConfidence = 0.3
	defaultSuccessRate    = 0.5
)

// baseSuccessRates holds the base success rate per case type
var baseSuccessRates = map[models.CaseType]float64{
	models.CaseTypeLabor:          0.75,
	models.CaseTypeCommercial:     0.70,
	models.CaseTypeFamily:         0.65,
	models.CaseTypeCriminal:       0.55,
	models.CaseTypeCivil:          0.68,
	models.CaseTypeRealEstate:     0.72,
	models.CaseTypeAdministrative: 0.60,
}

// averageRelevance returns the mean relevance score, 0 for no references
func averageRelevance(refs []models.LegalReference) float64 {
	if len(refs) == 0 {
		return 0
	}
	var sum float64
	for _, r := range refs {
		sum += r.RelevanceScore
	}
	return sum / float64(len(refs))
}

// ScoreConfidence combines reference relevance, validation confidence and
// answer length into a value in [0, MaxScore]. Answers without references
// always score exactly 0.3.
func ScoreConfidence(refs []models.LegalReference, answer string, validation models.ValidationResult) float64 {
	if len(refs) == 0 {
		return noReferenceConfidence
	}

	confidence := averageRelevance(refs)*0.4 + validation.Confidence*0.4

	length := utf8.RuneCountInString(answer)
	if length > 200 {
		confidence += 0.1
	}
	if length > 500 {
		confidence += 0.1
	}

	return clampScore(confidence)
}

// EstimateSuccess returns the case type's base rate adjusted by reference
// relevance, in [0, MaxScore]. Without a known case type or references it is 0.5.
func EstimateSuccess(refs []models.LegalReference, caseType models.CaseType) float64 {
	base, ok := baseSuccessRates[caseType]
	if !ok || len(refs) == 0 {
		return defaultSuccessRate
	}
	return clampScore(base + averageRelevance(refs)*0.2)
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > MaxScore:
		return MaxScore
	default:
		return v
	}
}

// clampUnit bounds a reference relevance score to [0, 1]
func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

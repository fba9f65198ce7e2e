package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legalconsult-backend/models"
	"legalconsult-backend/repository"
)

// FirmKnowledgeSource derives the context stored for a firm on a cache miss
type FirmKnowledgeSource interface {
	DeriveFirmContext(ctx context.Context, firmID string) (*models.FirmContext, error)
}

// PlaceholderFirmKnowledge returns the same generic context for every firm
type PlaceholderFirmKnowledge struct {
	Clock Clock
}

// DeriveFirmContext returns the placeholder context for firmID
func (p PlaceholderFirmKnowledge) DeriveFirmContext(ctx context.Context, firmID string) (*models.FirmContext, error) {
	return placeholderFirmContext(firmID, nowFrom(p.Clock)), nil
}

func placeholderFirmContext(firmID string, now time.Time) *models.FirmContext {
	return &models.FirmContext{
		FirmID:              firmID,
		Specializations:     []string{"commercial law", "labor law"},
		SuccessPatterns:     "Favourable outcomes in cases prepared with complete documentation and early settlement attempts",
		PreferredApproaches: "Negotiation and amicable settlement first, litigation when settlement fails",
		DerivedAt:           now,
	}
}

// CaseTypeCounter reports how often a firm consulted on each case type
type CaseTypeCounter interface {
	CaseTypeCountsByFirm(ctx context.Context, firmID string) ([]repository.CaseTypeCount, error)
}

// HistoryFirmKnowledge derives firm context from the firm's consultation
// history. Firms without history get the placeholder context.
type HistoryFirmKnowledge struct {
	counter CaseTypeCounter
	clock   Clock
}

// maxFirmSpecializations bounds the specializations derived from history
const maxFirmSpecializations = 3

// NewHistoryFirmKnowledge creates a history-backed knowledge source
func NewHistoryFirmKnowledge(counter CaseTypeCounter, clock Clock) *HistoryFirmKnowledge {
	return &HistoryFirmKnowledge{counter: counter, clock: clock}
}

// DeriveFirmContext builds the firm's context from its most frequent case types
func (h *HistoryFirmKnowledge) DeriveFirmContext(ctx context.Context, firmID string) (*models.FirmContext, error) {
	counts, err := h.counter.CaseTypeCountsByFirm(ctx, firmID)
	if err != nil {
		return nil, fmt.Errorf("failed to load consultation history for firm %s: %w", firmID, err)
	}

	now := nowFrom(h.clock)
	if len(counts) == 0 {
		return placeholderFirmContext(firmID, now), nil
	}

	top := counts
	if len(top) > maxFirmSpecializations {
		top = top[:maxFirmSpecializations]
	}

	specializations := make([]string, 0, len(top))
	summary := make([]string, 0, len(top))
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	for _, c := range top {
		label := strings.ReplaceAll(c.CaseType.Category(), "_", " ")
		if label == "" {
			label = string(c.CaseType)
		}
		specializations = append(specializations, label)
		summary = append(summary, fmt.Sprintf("%s (%d)", label, c.Count))
	}

	return &models.FirmContext{
		FirmID:          firmID,
		Specializations: specializations,
		SuccessPatterns: fmt.Sprintf("%d prior consultations, mostly in %s",
			total, strings.Join(summary, ", ")),
		PreferredApproaches: fmt.Sprintf("Draw on the firm's experience in %s and keep answers consistent with its prior advice",
			specializations[0]),
		DerivedAt: now,
	}, nil
}

func nowFrom(c Clock) time.Time {
	if c == nil {
		return time.Now()
	}
	return c.Now()
}

package repository

import (
	"fmt"
	"testing"

	"legalconsult-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRelevant_LaborRightsScenario(t *testing.T) {
	store := NewReferenceStore(DefaultReferenceEntries())

	refs := store.FindRelevant("ما هي حقوق العامل في نظام العمل؟", models.CaseTypeLabor.Category(), MaxReferences)
	require.NotEmpty(t, refs)

	var found *models.LegalReference
	for i := range refs {
		if refs[i].Title == "حقوق العامل" {
			found = &refs[i]
		}
	}
	require.NotNil(t, found, "expected the worker rights entry among %v", refs)
	assert.Greater(t, found.RelevanceScore, 0.0)
	assert.Equal(t, "نظام العمل", found.Law)
	assert.Equal(t, ReferenceSource, found.Source)
}

func TestFindRelevant_CategoryScoping(t *testing.T) {
	store := NewReferenceStore(DefaultReferenceEntries())
	query := "ما هي حقوق العامل في نظام العمل؟"

	assert.Empty(t, store.FindRelevant(query, "", MaxReferences))
	assert.Empty(t, store.FindRelevant(query, "maritime_law", MaxReferences))
	assert.NotNil(t, store.FindRelevant(query, "maritime_law", MaxReferences))
}

func TestFindRelevant_CapAndOrdering(t *testing.T) {
	var entries []models.LegalReferenceEntry
	bodies := []string{
		"employer wages",
		"employer wages notice",
		"employer wages notice termination",
		"employer wages notice termination leave",
		"employer wages",
		"employer wages notice",
		"employer wages notice termination leave",
		"unrelated text only",
	}
	for i, body := range bodies {
		entries = append(entries, models.LegalReferenceEntry{
			ID:       fmt.Sprintf("e%d", i),
			Title:    fmt.Sprintf("Entry %d", i),
			BodyText: body,
			Category: "labor_law",
		})
	}
	store := NewReferenceStore(entries)
	query := "employer wages notice termination leave"

	refs := store.FindRelevant(query, "labor_law", 10)
	require.Len(t, refs, MaxReferences)
	for i := 1; i < len(refs); i++ {
		assert.GreaterOrEqual(t, refs[i-1].RelevanceScore, refs[i].RelevanceScore)
	}
	// ties keep entry order
	assert.Equal(t, "e3", refs[0].ID)
	assert.Equal(t, "e6", refs[1].ID)

	assert.Len(t, store.FindRelevant(query, "labor_law", 2), 2)
	assert.Len(t, store.FindRelevant(query, "labor_law", 0), MaxReferences)
}

func TestNewReferenceStore_CopiesInput(t *testing.T) {
	entries := []models.LegalReferenceEntry{
		{ID: "a", Title: "Wages", BodyText: "employer wages", Category: "labor_law"},
		{ID: "b", Title: "Orphan", BodyText: "employer wages"},
	}
	store := NewReferenceStore(entries)
	entries[0].Title = "mutated"

	refs := store.FindRelevant("employer wages", "labor_law", 5)
	require.Len(t, refs, 1)
	assert.Equal(t, "Wages", refs[0].Title)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []string{"labor_law"}, store.Categories())
}

func TestDefaultReferenceEntries_CoverEveryCaseType(t *testing.T) {
	store := NewReferenceStore(DefaultReferenceEntries())
	categories := store.Categories()

	for _, ct := range models.CaseTypes {
		assert.Contains(t, categories, ct.Category())
	}
}

func TestFindRelevant_ScoresMatchTheRelevanceRule(t *testing.T) {
	store := NewReferenceStore([]models.LegalReferenceEntry{
		{ID: "wage-1", Title: "دفع الأجر", BodyText: "يدفع صاحب العمل الأجر للعامل", Category: "labor_law"},
	})

	refs := store.FindRelevant("متى يُدفع الأجر؟ وما حكم العمل؟", "labor_law", MaxReferences)
	require.Len(t, refs, 1)
	assert.InDelta(t, 2.0/6, refs[0].RelevanceScore, 1e-9)
}

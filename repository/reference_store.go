package repository

import (
	"sort"

	"legalconsult-backend/models"
)

const (
	// MaxReferences caps the references returned for one query
	MaxReferences = 5

	// ReferenceSource labels references drawn from the built-in knowledge base
	ReferenceSource = "Saudi Legal Knowledge Base"
)

// ReferenceStore holds categorized legal reference entries. It is built once
// at startup and is read-only afterwards, so it is safe for concurrent use.
type ReferenceStore struct {
	byCategory map[string][]models.LegalReferenceEntry
	total      int
}

// NewReferenceStore creates a store from entries, grouped by category.
// Entries without a category are ignored.
func NewReferenceStore(entries []models.LegalReferenceEntry) *ReferenceStore {
	byCategory := make(map[string][]models.LegalReferenceEntry)
	total := 0
	for _, e := range entries {
		if e.Category == "" {
			continue
		}
		byCategory[e.Category] = append(byCategory[e.Category], e)
		total++
	}
	return &ReferenceStore{byCategory: byCategory, total: total}
}

// Len returns the number of stored entries
func (s *ReferenceStore) Len() int {
	return s.total
}

// Categories returns the stored categories in sorted order
func (s *ReferenceStore) Categories() []string {
	out := make([]string, 0, len(s.byCategory))
	for c := range s.byCategory {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FindRelevant returns up to maxResults references from category that are
// relevant to query, ordered by descending relevance score. Ties keep entry
// order. An empty or unknown category yields an empty slice. maxResults <= 0
// or above MaxReferences is treated as MaxReferences.
func (s *ReferenceStore) FindRelevant(query, category string, maxResults int) []models.LegalReference {
	if maxResults <= 0 || maxResults > MaxReferences {
		maxResults = MaxReferences
	}

	results := make([]models.LegalReference, 0, maxResults)
	if category == "" {
		return results
	}

	for _, entry := range s.byCategory[category] {
		if !IsRelevant(query, entry.BodyText) {
			continue
		}
		results = append(results, models.LegalReference{
			ID:             entry.ID,
			Title:          entry.Title,
			Article:        entry.ArticleLabel,
			Law:            entry.LawName,
			Source:         ReferenceSource,
			RelevanceScore: RelevanceScore(query, entry.BodyText),
		})
	}

	SortReferences(results)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// SortReferences orders references by descending relevance score, keeping
// the existing order of ties
func SortReferences(refs []models.LegalReference) {
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].RelevanceScore > refs[j].RelevanceScore
	})
}

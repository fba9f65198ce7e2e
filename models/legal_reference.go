package models

import "time"

// LegalReferenceEntry represents a stored unit of legal text eligible for citation
type LegalReferenceEntry struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LawName      string    `json:"law_name"`
	ArticleLabel string    `json:"article_label"`
	BodyText     string    `json:"body_text"`
	Category     string    `json:"category"` // "labor_law", "commercial_law", ...
	LastUpdated  time.Time `json:"last_updated"`
}

// LegalReference is the response-facing view of an entry chosen for a query
type LegalReference struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Article        string  `json:"article"`
	Law            string  `json:"law"`
	Source         string  `json:"source"`
	RelevanceScore float64 `json:"relevance_score"`
}

// LegalReferences represents a list of references
type LegalReferences []LegalReference

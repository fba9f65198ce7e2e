package repository

import (
	"context"
	"fmt"

	"legalconsult-backend/models"
	"legalconsult-backend/storage"
)

// ReferenceSourceKind names where a reference set was loaded from
type ReferenceSourceKind string

const (
	SourceKnowledgePack ReferenceSourceKind = "knowledge_pack"
	SourceDatabase      ReferenceSourceKind = "database"
	SourceBuiltinSeed   ReferenceSourceKind = "builtin_seed"
)

// EntryLister lists stored reference entries
type EntryLister interface {
	ListAll(ctx context.Context) ([]models.LegalReferenceEntry, error)
}

// ReferenceLoadResult describes the loaded reference set
type ReferenceLoadResult struct {
	Entries []models.LegalReferenceEntry
	Source  ReferenceSourceKind
	// DatabaseErr is set when the database was consulted and failed
	DatabaseErr error
}

// LoadReferenceEntries picks the reference set at startup: a configured
// knowledge pack wins, then a non-empty legal_references table, then the
// built-in seed. A configured pack that cannot be loaded is an error; a
// database failure falls through to the seed and is reported in the result.
func LoadReferenceEntries(ctx context.Context, store storage.Storage, packKey string, db EntryLister) (*ReferenceLoadResult, error) {
	if packKey != "" {
		if store == nil {
			return nil, fmt.Errorf("knowledge pack %q configured without storage", packKey)
		}
		entries, err := LoadKnowledgePack(ctx, store, packKey)
		if err != nil {
			return nil, err
		}
		return &ReferenceLoadResult{Entries: entries, Source: SourceKnowledgePack}, nil
	}

	result := &ReferenceLoadResult{}
	if db != nil {
		entries, err := db.ListAll(ctx)
		switch {
		case err != nil:
			result.DatabaseErr = err
		case len(entries) > 0:
			result.Entries = entries
			result.Source = SourceDatabase
			return result, nil
		}
	}

	result.Entries = DefaultReferenceEntries()
	result.Source = SourceBuiltinSeed
	return result, nil
}

package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"legalconsult-backend/models"
	"legalconsult-backend/storage"

	"github.com/xeipuuv/gojsonschema"
)

// KnowledgePackVersion is the pack format written by WriteKnowledgePack
const KnowledgePackVersion = 1

// maxKnowledgePackSize bounds how much of a pack object is read
const maxKnowledgePackSize = 32 << 20

// KnowledgePack is the JSON document that carries reference entries
// between deployments
type KnowledgePack struct {
	Version      int                          `json:"version"`
	Jurisdiction string                       `json:"jurisdiction"`
	GeneratedAt  time.Time                    `json:"generated_at"`
	Entries      []models.LegalReferenceEntry `json:"entries"`
}

const knowledgePackSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "entries"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "jurisdiction": {"type": "string"},
    "generated_at": {"type": "string"},
    "entries": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "law_name", "article_label", "body_text", "category"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "law_name": {"type": "string", "minLength": 1},
          "article_label": {"type": "string", "minLength": 1},
          "body_text": {"type": "string", "minLength": 1},
          "category": {"type": "string", "pattern": "^[a-z_]+_law$"},
          "last_updated": {"type": "string"}
        }
      }
    }
  }
}`

var knowledgePackSchemaLoader = gojsonschema.NewStringLoader(knowledgePackSchema)

// ParseKnowledgePack validates data against the pack schema and decodes it
func ParseKnowledgePack(data []byte) (*KnowledgePack, error) {
	result, err := gojsonschema.Validate(knowledgePackSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("knowledge pack validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("invalid knowledge pack: %s", strings.Join(errs, "; "))
	}

	var pack KnowledgePack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge pack: %w", err)
	}
	return &pack, nil
}

// LoadKnowledgePack reads the pack stored under key and returns its entries
func LoadKnowledgePack(ctx context.Context, store storage.Storage, key string) ([]models.LegalReferenceEntry, error) {
	rc, err := store.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download knowledge pack: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxKnowledgePackSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge pack: %w", err)
	}

	pack, err := ParseKnowledgePack(data)
	if err != nil {
		return nil, err
	}
	return pack.Entries, nil
}

// WriteKnowledgePack stores entries as a pack under key
func WriteKnowledgePack(ctx context.Context, store storage.Storage, key string, entries []models.LegalReferenceEntry, generatedAt time.Time) error {
	pack := KnowledgePack{
		Version:      KnowledgePackVersion,
		Jurisdiction: "SA",
		GeneratedAt:  generatedAt.UTC(),
		Entries:      entries,
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode knowledge pack: %w", err)
	}

	// Never publish a pack that would fail to load
	if _, err := ParseKnowledgePack(data); err != nil {
		return err
	}

	if err := store.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload knowledge pack: %w", err)
	}
	return nil
}

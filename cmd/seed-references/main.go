package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"legalconsult-backend/config"
	"legalconsult-backend/models"
	"legalconsult-backend/repository"
	"legalconsult-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	packKey := flag.String("pack", "", "knowledge pack key in the configured storage (defaults to the built-in seed)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var entries []models.LegalReferenceEntry
	source := "built-in seed"
	if *packKey != "" {
		store, err := storage.NewStorage(ctx, cfg.Storage.StorageOptions())
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		entries, err = repository.LoadKnowledgePack(ctx, store, *packKey)
		if err != nil {
			log.Fatalf("Failed to load knowledge pack: %v", err)
		}
		source = *packKey
	} else {
		entries = repository.DefaultReferenceEntries()
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := repository.NewLegalReferenceRepository(pool).ReplaceAll(ctx, entries); err != nil {
		log.Fatalf("Failed to seed legal references: %v", err)
	}

	store := repository.NewReferenceStore(entries)
	fmt.Println("\n✅ Legal references seeded successfully!")
	fmt.Printf("   Source: %s\n", source)
	fmt.Printf("   Entries: %d\n", store.Len())
	fmt.Printf("   Categories: %v\n", store.Categories())
}

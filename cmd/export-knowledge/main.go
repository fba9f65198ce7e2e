package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"legalconsult-backend/config"
	"legalconsult-backend/models"
	"legalconsult-backend/repository"
	"legalconsult-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	fromDB := flag.Bool("from-db", false, "export the legal_references table instead of the built-in seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	key := cfg.Knowledge.PackPath
	if flag.NArg() > 0 {
		key = flag.Arg(0)
	}
	if key == "" {
		log.Fatal("Usage: export-knowledge [-from-db] <key> (or set KNOWLEDGE_PACK_PATH)")
	}

	ctx := context.Background()

	entries := repository.DefaultReferenceEntries()
	if *fromDB {
		entries = loadFromDatabase(ctx, cfg.Database.URL)
	}

	store, err := storage.NewStorage(ctx, cfg.Storage.StorageOptions())
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	if err := repository.WriteKnowledgePack(ctx, store, key, entries, time.Now()); err != nil {
		log.Fatalf("Failed to write knowledge pack: %v", err)
	}

	fmt.Println("\n✅ Knowledge pack exported successfully!")
	fmt.Printf("   Storage: %s\n", cfg.Storage.Type)
	fmt.Printf("   Key: %s\n", key)
	fmt.Printf("   Entries: %d\n", len(entries))
}

func loadFromDatabase(ctx context.Context, connString string) []models.LegalReferenceEntry {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	entries, err := repository.NewLegalReferenceRepository(pool).ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list legal references: %v", err)
	}
	if len(entries) == 0 {
		log.Fatal("legal_references is empty; run seed-references first")
	}
	return entries
}

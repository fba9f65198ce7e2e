package main

import (
	"context"
	"fmt"
	"log"

	"legalconsult-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var tables = []struct {
	name string
	sql  string
}{
	{
		name: "legal_references",
		sql: `
CREATE TABLE IF NOT EXISTS legal_references (
    id VARCHAR(100) PRIMARY KEY,
    title TEXT NOT NULL,
    law_name TEXT NOT NULL,
    article_label TEXT NOT NULL,
    body_text TEXT NOT NULL,
    category VARCHAR(50) NOT NULL,
    last_updated TIMESTAMP NOT NULL DEFAULT NOW()
);`,
	},
	{
		name: "lawyers",
		sql: `
CREATE TABLE IF NOT EXISTS lawyers (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name VARCHAR(255) NOT NULL,
    firm_id VARCHAR(100),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);`,
	},
	{
		name: "lawyer_preferences",
		sql: `
CREATE TABLE IF NOT EXISTS lawyer_preferences (
    user_id VARCHAR(100) PRIMARY KEY,
    response_style VARCHAR(50) NOT NULL DEFAULT '',
    detail_level VARCHAR(50) NOT NULL DEFAULT '',
    specializations TEXT[] NOT NULL DEFAULT '{}',
    risk_tolerance VARCHAR(50) NOT NULL DEFAULT '',
    client_communication_style VARCHAR(50) NOT NULL DEFAULT '',
    include_examples BOOLEAN NOT NULL DEFAULT true,
    include_citations BOOLEAN NOT NULL DEFAULT true,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`,
	},
	{
		name: "consultations",
		sql: `
CREATE TABLE IF NOT EXISTS consultations (
    id UUID PRIMARY KEY,
    firm_id VARCHAR(100),
    user_id VARCHAR(100),
    query_text TEXT NOT NULL,
    case_type VARCHAR(50) NOT NULL DEFAULT '',
    language VARCHAR(10) NOT NULL,
    answer TEXT NOT NULL,
    confidence DOUBLE PRECISION NOT NULL,
    success_probability DOUBLE PRECISION NOT NULL,
    cited_references JSONB NOT NULL DEFAULT '[]'::jsonb,
    validation_issues JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`,
	},
}

var indexes = []struct {
	name string
	sql  string
}{
	{
		name: "Reference category filtering",
		sql:  "CREATE INDEX IF NOT EXISTS idx_legal_references_category ON legal_references(category);",
	},
	{
		name: "Consultations by firm and case type",
		sql:  "CREATE INDEX IF NOT EXISTS idx_consultations_firm_case_type ON consultations(firm_id, case_type) WHERE firm_id IS NOT NULL;",
	},
	{
		name: "Consultations by creation time",
		sql:  "CREATE INDEX IF NOT EXISTS idx_consultations_created_at ON consultations(created_at);",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	for _, t := range tables {
		if _, err := pool.Exec(ctx, t.sql); err != nil {
			log.Fatalf("Failed to create %s table: %v", t.name, err)
		}
		log.Printf("✓ Created %s table", t.name)
	}

	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx.sql); err != nil {
			log.Printf("Warning: Failed to create index %s: %v", idx.name, err)
		} else {
			log.Printf("✓ Created index: %s", idx.name)
		}
	}

	fmt.Println("\n✅ Database schema created successfully!")
	fmt.Printf("   Tables: %d\n", len(tables))
	fmt.Printf("   Indexes: %d\n", len(indexes))
}

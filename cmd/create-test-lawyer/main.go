package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"legalconsult-backend/config"
	"legalconsult-backend/models"
	"legalconsult-backend/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

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

	lawyers := repository.NewLawyerRepository(pool)
	preferences := repository.NewPreferenceRepository(pool)

	email := "lawyer@example.com"
	password := "testpassword123"
	firmID := "test-firm"

	lawyer, err := lawyers.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Printf("Lawyer with email %s already exists (ID: %s)", email, lawyer.ID)
	case errors.Is(err, repository.ErrLawyerNotFound):
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		lawyer = &models.Lawyer{
			Email:        email,
			PasswordHash: string(hashedPassword),
			Name:         "Test Lawyer",
			FirmID:       &firmID,
		}
		if err := lawyers.Create(ctx, lawyer); err != nil {
			log.Fatalf("Failed to create lawyer: %v", err)
		}
	default:
		log.Fatalf("Failed to look up lawyer: %v", err)
	}

	prefs := &models.LawyerPreferences{
		UserID:                   lawyer.ID.String(),
		ResponseStyle:            "formal",
		DetailLevel:              "comprehensive",
		Specializations:          []string{"labor law", "commercial law"},
		RiskTolerance:            "medium",
		ClientCommunicationStyle: "plain language",
		IncludeExamples:          true,
		IncludeCitations:         true,
	}
	if err := preferences.Upsert(ctx, prefs); err != nil {
		log.Fatalf("Failed to store preferences: %v", err)
	}

	fmt.Printf("✅ Test lawyer ready!\n")
	fmt.Printf("   ID: %s\n", lawyer.ID)
	fmt.Printf("   Email: %s\n", email)
	fmt.Printf("   Password: %s\n", password)
	fmt.Printf("   Firm: %s\n", firmID)
	fmt.Printf("   Headers: X-Firm-ID: %s, X-User-ID: %s\n", firmID, lawyer.ID)
}

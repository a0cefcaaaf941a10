//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hugh/agencyhub/internal/auth"
	"github.com/hugh/agencyhub/internal/crm"
	"github.com/hugh/agencyhub/internal/database"
	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/pkg/config"
	"github.com/hugh/agencyhub/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env, cfg.Server.LogLevel)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	// Run migrations
	if err := database.Migrate(ctx, db, logger); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	svc := crm.NewService(db, nil, logger)

	subdomain := os.Getenv("SEED_SUBDOMAIN")
	if subdomain == "" {
		subdomain = "acme"
	}

	existing, err := svc.GetAgencyBySubdomain(ctx, subdomain)
	if err != nil {
		log.Fatalf("failed to look up agency: %v", err)
	}
	if existing != nil {
		fmt.Printf("Agency already exists: %s (id %d)\n", existing.Subdomain, existing.ID)
		return
	}

	agency, err := svc.CreateAgency(ctx, crm.CreateAgencyInput{
		Name:      "Acme Marketing",
		Subdomain: subdomain,
	})
	if err != nil {
		log.Fatalf("failed to create agency: %v", err)
	}

	owner, err := svc.CreateUser(ctx, crm.CreateUserInput{
		ClerkID:   "seed_owner_" + subdomain,
		AgencyID:  agency.ID,
		Email:     "owner@" + subdomain + ".example.com",
		FirstName: "Ada",
		LastName:  "Owner",
		Role:      models.RoleAgencyOwner,
	})
	if err != nil {
		log.Fatalf("failed to create owner: %v", err)
	}

	contact, err := svc.CreateContact(ctx, crm.CreateContactInput{
		AgencyID:  agency.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		Tags:      []string{"vip"},
		CreatedBy: owner.ID,
	})
	if err != nil {
		log.Fatalf("failed to create contact: %v", err)
	}

	value := 2500.0
	if _, err := svc.CreateDeal(ctx, crm.CreateDealInput{
		AgencyID:  agency.ID,
		ContactID: contact.ID,
		Title:     "Website redesign",
		Value:     &value,
		CreatedBy: owner.ID,
	}); err != nil {
		log.Fatalf("failed to create deal: %v", err)
	}

	fmt.Printf("Seed data created successfully!\n")
	fmt.Printf("Agency: %s (id %d)\n", agency.Subdomain, agency.ID)
	fmt.Printf("Owner: %s (id %d)\n", owner.Email, owner.ID)

	if cfg.Auth.Enabled() {
		jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
		token, err := jwtService.GenerateToken(owner.ClerkID, agency.ID, string(owner.Role), 24*time.Hour)
		if err != nil {
			log.Fatalf("failed to mint token: %v", err)
		}
		fmt.Printf("Token: %s\n", token)
	}
}

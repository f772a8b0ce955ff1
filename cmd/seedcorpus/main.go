package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"nutrigo/internal/config"
	"nutrigo/internal/corpus"
	"nutrigo/internal/db"
	"nutrigo/internal/nutrition"
)

// seedcorpus loads the curated staples into the corpus database so a fresh
// deployment can serve tier-2 matches before any generation has happened.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "skipping .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// An explicit DSN argument overrides the environment.
	if len(os.Args) > 1 {
		cfg.Database.URL = os.Args[1]
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	repo, err := corpus.New(database)
	if err != nil {
		return fmt.Errorf("build repository: %w", err)
	}

	ctx := context.Background()
	seeded := 0
	for _, food := range nutrition.CuratedFoods() {
		if err := repo.Save(ctx, food); err != nil {
			return fmt.Errorf("seed %q: %w", food.Name, err)
		}
		seeded++
	}

	fmt.Printf("seeded %d curated foods into the corpus\n", seeded)
	return nil
}

// loadquestions bulk-loads interview questions from a JSON file into the
// question bank. Existing questions with the same ID are overwritten.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	filePath := flag.String("file", "", "path to a JSON file containing an array of questions")
	dbPath := flag.String("db", "", "path to the SQLite database (defaults to DB_PATH)")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	if *filePath == "" {
		slog.Error("Missing required -file flag")
		os.Exit(1)
	}
	if *dbPath == "" {
		*dbPath = os.Getenv("DB_PATH")
	}
	if *dbPath == "" {
		*dbPath = "./data/forge.db"
	}

	if err := run(*filePath, *dbPath, *dryRun); err != nil {
		slog.Error("Bulk load failed", "error", err)
		os.Exit(1)
	}
}

func run(filePath, dbPath string, dryRun bool) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read questions file: %w", err)
	}

	var questions []domain.InterviewQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return fmt.Errorf("decode questions file: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions in %s", filePath)
	}

	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = "q-" + uuid.NewString()
		}
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d (%s): %w", i, questions[i].ID, err)
		}
	}

	if dryRun {
		slog.Info("Dry run complete, file is valid", "questions", len(questions))
		return nil
	}

	repo, err := store.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	ctx := context.Background()
	for i := range questions {
		if err := repo.UpsertQuestion(ctx, &questions[i]); err != nil {
			return fmt.Errorf("upsert question %s: %w", questions[i].ID, err)
		}
	}

	slog.Info("Bulk load complete", "questions", len(questions), "db", dbPath)
	return nil
}

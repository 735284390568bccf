package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ideamans/go-sheetgrid"
	"github.com/ideamans/go-sheetgrid/adapters/googlesheets"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// .env is optional
	_ = godotenv.Load()

	if level, err := zerolog.ParseLevel(os.Getenv("LOGLEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Example failed")
	}
}

func run() error {
	ctx := context.Background()

	keyFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	document := os.Getenv("SPREADSHEET_ID")
	if keyFile == "" || document == "" {
		return fmt.Errorf("set GOOGLE_APPLICATION_CREDENTIALS and SPREADSHEET_ID")
	}

	factory := googlesheets.Factory(googlesheets.Config{ValueInputOption: "USER_ENTERED"})
	client, err := sheetgrid.New(ctx, sheetgrid.CredentialsFile(keyFile), factory, nil)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	// Key, title or URL all work
	if err := client.ConnectDocument(ctx, document); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	if err := client.ConnectSheet(ctx, sheetgrid.SheetIndex(0), sheetgrid.Vertical, 1); err != nil {
		return fmt.Errorf("failed to open sheet: %w", err)
	}

	headers, err := client.Headers()
	if err != nil {
		return err
	}
	fmt.Printf("Headers: %v\n", headers)

	// Append a row under the matching headers
	edits, err := client.CommitNewRow(ctx, sheetgrid.KeyedValues{
		"name":       "John Doe",
		"email":      "john@example.com",
		"age":        "30",
		"created_at": time.Now().Format(time.RFC3339),
	}, 0, true)
	if err != nil {
		return fmt.Errorf("failed to commit row: %w", err)
	}
	fmt.Printf("Queued %d cells\n", len(edits))

	// Refresh writes the queued cells before reading the sheet back
	if err := client.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh: %w", err)
	}

	results, err := client.Find(ctx, sheetgrid.Query{
		Conditions: []sheetgrid.Condition{
			{Column: "age", Operator: ">=", Value: 25},
			{Column: "age", Operator: "<=", Value: 35},
		},
		Limit: 10,
	}, false)
	if err != nil {
		return fmt.Errorf("failed to query: %w", err)
	}

	fmt.Printf("Found %d people aged 25-35:\n", len(results))
	for _, record := range results {
		name := record.GetAsString("name", "Unknown")
		age := record.GetAsInt64("age", 0)
		fmt.Printf("  Row %d: %s (age: %d)\n", record.Index+1, name, age)
	}

	if _, err := client.UpdateByPrimaryKey(ctx, map[string]string{
		"email":      "john@example.com",
		"last_login": time.Now().Format(time.RFC3339),
	}, "email", false); err != nil {
		log.Warn().Err(err).Msg("Failed to update row")
	}

	return client.Refresh(ctx)
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ideamans/go-sheetgrid"
	"github.com/ideamans/go-sheetgrid/adapters/excel"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	path, err := filepath.Abs("./example_data.xlsx")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve workbook path")
	}

	// Start from a fresh workbook with a header row
	headers := []string{"id", "name", "email", "age", "department", "active", "skills", "joined_at"}
	if err := excel.Create(path, "users", [][]string{headers}); err != nil {
		log.Fatal().Err(err).Msg("Failed to create workbook")
	}

	ctx := context.Background()

	// Workbooks need no authentication; any non-empty credentials will do
	client, err := sheetgrid.New(ctx, sheetgrid.CredentialsMap{"type": "local"}, excel.Factory(&excel.Config{}), nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create client")
	}
	if err := client.ConnectDocument(ctx, path); err != nil {
		log.Fatal().Err(err).Msg("Failed to open workbook")
	}
	if err := client.ConnectSheet(ctx, sheetgrid.SheetName("users"), sheetgrid.Vertical, 1); err != nil {
		log.Fatal().Err(err).Msg("Failed to open sheet")
	}

	// 1. Add some rows in one batch
	fmt.Println("Adding records...")
	rows := []sheetgrid.Values{
		sheetgrid.OrderedValues{"1", "Alice Johnson", "alice@example.com", "30", "Engineering", "true", "Go,SQL", time.Now().Format(time.RFC3339)},
		sheetgrid.KeyedValues{"id": "2", "name": "Bob Smith", "email": "bob@example.com", "age": "25", "department": "Marketing", "active": "true"},
		sheetgrid.KeyedValues{"id": "3", "name": "Charlie Brown", "age": "35", "department": "Engineering", "active": "false"},
	}
	if _, err := client.CommitNewRows(ctx, rows, 0, false); err != nil {
		log.Fatal().Err(err).Msg("Failed to commit rows")
	}

	// 2. Typed setters build a keyed row
	var record sheetgrid.Record
	record.SetInt64("id", 4)
	record.SetString("name", "Diana Prince")
	record.SetInt64("age", 28)
	record.SetBool("active", true)
	record.SetStrings("skills", []string{"Java", "Python", "Go"})
	record.SetTime("joined_at", time.Now())
	if _, err := client.CommitNewRow(ctx, sheetgrid.KeyedValues(record.Values), 0, true); err != nil {
		log.Fatal().Err(err).Msg("Failed to commit row")
	}

	// 3. Query active engineers
	fmt.Println("\nQuerying active engineers...")
	results, err := client.Find(ctx, sheetgrid.Query{
		Conditions: []sheetgrid.Condition{
			{Column: "department", Operator: "==", Value: "Engineering"},
			{Column: "active", Operator: "==", Value: true},
		},
	}, true)
	if err != nil {
		log.Error().Err(err).Msg("Query failed")
	}
	for _, r := range results {
		fmt.Printf("- %s (age: %d)\n", r.GetAsString("name", ""), r.GetAsInt64("age", 0))
	}

	// 4. Move Bob to sales
	fmt.Println("\nUpdating Bob's department...")
	if _, err := client.UpdateByPrimaryKey(ctx, map[string]string{"id": "2", "department": "Sales"}, "id", false); err != nil {
		log.Error().Err(err).Msg("Update failed")
	}

	// 5. Expressions see every header as a variable
	fmt.Println("\nFinding people between 25-35 years old...")
	matches, err := client.FindByExpression(ctx, `age >= 25 && age <= 35`, true)
	if err != nil {
		log.Error().Err(err).Msg("Expression failed")
	}
	for _, r := range matches {
		fmt.Printf("- %s (age: %d, skills: %v)\n",
			r.GetAsString("name", ""),
			r.GetAsInt64("age", 0),
			r.GetAsStrings("skills", []string{}))
	}

	if err := client.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to write workbook")
	}
	fmt.Printf("\nExample completed. Check %s for the data.\n", path)
}

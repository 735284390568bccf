package sheetgrid_test

import (
	"context"
	"testing"

	"github.com/ideamans/go-sheetgrid"
	"github.com/ideamans/go-sheetgrid/adapters/memory"
	"github.com/rs/zerolog"
)

var testCreds = sheetgrid.CredentialsMap{"type": "service_account"}

func quietConfig() *sheetgrid.Config {
	logger := zerolog.Nop()
	return &sheetgrid.Config{Logger: &logger}
}

// newService returns a memory service holding one document "doc" with
// the given sheets
func newService(sheets ...*memory.Sheet) *memory.Service {
	return memory.New(memory.NewDocument("doc-key", "doc", "https://example.com/doc", sheets...))
}

// newClient returns a client in the HasClient state
func newClient(t *testing.T, service *memory.Service) *sheetgrid.Client {
	t.Helper()
	client, err := sheetgrid.New(context.Background(), testCreds, memory.Factory(service), quietConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return client
}

// connected returns a client connected to a single sheet holding values
func connected(t *testing.T, values [][]string, orientation sheetgrid.Orientation, depth int) (*sheetgrid.Client, *memory.Sheet) {
	t.Helper()
	sheet := memory.NewSheet("data", values)
	client := newClient(t, newService(sheet))
	ctx := context.Background()
	if err := client.ConnectDocument(ctx, "doc"); err != nil {
		t.Fatalf("ConnectDocument() error: %v", err)
	}
	if err := client.ConnectSheet(ctx, sheetgrid.SheetName("data"), orientation, depth); err != nil {
		t.Fatalf("ConnectSheet() error: %v", err)
	}
	return client, sheet
}

var people = [][]string{
	{"id", "name", "age", "team"},
	{"1", "Alice", "30", "blue"},
	{"2", "Bob", "25", "red"},
	{"3", "Carol", "41", "blue"},
}

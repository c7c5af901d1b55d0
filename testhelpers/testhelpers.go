// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestConfig creates a calculator configuration record for the given
// owner and trade and returns it.
func CreateTestConfig(t *testing.T, app *pocketbase.PocketBase, owner, trade string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("calculator_configs")
	if err != nil {
		t.Fatalf("failed to find calculator_configs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", owner)
	record.Set("trade", trade)
	record.Set("is_configured", false)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test config: %v", err)
	}

	return record
}

// CreateTestMaterial creates a material record in a configuration's catalog
// and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, configID, category, name string, price float64, unit, unitSpec string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("config", configID)
	record.Set("category", category)
	record.Set("name", name)
	record.Set("price", price)
	record.Set("unit", unit)
	record.Set("is_archived", false)
	record.Set("sort_order", 1)
	if unitSpec != "" {
		record.Set("metadata", map[string]string{"unitSpec": unitSpec})
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

package services

import (
	"testing"

	"contractorhub/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestGetOrCreateConfiguration_CreatesOnFirstUse(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cfg, err := GetOrCreateConfiguration(app, "user1", "roofing")
	if err != nil {
		t.Fatalf("GetOrCreateConfiguration() error = %v", err)
	}
	if cfg.ID == "" {
		t.Fatal("expected a persisted configuration id")
	}
	if cfg.Owner != "user1" || cfg.Trade != "roofing" {
		t.Errorf("cfg = %+v, want owner user1 trade roofing", cfg)
	}
	if cfg.IsConfigured {
		t.Error("fresh configuration must not be marked configured")
	}
}

func TestGetOrCreateConfiguration_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	first, err := GetOrCreateConfiguration(app, "user1", "roofing")
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	second, err := GetOrCreateConfiguration(app, "user1", "roofing")
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("repeated calls returned different configs: %s vs %s", first.ID, second.ID)
	}

	records, err := app.FindRecordsByFilter(
		"calculator_configs", "owner = {:owner} && trade = {:trade}", "", 0, 0,
		map[string]any{"owner": "user1", "trade": "roofing"},
	)
	if err != nil {
		t.Fatalf("listing configs: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected exactly one config record, got %d", len(records))
	}
}

// A second caller can win the create between the initial lookup and the
// save. The unique (owner, trade) index rejects the losing save and the
// winner's record must be returned instead of an error. The hook slips a
// rival record in just before the original insert commits.
func TestGetOrCreateConfiguration_RecoversFromConcurrentCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	var rivalID string
	injected := false
	app.OnRecordCreate("calculator_configs").BindFunc(func(e *core.RecordEvent) error {
		if !injected {
			injected = true
			col, err := e.App.FindCollectionByNameOrId("calculator_configs")
			if err != nil {
				t.Fatalf("finding collection: %v", err)
			}
			rival := core.NewRecord(col)
			rival.Set("owner", "user1")
			rival.Set("trade", "roofing")
			rival.Set("is_configured", false)
			if err := e.App.Save(rival); err != nil {
				t.Fatalf("saving rival config: %v", err)
			}
			rivalID = rival.Id
		}
		return e.Next()
	})

	cfg, err := GetOrCreateConfiguration(app, "user1", "roofing")
	if err != nil {
		t.Fatalf("GetOrCreateConfiguration() error = %v", err)
	}
	if cfg.ID != rivalID {
		t.Errorf("expected the concurrent winner's config %s, got %s", rivalID, cfg.ID)
	}

	records, err := app.FindRecordsByFilter(
		"calculator_configs", "owner = {:owner} && trade = {:trade}", "", 0, 0,
		map[string]any{"owner": "user1", "trade": "roofing"},
	)
	if err != nil {
		t.Fatalf("listing configs: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected exactly one config record after the race, got %d", len(records))
	}
}

func TestGetOrCreateConfiguration_SeparatePerOwnerAndTrade(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	a, _ := GetOrCreateConfiguration(app, "user1", "roofing")
	b, err := GetOrCreateConfiguration(app, "user1", "siding")
	if err != nil {
		t.Fatalf("siding config error = %v", err)
	}
	c, err := GetOrCreateConfiguration(app, "user2", "roofing")
	if err != nil {
		t.Fatalf("user2 config error = %v", err)
	}
	if a.ID == b.ID || a.ID == c.ID {
		t.Error("configurations must be isolated per owner and trade")
	}
}

func TestGetOrCreateConfiguration_RejectsBadInput(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if _, err := GetOrCreateConfiguration(app, "", "roofing"); err == nil {
		t.Error("expected error for missing owner")
	}
	if _, err := GetOrCreateConfiguration(app, "user1", "plumbing"); err == nil {
		t.Error("expected error for unknown trade")
	}
}

func TestEnsureConfigured_ClonesDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cfg, err := GetOrCreateConfiguration(app, "user1", "roofing")
	if err != nil {
		t.Fatalf("GetOrCreateConfiguration() error = %v", err)
	}
	if err := EnsureConfigured(app, cfg); err != nil {
		t.Fatalf("EnsureConfigured() error = %v", err)
	}
	if !cfg.IsConfigured {
		t.Error("EnsureConfigured must flip the in-memory flag")
	}

	materials, err := ListMaterials(app, cfg.ID)
	if err != nil {
		t.Fatalf("ListMaterials() error = %v", err)
	}
	defaults := DefaultMaterials("roofing")
	if len(materials) != len(defaults) {
		t.Fatalf("cloned %d materials, want %d", len(materials), len(defaults))
	}
	for i, def := range defaults {
		if materials[i].Name != def.Name || materials[i].Price != def.Price {
			t.Errorf("material %d = %s/%v, want %s/%v",
				i, materials[i].Name, materials[i].Price, def.Name, def.Price)
		}
	}

	overrides, err := GetPricingOverrides(app, cfg.ID)
	if err != nil {
		t.Fatalf("GetPricingOverrides() error = %v", err)
	}
	for key, want := range DefaultPricingOverrides("roofing") {
		if got := overrides[key]; got != want {
			t.Errorf("override %q = %v, want %v", key, got, want)
		}
	}

	refetched, err := GetOrCreateConfiguration(app, "user1", "roofing")
	if err != nil {
		t.Fatalf("refetch error = %v", err)
	}
	if !refetched.IsConfigured {
		t.Error("configured flag must be persisted")
	}
}

func TestEnsureConfigured_NoopWhenConfigured(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cfg, _ := GetOrCreateConfiguration(app, "user1", "roofing")
	if err := EnsureConfigured(app, cfg); err != nil {
		t.Fatalf("first EnsureConfigured() error = %v", err)
	}
	if err := EnsureConfigured(app, cfg); err != nil {
		t.Fatalf("second EnsureConfigured() error = %v", err)
	}

	materials, _ := ListMaterials(app, cfg.ID)
	if len(materials) != len(DefaultMaterials("roofing")) {
		t.Errorf("repeated EnsureConfigured duplicated the catalog: %d materials", len(materials))
	}
}

func TestEnsureConfigured_CompletesHalfFinishedClone(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cfg, _ := GetOrCreateConfiguration(app, "user1", "roofing")

	// Simulate an interrupted clone: one material exists but the flag was
	// never flipped.
	testhelpers.CreateTestMaterial(t, app, cfg.ID, "shingles", "Leftover Shingle", 300, "per square", "")

	if err := EnsureConfigured(app, cfg); err != nil {
		t.Fatalf("EnsureConfigured() error = %v", err)
	}
	materials, _ := ListMaterials(app, cfg.ID)
	if len(materials) != 1 {
		t.Errorf("expected the existing catalog to be kept as-is, got %d materials", len(materials))
	}
	if !cfg.IsConfigured {
		t.Error("configuration must be marked configured")
	}
}

func TestResetConfiguration(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cfg, _ := GetOrCreateConfiguration(app, "user1", "roofing")
	if err := EnsureConfigured(app, cfg); err != nil {
		t.Fatalf("EnsureConfigured() error = %v", err)
	}
	if _, err := AddMaterial(app, cfg.ID, MaterialInput{
		Category: "custom", Name: "Copper Flashing", Price: 12.5, Unit: "per linear ft",
	}); err != nil {
		t.Fatalf("AddMaterial() error = %v", err)
	}

	if err := ResetConfiguration(app, cfg.ID); err != nil {
		t.Fatalf("ResetConfiguration() error = %v", err)
	}

	materials, _ := ListMaterials(app, cfg.ID)
	if len(materials) != 0 {
		t.Errorf("expected empty catalog after reset, got %d materials", len(materials))
	}
	overrides, _ := GetPricingOverrides(app, cfg.ID)
	if len(overrides) != 0 {
		t.Errorf("expected no overrides after reset, got %d", len(overrides))
	}

	refetched, _ := GetOrCreateConfiguration(app, "user1", "roofing")
	if refetched.IsConfigured {
		t.Error("reset must clear the configured flag")
	}

	// Reset then re-clone restores the trade baseline.
	if err := EnsureConfigured(app, refetched); err != nil {
		t.Fatalf("re-clone error = %v", err)
	}
	materials, _ = ListMaterials(app, cfg.ID)
	if len(materials) != len(DefaultMaterials("roofing")) {
		t.Errorf("re-clone produced %d materials, want the default set", len(materials))
	}
}

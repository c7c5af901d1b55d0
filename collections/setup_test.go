package collections_test

import (
	"testing"

	"contractorhub/collections"
	"contractorhub/services"
	"contractorhub/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"calculator_configs",
	"materials",
	"pricing_overrides",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_CalculatorConfigsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("calculator_configs")

	for _, f := range []string{"owner", "trade", "is_configured", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("calculator_configs: missing field %q", f)
		}
	}

	tradeField := col.Fields.GetByName("trade")
	if sf, ok := tradeField.(*core.SelectField); ok {
		// The select values are spelled out in Setup to keep collections a
		// leaf package; they must track the canonical trade list.
		if len(sf.Values) != len(services.Trades) {
			t.Fatalf("trade select has %d values, services.Trades has %d", len(sf.Values), len(services.Trades))
		}
		for i, trade := range services.Trades {
			if sf.Values[i] != trade {
				t.Errorf("trade select value %d: expected %q, got %q", i, trade, sf.Values[i])
			}
		}
	} else {
		t.Error("trade field is not a SelectField")
	}
}

func TestSetup_MaterialsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("materials")

	fields := []string{"config", "category", "name", "price", "unit", "is_archived", "sort_order", "metadata", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("materials: missing field %q", f)
		}
	}

	configField := col.Fields.GetByName("config")
	if rf, ok := configField.(*core.RelationField); ok {
		if !rf.CascadeDelete {
			t.Error("materials.config: expected CascadeDelete=true")
		}
		if rf.MaxSelect != 1 {
			t.Errorf("materials.config: expected MaxSelect=1, got %d", rf.MaxSelect)
		}
	} else {
		t.Error("materials.config is not a RelationField")
	}
}

func TestSetup_PricingOverridesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("pricing_overrides")

	for _, f := range []string{"config", "component_key", "value", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("pricing_overrides: missing field %q", f)
		}
	}

	configField := col.Fields.GetByName("config")
	if rf, ok := configField.(*core.RelationField); ok {
		if !rf.CascadeDelete {
			t.Error("pricing_overrides.config: expected CascadeDelete=true")
		}
	}
}

func TestSetup_OwnerTradeUnique(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestConfig(t, app, "user1", "roofing")

	col, _ := app.FindCollectionByNameOrId("calculator_configs")
	dup := core.NewRecord(col)
	dup.Set("owner", "user1")
	dup.Set("trade", "roofing")
	if err := app.Save(dup); err == nil {
		t.Error("expected unique (owner, trade) index to reject the duplicate")
	}

	// A different trade for the same owner is fine.
	other := core.NewRecord(col)
	other.Set("owner", "user1")
	other.Set("trade", "siding")
	if err := app.Save(other); err != nil {
		t.Errorf("distinct trade should save: %v", err)
	}
}

func TestSetup_CascadeDeleteOnConfig(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")
	mat := testhelpers.CreateTestMaterial(t, app, cfg.Id, "shingles", "Asphalt Shingles", 350, "per square", "")

	ovCol, _ := app.FindCollectionByNameOrId("pricing_overrides")
	ov := core.NewRecord(ovCol)
	ov.Set("config", cfg.Id)
	ov.Set("component_key", "roofing_nails")
	ov.Set("value", 32)
	if err := app.Save(ov); err != nil {
		t.Fatalf("failed to save override: %v", err)
	}

	if err := app.Delete(cfg); err != nil {
		t.Fatalf("failed to delete config: %v", err)
	}

	if _, err := app.FindRecordById("materials", mat.Id); err == nil {
		t.Error("material should have been cascade-deleted with its config")
	}
	if _, err := app.FindRecordById("pricing_overrides", ov.Id); err == nil {
		t.Error("pricing override should have been cascade-deleted with its config")
	}
}

package services

import (
	"testing"

	"contractorhub/testhelpers"
)

func TestAddMaterial_AppendsToSortOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")

	first, err := AddMaterial(app, cfg.Id, MaterialInput{
		Category: "shingles", Name: "Asphalt Shingles", Price: 350, Unit: "per square",
	})
	if err != nil {
		t.Fatalf("AddMaterial() error = %v", err)
	}
	second, err := AddMaterial(app, cfg.Id, MaterialInput{
		Category: "components", Name: "Ridge Cap", Price: 3.25, Unit: "per linear ft",
	})
	if err != nil {
		t.Fatalf("AddMaterial() error = %v", err)
	}

	if first.SortOrder >= second.SortOrder {
		t.Errorf("sort order must increase: %v then %v", first.SortOrder, second.SortOrder)
	}

	materials, err := ListMaterials(app, cfg.Id)
	if err != nil {
		t.Fatalf("ListMaterials() error = %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(materials))
	}
	if materials[0].Name != "Asphalt Shingles" || materials[1].Name != "Ridge Cap" {
		t.Errorf("list order wrong: %s, %s", materials[0].Name, materials[1].Name)
	}
}

func TestAddMaterial_ValidatesInput(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")

	if _, err := AddMaterial(app, cfg.Id, MaterialInput{Category: "shingles", Price: 10, Unit: "each"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := AddMaterial(app, cfg.Id, MaterialInput{Category: "shingles", Name: "X", Price: -1, Unit: "each"}); err == nil {
		t.Error("expected error for negative price")
	}
}

func TestAddMaterial_RejectsDuplicateActiveName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")

	in := MaterialInput{Category: "shingles", Name: "Asphalt Shingles", Price: 350, Unit: "per square"}
	if _, err := AddMaterial(app, cfg.Id, in); err != nil {
		t.Fatalf("AddMaterial() error = %v", err)
	}
	if _, err := AddMaterial(app, cfg.Id, in); err == nil {
		t.Error("expected unique index to reject a duplicate active name")
	}

	// Case only differs; still a duplicate.
	in.Name = "ASPHALT SHINGLES"
	if _, err := AddMaterial(app, cfg.Id, in); err == nil {
		t.Error("expected duplicate rejection to ignore case")
	}
}

func TestAddMaterial_ArchivedNameCanBeReused(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")

	in := MaterialInput{Category: "shingles", Name: "Asphalt Shingles", Price: 350, Unit: "per square"}
	m, err := AddMaterial(app, cfg.Id, in)
	if err != nil {
		t.Fatalf("AddMaterial() error = %v", err)
	}
	if err := SetMaterialArchived(app, m.ID, true); err != nil {
		t.Fatalf("SetMaterialArchived() error = %v", err)
	}
	if _, err := AddMaterial(app, cfg.Id, in); err != nil {
		t.Errorf("archived entry must not block reusing the name: %v", err)
	}
}

func TestUpdateMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")
	rec := testhelpers.CreateTestMaterial(t, app, cfg.Id, "components", "Ridge Cap", 3.25, "per linear ft", "")

	price := 5.0
	spec := "10 ft sections"
	updated, err := UpdateMaterial(app, rec.Id, MaterialUpdate{Price: &price, UnitSpec: &spec})
	if err != nil {
		t.Fatalf("UpdateMaterial() error = %v", err)
	}
	if updated.Price != 5.0 {
		t.Errorf("price = %v, want 5", updated.Price)
	}
	if updated.UnitSpec != "10 ft sections" {
		t.Errorf("unit spec = %q", updated.UnitSpec)
	}
	if updated.Name != "Ridge Cap" {
		t.Errorf("untouched name changed to %q", updated.Name)
	}

	empty := ""
	if _, err := UpdateMaterial(app, rec.Id, MaterialUpdate{Name: &empty}); err == nil {
		t.Error("expected error for blank name")
	}
	bad := -2.0
	if _, err := UpdateMaterial(app, rec.Id, MaterialUpdate{Price: &bad}); err == nil {
		t.Error("expected error for negative price")
	}
}

func TestSetMaterialArchived_RoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")
	rec := testhelpers.CreateTestMaterial(t, app, cfg.Id, "components", "Ridge Cap", 5.00, "per linear ft", "")

	if err := SetMaterialArchived(app, rec.Id, true); err != nil {
		t.Fatalf("archive error = %v", err)
	}
	materials, _ := ListMaterials(app, cfg.Id)
	if len(materials) != 1 || !materials[0].Archived {
		t.Fatalf("archived entry must stay listed: %+v", materials)
	}

	if err := SetMaterialArchived(app, rec.Id, false); err != nil {
		t.Fatalf("unarchive error = %v", err)
	}
	materials, _ = ListMaterials(app, cfg.Id)
	if materials[0].Archived {
		t.Error("unarchive did not clear the flag")
	}
}

func TestDeleteMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")
	rec := testhelpers.CreateTestMaterial(t, app, cfg.Id, "components", "Ridge Cap", 3.25, "per linear ft", "")

	if err := DeleteMaterial(app, rec.Id); err != nil {
		t.Fatalf("DeleteMaterial() error = %v", err)
	}
	materials, _ := ListMaterials(app, cfg.Id)
	if len(materials) != 0 {
		t.Errorf("expected empty catalog after delete, got %d", len(materials))
	}
	if err := DeleteMaterial(app, rec.Id); err == nil {
		t.Error("deleting a missing material must error")
	}
}

func TestSetPricingOverride_Upserts(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")

	if err := SetPricingOverride(app, cfg.Id, "roofing_nails", 32); err != nil {
		t.Fatalf("SetPricingOverride() error = %v", err)
	}
	if err := SetPricingOverride(app, cfg.Id, "roofing_nails", 40); err != nil {
		t.Fatalf("second SetPricingOverride() error = %v", err)
	}

	overrides, err := GetPricingOverrides(app, cfg.Id)
	if err != nil {
		t.Fatalf("GetPricingOverrides() error = %v", err)
	}
	if len(overrides) != 1 {
		t.Errorf("expected one override record, got %d", len(overrides))
	}
	if overrides["roofing_nails"] != 40 {
		t.Errorf("roofing_nails = %v, want 40 (latest write wins)", overrides["roofing_nails"])
	}

	if err := SetPricingOverride(app, cfg.Id, "  ", 5); err == nil {
		t.Error("expected error for blank component key")
	}
}

func TestMaterialRoundTrip_UnitSpecMetadata(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.CreateTestConfig(t, app, "user1", "roofing")

	added, err := AddMaterial(app, cfg.Id, MaterialInput{
		Category: "underlayment", Name: "Ice & Water Shield", Price: 70,
		Unit: "per roll", UnitSpec: "200 sq ft",
	})
	if err != nil {
		t.Fatalf("AddMaterial() error = %v", err)
	}
	if added.UnitSpec != "200 sq ft" {
		t.Errorf("unit spec = %q, want %q", added.UnitSpec, "200 sq ft")
	}

	materials, _ := ListMaterials(app, cfg.Id)
	if materials[0].UnitSpec != "200 sq ft" {
		t.Errorf("persisted unit spec = %q", materials[0].UnitSpec)
	}
	if qty := ResolveUnitQuantity(materials, "Ice & Water Shield", "underlayment", 400); qty != 200 {
		t.Errorf("resolved coverage = %v, want 200", qty)
	}
}

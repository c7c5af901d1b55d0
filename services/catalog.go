package services

import (
	"fmt"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// MaterialInput carries the user-supplied fields for a new catalog entry.
type MaterialInput struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	UnitSpec string  `json:"unit_spec"`
}

// MaterialUpdate carries a partial update; nil fields are left untouched.
type MaterialUpdate struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Unit     *string  `json:"unit"`
	UnitSpec *string  `json:"unit_spec"`
}

// ValidateMaterialInput checks the required fields before any I/O is
// attempted. Returns an empty map when the input is valid.
func ValidateMaterialInput(in MaterialInput) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Material name is required"
	}
	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = "Category is required"
	}
	if in.Price < 0 {
		errs["price"] = "Price cannot be negative"
	}
	if strings.TrimSpace(in.Unit) == "" {
		errs["unit"] = "Unit is required"
	}
	return errs
}

// ListMaterials returns every material belonging to a configuration,
// ordered by sort position.
func ListMaterials(app core.App, configID string) ([]Material, error) {
	records, err := app.FindRecordsByFilter(
		"materials",
		"config = {:config}",
		"sort_order",
		0,
		0,
		map[string]any{"config": configID},
	)
	if err != nil {
		return nil, fmt.Errorf("list materials for config %s: %w", configID, err)
	}

	materials := make([]Material, 0, len(records))
	for _, rec := range records {
		materials = append(materials, MaterialFromRecord(rec))
	}
	return materials, nil
}

// AddMaterial creates a new catalog entry for a configuration. The entry is
// active (not archived) and is placed at the end of the sort order.
// Marking the configuration as configured is a separate lifecycle step, not
// a side effect of this write.
func AddMaterial(app core.App, configID string, in MaterialInput) (*Material, error) {
	if errs := ValidateMaterialInput(in); len(errs) > 0 {
		return nil, fmt.Errorf("invalid material input: %v", errs)
	}

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return nil, fmt.Errorf("materials collection not found: %w", err)
	}

	count, err := app.CountRecords("materials", dbx.HashExp{"config": configID})
	if err != nil {
		return nil, fmt.Errorf("count materials for config %s: %w", configID, err)
	}

	rec := core.NewRecord(col)
	rec.Set("config", configID)
	rec.Set("category", strings.TrimSpace(in.Category))
	rec.Set("name", strings.TrimSpace(in.Name))
	rec.Set("price", in.Price)
	rec.Set("unit", strings.TrimSpace(in.Unit))
	rec.Set("is_archived", false)
	rec.Set("sort_order", float64(count)+1)
	if in.UnitSpec != "" {
		rec.Set("metadata", map[string]string{"unitSpec": in.UnitSpec})
	}

	if err := app.Save(rec); err != nil {
		return nil, fmt.Errorf("save material %q: %w", in.Name, err)
	}

	m := MaterialFromRecord(rec)
	return &m, nil
}

// UpdateMaterial merges the provided fields into an existing material.
// The record's update timestamp refreshes automatically.
func UpdateMaterial(app core.App, materialID string, update MaterialUpdate) (*Material, error) {
	rec, err := app.FindRecordById("materials", materialID)
	if err != nil {
		return nil, fmt.Errorf("material %s not found: %w", materialID, err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("material name cannot be empty")
		}
		rec.Set("name", name)
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, fmt.Errorf("material price cannot be negative")
		}
		rec.Set("price", *update.Price)
	}
	if update.Unit != nil {
		rec.Set("unit", strings.TrimSpace(*update.Unit))
	}
	if update.UnitSpec != nil {
		if *update.UnitSpec == "" {
			rec.Set("metadata", nil)
		} else {
			rec.Set("metadata", map[string]string{"unitSpec": *update.UnitSpec})
		}
	}

	if err := app.Save(rec); err != nil {
		return nil, fmt.Errorf("update material %s: %w", materialID, err)
	}

	m := MaterialFromRecord(rec)
	return &m, nil
}

// SetMaterialArchived toggles the soft-delete flag. Archived materials stay
// in the catalog but are ignored by pricing resolution.
func SetMaterialArchived(app core.App, materialID string, archived bool) error {
	rec, err := app.FindRecordById("materials", materialID)
	if err != nil {
		return fmt.Errorf("material %s not found: %w", materialID, err)
	}
	rec.Set("is_archived", archived)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("set archived=%v on material %s: %w", archived, materialID, err)
	}
	return nil
}

// DeleteMaterial hard-deletes a catalog entry. Irreversible; callers are
// expected to confirm with the user first.
func DeleteMaterial(app core.App, materialID string) error {
	rec, err := app.FindRecordById("materials", materialID)
	if err != nil {
		return fmt.Errorf("material %s not found: %w", materialID, err)
	}
	if err := app.Delete(rec); err != nil {
		return fmt.Errorf("delete material %s: %w", materialID, err)
	}
	return nil
}

// GetPricingOverrides returns the flat component-key to value map for a
// configuration.
func GetPricingOverrides(app core.App, configID string) (map[string]float64, error) {
	records, err := app.FindRecordsByFilter(
		"pricing_overrides",
		"config = {:config}",
		"",
		0,
		0,
		map[string]any{"config": configID},
	)
	if err != nil {
		return nil, fmt.Errorf("list pricing overrides for config %s: %w", configID, err)
	}

	overrides := make(map[string]float64, len(records))
	for _, rec := range records {
		overrides[rec.GetString("component_key")] = rec.GetFloat("value")
	}
	return overrides, nil
}

// SetPricingOverride upserts a single component value for a configuration.
func SetPricingOverride(app core.App, configID, componentKey string, value float64) error {
	if strings.TrimSpace(componentKey) == "" {
		return fmt.Errorf("component key is required")
	}

	existing, err := app.FindFirstRecordByFilter(
		"pricing_overrides",
		"config = {:config} && component_key = {:key}",
		map[string]any{"config": configID, "key": componentKey},
	)
	if err == nil && existing != nil {
		existing.Set("value", value)
		if err := app.Save(existing); err != nil {
			return fmt.Errorf("update pricing override %q: %w", componentKey, err)
		}
		return nil
	}

	col, err := app.FindCollectionByNameOrId("pricing_overrides")
	if err != nil {
		return fmt.Errorf("pricing_overrides collection not found: %w", err)
	}

	rec := core.NewRecord(col)
	rec.Set("config", configID)
	rec.Set("component_key", componentKey)
	rec.Set("value", value)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save pricing override %q: %w", componentKey, err)
	}
	return nil
}

package services

import (
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// Configuration is the per-user, per-trade root record that owns a material
// catalog and its pricing overrides.
type Configuration struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	Trade        string `json:"trade"`
	IsConfigured bool   `json:"is_configured"`
}

// Material is one priced catalog entry, either a cloned trade default or a
// user-added custom item.
type Material struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	Archived  bool    `json:"is_archived"`
	SortOrder float64 `json:"sort_order"`
	// UnitSpec describes how much base quantity one priced unit covers,
	// e.g. "200 sq ft" for one roll. Free text, parsed by ParseUnitSpec.
	UnitSpec string `json:"unit_spec,omitempty"`
}

// ConfigurationFromRecord converts a calculator_configs record.
func ConfigurationFromRecord(rec *core.Record) Configuration {
	return Configuration{
		ID:           rec.Id,
		Owner:        rec.GetString("owner"),
		Trade:        rec.GetString("trade"),
		IsConfigured: rec.GetBool("is_configured"),
	}
}

// MaterialFromRecord converts a materials record, pulling the unitSpec key
// out of the metadata JSON field.
func MaterialFromRecord(rec *core.Record) Material {
	m := Material{
		ID:        rec.Id,
		Category:  rec.GetString("category"),
		Name:      rec.GetString("name"),
		Price:     rec.GetFloat("price"),
		Unit:      rec.GetString("unit"),
		Archived:  rec.GetBool("is_archived"),
		SortOrder: rec.GetFloat("sort_order"),
	}

	meta := map[string]string{}
	if err := rec.UnmarshalJSONField("metadata", &meta); err == nil {
		m.UnitSpec = meta["unitSpec"]
	} else if rec.GetString("metadata") != "" {
		log.Printf("materials: record %s has malformed metadata: %v", rec.Id, err)
	}

	return m
}

package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// GetOrCreateConfiguration returns the Configuration for (owner, trade),
// creating it on first use.
//
// Two near-simultaneous first accesses can both reach the create step; the
// unique index on (owner, trade) makes the losing save fail. That failure is
// recovered by re-fetching the winner's record instead of surfacing an
// error. The read, create, re-read-on-conflict sequence is load-bearing and
// must stay intact.
func GetOrCreateConfiguration(app core.App, ownerID, trade string) (*Configuration, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if !IsValidTrade(trade) {
		return nil, fmt.Errorf("unknown trade %q", trade)
	}

	existing, err := findConfiguration(app, ownerID, trade)
	if err == nil {
		return existing, nil
	}

	col, err := app.FindCollectionByNameOrId("calculator_configs")
	if err != nil {
		return nil, fmt.Errorf("calculator_configs collection not found: %w", err)
	}

	rec := core.NewRecord(col)
	rec.Set("owner", ownerID)
	rec.Set("trade", trade)
	rec.Set("is_configured", false)

	if saveErr := app.Save(rec); saveErr != nil {
		// A concurrent caller may have won the create; prefer their record.
		if recovered, refetchErr := findConfiguration(app, ownerID, trade); refetchErr == nil {
			log.Printf("lifecycle: recovered from concurrent config creation for %s/%s", ownerID, trade)
			return recovered, nil
		}
		return nil, fmt.Errorf("create configuration for %s/%s: %w", ownerID, trade, saveErr)
	}

	cfg := ConfigurationFromRecord(rec)
	return &cfg, nil
}

func findConfiguration(app core.App, ownerID, trade string) (*Configuration, error) {
	rec, err := app.FindFirstRecordByFilter(
		"calculator_configs",
		"owner = {:owner} && trade = {:trade}",
		map[string]any{"owner": ownerID, "trade": trade},
	)
	if err != nil {
		return nil, err
	}
	cfg := ConfigurationFromRecord(rec)
	return &cfg, nil
}

// EnsureConfigured clones the trade defaults into a freshly created
// configuration. It is a no-op when the configuration is already marked
// configured or already holds materials (a half-finished clone from a crash
// is completed by marking only).
func EnsureConfigured(app core.App, cfg *Configuration) error {
	if cfg.IsConfigured {
		return nil
	}

	count, err := app.CountRecords("materials", dbx.HashExp{"config": cfg.ID})
	if err != nil {
		return fmt.Errorf("count materials for config %s: %w", cfg.ID, err)
	}
	if count > 0 {
		if err := MarkConfigured(app, cfg.ID); err != nil {
			return err
		}
		cfg.IsConfigured = true
		return nil
	}

	if err := CloneDefaults(app, cfg.ID, cfg.Trade); err != nil {
		return err
	}
	cfg.IsConfigured = true
	return nil
}

// CloneDefaults copies the trade's hard-coded default catalog and default
// pricing overrides into the configuration, then marks it configured.
// The whole clone runs in one transaction so a failure leaves no partial
// catalog behind.
func CloneDefaults(app core.App, configID, trade string) error {
	defaults := DefaultMaterials(trade)
	if len(defaults) == 0 {
		return fmt.Errorf("trade %q has no default catalog", trade)
	}

	err := app.RunInTransaction(func(txApp core.App) error {
		for _, def := range defaults {
			if _, err := AddMaterial(txApp, configID, def); err != nil {
				return fmt.Errorf("clone default material %q: %w", def.Name, err)
			}
		}
		for key, value := range DefaultPricingOverrides(trade) {
			if err := SetPricingOverride(txApp, configID, key, value); err != nil {
				return fmt.Errorf("clone default override %q: %w", key, err)
			}
		}
		return MarkConfigured(txApp, configID)
	})
	if err != nil {
		return fmt.Errorf("clone defaults for config %s: %w", configID, err)
	}
	return nil
}

// MarkConfigured flips the is_configured flag. Explicit lifecycle step so
// the transition is visible and testable on its own.
func MarkConfigured(app core.App, configID string) error {
	rec, err := app.FindRecordById("calculator_configs", configID)
	if err != nil {
		return fmt.Errorf("configuration %s not found: %w", configID, err)
	}
	if rec.GetBool("is_configured") {
		return nil
	}
	rec.Set("is_configured", true)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("mark configuration %s configured: %w", configID, err)
	}
	return nil
}

// ResetConfiguration deletes every material and pricing override owned by
// the configuration and clears the configured flag. Irreversible; callers
// normally follow it with CloneDefaults to restore the trade baseline.
func ResetConfiguration(app core.App, configID string) error {
	cfgRec, err := app.FindRecordById("calculator_configs", configID)
	if err != nil {
		return fmt.Errorf("configuration %s not found: %w", configID, err)
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		materials, err := txApp.FindRecordsByFilter(
			"materials", "config = {:config}", "", 0, 0,
			map[string]any{"config": configID},
		)
		if err != nil {
			return fmt.Errorf("list materials: %w", err)
		}
		for _, rec := range materials {
			if err := txApp.Delete(rec); err != nil {
				return fmt.Errorf("delete material %s: %w", rec.Id, err)
			}
		}

		overrides, err := txApp.FindRecordsByFilter(
			"pricing_overrides", "config = {:config}", "", 0, 0,
			map[string]any{"config": configID},
		)
		if err != nil {
			return fmt.Errorf("list pricing overrides: %w", err)
		}
		for _, rec := range overrides {
			if err := txApp.Delete(rec); err != nil {
				return fmt.Errorf("delete pricing override %s: %w", rec.Id, err)
			}
		}

		cfgRec.Set("is_configured", false)
		if err := txApp.Save(cfgRec); err != nil {
			return fmt.Errorf("clear configured flag: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset configuration %s: %w", configID, err)
	}
	return nil
}

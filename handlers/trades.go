package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/services"
)

// HandleTradeList returns every trade with the caller's configuration
// status, for the trade picker page.
func HandleTradeList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}

		type tradeStatus struct {
			Trade         string `json:"trade"`
			IsConfigured  bool   `json:"is_configured"`
			HasCalculator bool   `json:"has_calculator"`
		}

		calculators := map[string]bool{"roofing": true, "siding": true, "fencing": true, "gutter": true}

		statuses := make([]tradeStatus, 0, len(services.Trades))
		for _, trade := range services.Trades {
			status := tradeStatus{Trade: trade, HasCalculator: calculators[trade]}
			rec, err := app.FindFirstRecordByFilter(
				"calculator_configs",
				"owner = {:owner} && trade = {:trade}",
				map[string]any{"owner": userID, "trade": trade},
			)
			if err == nil && rec != nil {
				status.IsConfigured = rec.GetBool("is_configured")
			}
			statuses = append(statuses, status)
		}

		return e.JSON(http.StatusOK, map[string]any{"trades": statuses})
	}
}

// HandleTradeConfig loads (or lazily creates) the caller's configuration
// for a trade, cloning the default catalog on first touch, and returns the
// configuration together with its catalog, overrides and the per-trade
// option lists every configuration page is parameterized by.
func HandleTradeConfig(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		trade := e.Request.PathValue("trade")

		cfg, err := services.GetOrCreateConfiguration(app, userID, trade)
		if err != nil {
			log.Printf("trade_config: could not resolve configuration: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Could not load configuration"})
		}

		if err := services.EnsureConfigured(app, cfg); err != nil {
			log.Printf("trade_config: could not clone defaults for %s: %v", cfg.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not prepare default catalog"})
		}

		materials, err := services.ListMaterials(app, cfg.ID)
		if err != nil {
			log.Printf("trade_config: could not list materials for %s: %v", cfg.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load catalog"})
		}

		overrides, err := services.GetPricingOverrides(app, cfg.ID)
		if err != nil {
			log.Printf("trade_config: could not load overrides for %s: %v", cfg.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load pricing overrides"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"configuration": cfg,
			"materials":     materials,
			"overrides":     overrides,
			"categories":    services.CategoryOptions(trade),
			"units":         services.UnitOptions[trade],
			"waste_factors": services.WasteFactorOptions,
		})
	}
}

// HandleConfigReset wipes the configuration's custom data and restores the
// trade's default catalog. Irreversible; the UI confirms before calling.
func HandleConfigReset(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		trade := e.Request.PathValue("trade")

		cfg, err := services.GetOrCreateConfiguration(app, userID, trade)
		if err != nil {
			log.Printf("config_reset: could not resolve configuration: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Could not load configuration"})
		}

		if err := services.ResetConfiguration(app, cfg.ID); err != nil {
			log.Printf("config_reset: reset failed for %s: %v", cfg.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Reset failed"})
		}
		if err := services.CloneDefaults(app, cfg.ID, cfg.Trade); err != nil {
			log.Printf("config_reset: re-clone failed for %s: %v", cfg.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not restore default catalog"})
		}

		materials, err := services.ListMaterials(app, cfg.ID)
		if err != nil {
			log.Printf("config_reset: could not list materials for %s: %v", cfg.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load catalog"})
		}

		return e.JSON(http.StatusOK, map[string]any{"materials": materials})
	}
}

// findOwnedConfig loads a configuration by id and verifies it belongs to
// the caller.
func findOwnedConfig(app *pocketbase.PocketBase, e *core.RequestEvent, userID string) (*core.Record, bool) {
	configID := e.Request.PathValue("configId")
	rec, err := app.FindRecordById("calculator_configs", configID)
	if err != nil {
		e.JSON(http.StatusNotFound, map[string]string{"error": "Configuration not found"})
		return nil, false
	}
	if rec.GetString("owner") != userID {
		e.JSON(http.StatusForbidden, map[string]string{"error": "Configuration belongs to another user"})
		return nil, false
	}
	return rec, true
}

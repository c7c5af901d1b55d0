package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/services"
)

// HandleOverridesGet returns the configuration's flat component-key price map.
func HandleOverridesGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}

		overrides, err := services.GetPricingOverrides(app, cfgRec.Id)
		if err != nil {
			log.Printf("overrides_get: could not load overrides for %s: %v", cfgRec.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load pricing overrides"})
		}

		return e.JSON(http.StatusOK, map[string]any{"overrides": overrides})
	}
}

// HandleOverrideSet upserts one component value.
func HandleOverrideSet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}

		var body struct {
			ComponentKey string  `json:"component_key"`
			Value        float64 `json:"value"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		errs := make(map[string]string)
		if strings.TrimSpace(body.ComponentKey) == "" {
			errs["component_key"] = "Component key is required"
		}
		if body.Value < 0 {
			errs["value"] = "Value cannot be negative"
		}
		if len(errs) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		}

		if err := services.SetPricingOverride(app, cfgRec.Id, body.ComponentKey, body.Value); err != nil {
			log.Printf("override_set: could not save %q for %s: %v", body.ComponentKey, cfgRec.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not save pricing override"})
		}

		return e.JSON(http.StatusOK, map[string]any{body.ComponentKey: body.Value})
	}
}

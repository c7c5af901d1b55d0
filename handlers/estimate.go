package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/services"
)

// loadCatalogSnapshot resolves the caller's configuration for a trade and
// loads the catalog + overrides the calculators price against. The snapshot
// is loaded once per request; every line item resolves against it in memory.
func loadCatalogSnapshot(app *pocketbase.PocketBase, e *core.RequestEvent, trade string) ([]services.Material, map[string]float64, bool) {
	userID, ok := requireUserID(e)
	if !ok {
		return nil, nil, false
	}

	cfg, err := services.GetOrCreateConfiguration(app, userID, trade)
	if err != nil {
		log.Printf("estimate: could not resolve %s configuration: %v", trade, err)
		e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load configuration"})
		return nil, nil, false
	}
	if err := services.EnsureConfigured(app, cfg); err != nil {
		log.Printf("estimate: could not clone %s defaults: %v", trade, err)
		e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not prepare default catalog"})
		return nil, nil, false
	}

	materials, err := services.ListMaterials(app, cfg.ID)
	if err != nil {
		log.Printf("estimate: could not load catalog for %s: %v", cfg.ID, err)
		e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load catalog"})
		return nil, nil, false
	}
	overrides, err := services.GetPricingOverrides(app, cfg.ID)
	if err != nil {
		log.Printf("estimate: could not load overrides for %s: %v", cfg.ID, err)
		e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load pricing overrides"})
		return nil, nil, false
	}

	return materials, overrides, true
}

// HandleRoofingEstimate computes a roofing estimate from posted inputs.
// Invalid input never reaches the calculator; the field errors go straight
// back to the form.
func HandleRoofingEstimate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in services.RoofingInput
		if err := e.BindBody(&in); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if errs := services.ValidateRoofingInput(in); len(errs) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		}

		materials, overrides, ok := loadCatalogSnapshot(app, e, "roofing")
		if !ok {
			return nil
		}

		est, err := services.CalculateRoofing(in, materials, overrides)
		if err != nil {
			log.Printf("roofing_estimate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
		}

		return e.JSON(http.StatusOK, est)
	}
}

// HandleSidingEstimate computes a siding estimate from posted inputs.
func HandleSidingEstimate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in services.SidingInput
		if err := e.BindBody(&in); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if errs := services.ValidateSidingInput(in); len(errs) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		}

		materials, overrides, ok := loadCatalogSnapshot(app, e, "siding")
		if !ok {
			return nil
		}

		est, err := services.CalculateSiding(in, materials, overrides)
		if err != nil {
			log.Printf("siding_estimate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
		}

		return e.JSON(http.StatusOK, est)
	}
}

// HandleFencingEstimate computes a fencing estimate from posted inputs.
func HandleFencingEstimate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in services.FencingInput
		if err := e.BindBody(&in); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if errs := services.ValidateFencingInput(in); len(errs) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		}

		materials, overrides, ok := loadCatalogSnapshot(app, e, "fencing")
		if !ok {
			return nil
		}

		est, err := services.CalculateFencing(in, materials, overrides)
		if err != nil {
			log.Printf("fencing_estimate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
		}

		return e.JSON(http.StatusOK, est)
	}
}

// HandleGutterEstimate computes a gutter estimate from posted inputs.
func HandleGutterEstimate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in services.GutterInput
		if err := e.BindBody(&in); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if errs := services.ValidateGutterInput(in); len(errs) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		}

		materials, overrides, ok := loadCatalogSnapshot(app, e, "gutter")
		if !ok {
			return nil
		}

		est, err := services.CalculateGutter(in, materials, overrides)
		if err != nil {
			log.Printf("gutter_estimate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
		}

		return e.JSON(http.StatusOK, est)
	}
}

package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/collections"
	"contractorhub/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections on startup. Default catalogs are cloned lazily
	// per user, the first time a trade's configuration is touched.
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Resolve the caller's user id globally
		se.Router.BindFunc(handlers.UserScopeMiddleware())

		// ── Trade configuration ──────────────────────────────────
		se.Router.GET("/trades", handlers.HandleTradeList(app))
		se.Router.GET("/trades/{trade}/config", handlers.HandleTradeConfig(app))
		se.Router.POST("/trades/{trade}/config/reset", handlers.HandleConfigReset(app))

		// ── Material catalog CRUD ────────────────────────────────
		se.Router.POST("/configs/{configId}/materials", handlers.HandleMaterialAdd(app))
		se.Router.PATCH("/configs/{configId}/materials/{materialId}", handlers.HandleMaterialUpdate(app))
		se.Router.POST("/configs/{configId}/materials/{materialId}/archive", handlers.HandleMaterialArchive(app, true))
		se.Router.POST("/configs/{configId}/materials/{materialId}/unarchive", handlers.HandleMaterialArchive(app, false))
		se.Router.DELETE("/configs/{configId}/materials/{materialId}", handlers.HandleMaterialDelete(app))

		// ── Pricing overrides ────────────────────────────────────
		se.Router.GET("/configs/{configId}/overrides", handlers.HandleOverridesGet(app))
		se.Router.PUT("/configs/{configId}/overrides", handlers.HandleOverrideSet(app))

		// ── Material import (template must be before validate/commit
		//    so "template" is not matched as a material id) ────────
		se.Router.GET("/configs/{configId}/materials/import/template", handlers.HandleMaterialTemplateDownload(app))
		se.Router.POST("/configs/{configId}/materials/import", handlers.HandleMaterialImportValidate(app))
		se.Router.POST("/configs/{configId}/materials/import/commit", handlers.HandleMaterialImportCommit(app))

		// ── Calculators ──────────────────────────────────────────
		se.Router.POST("/trades/roofing/estimate", handlers.HandleRoofingEstimate(app))
		se.Router.POST("/trades/siding/estimate", handlers.HandleSidingEstimate(app))
		se.Router.POST("/trades/fencing/estimate", handlers.HandleFencingEstimate(app))
		se.Router.POST("/trades/gutter/estimate", handlers.HandleGutterEstimate(app))

		// ── Estimate export ──────────────────────────────────────
		se.Router.POST("/estimates/export/excel", handlers.HandleEstimateExportExcel(app))
		se.Router.POST("/estimates/export/pdf", handlers.HandleEstimateExportPDF(app))

		// Redirect home to the trade list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/trades")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

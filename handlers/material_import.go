package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/services"
)

// HandleMaterialTemplateDownload serves the Excel template for bulk
// material entry.
// Route: GET /configs/{configId}/materials/import/template
func HandleMaterialTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}
		trade := cfgRec.GetString("trade")

		xlsxBytes, err := services.GenerateMaterialTemplate(trade)
		if err != nil {
			log.Printf("material_template: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		filename := fmt.Sprintf("Materials_%s_Template_%d.xlsx", trade, time.Now().Year())

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleMaterialImportValidate accepts an uploaded .xlsx, validates every
// row, and returns the parsed rows (for a later commit) plus any errors.
// Nothing is written to the catalog.
// Route: POST /configs/{configId}/materials/import
func HandleMaterialImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}
		trade := cfgRec.GetString("trade")

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "File too large or invalid form data"})
		}

		file, _, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Please select a file to upload"})
		}
		defer file.Close()

		result, err := services.ValidateMaterialImport(file, trade)
		if err != nil {
			log.Printf("material_import_validate: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		// The commit round-trips the parsed rows so the upload is not
		// re-parsed server-side.
		resp := map[string]any{
			"total_rows": result.TotalRows,
			"valid_rows": result.ValidRows,
			"error_rows": result.ErrorRows,
			"errors":     result.Errors,
		}
		if result.ErrorRows == 0 {
			resp["parsed_rows"] = result.ParsedRows
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleMaterialImportCommit inserts previously validated rows into the
// configuration's catalog.
// Route: POST /configs/{configId}/materials/import/commit
func HandleMaterialImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}
		trade := cfgRec.GetString("trade")

		var body struct {
			ParsedRows json.RawMessage `json:"parsed_rows"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if len(body.ParsedRows) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "File data missing. Please re-upload and try again."})
		}

		var parsedRows []map[string]string
		if err := json.Unmarshal(body.ParsedRows, &parsedRows); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid parsed data"})
		}

		result, err := services.CommitMaterialImport(app, cfgRec.Id, trade, parsedRows)
		if err != nil {
			log.Printf("material_import_commit: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Import failed"})
		}

		return e.JSON(http.StatusOK, result)
	}
}

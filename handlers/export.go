package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/services"
)

// estimateExportRequest carries the document fields plus exactly one
// trade's calculator inputs.
type estimateExportRequest struct {
	Title       string                  `json:"title"`
	PreparedFor string                  `json:"prepared_for"`
	Roofing     *services.RoofingInput  `json:"roofing,omitempty"`
	Siding      *services.SidingInput   `json:"siding,omitempty"`
	Fencing     *services.FencingInput  `json:"fencing,omitempty"`
	Gutter      *services.GutterInput   `json:"gutter,omitempty"`
}

// buildEstimateExport recomputes the estimate server-side from the posted
// inputs and assembles the export payload. Totals are never trusted from
// the client.
func buildEstimateExport(app *pocketbase.PocketBase, e *core.RequestEvent) (*services.EstimateExport, bool) {
	var req estimateExportRequest
	if err := e.BindBody(&req); err != nil {
		e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return nil, false
	}

	var (
		trade string
		est   *services.Estimate
	)

	switch {
	case req.Roofing != nil:
		trade = "roofing"
		if errs := services.ValidateRoofingInput(*req.Roofing); len(errs) > 0 {
			e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
			return nil, false
		}
		materials, overrides, ok := loadCatalogSnapshot(app, e, trade)
		if !ok {
			return nil, false
		}
		var err error
		est, err = services.CalculateRoofing(*req.Roofing, materials, overrides)
		if err != nil {
			log.Printf("estimate_export: %v", err)
			e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
			return nil, false
		}
	case req.Siding != nil:
		trade = "siding"
		if errs := services.ValidateSidingInput(*req.Siding); len(errs) > 0 {
			e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
			return nil, false
		}
		materials, overrides, ok := loadCatalogSnapshot(app, e, trade)
		if !ok {
			return nil, false
		}
		var err error
		est, err = services.CalculateSiding(*req.Siding, materials, overrides)
		if err != nil {
			log.Printf("estimate_export: %v", err)
			e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
			return nil, false
		}
	case req.Fencing != nil:
		trade = "fencing"
		if errs := services.ValidateFencingInput(*req.Fencing); len(errs) > 0 {
			e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
			return nil, false
		}
		materials, overrides, ok := loadCatalogSnapshot(app, e, trade)
		if !ok {
			return nil, false
		}
		var err error
		est, err = services.CalculateFencing(*req.Fencing, materials, overrides)
		if err != nil {
			log.Printf("estimate_export: %v", err)
			e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
			return nil, false
		}
	case req.Gutter != nil:
		trade = "gutter"
		if errs := services.ValidateGutterInput(*req.Gutter); len(errs) > 0 {
			e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
			return nil, false
		}
		materials, overrides, ok := loadCatalogSnapshot(app, e, trade)
		if !ok {
			return nil, false
		}
		var err error
		est, err = services.CalculateGutter(*req.Gutter, materials, overrides)
		if err != nil {
			log.Printf("estimate_export: %v", err)
			e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not compute estimate"})
			return nil, false
		}
	default:
		e.JSON(http.StatusBadRequest, map[string]string{"error": "No calculator inputs provided"})
		return nil, false
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.ToUpper(trade[:1]) + trade[1:] + " Estimate"
	}

	return &services.EstimateExport{
		Trade:       trade,
		Title:       title,
		PreparedFor: strings.TrimSpace(req.PreparedFor),
		Date:        time.Now().Format("2006-01-02"),
		Lines:       est.Lines,
		Total:       est.Total,
	}, true
}

// HandleEstimateExportExcel computes an estimate and downloads it as an
// Excel workbook.
func HandleEstimateExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, ok := buildEstimateExport(app, e)
		if !ok {
			return nil
		}

		xlsxBytes, err := services.GenerateEstimateExcel(*data)
		if err != nil {
			log.Printf("estimate_export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Estimate_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleEstimateExportPDF computes an estimate and downloads it as a PDF
// proposal.
func HandleEstimateExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, ok := buildEstimateExport(app, e)
		if !ok {
			return nil
		}

		pdfBytes, err := services.GenerateEstimatePDF(*data)
		if err != nil {
			log.Printf("estimate_export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Estimate_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// sanitizeFilename strips characters that break Content-Disposition.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

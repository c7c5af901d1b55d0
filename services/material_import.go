package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

const importChunkSize = 100

// Column layout of the material import template. Order matters: the
// template writes these headers and the parser maps uploads back by label.
var materialImportFields = []struct {
	Key      string
	Label    string
	Required bool
}{
	{Key: "category", Label: "Category", Required: true},
	{Key: "name", Label: "Name", Required: true},
	{Key: "price", Label: "Price", Required: true},
	{Key: "unit", Label: "Unit", Required: true},
	{Key: "unit_spec", Label: "Unit Spec", Required: false},
}

// ImportRowError represents a single field-level failure on one row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportValidation is returned after parsing and validating an upload.
type ImportValidation struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ImportRowError    `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
}

// ImportResult holds the outcome of a committed import.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	RolledBack bool             `json:"rolled_back"`
}

// GenerateMaterialTemplate builds the downloadable .xlsx template for bulk
// material entry. The second sheet lists the trade's valid categories and
// unit options so users do not have to guess.
func GenerateMaterialTemplate(trade string) ([]byte, error) {
	if !IsValidTrade(trade) {
		return nil, fmt.Errorf("unknown trade %q", trade)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Materials"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheetName)

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	optionalStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})

	for i, field := range materialImportFields {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		cell := colName + "1"

		header := field.Label
		style := optionalStyle
		if field.Required {
			header += " *"
			style = requiredStyle
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, style)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	// Sample row.
	f.SetCellValue(sheetName, "A2", CategoryOptions(trade)[0])
	f.SetCellValue(sheetName, "B2", "Example Material")
	f.SetCellValue(sheetName, "C2", 12.50)
	f.SetCellValue(sheetName, "D2", UnitOptions[trade][0])
	f.SetCellValue(sheetName, "E2", "100 sq ft")

	// Reference sheet with the allowed values.
	refSheet := "Options"
	if _, err := f.NewSheet(refSheet); err != nil {
		return nil, fmt.Errorf("create options sheet: %w", err)
	}
	f.SetCellValue(refSheet, "A1", "Valid Categories")
	for i, cat := range CategoryOptions(trade) {
		f.SetCellValue(refSheet, fmt.Sprintf("A%d", i+2), cat)
	}
	f.SetCellValue(refSheet, "B1", "Unit Options")
	for i, unit := range UnitOptions[trade] {
		f.SetCellValue(refSheet, fmt.Sprintf("B%d", i+2), unit)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateMaterialImport parses an uploaded .xlsx file and validates every
// row against the trade's catalog rules. No records are written.
func ValidateMaterialImport(file io.Reader, trade string) (*ImportValidation, error) {
	headers, dataRows, err := parseMaterialSheet(file)
	if err != nil {
		return nil, err
	}

	keys, unrecognized := mapImportHeaders(headers)
	if len(unrecognized) > 0 {
		return nil, fmt.Errorf("unrecognized columns: %s", strings.Join(unrecognized, ", "))
	}

	result := &ImportValidation{TotalRows: len(dataRows)}
	errorRows := make(map[int]bool)

	for i, row := range dataRows {
		rowNum := i + 2 // 1-indexed plus the header row

		parsed := make(map[string]string, len(keys))
		for j, key := range keys {
			if j < len(row) {
				parsed[key] = strings.TrimSpace(row[j])
			}
		}

		rowErrors := validateImportRow(rowNum, parsed, trade)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			errorRows[rowNum] = true
		}
		result.ParsedRows = append(result.ParsedRows, parsed)
	}

	result.ErrorRows = len(errorRows)
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

func parseMaterialSheet(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapImportHeaders maps uploaded column headers back to field keys,
// tolerating the "*" suffix the template adds to required columns.
func mapImportHeaders(headers []string) ([]string, []string) {
	labelToKey := make(map[string]string, len(materialImportFields))
	for _, field := range materialImportFields {
		labelToKey[strings.ToLower(field.Label)] = field.Key
	}

	keys := make([]string, len(headers))
	var unrecognized []string
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, "*"))
		if key, ok := labelToKey[norm]; ok {
			keys[i] = key
		} else if norm != "" {
			unrecognized = append(unrecognized, h)
		}
	}
	return keys, unrecognized
}

func validateImportRow(rowNum int, data map[string]string, trade string) []ImportRowError {
	var errs []ImportRowError

	for _, field := range materialImportFields {
		if field.Required && data[field.Key] == "" {
			errs = append(errs, ImportRowError{
				Row:     rowNum,
				Field:   field.Key,
				Message: field.Label + " is required",
			})
		}
	}

	if raw := data["price"]; raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, ImportRowError{Row: rowNum, Field: "price", Message: "Price must be a number"})
		} else if price < 0 {
			errs = append(errs, ImportRowError{Row: rowNum, Field: "price", Message: "Price cannot be negative"})
		}
	}

	if spec := data["unit_spec"]; spec != "" {
		if _, ok := ParseUnitSpec(spec); !ok {
			errs = append(errs, ImportRowError{Row: rowNum, Field: "unit_spec", Message: "Unit spec must contain a quantity, e.g. \"200 sq ft\""})
		}
	}

	return errs
}

// CommitMaterialImport inserts validated rows into the configuration's
// catalog in chunks. A failing row rolls back its whole chunk; earlier
// chunks stay committed.
func CommitMaterialImport(app core.App, configID, trade string, rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}

	for chunkStart := 0; chunkStart < len(rows); chunkStart += importChunkSize {
		chunkEnd := chunkStart + importChunkSize
		if chunkEnd > len(rows) {
			chunkEnd = len(rows)
		}
		chunk := rows[chunkStart:chunkEnd]

		chunkErrors := insertMaterialChunk(app, configID, chunk, chunkStart)
		if len(chunkErrors) > 0 {
			result.Errors = append(result.Errors, chunkErrors...)
			result.Failed += len(chunk)
			result.RolledBack = true
		} else {
			result.Imported += len(chunk)
		}
	}

	return result, nil
}

func insertMaterialChunk(app core.App, configID string, rows []map[string]string, startOffset int) []ImportRowError {
	var chunkErrors []ImportRowError

	err := app.RunInTransaction(func(txApp core.App) error {
		for i, data := range rows {
			rowNum := startOffset + i + 2

			price, err := strconv.ParseFloat(data["price"], 64)
			if err != nil {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Field:   "price",
					Message: "Price must be a number",
				})
				return fmt.Errorf("row %d: bad price", rowNum)
			}

			in := MaterialInput{
				Category: data["category"],
				Name:     data["name"],
				Price:    price,
				Unit:     data["unit"],
				UnitSpec: data["unit_spec"],
			}
			if _, err := AddMaterial(txApp, configID, in); err != nil {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Field:   "name",
					Message: err.Error(),
				})
				return fmt.Errorf("row %d: %w", rowNum, err)
			}
		}
		return nil
	})
	if err != nil && len(chunkErrors) == 0 {
		chunkErrors = append(chunkErrors, ImportRowError{
			Row:     startOffset + 2,
			Message: err.Error(),
		})
	}

	return chunkErrors
}

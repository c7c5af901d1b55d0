package services

// EstimateExport holds everything the Excel and PDF renditions of a
// computed estimate need.
type EstimateExport struct {
	Trade       string
	Title       string
	PreparedFor string
	Date        string
	Lines       []LineItem
	Total       float64
}

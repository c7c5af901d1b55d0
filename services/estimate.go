package services

// LineItem is one row of a computed estimate. Constructed fresh on every
// run; nothing here is persisted.
type LineItem struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Cost     float64 `json:"cost"`
}

// Estimate is the ordered output of a trade calculator. Line order is a
// readability decision made by each calculator and is preserved as given,
// never re-sorted.
type Estimate struct {
	Trade string     `json:"trade"`
	Lines []LineItem `json:"lines"`
	Total float64    `json:"total"`
}

// LineSpec describes one estimate row before pricing: the computed quantity
// and where its unit price comes from. Exactly one price source applies, in
// precedence order: FixedPrice (custom pricing), Material (catalog lookup
// with DefaultPrice fallback), OverrideKey (pricing override with
// DefaultPrice fallback), else DefaultPrice alone.
type LineSpec struct {
	Label        string
	Unit         string
	Quantity     float64
	Material     string
	Category     string
	OverrideKey  string
	DefaultPrice float64
	FixedPrice   *float64
}

// BuildEstimate prices each spec against the loaded catalog snapshot and
// override map, producing line items in spec order plus the total. Every
// trade calculator funnels through here; the trade-specific part is only
// the spec table it builds.
func BuildEstimate(trade string, materials []Material, overrides map[string]float64, specs []LineSpec) Estimate {
	est := Estimate{Trade: trade, Lines: make([]LineItem, 0, len(specs))}

	for _, spec := range specs {
		price := spec.DefaultPrice
		switch {
		case spec.FixedPrice != nil:
			price = *spec.FixedPrice
		case spec.Material != "":
			price = ResolveEffectivePrice(materials, spec.Material, spec.Category, spec.DefaultPrice)
		case spec.OverrideKey != "":
			price = ResolveOverride(overrides, spec.OverrideKey, spec.DefaultPrice)
		}

		cost := spec.Quantity * price
		est.Lines = append(est.Lines, LineItem{
			Label:    spec.Label,
			Quantity: spec.Quantity,
			Unit:     spec.Unit,
			Cost:     cost,
		})
		est.Total += cost
	}

	return est
}

package services

// Trades lists every trade that owns a default catalog and a configuration
// page. Calculators exist for a subset of these.
var Trades = []string{
	"roofing",
	"siding",
	"decking",
	"fencing",
	"gutter",
	"electrical",
	"excavation",
	"tile",
	"veneer",
	"paint",
}

// IsValidTrade reports whether tag names a known trade.
func IsValidTrade(tag string) bool {
	for _, t := range Trades {
		if t == tag {
			return true
		}
	}
	return false
}

// UnitOptions returns the unit labels offered for a trade's materials.
var UnitOptions = map[string][]string{
	"roofing":    {"per square", "per roll", "per linear ft", "each", "per bundle", "per box"},
	"siding":     {"per square", "per roll", "per linear ft", "each", "per box"},
	"decking":    {"per board", "per sq ft", "per linear ft", "each", "per box"},
	"fencing":    {"per panel", "per post", "per linear ft", "each", "per bag"},
	"gutter":     {"per linear ft", "each", "per tube", "per box"},
	"electrical": {"per ft", "per roll", "each", "per box"},
	"excavation": {"per cubic yd", "per hour", "per load", "each"},
	"tile":       {"per sq ft", "per box", "per bag", "each"},
	"veneer":     {"per sq ft", "per bag", "each", "per pallet"},
	"paint":      {"per gallon", "per roll", "each", "per sq ft"},
}

// WasteFactorOptions are the waste percentage presets shown on calculators.
var WasteFactorOptions = []int{0, 5, 10, 15, 20}

// CategoryOptions returns the material categories a trade's configuration
// page groups its catalog by, derived from the trade's default catalog with
// "custom" always available as a free bucket.
func CategoryOptions(trade string) []string {
	seen := map[string]bool{}
	var categories []string
	for _, def := range defaultCatalogs[trade] {
		if !seen[def.Category] {
			seen[def.Category] = true
			categories = append(categories, def.Category)
		}
	}
	if !seen["custom"] {
		categories = append(categories, "custom")
	}
	return categories
}

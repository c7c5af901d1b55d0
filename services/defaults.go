package services

// Hard-coded default catalogs, cloned into a configuration the first time a
// user touches a trade. Prices are flat, single-currency, per-unit figures.
// All of this is pure data; nothing here talks to the store.

var defaultCatalogs = map[string][]MaterialInput{
	"roofing": {
		{Category: "shingles", Name: "Asphalt Shingles", Price: 350, Unit: "per square"},
		{Category: "shingles", Name: "Architectural Shingles", Price: 425, Unit: "per square"},
		{Category: "shingles", Name: "Cedar Shake", Price: 675, Unit: "per square"},
		{Category: "shingles", Name: "Metal Panels", Price: 850, Unit: "per square"},
		{Category: "shingles", Name: "Slate", Price: 1450, Unit: "per square"},
		{Category: "underlayment", Name: "Synthetic Underlayment", Price: 35, Unit: "per roll", UnitSpec: "400 sq ft"},
		{Category: "underlayment", Name: "Ice & Water Shield", Price: 70, Unit: "per roll", UnitSpec: "200 sq ft"},
		{Category: "components", Name: "Ridge Cap", Price: 3.25, Unit: "per linear ft"},
		{Category: "components", Name: "Drip Edge", Price: 2.50, Unit: "per linear ft"},
		{Category: "components", Name: "Skylight Flashing", Price: 85, Unit: "each"},
	},
	"siding": {
		{Category: "panels", Name: "Vinyl Siding", Price: 275, Unit: "per square"},
		{Category: "panels", Name: "Fiber Cement", Price: 450, Unit: "per square"},
		{Category: "panels", Name: "Engineered Wood", Price: 520, Unit: "per square"},
		{Category: "panels", Name: "Cedar Lap", Price: 700, Unit: "per square"},
		{Category: "wrap", Name: "House Wrap", Price: 160, Unit: "per roll", UnitSpec: "1000 sq ft"},
		{Category: "trim", Name: "Corner Trim", Price: 4.50, Unit: "per linear ft"},
		{Category: "trim", Name: "J-Channel", Price: 2.10, Unit: "per linear ft"},
	},
	"decking": {
		{Category: "boards", Name: "Pressure-Treated Pine", Price: 2.80, Unit: "per sq ft"},
		{Category: "boards", Name: "Cedar Decking", Price: 4.60, Unit: "per sq ft"},
		{Category: "boards", Name: "Composite Decking", Price: 7.25, Unit: "per sq ft"},
		{Category: "framing", Name: "Joist Lumber", Price: 1.95, Unit: "per linear ft"},
		{Category: "framing", Name: "Support Post", Price: 24, Unit: "each"},
		{Category: "hardware", Name: "Joist Hanger", Price: 2.40, Unit: "each"},
	},
	"fencing": {
		{Category: "panels", Name: "Pressure-Treated Panel", Price: 55, Unit: "per panel"},
		{Category: "panels", Name: "Cedar Panel", Price: 82, Unit: "per panel"},
		{Category: "panels", Name: "Vinyl Panel", Price: 120, Unit: "per panel"},
		{Category: "posts", Name: "Wood Post", Price: 18, Unit: "per post"},
		{Category: "posts", Name: "Steel Post", Price: 32, Unit: "per post"},
		{Category: "hardware", Name: "Concrete Mix", Price: 6.50, Unit: "per bag", UnitSpec: "2 bags per post"},
		{Category: "hardware", Name: "Gate Kit", Price: 160, Unit: "each"},
	},
	"gutter": {
		{Category: "gutters", Name: "Aluminum K-Style", Price: 4.25, Unit: "per linear ft"},
		{Category: "gutters", Name: "Copper Half-Round", Price: 14.50, Unit: "per linear ft"},
		{Category: "gutters", Name: "Vinyl Gutter", Price: 2.75, Unit: "per linear ft"},
		{Category: "components", Name: "Downspout", Price: 45, Unit: "each"},
		{Category: "components", Name: "Gutter Hanger", Price: 2.25, Unit: "each"},
		{Category: "components", Name: "End Cap", Price: 5.50, Unit: "each"},
	},
	"electrical": {
		{Category: "wire", Name: "14/2 Romex", Price: 0.58, Unit: "per ft"},
		{Category: "wire", Name: "12/2 Romex", Price: 0.75, Unit: "per ft"},
		{Category: "wire", Name: "10/2 Romex", Price: 1.18, Unit: "per ft"},
		{Category: "devices", Name: "Duplex Outlet", Price: 3.20, Unit: "each"},
		{Category: "devices", Name: "Single-Pole Switch", Price: 2.85, Unit: "each"},
		{Category: "devices", Name: "Breaker 20A", Price: 12, Unit: "each"},
	},
	"excavation": {
		{Category: "equipment", Name: "Mini Excavator", Price: 95, Unit: "per hour"},
		{Category: "equipment", Name: "Skid Steer", Price: 78, Unit: "per hour"},
		{Category: "hauling", Name: "Spoil Haul-Off", Price: 120, Unit: "per load"},
		{Category: "material", Name: "Gravel Backfill", Price: 38, Unit: "per cubic yd"},
	},
	"tile": {
		{Category: "tile", Name: "Ceramic Tile", Price: 2.20, Unit: "per sq ft"},
		{Category: "tile", Name: "Porcelain Tile", Price: 3.80, Unit: "per sq ft"},
		{Category: "tile", Name: "Natural Stone", Price: 7.50, Unit: "per sq ft"},
		{Category: "setting", Name: "Thinset Mortar", Price: 18, Unit: "per bag", UnitSpec: "50 sq ft"},
		{Category: "setting", Name: "Grout", Price: 16, Unit: "per bag", UnitSpec: "100 sq ft"},
	},
	"veneer": {
		{Category: "veneer", Name: "Manufactured Stone", Price: 9.50, Unit: "per sq ft"},
		{Category: "veneer", Name: "Natural Stone Veneer", Price: 16, Unit: "per sq ft"},
		{Category: "veneer", Name: "Brick Veneer", Price: 8.25, Unit: "per sq ft"},
		{Category: "setting", Name: "Mortar Mix", Price: 14, Unit: "per bag", UnitSpec: "35 sq ft"},
	},
	"paint": {
		{Category: "paint", Name: "Interior Latex", Price: 38, Unit: "per gallon", UnitSpec: "350 sq ft"},
		{Category: "paint", Name: "Exterior Acrylic", Price: 52, Unit: "per gallon", UnitSpec: "300 sq ft"},
		{Category: "paint", Name: "Primer", Price: 28, Unit: "per gallon", UnitSpec: "300 sq ft"},
		{Category: "supplies", Name: "Roller Kit", Price: 22, Unit: "each"},
		{Category: "supplies", Name: "Painter's Tape", Price: 7.50, Unit: "per roll"},
	},
}

// Default pricing overrides cover priced components that are not modeled as
// full materials (hardware, disposal, flat system charges).
var defaultOverrides = map[string]map[string]float64{
	"roofing": {
		"roofing_nails":     32,  // per square
		"debris_disposal":   55,  // per square per old layer
		"ridge_vent_system": 400, // flat
		"extended_warranty": 250, // flat
	},
	"siding": {
		"siding_fasteners": 18, // per square
		"window_flashing":  25, // per opening
	},
	"fencing": {
		"post_hardware": 4.75, // per post
		"gate_hardware": 38,   // per gate
	},
	"gutter": {
		"sealant_and_misc": 35, // flat
	},
	"decking": {
		"fastener_allowance": 0.45, // per sq ft
	},
	"electrical": {
		"consumables": 45, // flat
	},
	"tile": {
		"spacers_and_misc": 25, // flat
	},
	"veneer": {
		"lath_and_fasteners": 0.80, // per sq ft
	},
	"paint": {
		"sundries": 30, // flat
	},
	"excavation": {
		"mobilization": 250, // flat
	},
}

// DefaultMaterials returns a copy of a trade's default catalog.
func DefaultMaterials(trade string) []MaterialInput {
	defs := defaultCatalogs[trade]
	out := make([]MaterialInput, len(defs))
	copy(out, defs)
	return out
}

// DefaultPricingOverrides returns a copy of a trade's default override map.
func DefaultPricingOverrides(trade string) map[string]float64 {
	out := make(map[string]float64, len(defaultOverrides[trade]))
	for k, v := range defaultOverrides[trade] {
		out[k] = v
	}
	return out
}

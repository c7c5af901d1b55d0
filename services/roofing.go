package services

import (
	"fmt"
	"math"
	"strings"
)

// RoofingInput is the set of project inputs the roofing calculator works
// from. Area is required and must be positive; everything else is optional.
type RoofingInput struct {
	AreaSqFt    float64 `json:"area_sq_ft"`
	Material    string  `json:"material"`
	WasteFactor float64 `json:"waste_factor"` // percent, 0-100

	// CustomPricing replaces catalog resolution for the primary material
	// with a caller-supplied name and per-square price.
	CustomPricing bool    `json:"custom_pricing"`
	CustomName    string  `json:"custom_name"`
	CustomPrice   float64 `json:"custom_price"`

	IceShield    bool `json:"ice_shield"`
	Underlayment bool `json:"underlayment"`
	OldLayers    int  `json:"old_layers"`
	Skylights    int  `json:"skylights"`
	Ventilation  bool `json:"ventilation"`
	Warranty     bool `json:"warranty"`
}

// Fallback figures used when the catalog has no active entry for a
// component. They mirror the trade's default catalog so an archived default
// still prices sensibly.
const (
	defaultShinglePrice      = 350.0 // per square
	defaultUnderlaymentPrice = 35.0  // per roll
	defaultUnderlaymentSqFt  = 400.0 // coverage per roll
	defaultIceShieldPrice    = 70.0  // per roll
	defaultIceShieldSqFt     = 200.0 // coverage per roll
	defaultRidgeCapPrice     = 3.25  // per linear ft
	defaultDripEdgePrice     = 2.50  // per linear ft
	defaultNailsPerSquare    = 32.0  // per square
	defaultDebrisPerSquare   = 55.0  // per square per old layer
	defaultSkylightFlashing  = 85.0  // each
	defaultRidgeVentSystem   = 400.0 // flat
	defaultWarrantyPrice     = 250.0 // flat
)

// ValidateRoofingInput rejects bad input before any computation or I/O.
// An empty map means the input is acceptable.
func ValidateRoofingInput(in RoofingInput) map[string]string {
	errs := make(map[string]string)
	if in.AreaSqFt <= 0 {
		errs["area_sq_ft"] = "Roof area must be greater than zero"
	}
	if in.WasteFactor < 0 || in.WasteFactor > 100 {
		errs["waste_factor"] = "Waste factor must be between 0 and 100"
	}
	if in.CustomPricing {
		if strings.TrimSpace(in.CustomName) == "" {
			errs["custom_name"] = "Custom material name is required"
		}
		if in.CustomPrice < 0 {
			errs["custom_price"] = "Custom price cannot be negative"
		}
	} else if strings.TrimSpace(in.Material) == "" {
		errs["material"] = "Select a roofing material"
	}
	if in.OldLayers < 0 {
		errs["old_layers"] = "Old layer count cannot be negative"
	}
	if in.Skylights < 0 {
		errs["skylights"] = "Skylight count cannot be negative"
	}
	return errs
}

// CalculateRoofing produces the itemized roofing estimate.
//
// The primary material is billed in squares (1 square = 100 sq ft) with the
// waste factor applied once. Ridge cap and drip edge are geometric
// approximations taken from the raw area, not the waste-adjusted squares:
// ridge length ≈ area × 0.1 linear ft, perimeter edge ≈ sqrt(area) × 4
// linear ft. Package goods round up to whole rolls. Line order is the fixed
// reading order of a roofing proposal: material, underlayment, protective
// layers, trim, fasteners, then conditional extras.
func CalculateRoofing(in RoofingInput, materials []Material, overrides map[string]float64) (*Estimate, error) {
	if errs := ValidateRoofingInput(in); len(errs) > 0 {
		return nil, fmt.Errorf("invalid roofing input: %v", errs)
	}

	squares := (in.AreaSqFt / 100) * (1 + in.WasteFactor/100)
	ridgeCapFt := in.AreaSqFt * 0.1
	dripEdgeFt := math.Sqrt(in.AreaSqFt) * 4

	var specs []LineSpec

	materialName := in.Material
	materialSpec := LineSpec{
		Label:        materialName,
		Unit:         "squares",
		Quantity:     squares,
		Material:     materialName,
		Category:     "shingles",
		DefaultPrice: defaultShinglePrice,
	}
	if in.CustomPricing {
		price := in.CustomPrice
		materialSpec.Label = in.CustomName
		materialSpec.Material = ""
		materialSpec.FixedPrice = &price
	}
	specs = append(specs, materialSpec)

	if in.Underlayment {
		coverage := ResolveUnitQuantity(materials, "Synthetic Underlayment", "underlayment", defaultUnderlaymentSqFt)
		specs = append(specs, LineSpec{
			Label:        "Synthetic Underlayment",
			Unit:         "rolls",
			Quantity:     math.Ceil(in.AreaSqFt / coverage),
			Material:     "Synthetic Underlayment",
			Category:     "underlayment",
			DefaultPrice: defaultUnderlaymentPrice,
		})
	}

	if in.IceShield {
		coverage := ResolveUnitQuantity(materials, "Ice & Water Shield", "underlayment", defaultIceShieldSqFt)
		specs = append(specs, LineSpec{
			Label:        "Ice & Water Shield",
			Unit:         "rolls",
			Quantity:     math.Ceil(in.AreaSqFt / coverage),
			Material:     "Ice & Water Shield",
			Category:     "underlayment",
			DefaultPrice: defaultIceShieldPrice,
		})
	}

	specs = append(specs,
		LineSpec{
			Label:        "Ridge Cap",
			Unit:         "linear ft",
			Quantity:     ridgeCapFt,
			Material:     "Ridge Cap",
			Category:     "components",
			DefaultPrice: defaultRidgeCapPrice,
		},
		LineSpec{
			Label:        "Drip Edge",
			Unit:         "linear ft",
			Quantity:     dripEdgeFt,
			Material:     "Drip Edge",
			Category:     "components",
			DefaultPrice: defaultDripEdgePrice,
		},
		LineSpec{
			Label:        "Roofing Nails",
			Unit:         "squares",
			Quantity:     squares,
			OverrideKey:  "roofing_nails",
			DefaultPrice: defaultNailsPerSquare,
		},
	)

	if in.OldLayers > 0 {
		specs = append(specs, LineSpec{
			Label:        fmt.Sprintf("Debris Disposal (%d layers)", in.OldLayers),
			Unit:         "squares",
			Quantity:     squares * float64(in.OldLayers),
			OverrideKey:  "debris_disposal",
			DefaultPrice: defaultDebrisPerSquare,
		})
	}

	if in.Skylights > 0 {
		specs = append(specs, LineSpec{
			Label:        "Skylight Flashing",
			Unit:         "each",
			Quantity:     float64(in.Skylights),
			Material:     "Skylight Flashing",
			Category:     "components",
			DefaultPrice: defaultSkylightFlashing,
		})
	}

	if in.Ventilation {
		specs = append(specs, LineSpec{
			Label:        "Ridge Vent System",
			Unit:         "system",
			Quantity:     1,
			OverrideKey:  "ridge_vent_system",
			DefaultPrice: defaultRidgeVentSystem,
		})
	}

	if in.Warranty {
		specs = append(specs, LineSpec{
			Label:        "Extended Warranty",
			Unit:         "system",
			Quantity:     1,
			OverrideKey:  "extended_warranty",
			DefaultPrice: defaultWarrantyPrice,
		})
	}

	est := BuildEstimate("roofing", materials, overrides, specs)
	return &est, nil
}

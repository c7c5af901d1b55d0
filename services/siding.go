package services

import (
	"fmt"
	"math"
	"strings"
)

// SidingInput holds the project inputs for the siding calculator.
type SidingInput struct {
	WallAreaSqFt float64 `json:"wall_area_sq_ft"`
	Material     string  `json:"material"`
	WasteFactor  float64 `json:"waste_factor"`

	CustomPricing bool    `json:"custom_pricing"`
	CustomName    string  `json:"custom_name"`
	CustomPrice   float64 `json:"custom_price"`

	HouseWrap bool `json:"house_wrap"`
	Openings  int  `json:"openings"` // windows + doors to flash
}

const (
	defaultSidingPrice     = 275.0  // per square
	defaultHouseWrapPrice  = 160.0  // per roll
	defaultHouseWrapSqFt   = 1000.0 // coverage per roll
	defaultCornerTrimPrice = 4.50   // per linear ft
	defaultSidingFasteners = 18.0   // per square
	defaultOpeningFlashing = 25.0   // per opening
)

func ValidateSidingInput(in SidingInput) map[string]string {
	errs := make(map[string]string)
	if in.WallAreaSqFt <= 0 {
		errs["wall_area_sq_ft"] = "Wall area must be greater than zero"
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
		errs["material"] = "Select a siding material"
	}
	if in.Openings < 0 {
		errs["openings"] = "Opening count cannot be negative"
	}
	return errs
}

// CalculateSiding prices wall cladding in squares with corner trim taken
// from the wall footprint (sqrt(area) × 4 linear ft, same approximation the
// roofing drip edge uses).
func CalculateSiding(in SidingInput, materials []Material, overrides map[string]float64) (*Estimate, error) {
	if errs := ValidateSidingInput(in); len(errs) > 0 {
		return nil, fmt.Errorf("invalid siding input: %v", errs)
	}

	squares := (in.WallAreaSqFt / 100) * (1 + in.WasteFactor/100)
	trimFt := math.Sqrt(in.WallAreaSqFt) * 4

	var specs []LineSpec

	materialSpec := LineSpec{
		Label:        in.Material,
		Unit:         "squares",
		Quantity:     squares,
		Material:     in.Material,
		Category:     "panels",
		DefaultPrice: defaultSidingPrice,
	}
	if in.CustomPricing {
		price := in.CustomPrice
		materialSpec.Label = in.CustomName
		materialSpec.Material = ""
		materialSpec.FixedPrice = &price
	}
	specs = append(specs, materialSpec)

	if in.HouseWrap {
		coverage := ResolveUnitQuantity(materials, "House Wrap", "wrap", defaultHouseWrapSqFt)
		specs = append(specs, LineSpec{
			Label:        "House Wrap",
			Unit:         "rolls",
			Quantity:     math.Ceil(in.WallAreaSqFt / coverage),
			Material:     "House Wrap",
			Category:     "wrap",
			DefaultPrice: defaultHouseWrapPrice,
		})
	}

	specs = append(specs,
		LineSpec{
			Label:        "Corner Trim",
			Unit:         "linear ft",
			Quantity:     trimFt,
			Material:     "Corner Trim",
			Category:     "trim",
			DefaultPrice: defaultCornerTrimPrice,
		},
		LineSpec{
			Label:        "Fasteners",
			Unit:         "squares",
			Quantity:     squares,
			OverrideKey:  "siding_fasteners",
			DefaultPrice: defaultSidingFasteners,
		},
	)

	if in.Openings > 0 {
		specs = append(specs, LineSpec{
			Label:        "Window & Door Flashing",
			Unit:         "each",
			Quantity:     float64(in.Openings),
			OverrideKey:  "window_flashing",
			DefaultPrice: defaultOpeningFlashing,
		})
	}

	est := BuildEstimate("siding", materials, overrides, specs)
	return &est, nil
}

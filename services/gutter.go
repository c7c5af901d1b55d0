package services

import (
	"fmt"
	"math"
	"strings"
)

// GutterInput holds the project inputs for the gutter calculator.
type GutterInput struct {
	RunLengthFt float64 `json:"run_length_ft"`
	Material    string  `json:"material"`
	Downspouts  int     `json:"downspouts"`
	Runs        int     `json:"runs"` // separate gutter runs; each needs two end caps

	CustomPricing bool    `json:"custom_pricing"`
	CustomName    string  `json:"custom_name"`
	CustomPrice   float64 `json:"custom_price"`
}

const (
	defaultGutterPrice    = 4.25 // per linear ft
	defaultDownspoutPrice = 45.0 // each
	defaultHangerPrice    = 2.25 // each
	defaultEndCapPrice    = 5.50 // each
	defaultGutterSealant  = 35.0 // flat
	hangerSpacingFt       = 2.0
)

func ValidateGutterInput(in GutterInput) map[string]string {
	errs := make(map[string]string)
	if in.RunLengthFt <= 0 {
		errs["run_length_ft"] = "Gutter run length must be greater than zero"
	}
	if in.Downspouts < 0 {
		errs["downspouts"] = "Downspout count cannot be negative"
	}
	if in.Runs < 0 {
		errs["runs"] = "Run count cannot be negative"
	}
	if in.CustomPricing {
		if strings.TrimSpace(in.CustomName) == "" {
			errs["custom_name"] = "Custom material name is required"
		}
		if in.CustomPrice < 0 {
			errs["custom_price"] = "Custom price cannot be negative"
		}
	} else if strings.TrimSpace(in.Material) == "" {
		errs["material"] = "Select a gutter material"
	}
	return errs
}

// CalculateGutter prices by total run length with hangers every two feet,
// two end caps per run, plus a flat sealant-and-misc allowance.
func CalculateGutter(in GutterInput, materials []Material, overrides map[string]float64) (*Estimate, error) {
	if errs := ValidateGutterInput(in); len(errs) > 0 {
		return nil, fmt.Errorf("invalid gutter input: %v", errs)
	}

	runs := in.Runs
	if runs == 0 {
		runs = 1
	}
	hangers := math.Ceil(in.RunLengthFt / hangerSpacingFt)

	var specs []LineSpec

	materialSpec := LineSpec{
		Label:        in.Material,
		Unit:         "linear ft",
		Quantity:     in.RunLengthFt,
		Material:     in.Material,
		Category:     "gutters",
		DefaultPrice: defaultGutterPrice,
	}
	if in.CustomPricing {
		price := in.CustomPrice
		materialSpec.Label = in.CustomName
		materialSpec.Material = ""
		materialSpec.FixedPrice = &price
	}
	specs = append(specs, materialSpec)

	if in.Downspouts > 0 {
		specs = append(specs, LineSpec{
			Label:        "Downspout",
			Unit:         "each",
			Quantity:     float64(in.Downspouts),
			Material:     "Downspout",
			Category:     "components",
			DefaultPrice: defaultDownspoutPrice,
		})
	}

	specs = append(specs,
		LineSpec{
			Label:        "Gutter Hanger",
			Unit:         "each",
			Quantity:     hangers,
			Material:     "Gutter Hanger",
			Category:     "components",
			DefaultPrice: defaultHangerPrice,
		},
		LineSpec{
			Label:        "End Cap",
			Unit:         "each",
			Quantity:     float64(runs * 2),
			Material:     "End Cap",
			Category:     "components",
			DefaultPrice: defaultEndCapPrice,
		},
		LineSpec{
			Label:        "Sealant & Misc",
			Unit:         "system",
			Quantity:     1,
			OverrideKey:  "sealant_and_misc",
			DefaultPrice: defaultGutterSealant,
		},
	)

	est := BuildEstimate("gutter", materials, overrides, specs)
	return &est, nil
}

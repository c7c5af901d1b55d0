package services

import (
	"fmt"
	"math"
	"strings"
)

// FencingInput holds the project inputs for the fencing calculator.
type FencingInput struct {
	LengthFt    float64 `json:"length_ft"`
	Panel       string  `json:"panel"`
	Post        string  `json:"post"`
	PostSpacing float64 `json:"post_spacing"` // ft between posts, defaults to 8
	Gates       int     `json:"gates"`

	CustomPricing bool    `json:"custom_pricing"`
	CustomName    string  `json:"custom_name"`
	CustomPrice   float64 `json:"custom_price"`
}

const (
	defaultPanelPrice       = 55.0 // per panel
	defaultPostPrice        = 18.0 // per post
	defaultConcretePrice    = 6.50 // per bag
	defaultBagsPerPost      = 2.0
	defaultGateKitPrice     = 160.0 // each
	defaultPostHardware     = 4.75  // per post
	defaultGateHardware     = 38.0  // per gate
	defaultFencePostSpacing = 8.0
)

func ValidateFencingInput(in FencingInput) map[string]string {
	errs := make(map[string]string)
	if in.LengthFt <= 0 {
		errs["length_ft"] = "Fence length must be greater than zero"
	}
	if in.PostSpacing < 0 {
		errs["post_spacing"] = "Post spacing cannot be negative"
	}
	if in.Gates < 0 {
		errs["gates"] = "Gate count cannot be negative"
	}
	if in.CustomPricing {
		if strings.TrimSpace(in.CustomName) == "" {
			errs["custom_name"] = "Custom panel name is required"
		}
		if in.CustomPrice < 0 {
			errs["custom_price"] = "Custom price cannot be negative"
		}
	} else if strings.TrimSpace(in.Panel) == "" {
		errs["panel"] = "Select a fence panel"
	}
	return errs
}

// CalculateFencing bills whole sections: a partial section at the end of the
// run still needs a full panel, and a run of N sections needs N+1 posts.
// Each post is set in concrete; the bag count per post can be redefined via
// the Concrete Mix unit spec.
func CalculateFencing(in FencingInput, materials []Material, overrides map[string]float64) (*Estimate, error) {
	if errs := ValidateFencingInput(in); len(errs) > 0 {
		return nil, fmt.Errorf("invalid fencing input: %v", errs)
	}

	spacing := in.PostSpacing
	if spacing == 0 {
		spacing = defaultFencePostSpacing
	}
	sections := math.Ceil(in.LengthFt / spacing)
	posts := sections + 1
	bagsPerPost := ResolveUnitQuantity(materials, "Concrete Mix", "hardware", defaultBagsPerPost)

	post := in.Post
	if post == "" {
		post = "Wood Post"
	}

	var specs []LineSpec

	panelSpec := LineSpec{
		Label:        in.Panel,
		Unit:         "panels",
		Quantity:     sections,
		Material:     in.Panel,
		Category:     "panels",
		DefaultPrice: defaultPanelPrice,
	}
	if in.CustomPricing {
		price := in.CustomPrice
		panelSpec.Label = in.CustomName
		panelSpec.Material = ""
		panelSpec.FixedPrice = &price
	}
	specs = append(specs, panelSpec)

	specs = append(specs,
		LineSpec{
			Label:        post,
			Unit:         "posts",
			Quantity:     posts,
			Material:     post,
			Category:     "posts",
			DefaultPrice: defaultPostPrice,
		},
		LineSpec{
			Label:        "Concrete Mix",
			Unit:         "bags",
			Quantity:     posts * bagsPerPost,
			Material:     "Concrete Mix",
			Category:     "hardware",
			DefaultPrice: defaultConcretePrice,
		},
		LineSpec{
			Label:        "Post Hardware",
			Unit:         "posts",
			Quantity:     posts,
			OverrideKey:  "post_hardware",
			DefaultPrice: defaultPostHardware,
		},
	)

	if in.Gates > 0 {
		specs = append(specs,
			LineSpec{
				Label:        "Gate Kit",
				Unit:         "each",
				Quantity:     float64(in.Gates),
				Material:     "Gate Kit",
				Category:     "hardware",
				DefaultPrice: defaultGateKitPrice,
			},
			LineSpec{
				Label:        "Gate Hardware",
				Unit:         "each",
				Quantity:     float64(in.Gates),
				OverrideKey:  "gate_hardware",
				DefaultPrice: defaultGateHardware,
			},
		)
	}

	est := BuildEstimate("fencing", materials, overrides, specs)
	return &est, nil
}

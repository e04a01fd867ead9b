package domain

import "math"

// Represents one end-to-end itinerary strategy.
// Totals are always derived from the legs, so a RoutePlan cannot drift
// from the data it was built from.
type RoutePlan struct {
	Strategy string
	Legs     []Leg
	Risks    []string
}

// Sum of leg costs rounded to two decimals.
func (p RoutePlan) TotalCost() float64 {
	total := 0.0
	for _, l := range p.Legs {
		total += l.Cost
	}
	return Round2(total)
}

// Sum of leg durations (hours) rounded to two decimals.
func (p RoutePlan) TotalDuration() float64 {
	total := 0.0
	for _, l := range p.Legs {
		total += l.Duration
	}
	return Round2(total)
}

// PriceKeys returns the non-empty price keys of the plan's legs in travel order.
func (p RoutePlan) PriceKeys() []string {
	keys := make([]string, 0, len(p.Legs))
	for _, l := range p.Legs {
		if l.PriceKey != "" {
			keys = append(keys, l.PriceKey)
		}
	}
	return keys
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

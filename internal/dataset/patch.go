package dataset

import "route-fare-planner/internal/domain"

// PriceIndex maps each result's key to its amount. A later result for the
// same key replaces an earlier one.
func PriceIndex(results []domain.PriceResult) map[string]float64 {
	m := make(map[string]float64, len(results))
	for _, r := range results {
		m[r.Key] = r.Amount
	}
	return m
}

// patchTarget names a cost field governed by a price key field.
type patchTarget struct {
	keyField  string
	costField string
}

// Flight cost fields that carry a refreshable fare, per category.
// Categories not listed here are never patched.
var patchTargets = map[Category][]patchTarget{
	CategoryDirect:     {{keyField: "price_key", costField: "flight_cost"}},
	CategoryRailFlight: {{keyField: "price_key", costField: "flight_cost"}},
	CategoryTwoHop: {
		{keyField: "first_hop_price_key", costField: "first_hop_cost"},
		{keyField: "second_hop_price_key", costField: "second_hop_cost"},
	},
}

// ApplyPriceUpdates overwrites, in place, every flight cost field whose price
// key appears in prices, writing the amount rounded to two decimals.
// Keys with no matching record are ignored. Free-form legs are only patched
// when their mode is flight. Applying the same prices twice is a no-op.
// It returns the number of fields written.
func ApplyPriceUpdates(d Dataset, prices map[string]float64) (int, error) {
	patched := 0

	for _, cat := range Categories {
		items, err := d.items(cat)
		if err != nil {
			return patched, err
		}

		if cat == CategoryExtra {
			for i, item := range items {
				n, err := patchExtraLegs(i, item, prices)
				if err != nil {
					return patched, err
				}
				patched += n
			}
			continue
		}

		targets := patchTargets[cat]
		for _, item := range items {
			for _, t := range targets {
				key, ok := priceKey(item, t.keyField)
				if !ok {
					continue
				}
				amount, ok := prices[key]
				if !ok {
					continue
				}
				item[t.costField] = domain.Round2(amount)
				patched++
			}
		}
	}

	return patched, nil
}

func patchExtraLegs(index int, item map[string]any, prices map[string]float64) (int, error) {
	raw, ok := item["legs"]
	if !ok || raw == nil {
		return 0, nil
	}
	legs, ok := raw.([]any)
	if !ok {
		return 0, &FieldError{Category: CategoryExtra, Index: index, Field: "legs", Want: "list", Err: ErrFieldType}
	}

	patched := 0
	for _, l := range legs {
		leg, ok := l.(map[string]any)
		if !ok {
			continue
		}
		if mode, _ := leg["mode"].(string); mode != string(domain.ModeFlight) {
			continue
		}
		key, ok := priceKey(leg, "price_key")
		if !ok {
			continue
		}
		amount, ok := prices[key]
		if !ok {
			continue
		}
		leg["cost"] = domain.Round2(amount)
		patched++
	}
	return patched, nil
}

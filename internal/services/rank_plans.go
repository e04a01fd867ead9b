package services

import (
	"cmp"
	"route-fare-planner/internal/domain"
	"slices"
	"strings"
)

// RankPlans orders plans by total cost, then total duration, both ascending,
// and keeps the first topN. Plans with equal keys keep their input order.
// topN <= 0 yields an empty result; the input slice is not modified.
func RankPlans(plans []domain.RoutePlan, topN int) []domain.RoutePlan {
	return rank(plans, topN, compareTotals)
}

// RankPlansByName is RankPlans with the strategy label as a final tie-break,
// used by the markdown summary so equal-priced rows render deterministically.
func RankPlansByName(plans []domain.RoutePlan, topN int) []domain.RoutePlan {
	return rank(plans, topN, func(a, b domain.RoutePlan) int {
		if c := compareTotals(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.Strategy, b.Strategy)
	})
}

func rank(plans []domain.RoutePlan, topN int, cmpFn func(a, b domain.RoutePlan) int) []domain.RoutePlan {
	if topN <= 0 || len(plans) == 0 {
		return []domain.RoutePlan{}
	}

	sorted := slices.Clone(plans)
	slices.SortStableFunc(sorted, cmpFn)

	if topN < len(sorted) {
		sorted = sorted[:topN]
	}
	return sorted
}

func compareTotals(a, b domain.RoutePlan) int {
	if c := cmp.Compare(a.TotalCost(), b.TotalCost()); c != 0 {
		return c
	}
	return cmp.Compare(a.TotalDuration(), b.TotalDuration())
}

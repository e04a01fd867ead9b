package domain

import "testing"

func TestRoutePlanTotals(t *testing.T) {
	plan := RoutePlan{
		Strategy: "demo",
		Legs: []Leg{
			{Mode: ModeFlight, Origin: "A", Destination: "B", Cost: 100, Duration: 1.2},
			{Mode: ModeRail, Origin: "B", Destination: "C", Cost: 30, Duration: 0.8},
		},
	}

	if got := plan.TotalCost(); got != 130 {
		t.Fatalf("total cost = %v, want 130", got)
	}
	if got := plan.TotalDuration(); got != 2.0 {
		t.Fatalf("total duration = %v, want 2.0", got)
	}
}

func TestRoutePlanTotalsAreRoundedFromLegs(t *testing.T) {
	plan := RoutePlan{
		Legs: []Leg{
			{Cost: 0.1, Duration: 0.333},
			{Cost: 0.2, Duration: 0.333},
			{Cost: 99.999, Duration: 0.333},
		},
	}

	// 0.1 + 0.2 + 99.999 accumulates float error; the total must still land on two decimals.
	if got := plan.TotalCost(); got != 100.3 {
		t.Fatalf("total cost = %v, want 100.3", got)
	}
	if got := plan.TotalDuration(); got != 1.0 {
		t.Fatalf("total duration = %v, want 1.0", got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{1.005, 1.0}, // 1.005 is stored as 1.00499999...
		{0.125, 0.13},
		{-0.125, -0.13},
		{501.6, 501.6},
		{180.234, 180.23},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGroundTableLookup(t *testing.T) {
	hit := SuzhouGroundTable.Lookup("上海", 999, 9)
	if hit.Cost != 35 || hit.Duration != 0.45 {
		t.Fatalf("lookup 上海 = %+v, want cost 35 duration 0.45", hit)
	}
	if hit.Notes == GenericGroundNote {
		t.Fatalf("lookup 上海 should carry the table note, got generic note")
	}

	miss := SuzhouGroundTable.Lookup("厦门", 80, 1.5)
	want := GroundTransfer{Cost: 80, Duration: 1.5, Notes: GenericGroundNote}
	if miss != want {
		t.Fatalf("lookup miss = %+v, want %+v", miss, want)
	}

	zero := SuzhouGroundTable.Lookup("厦门", 0, 0)
	if zero.Cost != 0 || zero.Duration != 0 {
		t.Fatalf("lookup miss with zero defaults = %+v", zero)
	}
}

func TestRoutePlanPriceKeys(t *testing.T) {
	plan := RoutePlan{Legs: []Leg{
		{PriceKey: "hak_sha_20260227"},
		{},
		{PriceKey: "sha_szv"},
	}}
	keys := plan.PriceKeys()
	if len(keys) != 2 || keys[0] != "hak_sha_20260227" || keys[1] != "sha_szv" {
		t.Fatalf("price keys = %v", keys)
	}
}

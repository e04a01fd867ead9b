package domain

// Travel mode of a single leg. Free-form legs may carry modes beyond the known ones.
type Mode string

const (
	ModeFlight Mode = "flight"
	ModeRail   Mode = "rail"
	ModeTaxi   Mode = "taxi"
)

// Represents one directly-bookable travel segment.
// A Leg is created once when a raw record is decoded and is never mutated;
// price refreshes rewrite the raw record and the plan is rebuilt.
type Leg struct {
	Mode        Mode
	Origin      string
	Destination string
	Cost        float64
	// Duration in hours.
	Duration float64
	// Opaque fare lookup identifier; empty when the leg price is not refreshed.
	PriceKey string
	Notes    string
}

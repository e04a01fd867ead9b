package dto

type LegResponse struct {
	Mode          string  `json:"mode"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Cost          float64 `json:"cost"`
	DurationHours float64 `json:"duration_hours"`
	PriceKey      string  `json:"price_key,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type PlanResponse struct {
	Rank               int           `json:"rank"`
	Strategy           string        `json:"strategy"`
	Date               string        `json:"date"`
	TotalCost          float64       `json:"total_cost"`
	TotalDurationHours float64       `json:"total_duration_hours"`
	Legs               []LegResponse `json:"legs"`
	Risks              []string      `json:"risks"`
}

type ListPlanResponse struct {
	Plans []PlanResponse `json:"plans"`
}

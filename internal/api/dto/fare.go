package dto

import "time"

type FareResponse struct {
	Key           string    `json:"key"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureDate string    `json:"departure_date"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	RunID         string    `json:"run_id"`
	FetchedAt     time.Time `json:"fetched_at"`
}

type ListFaresResponse struct {
	Fares []FareResponse `json:"fares"`
}

package domain

// Lowest fare found for one configured route query.
type PriceResult struct {
	Key      string
	Amount   float64
	Currency string
}

// A single fare lookup as configured in the routes file.
// DepartureDate (YYYY-MM-DD) wins over DateOffsetDays when set.
type RouteQuery struct {
	Key            string
	Origin         string
	Destination    string
	DepartureDate  string
	DateOffsetDays int
}

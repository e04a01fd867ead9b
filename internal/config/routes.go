package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// RoutesFile is the fare query configuration: {"routes": [...]}.
type RoutesFile struct {
	Routes []RouteEntry `json:"routes"`
}

// One configured fare query. DepartureDate wins over DateOffsetDays.
type RouteEntry struct {
	Key            string  `json:"key"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureDate  *string `json:"departure_date,omitempty"`
	DateOffsetDays *int    `json:"date_offset_days,omitempty"`
}

// LoadRoutes reads and parses a routes file.
func LoadRoutes(path string) (RoutesFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return RoutesFile{}, fmt.Errorf("load routes: read %q: %w", path, err)
	}

	var rf RoutesFile
	if err := json.Unmarshal(b, &rf); err != nil {
		return RoutesFile{}, fmt.Errorf("load routes: parse %q: %w", path, err)
	}
	return rf, nil
}

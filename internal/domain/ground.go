package domain

// Cost, duration and annotation for finishing the journey by land from an intermediate city.
type GroundTransfer struct {
	Cost     float64
	Duration float64
	Notes    string
}

// Annotation used when the transfer city is not in the ground table.
const GenericGroundNote = "ground transfer"

// GroundTable maps an intermediate city to its fixed ground transfer to the final destination.
type GroundTable struct {
	entries map[string]GroundTransfer
}

func NewGroundTable(entries map[string]GroundTransfer) GroundTable {
	m := make(map[string]GroundTransfer, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return GroundTable{entries: m}
}

// Lookup returns the table entry for city, or the caller-supplied fallback
// cost/duration with the generic note when the city is unknown.
func (t GroundTable) Lookup(city string, fallbackCost, fallbackDuration float64) GroundTransfer {
	if g, ok := t.entries[city]; ok {
		return g
	}
	return GroundTransfer{Cost: fallbackCost, Duration: fallbackDuration, Notes: GenericGroundNote}
}

// Cities that finish the Haikou -> Suzhou corridor by rail or road.
var SuzhouGroundTable = NewGroundTable(map[string]GroundTransfer{
	"上海": {Cost: 35.0, Duration: 0.45, Notes: "Shanghai Hongqiao / Shanghai station high-speed rail direct to Suzhou"},
	"杭州": {Cost: 110.0, Duration: 1.4, Notes: "Hangzhou East high-speed rail to Suzhou"},
	"宁波": {Cost: 145.0, Duration: 2.2, Notes: "Ningbo station high-speed rail to Suzhou"},
	"无锡": {Cost: 25.0, Duration: 0.35, Notes: "Wuxi to Suzhou intercity rail or taxi"},
	"南京": {Cost: 95.0, Duration: 1.2, Notes: "Nanjing South high-speed rail to Suzhou"},
})

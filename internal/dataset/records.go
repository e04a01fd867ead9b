package dataset

import "fmt"

// Record is one decoded route record. Each category has its own concrete type;
// callers switch on the type to map it onto legs.
type Record interface {
	Category() Category
}

// Haikou nonstop to Shanghai, then rail to Suzhou.
type DirectRecord struct {
	FlightCost  float64
	FlightHours float64
	FlightNo    string
	PriceKey    string
	RailCost    float64
	RailHours   float64
}

// Rail to Zhanjiang, taxi to Wuchuan airport, flight to Shanghai, rail to Suzhou.
type RailFlightRecord struct {
	RailCost          float64
	RailHours         float64
	RailNote          string
	TransferCost      float64
	TransferHours     float64
	FlightCost        float64
	FlightHours       float64
	FlightNo          string
	PriceKey          string
	RailToSuzhouCost  float64
	RailToSuzhouHours float64
}

// Two flights leaving Hainan, then a ground leg from the transfer city.
type TwoHopRecord struct {
	FirstHopTo        string
	FirstHopCost      float64
	FirstHopHours     float64
	FirstHopPriceKey  string
	TransferCity      string
	SecondHopCost     float64
	SecondHopHours    float64
	SecondHopPriceKey string
	GroundCost        float64
	GroundHours       float64
}

// Ticket routed through Shanghai to a further destination; only the first segment is flown.
type HiddenCityRecord struct {
	SegmentCost  float64
	SegmentHours float64
	FlightNo     string
	RailCost     float64
	RailHours    float64
}

// Outbound to a visa-free country, flight back into China, then a ground leg.
type VisaFreeRecord struct {
	Country       string
	OutboundCost  float64
	OutboundHours float64
	ArrivalCity   string
	InboundCost   float64
	InboundHours  float64
	GroundCost    float64
	GroundHours   float64
}

// Free-form strategy that already lists its legs.
type ExtraRecord struct {
	Name  string
	Legs  []ExtraLeg
	Risks []string
}

type ExtraLeg struct {
	Mode        string
	Origin      string
	Destination string
	Cost        float64
	Hours       float64
	Notes       string
	PriceKey    string
}

func (DirectRecord) Category() Category     { return CategoryDirect }
func (RailFlightRecord) Category() Category { return CategoryRailFlight }
func (TwoHopRecord) Category() Category     { return CategoryTwoHop }
func (HiddenCityRecord) Category() Category { return CategoryHiddenCity }
func (VisaFreeRecord) Category() Category   { return CategoryVisaFree }
func (ExtraRecord) Category() Category      { return CategoryExtra }

// Records decodes every known category in Categories order, preserving record
// order within a category. Unknown top-level keys are ignored.
// The first record missing a required field aborts decoding.
func (d Dataset) Records() ([]Record, error) {
	var out []Record
	for _, cat := range Categories {
		items, err := d.items(cat)
		if err != nil {
			return nil, err
		}

		for i, item := range items {
			rec, err := decodeRecord(cat, i, item)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

func decodeRecord(cat Category, index int, m map[string]any) (Record, error) {
	r := newFieldReader(cat, index, m)

	var rec Record
	switch cat {
	case CategoryDirect:
		rec = DirectRecord{
			FlightCost:  r.float("flight_cost"),
			FlightHours: r.float("flight_hours"),
			FlightNo:    r.optString("flight_no"),
			PriceKey:    r.optString("price_key"),
			RailCost:    r.float("rail_cost"),
			RailHours:   r.float("rail_hours"),
		}
	case CategoryRailFlight:
		rec = RailFlightRecord{
			RailCost:          r.float("rail_cost"),
			RailHours:         r.float("rail_hours"),
			RailNote:          r.optString("rail_note"),
			TransferCost:      r.float("transfer_cost"),
			TransferHours:     r.float("transfer_hours"),
			FlightCost:        r.float("flight_cost"),
			FlightHours:       r.float("flight_hours"),
			FlightNo:          r.optString("flight_no"),
			PriceKey:          r.optString("price_key"),
			RailToSuzhouCost:  r.float("rail_to_suzhou_cost"),
			RailToSuzhouHours: r.float("rail_to_suzhou_hours"),
		}
	case CategoryTwoHop:
		rec = TwoHopRecord{
			TransferCity:      r.str("transfer_city"),
			FirstHopTo:        r.str("first_hop_to"),
			FirstHopCost:      r.float("first_hop_cost"),
			FirstHopHours:     r.float("first_hop_hours"),
			FirstHopPriceKey:  r.optString("first_hop_price_key"),
			SecondHopCost:     r.float("second_hop_cost"),
			SecondHopHours:    r.float("second_hop_hours"),
			SecondHopPriceKey: r.optString("second_hop_price_key"),
			GroundCost:        r.optFloat("ground_cost", 0),
			GroundHours:       r.optFloat("ground_hours", 0),
		}
	case CategoryHiddenCity:
		rec = HiddenCityRecord{
			SegmentCost:  r.float("segment_cost_estimate"),
			SegmentHours: r.float("segment_hours"),
			FlightNo:     r.optString("flight_no"),
			RailCost:     r.float("rail_cost"),
			RailHours:    r.float("rail_hours"),
		}
	case CategoryVisaFree:
		rec = VisaFreeRecord{
			ArrivalCity:   r.str("back_to_china_city"),
			Country:       r.str("country"),
			OutboundCost:  r.float("outbound_cost"),
			OutboundHours: r.float("outbound_hours"),
			InboundCost:   r.float("inbound_cost"),
			InboundHours:  r.float("inbound_hours"),
			GroundCost:    r.optFloat("ground_cost", 0),
			GroundHours:   r.optFloat("ground_hours", 0),
		}
	case CategoryExtra:
		rec = decodeExtra(r)
	default:
		return nil, fmt.Errorf("dataset: unknown category %q", cat)
	}

	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func decodeExtra(r *fieldReader) ExtraRecord {
	rec := ExtraRecord{Name: r.str("name")}

	for i, seg := range r.list("legs") {
		lr := r.nested(fmt.Sprintf("legs[%d].", i), seg)
		leg := ExtraLeg{
			Mode:        lr.str("mode"),
			Origin:      lr.str("origin"),
			Destination: lr.str("destination"),
			Cost:        lr.float("cost"),
			Hours:       lr.float("hours"),
			Notes:       lr.optString("notes"),
			PriceKey:    lr.optString("price_key"),
		}
		if lr.err != nil {
			if r.err == nil {
				r.err = lr.err
			}
			return rec
		}
		rec.Legs = append(rec.Legs, leg)
	}
	if r.err == nil && len(rec.Legs) == 0 {
		r.fail("legs", ErrFieldType, "non-empty list")
	}

	rec.Risks = r.optStrings("risks")
	return rec
}

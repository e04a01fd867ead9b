package services

import (
	"fmt"
	"route-fare-planner/internal/dataset"
	"route-fare-planner/internal/domain"
)

// Fixed endpoints and waypoints of the Haikou -> Suzhou corridor, named as in the dataset.
const (
	cityHaikou          = "海口"
	cityShanghai        = "上海"
	citySuzhou          = "苏州"
	cityZhanjiang       = "湛江"
	zhanjiangStation    = "湛江站"
	wuchuanAirport      = "吴川机场"
	cityWuchuan         = "吴川"
	supplementaryPrefix = "supplementary: "
)

const (
	labelDirect     = "Plan 1: Haikou nonstop to Shanghai + rail to Suzhou"
	labelRailFlight = "Plan 2: Haikou -> Zhanjiang (rail) + Wuchuan flight to Shanghai + rail to Suzhou"
	labelTwoHopFmt  = "Plan 3: leave Hainan first (%s) then transfer (%s)"
	labelHiddenCity = "Plan 4: via Shanghai to an onward destination (price check only, skipping the last segment is not recommended)"
	labelVisaFree   = "Plan 5: fly to a visa-free country first, then back to China"
)

const (
	riskTicketScarcity = "ticket scarcity may make this infeasible"
	riskAirlinePolicy  = "skipping the final segment may violate airline rules; onward or future bookings can be cancelled or the account restricted"
	riskCheckedBaggage = "not feasible with checked baggage that cannot be collected mid-journey"
	riskVisaVolatility = "heavily exposed to visa policy, entry rules and return-flight volatility"
)

const (
	noteHighSpeedRail  = "high-speed rail"
	noteStationAirport = "station to airport"
	noteLeaveIsland    = "leave the island first"
	noteSecondFlight   = "second flight"
	noteDeparture      = "departure"
	noteReturn         = "return to China"
)

// BuildPlans decodes the dataset and maps every record onto a RoutePlan,
// categories in dataset.Categories order and records in input order.
// Ground legs are resolved against domain.SuzhouGroundTable.
func BuildPlans(ds dataset.Dataset) ([]domain.RoutePlan, error) {
	records, err := ds.Records()
	if err != nil {
		return nil, fmt.Errorf("build plans: %w", err)
	}
	plans, err := PlansFromRecords(records, domain.SuzhouGroundTable)
	if err != nil {
		return nil, fmt.Errorf("build plans: %w", err)
	}
	return plans, nil
}

// PlansFromRecords maps decoded records onto plans, one plan per record.
func PlansFromRecords(records []dataset.Record, ground domain.GroundTable) ([]domain.RoutePlan, error) {
	plans := make([]domain.RoutePlan, 0, len(records))
	for i, rec := range records {
		plan, err := planFromRecord(rec, ground)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func planFromRecord(rec dataset.Record, ground domain.GroundTable) (domain.RoutePlan, error) {
	switch r := rec.(type) {
	case dataset.DirectRecord:
		return domain.RoutePlan{
			Strategy: labelDirect,
			Legs: []domain.Leg{
				{Mode: domain.ModeFlight, Origin: cityHaikou, Destination: cityShanghai, Cost: r.FlightCost, Duration: r.FlightHours, PriceKey: r.PriceKey, Notes: r.FlightNo},
				{Mode: domain.ModeRail, Origin: cityShanghai, Destination: citySuzhou, Cost: r.RailCost, Duration: r.RailHours, Notes: noteHighSpeedRail},
			},
		}, nil

	case dataset.RailFlightRecord:
		return domain.RoutePlan{
			Strategy: labelRailFlight,
			Legs: []domain.Leg{
				{Mode: domain.ModeRail, Origin: cityHaikou, Destination: cityZhanjiang, Cost: r.RailCost, Duration: r.RailHours, Notes: r.RailNote},
				{Mode: domain.ModeTaxi, Origin: zhanjiangStation, Destination: wuchuanAirport, Cost: r.TransferCost, Duration: r.TransferHours, Notes: noteStationAirport},
				{Mode: domain.ModeFlight, Origin: cityWuchuan, Destination: cityShanghai, Cost: r.FlightCost, Duration: r.FlightHours, PriceKey: r.PriceKey, Notes: r.FlightNo},
				{Mode: domain.ModeRail, Origin: cityShanghai, Destination: citySuzhou, Cost: r.RailToSuzhouCost, Duration: r.RailToSuzhouHours, Notes: noteHighSpeedRail},
			},
			Risks: []string{riskTicketScarcity},
		}, nil

	case dataset.TwoHopRecord:
		g := ground.Lookup(r.TransferCity, r.GroundCost, r.GroundHours)
		return domain.RoutePlan{
			Strategy: fmt.Sprintf(labelTwoHopFmt, r.FirstHopTo, r.TransferCity),
			Legs: []domain.Leg{
				{Mode: domain.ModeFlight, Origin: cityHaikou, Destination: r.FirstHopTo, Cost: r.FirstHopCost, Duration: r.FirstHopHours, PriceKey: r.FirstHopPriceKey, Notes: noteLeaveIsland},
				{Mode: domain.ModeFlight, Origin: r.FirstHopTo, Destination: r.TransferCity, Cost: r.SecondHopCost, Duration: r.SecondHopHours, PriceKey: r.SecondHopPriceKey, Notes: noteSecondFlight},
				{Mode: domain.ModeRail, Origin: r.TransferCity, Destination: citySuzhou, Cost: g.Cost, Duration: g.Duration, Notes: g.Notes},
			},
		}, nil

	case dataset.HiddenCityRecord:
		return domain.RoutePlan{
			Strategy: labelHiddenCity,
			Legs: []domain.Leg{
				{Mode: domain.ModeFlight, Origin: cityHaikou, Destination: cityShanghai, Cost: r.SegmentCost, Duration: r.SegmentHours, Notes: r.FlightNo},
				{Mode: domain.ModeRail, Origin: cityShanghai, Destination: citySuzhou, Cost: r.RailCost, Duration: r.RailHours, Notes: noteHighSpeedRail},
			},
			Risks: []string{riskAirlinePolicy, riskCheckedBaggage},
		}, nil

	case dataset.VisaFreeRecord:
		g := ground.Lookup(r.ArrivalCity, r.GroundCost, r.GroundHours)
		return domain.RoutePlan{
			Strategy: labelVisaFree,
			Legs: []domain.Leg{
				{Mode: domain.ModeFlight, Origin: cityHaikou, Destination: r.Country, Cost: r.OutboundCost, Duration: r.OutboundHours, Notes: noteDeparture},
				{Mode: domain.ModeFlight, Origin: r.Country, Destination: r.ArrivalCity, Cost: r.InboundCost, Duration: r.InboundHours, Notes: noteReturn},
				{Mode: domain.ModeRail, Origin: r.ArrivalCity, Destination: citySuzhou, Cost: g.Cost, Duration: g.Duration, Notes: g.Notes},
			},
			Risks: []string{riskVisaVolatility},
		}, nil

	case dataset.ExtraRecord:
		legs := make([]domain.Leg, 0, len(r.Legs))
		for _, l := range r.Legs {
			legs = append(legs, domain.Leg{
				Mode:        domain.Mode(l.Mode),
				Origin:      l.Origin,
				Destination: l.Destination,
				Cost:        l.Cost,
				Duration:    l.Hours,
				PriceKey:    l.PriceKey,
				Notes:       l.Notes,
			})
		}
		return domain.RoutePlan{
			Strategy: supplementaryPrefix + r.Name,
			Legs:     legs,
			Risks:    append([]string(nil), r.Risks...),
		}, nil
	}

	return domain.RoutePlan{}, fmt.Errorf("unhandled record type %T", rec)
}

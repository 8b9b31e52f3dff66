package ticketing

import (
	"context"

	"github.com/lithammer/shortuuid/v3"

	"flights/entity"
	"flights/gateway"
)

// lccBuilder tickets from trace/offer data alone: one request entry per
// passenger with fare breakdown and per-leg ancillary elements. No prior
// reservation id is required.
type lccBuilder struct{}

func (lccBuilder) Family() entity.SupplierFamily { return entity.SupplierLCC }

func (lccBuilder) Validate(tc Context) error {
	if tc.TraceID == "" {
		return &entity.ValidationError{Field: "trace_id", Reason: "must not be empty"}
	}
	if tc.Confirmation.OfferID == "" {
		return &entity.ValidationError{Field: "offer_id", Reason: "must not be empty"}
	}
	// The per-leg ancillary elements and the fare breakdown both come from
	// the confirmation; without its segment list the request would carry
	// zero fares and no legs.
	if len(tc.Confirmation.Segments) == 0 {
		return &entity.ValidationError{Field: "confirmation", Reason: "a confirmed fare with segments is required"}
	}
	if len(tc.Passengers) == 0 {
		return &entity.ValidationError{Field: "passengers", Reason: "at least one passenger is required"}
	}
	return nil
}

func (lccBuilder) Submit(ctx context.Context, agg Aggregator, tc Context) (gateway.TicketResponse, error) {
	passengers := make([]gateway.LCCPassengerWire, 0, len(tc.Passengers))
	for _, p := range tc.Passengers {
		base, tax := passengerFare(tc.Confirmation, p.Type)
		passengers = append(passengers, gateway.LCCPassengerWire{
			Title:     p.Title,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Type:      string(p.Type),
			BaseFare:  base,
			Tax:       tax,
			Baggage:   ancillaries(tc.Confirmation, p.Baggage, "NoBaggage"),
			Meals:     ancillaries(tc.Confirmation, p.Meals, "NoMeal"),
			Seats:     ancillaries(tc.Confirmation, p.Seats, "NoSeat"),
		})
	}

	return agg.TicketLCC(ctx, gateway.LCCTicketRequest{
		TraceID:        tc.TraceID,
		OfferID:        tc.Confirmation.OfferID,
		AgentReference: shortuuid.New(),
		Passengers:     passengers,
	})
}

// passengerFare picks the per-passenger-type breakdown when the supplier
// provided one, else the aggregate fare.
func passengerFare(conf entity.FareConfirmation, ptype entity.PassengerType) (base, tax float64) {
	for _, pf := range conf.PassengerFares {
		if pf.PassengerType == ptype {
			return pf.BaseFare, pf.Tax
		}
	}
	return conf.BaseFare, conf.Taxes
}

// ancillaries produces exactly one element per leg in the confirmation's
// segment list: the passenger's election for that leg when present, else a
// zero-value placeholder carrying the leg's identity.
func ancillaries(conf entity.FareConfirmation, elections []entity.AncillaryElection, placeholderCode string) []gateway.AncillaryWire {
	wires := make([]gateway.AncillaryWire, 0, len(conf.Segments))
	for legIndex, seg := range conf.Segments {
		wire := gateway.AncillaryWire{
			Code:         placeholderCode,
			Price:        0,
			Currency:     conf.Currency,
			AirlineCode:  seg.AirlineCode,
			FlightNumber: seg.FlightNumber,
			Origin:       seg.Origin,
			Destination:  seg.Destination,
		}
		for _, e := range elections {
			if e.LegIndex == legIndex && e.Code != "" {
				wire.Code = e.Code
				wire.Description = e.Description
				wire.WeightKg = e.WeightKg
				wire.Price = e.Price
				break
			}
		}
		wires = append(wires, wire)
	}
	return wires
}

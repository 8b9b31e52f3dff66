package ticketing

import (
	"context"

	"flights/entity"
	"flights/gateway"
)

// gdsBuilder tickets against an existing reservation; the request carries
// only the reservation identity.
type gdsBuilder struct{}

func (gdsBuilder) Family() entity.SupplierFamily { return entity.SupplierGDS }

func (gdsBuilder) Validate(tc Context) error {
	if tc.Reservation == nil || tc.Reservation.BookingID == "" {
		return &entity.ValidationError{Field: "booking_id", Reason: "GDS ticketing requires a reservation id"}
	}
	return nil
}

func (gdsBuilder) Submit(ctx context.Context, agg Aggregator, tc Context) (gateway.TicketResponse, error) {
	return agg.TicketGDS(ctx, gateway.GDSTicketRequest{
		BookingID:     tc.Reservation.BookingID,
		RecordLocator: tc.Reservation.RecordLocator,
		TraceID:       tc.TraceID,
	})
}

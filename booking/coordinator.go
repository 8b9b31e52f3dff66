package booking

import (
	"context"
	"fmt"
	"time"

	"flights/entity"
	"flights/gateway"
	"flights/log"
)

type Aggregator interface {
	Book(ctx context.Context, req gateway.BookRequest) (gateway.BookResult, error)
}

type ReservationsRepository interface {
	Add(ctx context.Context, reservation entity.Reservation) error
}

// Coordinator creates the reservation record. It never tickets: a created-
// but-unticketed reservation is an observable, recoverable state, not
// something hidden inside a combined call.
type Coordinator struct {
	agg  Aggregator
	repo ReservationsRepository
}

func NewCoordinator(agg Aggregator, repo ReservationsRepository) *Coordinator {
	return &Coordinator{agg: agg, repo: repo}
}

func (c *Coordinator) Book(
	ctx context.Context,
	traceID string,
	offerID string,
	family entity.SupplierFamily,
	contact entity.Contact,
	address entity.Address,
	passengers []entity.Passenger,
) (entity.Reservation, error) {
	// Preconditions fail locally, before any network call.
	if address.Line1 == "" {
		return entity.Reservation{}, &entity.ValidationError{Field: "address.line1", Reason: "must not be empty"}
	}
	if len(passengers) == 0 {
		return entity.Reservation{}, &entity.ValidationError{Field: "passengers", Reason: "at least one passenger is required"}
	}

	result, err := c.agg.Book(ctx, gateway.BookRequest{
		TraceID:    traceID,
		OfferID:    offerID,
		Contact:    contact,
		Address:    address,
		Passengers: passengers,
	})
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("booking failed: %w", err)
	}

	reservation := entity.Reservation{
		BookingID:      result.BookingID,
		RecordLocator:  result.RecordLocator,
		SupplierFamily: family,
		TraceID:        traceID,
		OfferID:        offerID,
		Status:         entity.StatusBooked,
		CreatedAt:      time.Now().UTC(),
	}

	if err := c.repo.Add(ctx, reservation); err != nil {
		return entity.Reservation{}, fmt.Errorf("could not store reservation: %w", err)
	}

	log.FromContext(ctx).
		WithField("booking_id", reservation.BookingID).
		WithField("record_locator", reservation.RecordLocator).
		Info("Reservation created")

	return reservation, nil
}

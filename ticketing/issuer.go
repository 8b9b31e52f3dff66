package ticketing

import (
	"context"
	"errors"
	"fmt"

	"flights/entity"
	"flights/gateway"
	"flights/log"
	"flights/metrics"
)

type Aggregator interface {
	TicketGDS(ctx context.Context, req gateway.GDSTicketRequest) (gateway.TicketResponse, error)
	TicketLCC(ctx context.Context, req gateway.LCCTicketRequest) (gateway.TicketResponse, error)
}

type ReservationsRepository interface {
	UpdateByID(
		ctx context.Context,
		bookingID string,
		updateFn func(reservation entity.Reservation) (entity.Reservation, error),
	) (entity.Reservation, error)
}

type EventBus interface {
	Publish(ctx context.Context, event any) error
}

// Issuer selects the supplier-family strategy once and drives the reservation
// state machine around the ticket call. Retries are never automatic: a failed
// attempt leaves the reservation in TicketFailed until a caller re-invokes,
// possibly with a forced family.
type Issuer struct {
	agg  Aggregator
	repo ReservationsRepository
	bus  EventBus
}

func NewIssuer(agg Aggregator, repo ReservationsRepository, bus EventBus) *Issuer {
	return &Issuer{agg: agg, repo: repo, bus: bus}
}

// Issue attempts ticket issuance. forced may name a supplier family to
// override the confirmation's flag; pass "" for the default path.
func (i *Issuer) Issue(ctx context.Context, tc Context, forced entity.SupplierFamily) (entity.TicketResult, error) {
	family := forced
	if family == "" {
		family = tc.Confirmation.SupplierFamily
	}
	builder := builderFor(family)

	// Local preconditions never reach the network.
	if err := builder.Validate(tc); err != nil {
		return entity.TicketResult{FamilyUsed: family}, err
	}

	if tc.Reservation != nil && tc.Reservation.BookingID != "" {
		reservation, err := i.repo.UpdateByID(ctx, tc.Reservation.BookingID, func(r entity.Reservation) (entity.Reservation, error) {
			if err := r.BeginTicketing(); err != nil {
				return r, err
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, entity.ErrAlreadyTicketed) || errors.Is(err, entity.ErrTicketingInProgress) {
				return entity.TicketResult{FamilyUsed: family}, err
			}
			return entity.TicketResult{FamilyUsed: family}, fmt.Errorf("could not begin ticketing: %w", err)
		}
		tc.Reservation = &reservation
	}

	resp, err := builder.Submit(ctx, i.agg, tc)
	if err != nil {
		i.recordFailure(ctx, tc, family, err)
		return entity.TicketResult{
			Success:     false,
			FamilyUsed:  family,
			RawResponse: resp.Raw,
		}, &entity.TicketingFailure{Family: family, Err: err}
	}

	status := i.recordSuccess(ctx, tc, family)
	return entity.TicketResult{
		Success:           true,
		FamilyUsed:        family,
		ReservationStatus: status,
		RawResponse:       resp.Raw,
	}, nil
}

func (i *Issuer) recordSuccess(ctx context.Context, tc Context, family entity.SupplierFamily) entity.TicketStatus {
	bookingID := ""
	if tc.Reservation != nil {
		bookingID = tc.Reservation.BookingID
	}

	var status entity.TicketStatus
	if bookingID != "" {
		updated, err := i.repo.UpdateByID(ctx, bookingID, func(r entity.Reservation) (entity.Reservation, error) {
			r.MarkTicketed()
			return r, nil
		})
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("could not persist Ticketed status")
		} else {
			status = updated.Status
		}
	}

	metrics.TicketsIssued.WithLabelValues(string(family)).Inc()
	err := i.bus.Publish(ctx, entity.TicketIssued{
		Header:     entity.NewEventHeader(),
		BookingID:  bookingID,
		TraceID:    tc.TraceID,
		OfferID:    tc.Confirmation.OfferID,
		FamilyUsed: family,
	})
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("could not publish TicketIssued")
	}
	return status
}

func (i *Issuer) recordFailure(ctx context.Context, tc Context, family entity.SupplierFamily, cause error) {
	bookingID := ""
	if tc.Reservation != nil {
		bookingID = tc.Reservation.BookingID
	}

	// The reservation is never cleared on failure; it stays retryable.
	if bookingID != "" {
		_, err := i.repo.UpdateByID(ctx, bookingID, func(r entity.Reservation) (entity.Reservation, error) {
			r.MarkTicketFailed()
			return r, nil
		})
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("could not persist TicketFailed status")
		}
	}

	metrics.TicketsFailed.WithLabelValues(string(family)).Inc()
	err := i.bus.Publish(ctx, entity.TicketIssueFailed{
		Header:     entity.NewEventHeader(),
		BookingID:  bookingID,
		TraceID:    tc.TraceID,
		OfferID:    tc.Confirmation.OfferID,
		FamilyUsed: family,
		Reason:     cause.Error(),
	})
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("could not publish TicketIssueFailed")
	}
}

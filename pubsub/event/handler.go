package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"flights/entity"
	"flights/log"
)

type BookingDetailsAPI interface {
	BookingDetails(ctx context.Context, bookingID string) (json.RawMessage, error)
}

type ReservationsRepository interface {
	Get(ctx context.Context, bookingID string) (entity.Reservation, error)
}

// Handler reacts to pipeline events. The only side effect with a remote call
// is the booking-details refresh after a successful ticket issuance.
type Handler struct {
	detailsAPI BookingDetailsAPI
	repo       ReservationsRepository
}

func NewHandler(detailsAPI BookingDetailsAPI, repo ReservationsRepository) Handler {
	return Handler{detailsAPI: detailsAPI, repo: repo}
}

func (h Handler) BookingMadeHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"LogBookingMade",
		func(ctx context.Context, event *entity.BookingMade) error {
			log.FromContext(ctx).
				WithField("booking_id", event.BookingID).
				WithField("supplier_family", event.SupplierFamily).
				Info("Booking made")
			return nil
		},
	)
}

func (h Handler) RefreshBookingDetailsHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"RefreshBookingDetails",
		func(ctx context.Context, event *entity.TicketIssued) error {
			if event.BookingID == "" {
				// LCC tickets issued from trace/offer data alone have no
				// reservation to refresh.
				return nil
			}

			if _, err := h.repo.Get(ctx, event.BookingID); err != nil {
				return fmt.Errorf("could not load reservation %s: %w", event.BookingID, err)
			}

			snapshot, err := h.detailsAPI.BookingDetails(ctx, event.BookingID)
			if err != nil {
				return fmt.Errorf("could not refresh booking details: %w", err)
			}

			log.FromContext(ctx).
				WithField("booking_id", event.BookingID).
				WithField("snapshot_bytes", len(snapshot)).
				Info("Booking details refreshed after ticketing")
			return nil
		},
	)
}

func (h Handler) TicketIssueFailedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"LogTicketIssueFailed",
		func(ctx context.Context, event *entity.TicketIssueFailed) error {
			log.FromContext(ctx).
				WithField("booking_id", event.BookingID).
				WithField("family_used", event.FamilyUsed).
				WithField("reason", event.Reason).
				Error("Ticket issuance failed; reservation remains retryable")
			return nil
		},
	)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"flights/entity"
	"flights/ticketing"
)

type postTicketRequest struct {
	ForceFamily string             `json:"force_family,omitempty"`
	Passengers  []entity.Passenger `json:"passengers,omitempty"`
}

type ticketResponse struct {
	Success    bool            `json:"success"`
	FamilyUsed string          `json:"family_used"`
	Status     string          `json:"status,omitempty"`
	Supplier   json.RawMessage `json:"supplier,omitempty"`
}

// PostBookingTicket issues the ticket for an existing reservation. The
// supplier family comes from the confirmation captured at fare time, or from
// the reservation itself when the session is gone; force_family overrides
// both.
func (s Server) PostBookingTicket(c echo.Context) error {
	var request postTicketRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	reservation, err := s.reservations.Get(ctx, c.Param("booking_id"))
	if err != nil {
		return err
	}

	conf, ok := s.flow.Confirmation()
	if !ok || conf.OfferID != reservation.OfferID {
		conf = entity.FareConfirmation{
			TraceID:        reservation.TraceID,
			OfferID:        reservation.OfferID,
			SupplierFamily: reservation.SupplierFamily,
		}
	}

	result, err := s.issuer.Issue(ctx, ticketing.Context{
		TraceID:      reservation.TraceID,
		Reservation:  &reservation,
		Confirmation: conf,
		Passengers:   request.Passengers,
	}, forcedFamily(request.ForceFamily))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticketResponse{
		Success:    result.Success,
		FamilyUsed: string(result.FamilyUsed),
		Status:     string(result.ReservationStatus),
		Supplier:   result.RawResponse,
	})
}

type postLCCTicketRequest struct {
	ForceFamily string             `json:"force_family,omitempty"`
	BookingID   string             `json:"booking_id,omitempty"`
	Passengers  []entity.Passenger `json:"passengers"`
}

// PostLCCTicket issues a ticket through the trace/offer shape, without
// requiring a stored reservation. The confirmed fare in the session provides
// the per-passenger breakdown and the segment list.
func (s Server) PostLCCTicket(c echo.Context) error {
	var request postLCCTicketRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	conf, ok := s.flow.Confirmation()
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "fare must be confirmed before ticketing")
	}

	var reservation *entity.Reservation
	if request.BookingID != "" {
		r, err := s.reservations.Get(ctx, request.BookingID)
		if err != nil {
			return err
		}
		reservation = &r
	}

	forced := entity.SupplierLCC
	if request.ForceFamily != "" {
		forced = forcedFamily(request.ForceFamily)
	}

	result, err := s.issuer.Issue(ctx, ticketing.Context{
		TraceID:      conf.TraceID,
		Reservation:  reservation,
		Confirmation: conf,
		Passengers:   request.Passengers,
	}, forced)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticketResponse{
		Success:    result.Success,
		FamilyUsed: string(result.FamilyUsed),
		Status:     string(result.ReservationStatus),
		Supplier:   result.RawResponse,
	})
}

func forcedFamily(raw string) entity.SupplierFamily {
	switch raw {
	case "GDS", "gds":
		return entity.SupplierGDS
	case "LCC", "lcc":
		return entity.SupplierLCC
	default:
		return ""
	}
}

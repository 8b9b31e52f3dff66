package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"flights/entity"
)

type postBookingsRequest struct {
	Contact    entity.Contact     `json:"contact"`
	Address    entity.Address     `json:"address"`
	Passengers []entity.Passenger `json:"passengers"`
}

type postBookingsResponse struct {
	BookingID     string `json:"booking_id"`
	RecordLocator string `json:"record_locator,omitempty"`
	Status        string `json:"status"`
}

// PostBookings creates a reservation for the confirmed offer. Booking and
// ticketing are separate calls; a Booked reservation with no ticket is a
// normal intermediate state.
func (s Server) PostBookings(c echo.Context) error {
	var request postBookingsRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	conf, ok := s.flow.Confirmation()
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "fare must be confirmed before booking")
	}

	reservation, err := s.bookingSvc.Book(
		ctx,
		conf.TraceID,
		conf.OfferID,
		conf.SupplierFamily,
		request.Contact,
		request.Address,
		request.Passengers,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, postBookingsResponse{
		BookingID:     reservation.BookingID,
		RecordLocator: reservation.RecordLocator,
		Status:        string(reservation.Status),
	})
}

type bookingView struct {
	BookingID      string          `json:"booking_id"`
	RecordLocator  string          `json:"record_locator,omitempty"`
	SupplierFamily string          `json:"supplier_family"`
	TraceID        string          `json:"trace_id"`
	OfferID        string          `json:"offer_id"`
	Status         string          `json:"status"`
	Supplier       json.RawMessage `json:"supplier,omitempty"`
}

// GetBooking returns the stored reservation. With ?refresh=true the supplier
// snapshot is fetched live and attached.
func (s Server) GetBooking(c echo.Context) error {
	ctx := c.Request().Context()

	reservation, err := s.reservations.Get(ctx, c.Param("booking_id"))
	if err != nil {
		return err
	}

	view := bookingView{
		BookingID:      reservation.BookingID,
		RecordLocator:  reservation.RecordLocator,
		SupplierFamily: string(reservation.SupplierFamily),
		TraceID:        reservation.TraceID,
		OfferID:        reservation.OfferID,
		Status:         string(reservation.Status),
	}

	if c.QueryParam("refresh") == "true" {
		snapshot, err := s.detailsAPI.BookingDetails(ctx, reservation.BookingID)
		if err != nil {
			return err
		}
		view.Supplier = snapshot
	}

	return c.JSON(http.StatusOK, view)
}

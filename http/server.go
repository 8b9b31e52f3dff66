package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"flights/entity"
	"flights/log"
	"flights/search"
	"flights/session"
	"flights/ticketing"
)

type SearchService interface {
	Search(ctx context.Context, criteria search.Criteria) (entity.SearchBatch, error)
}

type FareService interface {
	Confirm(ctx context.Context, traceID, offerID string) (entity.FareConfirmation, error)
	RefetchRules(ctx context.Context, traceID, offerID string) (string, error)
}

type BookingService interface {
	Book(
		ctx context.Context,
		traceID string,
		offerID string,
		family entity.SupplierFamily,
		contact entity.Contact,
		address entity.Address,
		passengers []entity.Passenger,
	) (entity.Reservation, error)
}

type TicketIssuer interface {
	Issue(ctx context.Context, tc ticketing.Context, forced entity.SupplierFamily) (entity.TicketResult, error)
}

type ReservationsRepository interface {
	Get(ctx context.Context, bookingID string) (entity.Reservation, error)
}

type BookingDetailsAPI interface {
	BookingDetails(ctx context.Context, bookingID string) (json.RawMessage, error)
}

type Server struct {
	addr string
	e    *echo.Echo

	searchService SearchService
	fareService   FareService
	bookingSvc    BookingService
	issuer        TicketIssuer
	reservations  ReservationsRepository
	detailsAPI    BookingDetailsAPI
	flow          *session.State
}

func NewServer(
	addr string,
	searchService SearchService,
	fareService FareService,
	bookingSvc BookingService,
	issuer TicketIssuer,
	reservations ReservationsRepository,
	detailsAPI BookingDetailsAPI,
	flow *session.State,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("flights"))
	e.HTTPErrorHandler = errorHandler

	server := &Server{
		addr:          addr,
		e:             e,
		searchService: searchService,
		fareService:   fareService,
		bookingSvc:    bookingSvc,
		issuer:        issuer,
		reservations:  reservations,
		detailsAPI:    detailsAPI,
		flow:          flow,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/flights/search", server.PostSearch)
	e.POST("/flights/select", server.PostSelect)
	e.POST("/flights/confirm", server.PostConfirm)
	e.POST("/flights/confirm/rules", server.PostConfirmRules)

	e.POST("/bookings", server.PostBookings)
	e.GET("/bookings/:booking_id", server.GetBooking)
	e.POST("/bookings/:booking_id/ticket", server.PostBookingTicket)
	e.POST("/tickets/lcc", server.PostLCCTicket)

	return server
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(ctx)
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// errorHandler maps the domain error taxonomy onto HTTP status codes.
// Validation failures stay 4xx; supplier faults and transport budget
// overruns surface as distinct 5xx codes so callers can tell them apart.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]any{"message": httpErr.Message})
		return
	}

	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		_ = c.JSON(http.StatusBadRequest, map[string]any{
			"message": validationErr.Error(),
			"field":   validationErr.Field,
		})
		return
	}

	switch {
	case errors.Is(err, entity.ErrNotFound):
		_ = c.JSON(http.StatusNotFound, map[string]any{"message": err.Error()})
		return
	case errors.Is(err, entity.ErrAlreadyTicketed),
		errors.Is(err, entity.ErrTicketingInProgress),
		errors.Is(err, entity.ErrConflict):
		_ = c.JSON(http.StatusConflict, map[string]any{"message": err.Error()})
		return
	}

	var ticketingErr *entity.TicketingFailure
	if errors.As(err, &ticketingErr) {
		_ = c.JSON(http.StatusBadGateway, map[string]any{
			"message": ticketingErr.Error(),
			"family":  string(ticketingErr.Family),
		})
		return
	}

	var supplierErr *entity.SupplierError
	if errors.As(err, &supplierErr) {
		_ = c.JSON(http.StatusBadGateway, map[string]any{
			"message":  supplierErr.Error(),
			"endpoint": supplierErr.Endpoint,
			"code":     supplierErr.Code,
		})
		return
	}

	var transportErr *entity.TransportError
	if errors.As(err, &transportErr) {
		_ = c.JSON(http.StatusGatewayTimeout, map[string]any{
			"message":  transportErr.Error(),
			"endpoint": transportErr.Endpoint,
		})
		return
	}

	log.FromContext(c.Request().Context()).WithError(err).Error("unhandled HTTP error")
	_ = c.JSON(http.StatusInternalServerError, map[string]any{"message": "internal error"})
}

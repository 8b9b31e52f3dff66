package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flights/entity"
	"flights/gateway"
	"flights/mocks"
	"flights/recovery"
	"flights/session"
	"flights/ticketing"
)

type ticketTestServer struct {
	server *Server
	agg    *gateway.AggregatorMock
	repo   *mocks.ReservationsRepository
	flow   *session.State
}

func newTicketTestServer(t *testing.T) *ticketTestServer {
	t.Helper()

	agg := gateway.NewAggregatorMock()
	repo := mocks.NewReservationsRepository()
	bus := mocks.NewEventBus()
	flow := session.New(recovery.NewMemoryStore())
	issuer := ticketing.NewIssuer(agg, repo, bus)

	return &ticketTestServer{
		server: NewServer(":0", nil, nil, nil, issuer, repo, agg, flow),
		agg:    agg,
		repo:   repo,
		flow:   flow,
	}
}

func (ts *ticketTestServer) do(method, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ts.server.e.ServeHTTP(rec, req)
	return rec
}

func storedReservation(family entity.SupplierFamily) entity.Reservation {
	return entity.Reservation{
		BookingID:      "bk-1",
		RecordLocator:  "PNR777",
		SupplierFamily: family,
		TraceID:        "trace-1",
		OfferID:        "offer-1",
		Status:         entity.StatusBooked,
		CreatedAt:      time.Now().UTC(),
	}
}

func confirmedFare() entity.FareConfirmation {
	return entity.FareConfirmation{
		TraceID:        "trace-1",
		OfferID:        "offer-1",
		BaseFare:       3000,
		Taxes:          400,
		Currency:       "INR",
		SupplierFamily: entity.SupplierLCC,
		Segments: []entity.SegmentRef{
			{AirlineCode: "6E", FlightNumber: "6E-204", Origin: "CCU", Destination: "BOM"},
		},
	}
}

func TestPostBookingTicket_LCCWithoutConfirmedFare(t *testing.T) {
	ts := newTicketTestServer(t)
	require.NoError(t, ts.repo.Add(context.Background(), storedReservation(entity.SupplierLCC)))

	// the session never saw a confirmation for this offer, so the handler
	// only has trace and offer ids; that is not enough to build a fare-
	// bearing request and must not reach the supplier
	rec := ts.do(http.MethodPost, "/bookings/bk-1/ticket", map[string]any{
		"passengers": []entity.Passenger{
			{FirstName: "Asha", LastName: "Rao", Type: entity.PassengerAdult},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.agg.TicketLCCCalls)
	assert.Empty(t, ts.agg.TicketGDSCalls)

	stored, err := ts.repo.Get(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusBooked, stored.Status)
}

func TestPostBookingTicket_EchoesPersistedStatus(t *testing.T) {
	ts := newTicketTestServer(t)
	require.NoError(t, ts.repo.Add(context.Background(), storedReservation(entity.SupplierGDS)))
	ts.agg.TicketGDSFunc = func(ctx context.Context, req gateway.GDSTicketRequest) (gateway.TicketResponse, error) {
		return gateway.TicketResponse{Raw: json.RawMessage(`{"ticketNumber":"098-123"}`)}, nil
	}

	rec := ts.do(http.MethodPost, "/bookings/bk-1/ticket", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, string(entity.SupplierGDS), body["family_used"])
	assert.Equal(t, string(entity.StatusTicketed), body["status"])
}

func TestPostLCCTicket_NoReservationOmitsStatus(t *testing.T) {
	ts := newTicketTestServer(t)
	token := ts.flow.Begin()
	require.True(t, ts.flow.ApplyConfirmation(token, confirmedFare()))
	ts.agg.TicketLCCFunc = func(ctx context.Context, req gateway.LCCTicketRequest) (gateway.TicketResponse, error) {
		return gateway.TicketResponse{Raw: json.RawMessage(`{"ok":true}`)}, nil
	}

	rec := ts.do(http.MethodPost, "/tickets/lcc", map[string]any{
		"passengers": []entity.Passenger{
			{FirstName: "Asha", LastName: "Rao", Type: entity.PassengerAdult},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ts.agg.TicketLCCCalls, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "status")
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"flights/booking"
	"flights/entity"
	"flights/fare"
	"flights/gateway"
	"flights/mocks"
	"flights/recovery"
	"flights/search"
	"flights/session"
	"flights/ticketing"
)

// pipeline bundles the domain components the way New wires them, minus the
// transport and persistence infrastructure.
type pipeline struct {
	agg    *gateway.AggregatorMock
	repo   *mocks.ReservationsRepository
	bus    *mocks.EventBus
	store  *recovery.MemoryStore
	flow   *session.State
	search *search.Orchestrator
	fare   *fare.Fetcher
	book   *booking.Coordinator
	issuer *ticketing.Issuer
}

func newPipeline() *pipeline {
	agg := gateway.NewAggregatorMock()
	repo := mocks.NewReservationsRepository()
	bus := mocks.NewEventBus()
	store := recovery.NewMemoryStore()

	return &pipeline{
		agg:    agg,
		repo:   repo,
		bus:    bus,
		store:  store,
		flow:   session.New(store),
		search: search.NewOrchestrator(agg),
		fare:   fare.NewFetcher(agg, 250*time.Millisecond),
		book:   booking.NewCoordinator(agg, repo),
		issuer: ticketing.NewIssuer(agg, repo, bus),
	}
}

func (p *pipeline) scriptSearch(traceID string, results string) {
	p.agg.SearchFunc = func(ctx context.Context, req gateway.SearchRequest) (gateway.SearchResult, error) {
		return gateway.SearchResult{TraceID: traceID, RawResults: json.RawMessage(results)}, nil
	}
}

func (p *pipeline) scriptQuote(quote gateway.FareQuote) {
	p.agg.FareQuoteFunc = func(ctx context.Context, traceID, offerID string) (gateway.FareQuote, error) {
		return quote, nil
	}
}

func passengerList() []entity.Passenger {
	return []entity.Passenger{
		{Title: "Ms", FirstName: "Asha", LastName: "Rao", Type: entity.PassengerAdult},
	}
}

func TestPipeline_GDSEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	p := newPipeline()

	p.scriptSearch("trace-gds", `[[{"resultIndex":"OB1","price":900.0,"segments":[{"origin":"DEL","destination":"BOM","airlineCode":"AI"}]}]]`)
	p.scriptQuote(gateway.FareQuote{
		BaseFare: 800, Tax: 100, PublishedFare: 900, Currency: "INR", IsLCC: false,
		Segments: []gateway.SegmentWire{{AirlineCode: "AI", Origin: "DEL", Destination: "BOM"}},
	})
	p.agg.FareRuleFunc = func(ctx context.Context, traceID, offerID string) (string, error) {
		return "standard rules", nil
	}
	p.agg.BookFunc = func(ctx context.Context, req gateway.BookRequest) (gateway.BookResult, error) {
		assert.Equal(t, "trace-gds", req.TraceID)
		assert.Equal(t, "OB1", req.OfferID)
		return gateway.BookResult{BookingID: "bk-gds", RecordLocator: "PNR777"}, nil
	}
	p.agg.TicketGDSFunc = func(ctx context.Context, req gateway.GDSTicketRequest) (gateway.TicketResponse, error) {
		assert.Equal(t, "bk-gds", req.BookingID)
		return gateway.TicketResponse{Raw: json.RawMessage(`{"ticketNumber":"098"}`)}, nil
	}

	batch, err := p.search.Search(ctx, search.Criteria{Origin: "DEL", Destination: "BOM", Adults: 1})
	require.NoError(t, err)
	require.Len(t, batch.Offers, 1)
	p.flow.SetBatch(batch)

	require.NoError(t, p.flow.Select(ctx, batch.Offers[0], batch.TraceID))

	token := p.flow.Begin()
	conf, err := p.fare.Confirm(ctx, batch.TraceID, batch.Offers[0].OfferID)
	require.NoError(t, err)
	require.True(t, p.flow.ApplyConfirmation(token, conf))
	assert.Equal(t, entity.SupplierGDS, conf.SupplierFamily)
	assert.Equal(t, "standard rules", conf.Rules)

	reservation, err := p.book.Book(ctx, conf.TraceID, conf.OfferID, conf.SupplierFamily,
		entity.Contact{Email: "a@b.io"}, entity.Address{Line1: "1 Main St"}, passengerList())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusBooked, reservation.Status)

	result, err := p.issuer.Issue(ctx, ticketing.Context{
		TraceID:      conf.TraceID,
		Reservation:  &reservation,
		Confirmation: conf,
		Passengers:   passengerList(),
	}, "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, entity.SupplierGDS, result.FamilyUsed)
	assert.Empty(t, p.agg.TicketLCCCalls)

	stored, err := p.repo.Get(ctx, "bk-gds")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusTicketed, stored.Status)
}

func TestPipeline_LCCEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	p := newPipeline()

	p.scriptSearch("trace-lcc", `[{"resultId":"L1","fare":{"totalFare":4500,"currency":"INR"},"segments":[{"origin":"CCU","destination":"BLR","airlineCode":"6E","flightNumber":"6E-204"}]}]`)
	p.scriptQuote(gateway.FareQuote{
		BaseFare: 4000, Tax: 500, PublishedFare: 4500, Currency: "INR", IsLCC: true,
		Segments: []gateway.SegmentWire{{AirlineCode: "6E", FlightNumber: "6E-204", Origin: "CCU", Destination: "BLR"}},
	})
	p.agg.FareRuleFunc = func(ctx context.Context, traceID, offerID string) (string, error) {
		return "", nil
	}
	p.agg.BookFunc = func(ctx context.Context, req gateway.BookRequest) (gateway.BookResult, error) {
		// LCC booking often returns no locator yet
		return gateway.BookResult{BookingID: "bk-lcc"}, nil
	}
	p.agg.TicketLCCFunc = func(ctx context.Context, req gateway.LCCTicketRequest) (gateway.TicketResponse, error) {
		require.Len(t, req.Passengers, 1)
		require.Len(t, req.Passengers[0].Baggage, 1)
		assert.Equal(t, "NoBaggage", req.Passengers[0].Baggage[0].Code)
		return gateway.TicketResponse{Raw: json.RawMessage(`{"status":"issued"}`)}, nil
	}

	batch, err := p.search.Search(ctx, search.Criteria{Origin: "CCU", Destination: "BLR", Adults: 1})
	require.NoError(t, err)
	p.flow.SetBatch(batch)
	require.NoError(t, p.flow.Select(ctx, batch.Offers[0], batch.TraceID))

	token := p.flow.Begin()
	conf, err := p.fare.Confirm(ctx, batch.TraceID, "L1")
	require.NoError(t, err)
	require.True(t, p.flow.ApplyConfirmation(token, conf))
	assert.Equal(t, entity.SupplierLCC, conf.SupplierFamily)

	reservation, err := p.book.Book(ctx, conf.TraceID, conf.OfferID, conf.SupplierFamily,
		entity.Contact{}, entity.Address{Line1: "2 Side St"}, passengerList())
	require.NoError(t, err)

	result, err := p.issuer.Issue(ctx, ticketing.Context{
		TraceID:      conf.TraceID,
		Reservation:  &reservation,
		Confirmation: conf,
		Passengers:   passengerList(),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierLCC, result.FamilyUsed)
	assert.Empty(t, p.agg.TicketGDSCalls)
}

func TestPipeline_PartialConfirmationThenRefetch(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	p := newPipeline()

	p.scriptQuote(gateway.FareQuote{PublishedFare: 1200, Currency: "USD"})

	rulesBroken := true
	p.agg.FareRuleFunc = func(ctx context.Context, traceID, offerID string) (string, error) {
		if rulesBroken {
			return "", errors.New("rules backend down")
		}
		return "recovered rules", nil
	}

	token := p.flow.Begin()
	conf, err := p.fare.Confirm(ctx, "trace-p", "offer-p")
	require.NoError(t, err)
	require.True(t, p.flow.ApplyConfirmation(token, conf))
	assert.NotEmpty(t, conf.RulesWarning)

	rulesBroken = false
	rules, err := p.fare.RefetchRules(ctx, "trace-p", "offer-p")
	require.NoError(t, err)
	p.flow.AttachRules(rules)

	got, ok := p.flow.Confirmation()
	require.True(t, ok)
	assert.Equal(t, "recovered rules", got.Rules)
	assert.Empty(t, got.RulesWarning)

	// the quote ran exactly once; only the rules call repeated
	assert.Len(t, p.agg.FareQuoteCalls, 1)
	assert.Len(t, p.agg.FareRuleCalls, 2)
}

func TestPipeline_RecoveryAfterRestart(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	p := newPipeline()

	offer := entity.FlightOffer{OfferID: "R1", Origin: "DEL", Destination: "GOI", Price: 777}
	require.NoError(t, p.flow.Select(ctx, offer, "trace-r"))

	// a fresh process with the same durable store
	reborn := session.New(p.store)

	recalled, ok := reborn.SelectedOffer(ctx)
	require.True(t, ok)
	assert.Equal(t, "R1", recalled.OfferID)

	traceID, ok := reborn.TraceID(ctx)
	require.True(t, ok)
	assert.Equal(t, "trace-r", traceID)

	// recalled offers are re-confirmed, never booked from cached state
	p.scriptQuote(gateway.FareQuote{PublishedFare: 800, Currency: "INR"})
	p.agg.FareRuleFunc = func(ctx context.Context, traceID, offerID string) (string, error) {
		return "", nil
	}

	token := reborn.Begin()
	conf, err := p.fare.Confirm(ctx, traceID, recalled.OfferID)
	require.NoError(t, err)
	require.True(t, reborn.ApplyConfirmation(token, conf))

	// the binding price is the fresh quote, not the cached display price
	assert.Equal(t, 800.0, conf.Total)
}

func TestPipeline_ForcedLCCWithoutReservation(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	p := newPipeline()

	// the supplier flagged this fare GDS, but it only tickets as LCC
	p.scriptQuote(gateway.FareQuote{
		BaseFare: 2000, Tax: 300, PublishedFare: 2300, Currency: "INR", IsLCC: false,
		Segments: []gateway.SegmentWire{{AirlineCode: "SG", FlightNumber: "SG-88", Origin: "DEL", Destination: "PNQ"}},
	})
	p.agg.FareRuleFunc = func(ctx context.Context, traceID, offerID string) (string, error) {
		return "", nil
	}
	p.agg.TicketLCCFunc = func(ctx context.Context, req gateway.LCCTicketRequest) (gateway.TicketResponse, error) {
		assert.Equal(t, "trace-f", req.TraceID)
		assert.Equal(t, "offer-f", req.OfferID)
		return gateway.TicketResponse{Raw: json.RawMessage(`{"status":"issued"}`)}, nil
	}

	conf, err := p.fare.Confirm(ctx, "trace-f", "offer-f")
	require.NoError(t, err)
	require.Equal(t, entity.SupplierGDS, conf.SupplierFamily)

	result, err := p.issuer.Issue(ctx, ticketing.Context{
		TraceID:      "trace-f",
		Confirmation: conf,
		Passengers:   passengerList(),
	}, entity.SupplierLCC)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, entity.SupplierLCC, result.FamilyUsed)
	assert.Empty(t, p.agg.TicketGDSCalls)
}

func TestPipeline_StaleConfirmDoesNotOverwrite(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	p := newPipeline()

	p.agg.FareRuleFunc = func(ctx context.Context, traceID, offerID string) (string, error) {
		return "", nil
	}

	// the first attempt is in flight when a second begins
	firstToken := p.flow.Begin()
	p.scriptQuote(gateway.FareQuote{PublishedFare: 100, Currency: "USD"})
	firstConf, err := p.fare.Confirm(ctx, "trace-s", "offer-old")
	require.NoError(t, err)

	secondToken := p.flow.Begin()
	p.scriptQuote(gateway.FareQuote{PublishedFare: 200, Currency: "USD"})
	secondConf, err := p.fare.Confirm(ctx, "trace-s", "offer-new")
	require.NoError(t, err)

	require.True(t, p.flow.ApplyConfirmation(secondToken, secondConf))
	assert.False(t, p.flow.ApplyConfirmation(firstToken, firstConf))

	conf, ok := p.flow.Confirmation()
	require.True(t, ok)
	assert.Equal(t, 200.0, conf.Total)
}

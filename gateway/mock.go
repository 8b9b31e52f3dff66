package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// AggregatorMock is a scripted stand-in for the aggregator client. Calls are
// recorded so tests can assert that local validation failures never reach the
// network.
type AggregatorMock struct {
	mu sync.Mutex

	SearchFunc         func(ctx context.Context, req SearchRequest) (SearchResult, error)
	FareQuoteFunc      func(ctx context.Context, traceID, offerID string) (FareQuote, error)
	FareRuleFunc       func(ctx context.Context, traceID, offerID string) (string, error)
	BookFunc           func(ctx context.Context, req BookRequest) (BookResult, error)
	TicketGDSFunc      func(ctx context.Context, req GDSTicketRequest) (TicketResponse, error)
	TicketLCCFunc      func(ctx context.Context, req LCCTicketRequest) (TicketResponse, error)
	BookingDetailsFunc func(ctx context.Context, bookingID string) (json.RawMessage, error)

	SearchCalls         []SearchRequest
	FareQuoteCalls      []string
	FareRuleCalls       []string
	BookCalls           []BookRequest
	TicketGDSCalls      []GDSTicketRequest
	TicketLCCCalls      []LCCTicketRequest
	BookingDetailsCalls []string
}

func NewAggregatorMock() *AggregatorMock {
	return &AggregatorMock{}
}

func (m *AggregatorMock) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, req)
	m.mu.Unlock()
	if m.SearchFunc == nil {
		return SearchResult{}, errors.New("Search not scripted")
	}
	return m.SearchFunc(ctx, req)
}

func (m *AggregatorMock) FareQuote(ctx context.Context, traceID, offerID string) (FareQuote, error) {
	m.mu.Lock()
	m.FareQuoteCalls = append(m.FareQuoteCalls, offerID)
	m.mu.Unlock()
	if m.FareQuoteFunc == nil {
		return FareQuote{}, errors.New("FareQuote not scripted")
	}
	return m.FareQuoteFunc(ctx, traceID, offerID)
}

func (m *AggregatorMock) FareRule(ctx context.Context, traceID, offerID string) (string, error) {
	m.mu.Lock()
	m.FareRuleCalls = append(m.FareRuleCalls, offerID)
	m.mu.Unlock()
	if m.FareRuleFunc == nil {
		return "", errors.New("FareRule not scripted")
	}
	return m.FareRuleFunc(ctx, traceID, offerID)
}

func (m *AggregatorMock) Book(ctx context.Context, req BookRequest) (BookResult, error) {
	m.mu.Lock()
	m.BookCalls = append(m.BookCalls, req)
	m.mu.Unlock()
	if m.BookFunc == nil {
		return BookResult{}, errors.New("Book not scripted")
	}
	return m.BookFunc(ctx, req)
}

func (m *AggregatorMock) TicketGDS(ctx context.Context, req GDSTicketRequest) (TicketResponse, error) {
	m.mu.Lock()
	m.TicketGDSCalls = append(m.TicketGDSCalls, req)
	m.mu.Unlock()
	if m.TicketGDSFunc == nil {
		return TicketResponse{}, errors.New("TicketGDS not scripted")
	}
	return m.TicketGDSFunc(ctx, req)
}

func (m *AggregatorMock) TicketLCC(ctx context.Context, req LCCTicketRequest) (TicketResponse, error) {
	m.mu.Lock()
	m.TicketLCCCalls = append(m.TicketLCCCalls, req)
	m.mu.Unlock()
	if m.TicketLCCFunc == nil {
		return TicketResponse{}, errors.New("TicketLCC not scripted")
	}
	return m.TicketLCCFunc(ctx, req)
}

func (m *AggregatorMock) BookingDetails(ctx context.Context, bookingID string) (json.RawMessage, error) {
	m.mu.Lock()
	m.BookingDetailsCalls = append(m.BookingDetailsCalls, bookingID)
	m.mu.Unlock()
	if m.BookingDetailsFunc == nil {
		return nil, errors.New("BookingDetails not scripted")
	}
	return m.BookingDetailsFunc(ctx, bookingID)
}

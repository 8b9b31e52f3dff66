package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type BookingMade struct {
	Header         EventHeader    `json:"header"`
	BookingID      string         `json:"booking_id"`
	RecordLocator  string         `json:"record_locator,omitempty"`
	TraceID        string         `json:"trace_id"`
	OfferID        string         `json:"offer_id"`
	SupplierFamily SupplierFamily `json:"supplier_family"`
}

type TicketIssued struct {
	Header     EventHeader    `json:"header"`
	BookingID  string         `json:"booking_id,omitempty"`
	TraceID    string         `json:"trace_id"`
	OfferID    string         `json:"offer_id"`
	FamilyUsed SupplierFamily `json:"family_used"`
}

type TicketIssueFailed struct {
	Header     EventHeader    `json:"header"`
	BookingID  string         `json:"booking_id,omitempty"`
	TraceID    string         `json:"trace_id"`
	OfferID    string         `json:"offer_id"`
	FamilyUsed SupplierFamily `json:"family_used"`
	Reason     string         `json:"reason"`
}

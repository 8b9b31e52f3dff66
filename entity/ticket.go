package entity

import (
	"encoding/json"
	"time"
)

// TicketResult records the outcome of one ticket issuance attempt.
// FamilyUsed is the supplier-family path actually taken, which may differ
// from the confirmation's flag when an operator forced the other path.
// ReservationStatus is the persisted status after the attempt; it is empty
// when the attempt ran without a stored reservation.
type TicketResult struct {
	Success           bool            `json:"success"`
	FamilyUsed        SupplierFamily  `json:"family_used"`
	ReservationStatus TicketStatus    `json:"reservation_status,omitempty"`
	RawResponse       json.RawMessage `json:"raw_response,omitempty"`
}

// RecoveryRecord is the single-slot side channel written on every offer
// selection. It is never a source of truth for pricing.
type RecoveryRecord struct {
	Offer   FlightOffer `json:"offer"`
	TraceID string      `json:"trace_id"`
	SavedAt time.Time   `json:"saved_at"`
}

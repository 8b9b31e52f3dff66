package entity

import "time"

type TicketStatus string

const (
	StatusBooked        TicketStatus = "Booked"
	StatusTicketPending TicketStatus = "TicketPending"
	StatusTicketed      TicketStatus = "Ticketed"
	StatusTicketFailed  TicketStatus = "TicketFailed"
)

// Reservation is created exactly once per successful booking call. Ticketing
// may be retried against the same reservation until it reaches Ticketed.
type Reservation struct {
	BookingID      string         `json:"booking_id" db:"booking_id"`
	RecordLocator  string         `json:"record_locator,omitempty" db:"record_locator"`
	SupplierFamily SupplierFamily `json:"supplier_family" db:"supplier_family"`
	TraceID        string         `json:"trace_id" db:"trace_id"`
	OfferID        string         `json:"offer_id" db:"offer_id"`
	Status         TicketStatus   `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// BeginTicketing moves the reservation into TicketPending. There is no
// automatic transition out of TicketFailed; callers re-invoke explicitly.
// A reservation that is already Ticketed refuses the transition, so an
// accidental double submission cannot double-ticket.
func (r *Reservation) BeginTicketing() error {
	switch r.Status {
	case StatusBooked, StatusTicketFailed:
		r.Status = StatusTicketPending
		return nil
	case StatusTicketPending:
		return ErrTicketingInProgress
	case StatusTicketed:
		return ErrAlreadyTicketed
	default:
		return ErrNotFound
	}
}

func (r *Reservation) MarkTicketed() {
	r.Status = StatusTicketed
}

func (r *Reservation) MarkTicketFailed() {
	r.Status = StatusTicketFailed
}

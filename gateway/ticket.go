package gateway

import (
	"context"
	"encoding/json"
)

// GDSTicketRequest ticketing needs only the reservation identity.
type GDSTicketRequest struct {
	BookingID     string `json:"bookingId"`
	RecordLocator string `json:"pnr,omitempty"`
	TraceID       string `json:"traceId"`
}

type AncillaryWire struct {
	Code         string  `json:"code"`
	Description  string  `json:"description,omitempty"`
	WeightKg     int     `json:"weightKg,omitempty"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	AirlineCode  string  `json:"airlineCode"`
	FlightNumber string  `json:"flightNumber"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
}

type LCCPassengerWire struct {
	Title     string  `json:"title"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Type      string  `json:"type"`
	BaseFare  float64 `json:"baseFare"`
	Tax       float64 `json:"tax"`

	Baggage []AncillaryWire `json:"baggage"`
	Meals   []AncillaryWire `json:"mealDynamic"`
	Seats   []AncillaryWire `json:"seatDynamic"`
}

// LCCTicketRequest carries full passenger, fare and ancillary data instead of
// a reservation identifier.
type LCCTicketRequest struct {
	TraceID        string             `json:"traceId"`
	OfferID        string             `json:"offerId"`
	AgentReference string             `json:"agentReference"`
	Passengers     []LCCPassengerWire `json:"passengers"`
}

type TicketResponse struct {
	Raw json.RawMessage
}

func (c *Client) TicketGDS(ctx context.Context, req GDSTicketRequest) (TicketResponse, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/ticket", c.budgets.Ticket, req, &raw); err != nil {
		return TicketResponse{}, err
	}
	return TicketResponse{Raw: raw}, nil
}

func (c *Client) TicketLCC(ctx context.Context, req LCCTicketRequest) (TicketResponse, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/ticket", c.budgets.Ticket, req, &raw); err != nil {
		return TicketResponse{}, err
	}
	return TicketResponse{Raw: raw}, nil
}

// BookingDetails returns the raw reservation/ticket status snapshot, used for
// confirmation display and diagnostics only.
func (c *Client) BookingDetails(ctx context.Context, bookingID string) (json.RawMessage, error) {
	var raw json.RawMessage
	body := struct {
		BookingID string `json:"bookingId"`
	}{bookingID}
	if err := c.post(ctx, "/booking-details", c.budgets.BookingDetails, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flights/entity"
)

type bookPassengerWire struct {
	Title       string `json:"title"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Type        string `json:"type"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Line1       string `json:"addressLine1"`
	Line2       string `json:"addressLine2,omitempty"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
	PassportNo  string `json:"passportNo,omitempty"`
}

type BookRequest struct {
	TraceID    string
	OfferID    string
	Contact    entity.Contact
	Address    entity.Address
	Passengers []entity.Passenger
}

type BookResult struct {
	BookingID     string
	RecordLocator string
}

type bookPayload struct {
	BookingID     string `json:"bookingId"`
	RecordLocator string `json:"pnr"`
}

func (c *Client) Book(ctx context.Context, req BookRequest) (BookResult, error) {
	passengers := make([]bookPassengerWire, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		passengers = append(passengers, bookPassengerWire{
			Title:       p.Title,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Type:        string(p.Type),
			DateOfBirth: p.DateOfBirth.Format(time.DateOnly),
			Gender:      p.Gender,
			Email:       req.Contact.Email,
			Phone:       req.Contact.Phone,
			Line1:       req.Address.Line1,
			Line2:       req.Address.Line2,
			City:        req.Address.City,
			PostalCode:  req.Address.PostalCode,
			CountryCode: req.Address.CountryCode,
			PassportNo:  p.PassportNo,
		})
	}

	body := struct {
		TraceID    string              `json:"traceId"`
		OfferID    string              `json:"offerId"`
		Passengers []bookPassengerWire `json:"passengers"`
	}{req.TraceID, req.OfferID, passengers}

	var raw json.RawMessage
	if err := c.post(ctx, "/book", c.budgets.Book, body, &raw); err != nil {
		return BookResult{}, err
	}

	payload, err := unwrapBooking(raw)
	if err != nil {
		return BookResult{}, err
	}
	return BookResult{BookingID: payload.BookingID, RecordLocator: payload.RecordLocator}, nil
}

// unwrapBooking tolerates the supplier wrapping the reservation payload at
// either of two nesting depths.
func unwrapBooking(raw json.RawMessage) (bookPayload, error) {
	var nested struct {
		Response *bookPayload `json:"response"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Response != nil && nested.Response.BookingID != "" {
		return *nested.Response, nil
	}

	var flat bookPayload
	if err := json.Unmarshal(raw, &flat); err != nil {
		return bookPayload{}, fmt.Errorf("could not decode booking payload: %w", err)
	}
	if flat.BookingID == "" {
		return bookPayload{}, fmt.Errorf("booking payload carried no booking id")
	}
	return flat, nil
}

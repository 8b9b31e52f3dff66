package gateway

import (
	"context"
)

type offerRef struct {
	TraceID string `json:"traceId"`
	OfferID string `json:"offerId"`
}

type SegmentWire struct {
	AirlineCode  string `json:"airlineCode"`
	FlightNumber string `json:"flightNumber"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
}

type PassengerFareWire struct {
	PassengerType string  `json:"passengerType"`
	BaseFare      float64 `json:"baseFare"`
	Tax           float64 `json:"tax"`
}

// FareQuote is the binding price confirmation for one offer.
type FareQuote struct {
	BaseFare       float64             `json:"baseFare"`
	Tax            float64             `json:"tax"`
	OtherCharges   float64             `json:"otherCharges"`
	Discount       float64             `json:"discount"`
	PublishedFare  float64             `json:"publishedFare"`
	Currency       string              `json:"currency"`
	Refundable     bool                `json:"refundable"`
	IsLCC          bool                `json:"isLCC"`
	Segments       []SegmentWire       `json:"segments"`
	PassengerFares []PassengerFareWire `json:"passengerFares,omitempty"`
}

func (c *Client) FareQuote(ctx context.Context, traceID, offerID string) (FareQuote, error) {
	var quote FareQuote
	err := c.post(ctx, "/fare-quote", c.budgets.FareQuote, offerRef{TraceID: traceID, OfferID: offerID}, &quote)
	if err != nil {
		return FareQuote{}, err
	}
	return quote, nil
}

// FareRule fetches the descriptive rule text. Legitimately slow or absent;
// callers treat failures as non-fatal.
func (c *Client) FareRule(ctx context.Context, traceID, offerID string) (string, error) {
	var payload struct {
		RuleText string `json:"ruleText"`
	}
	err := c.post(ctx, "/fare-rule", c.budgets.FareRule, offerRef{TraceID: traceID, OfferID: offerID}, &payload)
	if err != nil {
		return "", err
	}
	return payload.RuleText, nil
}

package entity

import "time"

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinPremium  CabinClass = "premium"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// CabinFromCode maps the aggregator's numeric cabin codes. Unknown codes are
// treated as economy.
func CabinFromCode(code int) CabinClass {
	switch code {
	case 3:
		return CabinPremium
	case 4:
		return CabinBusiness
	case 6:
		return CabinFirst
	default:
		return CabinEconomy
	}
}

// UnparsableTime is rendered when a supplier timestamp cannot be parsed.
const UnparsableTime = "--:--"

// FlightOffer is one normalized supplier offer. OfferID is stable only within
// the search batch (TraceID) it came from.
type FlightOffer struct {
	OfferID         string     `json:"offer_id"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	DepartureTime   string     `json:"departure_time"`
	ArrivalTime     string     `json:"arrival_time"`
	DepartureAt     time.Time  `json:"departure_at"`
	ArrivalAt       time.Time  `json:"arrival_at"`
	DurationMinutes int        `json:"duration_minutes"`
	StopCount       int        `json:"stop_count"`
	AirlineCode     string     `json:"airline_code"`
	AirlineName     string     `json:"airline_name"`
	FlightNumber    string     `json:"flight_number"`
	Cabin           CabinClass `json:"cabin"`
	Price           float64    `json:"price"`
	Currency        string     `json:"currency"`
}

// SearchBatch is the immutable result of one search call. Filtering and
// sorting operate on copies, never on Offers itself.
type SearchBatch struct {
	TraceID   string        `json:"trace_id"`
	Offers    []FlightOffer `json:"offers"`
	CreatedAt time.Time     `json:"created_at"`
}

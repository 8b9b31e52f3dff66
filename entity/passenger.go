package entity

import "time"

type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Address struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

// AncillaryElection is one baggage/meal/seat choice for one leg. Zero-value
// elections (empty Code, zero Price) are the "nothing selected" placeholders
// the LCC ticketing request requires for every leg.
type AncillaryElection struct {
	LegIndex     int     `json:"leg_index"`
	Code         string  `json:"code"`
	Description  string  `json:"description,omitempty"`
	WeightKg     int     `json:"weight_kg,omitempty"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	AirlineCode  string  `json:"airline_code"`
	FlightNumber string  `json:"flight_number"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
}

type Passenger struct {
	Title       string        `json:"title"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Type        PassengerType `json:"type"`
	DateOfBirth time.Time     `json:"date_of_birth"`
	Gender      string        `json:"gender"`
	Contact     Contact       `json:"contact"`
	Address     Address       `json:"address"`

	PassportNo     string     `json:"passport_no,omitempty"`
	PassportExpiry *time.Time `json:"passport_expiry,omitempty"`
	FrequentFlyer  string     `json:"frequent_flyer,omitempty"`

	// Per-leg elections, used only by the LCC ticketing shape.
	Baggage []AncillaryElection `json:"baggage,omitempty"`
	Meals   []AncillaryElection `json:"meals,omitempty"`
	Seats   []AncillaryElection `json:"seats,omitempty"`
}

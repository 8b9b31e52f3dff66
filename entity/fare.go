package entity

type SupplierFamily string

const (
	SupplierGDS SupplierFamily = "GDS"
	SupplierLCC SupplierFamily = "LCC"
)

// SegmentRef is the per-leg data kept from fare confirmation. The LCC
// ticketing request derives one set of ancillary placeholders per segment.
type SegmentRef struct {
	AirlineCode  string `json:"airline_code"`
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
}

// PassengerFare is the per-passenger-type fare breakdown, when the supplier
// provides one.
type PassengerFare struct {
	PassengerType PassengerType `json:"passenger_type"`
	BaseFare      float64       `json:"base_fare"`
	Tax           float64       `json:"tax"`
}

// FareConfirmation is the binding quote for one offer, captured at
// confirmation time. SupplierFamily decides the ticketing path later and is
// never re-derived.
type FareConfirmation struct {
	TraceID        string          `json:"trace_id"`
	OfferID        string          `json:"offer_id"`
	BaseFare       float64         `json:"base_fare"`
	Taxes          float64         `json:"taxes"`
	OtherCharges   float64         `json:"other_charges"`
	Discount       float64         `json:"discount"`
	Total          float64         `json:"total"`
	Currency       string          `json:"currency"`
	Refundable     bool            `json:"refundable"`
	SupplierFamily SupplierFamily  `json:"supplier_family"`
	Segments       []SegmentRef    `json:"segments"`
	PassengerFares []PassengerFare `json:"passenger_fares,omitempty"`

	// Rules is best-effort descriptive text. RulesWarning is set when the
	// optional fare-rule call failed; the confirmation is still usable.
	Rules        string `json:"rules,omitempty"`
	RulesWarning string `json:"rules_warning,omitempty"`
}

// BreakdownTotal is the sum of the fare components. Display falls back to the
// supplier-provided Total when the breakdown disagrees.
func (f FareConfirmation) BreakdownTotal() float64 {
	return f.BaseFare + f.Taxes + f.OtherCharges - f.Discount
}

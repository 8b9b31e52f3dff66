package ticketing

import (
	"context"

	"flights/entity"
	"flights/gateway"
)

// Context bundles everything a ticketing attempt may need. The confirmation
// is the one captured at fare-confirmation time; its supplier family is never
// re-derived.
type Context struct {
	TraceID      string
	Reservation  *entity.Reservation
	Confirmation entity.FareConfirmation
	Passengers   []entity.Passenger
}

// RequestBuilder is one supplier-family ticketing strategy. The forced-family
// override simply selects the other implementation; there is no automatic
// fallback between the two.
type RequestBuilder interface {
	Family() entity.SupplierFamily
	Validate(tc Context) error
	Submit(ctx context.Context, agg Aggregator, tc Context) (gateway.TicketResponse, error)
}

func builderFor(family entity.SupplierFamily) RequestBuilder {
	if family == entity.SupplierLCC {
		return lccBuilder{}
	}
	return gdsBuilder{}
}

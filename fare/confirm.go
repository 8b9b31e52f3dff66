package fare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flights/entity"
	"flights/gateway"
	"flights/log"
	"flights/metrics"
)

type Aggregator interface {
	FareQuote(ctx context.Context, traceID, offerID string) (gateway.FareQuote, error)
	FareRule(ctx context.Context, traceID, offerID string) (string, error)
}

// Fetcher runs the two confirmation calls concurrently: the fare quote is
// mandatory, the fare rules are best-effort. Once the quote resolves, Confirm
// waits at most rulesGrace for the rules before returning; the quote is never
// held hostage by a slow rules call beyond that bound. A confirmation that
// returns without rules carries a warning, and RefetchRules is the manual
// retry.
type Fetcher struct {
	agg        Aggregator
	rulesGrace time.Duration
}

func NewFetcher(agg Aggregator, rulesGrace time.Duration) *Fetcher {
	return &Fetcher{agg: agg, rulesGrace: rulesGrace}
}

func (f *Fetcher) Confirm(ctx context.Context, traceID, offerID string) (entity.FareConfirmation, error) {
	type rulesOutcome struct {
		text string
		err  error
	}
	rulesCh := make(chan rulesOutcome, 1)

	go func() {
		text, err := f.agg.FareRule(ctx, traceID, offerID)
		rulesCh <- rulesOutcome{text: text, err: err}
	}()

	quote, err := f.agg.FareQuote(ctx, traceID, offerID)
	if err != nil {
		return entity.FareConfirmation{}, fmt.Errorf("fare quote failed: %w", err)
	}

	conf := confirmationFromQuote(traceID, offerID, quote)

	select {
	case outcome := <-rulesCh:
		if outcome.err != nil {
			f.recordWarning(ctx, &conf, outcome.err)
		} else {
			conf.Rules = outcome.text
		}
	case <-time.After(f.rulesGrace):
		f.recordWarning(ctx, &conf, errors.New("fare rules still pending"))
	case <-ctx.Done():
		f.recordWarning(ctx, &conf, ctx.Err())
	}

	return conf, nil
}

// RefetchRules retries only the optional rules call.
func (f *Fetcher) RefetchRules(ctx context.Context, traceID, offerID string) (string, error) {
	return f.agg.FareRule(ctx, traceID, offerID)
}

func (f *Fetcher) recordWarning(ctx context.Context, conf *entity.FareConfirmation, err error) {
	warn := &entity.PartialFailure{Err: err}
	conf.RulesWarning = warn.Error()
	metrics.ConfirmationsPartial.Inc()
	log.FromContext(ctx).
		WithField("trace_id", conf.TraceID).
		WithField("offer_id", conf.OfferID).
		WithError(err).
		Warn("Confirmation succeeded without fare rules")
}

func confirmationFromQuote(traceID, offerID string, quote gateway.FareQuote) entity.FareConfirmation {
	family := entity.SupplierGDS
	if quote.IsLCC {
		family = entity.SupplierLCC
	}

	segments := make([]entity.SegmentRef, 0, len(quote.Segments))
	for _, s := range quote.Segments {
		segments = append(segments, entity.SegmentRef{
			AirlineCode:  s.AirlineCode,
			FlightNumber: s.FlightNumber,
			Origin:       s.Origin,
			Destination:  s.Destination,
		})
	}

	var passengerFares []entity.PassengerFare
	for _, pf := range quote.PassengerFares {
		passengerFares = append(passengerFares, entity.PassengerFare{
			PassengerType: entity.PassengerType(pf.PassengerType),
			BaseFare:      pf.BaseFare,
			Tax:           pf.Tax,
		})
	}

	return entity.FareConfirmation{
		TraceID:        traceID,
		OfferID:        offerID,
		BaseFare:       quote.BaseFare,
		Taxes:          quote.Tax,
		OtherCharges:   quote.OtherCharges,
		Discount:       quote.Discount,
		Total:          quote.PublishedFare,
		Currency:       quote.Currency,
		Refundable:     quote.Refundable,
		SupplierFamily: family,
		Segments:       segments,
		PassengerFares: passengerFares,
	}
}

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flights/entity"
	"flights/gateway"
	"flights/log"
	"flights/metrics"
)

type Aggregator interface {
	Search(ctx context.Context, req gateway.SearchRequest) (gateway.SearchResult, error)
}

type Criteria struct {
	Origin      string
	Destination string
	DepartDate  time.Time
	Cabin       entity.CabinClass
	Adults      int
	Children    int
	Infants     int
	Sources     []string
}

type Orchestrator struct {
	agg Aggregator
}

func NewOrchestrator(agg Aggregator) *Orchestrator {
	return &Orchestrator{agg: agg}
}

// Search issues exactly one outbound request and maps the raw offer list into
// an immutable batch. Callers must treat "no batch yet" (error) and "empty
// batch" (zero offers) as distinct states.
func (o *Orchestrator) Search(ctx context.Context, criteria Criteria) (entity.SearchBatch, error) {
	result, err := o.agg.Search(ctx, gateway.SearchRequest{
		Origin:      criteria.Origin,
		Destination: criteria.Destination,
		DepartDate:  criteria.DepartDate.Format(time.DateOnly),
		CabinCode:   cabinCode(criteria.Cabin),
		Adults:      criteria.Adults,
		Children:    criteria.Children,
		Infants:     criteria.Infants,
		Sources:     criteria.Sources,
	})
	if err != nil {
		return entity.SearchBatch{}, fmt.Errorf("search failed: %w", err)
	}

	rawOffers, err := extractOffers(result.RawResults)
	if err != nil {
		return entity.SearchBatch{}, err
	}

	offers := make([]entity.FlightOffer, 0, len(rawOffers))
	for i, raw := range rawOffers {
		offers = append(offers, Normalize(raw, i))
	}

	metrics.SearchesTotal.Inc()
	log.FromContext(ctx).WithField("trace_id", result.TraceID).
		WithField("offers", len(offers)).
		Info("Search batch produced")

	return entity.SearchBatch{
		TraceID:   result.TraceID,
		Offers:    offers,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// extractOffers unwraps the possibly double-nested result list: the first
// present, non-empty array wins.
func extractOffers(raw json.RawMessage) ([]map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var nested [][]map[string]any
	if err := json.Unmarshal(raw, &nested); err == nil {
		for _, inner := range nested {
			if len(inner) > 0 {
				return inner, nil
			}
		}
		return nil, nil
	}

	var flat []map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("could not decode search results: %w", err)
	}
	return flat, nil
}

func cabinCode(cabin entity.CabinClass) int {
	switch cabin {
	case entity.CabinPremium:
		return 3
	case entity.CabinBusiness:
		return 4
	case entity.CabinFirst:
		return 6
	default:
		return 2
	}
}

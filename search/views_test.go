package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flights/entity"
)

func sampleBatch() entity.SearchBatch {
	base := time.Date(2026, 9, 14, 6, 0, 0, 0, time.UTC)
	return entity.SearchBatch{
		TraceID: "trace-1",
		Offers: []entity.FlightOffer{
			{OfferID: "a", AirlineCode: "AI", Price: 300, DurationMinutes: 90, StopCount: 0, DepartureAt: base.Add(4 * time.Hour)},
			{OfferID: "b", AirlineCode: "6E", Price: 120, DurationMinutes: 200, StopCount: 1, DepartureAt: base},
			{OfferID: "c", AirlineCode: "AI", Price: 450, DurationMinutes: 60, StopCount: 2, DepartureAt: base.Add(2 * time.Hour)},
			{OfferID: "d", AirlineCode: "UK", Price: 120, DurationMinutes: 150, StopCount: 0, DepartureAt: base.Add(time.Hour)},
		},
	}
}

func offerIDs(offers []entity.FlightOffer) []string {
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.OfferID)
	}
	return ids
}

func TestFilterOffers_Stops(t *testing.T) {
	batch := sampleBatch()

	assert.ElementsMatch(t, []string{"a", "d"}, offerIDs(FilterOffers(batch, Filter{Stops: StopsNone})))
	assert.ElementsMatch(t, []string{"b"}, offerIDs(FilterOffers(batch, Filter{Stops: StopsOne})))
	assert.ElementsMatch(t, []string{"c"}, offerIDs(FilterOffers(batch, Filter{Stops: StopsTwoPlus})))
	assert.Len(t, FilterOffers(batch, Filter{Stops: StopsAny}), 4)
}

func TestFilterOffers_AirlinesAndPrice(t *testing.T) {
	batch := sampleBatch()

	assert.ElementsMatch(t, []string{"a", "c"}, offerIDs(FilterOffers(batch, Filter{Airlines: []string{"AI"}})))
	assert.ElementsMatch(t, []string{"a", "c"}, offerIDs(FilterOffers(batch, Filter{MinPrice: 200})))
	assert.ElementsMatch(t, []string{"b", "d"}, offerIDs(FilterOffers(batch, Filter{MaxPrice: 150})))
	assert.Empty(t, FilterOffers(batch, Filter{Airlines: []string{"LH"}}))
}

func TestFilterOffers_DoesNotMutateBatch(t *testing.T) {
	batch := sampleBatch()

	_ = FilterOffers(batch, Filter{Stops: StopsNone})

	require.Len(t, batch.Offers, 4)
	assert.Equal(t, "a", batch.Offers[0].OfferID)
}

func TestSortOffers(t *testing.T) {
	batch := sampleBatch()

	byPrice := SortOffers(batch.Offers, SortByPrice)
	assert.Equal(t, []string{"b", "d", "a", "c"}, offerIDs(byPrice))

	byDuration := SortOffers(batch.Offers, SortByDuration)
	assert.Equal(t, "c", byDuration[0].OfferID)

	byDeparture := SortOffers(batch.Offers, SortByDeparture)
	assert.Equal(t, "b", byDeparture[0].OfferID)

	// input order is preserved
	assert.Equal(t, []string{"a", "b", "c", "d"}, offerIDs(batch.Offers))
}

func TestSortOffers_StableOnTies(t *testing.T) {
	batch := sampleBatch()

	byPrice := SortOffers(batch.Offers, SortByPrice)

	// b and d share a price; b comes first in the input
	assert.Equal(t, "b", byPrice[0].OfferID)
	assert.Equal(t, "d", byPrice[1].OfferID)
}

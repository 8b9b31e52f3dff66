package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flights/entity"
)

func gdsOffer() map[string]any {
	return map[string]any{
		"resultIndex": "OB42",
		"cabinClass":  float64(4),
		"price":       float64(1250.50),
		"currency":    "USD",
		"segments": []any{
			[]any{
				map[string]any{
					"origin": map[string]any{
						"airport": map[string]any{"airportCode": "DEL"},
					},
					"destination": map[string]any{
						"airport": map[string]any{"airportCode": "BOM"},
					},
					"airline": map[string]any{
						"airlineCode":  "AI",
						"airlineName":  "Air India",
						"flightNumber": "101",
					},
					"departureTime": "2026-09-14T06:30:00",
					"arrivalTime":   "2026-09-14T08:45:00",
					"duration":      float64(135),
				},
				map[string]any{
					"origin":      map[string]any{"airport": map[string]any{"airportCode": "BOM"}},
					"destination": map[string]any{"airport": map[string]any{"airportCode": "GOI"}},
				},
			},
		},
	}
}

func TestNormalize_NestedSegments(t *testing.T) {
	offer := Normalize(gdsOffer(), 0)

	assert.Equal(t, "OB42", offer.OfferID)
	assert.Equal(t, "DEL", offer.Origin)
	assert.Equal(t, "BOM", offer.Destination)
	assert.Equal(t, "AI", offer.AirlineCode)
	assert.Equal(t, "Air India", offer.AirlineName)
	assert.Equal(t, "101", offer.FlightNumber)
	assert.Equal(t, "06:30", offer.DepartureTime)
	assert.Equal(t, "08:45", offer.ArrivalTime)
	assert.Equal(t, 135, offer.DurationMinutes)
	assert.Equal(t, 1, offer.StopCount)
	assert.Equal(t, entity.CabinBusiness, offer.Cabin)
	assert.Equal(t, 1250.50, offer.Price)
	assert.Equal(t, "USD", offer.Currency)
}

func TestNormalize_FlatSegments(t *testing.T) {
	raw := map[string]any{
		"resultId": "lcc-7",
		"segments": []any{
			map[string]any{
				"origin":        "CCU",
				"destination":   "BLR",
				"airlineCode":   "6E",
				"flightNumber":  "6E-204",
				"departureTime": "2026-09-14 21:15",
			},
		},
		"fare": map[string]any{
			"totalFare": "4820",
			"currency":  "INR",
		},
	}

	offer := Normalize(raw, 3)

	assert.Equal(t, "lcc-7", offer.OfferID)
	assert.Equal(t, "CCU", offer.Origin)
	assert.Equal(t, "BLR", offer.Destination)
	assert.Equal(t, "6E", offer.AirlineCode)
	assert.Equal(t, "21:15", offer.DepartureTime)
	assert.Equal(t, 0, offer.StopCount)
	assert.Equal(t, 4820.0, offer.Price)
	assert.Equal(t, "INR", offer.Currency)
}

func TestNormalize_BareSegmentObject(t *testing.T) {
	raw := map[string]any{
		"segments": map[string]any{
			"originCode":      "AMS",
			"destinationCode": "LHR",
			"airlineCode":     "KL",
		},
		"price": float64(110),
	}

	offer := Normalize(raw, 5)

	assert.Equal(t, "5", offer.OfferID)
	assert.Equal(t, "AMS", offer.Origin)
	assert.Equal(t, "LHR", offer.Destination)
	assert.Equal(t, 0, offer.StopCount)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := gdsOffer()

	first := Normalize(raw, 0)
	second := Normalize(raw, 0)

	require.Equal(t, first, second)
}

func TestNormalize_UnparsableTimes(t *testing.T) {
	raw := map[string]any{
		"segments": []any{
			map[string]any{
				"origin":        "JFK",
				"destination":   "SFO",
				"departureTime": "tomorrow morning",
			},
		},
	}

	offer := Normalize(raw, 0)

	assert.Equal(t, entity.UnparsableTime, offer.DepartureTime)
	assert.Equal(t, entity.UnparsableTime, offer.ArrivalTime)
	assert.True(t, offer.DepartureAt.IsZero())
}

func TestNormalize_NoSegments(t *testing.T) {
	offer := Normalize(map[string]any{"price": float64(99)}, 2)

	assert.Equal(t, "2", offer.OfferID)
	assert.Equal(t, entity.UnparsableTime, offer.DepartureTime)
	assert.Equal(t, entity.UnparsableTime, offer.ArrivalTime)
	assert.Equal(t, 0, offer.StopCount)
	assert.Equal(t, 99.0, offer.Price)
}

func TestNormalize_NumericResultIndex(t *testing.T) {
	offer := Normalize(map[string]any{"resultIndex": float64(17)}, 0)

	assert.Equal(t, "17", offer.OfferID)
}

func TestNormalize_StopoverFlag(t *testing.T) {
	offer := Normalize(map[string]any{"isStopover": true}, 0)

	assert.Equal(t, 1, offer.StopCount)
}

func TestToNumber(t *testing.T) {
	assert.Equal(t, 12.5, toNumber(12.5))
	assert.Equal(t, 7.0, toNumber(7))
	assert.Equal(t, 42.0, toNumber(" 42 "))
	assert.Equal(t, 0.0, toNumber("n/a"))
	assert.Equal(t, 0.0, toNumber(nil))
	assert.Equal(t, 0.0, toNumber([]any{1}))
}

func TestCabinFromCode(t *testing.T) {
	assert.Equal(t, entity.CabinPremium, entity.CabinFromCode(3))
	assert.Equal(t, entity.CabinBusiness, entity.CabinFromCode(4))
	assert.Equal(t, entity.CabinFirst, entity.CabinFromCode(6))
	assert.Equal(t, entity.CabinEconomy, entity.CabinFromCode(2))
	assert.Equal(t, entity.CabinEconomy, entity.CabinFromCode(0))
}

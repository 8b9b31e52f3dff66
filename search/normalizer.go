package search

import (
	"strconv"

	"flights/entity"
)

// Normalize converts one raw supplier offer record into a canonical
// FlightOffer. Pure and idempotent; it never fails a record, it degrades
// field by field instead.
func Normalize(raw map[string]any, fallbackIndex int) entity.FlightOffer {
	offer := entity.FlightOffer{
		OfferID:  offerID(raw, fallbackIndex),
		Currency: firstString(raw, []string{"fare", "currency"}, []string{"currency"}),
	}

	leg, hasLeg := firstLeg(raw["segments"])
	if hasLeg {
		offer.Origin = firstString(leg,
			[]string{"origin", "airport", "airportCode"},
			[]string{"origin"},
			[]string{"originCode"},
		)
		offer.Destination = firstString(leg,
			[]string{"destination", "airport", "airportCode"},
			[]string{"destination"},
			[]string{"destinationCode"},
		)
		offer.AirlineCode = firstString(leg,
			[]string{"airline", "airlineCode"},
			[]string{"airlineCode"},
		)
		offer.AirlineName = firstString(leg,
			[]string{"airline", "airlineName"},
			[]string{"airlineName"},
		)
		offer.FlightNumber = firstString(leg,
			[]string{"airline", "flightNumber"},
			[]string{"flightNumber"},
		)

		offer.DepartureTime, offer.DepartureAt = parseClock(leg["departureTime"])
		offer.ArrivalTime, offer.ArrivalAt = parseClock(leg["arrivalTime"])

		if d := toNumber(leg["duration"]); d > 0 {
			offer.DurationMinutes = int(d)
		}
	} else {
		offer.DepartureTime = entity.UnparsableTime
		offer.ArrivalTime = entity.UnparsableTime
	}

	if offer.DurationMinutes == 0 {
		offer.DurationMinutes = int(toNumber(raw["durationMinutes"]))
	}

	offer.StopCount = stopCount(raw)
	offer.Cabin = entity.CabinFromCode(int(toNumber(raw["cabinClass"])))

	offer.Price = toNumber(raw["price"])
	if offer.Price == 0 {
		if fare, ok := raw["fare"].(map[string]any); ok {
			offer.Price = toNumber(fare["totalFare"])
		}
	}

	return offer
}

// offerID resolves the supplier-assigned id, trying the primary field, then
// the secondary, then the caller's index. Never empty.
func offerID(raw map[string]any, fallbackIndex int) string {
	if id := firstString(raw, []string{"resultIndex"}, []string{"resultId"}); id != "" {
		return id
	}
	if n := toNumber(raw["resultIndex"]); n != 0 {
		return strconv.Itoa(int(n))
	}
	return strconv.Itoa(fallbackIndex)
}

// stopCount derives stops from the leg array length when present, else from
// the supplier's stopover flag, else 0.
func stopCount(raw map[string]any) int {
	if count, ok := legCount(raw["segments"]); ok && count > 0 {
		return count - 1
	}
	if hasStopover, ok := raw["isStopover"].(bool); ok && hasStopover {
		return 1
	}
	return 0
}

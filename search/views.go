package search

import (
	"sort"

	"github.com/samber/lo"

	"flights/entity"
)

// Filter and sort views are pure: they derive slices from the batch without
// touching it, so re-applying filter state is always safe.

type StopBucket int

const (
	StopsAny StopBucket = iota
	StopsNone
	StopsOne
	StopsTwoPlus
)

type Filter struct {
	Stops    StopBucket
	Airlines []string
	MinPrice float64
	MaxPrice float64
}

type SortOrder int

const (
	SortByPrice SortOrder = iota
	SortByDuration
	SortByDeparture
)

func FilterOffers(batch entity.SearchBatch, filter Filter) []entity.FlightOffer {
	return lo.Filter(batch.Offers, func(offer entity.FlightOffer, _ int) bool {
		return matchesStops(offer, filter.Stops) &&
			matchesAirlines(offer, filter.Airlines) &&
			matchesPrice(offer, filter.MinPrice, filter.MaxPrice)
	})
}

func SortOffers(offers []entity.FlightOffer, order SortOrder) []entity.FlightOffer {
	sorted := make([]entity.FlightOffer, len(offers))
	copy(sorted, offers)

	sort.SliceStable(sorted, func(i, j int) bool {
		switch order {
		case SortByDuration:
			return sorted[i].DurationMinutes < sorted[j].DurationMinutes
		case SortByDeparture:
			return sorted[i].DepartureAt.Before(sorted[j].DepartureAt)
		default:
			return sorted[i].Price < sorted[j].Price
		}
	})
	return sorted
}

func matchesStops(offer entity.FlightOffer, bucket StopBucket) bool {
	switch bucket {
	case StopsNone:
		return offer.StopCount == 0
	case StopsOne:
		return offer.StopCount == 1
	case StopsTwoPlus:
		return offer.StopCount >= 2
	default:
		return true
	}
}

func matchesAirlines(offer entity.FlightOffer, airlines []string) bool {
	if len(airlines) == 0 {
		return true
	}
	return lo.Contains(airlines, offer.AirlineCode)
}

func matchesPrice(offer entity.FlightOffer, min, max float64) bool {
	if min > 0 && offer.Price < min {
		return false
	}
	if max > 0 && offer.Price > max {
		return false
	}
	return true
}

package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"flights/entity"
	"flights/search"
)

type postSearchRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	DepartDate  string   `json:"depart_date"`
	Cabin       string   `json:"cabin"`
	Adults      int      `json:"adults"`
	Children    int      `json:"children"`
	Infants     int      `json:"infants"`
	Sources     []string `json:"sources,omitempty"`

	Stops    *int     `json:"stops,omitempty"`
	Airlines []string `json:"airlines,omitempty"`
	MinPrice float64  `json:"min_price,omitempty"`
	MaxPrice float64  `json:"max_price,omitempty"`
	SortBy   string   `json:"sort_by,omitempty"`
}

type offerView struct {
	OfferID         string  `json:"offer_id"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Stops           int     `json:"stops"`
	AirlineCode     string  `json:"airline_code"`
	AirlineName     string  `json:"airline_name,omitempty"`
	FlightNumber    string  `json:"flight_number"`
	Cabin           string  `json:"cabin"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
}

type postSearchResponse struct {
	TraceID string      `json:"trace_id"`
	Total   int         `json:"total"`
	Offers  []offerView `json:"offers"`
}

func (s Server) PostSearch(c echo.Context) error {
	var request postSearchRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if request.Origin == "" {
		return &entity.ValidationError{Field: "origin", Reason: "must not be empty"}
	}
	if request.Destination == "" {
		return &entity.ValidationError{Field: "destination", Reason: "must not be empty"}
	}
	departDate, err := time.Parse(time.DateOnly, request.DepartDate)
	if err != nil {
		return &entity.ValidationError{Field: "depart_date", Reason: "expected YYYY-MM-DD"}
	}
	adults := request.Adults
	if adults <= 0 {
		adults = 1
	}

	batch, err := s.searchService.Search(c.Request().Context(), search.Criteria{
		Origin:      request.Origin,
		Destination: request.Destination,
		DepartDate:  departDate,
		Cabin:       entity.CabinClass(request.Cabin),
		Adults:      adults,
		Children:    request.Children,
		Infants:     request.Infants,
		Sources:     request.Sources,
	})
	if err != nil {
		return err
	}

	s.flow.SetBatch(batch)

	offers := search.SortOffers(
		search.FilterOffers(batch, search.Filter{
			Stops:    stopBucket(request.Stops),
			Airlines: request.Airlines,
			MinPrice: request.MinPrice,
			MaxPrice: request.MaxPrice,
		}),
		sortOrder(request.SortBy),
	)

	views := make([]offerView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, viewOfOffer(offer))
	}

	return c.JSON(http.StatusOK, postSearchResponse{
		TraceID: batch.TraceID,
		Total:   len(batch.Offers),
		Offers:  views,
	})
}

type postSelectRequest struct {
	OfferID string `json:"offer_id"`
}

type postSelectResponse struct {
	TraceID string    `json:"trace_id"`
	Offer   offerView `json:"offer"`
}

func (s Server) PostSelect(c echo.Context) error {
	var request postSelectRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.OfferID == "" {
		return &entity.ValidationError{Field: "offer_id", Reason: "must not be empty"}
	}

	batch, ok := s.flow.Batch()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no search batch; run a search first")
	}

	for _, offer := range batch.Offers {
		if offer.OfferID == request.OfferID {
			if err := s.flow.Select(c.Request().Context(), offer, batch.TraceID); err != nil {
				return err
			}
			return c.JSON(http.StatusOK, postSelectResponse{
				TraceID: batch.TraceID,
				Offer:   viewOfOffer(offer),
			})
		}
	}

	return echo.NewHTTPError(http.StatusNotFound, "offer not found in current batch")
}

func viewOfOffer(offer entity.FlightOffer) offerView {
	return offerView{
		OfferID:         offer.OfferID,
		Origin:          offer.Origin,
		Destination:     offer.Destination,
		DepartureTime:   offer.DepartureTime,
		ArrivalTime:     offer.ArrivalTime,
		DurationMinutes: offer.DurationMinutes,
		Stops:           offer.StopCount,
		AirlineCode:     offer.AirlineCode,
		AirlineName:     offer.AirlineName,
		FlightNumber:    offer.FlightNumber,
		Cabin:           string(offer.Cabin),
		Price:           offer.Price,
		Currency:        offer.Currency,
	}
}

func stopBucket(stops *int) search.StopBucket {
	if stops == nil {
		return search.StopsAny
	}
	switch *stops {
	case 0:
		return search.StopsNone
	case 1:
		return search.StopsOne
	default:
		return search.StopsTwoPlus
	}
}

func sortOrder(key string) search.SortOrder {
	switch key {
	case "duration":
		return search.SortByDuration
	case "departure":
		return search.SortByDeparture
	default:
		return search.SortByPrice
	}
}

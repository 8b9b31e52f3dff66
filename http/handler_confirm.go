package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flights/entity"
)

type confirmationView struct {
	TraceID        string                 `json:"trace_id"`
	OfferID        string                 `json:"offer_id"`
	BaseFare       float64                `json:"base_fare"`
	Taxes          float64                `json:"taxes"`
	OtherCharges   float64                `json:"other_charges"`
	Discount       float64                `json:"discount"`
	Total          float64                `json:"total"`
	Currency       string                 `json:"currency"`
	Refundable     bool                   `json:"refundable"`
	SupplierFamily string                 `json:"supplier_family"`
	Segments       []entity.SegmentRef    `json:"segments"`
	PassengerFares []entity.PassengerFare `json:"passenger_fares,omitempty"`
	Rules          string                 `json:"rules,omitempty"`
	RulesWarning   string                 `json:"rules_warning,omitempty"`
	PriceChanged   bool                   `json:"price_changed"`
}

type postConfirmRequest struct {
	OfferID string `json:"offer_id,omitempty"`
}

// PostConfirm runs fare confirmation for the selected offer. The offer may
// come from the live session or, after a restart, from the recovery slot;
// either way the quote fetched here is the binding one.
func (s Server) PostConfirm(c echo.Context) error {
	var request postConfirmRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	traceID, ok := s.flow.TraceID(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no active trace; run a search or select an offer first")
	}

	offer, ok := s.flow.SelectedOffer(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no selected offer")
	}
	offerID := offer.OfferID
	if request.OfferID != "" {
		offerID = request.OfferID
	}

	token := s.flow.Begin()
	conf, err := s.fareService.Confirm(ctx, traceID, offerID)
	if err != nil {
		return err
	}

	if !s.flow.ApplyConfirmation(token, conf) {
		return echo.NewHTTPError(http.StatusConflict, "confirmation superseded by a newer request")
	}

	return c.JSON(http.StatusOK, viewOfConfirmation(conf, offer))
}

type postConfirmRulesResponse struct {
	Rules string `json:"rules"`
}

// PostConfirmRules retries just the optional fare-rule call after a partial
// confirmation. The fare breakdown is left untouched.
func (s Server) PostConfirmRules(c echo.Context) error {
	ctx := c.Request().Context()

	conf, ok := s.flow.Confirmation()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no confirmation to attach rules to")
	}

	rules, err := s.fareService.RefetchRules(ctx, conf.TraceID, conf.OfferID)
	if err != nil {
		return err
	}

	s.flow.AttachRules(rules)

	return c.JSON(http.StatusOK, postConfirmRulesResponse{Rules: rules})
}

func viewOfConfirmation(conf entity.FareConfirmation, offer entity.FlightOffer) confirmationView {
	return confirmationView{
		TraceID:        conf.TraceID,
		OfferID:        conf.OfferID,
		BaseFare:       conf.BaseFare,
		Taxes:          conf.Taxes,
		OtherCharges:   conf.OtherCharges,
		Discount:       conf.Discount,
		Total:          conf.Total,
		Currency:       conf.Currency,
		Refundable:     conf.Refundable,
		SupplierFamily: string(conf.SupplierFamily),
		Segments:       conf.Segments,
		PassengerFares: conf.PassengerFares,
		Rules:          conf.Rules,
		RulesWarning:   conf.RulesWarning,
		PriceChanged:   offer.OfferID == conf.OfferID && offer.Price != 0 && offer.Price != conf.Total,
	}
}

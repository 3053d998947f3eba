package web

import (
	"net/http"

	"github.com/JonMunkholm/groupbuy/internal/logging"
	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/JonMunkholm/groupbuy/internal/web/templates"
)

var (
	shippingOptions []templates.ShippingOption
	paymentOptions  []templates.PaymentOption
)

func init() {
	for _, m := range shop.ShippingMethods {
		shippingOptions = append(shippingOptions, templates.ShippingOption{Key: m.Key(), Label: m.String(), Fee: m.Fee()})
	}
	for _, p := range shop.PaymentMethods {
		paymentOptions = append(paymentOptions, templates.PaymentOption{Key: p.Key(), Label: p.String()})
	}
}

func (s *Server) storefrontParams(w http.ResponseWriter, r *http.Request, form templates.OrderForm) templates.StorefrontParams {
	sf := s.shop.Storefront()
	params := templates.StorefrontParams{
		Layout:      s.newLayout(w, r, sf.Title),
		Products:    s.shop.Products(),
		Shipping:    shippingOptions,
		Payments:    paymentOptions,
		Form:        form,
		BankDetails: s.cfg.Shop.BankDetails,
		LinePayID:   s.cfg.Shop.LinePayID,
	}
	if req, err := orderRequest(form); err == nil {
		params.Quote = s.shop.Quote(req.Lines, req.Shipping)
	}
	return params
}

// handleStorefront renders the order form.
func (s *Server) handleStorefront(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, templates.Storefront(s.storefrontParams(w, r, emptyOrderForm())))
}

// handlePlaceOrder submits the order form. A rejected order re-renders the
// form with the entered values and the reason; an accepted one redirects
// back to an empty form with a confirmation.
func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	form, err := parseOrderForm(w, r)
	if err != nil {
		s.rejectOrder(w, r, emptyOrderForm(), err)
		return
	}

	req, err := orderRequest(form)
	if err != nil {
		s.rejectOrder(w, r, form, err)
		return
	}

	order, err := s.shop.PlaceOrder(req)
	if err != nil {
		s.rejectOrder(w, r, form, err)
		return
	}

	logging.WithFields(r.Context(), "customer", order.CustomerName).Info("order placed",
		"order_id", order.ID,
		"shipping", order.ShippingMethod.Key(),
		"payment", order.PaymentMethod.Key(),
		"total", order.Total,
	)
	s.flashRedirect(w, r, flashSuccess, "Thank you, "+order.CustomerName+"! Your order total is "+templates.Money(order.Total)+".", "/")
}

func (s *Server) rejectOrder(w http.ResponseWriter, r *http.Request, form templates.OrderForm, err error) {
	logger := logging.WithFields(r.Context(), "customer", form.CustomerName)
	if isUserFacing(err) {
		logger.Info("order rejected", "error", err.Error(), "code", userMessage(err).Code)
	} else {
		logger.Error("order failed", "error", err.Error())
	}

	params := s.storefrontParams(w, r, form)
	params.Error = flashText(err)
	s.render(w, r, http.StatusUnprocessableEntity, templates.Storefront(params))
}

// quoteResponse is the live total shown while the customer edits the form.
type quoteResponse struct {
	ProductSubtotal int    `json:"product_subtotal"`
	ShippingFee     int    `json:"shipping_fee"`
	Total           int    `json:"total"`
	Items           string `json:"items"`
}

// handleQuote prices the submitted form without placing an order.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	form, err := parseOrderForm(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	req, err := orderRequest(form)
	if err != nil {
		respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	q := s.shop.Quote(req.Lines, req.Shipping)
	writeJSON(w, http.StatusOK, quoteResponse{
		ProductSubtotal: q.ProductSubtotal,
		ShippingFee:     q.ShippingFee,
		Total:           q.Total,
		Items:           q.ItemSummary(),
	})
}

package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/JonMunkholm/groupbuy/internal/web/templates"
)

const (
	maxFormBytes   = 1 << 20
	qtyFieldPrefix = "qty_"
)

// emptyOrderForm is the form shown to a new customer.
func emptyOrderForm() templates.OrderForm {
	return templates.OrderForm{
		Quantities: map[string]string{},
		Shipping:   shop.StorePickupDelivery.Key(),
		Payment:    shop.LinePay.Key(),
	}
}

// parseOrderForm reads the customer form from r. It never fails on field
// content; see orderRequest for that.
func parseOrderForm(w http.ResponseWriter, r *http.Request) (templates.OrderForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return templates.OrderForm{}, fmt.Errorf("%w: %v", errBadForm, err)
	}

	f := templates.OrderForm{
		CustomerName:     r.PostForm.Get("customer_name"),
		Phone:            r.PostForm.Get("phone"),
		Quantities:       map[string]string{},
		Shipping:         r.PostForm.Get("shipping"),
		StoreName:        r.PostForm.Get("store_name"),
		Address:          r.PostForm.Get("address"),
		Payment:          r.PostForm.Get("payment"),
		PaymentReference: r.PostForm.Get("payment_reference"),
		Note:             r.PostForm.Get("note"),
	}
	for key, values := range r.PostForm {
		if id, ok := strings.CutPrefix(key, qtyFieldPrefix); ok && id != "" && len(values) > 0 {
			f.Quantities[id] = strings.TrimSpace(values[0])
		}
	}
	return f, nil
}

// orderRequest converts the form into an order request. Enum and quantity
// problems are reported here; the order rules themselves are checked by
// the shop.
func orderRequest(f templates.OrderForm) (shop.OrderRequest, error) {
	shipping, err := shop.ParseShippingMethod(f.Shipping)
	if err != nil {
		return shop.OrderRequest{}, err
	}
	payment, err := shop.ParsePaymentMethod(f.Payment)
	if err != nil {
		return shop.OrderRequest{}, err
	}

	lines := make([]shop.CartLine, 0, len(f.Quantities))
	for id, raw := range f.Quantities {
		if raw == "" {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return shop.OrderRequest{}, fmt.Errorf("%w: %q", shop.ErrInvalidQuantity, raw)
		}
		lines = append(lines, shop.CartLine{ProductID: id, Quantity: qty})
	}

	return shop.OrderRequest{
		CustomerName:     f.CustomerName,
		Phone:            f.Phone,
		Lines:            lines,
		Shipping:         shipping,
		StoreName:        f.StoreName,
		Address:          f.Address,
		Payment:          payment,
		PaymentReference: f.PaymentReference,
		Note:             f.Note,
	}, nil
}

// parseIndex reads a non-negative integer form value.
func parseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, shop.ErrProductNotFound
	}
	return n, nil
}

// parsePrice reads a whole, non-negative price.
func parsePrice(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", shop.ErrInvalidPrice, raw)
	}
	return n, nil
}

// isTooLarge reports whether err came from an http.MaxBytesReader limit.
func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

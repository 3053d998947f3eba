package shop

import (
	"fmt"
	"slices"
	"strings"
)

// MaxQuantity bounds the quantity ordered of one product and MaxPrice
// bounds a product price (see the Product.Price tag), which keeps every
// subtotal well inside int.
const (
	MaxQuantity = 9999
	MaxPrice    = 1000000
)

// OrderRequest is a customer's submission before validation.
type OrderRequest struct {
	CustomerName     string
	Phone            string
	Lines            []CartLine
	Shipping         ShippingMethod
	StoreName        string
	Address          string
	Payment          PaymentMethod
	PaymentReference string
	Note             string
}

// QuotedLine is a selected cart line priced against the catalog.
type QuotedLine struct {
	Product  Product
	Quantity int
	Amount   int
}

// Quote is the price breakdown of a cart for one shipping method.
type Quote struct {
	Lines           []QuotedLine
	ProductSubtotal int
	ShippingFee     int
	Total           int
}

// ItemSummary renders the selected lines as "Name xQty, Name xQty".
func (q Quote) ItemSummary() string {
	parts := make([]string, len(q.Lines))
	for i, l := range q.Lines {
		parts[i] = fmt.Sprintf("%s x%d", l.Product.Name, l.Quantity)
	}
	return strings.Join(parts, ", ")
}

// QuoteOrder prices lines against catalog. Lines with a quantity of zero or
// less, and lines whose product is not in the catalog, are not selected.
// Selected lines follow catalog order; repeated lines for one product add up.
func QuoteOrder(catalog []Product, lines []CartLine, method ShippingMethod) Quote {
	qty := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			qty[l.ProductID] += l.Quantity
		}
	}

	var q Quote
	for _, p := range catalog {
		n, ok := qty[p.ID]
		if !ok {
			continue
		}
		amount := n * p.Price
		q.Lines = append(q.Lines, QuotedLine{Product: p, Quantity: n, Amount: amount})
		q.ProductSubtotal += amount
	}
	q.ShippingFee = method.Fee()
	q.Total = q.ProductSubtotal + q.ShippingFee
	return q
}

// checkRequest rejects requests that could not have come from the order form.
func checkRequest(req OrderRequest) error {
	if !req.Shipping.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidShippingMethod, int(req.Shipping))
	}
	if !req.Payment.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPaymentMethod, int(req.Payment))
	}
	perProduct := make(map[string]int, len(req.Lines))
	for _, l := range req.Lines {
		if l.Quantity < 0 || l.Quantity > MaxQuantity {
			return fmt.Errorf("%w: %d for product %s", ErrInvalidQuantity, l.Quantity, l.ProductID)
		}
		perProduct[l.ProductID] += l.Quantity
		if perProduct[l.ProductID] > MaxQuantity {
			return fmt.Errorf("%w: %d in total for product %s", ErrInvalidQuantity, perProduct[l.ProductID], l.ProductID)
		}
	}
	return nil
}

// validateOrder applies the order rules in their fixed order and reports
// the first one that fails.
func validateOrder(req OrderRequest, q Quote) error {
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Phone) == "" {
		return ErrMissingContactInfo
	}
	if q.ProductSubtotal <= 0 {
		return ErrEmptyCart
	}
	if req.Shipping == StorePickupDelivery && strings.TrimSpace(req.StoreName) == "" {
		return ErrMissingStoreInfo
	}
	if req.Shipping == HomeDelivery && strings.TrimSpace(req.Address) == "" {
		return ErrMissingAddress
	}
	return nil
}

// destination picks the address-like field relevant to the shipping method.
func destination(req OrderRequest) string {
	if req.Shipping == StorePickupDelivery {
		return strings.TrimSpace(req.StoreName)
	}
	return strings.TrimSpace(req.Address)
}

// buildOrder checks and prices req against catalog without touching state.
func buildOrder(catalog []Product, req OrderRequest) (Order, error) {
	if err := checkRequest(req); err != nil {
		return Order{}, err
	}
	q := QuoteOrder(catalog, req.Lines, req.Shipping)
	if err := validateOrder(req, q); err != nil {
		return Order{}, err
	}
	return Order{
		CustomerName:       strings.TrimSpace(req.CustomerName),
		Phone:              strings.TrimSpace(req.Phone),
		ItemSummary:        q.ItemSummary(),
		ShippingMethod:     req.Shipping,
		AddressOrStoreInfo: destination(req),
		PaymentMethod:      req.Payment,
		PaymentReference:   strings.TrimSpace(req.PaymentReference),
		Note:               strings.TrimSpace(req.Note),
		ProductSubtotal:    q.ProductSubtotal,
		ShippingFee:        q.ShippingFee,
		Total:              q.Total,
	}, nil
}

// SortByShipping returns a copy of orders ordered by shipping method.
// Orders with the same method keep their relative order.
func SortByShipping(orders []Order) []Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b Order) int {
		return int(a.ShippingMethod) - int(b.ShippingMethod)
	})
	return sorted
}

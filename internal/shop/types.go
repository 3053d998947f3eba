package shop

import (
	"fmt"
	"strings"
	"time"
)

// ShippingMethod is one of the fixed fulfillment options.
// The declared order is also the order used when sorting orders.
type ShippingMethod int

const (
	StorePickupDelivery ShippingMethod = iota + 1
	HomeDelivery
	SelfPickup
)

// Shipping fees per method.
const (
	StorePickupFee  = 60
	HomeDeliveryFee = 80
	SelfPickupFee   = 0
)

// ShippingMethods lists all methods in display and sort order.
var ShippingMethods = []ShippingMethod{StorePickupDelivery, HomeDelivery, SelfPickup}

// Fee returns the shipping fee for the method. Unknown methods cost nothing.
func (m ShippingMethod) Fee() int {
	switch m {
	case StorePickupDelivery:
		return StorePickupFee
	case HomeDelivery:
		return HomeDeliveryFee
	default:
		return SelfPickupFee
	}
}

// Valid reports whether m is one of the declared methods.
func (m ShippingMethod) Valid() bool {
	return m >= StorePickupDelivery && m <= SelfPickup
}

// Key is the stable form value for the method.
func (m ShippingMethod) Key() string {
	switch m {
	case StorePickupDelivery:
		return "store"
	case HomeDelivery:
		return "home"
	case SelfPickup:
		return "pickup"
	default:
		return ""
	}
}

func (m ShippingMethod) String() string {
	switch m {
	case StorePickupDelivery:
		return "Store Pickup Delivery"
	case HomeDelivery:
		return "Home Delivery"
	case SelfPickup:
		return "Self Pickup"
	default:
		return fmt.Sprintf("ShippingMethod(%d)", int(m))
	}
}

// ParseShippingMethod accepts the value returned by Key.
func ParseShippingMethod(s string) (ShippingMethod, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, m := range ShippingMethods {
		if m.Key() == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShippingMethod, s)
}

// PaymentMethod is how the customer pays outside of this system.
type PaymentMethod int

const (
	LinePay PaymentMethod = iota + 1
	BankTransfer
)

// PaymentMethods lists all payment methods in display order.
var PaymentMethods = []PaymentMethod{LinePay, BankTransfer}

// Valid reports whether p is one of the declared methods.
func (p PaymentMethod) Valid() bool {
	return p == LinePay || p == BankTransfer
}

// Key is the stable form value for the method.
func (p PaymentMethod) Key() string {
	switch p {
	case LinePay:
		return "linepay"
	case BankTransfer:
		return "bank"
	default:
		return ""
	}
}

func (p PaymentMethod) String() string {
	switch p {
	case LinePay:
		return "LINE Pay"
	case BankTransfer:
		return "Bank Transfer"
	default:
		return fmt.Sprintf("PaymentMethod(%d)", int(p))
	}
}

// ParsePaymentMethod accepts the value returned by Key.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, p := range PaymentMethods {
		if p.Key() == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

// Image is an uploaded raster image kept in memory and served as-is.
type Image struct {
	ID          string
	ContentType string
	Data        []byte
}

// Storefront is the customer-facing appearance configured by the operator.
type Storefront struct {
	Title           string `validate:"max=200"`
	Description     string `validate:"max=4000"`
	Background      *Image
	TextColor       string `validate:"required,hexcolor"`
	BackgroundColor string `validate:"required,hexcolor"`
}

// Product is one catalog entry. Names are not required to be unique.
type Product struct {
	ID          string
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=4000"`
	Price       int    `validate:"gte=0,lte=1000000"`
	Image       *Image
}

// ProductInput carries the operator's fields for a new product.
type ProductInput struct {
	Name        string
	Description string
	Price       int
	Image       *Image
}

// CartLine ties a catalog product to a requested quantity.
type CartLine struct {
	ProductID string
	Quantity  int
}

// Order is an accepted customer submission. Orders are never modified.
type Order struct {
	ID                 string
	CreatedAt          time.Time
	CustomerName       string
	Phone              string
	ItemSummary        string
	ShippingMethod     ShippingMethod
	AddressOrStoreInfo string
	PaymentMethod      PaymentMethod
	PaymentReference   string
	Note               string
	ProductSubtotal    int
	ShippingFee        int
	Total              int
}

// ShippingCount is the number of orders using one shipping method.
type ShippingCount struct {
	Method ShippingMethod
	Count  int
}

// OrderStats summarizes the order list for the admin dashboard.
type OrderStats struct {
	Count      int
	Revenue    int
	ByShipping []ShippingCount
}

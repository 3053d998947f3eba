package shop

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Options configures a new Shop.
type Options struct {
	Storefront Storefront
	Verifier   Verifier
	Catalog    []ProductInput

	// Now overrides the order timestamp clock (tests).
	Now func() time.Time
}

// Shop is the in-memory state of one storefront.
type Shop struct {
	validate *validator.Validate
	now      func() time.Time

	mu         sync.RWMutex
	storefront Storefront
	products   []Product
	orders     []Order
	media      map[string]*Image
	verifier   Verifier
}

// New creates a Shop from opts. The storefront and every seeded product are
// validated the same way operator edits are.
func New(opts Options) (*Shop, error) {
	if opts.Verifier == nil {
		return nil, errors.New("shop: admin verifier is required")
	}

	s := &Shop{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      opts.Now,
		media:    make(map[string]*Image),
		verifier: opts.Verifier,
	}
	if s.now == nil {
		s.now = time.Now
	}

	if err := s.UpdateStorefront(opts.Storefront); err != nil {
		return nil, fmt.Errorf("initial storefront: %w", err)
	}
	for _, in := range opts.Catalog {
		if _, err := s.AddProduct(in); err != nil {
			return nil, fmt.Errorf("seed product %q: %w", in.Name, err)
		}
	}
	return s, nil
}

// fieldError maps a validator failure on a struct field to a shop error.
func fieldError(err error, byField map[string]error, fallback error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("%w: %v", fallback, err)
	}
	fe := ve[0]
	if sentinel, ok := byField[fe.StructField()]; ok {
		return fmt.Errorf("%w: %s failed %q", sentinel, fe.StructField(), fe.Tag())
	}
	return fmt.Errorf("%w: %s failed %q", fallback, fe.StructField(), fe.Tag())
}

var storefrontFields = map[string]error{
	"TextColor":       ErrInvalidColor,
	"BackgroundColor": ErrInvalidColor,
}

var productFields = map[string]error{
	"Name":  ErrMissingProductName,
	"Price": ErrInvalidPrice,
}

// Storefront returns the current appearance settings.
func (s *Shop) Storefront() Storefront {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storefront
}

// UpdateStorefront replaces the appearance settings. A nil Background keeps
// no background image; the previous image, if any, is released.
func (s *Shop) UpdateStorefront(sf Storefront) error {
	sf.Title = strings.TrimSpace(sf.Title)
	sf.Description = strings.TrimSpace(sf.Description)
	sf.TextColor = strings.TrimSpace(sf.TextColor)
	sf.BackgroundColor = strings.TrimSpace(sf.BackgroundColor)

	if err := s.validate.Struct(sf); err != nil {
		return fieldError(err, storefrontFields, ErrInvalidStorefront)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old := s.storefront.Background; old != nil && (sf.Background == nil || sf.Background.ID != old.ID) {
		delete(s.media, old.ID)
	}
	if sf.Background != nil {
		s.media[sf.Background.ID] = sf.Background
	}
	s.storefront = sf
	return nil
}

// Products returns a copy of the catalog in display order.
func (s *Shop) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// AddProduct appends a product to the end of the catalog.
func (s *Shop) AddProduct(in ProductInput) (Product, error) {
	p := Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Image:       in.Image,
	}
	if err := s.validate.Struct(p); err != nil {
		return Product{}, fieldError(err, productFields, ErrInvalidProduct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Image != nil {
		s.media[p.Image.ID] = p.Image
	}
	s.products = append(s.products, p)
	return p, nil
}

// RemoveProductAt deletes the product at index. When expectedID is not
// empty it must match the product at that index, so a removal issued from
// an outdated page cannot hit a different product.
func (s *Shop) RemoveProductAt(index int, expectedID string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.products) {
		return Product{}, fmt.Errorf("%w: position %d", ErrProductNotFound, index)
	}
	p := s.products[index]
	if expectedID != "" && p.ID != expectedID {
		return Product{}, fmt.Errorf("%w: position %d holds %s, not %s", ErrStaleCatalog, index, p.ID, expectedID)
	}

	s.products = slices.Delete(s.products, index, index+1)
	if p.Image != nil {
		delete(s.media, p.Image.ID)
	}
	return p, nil
}

// Image returns a stored image by ID.
func (s *Shop) Image(id string) (*Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.media[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMediaNotFound, id)
	}
	return img, nil
}

// Quote prices lines against the current catalog without placing an order.
func (s *Shop) Quote(lines []CartLine, method ShippingMethod) Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return QuoteOrder(s.products, lines, method)
}

// PlaceOrder validates req against the current catalog and appends the
// resulting order. Nothing is stored when validation fails.
func (s *Shop) PlaceOrder(req OrderRequest) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := buildOrder(s.products, req)
	if err != nil {
		return Order{}, err
	}
	order.ID = uuid.New().String()
	order.CreatedAt = s.now()
	s.orders = append(s.orders, order)
	return order, nil
}

// Orders returns a copy of all orders in submission order.
func (s *Shop) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

// OrdersByShipping returns all orders sorted by shipping method, keeping
// submission order within a method.
func (s *Shop) OrdersByShipping() []Order {
	return SortByShipping(s.Orders())
}

// Stats summarizes the current order list.
func (s *Shop) Stats() OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[ShippingMethod]int, len(ShippingMethods))
	stats := OrderStats{Count: len(s.orders)}
	for _, o := range s.orders {
		stats.Revenue += o.Total
		counts[o.ShippingMethod]++
	}
	for _, m := range ShippingMethods {
		stats.ByShipping = append(stats.ByShipping, ShippingCount{Method: m, Count: counts[m]})
	}
	return stats
}

// Authenticate checks an admin secret.
func (s *Shop) Authenticate(secret string) error {
	s.mu.RLock()
	v := s.verifier
	s.mu.RUnlock()

	if !v.Verify(secret) {
		return ErrAuthenticationFailed
	}
	return nil
}

// ChangePassword replaces the admin secret. Any non-empty secret is
// accepted; confirm must repeat it exactly.
func (s *Shop) ChangePassword(secret, confirm string) error {
	if secret == "" {
		return ErrEmptyPassword
	}
	if secret != confirm {
		return ErrPasswordMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var next Verifier = NewPlaintextVerifier(secret)
	if rk, ok := s.verifier.(Rekeyer); ok {
		v, err := rk.Rekey(secret)
		if err != nil {
			return fmt.Errorf("change password: %w", err)
		}
		next = v
	}
	s.verifier = next
	return nil
}

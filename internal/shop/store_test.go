package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func defaultStorefront() Storefront {
	return Storefront{
		Title:           "Group Buy Helper",
		TextColor:       "#1f2933",
		BackgroundColor: "#ffffff",
	}
}

func newTestShop(t *testing.T, catalog ...ProductInput) *Shop {
	t.Helper()
	s, err := New(Options{
		Storefront: defaultStorefront(),
		Verifier:   NewPlaintextVerifier("secret"),
		Catalog:    catalog,
		Now:        func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s
}

func TestNew_RequiresVerifier(t *testing.T) {
	_, err := New(Options{Storefront: defaultStorefront()})
	assert.Error(t, err)
}

func TestNew_RejectsInvalidSeed(t *testing.T) {
	_, err := New(Options{
		Storefront: defaultStorefront(),
		Verifier:   NewPlaintextVerifier("x"),
		Catalog:    []ProductInput{{Name: "", Price: 10}},
	})
	assert.ErrorIs(t, err, ErrMissingProductName)
}

func TestPlaceOrder_ExampleScenario(t *testing.T) {
	s := newTestShop(t, ProductInput{Name: "Item1", Price: 100})
	item := s.Products()[0]

	order, err := s.PlaceOrder(OrderRequest{
		CustomerName: "Mei",
		Phone:        "0912345678",
		Lines:        []CartLine{{ProductID: item.ID, Quantity: 2}},
		Shipping:     SelfPickup,
		Payment:      LinePay,
	})
	require.NoError(t, err)

	assert.Equal(t, 200, order.ProductSubtotal)
	assert.Equal(t, 0, order.ShippingFee)
	assert.Equal(t, 200, order.Total)
	assert.Equal(t, "Item1 x2", order.ItemSummary)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), order.CreatedAt)

	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order, orders[0])
}

func TestPlaceOrder_RejectedOrdersAreNotStored(t *testing.T) {
	s := newTestShop(t, ProductInput{Name: "Item1", Price: 100})
	item := s.Products()[0]

	rejected := []OrderRequest{
		{Phone: "0912", Lines: []CartLine{{ProductID: item.ID, Quantity: 1}}, Shipping: SelfPickup, Payment: LinePay},
		{CustomerName: "Mei", Lines: []CartLine{{ProductID: item.ID, Quantity: 1}}, Shipping: SelfPickup, Payment: LinePay},
		{CustomerName: "Mei", Phone: "0912", Lines: []CartLine{{ProductID: item.ID, Quantity: 0}}, Shipping: SelfPickup, Payment: LinePay},
		{CustomerName: "Mei", Phone: "0912", Lines: []CartLine{{ProductID: item.ID, Quantity: 1}}, Shipping: StorePickupDelivery, Payment: LinePay},
		{CustomerName: "Mei", Phone: "0912", Lines: []CartLine{{ProductID: item.ID, Quantity: 1}}, Shipping: HomeDelivery, Payment: BankTransfer},
	}
	for _, req := range rejected {
		_, err := s.PlaceOrder(req)
		assert.Error(t, err)
		assert.True(t, IsUserFacing(err))
	}
	assert.Empty(t, s.Orders())
	assert.Equal(t, 0, s.Stats().Count)
}

func TestPlaceOrder_TotalInvariant(t *testing.T) {
	s := newTestShop(t,
		ProductInput{Name: "A", Price: 120},
		ProductInput{Name: "B", Price: 45},
	)
	products := s.Products()

	for i, m := range ShippingMethods {
		_, err := s.PlaceOrder(OrderRequest{
			CustomerName: "Customer",
			Phone:        "1",
			Lines: []CartLine{
				{ProductID: products[0].ID, Quantity: i + 1},
				{ProductID: products[1].ID, Quantity: 2},
			},
			Shipping:  m,
			StoreName: "store",
			Address:   "address",
			Payment:   BankTransfer,
		})
		require.NoError(t, err)
	}

	for _, o := range s.Orders() {
		assert.Equal(t, o.ProductSubtotal+o.ShippingFee, o.Total)
		assert.Equal(t, o.ShippingMethod.Fee(), o.ShippingFee)
	}
}

func TestRemoveProductAt(t *testing.T) {
	s := newTestShop(t,
		ProductInput{Name: "A", Price: 1},
		ProductInput{Name: "B", Price: 2},
		ProductInput{Name: "C", Price: 3},
	)
	before := s.Products()

	removed, err := s.RemoveProductAt(1, before[1].ID)
	require.NoError(t, err)
	assert.Equal(t, before[1], removed)

	after := s.Products()
	require.Len(t, after, 2)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[1])
}

func TestRemoveProductAt_Errors(t *testing.T) {
	s := newTestShop(t, ProductInput{Name: "A", Price: 1}, ProductInput{Name: "B", Price: 2})
	products := s.Products()

	_, err := s.RemoveProductAt(2, "")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = s.RemoveProductAt(-1, "")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = s.RemoveProductAt(0, products[1].ID)
	assert.ErrorIs(t, err, ErrStaleCatalog)
	assert.Len(t, s.Products(), 2)
}

func TestRemoveProductAt_ReleasesImage(t *testing.T) {
	img := &Image{ID: "img-1", ContentType: "image/png", Data: []byte{1}}
	s := newTestShop(t, ProductInput{Name: "A", Price: 1, Image: img})

	got, err := s.Image("img-1")
	require.NoError(t, err)
	assert.Equal(t, img, got)

	_, err = s.RemoveProductAt(0, "")
	require.NoError(t, err)

	_, err = s.Image("img-1")
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestAddProduct_Validation(t *testing.T) {
	s := newTestShop(t)

	_, err := s.AddProduct(ProductInput{Name: "   ", Price: 10})
	assert.ErrorIs(t, err, ErrMissingProductName)

	_, err = s.AddProduct(ProductInput{Name: "Tea", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	p, err := s.AddProduct(ProductInput{Name: " Tea ", Price: 0})
	require.NoError(t, err)
	assert.Equal(t, "Tea", p.Name)

	dup, err := s.AddProduct(ProductInput{Name: "Tea", Price: 5})
	require.NoError(t, err, "duplicate names are allowed")
	assert.NotEqual(t, p.ID, dup.ID)
	assert.Len(t, s.Products(), 2)
}

func TestAddProduct_PriceUpperBound(t *testing.T) {
	s := newTestShop(t)

	_, err := s.AddProduct(ProductInput{Name: "Gold", Price: 1<<62 + 1})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = s.AddProduct(ProductInput{Name: "Gold", Price: MaxPrice + 1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Empty(t, s.Products())

	_, err = s.AddProduct(ProductInput{Name: "Gold", Price: MaxPrice})
	require.NoError(t, err)
}

func TestPlaceOrder_LargestOrderIsExact(t *testing.T) {
	s := newTestShop(t,
		ProductInput{Name: "Gold", Price: MaxPrice},
		ProductInput{Name: "Silver", Price: MaxPrice},
	)
	gold, silver := s.Products()[0], s.Products()[1]

	order, err := s.PlaceOrder(OrderRequest{
		CustomerName: "Alice",
		Phone:        "0912",
		Lines: []CartLine{
			{ProductID: gold.ID, Quantity: MaxQuantity},
			{ProductID: silver.ID, Quantity: MaxQuantity},
		},
		Shipping: HomeDelivery,
		Address:  "1 Main St",
		Payment:  BankTransfer,
	})
	require.NoError(t, err)

	want := 2 * MaxQuantity * MaxPrice
	assert.Equal(t, want, order.ProductSubtotal)
	assert.Equal(t, want+HomeDeliveryFee, order.Total)
	assert.Equal(t, order.ProductSubtotal+order.ShippingFee, order.Total)
}

func TestPlaceOrder_RepeatedLinesShareQuantityLimit(t *testing.T) {
	s := newTestShop(t, ProductInput{Name: "Gold", Price: MaxPrice})
	gold := s.Products()[0]

	_, err := s.PlaceOrder(OrderRequest{
		CustomerName: "Alice",
		Phone:        "0912",
		Lines: []CartLine{
			{ProductID: gold.ID, Quantity: MaxQuantity},
			{ProductID: gold.ID, Quantity: 1},
		},
		Shipping: SelfPickup,
		Payment:  LinePay,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, s.Orders())
}

func TestUpdateStorefront(t *testing.T) {
	s := newTestShop(t)

	bg := &Image{ID: "bg-1", ContentType: "image/jpeg", Data: []byte{1, 2}}
	sf := Storefront{
		Title:           " Spring Group Buy ",
		Description:     "Orders close Friday",
		Background:      bg,
		TextColor:       "#000",
		BackgroundColor: "#fafafa",
	}
	require.NoError(t, s.UpdateStorefront(sf))

	got := s.Storefront()
	assert.Equal(t, "Spring Group Buy", got.Title)
	assert.Equal(t, bg, got.Background)
	_, err := s.Image("bg-1")
	require.NoError(t, err)

	sf.Background = nil
	require.NoError(t, s.UpdateStorefront(sf))
	_, err = s.Image("bg-1")
	assert.ErrorIs(t, err, ErrMediaNotFound)

	sf.TextColor = "blue"
	assert.ErrorIs(t, s.UpdateStorefront(sf), ErrInvalidColor)
	assert.Equal(t, "#000", s.Storefront().TextColor, "failed update must not apply")
}

func TestAuthenticate(t *testing.T) {
	s := newTestShop(t)

	assert.NoError(t, s.Authenticate("secret"))
	assert.ErrorIs(t, s.Authenticate("wrong"), ErrAuthenticationFailed)
	assert.ErrorIs(t, s.Authenticate(""), ErrAuthenticationFailed)
}

func TestChangePassword(t *testing.T) {
	s := newTestShop(t)

	assert.ErrorIs(t, s.ChangePassword("", ""), ErrEmptyPassword)
	assert.ErrorIs(t, s.ChangePassword("new", "other"), ErrPasswordMismatch)
	require.NoError(t, s.Authenticate("secret"), "failed changes keep the old secret")

	require.NoError(t, s.ChangePassword("1", "1"))
	assert.NoError(t, s.Authenticate("1"))
	assert.ErrorIs(t, s.Authenticate("secret"), ErrAuthenticationFailed)
}

func TestChangePassword_KeepsBcrypt(t *testing.T) {
	hash, err := HashSecret("first", bcrypt.MinCost)
	require.NoError(t, err)
	v, err := NewBcryptVerifier(hash)
	require.NoError(t, err)

	s, err := New(Options{Storefront: defaultStorefront(), Verifier: v})
	require.NoError(t, err)

	require.NoError(t, s.Authenticate("first"))
	require.NoError(t, s.ChangePassword("second", "second"))
	assert.NoError(t, s.Authenticate("second"))

	s.mu.RLock()
	_, isBcrypt := s.verifier.(*BcryptVerifier)
	s.mu.RUnlock()
	assert.True(t, isBcrypt)
}

func TestStats(t *testing.T) {
	s := newTestShop(t, ProductInput{Name: "A", Price: 100})
	id := s.Products()[0].ID

	place := func(m ShippingMethod) {
		_, err := s.PlaceOrder(OrderRequest{
			CustomerName: "c", Phone: "p",
			Lines:    []CartLine{{ProductID: id, Quantity: 1}},
			Shipping: m, StoreName: "s", Address: "a", Payment: LinePay,
		})
		require.NoError(t, err)
	}
	place(HomeDelivery)
	place(SelfPickup)
	place(HomeDelivery)

	stats := s.Stats()
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 180+100+180, stats.Revenue)
	assert.Equal(t, []ShippingCount{
		{Method: StorePickupDelivery, Count: 0},
		{Method: HomeDelivery, Count: 2},
		{Method: SelfPickup, Count: 1},
	}, stats.ByShipping)

	sorted := s.OrdersByShipping()
	require.Len(t, sorted, 3)
	assert.Equal(t, HomeDelivery, sorted[0].ShippingMethod)
	assert.Equal(t, SelfPickup, sorted[2].ShippingMethod)
}

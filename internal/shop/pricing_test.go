package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippingMethod_Fee(t *testing.T) {
	tests := []struct {
		method ShippingMethod
		want   int
	}{
		{StorePickupDelivery, 60},
		{HomeDelivery, 80},
		{SelfPickup, 0},
	}

	carts := [][]CartLine{
		nil,
		{{ProductID: "a", Quantity: 1}},
		{{ProductID: "a", Quantity: 50}, {ProductID: "b", Quantity: 3}},
	}
	catalog := []Product{{ID: "a", Name: "A", Price: 100}, {ID: "b", Name: "B", Price: 7}}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.Fee())
			for _, cart := range carts {
				q := QuoteOrder(catalog, cart, tt.method)
				assert.Equal(t, tt.want, q.ShippingFee, "fee must not depend on the cart")
				assert.Equal(t, q.ProductSubtotal+q.ShippingFee, q.Total)
			}
		})
	}
}

func TestParseShippingMethod(t *testing.T) {
	for _, m := range ShippingMethods {
		got, err := ParseShippingMethod(m.Key())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseShippingMethod("drone")
	assert.ErrorIs(t, err, ErrInvalidShippingMethod)
	_, err = ParseShippingMethod("")
	assert.ErrorIs(t, err, ErrInvalidShippingMethod)
}

func TestParsePaymentMethod(t *testing.T) {
	got, err := ParsePaymentMethod(" LinePay ")
	require.NoError(t, err)
	assert.Equal(t, LinePay, got)

	got, err = ParsePaymentMethod("bank")
	require.NoError(t, err)
	assert.Equal(t, BankTransfer, got)

	_, err = ParsePaymentMethod("cash")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestQuoteOrder(t *testing.T) {
	catalog := []Product{
		{ID: "p1", Name: "Item 1", Price: 100},
		{ID: "p2", Name: "Item 2", Price: 200},
		{ID: "p3", Name: "Item 3", Price: 35},
	}

	t.Run("only positive quantities are selected", func(t *testing.T) {
		q := QuoteOrder(catalog, []CartLine{
			{ProductID: "p1", Quantity: 0},
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p3", Quantity: -4},
		}, SelfPickup)

		require.Len(t, q.Lines, 1)
		assert.Equal(t, "p2", q.Lines[0].Product.ID)
		assert.Equal(t, 200, q.ProductSubtotal)
		assert.Equal(t, "Item 2 x1", q.ItemSummary())
	})

	t.Run("lines follow catalog order", func(t *testing.T) {
		q := QuoteOrder(catalog, []CartLine{
			{ProductID: "p3", Quantity: 2},
			{ProductID: "p1", Quantity: 1},
		}, HomeDelivery)

		assert.Equal(t, "Item 1 x1, Item 3 x2", q.ItemSummary())
		assert.Equal(t, 170, q.ProductSubtotal)
		assert.Equal(t, 80, q.ShippingFee)
		assert.Equal(t, 250, q.Total)
	})

	t.Run("unknown products are ignored", func(t *testing.T) {
		q := QuoteOrder(catalog, []CartLine{{ProductID: "gone", Quantity: 3}}, StorePickupDelivery)
		assert.Empty(t, q.Lines)
		assert.Equal(t, 0, q.ProductSubtotal)
		assert.Equal(t, 60, q.Total)
	})

	t.Run("repeated lines add up", func(t *testing.T) {
		q := QuoteOrder(catalog, []CartLine{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		}, SelfPickup)
		assert.Equal(t, "Item 1 x3", q.ItemSummary())
		assert.Equal(t, 300, q.Total)
	})
}

func TestBuildOrder_Rules(t *testing.T) {
	catalog := []Product{{ID: "p1", Name: "Item1", Price: 100}}
	cart := []CartLine{{ProductID: "p1", Quantity: 1}}

	valid := OrderRequest{
		CustomerName: "Mei",
		Phone:        "0912345678",
		Lines:        cart,
		Shipping:     SelfPickup,
		Payment:      BankTransfer,
	}

	tests := []struct {
		name    string
		mutate  func(r *OrderRequest)
		wantErr error
	}{
		{"valid self pickup", func(r *OrderRequest) {}, nil},
		{"missing name", func(r *OrderRequest) { r.CustomerName = "" }, ErrMissingContactInfo},
		{"blank phone", func(r *OrderRequest) { r.Phone = "   " }, ErrMissingContactInfo},
		{"empty cart", func(r *OrderRequest) { r.Lines = []CartLine{{ProductID: "p1"}} }, ErrEmptyCart},
		{"contact checked before cart", func(r *OrderRequest) {
			r.Phone = ""
			r.Lines = nil
		}, ErrMissingContactInfo},
		{"store delivery without store", func(r *OrderRequest) { r.Shipping = StorePickupDelivery }, ErrMissingStoreInfo},
		{"store delivery with store", func(r *OrderRequest) {
			r.Shipping = StorePickupDelivery
			r.StoreName = "7-11 Xinyi"
		}, nil},
		{"cart checked before store", func(r *OrderRequest) {
			r.Shipping = StorePickupDelivery
			r.Lines = nil
		}, ErrEmptyCart},
		{"home delivery without address", func(r *OrderRequest) { r.Shipping = HomeDelivery }, ErrMissingAddress},
		{"home delivery ignores store name", func(r *OrderRequest) {
			r.Shipping = HomeDelivery
			r.StoreName = "7-11"
		}, ErrMissingAddress},
		{"self pickup without address", func(r *OrderRequest) { r.Address = "" }, nil},
		{"unknown shipping", func(r *OrderRequest) { r.Shipping = 0 }, ErrInvalidShippingMethod},
		{"unknown payment", func(r *OrderRequest) { r.Payment = 9 }, ErrInvalidPaymentMethod},
		{"negative quantity", func(r *OrderRequest) {
			r.Lines = []CartLine{{ProductID: "p1", Quantity: -1}}
		}, ErrInvalidQuantity},
		{"quantity too large", func(r *OrderRequest) {
			r.Lines = []CartLine{{ProductID: "p1", Quantity: MaxQuantity + 1}}
		}, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			order, err := buildOrder(catalog, req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.ProductSubtotal+order.ShippingFee, order.Total)
		})
	}
}

func TestBuildOrder_Destination(t *testing.T) {
	catalog := []Product{{ID: "p1", Name: "Item1", Price: 100}}
	base := OrderRequest{
		CustomerName: "  Mei ",
		Phone:        "0912",
		Lines:        []CartLine{{ProductID: "p1", Quantity: 1}},
		StoreName:    " 7-11 Xinyi ",
		Address:      " No. 1, Road ",
		Payment:      LinePay,
	}

	tests := []struct {
		method ShippingMethod
		want   string
	}{
		{StorePickupDelivery, "7-11 Xinyi"},
		{HomeDelivery, "No. 1, Road"},
		{SelfPickup, "No. 1, Road"},
	}
	for _, tt := range tests {
		req := base
		req.Shipping = tt.method
		order, err := buildOrder(catalog, req)
		require.NoError(t, err)
		assert.Equal(t, tt.want, order.AddressOrStoreInfo, tt.method.String())
		assert.Equal(t, "Mei", order.CustomerName)
	}
}

func TestSortByShipping_Stable(t *testing.T) {
	orders := []Order{
		{ID: "1", ShippingMethod: SelfPickup},
		{ID: "2", ShippingMethod: HomeDelivery},
		{ID: "3", ShippingMethod: StorePickupDelivery},
		{ID: "4", ShippingMethod: SelfPickup},
		{ID: "5", ShippingMethod: StorePickupDelivery},
		{ID: "6", ShippingMethod: HomeDelivery},
	}

	sorted := SortByShipping(orders)

	var ids []string
	for _, o := range sorted {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"3", "5", "2", "6", "1", "4"}, ids)
	assert.Equal(t, "1", orders[0].ID, "input must not be reordered")
}

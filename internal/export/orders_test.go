package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleOrders() []shop.Order {
	return []shop.Order{
		{
			ID: "o1", CustomerName: "Mei", Phone: "0912", ItemSummary: "Item 1 x2",
			ShippingMethod: shop.SelfPickup, PaymentMethod: shop.LinePay,
			ProductSubtotal: 200, ShippingFee: 0, Total: 200,
		},
		{
			ID: "o2", CustomerName: "Chen", Phone: "0922", ItemSummary: "Item 2 x1",
			ShippingMethod: shop.HomeDelivery, AddressOrStoreInfo: "No. 1, Road",
			PaymentMethod: shop.BankTransfer, PaymentReference: "12345", Note: "after 6pm",
			ProductSubtotal: 200, ShippingFee: 80, Total: 280,
		},
		{
			ID: "o3", CustomerName: "Lin", Phone: "0933", ItemSummary: "Item 1 x1",
			ShippingMethod: shop.StorePickupDelivery, AddressOrStoreInfo: "7-11 Xinyi",
			PaymentMethod: shop.LinePay,
			ProductSubtotal: 100, ShippingFee: 60, Total: 160,
		},
		{
			ID: "o4", CustomerName: "Wu", Phone: "0944", ItemSummary: "Item 2 x3",
			ShippingMethod: shop.SelfPickup, PaymentMethod: shop.BankTransfer,
			ProductSubtotal: 600, ShippingFee: 0, Total: 600,
		},
	}
}

func TestWriteOrders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, sampleOrders()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{
		"Lin", "0933", "Item 1 x1", "Store Pickup Delivery", "7-11 Xinyi",
		"LINE Pay", "", "", "100", "60", "160",
	}, rows[1])
	assert.Equal(t, "Chen", rows[2][0])
	assert.Equal(t, "after 6pm", rows[2][7])
	assert.Equal(t, "Mei", rows[3][0], "self pickup orders keep submission order")
	assert.Equal(t, "Wu", rows[4][0])

	width, err := f.GetColWidth(SheetName, "K")
	require.NoError(t, err)
	assert.Equal(t, float64(columnWidth), width)
}

func TestWriteOrders_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}

func TestWriteOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, sampleOrders()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "Lin", records[1][0])
	assert.Equal(t, "280", records[2][10])
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "orders_20240309_140507.xlsx", Filename(ts))
	assert.Equal(t, "orders_20240309_140507.csv", CSVFilename(ts))
}

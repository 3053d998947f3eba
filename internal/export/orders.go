// Package export writes the order list as a downloadable spreadsheet.
//
// Orders are always written sorted by shipping method (stable, so orders
// with the same method keep submission order). The xlsx workbook is the
// primary format; a CSV rendition of the same rows is available for tools
// that cannot open xlsx.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	CSVContentType = "text/csv"

	SheetName   = "Orders"
	columnWidth = 24
)

// Columns is the header row, in shop.Order field order.
var Columns = []string{
	"Customer Name",
	"Phone",
	"Items",
	"Shipping Method",
	"Address / Store",
	"Payment Method",
	"Payment Reference",
	"Note",
	"Product Subtotal",
	"Shipping Fee",
	"Total",
}

// Filename returns the download name for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("orders_%s.xlsx", t.Format("20060102_150405"))
}

// CSVFilename is Filename with a .csv extension.
func CSVFilename(t time.Time) string {
	return fmt.Sprintf("orders_%s.csv", t.Format("20060102_150405"))
}

func row(o shop.Order) []any {
	return []any{
		o.CustomerName,
		o.Phone,
		o.ItemSummary,
		o.ShippingMethod.String(),
		o.AddressOrStoreInfo,
		o.PaymentMethod.String(),
		o.PaymentReference,
		o.Note,
		o.ProductSubtotal,
		o.ShippingFee,
		o.Total,
	}
}

// WriteOrders writes orders as a single-sheet xlsx workbook to w.
func WriteOrders(w io.Writer, orders []shop.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	for i, o := range shop.SortByShipping(orders) {
		cells := row(o)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("write order %s: %w", o.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteOrdersCSV writes the same rows as WriteOrders in CSV form.
func WriteOrdersCSV(w io.Writer, orders []shop.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, o := range shop.SortByShipping(orders) {
		record := make([]string, 0, len(Columns))
		for _, v := range row(o) {
			switch v := v.(type) {
			case int:
				record = append(record, strconv.Itoa(v))
			default:
				record = append(record, fmt.Sprint(v))
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write order %s: %w", o.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

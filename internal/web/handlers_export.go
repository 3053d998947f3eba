package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/groupbuy/internal/export"
	"github.com/JonMunkholm/groupbuy/internal/logging"
)

// handleExportOrders downloads all orders, sorted by shipping method.
// ?format=csv selects CSV; the default is an xlsx workbook.
func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.shop.Orders()
	now := time.Now()

	write, contentType, filename := export.WriteOrders, export.ContentType, export.Filename(now)
	if r.URL.Query().Get("format") == "csv" {
		write, contentType, filename = export.WriteOrdersCSV, export.CSVContentType, export.CSVFilename(now)
	}

	var buf bytes.Buffer
	if err := write(&buf, orders); err != nil {
		respondError(w, r, fmt.Errorf("export orders: %w", err), http.StatusInternalServerError)
		return
	}

	logging.FromContext(r.Context()).Info("orders exported",
		"count", len(orders),
		"format", contentType,
		"bytes", buf.Len(),
	)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Debug("export: client went away", "error", err)
	}
}

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/reconcile"
)

// OrderCSV writes one row per payment of the reconciled order, prefixed by a
// header row. Spreadsheet users get the same numbers the page shows.
func OrderCSV(snap reconcile.Snapshot) ([]byte, error) {
	if snap.Quote == nil {
		return nil, fmt.Errorf("export: no quote in snapshot")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"quote_id", "payment_id", "date", "amount", "method", "type", "status", "reference", "notes"})
	quoteID := strconv.FormatInt(snap.Quote.ID, 10)
	for _, p := range snap.Payments {
		w.Write([]string{
			quoteID,
			strconv.FormatInt(p.ID, 10),
			p.PaymentDate,
			p.Amount.String(),
			string(p.PaymentMethod),
			string(p.PaymentType),
			string(p.Status),
			p.TransactionReference,
			p.Notes,
		})
	}
	if snap.Summary != nil {
		w.Write([]string{})
		w.Write([]string{"total", snap.Summary.TotalQuote.String()})
		w.Write([]string{"paid", snap.Summary.TotalPaid.String()})
		w.Write([]string{"remaining", snap.Summary.RemainingAmount.String()})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// QuoteListCSV flattens the paginated quote listing for spreadsheet import.
func QuoteListCSV(entries []models.QuoteListEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"id", "status", "total", "delivery_date", "client", "client_email", "created_by", "created_at"})
	for _, e := range entries {
		w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			string(e.Status),
			e.Total.String(),
			e.DeliveryDate,
			e.Client.Name,
			e.Client.Email,
			e.User.Name,
			e.CreatedAt,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

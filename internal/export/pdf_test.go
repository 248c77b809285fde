package export

import (
	"bytes"
	"testing"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/reconcile"
)

func TestOrderPDF(t *testing.T) {
	snap := orderSnapshot()
	snap.QRInfo = &models.QuoteQRInfo{QuoteID: 12, ClientName: "Comercial Luna"}
	snap.Quote.Services = []models.QuoteServiceLine{{ServiceID: 2, Price: 5000}}

	data, err := OrderPDF(snap)
	if err != nil {
		t.Fatalf("OrderPDF error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
	if len(data) < 1000 {
		t.Errorf("output suspiciously small: %d bytes", len(data))
	}
}

func TestOrderPDFRequiresQuote(t *testing.T) {
	if _, err := OrderPDF(reconcile.Snapshot{}); err == nil {
		t.Fatal("expected an error for an empty snapshot")
	}
}

// Package export renders the printable artifacts for an order: the work-order
// PDF handed to the shop floor and CSV extracts for spreadsheets. Rendering is
// pure; fetching the data is the caller's job.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/Mynor454-s/iccsa-admin/internal/reconcile"
)

// OrderPDF renders the reconciled order snapshot as a printable work order.
func OrderPDF(snap reconcile.Snapshot) ([]byte, error) {
	if snap.Quote == nil {
		return nil, fmt.Errorf("export: no quote in snapshot")
	}
	quote := snap.Quote

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("ICCSA Print Shop - Order #%d", quote.ID), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Order Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Order Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	clientName := fmt.Sprintf("Client #%d", quote.ClientID)
	if snap.QRInfo != nil && snap.QRInfo.ClientName != "" {
		clientName = snap.QRInfo.ClientName
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Client: %s", clientName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", quote.Status), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Delivery Date: %s", quote.DeliveryDate), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Total: %s", quote.TotalAmount), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Line Items
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Line Items", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(50, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Materials", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Line Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range quote.Items {
		lineTotal := item.UnitPrice.Float64() * item.Quantity
		for _, m := range item.Materials {
			lineTotal += m.UnitPrice.Float64() * m.Quantity
		}
		pdf.CellFormat(50, 6, fmt.Sprintf("#%d", item.ProductID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, item.UnitPrice.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", len(item.Materials)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", lineTotal), "1", 1, "R", false, 0, "")
	}
	for _, svc := range quote.Services {
		pdf.CellFormat(50, 6, fmt.Sprintf("Service #%d", svc.ServiceID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "-", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, svc.Price.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, "-", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, svc.Price.String(), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Payment Summary
	if snap.Summary != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Payment Summary", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(63, 7, fmt.Sprintf("Total: %s", snap.Summary.TotalQuote), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(63, 7, fmt.Sprintf("Paid: %s", snap.Summary.TotalPaid), "B", 0, "L", false, 0, "")
		pdf.CellFormat(64, 7, fmt.Sprintf("Remaining: %s", snap.Summary.RemainingAmount), "RB", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	// Payment History
	if len(snap.Payments) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Payment History", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(35, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Method", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Type", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Reference", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, p := range snap.Payments {
			pdf.CellFormat(35, 6, p.PaymentDate, "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, p.Amount.String(), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, string(p.PaymentMethod), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, string(p.PaymentType), "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, p.TransactionReference, "1", 1, "C", false, 0, "")
		}
	}

	// Delivery badge footer
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(190, 8, fmt.Sprintf("Delivery: %s", snap.Badge()), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

// PaymentsClient wraps the /payments endpoints.
type PaymentsClient struct {
	c *Client
}

// ByQuote fetches a quote's payment history plus the server-derived summary.
func (p *PaymentsClient) ByQuote(ctx context.Context, quoteID int64) (*models.QuotePaymentsResponse, error) {
	var resp models.QuotePaymentsResponse
	if err := p.c.do(ctx, "payments", http.MethodGet, fmt.Sprintf("/payments/quote/%d", quoteID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeliveryCheck fetches the server's delivery-eligibility verdict.
func (p *PaymentsClient) DeliveryCheck(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error) {
	var verdict models.DeliveryEligibility
	if err := p.c.do(ctx, "payments", http.MethodGet, fmt.Sprintf("/payments/quote/%d/delivery-check", quoteID), nil, nil, &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

// Create submits a new payment.
func (p *PaymentsClient) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	var resp models.PaymentResponse
	if err := p.c.do(ctx, "payments", http.MethodPost, "/payments", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update edits a payment's mutable fields. The request type only admits
// notes and transactionReference.
func (p *PaymentsClient) Update(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.Payment, error) {
	var resp struct {
		Message string         `json:"message"`
		Payment models.Payment `json:"payment"`
	}
	if err := p.c.do(ctx, "payments", http.MethodPut, fmt.Sprintf("/payments/%d", id), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Payment, nil
}

// Delete removes a payment. The backend forbids this when the owning quote
// is already delivered.
func (p *PaymentsClient) Delete(ctx context.Context, id int64) error {
	return p.c.do(ctx, "payments", http.MethodDelete, fmt.Sprintf("/payments/%d", id), nil, nil, nil)
}

// List fetches the paginated administrative payment listing.
func (p *PaymentsClient) List(ctx context.Context, filters models.PaymentFilters) (*models.PaymentListResponse, error) {
	var resp models.PaymentListResponse
	if err := p.c.do(ctx, "payments", http.MethodGet, "/payments", filters.Query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SummaryReport fetches the aggregate payment report for a date range.
func (p *PaymentsClient) SummaryReport(ctx context.Context, startDate, endDate string) (*models.PaymentSummaryReport, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var report models.PaymentSummaryReport
	if err := p.c.do(ctx, "payments", http.MethodGet, "/payments/summary", q, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

// QuotesClient wraps the /quotes endpoints.
type QuotesClient struct {
	c *Client
}

// Get fetches a single quote. Returns an APIError with status 404 when the
// id has no record.
func (q *QuotesClient) Get(ctx context.Context, id int64) (*models.Quote, error) {
	var quote models.Quote
	if err := q.c.do(ctx, "quotes", http.MethodGet, fmt.Sprintf("/quotes/%d", id), nil, nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// QRInfo fetches the tracking metadata behind a quote's QR code. It may fail
// independently of the quote existing; callers treat failures as "no QR".
func (q *QuotesClient) QRInfo(ctx context.Context, id int64) (*models.QuoteQRInfo, error) {
	var info models.QuoteQRInfo
	if err := q.c.do(ctx, "quotes", http.MethodGet, fmt.Sprintf("/quotes/%d/qr-info", id), nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// List fetches the paginated quote listing.
func (q *QuotesClient) List(ctx context.Context, filters models.QuoteFilters) (*models.QuoteListResponse, error) {
	var resp models.QuoteListResponse
	if err := q.c.do(ctx, "quotes", http.MethodGet, "/quotes", filters.Query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create posts a new quote. The backend computes the total.
func (q *QuotesClient) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	var created models.Quote
	if err := q.c.do(ctx, "quotes", http.MethodPost, "/quotes", nil, quote, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus submits a status transition. The backend validates legality.
func (q *QuotesClient) UpdateStatus(ctx context.Context, id int64, status models.QuoteStatus) error {
	body := models.QuoteStatusUpdate{Status: status}
	return q.c.do(ctx, "quotes", http.MethodPut, fmt.Sprintf("/quotes/%d/status", id), nil, body, nil)
}

package models

import (
	"net/url"
	"strconv"

	"github.com/Mynor454-s/iccsa-admin/internal/money"
)

// QuoteStatus is the closed set of order states. The backend is authoritative
// on transition legality; the gateway only gates affordances.
type QuoteStatus string

const (
	StatusCreated    QuoteStatus = "CREATED"
	StatusAccepted   QuoteStatus = "ACCEPTED"
	StatusInProgress QuoteStatus = "IN_PROGRESS"
	StatusFinished   QuoteStatus = "FINISHED"
	StatusPaid       QuoteStatus = "PAID"
	StatusDelivered  QuoteStatus = "DELIVERED"
	StatusCancelled  QuoteStatus = "CANCELLED"
)

var quoteStatuses = map[QuoteStatus]bool{
	StatusCreated:    true,
	StatusAccepted:   true,
	StatusInProgress: true,
	StatusFinished:   true,
	StatusPaid:       true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

func (s QuoteStatus) IsValid() bool { return quoteStatuses[s] }

// IsTerminal reports whether the status disables further status changes,
// cancellation, and new payments on the client side.
func (s QuoteStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// QuoteItemMaterial is a material consumption attached to a line item.
type QuoteItemMaterial struct {
	MaterialID int64        `json:"materialId"`
	Quantity   float64      `json:"quantity"`
	UnitPrice  money.Amount `json:"unitPrice"`
}

// QuoteItem is a product line of a quote.
type QuoteItem struct {
	ProductID int64               `json:"productId"`
	Quantity  float64             `json:"quantity"`
	UnitPrice money.Amount        `json:"unitPrice"`
	Materials []QuoteItemMaterial `json:"materials"`
}

// QuoteServiceLine is a service charge attached to a quote.
type QuoteServiceLine struct {
	ServiceID int64        `json:"serviceId"`
	Price     money.Amount `json:"price"`
}

// Quote is the server-owned order record. TotalAmount is server-computed and
// never recomputed locally for authoritative display.
type Quote struct {
	ID           int64              `json:"id"`
	ClientID     int64              `json:"clientId"`
	UserID       int64              `json:"userId"`
	DeliveryDate string             `json:"deliveryDate"`
	Items        []QuoteItem        `json:"items"`
	Services     []QuoteServiceLine `json:"services"`
	TotalAmount  money.Amount       `json:"totalAmount"`
	Status       QuoteStatus        `json:"status"`
	QRCodeURL    string             `json:"qrCodeUrl,omitempty"`
	CreatedAt    string             `json:"createdAt,omitempty"`
	UpdatedAt    string             `json:"updatedAt,omitempty"`
}

// ShadowTotal recomputes the total from line items for display cross-checks.
// It may differ from TotalAmount by formatting/rounding and must not replace it.
func (q *Quote) ShadowTotal() money.Amount {
	var total money.Amount
	for _, item := range q.Items {
		total += money.FromFloat(item.UnitPrice.Float64() * item.Quantity)
		for _, m := range item.Materials {
			total += money.FromFloat(m.UnitPrice.Float64() * m.Quantity)
		}
	}
	for _, svc := range q.Services {
		total += svc.Price
	}
	return total
}

// QuoteQRInfo is the tracking metadata behind a quote's QR code. Fetching it
// is best-effort everywhere; a missing record is not an error.
type QuoteQRInfo struct {
	QuoteID      int64  `json:"quoteId"`
	ClientName   string `json:"clientName"`
	Total        string `json:"total"`
	Status       string `json:"status"`
	DeliveryDate string `json:"deliveryDate"`
	CreatedAt    string `json:"createdAt"`
	QRURL        string `json:"qrUrl"`
}

// QuoteStatusUpdate is the body of PUT /quotes/{id}/status.
type QuoteStatusUpdate struct {
	Status QuoteStatus `json:"status"`
}

// QuoteListEntry is one row of the paginated quote listing, with the nested
// client/user summaries the backend joins in.
type QuoteListEntry struct {
	ID           int64        `json:"id"`
	Status       QuoteStatus  `json:"status"`
	Total        money.Amount `json:"total"`
	DeliveryDate string       `json:"deliveryDate"`
	QRCodeURL    string       `json:"qrCodeUrl,omitempty"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
	Client       struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"Client"`
	User struct {
		Name string `json:"name"`
	} `json:"User"`
}

type QuoteListResponse struct {
	Quotes     []QuoteListEntry `json:"quotes"`
	Pagination struct {
		CurrentPage   int `json:"currentPage"`
		TotalPages    int `json:"totalPages"`
		TotalQuotes   int `json:"totalQuotes"`
		QuotesPerPage int `json:"quotesPerPage"`
	} `json:"pagination"`
}

// QuoteFilters enumerates every supported quote list filter. Query building
// goes through this struct only; request parameters are never assembled from
// loose key/value bags.
type QuoteFilters struct {
	Page     int
	Limit    int
	Status   QuoteStatus
	ClientID int64
}

// Query maps the filters to wire-level query parameters, skipping zero values.
func (f QuoteFilters) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.ClientID > 0 {
		q.Set("clientId", strconv.FormatInt(f.ClientID, 10))
	}
	return q
}

package models

import (
	"net/url"
	"strconv"

	"github.com/Mynor454-s/iccsa-admin/internal/money"
)

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "CASH"
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
	MethodTransfer   PaymentMethod = "TRANSFER"
	MethodCheque     PaymentMethod = "CHEQUE"
	MethodDeposit    PaymentMethod = "DEPOSIT"
	MethodOther      PaymentMethod = "OTHER"
)

var paymentMethods = map[PaymentMethod]bool{
	MethodCash:       true,
	MethodCreditCard: true,
	MethodDebitCard:  true,
	MethodTransfer:   true,
	MethodCheque:     true,
	MethodDeposit:    true,
	MethodOther:      true,
}

func (m PaymentMethod) IsValid() bool { return paymentMethods[m] }

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentRejected  PaymentStatus = "REJECTED"
)

func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentConfirmed || s == PaymentRejected
}

// PaymentType is derived server-side relative to the remaining balance at the
// time of payment. The gateway displays it and never computes it.
type PaymentType string

const (
	PaymentPartial  PaymentType = "PARTIAL"
	PaymentComplete PaymentType = "COMPLETE"
)

// Payment is a recorded contribution toward a quote's total. Amount, method,
// and date are immutable after creation; only notes and the transaction
// reference can be edited.
type Payment struct {
	ID                   int64         `json:"id"`
	QuoteID              int64         `json:"quoteId"`
	Amount               money.Amount  `json:"amount"`
	PaymentDate          string        `json:"paymentDate"`
	PaymentMethod        PaymentMethod `json:"paymentMethod"`
	PaymentType          PaymentType   `json:"paymentType"`
	Status               PaymentStatus `json:"status"`
	TransactionReference string        `json:"transactionReference,omitempty"`
	Notes                string        `json:"notes,omitempty"`
	CreatedAt            string        `json:"createdAt,omitempty"`
	UpdatedAt            string        `json:"updatedAt,omitempty"`
}

// PaymentSummary is server-derived and refetched, never reconstructed from
// raw payments for authoritative use.
type PaymentSummary struct {
	TotalQuote      money.Amount `json:"totalQuote"`
	TotalPaid       money.Amount `json:"totalPaid"`
	RemainingAmount money.Amount `json:"remainingAmount"`
	IsFullyPaid     bool         `json:"isFullyPaid"`
	PaymentCount    int          `json:"paymentCount,omitempty"`
}

// DeliveryEligibility is the server's verdict on whether a quote may be
// delivered. A delivered quote is terminal regardless of CanDeliver.
type DeliveryEligibility struct {
	CanDeliver         bool         `json:"canDeliver"`
	CurrentStatus      QuoteStatus  `json:"currentStatus"`
	TotalQuote         money.Amount `json:"totalQuote"`
	TotalPaid          money.Amount `json:"totalPaid"`
	IsFullyPaid        bool         `json:"isFullyPaid"`
	IsAlreadyDelivered bool         `json:"isAlreadyDelivered"`
	Message            string       `json:"message"`
}

// CreatePaymentRequest is the body of POST /payments.
type CreatePaymentRequest struct {
	QuoteID              int64         `json:"quoteId"`
	Amount               money.Amount  `json:"amount"`
	PaymentMethod        PaymentMethod `json:"paymentMethod"`
	PaymentDate          string        `json:"paymentDate,omitempty"`
	TransactionReference string        `json:"transactionReference,omitempty"`
	Notes                string        `json:"notes,omitempty"`
}

// UpdatePaymentRequest carries the only fields the backend allows editing.
// Amount, method, status, and date must never appear in this payload.
type UpdatePaymentRequest struct {
	Notes                *string `json:"notes,omitempty"`
	TransactionReference *string `json:"transactionReference,omitempty"`
}

// QuotePaymentsResponse is GET /payments/quote/{id}.
type QuotePaymentsResponse struct {
	Payments []Payment       `json:"payments"`
	Summary  *PaymentSummary `json:"summary"`
}

// PaymentResponse wraps payment mutations: {message, payment, paymentSummary}.
type PaymentResponse struct {
	Message        string          `json:"message"`
	Payment        Payment         `json:"payment"`
	PaymentSummary *PaymentSummary `json:"paymentSummary,omitempty"`
}

type PaymentListResponse struct {
	Payments   []Payment `json:"payments"`
	Pagination struct {
		CurrentPage     int          `json:"currentPage"`
		TotalPages      int          `json:"totalPages"`
		TotalPayments   int          `json:"totalPayments"`
		PaymentsPerPage int          `json:"paymentsPerPage"`
		PageTotal       money.Amount `json:"pageTotal"`
	} `json:"pagination"`
}

// PaymentSummaryReport is the period aggregate from GET /payments/summary.
type PaymentSummaryReport struct {
	Period struct {
		StartDate    string `json:"startDate"`
		EndDate      string `json:"endDate"`
		DaysInPeriod int    `json:"daysInPeriod"`
	} `json:"period"`
	Summary struct {
		TotalAmount   money.Amount `json:"totalAmount"`
		Count         int          `json:"count"`
		AverageAmount money.Amount `json:"averageAmount"`
	} `json:"summary"`
	Breakdowns struct {
		ByPaymentMethod []struct {
			Method      PaymentMethod `json:"method"`
			Count       int           `json:"count"`
			TotalAmount money.Amount  `json:"totalAmount"`
		} `json:"byPaymentMethod"`
		ByDay []struct {
			Date        string       `json:"date"`
			Count       int          `json:"count"`
			TotalAmount money.Amount `json:"totalAmount"`
		} `json:"byDay"`
	} `json:"breakdowns"`
}

// PaymentFilters enumerates every supported payment list filter.
type PaymentFilters struct {
	Page          int
	PageSize      int
	QuoteID       int64
	Status        PaymentStatus
	PaymentMethod PaymentMethod
	DateFrom      string // YYYY-MM-DD
	DateTo        string // YYYY-MM-DD
}

// Query maps the filters to wire-level query parameters, skipping zero values.
func (f PaymentFilters) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	if f.QuoteID > 0 {
		q.Set("quoteId", strconv.FormatInt(f.QuoteID, 10))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.PaymentMethod != "" {
		q.Set("paymentMethod", string(f.PaymentMethod))
	}
	if f.DateFrom != "" {
		q.Set("dateFrom", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("dateTo", f.DateTo)
	}
	return q
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

// PaymentHandler serves the administrative payment listing and the period
// summary report.
type PaymentHandler struct {
	Payments *upstream.PaymentsClient
}

func NewPaymentHandler(payments *upstream.PaymentsClient) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// List returns the paginated cross-quote payment listing.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := paymentFiltersFromQuery(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.Payments.List(r.Context(), filters)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// SummaryReport returns the aggregate payment report for a date range. Both
// bounds are required; the backend rejects open ranges.
func (h *PaymentHandler) SummaryReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("startDate"), q.Get("endDate")
	if !validDate(start) || !validDate(end) {
		utils.Error(w, http.StatusBadRequest, "startDate and endDate are required as YYYY-MM-DD")
		return
	}

	report, err := h.Payments.SummaryReport(r.Context(), start, end)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

func paymentFiltersFromQuery(r *http.Request) (models.PaymentFilters, error) {
	q := r.URL.Query()
	var filters models.PaymentFilters

	var err error
	if filters.Page, err = intParam(q.Get("page")); err != nil {
		return filters, paramError("page")
	}
	if filters.PageSize, err = intParam(q.Get("pageSize")); err != nil {
		return filters, paramError("pageSize")
	}
	if raw := q.Get("quoteId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filters, paramError("quoteId")
		}
		filters.QuoteID = id
	}
	if raw := q.Get("status"); raw != "" {
		status := models.PaymentStatus(raw)
		if !status.IsValid() {
			return filters, paramError("status")
		}
		filters.Status = status
	}
	if raw := q.Get("paymentMethod"); raw != "" {
		method := models.PaymentMethod(raw)
		if !method.IsValid() {
			return filters, paramError("paymentMethod")
		}
		filters.PaymentMethod = method
	}
	if raw := q.Get("dateFrom"); raw != "" {
		if !validDate(raw) {
			return filters, paramError("dateFrom")
		}
		filters.DateFrom = raw
	}
	if raw := q.Get("dateTo"); raw != "" {
		if !validDate(raw) {
			return filters, paramError("dateTo")
		}
		filters.DateTo = raw
	}
	return filters, nil
}

func validDate(raw string) bool {
	_, err := time.Parse("2006-01-02", raw)
	return err == nil
}

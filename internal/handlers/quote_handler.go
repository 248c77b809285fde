package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

// QuoteHandler serves the quote listing and creation pages. Single-quote
// reads go through QuoteAdminHandler so they pass the reconciliation cycle.
type QuoteHandler struct {
	Quotes *upstream.QuotesClient
}

func NewQuoteHandler(quotes *upstream.QuotesClient) *QuoteHandler {
	return &QuoteHandler{Quotes: quotes}
}

// List returns the paginated quote listing. Filters come from the query
// string and are validated before they reach the wire.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := quoteFiltersFromQuery(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.Quotes.List(r.Context(), filters)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Create posts a new quote to the backend, which computes the total.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var quote models.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if quote.ClientID <= 0 || len(quote.Items) == 0 {
		utils.Error(w, http.StatusBadRequest, "Client and at least one item are required")
		return
	}

	created, err := h.Quotes.Create(r.Context(), &quote)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

// QRInfo returns the public tracking metadata for a quote.
func (h *QuoteHandler) QRInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	info, err := h.Quotes.QRInfo(r.Context(), id)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, info)
}

func quoteFiltersFromQuery(r *http.Request) (models.QuoteFilters, error) {
	q := r.URL.Query()
	var filters models.QuoteFilters

	var err error
	if filters.Page, err = intParam(q.Get("page")); err != nil {
		return filters, paramError("page")
	}
	if filters.Limit, err = intParam(q.Get("limit")); err != nil {
		return filters, paramError("limit")
	}
	if raw := q.Get("status"); raw != "" {
		status := models.QuoteStatus(raw)
		if !status.IsValid() {
			return filters, paramError("status")
		}
		filters.Status = status
	}
	if raw := q.Get("clientId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filters, paramError("clientId")
		}
		filters.ClientID = id
	}
	return filters, nil
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

type paramError string

func (e paramError) Error() string { return "Invalid value for parameter " + string(e) }

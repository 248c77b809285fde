package handlers

import (
	"fmt"
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/archive"
	"github.com/Mynor454-s/iccsa-admin/internal/export"
	"github.com/Mynor454-s/iccsa-admin/internal/middleware"
	"github.com/Mynor454-s/iccsa-admin/internal/reconcile"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

// ExportHandler renders printable artifacts from reconciled state. Exports
// always run a fresh reconciliation so the document matches the backend, not
// whatever the page last showed.
type ExportHandler struct {
	Registry *reconcile.Registry
	Quotes   *upstream.QuotesClient
	Archiver *archive.Archiver
}

func NewExportHandler(registry *reconcile.Registry, quotes *upstream.QuotesClient, archiver *archive.Archiver) *ExportHandler {
	return &ExportHandler{Registry: registry, Quotes: quotes, Archiver: archiver}
}

// OrderPDF streams the printable work order for a quote.
func (h *ExportHandler) OrderPDF(w http.ResponseWriter, r *http.Request) {
	snap, id, ok := h.reconciled(w, r)
	if !ok {
		return
	}

	data, err := export.OrderPDF(snap)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}
	h.Archiver.Store(r.Context(), id, "order", "application/pdf", data)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="order_%d.pdf"`, id))
	w.Write(data)
}

// OrderCSV streams the payment history extract for a quote.
func (h *ExportHandler) OrderCSV(w http.ResponseWriter, r *http.Request) {
	snap, id, ok := h.reconciled(w, r)
	if !ok {
		return
	}

	data, err := export.OrderCSV(snap)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render CSV")
		return
	}
	h.Archiver.Store(r.Context(), id, "payments", "text/csv", data)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="order_%d_payments.csv"`, id))
	w.Write(data)
}

// QuoteListCSV streams the filtered quote listing as CSV.
func (h *ExportHandler) QuoteListCSV(w http.ResponseWriter, r *http.Request) {
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

	data, err := export.QuoteListCSV(resp.Quotes)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="quotes.csv"`)
	w.Write(data)
}

func (h *ExportHandler) reconciled(w http.ResponseWriter, r *http.Request) (reconcile.Snapshot, int64, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return reconcile.Snapshot{}, 0, false
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	snap, err := h.Registry.For(sess.ID).Reconcile(r.Context(), id)
	if err != nil {
		writeReconcileError(w, err)
		return reconcile.Snapshot{}, 0, false
	}
	return snap, id, true
}

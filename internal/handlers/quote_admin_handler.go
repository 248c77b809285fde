package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Mynor454-s/iccsa-admin/internal/middleware"
	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/reconcile"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

// QuoteAdminHandler serves the order-administration page: the reconciled
// quote/payment view and every mutation that page can perform. Each session
// gets its own controller; a request without a session never reaches here.
type QuoteAdminHandler struct {
	Registry *reconcile.Registry
}

func NewQuoteAdminHandler(registry *reconcile.Registry) *QuoteAdminHandler {
	return &QuoteAdminHandler{Registry: registry}
}

// adminView is the wire shape of the reconciled page state.
type adminView struct {
	reconcile.Snapshot
	Actions reconcile.Actions `json:"actions"`
}

func view(snap reconcile.Snapshot) adminView {
	return adminView{Snapshot: snap, Actions: snap.DeriveActions()}
}

func (h *QuoteAdminHandler) controller(r *http.Request) *reconcile.Controller {
	sess, _ := middleware.SessionFromContext(r.Context())
	return h.Registry.For(sess.ID)
}

// GetView runs a full reconciliation for the requested quote.
func (h *QuoteAdminHandler) GetView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	snap, err := h.controller(r).Reconcile(r.Context(), id)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view(snap))
}

// UpdateStatus submits a status transition for the selected quote.
func (h *QuoteAdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req models.QuoteStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	snap, err := h.controller(r).ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view(snap))
}

// Cancel performs the confirmed cancellation flow.
func (h *QuoteAdminHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	snap, err := h.controller(r).Cancel(r.Context(), id, req.Confirm)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view(snap))
}

// CreatePayment registers a payment against the selected quote.
func (h *QuoteAdminHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var input reconcile.NewPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	input.QuoteID = id

	snap, err := h.controller(r).SubmitNewPayment(r.Context(), input)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, view(snap))
}

// UpdatePayment edits a payment's notes and transaction reference.
func (h *QuoteAdminHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	var input reconcile.PaymentEditInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	snap, err := h.controller(r).SubmitPaymentEdit(r.Context(), id, input)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view(snap))
}

// DeletePayment removes a payment from the selected quote's history.
func (h *QuoteAdminHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	snap, err := h.controller(r).DeletePayment(r.Context(), id)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view(snap))
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// writeReconcileError maps controller and upstream failures onto HTTP
// statuses. Backend messages pass through verbatim so the operator sees the
// authoritative reason.
func writeReconcileError(w http.ResponseWriter, err error) {
	switch {
	case reconcile.IsValidation(err):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, reconcile.ErrSuperseded):
		utils.Error(w, http.StatusConflict, "A newer request replaced this one")
	case upstream.IsUnauthorized(err):
		utils.Error(w, http.StatusUnauthorized, serverMessageOr(err, "Session expired, please log in again"))
	case upstream.IsNotFound(err):
		utils.Error(w, http.StatusNotFound, serverMessageOr(err, "Not found"))
	default:
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			utils.Error(w, apiErr.StatusCode, apiErr.Message)
			return
		}
		utils.Error(w, http.StatusBadGateway, "Backend unavailable")
	}
}

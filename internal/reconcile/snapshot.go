// Package reconcile implements the quote/payment reconciliation view-model:
// it merges a quote, its QR metadata, its payment history, and the server's
// delivery-eligibility verdict into one coherent snapshot, and derives the
// predicates that gate admin actions.
package reconcile

import "github.com/Mynor454-s/iccsa-admin/internal/models"

// DeliveryBadge summarizes delivery standing for display.
type DeliveryBadge string

const (
	BadgeAlreadyDelivered DeliveryBadge = "ALREADY_DELIVERED"
	BadgeReadyForDelivery DeliveryBadge = "READY_FOR_DELIVERY"
	BadgeNotReady         DeliveryBadge = "NOT_READY"
)

// Snapshot is the reconciled view state for one quote. It is rebuilt on every
// fetch cycle and never persisted. The quote is the mandatory field; QR info,
// payments, summary, and eligibility degrade independently to their zero
// values when their fetches fail.
type Snapshot struct {
	Quote       *models.Quote               `json:"quote"`
	QRInfo      *models.QuoteQRInfo         `json:"qrInfo,omitempty"`
	Payments    []models.Payment            `json:"payments"`
	Summary     *models.PaymentSummary      `json:"summary,omitempty"`
	Eligibility *models.DeliveryEligibility `json:"eligibility,omitempty"`
}

// CanAcceptNewPayment gates the new-payment affordance. Missing summary or
// eligibility defaults to the restrictive answer.
func (s Snapshot) CanAcceptNewPayment() bool {
	if s.Quote == nil || s.Quote.Status.IsTerminal() {
		return false
	}
	if s.Summary == nil || s.Summary.IsFullyPaid {
		return false
	}
	if s.Eligibility == nil || s.Eligibility.IsAlreadyDelivered {
		return false
	}
	return true
}

// CanChangeStatus gates status transitions. Only cancellation is locally
// final; every other transition is the backend's call.
func (s Snapshot) CanChangeStatus() bool {
	return s.Quote != nil && s.Quote.Status != models.StatusCancelled
}

// CanCancel gates the cancel affordance.
func (s Snapshot) CanCancel() bool {
	return s.Quote != nil && s.Quote.Status != models.StatusCancelled
}

// CanDeletePayments reports whether payment deletion is permitted; the
// backend forbids it once the owning quote is delivered.
func (s Snapshot) CanDeletePayments() bool {
	return s.Quote != nil && s.Quote.Status != models.StatusDelivered
}

// Badge derives the delivery badge. A delivered quote wins over the raw
// CanDeliver flag; missing eligibility reads as not ready.
func (s Snapshot) Badge() DeliveryBadge {
	if s.Eligibility == nil {
		return BadgeNotReady
	}
	if s.Eligibility.IsAlreadyDelivered {
		return BadgeAlreadyDelivered
	}
	if s.Eligibility.CanDeliver {
		return BadgeReadyForDelivery
	}
	return BadgeNotReady
}

// Actions is the predicate set serialized for the UI. Predicates are
// recomputed from the snapshot on every call, never cached.
type Actions struct {
	CanAcceptNewPayment bool          `json:"canAcceptNewPayment"`
	CanChangeStatus     bool          `json:"canChangeStatus"`
	CanCancel           bool          `json:"canCancel"`
	CanDeletePayments   bool          `json:"canDeletePayments"`
	DeliveryBadge       DeliveryBadge `json:"deliveryBadge"`
}

// DeriveActions computes the full predicate set.
func (s Snapshot) DeriveActions() Actions {
	return Actions{
		CanAcceptNewPayment: s.CanAcceptNewPayment(),
		CanChangeStatus:     s.CanChangeStatus(),
		CanCancel:           s.CanCancel(),
		CanDeletePayments:   s.CanDeletePayments(),
		DeliveryBadge:       s.Badge(),
	}
}

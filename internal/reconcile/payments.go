package reconcile

import (
	"context"
	"fmt"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/money"
)

// NewPaymentInput is a candidate payment as entered in the form. Amount
// arrives as the raw string so parsing failures surface as validation errors
// rather than decode errors.
type NewPaymentInput struct {
	QuoteID              int64                `json:"quoteId"`
	Amount               string               `json:"amount"`
	PaymentMethod        models.PaymentMethod `json:"paymentMethod"`
	TransactionReference string               `json:"transactionReference,omitempty"`
	Notes                string               `json:"notes,omitempty"`
}

// PaymentEditInput carries the only fields an existing payment allows
// editing. Amount, method, status, and date are immutable and must never
// reach the outgoing payload.
type PaymentEditInput struct {
	Notes                *string `json:"notes,omitempty"`
	TransactionReference *string `json:"transactionReference,omitempty"`
}

// SubmitNewPayment validates a candidate payment against the reconciled
// state, submits it, and refreshes the full snapshot. The remaining-balance
// check is a soft pre-check against possibly stale data; the server round
// trip is never skipped based on it.
func (c *Controller) SubmitNewPayment(ctx context.Context, input NewPaymentInput) (Snapshot, error) {
	if input.QuoteID <= 0 {
		return Snapshot{}, ValidationError("quote id must be a positive number")
	}

	amount, err := money.Parse(input.Amount)
	if err != nil || !amount.IsPositive() {
		return Snapshot{}, ValidationError("amount must be a valid number greater than 0")
	}
	if !input.PaymentMethod.IsValid() {
		return Snapshot{}, ValidationError(fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	c.mu.Lock()
	summary := c.snap.Summary
	sameQuote := c.quoteID == input.QuoteID
	c.mu.Unlock()

	if sameQuote && summary != nil && amount.Cmp(summary.RemainingAmount) > 0 {
		return Snapshot{}, ValidationError(fmt.Sprintf(
			"amount cannot exceed %s (remaining balance)", summary.RemainingAmount))
	}

	req := &models.CreatePaymentRequest{
		QuoteID:              input.QuoteID,
		Amount:               amount,
		PaymentMethod:        input.PaymentMethod,
		TransactionReference: input.TransactionReference,
		Notes:                input.Notes,
	}
	if _, err := c.payments.Create(ctx, req); err != nil {
		return Snapshot{}, err
	}

	// A new payment can flip paymentType classification and eligibility;
	// refresh everything, not just the summary.
	return c.Reconcile(ctx, input.QuoteID)
}

// SubmitPaymentEdit updates a payment's notes and transaction reference,
// then refreshes the snapshot so the history table reflects the edit.
func (c *Controller) SubmitPaymentEdit(ctx context.Context, paymentID int64, input PaymentEditInput) (Snapshot, error) {
	if paymentID <= 0 {
		return Snapshot{}, ValidationError("payment id must be a positive number")
	}
	if input.Notes == nil && input.TransactionReference == nil {
		return Snapshot{}, ValidationError("nothing to update: only notes and transaction reference are editable")
	}

	req := &models.UpdatePaymentRequest{
		Notes:                input.Notes,
		TransactionReference: input.TransactionReference,
	}
	if _, err := c.payments.Update(ctx, paymentID, req); err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	quoteID := c.quoteID
	c.mu.Unlock()
	if quoteID <= 0 {
		return Snapshot{}, nil
	}
	return c.Reconcile(ctx, quoteID)
}

// DeletePayment removes a payment after checking the local terminal-state
// rule, then refreshes. The backend enforces the same rule authoritatively.
func (c *Controller) DeletePayment(ctx context.Context, paymentID int64) (Snapshot, error) {
	if paymentID <= 0 {
		return Snapshot{}, ValidationError("payment id must be a positive number")
	}

	c.mu.Lock()
	canDelete := c.snap.CanDeletePayments()
	quoteID := c.quoteID
	c.mu.Unlock()
	if !canDelete {
		return Snapshot{}, ValidationError("payments of delivered orders cannot be deleted")
	}

	if err := c.payments.Delete(ctx, paymentID); err != nil {
		return Snapshot{}, err
	}
	if quoteID <= 0 {
		return Snapshot{}, nil
	}
	return c.Reconcile(ctx, quoteID)
}

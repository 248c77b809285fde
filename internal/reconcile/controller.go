package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Mynor454-s/iccsa-admin/internal/metrics"
	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

// QuoteAPI is the slice of the upstream client the controller needs for
// quote data. *upstream.QuotesClient satisfies it.
type QuoteAPI interface {
	Get(ctx context.Context, id int64) (*models.Quote, error)
	QRInfo(ctx context.Context, id int64) (*models.QuoteQRInfo, error)
	UpdateStatus(ctx context.Context, id int64, status models.QuoteStatus) error
}

// PaymentAPI is the slice of the upstream client the controller needs for
// payment data. *upstream.PaymentsClient satisfies it.
type PaymentAPI interface {
	ByQuote(ctx context.Context, quoteID int64) (*models.QuotePaymentsResponse, error)
	DeliveryCheck(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error)
	Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.Payment, error)
	Delete(ctx context.Context, id int64) error
}

// Controller owns the reconciled view state for one admin page. All mutation
// happens by replacing snapshot fields under a generation guard: every
// Reconcile (and Close) bumps the generation, and in-flight responses whose
// generation no longer matches are discarded. Last request wins, not last
// response.
type Controller struct {
	quotes   QuoteAPI
	payments PaymentAPI

	mu      sync.Mutex
	gen     uint64
	quoteID int64
	snap    Snapshot
}

// NewController builds a controller bound to the given resource clients.
func NewController(quotes QuoteAPI, payments PaymentAPI) *Controller {
	return &Controller{quotes: quotes, payments: payments}
}

// Snapshot returns a copy of the current tuple. Callers derive predicates
// from the copy; partial updates are never visible between commits.
func (c *Controller) Snapshot() (Snapshot, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap, c.quoteID
}

// Close discards the controller's state and any in-flight responses. Called
// on logout or when the owning page goes away.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.quoteID = 0
	c.snap = Snapshot{}
}

// begin starts a new reconciliation cycle: clears stale state and returns
// the generation token in-flight responses must present to commit.
func (c *Controller) begin(quoteID int64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.quoteID = quoteID
	c.snap = Snapshot{}
	return c.gen
}

// current reports whether gen is still the live generation for quoteID.
func (c *Controller) current(gen uint64, quoteID int64) bool {
	return c.gen == gen && c.quoteID == quoteID
}

// Reconcile fetches the quote, its QR metadata, its payment history, and its
// delivery eligibility, and folds them into the snapshot. The quote fetch is
// mandatory; the other three degrade independently.
func (c *Controller) Reconcile(ctx context.Context, quoteID int64) (Snapshot, error) {
	if quoteID <= 0 {
		return Snapshot{}, ValidationError("quote id must be a positive number")
	}

	gen := c.begin(quoteID)

	// Quote and QR metadata fetch concurrently; QR is best-effort.
	var (
		wg       sync.WaitGroup
		quote    *models.Quote
		quoteErr error
		qrInfo   *models.QuoteQRInfo
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		quote, quoteErr = c.quotes.Get(ctx, quoteID)
	}()
	go func() {
		defer wg.Done()
		info, err := c.quotes.QRInfo(ctx, quoteID)
		if err == nil {
			qrInfo = info
		}
	}()
	wg.Wait()

	if quoteErr != nil {
		metrics.ReconciliationsTotal.WithLabelValues("quote_fetch_failed").Inc()
		// State was already cleared at begin; leave whatever a newer
		// reconciliation may have written alone.
		return Snapshot{}, quoteErr
	}

	c.mu.Lock()
	if !c.current(gen, quoteID) {
		c.mu.Unlock()
		metrics.ReconciliationsTotal.WithLabelValues("superseded").Inc()
		return Snapshot{}, ErrSuperseded
	}
	c.snap.Quote = quote
	c.snap.QRInfo = qrInfo
	c.mu.Unlock()

	if err := c.refreshPayments(ctx, quoteID, gen); err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen, quoteID) {
		metrics.ReconciliationsTotal.WithLabelValues("superseded").Inc()
		return Snapshot{}, ErrSuperseded
	}
	metrics.ReconciliationsTotal.WithLabelValues("ok").Inc()
	return c.snap, nil
}

// refreshPayments fetches payment history and delivery eligibility
// concurrently and commits them under the generation guard. Each side
// degrades independently: a failed payments fetch yields an empty history
// and no summary, a failed eligibility fetch yields no verdict (which the
// predicates read as most restrictive).
func (c *Controller) refreshPayments(ctx context.Context, quoteID int64, gen uint64) error {
	var (
		wg       sync.WaitGroup
		payResp  *models.QuotePaymentsResponse
		verdict  *models.DeliveryEligibility
		payErr   error
		checkErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		payResp, payErr = c.payments.ByQuote(ctx, quoteID)
	}()
	go func() {
		defer wg.Done()
		verdict, checkErr = c.payments.DeliveryCheck(ctx, quoteID)
	}()
	wg.Wait()

	if payErr != nil {
		slog.Warn("payment history fetch failed", "quote_id", quoteID, "error", payErr)
	}
	if checkErr != nil {
		slog.Warn("delivery check failed", "quote_id", quoteID, "error", checkErr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen, quoteID) {
		return ErrSuperseded
	}
	if payErr == nil && payResp != nil {
		c.snap.Payments = payResp.Payments
		c.snap.Summary = payResp.Summary
	} else {
		c.snap.Payments = []models.Payment{}
		c.snap.Summary = nil
	}
	if checkErr == nil {
		c.snap.Eligibility = verdict
	} else {
		c.snap.Eligibility = nil
	}
	return nil
}

// ChangeStatus submits a status transition and refreshes dependent state.
// Phase 1 applies the optimistic local patch only after the server confirms;
// phase 2 (the payments+eligibility refresh) unconditionally overwrites the
// optimistic guess.
func (c *Controller) ChangeStatus(ctx context.Context, quoteID int64, status models.QuoteStatus) (Snapshot, error) {
	if !status.IsValid() {
		return Snapshot{}, ValidationError(fmt.Sprintf("unknown status %q", status))
	}

	c.mu.Lock()
	if c.quoteID != quoteID || c.snap.Quote == nil {
		c.mu.Unlock()
		return Snapshot{}, ValidationError("no quote selected; search for the order first")
	}
	if !c.snap.CanChangeStatus() {
		c.mu.Unlock()
		return Snapshot{}, ValidationError("cancelled orders no longer accept status changes")
	}
	gen := c.gen
	c.mu.Unlock()

	if err := c.quotes.UpdateStatus(ctx, quoteID, status); err != nil {
		// No partial mutation: local state keeps the previous status.
		return Snapshot{}, err
	}

	// Phase 1: optimistic patch of the confirmed transition.
	c.mu.Lock()
	if c.current(gen, quoteID) && c.snap.Quote != nil {
		patched := *c.snap.Quote
		patched.Status = status
		c.snap.Quote = &patched
	}
	c.mu.Unlock()

	// QR metadata refresh is best-effort; on failure patch only the status
	// field of the last-known metadata.
	if info, err := c.quotes.QRInfo(ctx, quoteID); err == nil {
		c.mu.Lock()
		if c.current(gen, quoteID) {
			c.snap.QRInfo = info
		}
		c.mu.Unlock()
	} else {
		c.mu.Lock()
		if c.current(gen, quoteID) && c.snap.QRInfo != nil {
			patched := *c.snap.QRInfo
			patched.Status = string(status)
			c.snap.QRInfo = &patched
		}
		c.mu.Unlock()
	}

	// Phase 2: status changes can change eligibility, refresh unconditionally.
	if err := c.refreshPayments(ctx, quoteID, gen); err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen, quoteID) {
		return Snapshot{}, ErrSuperseded
	}
	return c.snap, nil
}

// Cancel is a status change to CANCELLED behind an explicit confirmation
// step; the UI treats it as destructive even though the backend models it as
// just another status.
func (c *Controller) Cancel(ctx context.Context, quoteID int64, confirmed bool) (Snapshot, error) {
	if !confirmed {
		return Snapshot{}, ValidationError("cancellation requires explicit confirmation")
	}

	c.mu.Lock()
	canCancel := c.quoteID == quoteID && c.snap.CanCancel()
	c.mu.Unlock()
	if !canCancel {
		return Snapshot{}, ValidationError("this order can no longer be cancelled")
	}

	return c.ChangeStatus(ctx, quoteID, models.StatusCancelled)
}

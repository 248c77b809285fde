package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/money"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
)

type quoteStub struct {
	get    func(ctx context.Context, id int64) (*models.Quote, error)
	qr     func(ctx context.Context, id int64) (*models.QuoteQRInfo, error)
	update func(ctx context.Context, id int64, status models.QuoteStatus) error
}

func (s *quoteStub) Get(ctx context.Context, id int64) (*models.Quote, error) {
	if s.get == nil {
		return nil, errors.New("no quote stub")
	}
	return s.get(ctx, id)
}

func (s *quoteStub) QRInfo(ctx context.Context, id int64) (*models.QuoteQRInfo, error) {
	if s.qr == nil {
		return nil, errors.New("no qr stub")
	}
	return s.qr(ctx, id)
}

func (s *quoteStub) UpdateStatus(ctx context.Context, id int64, status models.QuoteStatus) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, id, status)
}

type paymentStub struct {
	byQuote func(ctx context.Context, quoteID int64) (*models.QuotePaymentsResponse, error)
	check   func(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error)
	create  func(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
	update  func(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.Payment, error)
	delete  func(ctx context.Context, id int64) error
}

func (s *paymentStub) ByQuote(ctx context.Context, quoteID int64) (*models.QuotePaymentsResponse, error) {
	if s.byQuote == nil {
		return nil, errors.New("no payments stub")
	}
	return s.byQuote(ctx, quoteID)
}

func (s *paymentStub) DeliveryCheck(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error) {
	if s.check == nil {
		return nil, errors.New("no check stub")
	}
	return s.check(ctx, quoteID)
}

func (s *paymentStub) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	if s.create == nil {
		return nil, errors.New("no create stub")
	}
	return s.create(ctx, req)
}

func (s *paymentStub) Update(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.Payment, error) {
	if s.update == nil {
		return nil, errors.New("no update stub")
	}
	return s.update(ctx, id, req)
}

func (s *paymentStub) Delete(ctx context.Context, id int64) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, id)
}

func testQuote(id int64, status models.QuoteStatus) *models.Quote {
	return &models.Quote{
		ID:          id,
		ClientID:    7,
		TotalAmount: money.Amount(100000),
		Status:      status,
	}
}

func openSummary(totalCents, paidCents int64) *models.PaymentSummary {
	return &models.PaymentSummary{
		TotalQuote:      money.Amount(totalCents),
		TotalPaid:       money.Amount(paidCents),
		RemainingAmount: money.Amount(totalCents - paidCents),
		IsFullyPaid:     paidCents >= totalCents,
	}
}

func openEligibility(delivered, canDeliver bool) *models.DeliveryEligibility {
	return &models.DeliveryEligibility{
		CanDeliver:         canDeliver,
		IsAlreadyDelivered: delivered,
	}
}

func fullStubs(quote *models.Quote, summary *models.PaymentSummary, verdict *models.DeliveryEligibility) (*quoteStub, *paymentStub) {
	quotes := &quoteStub{
		get: func(ctx context.Context, id int64) (*models.Quote, error) { return quote, nil },
		qr: func(ctx context.Context, id int64) (*models.QuoteQRInfo, error) {
			return &models.QuoteQRInfo{QuoteID: id, Status: string(quote.Status), ClientName: "ACME"}, nil
		},
	}
	payments := &paymentStub{
		byQuote: func(ctx context.Context, quoteID int64) (*models.QuotePaymentsResponse, error) {
			return &models.QuotePaymentsResponse{Payments: []models.Payment{}, Summary: summary}, nil
		},
		check: func(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error) {
			return verdict, nil
		},
	}
	return quotes, payments
}

func TestReconcilePopulatesSnapshot(t *testing.T) {
	quotes, payments := fullStubs(testQuote(42, models.StatusInProgress), openSummary(100000, 40000), openEligibility(false, false))
	c := NewController(quotes, payments)

	snap, err := c.Reconcile(context.Background(), 42)
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if snap.Quote == nil || snap.Quote.ID != 42 {
		t.Fatal("quote not populated")
	}
	if snap.QRInfo == nil || snap.QRInfo.ClientName != "ACME" {
		t.Error("qr info not populated")
	}
	if snap.Summary == nil || snap.Summary.RemainingAmount != 60000 {
		t.Errorf("summary = %+v, want remaining 600.00", snap.Summary)
	}
	if snap.Eligibility == nil {
		t.Error("eligibility not populated")
	}

	actions := snap.DeriveActions()
	if !actions.CanAcceptNewPayment || !actions.CanChangeStatus || !actions.CanCancel || !actions.CanDeletePayments {
		t.Errorf("actions = %+v, want all affordances open", actions)
	}
	if actions.DeliveryBadge != BadgeNotReady {
		t.Errorf("badge = %s, want NOT_READY", actions.DeliveryBadge)
	}
}

func TestReconcileRejectsBadID(t *testing.T) {
	c := NewController(&quoteStub{}, &paymentStub{})
	for _, id := range []int64{0, -5} {
		if _, err := c.Reconcile(context.Background(), id); !IsValidation(err) {
			t.Errorf("Reconcile(%d) error = %v, want validation error", id, err)
		}
	}
}

func TestReconcileQuoteFailureClearsState(t *testing.T) {
	quotes, payments := fullStubs(testQuote(42, models.StatusCreated), openSummary(100000, 0), openEligibility(false, false))
	c := NewController(quotes, payments)
	if _, err := c.Reconcile(context.Background(), 42); err != nil {
		t.Fatalf("seed Reconcile error: %v", err)
	}

	quotes.get = func(ctx context.Context, id int64) (*models.Quote, error) {
		return nil, &upstream.APIError{StatusCode: 404, Message: "Quote not found"}
	}
	if _, err := c.Reconcile(context.Background(), 43); !upstream.IsNotFound(err) {
		t.Fatalf("Reconcile error = %v, want 404", err)
	}

	snap, _ := c.Snapshot()
	if snap.Quote != nil || snap.Summary != nil || snap.Eligibility != nil {
		t.Errorf("state not cleared after mandatory fetch failure: %+v", snap)
	}
	if snap.CanAcceptNewPayment() || snap.CanChangeStatus() {
		t.Error("predicates should be closed on empty snapshot")
	}
}

func TestReconcileDegradesIndependently(t *testing.T) {
	t.Run("payments fetch fails", func(t *testing.T) {
		quotes, payments := fullStubs(testQuote(1, models.StatusAccepted), nil, openEligibility(false, true))
		payments.byQuote = func(ctx context.Context, quoteID int64) (*models.QuotePaymentsResponse, error) {
			return nil, errors.New("timeout")
		}
		c := NewController(quotes, payments)

		snap, err := c.Reconcile(context.Background(), 1)
		if err != nil {
			t.Fatalf("Reconcile error: %v", err)
		}
		if snap.Quote == nil {
			t.Fatal("quote should survive a payments failure")
		}
		if len(snap.Payments) != 0 || snap.Summary != nil {
			t.Errorf("payments = %v summary = %v, want empty and nil", snap.Payments, snap.Summary)
		}
		if snap.Eligibility == nil {
			t.Error("eligibility should survive a payments failure")
		}
		if snap.CanAcceptNewPayment() {
			t.Error("missing summary must close the new-payment affordance")
		}
	})

	t.Run("delivery check fails", func(t *testing.T) {
		quotes, payments := fullStubs(testQuote(1, models.StatusAccepted), openSummary(100000, 0), nil)
		payments.check = func(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error) {
			return nil, errors.New("timeout")
		}
		c := NewController(quotes, payments)

		snap, err := c.Reconcile(context.Background(), 1)
		if err != nil {
			t.Fatalf("Reconcile error: %v", err)
		}
		if snap.Summary == nil {
			t.Error("summary should survive a delivery-check failure")
		}
		if snap.Eligibility != nil {
			t.Error("eligibility should be nil after failure")
		}
		if snap.Badge() != BadgeNotReady {
			t.Errorf("badge = %s, want NOT_READY when verdict is missing", snap.Badge())
		}
		if snap.CanAcceptNewPayment() {
			t.Error("missing verdict must close the new-payment affordance")
		}
	})

	t.Run("qr fetch fails", func(t *testing.T) {
		quotes, payments := fullStubs(testQuote(1, models.StatusAccepted), openSummary(100000, 0), openEligibility(false, false))
		quotes.qr = func(ctx context.Context, id int64) (*models.QuoteQRInfo, error) {
			return nil, errors.New("no qr record")
		}
		c := NewController(quotes, payments)

		snap, err := c.Reconcile(context.Background(), 1)
		if err != nil {
			t.Fatalf("Reconcile error: %v", err)
		}
		if snap.QRInfo != nil {
			t.Error("qr info should be nil after failure")
		}
		if snap.Quote == nil || snap.Summary == nil {
			t.Error("quote and summary should survive a qr failure")
		}
	})
}

func TestReconcileSupersededByNewerRequest(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	quotes := &quoteStub{
		get: func(ctx context.Context, id int64) (*models.Quote, error) {
			if id == 1 {
				close(firstStarted)
				<-release
			}
			return testQuote(id, models.StatusCreated), nil
		},
		qr: func(ctx context.Context, id int64) (*models.QuoteQRInfo, error) {
			return nil, errors.New("skip")
		},
	}
	payments := &paymentStub{
		byQuote: func(ctx context.Context, quoteID int64) (*models.QuotePaymentsResponse, error) {
			return &models.QuotePaymentsResponse{Payments: []models.Payment{}, Summary: openSummary(100000, 0)}, nil
		},
		check: func(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error) {
			return openEligibility(false, false), nil
		},
	}
	c := NewController(quotes, payments)

	firstDone := make(chan error, 1)
	go func() {
		_, err := c.Reconcile(context.Background(), 1)
		firstDone <- err
	}()
	<-firstStarted

	// A newer reconciliation lands while the first is still in flight.
	if _, err := c.Reconcile(context.Background(), 2); err != nil {
		t.Fatalf("second Reconcile error: %v", err)
	}

	close(release)
	if err := <-firstDone; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("first Reconcile error = %v, want ErrSuperseded", err)
	}

	snap, quoteID := c.Snapshot()
	if quoteID != 2 || snap.Quote == nil || snap.Quote.ID != 2 {
		t.Errorf("visible state belongs to quote %d, want 2", quoteID)
	}
}

func TestChangeStatus(t *testing.T) {
	quote := testQuote(5, models.StatusFinished)
	quotes, payments := fullStubs(quote, openSummary(100000, 100000), openEligibility(false, true))

	var sentStatus models.QuoteStatus
	quotes.update = func(ctx context.Context, id int64, status models.QuoteStatus) error {
		sentStatus = status
		return nil
	}
	// Eligibility flips once the backend records the delivery.
	payments.check = func(ctx context.Context, quoteID int64) (*models.DeliveryEligibility, error) {
		if sentStatus == models.StatusDelivered {
			return openEligibility(true, false), nil
		}
		return openEligibility(false, true), nil
	}

	c := NewController(quotes, payments)
	if _, err := c.Reconcile(context.Background(), 5); err != nil {
		t.Fatalf("seed Reconcile error: %v", err)
	}

	snap, err := c.ChangeStatus(context.Background(), 5, models.StatusDelivered)
	if err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}
	if sentStatus != models.StatusDelivered {
		t.Errorf("upstream got status %s, want DELIVERED", sentStatus)
	}
	if snap.Quote.Status != models.StatusDelivered {
		t.Errorf("local status = %s, want DELIVERED", snap.Quote.Status)
	}
	if snap.Eligibility == nil || !snap.Eligibility.IsAlreadyDelivered {
		t.Error("refresh should have replaced the eligibility verdict")
	}
	if snap.Badge() != BadgeAlreadyDelivered {
		t.Errorf("badge = %s, want ALREADY_DELIVERED", snap.Badge())
	}
	if snap.CanDeletePayments() {
		t.Error("delivered orders must refuse payment deletion")
	}
}

func TestChangeStatusUpstreamFailureLeavesStateUntouched(t *testing.T) {
	quote := testQuote(5, models.StatusInProgress)
	quotes, payments := fullStubs(quote, openSummary(100000, 0), openEligibility(false, false))
	quotes.update = func(ctx context.Context, id int64, status models.QuoteStatus) error {
		return &upstream.APIError{StatusCode: 400, Message: "Invalid status transition"}
	}

	c := NewController(quotes, payments)
	if _, err := c.Reconcile(context.Background(), 5); err != nil {
		t.Fatalf("seed Reconcile error: %v", err)
	}

	_, err := c.ChangeStatus(context.Background(), 5, models.StatusDelivered)
	if upstream.ServerMessage(err) != "Invalid status transition" {
		t.Fatalf("error = %v, want backend message passed through", err)
	}

	snap, _ := c.Snapshot()
	if snap.Quote.Status != models.StatusInProgress {
		t.Errorf("status = %s, want unchanged IN_PROGRESS", snap.Quote.Status)
	}
}

func TestChangeStatusGuards(t *testing.T) {
	quotes, payments := fullStubs(testQuote(5, models.StatusCancelled), openSummary(100000, 0), openEligibility(false, false))
	c := NewController(quotes, payments)
	if _, err := c.Reconcile(context.Background(), 5); err != nil {
		t.Fatalf("seed Reconcile error: %v", err)
	}

	if _, err := c.ChangeStatus(context.Background(), 5, models.StatusFinished); !IsValidation(err) {
		t.Errorf("cancelled quote: error = %v, want validation error", err)
	}
	if _, err := c.ChangeStatus(context.Background(), 5, models.QuoteStatus("SHIPPED")); !IsValidation(err) {
		t.Errorf("unknown status: error = %v, want validation error", err)
	}
	if _, err := c.ChangeStatus(context.Background(), 99, models.StatusFinished); !IsValidation(err) {
		t.Errorf("unselected quote: error = %v, want validation error", err)
	}
}

func TestCancel(t *testing.T) {
	quote := testQuote(5, models.StatusCreated)
	quotes, payments := fullStubs(quote, openSummary(100000, 0), openEligibility(false, false))

	var sentStatus models.QuoteStatus
	quotes.update = func(ctx context.Context, id int64, status models.QuoteStatus) error {
		sentStatus = status
		return nil
	}

	c := NewController(quotes, payments)
	if _, err := c.Reconcile(context.Background(), 5); err != nil {
		t.Fatalf("seed Reconcile error: %v", err)
	}

	if _, err := c.Cancel(context.Background(), 5, false); !IsValidation(err) {
		t.Fatalf("unconfirmed cancel: error = %v, want validation error", err)
	}
	if sentStatus != "" {
		t.Fatal("unconfirmed cancel must not reach the backend")
	}

	if _, err := c.Cancel(context.Background(), 5, true); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if sentStatus != models.StatusCancelled {
		t.Errorf("upstream got status %s, want CANCELLED", sentStatus)
	}
}

func TestCloseDiscardsInFlightWork(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	quotes := &quoteStub{
		get: func(ctx context.Context, id int64) (*models.Quote, error) {
			close(started)
			<-release
			return testQuote(id, models.StatusCreated), nil
		},
		qr: func(ctx context.Context, id int64) (*models.QuoteQRInfo, error) {
			return nil, errors.New("skip")
		},
	}
	c := NewController(quotes, &paymentStub{})

	done := make(chan error, 1)
	go func() {
		_, err := c.Reconcile(context.Background(), 1)
		done <- err
	}()
	<-started

	c.Close()
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Reconcile error = %v, want ErrSuperseded after Close", err)
	}
	snap, quoteID := c.Snapshot()
	if snap.Quote != nil || quoteID != 0 {
		t.Error("Close should leave the controller empty")
	}
}

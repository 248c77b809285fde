package reconcile

import (
	"testing"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

func TestCanAcceptNewPayment(t *testing.T) {
	base := func() Snapshot {
		return Snapshot{
			Quote:       testQuote(1, models.StatusInProgress),
			Summary:     openSummary(100000, 40000),
			Eligibility: openEligibility(false, false),
		}
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
		want   bool
	}{
		{name: "open order with balance", mutate: func(s *Snapshot) {}, want: true},
		{name: "no quote", mutate: func(s *Snapshot) { s.Quote = nil }, want: false},
		{name: "delivered", mutate: func(s *Snapshot) { s.Quote.Status = models.StatusDelivered }, want: false},
		{name: "cancelled", mutate: func(s *Snapshot) { s.Quote.Status = models.StatusCancelled }, want: false},
		{name: "missing summary", mutate: func(s *Snapshot) { s.Summary = nil }, want: false},
		{name: "fully paid", mutate: func(s *Snapshot) { s.Summary = openSummary(100000, 100000) }, want: false},
		{name: "missing verdict", mutate: func(s *Snapshot) { s.Eligibility = nil }, want: false},
		{name: "already delivered per verdict", mutate: func(s *Snapshot) { s.Eligibility = openEligibility(true, false) }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base()
			tt.mutate(&snap)
			if got := snap.CanAcceptNewPayment(); got != tt.want {
				t.Errorf("CanAcceptNewPayment() = %v, want %v", got, tt.want)
			}
			// Predicates are pure; asking twice gives the same answer.
			if snap.CanAcceptNewPayment() != tt.want {
				t.Error("predicate not stable across calls")
			}
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status        models.QuoteStatus
		canChange     bool
		canCancel     bool
		canDeletePays bool
	}{
		{models.StatusCreated, true, true, true},
		{models.StatusAccepted, true, true, true},
		{models.StatusInProgress, true, true, true},
		{models.StatusFinished, true, true, true},
		{models.StatusPaid, true, true, true},
		{models.StatusDelivered, true, true, false},
		{models.StatusCancelled, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			snap := Snapshot{Quote: testQuote(1, tt.status)}
			if got := snap.CanChangeStatus(); got != tt.canChange {
				t.Errorf("CanChangeStatus() = %v, want %v", got, tt.canChange)
			}
			if got := snap.CanCancel(); got != tt.canCancel {
				t.Errorf("CanCancel() = %v, want %v", got, tt.canCancel)
			}
			if got := snap.CanDeletePayments(); got != tt.canDeletePays {
				t.Errorf("CanDeletePayments() = %v, want %v", got, tt.canDeletePays)
			}
		})
	}

	empty := Snapshot{}
	if empty.CanChangeStatus() || empty.CanCancel() || empty.CanDeletePayments() {
		t.Error("empty snapshot must close every affordance")
	}
}

func TestBadgePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		eligibility *models.DeliveryEligibility
		want        DeliveryBadge
	}{
		{name: "no verdict", eligibility: nil, want: BadgeNotReady},
		{name: "not ready", eligibility: openEligibility(false, false), want: BadgeNotReady},
		{name: "ready", eligibility: openEligibility(false, true), want: BadgeReadyForDelivery},
		{name: "delivered wins over ready", eligibility: openEligibility(true, true), want: BadgeAlreadyDelivered},
		{name: "delivered", eligibility: openEligibility(true, false), want: BadgeAlreadyDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{Quote: testQuote(1, models.StatusFinished), Eligibility: tt.eligibility}
			if got := snap.Badge(); got != tt.want {
				t.Errorf("Badge() = %s, want %s", got, tt.want)
			}
		})
	}
}

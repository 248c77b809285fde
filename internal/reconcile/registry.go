package reconcile

import "sync"

// Registry hands out one controller per session, mirroring the one-page-one
// -controller ownership rule: nothing else mutates a session's view state.
type Registry struct {
	quotes   QuoteAPI
	payments PaymentAPI

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(quotes QuoteAPI, payments PaymentAPI) *Registry {
	return &Registry{
		quotes:      quotes,
		payments:    payments,
		controllers: make(map[string]*Controller),
	}
}

// For returns the session's controller, creating it on first use.
func (r *Registry) For(sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl, ok := r.controllers[sessionID]
	if !ok {
		ctrl = NewController(r.quotes, r.payments)
		r.controllers[sessionID] = ctrl
	}
	return ctrl
}

// Drop closes and forgets the session's controller. Wired to session logout
// so responses still in flight are discarded instead of applied.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	ctrl, ok := r.controllers[sessionID]
	delete(r.controllers, sessionID)
	r.mu.Unlock()
	if ok {
		ctrl.Close()
	}
}

package handlers

import (
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/health"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Check reports gateway liveness and backend reachability. A gateway with an
// unreachable backend still answers 200; "degraded" tells the probe enough.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Checker.CheckBasic())
}

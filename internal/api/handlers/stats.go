package handlers

import (
	"net/http"

	"github.com/expensetrackr/reconcile-backend/internal/api/dto"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// StatsHandler handles statistics HTTP requests.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{
		Base: NewBase(repo),
	}
}

// Get handles GET /api/stats - returns aggregate reconciliation statistics.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats(r.URL.Query().Get("user_id"))
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.StatsResponse{
		TotalRecords:       stats.TotalRecords,
		BankRecords:        stats.BankRecords,
		ReceiptRecords:     stats.ReceiptRecords,
		Reconciled:         stats.Reconciled,
		Unreconciled:       stats.Unreconciled,
		TotalAmount:        stats.TotalAmount,
		ReconciliationRate: stats.ReconciliationRate,
	})
}

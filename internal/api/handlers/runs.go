package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/expensetrackr/reconcile-backend/internal/api/dto"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// RunsHandler handles reconciliation run history HTTP requests.
type RunsHandler struct {
	*Base
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo storage.Repository) *RunsHandler {
	return &RunsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/runs - returns recent reconciliation runs.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := ParseIntParam(r, "limit", 20)

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:  make([]dto.ReconcileRunResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, toRunResponse(&run))
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/runs/{id} - returns a single run by ID.
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("run ID must be an integer"))
		return
	}

	run, err := h.repo.GetRun(runID)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("run"))
		return
	}

	h.WriteJSON(w, http.StatusOK, toRunResponse(run))
}

// toRunResponse converts a storage run to an API response.
func toRunResponse(run *storage.ReconcileRun) dto.ReconcileRunResponse {
	return dto.ReconcileRunResponse{
		ID:              run.ID,
		UserID:          run.UserID,
		StartedAt:       run.StartedAt,
		CompletedAt:     run.CompletedAt,
		ToleranceDays:   run.ToleranceDays,
		AmountTolerance: run.AmountTolerance,
		AutoMatch:       run.AutoMatch,
		Matches:         run.Matches,
		Committed:       run.Committed,
		Failed:          run.Failed,
		Status:          run.Status,
	}
}

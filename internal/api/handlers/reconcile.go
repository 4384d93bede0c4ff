package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/expensetrackr/reconcile-backend/internal/api/dto"
	"github.com/expensetrackr/reconcile-backend/internal/application/service"
)

// ReconcileHandler handles reconciliation HTTP requests.
type ReconcileHandler struct {
	*Base
	service       *service.ReconcileService
	defaultUserID string
}

// NewReconcileHandler creates a new reconciliation handler.
func NewReconcileHandler(svc *service.ReconcileService, defaultUserID string) *ReconcileHandler {
	return &ReconcileHandler{
		Base:          &Base{},
		service:       svc,
		defaultUserID: defaultUserID,
	}
}

// Trigger handles POST /api/reconcile - runs a reconciliation pass.
func (h *ReconcileHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	if req.UserID == "" {
		req.UserID = h.defaultUserID
	}

	result, err := h.service.Run(r.Context(), service.RunRequest{
		UserID:          req.UserID,
		ToleranceDays:   req.ToleranceDays,
		AmountTolerance: req.AmountTolerance,
		AutoMatch:       req.AutoMatchEnabled(),
	})
	if err != nil {
		h.WriteJSON(w, http.StatusInternalServerError, dto.RunError{
			Error:   "reconciliation run failed",
			Details: err.Error(),
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, toReconcileResponse(result))
}

// Status handles GET /api/reconcile/status - reports current state without
// running a new matching pass.
func (h *ReconcileHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = h.defaultUserID
	}

	report, err := h.service.Status(userID)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.StatusResponse{
		Success: true,
		Summary: dto.StatusSummaryResponse{
			TotalExpenses:        report.Summary.TotalExpenses,
			ReconciledExpenses:   report.Summary.ReconciledExpenses,
			UnreconciledExpenses: report.Summary.UnreconciledExpenses,
			ReconciliationRate:   report.Summary.ReconciliationRate,
		},
		Reconciled:   toRecordResponses(report.Reconciled),
		Unreconciled: toRecordResponses(report.Unreconciled),
	})
}

// toReconcileResponse converts a run result to the API response shape.
func toReconcileResponse(result *service.RunResult) dto.ReconcileResponse {
	summary := result.Summary

	matches := make([]dto.MatchResponse, 0, len(result.Matches))
	for _, match := range result.Matches {
		matches = append(matches, dto.MatchResponse{
			BankID:             match.BankID,
			ReceiptID:          match.ReceiptID,
			Confidence:         match.Confidence,
			Rationale:          match.Rationale,
			AmountDifference:   match.AmountDifference,
			DateDifferenceDays: match.DateDifferenceDays,
		})
	}

	return dto.ReconcileResponse{
		Success: true,
		Summary: dto.RunSummaryResponse{
			TotalBank:        summary.TotalBank,
			TotalReceipt:     summary.TotalReceipt,
			TotalMatches:     summary.TotalMatches,
			HighConfidence:   summary.HighConfidence,
			MediumConfidence: summary.MediumConfidence,
			LowConfidence:    summary.LowConfidence,
			UnmatchedBank:    summary.UnmatchedBank,
			UnmatchedReceipt: summary.UnmatchedReceipt,
			Committed:        summary.Committed,
			Failed:           summary.Failed,
			MatchRate:        summary.MatchRate,
		},
		Matches: matches,
		Unmatched: dto.UnmatchedResponse{
			Bank:    toRecordResponses(result.UnmatchedBank),
			Receipt: toRecordResponses(result.UnmatchedReceipt),
		},
		Message: runMessage(summary),
	}
}

// runMessage builds the human-readable one-liner for the trigger response.
func runMessage(summary service.Summary) string {
	msg := fmt.Sprintf("Matched %d of %d bank records", summary.TotalMatches, summary.TotalBank)
	if summary.Committed > 0 || summary.Failed > 0 {
		msg += fmt.Sprintf(" (%d auto-committed, %d failed)", summary.Committed, summary.Failed)
	}
	return msg
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/expensetrackr/reconcile-backend/internal/api/dto"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// Base provides shared functionality for all handlers.
type Base struct {
	repo storage.Repository
}

// NewBase creates a new base handler with the given repository.
func NewBase(repo storage.Repository) *Base {
	return &Base{repo: repo}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// toRecordResponse converts a storage record to an API response.
func toRecordResponse(record *storage.ExpenseRecord) dto.RecordResponse {
	response := dto.RecordResponse{
		ID:              record.ID,
		UserID:          record.UserID,
		Source:          string(record.Source),
		TransactionDate: record.TransactionDate.Format("2006-01-02"),
		Amount:          record.Amount,
		VendorText:      record.VendorText,
		Classification:  string(record.Classification),
	}

	if record.Reconciliation != nil {
		response.Reconciliation = &dto.ReconciliationResponse{
			MatchedID:  record.Reconciliation.MatchedID,
			Status:     record.Reconciliation.Status,
			Confidence: record.Reconciliation.Confidence,
			Rationale:  record.Reconciliation.Rationale,
			UpdatedAt:  record.Reconciliation.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}

	return response
}

// toRecordResponses converts a slice of storage records.
func toRecordResponses(records []*storage.ExpenseRecord) []dto.RecordResponse {
	responses := make([]dto.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}
	return responses
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/expensetrackr/reconcile-backend/internal/api/dto"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// RecordsHandler handles expense record HTTP requests.
type RecordsHandler struct {
	*Base
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(repo storage.Repository) *RecordsHandler {
	return &RecordsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/records - returns paginated list of records.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := storage.RecordFilters{
		UserID: r.URL.Query().Get("user_id"),
		Source: r.URL.Query().Get("source"),
		Status: r.URL.Query().Get("status"),
		Limit:  ParseIntParam(r, "limit", 50),
		Offset: ParseIntParam(r, "offset", 0),
	}

	result, err := h.repo.ListRecords(filters)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.RecordListResponse{
		Records:    toRecordResponses(result.Records),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /api/records/{id} - returns a single record by ID.
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("record ID is required"))
		return
	}

	record, err := h.repo.GetRecord(id)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	if record == nil {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("record"))
		return
	}

	h.WriteJSON(w, http.StatusOK, toRecordResponse(record))
}

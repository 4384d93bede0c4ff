package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ReconciliationResponse is the link carried by a reconciled record.
type ReconciliationResponse struct {
	MatchedID  string  `json:"matched_id"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
	UpdatedAt  string  `json:"updated_at"`
}

// RecordResponse represents an expense record in API responses.
type RecordResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"user_id"`
	Source          string                  `json:"source"`
	TransactionDate string                  `json:"transaction_date"`
	Amount          float64                 `json:"amount"`
	VendorText      string                  `json:"vendor_text"`
	Classification  string                  `json:"classification"`
	Reconciliation  *ReconciliationResponse `json:"reconciliation,omitempty"`
}

// RecordListResponse is returned when listing records.
type RecordListResponse struct {
	Records    []RecordResponse `json:"records"`
	TotalCount int              `json:"total_count"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

// MatchResponse represents one accepted pairing in API responses.
type MatchResponse struct {
	BankID             string  `json:"bank_id"`
	ReceiptID          string  `json:"receipt_id"`
	Confidence         float64 `json:"confidence"`
	Rationale          string  `json:"rationale"`
	AmountDifference   float64 `json:"amount_difference"`
	DateDifferenceDays int     `json:"date_difference_days"`
}

// RunSummaryResponse aggregates the outcome of one reconciliation run.
type RunSummaryResponse struct {
	TotalBank        int     `json:"total_bank"`
	TotalReceipt     int     `json:"total_receipt"`
	TotalMatches     int     `json:"total_matches"`
	HighConfidence   int     `json:"high_confidence"`
	MediumConfidence int     `json:"medium_confidence"`
	LowConfidence    int     `json:"low_confidence"`
	UnmatchedBank    int     `json:"unmatched_bank"`
	UnmatchedReceipt int     `json:"unmatched_receipt"`
	Committed        int     `json:"committed"`
	Failed           int     `json:"failed"`
	MatchRate        float64 `json:"match_rate"`
}

// UnmatchedResponse lists the leftover candidates of a run.
type UnmatchedResponse struct {
	Bank    []RecordResponse `json:"bank"`
	Receipt []RecordResponse `json:"receipt"`
}

// ReconcileResponse is returned by the reconciliation trigger endpoint.
type ReconcileResponse struct {
	Success   bool               `json:"success"`
	Summary   RunSummaryResponse `json:"summary"`
	Matches   []MatchResponse    `json:"matches"`
	Unmatched UnmatchedResponse  `json:"unmatched"`
	Message   string             `json:"message"`
}

// StatusSummaryResponse aggregates current reconciliation state.
type StatusSummaryResponse struct {
	TotalExpenses        int     `json:"total_expenses"`
	ReconciledExpenses   int     `json:"reconciled_expenses"`
	UnreconciledExpenses int     `json:"unreconciled_expenses"`
	ReconciliationRate   float64 `json:"reconciliation_rate"`
}

// StatusResponse is returned by the status endpoint.
type StatusResponse struct {
	Success      bool                  `json:"success"`
	Summary      StatusSummaryResponse `json:"summary"`
	Reconciled   []RecordResponse      `json:"reconciled"`
	Unreconciled []RecordResponse      `json:"unreconciled"`
}

// ReconcileRunResponse represents a historical run in API responses.
type ReconcileRunResponse struct {
	ID              int64   `json:"id"`
	UserID          string  `json:"user_id"`
	StartedAt       string  `json:"started_at"`
	CompletedAt     string  `json:"completed_at,omitempty"`
	ToleranceDays   int     `json:"tolerance_days"`
	AmountTolerance float64 `json:"amount_tolerance"`
	AutoMatch       bool    `json:"auto_match"`
	Matches         int     `json:"matches"`
	Committed       int     `json:"committed"`
	Failed          int     `json:"failed"`
	Status          string  `json:"status"`
}

// RunListResponse is returned when listing reconciliation runs.
type RunListResponse struct {
	Runs  []ReconcileRunResponse `json:"runs"`
	Count int                    `json:"count"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	TotalRecords       int     `json:"total_records"`
	BankRecords        int     `json:"bank_records"`
	ReceiptRecords     int     `json:"receipt_records"`
	Reconciled         int     `json:"reconciled"`
	Unreconciled       int     `json:"unreconciled"`
	TotalAmount        float64 `json:"total_amount"`
	ReconciliationRate float64 `json:"reconciliation_rate"`
}

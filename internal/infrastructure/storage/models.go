package storage

import (
	"time"
)

// SourceKind identifies which ingestion pipeline produced a record.
type SourceKind string

const (
	// SourceBank marks records ingested from bank/card statements.
	SourceBank SourceKind = "bank"
	// SourceReceipt marks records ingested from receipts and documents.
	SourceReceipt SourceKind = "receipt"
)

// ClassificationStatus is the human review state of a record.
type ClassificationStatus string

const (
	ClassificationPending  ClassificationStatus = "pending"
	ClassificationApproved ClassificationStatus = "approved"
	ClassificationRejected ClassificationStatus = "rejected"
)

// ReconciliationMatched is the only status a written link carries today.
const ReconciliationMatched = "matched"

// Reconciliation is the link written onto both sides of a committed match.
type Reconciliation struct {
	MatchedID  string    `json:"matched_id"`
	Status     string    `json:"status"`
	Confidence float64   `json:"confidence"`
	Rationale  string    `json:"rationale"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExpenseRecord is the unit of matching. Records are created by the
// ingestion subsystem; the reconciliation engine only reads them and
// writes the Reconciliation field.
type ExpenseRecord struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	Source          SourceKind           `json:"source"`
	TransactionDate time.Time            `json:"transaction_date"`
	Amount          float64              `json:"amount"`
	VendorText      string               `json:"vendor_text"`
	Classification  ClassificationStatus `json:"classification"`
	Reconciliation  *Reconciliation      `json:"reconciliation,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// IsReconciled reports whether the record already carries a link from a
// prior run. Linked records are excluded from candidacy.
func (r *ExpenseRecord) IsReconciled() bool {
	return r.Reconciliation != nil && r.Reconciliation.MatchedID != ""
}

// ReconcileRun is a historical record of one reconciliation run.
type ReconcileRun struct {
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

// Stats contains aggregate reconciliation statistics.
type Stats struct {
	TotalRecords       int     `json:"total_records"`
	BankRecords        int     `json:"bank_records"`
	ReceiptRecords     int     `json:"receipt_records"`
	Reconciled         int     `json:"reconciled"`
	Unreconciled       int     `json:"unreconciled"`
	TotalAmount        float64 `json:"total_amount"`
	ReconciliationRate float64 `json:"reconciliation_rate"`
}

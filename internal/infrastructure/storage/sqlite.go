package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for expense records.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRecord saves or updates an expense record. A record without an ID
// is assigned one.
func (s *Storage) SaveRecord(record *ExpenseRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	reconciliationJSON, err := marshalReconciliation(record.Reconciliation)
	if err != nil {
		return fmt.Errorf("failed to encode reconciliation for record %s: %w", record.ID, err)
	}

	query := `
	INSERT OR REPLACE INTO expense_records
	(id, user_id, source, transaction_date, amount, vendor_text,
	 classification, reconciliation_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP), CURRENT_TIMESTAMP)
	`

	createdAt := any(record.CreatedAt)
	if record.CreatedAt.IsZero() {
		createdAt = nil
	}

	_, err = s.db.Exec(query,
		record.ID,
		record.UserID,
		string(record.Source),
		record.TransactionDate,
		record.Amount,
		record.VendorText,
		string(record.Classification),
		reconciliationJSON,
		createdAt,
	)

	return err
}

// GetRecord retrieves a record by ID. Returns nil if not found.
func (s *Storage) GetRecord(id string) (*ExpenseRecord, error) {
	query := recordSelect + ` WHERE id = ?`

	record, err := scanRecord(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRecordsByUser returns all records for a user, oldest first.
// Insertion order is significant: the matcher is order-dependent.
func (s *Storage) ListRecordsByUser(userID string) ([]*ExpenseRecord, error) {
	query := recordSelect + ` WHERE user_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*ExpenseRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListRecords returns records matching the given filters with pagination
func (s *Storage) ListRecords(filters RecordFilters) (*RecordListResult, error) {
	where, args := buildRecordWhere(filters)

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM expense_records` + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, err
	}

	query := recordSelect + where + ` ORDER BY transaction_date DESC, id ASC LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, limit, filters.Offset)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]*ExpenseRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &RecordListResult{
		Records:    records,
		TotalCount: totalCount,
		Limit:      limit,
		Offset:     filters.Offset,
	}, nil
}

// UpdateReconciliation writes the reconciliation link onto a record.
// The update timestamp is server-assigned. Passing nil clears the link.
func (s *Storage) UpdateReconciliation(id string, rec *Reconciliation) error {
	if rec != nil && rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	reconciliationJSON, err := marshalReconciliation(rec)
	if err != nil {
		return fmt.Errorf("failed to encode reconciliation for record %s: %w", id, err)
	}

	query := `
		UPDATE expense_records
		SET reconciliation_json = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := s.db.Exec(query, reconciliationJSON, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("record %s not found", id)
	}
	return nil
}

// GetStats returns aggregate statistics, optionally scoped to a user
func (s *Storage) GetStats(userID string) (*Stats, error) {
	stats := &Stats{}

	query := `
	SELECT
		COUNT(*) as total,
		COUNT(CASE WHEN source = 'bank' THEN 1 END) as bank,
		COUNT(CASE WHEN source = 'receipt' THEN 1 END) as receipt,
		COUNT(CASE WHEN reconciliation_json IS NOT NULL AND reconciliation_json != '' THEN 1 END) as reconciled,
		COALESCE(SUM(amount), 0) as total_amount
	FROM expense_records
	`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}

	err := s.db.QueryRow(query, args...).Scan(
		&stats.TotalRecords,
		&stats.BankRecords,
		&stats.ReceiptRecords,
		&stats.Reconciled,
		&stats.TotalAmount,
	)
	if err != nil {
		return nil, err
	}

	stats.Unreconciled = stats.TotalRecords - stats.Reconciled
	if stats.TotalRecords > 0 {
		stats.ReconciliationRate = float64(stats.Reconciled) / float64(stats.TotalRecords) * 100
	}

	return stats, nil
}

// StartRun records the start of a reconciliation run
func (s *Storage) StartRun(userID string, toleranceDays int, amountTolerance float64, autoMatch bool) (int64, error) {
	query := `
		INSERT INTO reconcile_runs (user_id, tolerance_days, amount_tolerance, auto_match, status)
		VALUES (?, ?, ?, ?, 'running')
	`

	result, err := s.db.Exec(query, userID, toleranceDays, amountTolerance, autoMatch)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// CompleteRun records the completion of a reconciliation run
func (s *Storage) CompleteRun(runID int64, matches, committed, failed int) error {
	query := `
		UPDATE reconcile_runs
		SET completed_at = CURRENT_TIMESTAMP,
		    matches = ?,
		    committed = ?,
		    failed = ?,
		    status = CASE WHEN ? > 0 THEN 'completed_with_errors' ELSE 'completed' END
		WHERE id = ?
	`

	_, err := s.db.Exec(query, matches, committed, failed, failed, runID)
	return err
}

// ListRuns returns recent reconciliation runs, newest first
func (s *Storage) ListRuns(limit int) ([]ReconcileRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := runSelect + ` ORDER BY id DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []ReconcileRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetRun retrieves a run by ID. Returns nil if not found.
func (s *Storage) GetRun(runID int64) (*ReconcileRun, error) {
	query := runSelect + ` WHERE id = ?`

	run, err := scanRun(s.db.QueryRow(query, runID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

const recordSelect = `
	SELECT id, user_id, source, transaction_date, amount, vendor_text,
	       classification, reconciliation_json, created_at, updated_at
	FROM expense_records`

const runSelect = `
	SELECT id, user_id, started_at, COALESCE(completed_at, ''), tolerance_days,
	       amount_tolerance, auto_match, matches, committed, failed, status
	FROM reconcile_runs`

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*ExpenseRecord, error) {
	record := &ExpenseRecord{}
	var source, classification string
	var reconciliationJSON sql.NullString

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&source,
		&record.TransactionDate,
		&record.Amount,
		&record.VendorText,
		&classification,
		&reconciliationJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Source = SourceKind(source)
	record.Classification = ClassificationStatus(classification)

	if reconciliationJSON.Valid && reconciliationJSON.String != "" {
		var rec Reconciliation
		if err := json.Unmarshal([]byte(reconciliationJSON.String), &rec); err == nil {
			record.Reconciliation = &rec
		}
	}

	return record, nil
}

func scanRun(row scanner) (*ReconcileRun, error) {
	run := &ReconcileRun{}
	err := row.Scan(
		&run.ID,
		&run.UserID,
		&run.StartedAt,
		&run.CompletedAt,
		&run.ToleranceDays,
		&run.AmountTolerance,
		&run.AutoMatch,
		&run.Matches,
		&run.Committed,
		&run.Failed,
		&run.Status,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func marshalReconciliation(rec *Reconciliation) (any, error) {
	if rec == nil {
		return nil, nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func buildRecordWhere(filters RecordFilters) (string, []any) {
	var clauses []string
	var args []any

	if filters.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filters.UserID)
	}
	if filters.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, filters.Source)
	}
	if filters.Status != "" {
		clauses = append(clauses, "classification = ?")
		args = append(args, filters.Status)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

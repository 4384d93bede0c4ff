package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockRepository is an in-memory implementation of Repository for testing.
// Records keep their insertion order, which matters for the order-dependent
// matcher.
type MockRepository struct {
	records map[string]*ExpenseRecord
	order   []string
	runs    map[int64]*ReconcileRun
	nextRun int64

	// Hooks for test assertions
	SaveRecordCalled          bool
	LastSavedRecord           *ExpenseRecord
	UpdateReconciliationCalls []string
	StartRunCalled            bool
	CompleteRunCalled         bool

	// Error injection for testing error paths
	SaveRecordErr           error
	ListRecordsErr          error
	UpdateReconciliationErr error
	StartRunErr             error

	// Per-record error injection for partial commit failures
	FailUpdateFor map[string]error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		records:       make(map[string]*ExpenseRecord),
		runs:          make(map[int64]*ReconcileRun),
		nextRun:       1,
		FailUpdateFor: make(map[string]error),
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// AddRecord seeds a record without touching assertion hooks
func (m *MockRepository) AddRecord(record *ExpenseRecord) {
	copied := *record
	if _, exists := m.records[record.ID]; !exists {
		m.order = append(m.order, record.ID)
	}
	m.records[record.ID] = &copied
}

// SaveRecord saves a record to the in-memory map
func (m *MockRepository) SaveRecord(record *ExpenseRecord) error {
	m.SaveRecordCalled = true
	m.LastSavedRecord = record
	if m.SaveRecordErr != nil {
		return m.SaveRecordErr
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	m.AddRecord(record)
	return nil
}

// GetRecord retrieves a record from the in-memory map
func (m *MockRepository) GetRecord(id string) (*ExpenseRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return record, nil
}

// ListRecordsByUser returns records for a user in insertion order
func (m *MockRepository) ListRecordsByUser(userID string) ([]*ExpenseRecord, error) {
	if m.ListRecordsErr != nil {
		return nil, m.ListRecordsErr
	}

	var records []*ExpenseRecord
	for _, id := range m.order {
		if record := m.records[id]; record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

// ListRecords returns records matching the given filters with pagination
func (m *MockRepository) ListRecords(filters RecordFilters) (*RecordListResult, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	var matched []*ExpenseRecord
	for _, id := range m.order {
		record := m.records[id]
		if filters.UserID != "" && record.UserID != filters.UserID {
			continue
		}
		if filters.Source != "" && string(record.Source) != filters.Source {
			continue
		}
		if filters.Status != "" && string(record.Classification) != filters.Status {
			continue
		}
		matched = append(matched, record)
	}

	total := len(matched)
	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &RecordListResult{
		Records:    append([]*ExpenseRecord{}, matched[start:end]...),
		TotalCount: total,
		Limit:      limit,
		Offset:     filters.Offset,
	}, nil
}

// UpdateReconciliation writes the reconciliation link onto a record
func (m *MockRepository) UpdateReconciliation(id string, rec *Reconciliation) error {
	m.UpdateReconciliationCalls = append(m.UpdateReconciliationCalls, id)

	if m.UpdateReconciliationErr != nil {
		return m.UpdateReconciliationErr
	}
	if err, ok := m.FailUpdateFor[id]; ok {
		return err
	}

	record, ok := m.records[id]
	if !ok {
		return fmt.Errorf("record %s not found", id)
	}

	if rec == nil {
		record.Reconciliation = nil
	} else {
		copied := *rec
		copied.UpdatedAt = time.Now().UTC()
		record.Reconciliation = &copied
	}
	record.UpdatedAt = time.Now().UTC()
	return nil
}

// GetStats returns statistics computed over the in-memory records
func (m *MockRepository) GetStats(userID string) (*Stats, error) {
	stats := &Stats{}

	for _, id := range m.order {
		record := m.records[id]
		if userID != "" && record.UserID != userID {
			continue
		}
		stats.TotalRecords++
		stats.TotalAmount += record.Amount
		switch record.Source {
		case SourceBank:
			stats.BankRecords++
		case SourceReceipt:
			stats.ReceiptRecords++
		}
		if record.IsReconciled() {
			stats.Reconciled++
		}
	}

	stats.Unreconciled = stats.TotalRecords - stats.Reconciled
	if stats.TotalRecords > 0 {
		stats.ReconciliationRate = float64(stats.Reconciled) / float64(stats.TotalRecords) * 100
	}
	return stats, nil
}

// StartRun creates a new run and returns its ID
func (m *MockRepository) StartRun(userID string, toleranceDays int, amountTolerance float64, autoMatch bool) (int64, error) {
	m.StartRunCalled = true
	if m.StartRunErr != nil {
		return 0, m.StartRunErr
	}

	id := m.nextRun
	m.nextRun++
	m.runs[id] = &ReconcileRun{
		ID:              id,
		UserID:          userID,
		StartedAt:       time.Now().UTC().Format(time.RFC3339),
		ToleranceDays:   toleranceDays,
		AmountTolerance: amountTolerance,
		AutoMatch:       autoMatch,
		Status:          "running",
	}
	return id, nil
}

// CompleteRun marks a run as completed
func (m *MockRepository) CompleteRun(runID int64, matches, committed, failed int) error {
	m.CompleteRunCalled = true

	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("run %d not found", runID)
	}
	run.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	run.Matches = matches
	run.Committed = committed
	run.Failed = failed
	if failed > 0 {
		run.Status = "completed_with_errors"
	} else {
		run.Status = "completed"
	}
	return nil
}

// ListRuns returns recent runs, newest first
func (m *MockRepository) ListRuns(limit int) ([]ReconcileRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []ReconcileRun
	for id := m.nextRun - 1; id >= 1 && len(runs) < limit; id-- {
		if run, ok := m.runs[id]; ok {
			runs = append(runs, *run)
		}
	}
	return runs, nil
}

// GetRun retrieves a run by ID
func (m *MockRepository) GetRun(runID int64) (*ReconcileRun, error) {
	run, ok := m.runs[runID]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	RecordRepository
	RunRepository
	Close() error
}

// RecordRepository handles expense record operations
type RecordRepository interface {
	// SaveRecord saves or updates an expense record
	SaveRecord(record *ExpenseRecord) error

	// GetRecord retrieves a record by ID; returns nil if not found
	GetRecord(id string) (*ExpenseRecord, error)

	// ListRecordsByUser returns all records for a user in insertion order
	ListRecordsByUser(userID string) ([]*ExpenseRecord, error)

	// ListRecords returns records matching the given filters with pagination
	ListRecords(filters RecordFilters) (*RecordListResult, error)

	// UpdateReconciliation writes the reconciliation link onto a record,
	// assigning a fresh update timestamp
	UpdateReconciliation(id string, rec *Reconciliation) error

	// GetStats returns aggregate statistics for a user (empty = all users)
	GetStats(userID string) (*Stats, error)
}

// RecordFilters defines filters for listing records
type RecordFilters struct {
	UserID string // Filter by user (empty = all)
	Source string // Filter by source kind (empty = all)
	Status string // Filter by classification status (empty = all)
	Limit  int    // Max results (0 = default 50)
	Offset int    // Pagination offset
}

// RecordListResult contains paginated record results
type RecordListResult struct {
	Records    []*ExpenseRecord `json:"records"`
	TotalCount int              `json:"total_count"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

// RunRepository handles reconciliation run tracking
type RunRepository interface {
	// StartRun records the start of a reconciliation run and returns the run ID
	StartRun(userID string, toleranceDays int, amountTolerance float64, autoMatch bool) (int64, error)

	// CompleteRun records the completion of a reconciliation run
	CompleteRun(runID int64, matches, committed, failed int) error

	// ListRuns returns recent reconciliation runs
	ListRuns(limit int) ([]ReconcileRun, error)

	// GetRun retrieves a run by ID; returns nil if not found
	GetRun(runID int64) (*ReconcileRun, error)
}

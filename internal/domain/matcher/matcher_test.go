package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

var testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// Helper to create a test record
func makeRecord(id string, source storage.SourceKind, date time.Time, amount float64, vendor string) *storage.ExpenseRecord {
	return &storage.ExpenseRecord{
		ID:              id,
		UserID:          "user1",
		Source:          source,
		TransactionDate: date,
		Amount:          amount,
		VendorText:      vendor,
		Classification:  storage.ClassificationPending,
	}
}

func TestMatcher_ExactMatch(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	bank := []*storage.ExpenseRecord{
		makeRecord("b1", storage.SourceBank, testDate, 45.67, "Starbucks"),
	}
	receipts := []*storage.ExpenseRecord{
		makeRecord("r1", storage.SourceReceipt, testDate, 45.67, "Starbucks"),
	}

	outcome := m.Match(bank, receipts)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, "b1", outcome.Matches[0].BankID)
	assert.Equal(t, "r1", outcome.Matches[0].ReceiptID)
	assert.InDelta(t, 1.0, outcome.Matches[0].Confidence, 0.0001)
	assert.InDelta(t, 0.0, outcome.Matches[0].AmountDifference, 0.0001)
	assert.Equal(t, 0, outcome.Matches[0].DateDifferenceDays)
	assert.Empty(t, outcome.UnmatchedBank)
	assert.Empty(t, outcome.UnmatchedReceipt)
}

// The acceptance floor is strict: a score of exactly 0.7 is not a match.
func TestMatcher_FloorIsStrict(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	// Exact amount (0.4) + same date (0.3) with no vendor signal lands
	// exactly on the floor.
	bank := []*storage.ExpenseRecord{
		makeRecord("b1", storage.SourceBank, testDate, 45.67, ""),
	}
	receipts := []*storage.ExpenseRecord{
		makeRecord("r1", storage.SourceReceipt, testDate, 45.67, "Starbucks"),
	}

	outcome := m.Match(bank, receipts)

	assert.Empty(t, outcome.Matches)
	assert.Len(t, outcome.UnmatchedBank, 1)
	assert.Len(t, outcome.UnmatchedReceipt, 1)
}

func TestMatcher_ClaimedReceiptLeavesPool(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	// Two bank records compete for one receipt; the first in order wins.
	bank := []*storage.ExpenseRecord{
		makeRecord("b1", storage.SourceBank, testDate, 45.67, "Starbucks"),
		makeRecord("b2", storage.SourceBank, testDate, 45.67, "Starbucks"),
	}
	receipts := []*storage.ExpenseRecord{
		makeRecord("r1", storage.SourceReceipt, testDate, 45.67, "Starbucks"),
	}

	outcome := m.Match(bank, receipts)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, "b1", outcome.Matches[0].BankID)
	require.Len(t, outcome.UnmatchedBank, 1)
	assert.Equal(t, "b2", outcome.UnmatchedBank[0].ID)
}

func TestMatcher_PicksBestScoringReceipt(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	bank := []*storage.ExpenseRecord{
		makeRecord("b1", storage.SourceBank, testDate, 45.67, "Starbucks"),
	}
	receipts := []*storage.ExpenseRecord{
		makeRecord("r1", storage.SourceReceipt, testDate.AddDate(0, 0, 2), 45.67, "Starbucks"),
		makeRecord("r2", storage.SourceReceipt, testDate, 45.67, "Starbucks"),
	}

	outcome := m.Match(bank, receipts)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, "r2", outcome.Matches[0].ReceiptID)
	require.Len(t, outcome.UnmatchedReceipt, 1)
	assert.Equal(t, "r1", outcome.UnmatchedReceipt[0].ID)
}

// Equal scores keep the first receipt encountered.
func TestMatcher_TieKeepsFirstEncountered(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	bank := []*storage.ExpenseRecord{
		makeRecord("b1", storage.SourceBank, testDate, 45.67, "Starbucks"),
	}
	receipts := []*storage.ExpenseRecord{
		makeRecord("r1", storage.SourceReceipt, testDate, 45.67, "Starbucks"),
		makeRecord("r2", storage.SourceReceipt, testDate, 45.67, "Starbucks"),
	}

	outcome := m.Match(bank, receipts)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, "r1", outcome.Matches[0].ReceiptID)
}

// Bank input order decides which record claims a contested receipt, so
// reordering the bank side can change the outcome.
func TestMatcher_OrderDependence(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	strong := makeRecord("strong", storage.SourceBank, testDate, 45.67, "Starbucks")
	weak := makeRecord("weak", storage.SourceBank, testDate.AddDate(0, 0, 1), 45.67, "Starbucks")
	receipts := []*storage.ExpenseRecord{
		makeRecord("r1", storage.SourceReceipt, testDate, 45.67, "Starbucks"),
	}

	outcome := m.Match([]*storage.ExpenseRecord{weak, strong}, receipts)

	// The weaker candidate still clears the floor and, going first, takes
	// the receipt out from under the stronger one.
	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, "weak", outcome.Matches[0].BankID)
	assert.Equal(t, "strong", outcome.UnmatchedBank[0].ID)
}

func TestMatcher_EmptyInputs(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	outcome := m.Match(nil, nil)

	assert.NotNil(t, outcome.Matches)
	assert.Empty(t, outcome.Matches)
	assert.Empty(t, outcome.UnmatchedBank)
	assert.Empty(t, outcome.UnmatchedReceipt)
}

func TestMatcher_NoReceipts(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	bank := []*storage.ExpenseRecord{
		makeRecord("b1", storage.SourceBank, testDate, 45.67, "Starbucks"),
	}

	outcome := m.Match(bank, nil)

	assert.Empty(t, outcome.Matches)
	assert.Len(t, outcome.UnmatchedBank, 1)
}

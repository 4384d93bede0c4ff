package scorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// Helper to create a test record
func makeRecord(source storage.SourceKind, date time.Time, amount float64, vendor string) *storage.ExpenseRecord {
	return &storage.ExpenseRecord{
		ID:              "test",
		UserID:          "user1",
		Source:          source,
		TransactionDate: date,
		Amount:          amount,
		VendorText:      vendor,
		Classification:  storage.ClassificationPending,
	}
}

var testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestScore_PerfectMatch(t *testing.T) {
	bank := makeRecord(storage.SourceBank, testDate, 45.67, "Starbucks")
	receipt := makeRecord(storage.SourceReceipt, testDate, 45.67, "Starbucks")

	result := Score(bank, receipt, DefaultTolerances())

	assert.InDelta(t, 1.0, result.Value, 0.0001)
	assert.Contains(t, result.Rationale, "exact amount match")
	assert.Contains(t, result.Rationale, "same date")
	assert.Contains(t, result.Rationale, "vendor match")
}

func TestScore_AmountWithinTolerance(t *testing.T) {
	bank := makeRecord(storage.SourceBank, testDate, 100.00, "")
	receipt := makeRecord(storage.SourceReceipt, testDate, 100.01, "")

	result := Score(bank, receipt, DefaultTolerances())

	// 0.4 amount + 0.3 date, no vendor signal
	assert.InDelta(t, 0.7, result.Value, 0.0001)
	assert.Contains(t, result.Rationale, "exact amount match")
}

func TestScore_CloseAmount(t *testing.T) {
	t.Run("within 2 percent of the larger amount", func(t *testing.T) {
		bank := makeRecord(storage.SourceBank, testDate, 100.00, "")
		receipt := makeRecord(storage.SourceReceipt, testDate, 101.50, "")

		result := Score(bank, receipt, DefaultTolerances())

		// 0.3 close amount + 0.3 date
		assert.InDelta(t, 0.6, result.Value, 0.0001)
		assert.Contains(t, result.Rationale, "close amount match")
	})

	t.Run("one currency unit floor for small amounts", func(t *testing.T) {
		// 2% of 10.90 is 0.218, but the band floors at 1.00
		bank := makeRecord(storage.SourceBank, testDate, 10.00, "")
		receipt := makeRecord(storage.SourceReceipt, testDate, 10.90, "")

		result := Score(bank, receipt, DefaultTolerances())

		assert.Contains(t, result.Rationale, "close amount match")
	})

	t.Run("outside the close band", func(t *testing.T) {
		bank := makeRecord(storage.SourceBank, testDate, 40.00, "")
		receipt := makeRecord(storage.SourceReceipt, testDate, 45.00, "")

		result := Score(bank, receipt, DefaultTolerances())

		// Only the date component fires
		assert.InDelta(t, 0.3, result.Value, 0.0001)
		assert.NotContains(t, result.Rationale, "amount")
	})
}

func TestScore_DateDecay(t *testing.T) {
	tests := []struct {
		name     string
		daysOff  int
		expected float64
	}{
		{"same day", 0, 0.30},
		{"one day apart", 1, 0.20},
		{"two days apart", 2, 0.15},
		{"three days apart", 3, 0.10},
		{"beyond tolerance", 4, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := makeRecord(storage.SourceBank, testDate, 1000.00, "")
			receipt := makeRecord(storage.SourceReceipt, testDate.AddDate(0, 0, tt.daysOff), 2000.00, "")

			result := Score(bank, receipt, DefaultTolerances())
			assert.InDelta(t, tt.expected, result.Value, 0.0001)
		})
	}
}

func TestScore_MissingDateContributesNothing(t *testing.T) {
	bank := makeRecord(storage.SourceBank, time.Time{}, 45.67, "Starbucks")
	receipt := makeRecord(storage.SourceReceipt, testDate, 45.67, "Starbucks")

	result := Score(bank, receipt, DefaultTolerances())

	// Amount and vendor still fire
	assert.InDelta(t, 0.7, result.Value, 0.0001)
	assert.NotContains(t, result.Rationale, "date")
}

func TestScore_VendorComponents(t *testing.T) {
	t.Run("normalized equality ignores case, punctuation and suffixes", func(t *testing.T) {
		bank := makeRecord(storage.SourceBank, testDate, 1000.00, "STARBUCKS, INC.")
		receipt := makeRecord(storage.SourceReceipt, testDate.AddDate(0, 0, 10), 2000.00, "starbucks")

		result := Score(bank, receipt, DefaultTolerances())

		assert.InDelta(t, 0.3, result.Value, 0.0001)
		assert.Equal(t, "vendor match", result.Rationale)
	})

	t.Run("containment gives partial credit", func(t *testing.T) {
		bank := makeRecord(storage.SourceBank, testDate, 1000.00, "Amazon Marketplace")
		receipt := makeRecord(storage.SourceReceipt, testDate.AddDate(0, 0, 10), 2000.00, "Amazon")

		result := Score(bank, receipt, DefaultTolerances())

		assert.InDelta(t, 0.2, result.Value, 0.0001)
		assert.Equal(t, "partial vendor match", result.Rationale)
	})

	t.Run("edit distance gives similar credit", func(t *testing.T) {
		bank := makeRecord(storage.SourceBank, testDate, 1000.00, "STARBUCKS #4521")
		receipt := makeRecord(storage.SourceReceipt, testDate.AddDate(0, 0, 10), 2000.00, "Starbucks Coffee")

		result := Score(bank, receipt, DefaultTolerances())

		assert.InDelta(t, 0.15, result.Value, 0.0001)
		assert.Equal(t, "similar vendor", result.Rationale)
	})

	t.Run("unrelated vendors contribute nothing", func(t *testing.T) {
		bank := makeRecord(storage.SourceBank, testDate, 1000.00, "Shell Oil")
		receipt := makeRecord(storage.SourceReceipt, testDate.AddDate(0, 0, 10), 2000.00, "Whole Foods")

		result := Score(bank, receipt, DefaultTolerances())

		assert.InDelta(t, 0.0, result.Value, 0.0001)
	})

	t.Run("empty vendor text carries no signal", func(t *testing.T) {
		bank := makeRecord(storage.SourceBank, testDate, 1000.00, "")
		receipt := makeRecord(storage.SourceReceipt, testDate.AddDate(0, 0, 10), 2000.00, "Starbucks")

		result := Score(bank, receipt, DefaultTolerances())

		assert.InDelta(t, 0.0, result.Value, 0.0001)
	})
}

// A plausible same-transaction pair: exact amount, same date, store-branded
// vendor text on one side. The similar-vendor note should carry it to 0.85.
func TestScore_StoreBrandedVendorPair(t *testing.T) {
	bank := makeRecord(storage.SourceBank, testDate, 45.67, "STARBUCKS #4521")
	receipt := makeRecord(storage.SourceReceipt, testDate, 45.67, "Starbucks Coffee")

	result := Score(bank, receipt, DefaultTolerances())

	assert.InDelta(t, 0.85, result.Value, 0.0001)
	assert.Contains(t, result.Rationale, "exact amount match")
	assert.Contains(t, result.Rationale, "same date")
	assert.Contains(t, result.Rationale, "similar vendor")
}

// An unrelated pair that happens to be a few days and dollars apart should
// stay far below any acceptance floor.
func TestScore_UnrelatedPairScoresLow(t *testing.T) {
	bank := makeRecord(storage.SourceBank, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 40.00, "SHELL OIL")
	receipt := makeRecord(storage.SourceReceipt, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), 45.00, "Whole Foods")

	result := Score(bank, receipt, DefaultTolerances())

	assert.InDelta(t, 0.10, result.Value, 0.0001)
}

func TestScore_BoundedToOne(t *testing.T) {
	bank := makeRecord(storage.SourceBank, testDate, 45.67, "Starbucks")
	receipt := makeRecord(storage.SourceReceipt, testDate, 45.67, "Starbucks")

	result := Score(bank, receipt, DefaultTolerances())

	assert.LessOrEqual(t, result.Value, 1.0)
	assert.GreaterOrEqual(t, result.Value, 0.0)
}

func TestDaysApart(t *testing.T) {
	a := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysApart(a, a))
	assert.Equal(t, 2, DaysApart(a, a.AddDate(0, 0, 2)))
	assert.Equal(t, 2, DaysApart(a.AddDate(0, 0, 2), a))
}

func TestNormalizeVendor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Starbucks, Inc.", "starbucks"},
		{"WALMART CO", "walmart"},
		{"Acme Company Ltd.", "acme"},
		{"Target", "target"},
		{"Coco", ""}, // substring removal is not word-boundary aware
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeVendor(tt.in), "input %q", tt.in)
	}
}

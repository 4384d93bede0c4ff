package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// ImportCSV loads records from a CSV file into the store. The expected
// columns are date (YYYY-MM-DD), amount, vendor. A header row is skipped
// when the first field does not parse as a date. Returns the number of
// imported records.
func ImportCSV(store storage.Repository, path, userID string, source storage.SourceKind) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	imported := 0
	for i, row := range rows {
		if len(row) < 3 {
			return imported, fmt.Errorf("%s line %d: expected 3 columns, got %d", path, i+1, len(row))
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return imported, fmt.Errorf("%s line %d: bad date %q", path, i+1, row[0])
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return imported, fmt.Errorf("%s line %d: bad amount %q", path, i+1, row[1])
		}

		record := &storage.ExpenseRecord{
			UserID:          userID,
			Source:          source,
			TransactionDate: date,
			Amount:          amount,
			VendorText:      strings.TrimSpace(row[2]),
			Classification:  storage.ClassificationPending,
		}
		if err := store.SaveRecord(record); err != nil {
			return imported, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		imported++
	}

	return imported, nil
}

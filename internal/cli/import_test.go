package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCSV(t *testing.T) {
	repo := storage.NewMockRepository()
	path := writeCSV(t, "date,amount,vendor\n2024-03-15,45.67,Starbucks\n2024-03-16,12.00,Shell Oil\n")

	n, err := ImportCSV(repo, path, "user1", storage.SourceBank)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := repo.ListRecordsByUser("user1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, storage.SourceBank, first.Source)
	assert.True(t, first.TransactionDate.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 45.67, first.Amount)
	assert.Equal(t, "Starbucks", first.VendorText)
	assert.Equal(t, storage.ClassificationPending, first.Classification)
}

func TestImportCSV_NoHeader(t *testing.T) {
	repo := storage.NewMockRepository()
	path := writeCSV(t, "2024-03-15,45.67,Starbucks\n")

	n, err := ImportCSV(repo, path, "user1", storage.SourceReceipt)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImportCSV_BadAmount(t *testing.T) {
	repo := storage.NewMockRepository()
	path := writeCSV(t, "2024-03-15,notanumber,Starbucks\n")

	_, err := ImportCSV(repo, path, "user1", storage.SourceBank)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad amount")
}

func TestImportCSV_BadDateAfterFirstRow(t *testing.T) {
	repo := storage.NewMockRepository()
	path := writeCSV(t, "2024-03-15,45.67,Starbucks\nnotadate,1.00,Shell\n")

	_, err := ImportCSV(repo, path, "user1", storage.SourceBank)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad date")
}

func TestImportCSV_TooFewColumns(t *testing.T) {
	repo := storage.NewMockRepository()
	path := writeCSV(t, "2024-03-15,45.67\n")

	_, err := ImportCSV(repo, path, "user1", storage.SourceBank)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 columns")
}

func TestImportCSV_MissingFile(t *testing.T) {
	repo := storage.NewMockRepository()

	_, err := ImportCSV(repo, filepath.Join(t.TempDir(), "absent.csv"), "user1", storage.SourceBank)
	assert.Error(t, err)
}

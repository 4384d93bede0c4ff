package cli

import (
	"flag"

	"github.com/expensetrackr/reconcile-backend/internal/application/service"
)

// ReconcileFlags are flags for the one-shot reconcile command
type ReconcileFlags struct {
	UserID          string
	ToleranceDays   int
	AmountTolerance float64
	DryRun          bool
	ImportBank      string
	ImportReceipts  string
	Verbose         bool
}

// ParseReconcileFlags parses reconcile flags from command line
func ParseReconcileFlags() ReconcileFlags {
	var flags ReconcileFlags
	flag.StringVar(&flags.UserID, "user", "", "User ID to reconcile (defaults to configured user)")
	flag.IntVar(&flags.ToleranceDays, "days", 0, "Date tolerance in days (0 = default)")
	flag.Float64Var(&flags.AmountTolerance, "amount-tolerance", 0, "Amount tolerance in currency units (0 = default)")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Match without committing links")
	flag.StringVar(&flags.ImportBank, "import-bank", "", "CSV file of bank records to import before matching")
	flag.StringVar(&flags.ImportReceipts, "import-receipts", "", "CSV file of receipt records to import before matching")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ToRunRequest converts ReconcileFlags to a service run request
func (f ReconcileFlags) ToRunRequest() service.RunRequest {
	return service.RunRequest{
		UserID:          f.UserID,
		ToleranceDays:   f.ToleranceDays,
		AmountTolerance: f.AmountTolerance,
		AutoMatch:       !f.DryRun,
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/expensetrackr/reconcile-backend/internal/application/service"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/config"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/logging"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// RunReconcile runs a single reconciliation pass from the command line.
func RunReconcile(cfg *config.Config, flags ReconcileFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "reconcile")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID := flags.UserID
	if userID == "" {
		userID = cfg.Reconcile.DefaultUserID
	}

	PrintHeader(userID, flags.DryRun)

	// Optional CSV imports before matching
	if flags.ImportBank != "" {
		n, err := ImportCSV(store, flags.ImportBank, userID, storage.SourceBank)
		if err != nil {
			return fmt.Errorf("importing bank records: %w", err)
		}
		fmt.Printf("Imported %d bank records from %s\n", n, flags.ImportBank)
	}
	if flags.ImportReceipts != "" {
		n, err := ImportCSV(store, flags.ImportReceipts, userID, storage.SourceReceipt)
		if err != nil {
			return fmt.Errorf("importing receipt records: %w", err)
		}
		fmt.Printf("Imported %d receipt records from %s\n", n, flags.ImportReceipts)
	}

	svc := service.NewReconcileService(store, logger)

	req := flags.ToRunRequest()
	req.UserID = userID
	if req.ToleranceDays == 0 {
		req.ToleranceDays = cfg.Reconcile.ToleranceDays
	}
	if req.AmountTolerance == 0 {
		req.AmountTolerance = cfg.Reconcile.AmountTolerance
	}
	req.AutoCommitThreshold = cfg.Reconcile.AutoCommitThreshold

	result, err := svc.Run(context.Background(), req)
	if err != nil {
		return err
	}

	PrintRunSummary(result, store, userID, flags.DryRun)
	return nil
}

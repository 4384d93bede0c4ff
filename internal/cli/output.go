package cli

import (
	"fmt"
	"strings"

	"github.com/expensetrackr/reconcile-backend/internal/application/service"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// PrintHeader prints the application header
func PrintHeader(userID string, dryRun bool) {
	mode := "COMMIT"
	if dryRun {
		mode = "DRY-RUN"
	}
	fmt.Printf("reconcile: user=%s (%s mode)\n", userID, mode)
}

// PrintRunSummary prints the reconciliation result summary
func PrintRunSummary(result *service.RunResult, store storage.Repository, userID string, dryRun bool) {
	summary := result.Summary

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Bank=%d Receipts=%d Matches=%d (high=%d medium=%d) MatchRate=%.1f%%\n",
		summary.TotalBank,
		summary.TotalReceipt,
		summary.TotalMatches,
		summary.HighConfidence,
		summary.MediumConfidence,
		summary.MatchRate)

	if !dryRun {
		fmt.Printf("Committed: %d", summary.Committed)
		if summary.Failed > 0 {
			fmt.Printf(" (%d failed)", summary.Failed)
		}
		fmt.Println()
	}

	if len(result.Matches) > 0 {
		fmt.Println("\nMatches:")
		for _, match := range result.Matches {
			fmt.Printf("  %s <-> %s  confidence=%.2f  (%s)\n",
				match.BankID, match.ReceiptID, match.Confidence, match.Rationale)
		}
	}

	if summary.UnmatchedBank > 0 || summary.UnmatchedReceipt > 0 {
		fmt.Printf("\nUnmatched: %d bank, %d receipt\n", summary.UnmatchedBank, summary.UnmatchedReceipt)
	}

	// All-time stats from the database
	if store != nil {
		stats, _ := store.GetStats(userID)
		if stats != nil && stats.TotalRecords > 0 {
			fmt.Printf("\nAll-Time Stats: Records=%d Reconciled=%d Amount=$%.2f Rate=%.1f%%\n",
				stats.TotalRecords,
				stats.Reconciled,
				stats.TotalAmount,
				stats.ReconciliationRate)
		}
	}

	if !dryRun && summary.Committed > 0 {
		fmt.Println("\nReconciliation completed successfully.")
	}
}

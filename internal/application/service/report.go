package service

import (
	"github.com/expensetrackr/reconcile-backend/internal/domain/matcher"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// Summary aggregates the outcome of one reconciliation run.
type Summary struct {
	TotalBank        int     `json:"total_bank"`
	TotalReceipt     int     `json:"total_receipt"`
	TotalMatches     int     `json:"total_matches"`
	HighConfidence   int     `json:"high_confidence"`   // confidence > 0.9
	MediumConfidence int     `json:"medium_confidence"` // 0.7 < confidence <= 0.9
	LowConfidence    int     `json:"low_confidence"`    // confidence <= 0.7; kept for schema completeness
	UnmatchedBank    int     `json:"unmatched_bank"`
	UnmatchedReceipt int     `json:"unmatched_receipt"`
	Committed        int     `json:"committed"`
	Failed           int     `json:"failed"`
	MatchRate        float64 `json:"match_rate"`
}

// RunResult is the full outcome of a reconciliation run.
type RunResult struct {
	Summary          Summary
	Matches          []matcher.MatchResult
	UnmatchedBank    []*storage.ExpenseRecord
	UnmatchedReceipt []*storage.ExpenseRecord
}

// buildSummary assembles the run summary from the match outcome and commit
// counters. The match rate is matches over the larger candidate set, as a
// percentage; zero when there were no candidates at all.
func buildSummary(totalBank, totalReceipt int, outcome matcher.Outcome, committed, failed int) Summary {
	summary := Summary{
		TotalBank:        totalBank,
		TotalReceipt:     totalReceipt,
		TotalMatches:     len(outcome.Matches),
		UnmatchedBank:    len(outcome.UnmatchedBank),
		UnmatchedReceipt: len(outcome.UnmatchedReceipt),
		Committed:        committed,
		Failed:           failed,
	}

	for _, match := range outcome.Matches {
		switch {
		case match.Confidence > 0.9:
			summary.HighConfidence++
		case match.Confidence > 0.7:
			summary.MediumConfidence++
		default:
			summary.LowConfidence++
		}
	}

	larger := totalBank
	if totalReceipt > larger {
		larger = totalReceipt
	}
	if larger > 0 {
		summary.MatchRate = float64(summary.TotalMatches) / float64(larger) * 100
	}

	return summary
}

// StatusSummary aggregates current reconciliation state for a user.
type StatusSummary struct {
	TotalExpenses        int     `json:"total_expenses"`
	ReconciledExpenses   int     `json:"reconciled_expenses"`
	UnreconciledExpenses int     `json:"unreconciled_expenses"`
	ReconciliationRate   float64 `json:"reconciliation_rate"`
}

// StatusReport describes the current reconciliation state without running
// a new matching pass.
type StatusReport struct {
	Summary      StatusSummary
	Reconciled   []*storage.ExpenseRecord
	Unreconciled []*storage.ExpenseRecord
}

// Status reports the current reconciliation state of a user's records.
func (s *ReconcileService) Status(userID string) (*StatusReport, error) {
	records, err := s.repo.ListRecordsByUser(userID)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		Reconciled:   make([]*storage.ExpenseRecord, 0),
		Unreconciled: make([]*storage.ExpenseRecord, 0),
	}

	for _, record := range records {
		if record.IsReconciled() {
			report.Reconciled = append(report.Reconciled, record)
		} else {
			report.Unreconciled = append(report.Unreconciled, record)
		}
	}

	report.Summary = StatusSummary{
		TotalExpenses:        len(records),
		ReconciledExpenses:   len(report.Reconciled),
		UnreconciledExpenses: len(report.Unreconciled),
	}
	if len(records) > 0 {
		report.Summary.ReconciliationRate = float64(len(report.Reconciled)) / float64(len(records)) * 100
	}

	return report, nil
}

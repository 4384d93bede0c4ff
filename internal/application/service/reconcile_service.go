// Package service orchestrates reconciliation runs: loading candidate
// records, matching them, committing high-confidence pairs back to the
// record store, and summarizing the outcome.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expensetrackr/reconcile-backend/internal/domain/matcher"
	"github.com/expensetrackr/reconcile-backend/internal/domain/scorer"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// Defaults applied to zero-valued RunRequest fields
const (
	DefaultToleranceDays       = 3
	DefaultAmountTolerance     = 0.01
	DefaultMinConfidence       = 0.7
	DefaultAutoCommitThreshold = 0.9
)

// ReconcileService runs the reconciliation engine against the record store.
type ReconcileService struct {
	repo   storage.Repository
	logger *slog.Logger
}

// NewReconcileService creates a new reconciliation service
func NewReconcileService(repo storage.Repository, logger *slog.Logger) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileService{
		repo:   repo,
		logger: logger,
	}
}

// RunRequest holds the parameters for one reconciliation run. Tolerances
// and thresholds are explicit so callers can vary them per run.
type RunRequest struct {
	UserID              string
	ToleranceDays       int
	AmountTolerance     float64
	AutoCommitThreshold float64
	AutoMatch           bool // When false, matching runs but nothing is committed
}

// withDefaults fills zero values with the documented defaults
func (r RunRequest) withDefaults() RunRequest {
	if r.ToleranceDays <= 0 {
		r.ToleranceDays = DefaultToleranceDays
	}
	if r.AmountTolerance <= 0 {
		r.AmountTolerance = DefaultAmountTolerance
	}
	if r.AutoCommitThreshold <= 0 {
		r.AutoCommitThreshold = DefaultAutoCommitThreshold
	}
	return r
}

// Run executes a full reconciliation pass for a user: load, match, commit,
// report. A record store failure during load is fatal; commit failures are
// counted per match and never abort the run.
func (s *ReconcileService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	req = req.withDefaults()

	runID, err := s.repo.StartRun(req.UserID, req.ToleranceDays, req.AmountTolerance, req.AutoMatch)
	if err != nil {
		// Run history is best-effort; the run itself proceeds.
		s.logger.Warn("failed to record run start", "user_id", req.UserID, "error", err)
	}

	bankCandidates, receiptCandidates, err := s.loadCandidates(req.UserID)
	if err != nil {
		return nil, err
	}

	m := matcher.NewMatcher(matcher.Config{
		MinConfidence: DefaultMinConfidence,
		Tolerances: scorer.Tolerances{
			DateDays: req.ToleranceDays,
			Amount:   req.AmountTolerance,
		},
	})
	outcome := m.Match(bankCandidates, receiptCandidates)

	var committed, failed int
	if req.AutoMatch {
		committed, failed = s.commitMatches(ctx, outcome.Matches, req.AutoCommitThreshold)
	}

	result := &RunResult{
		Summary:          buildSummary(len(bankCandidates), len(receiptCandidates), outcome, committed, failed),
		Matches:          outcome.Matches,
		UnmatchedBank:    outcome.UnmatchedBank,
		UnmatchedReceipt: outcome.UnmatchedReceipt,
	}

	if runID != 0 {
		if err := s.repo.CompleteRun(runID, len(outcome.Matches), committed, failed); err != nil {
			s.logger.Warn("failed to record run completion", "run_id", runID, "error", err)
		}
	}

	s.logger.Info("reconciliation run finished",
		"user_id", req.UserID,
		"bank", len(bankCandidates),
		"receipt", len(receiptCandidates),
		"matches", len(outcome.Matches),
		"committed", committed,
		"failed", failed,
	)

	return result, nil
}

// loadCandidates fetches all records for a user and partitions them into
// bank and receipt candidate sets. Rejected records and records already
// carrying a reconciliation link are excluded from candidacy.
func (s *ReconcileService) loadCandidates(userID string) (bank, receipt []*storage.ExpenseRecord, err error) {
	records, err := s.repo.ListRecordsByUser(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading records for user %q: %w", userID, err)
	}

	for _, record := range records {
		if record.Classification == storage.ClassificationRejected {
			continue
		}
		if record.IsReconciled() {
			continue
		}
		switch record.Source {
		case storage.SourceBank:
			bank = append(bank, record)
		case storage.SourceReceipt:
			receipt = append(receipt, record)
		}
	}

	return bank, receipt, nil
}

// commitMatches writes reconciliation links for matches above the
// auto-commit threshold. The two sides of a match are written as separate
// calls with no transaction: a failure on the second side after the first
// succeeded leaves a one-sided link, which is logged as a consistency
// warning so a follow-up run can repair it.
func (s *ReconcileService) commitMatches(ctx context.Context, matches []matcher.MatchResult, threshold float64) (committed, failed int) {
	for _, match := range matches {
		if match.Confidence <= threshold {
			continue
		}
		if ctx.Err() != nil {
			s.logger.Warn("commit phase interrupted", "error", ctx.Err())
			return committed, failed
		}

		bankLink := &storage.Reconciliation{
			MatchedID:  match.ReceiptID,
			Status:     storage.ReconciliationMatched,
			Confidence: match.Confidence,
			Rationale:  match.Rationale,
		}
		receiptLink := &storage.Reconciliation{
			MatchedID:  match.BankID,
			Status:     storage.ReconciliationMatched,
			Confidence: match.Confidence,
			Rationale:  match.Rationale,
		}

		if err := s.repo.UpdateReconciliation(match.BankID, bankLink); err != nil {
			failed++
			s.logger.Error("failed to commit reconciliation link",
				"bank_id", match.BankID,
				"receipt_id", match.ReceiptID,
				"error", err,
			)
			continue
		}

		if err := s.repo.UpdateReconciliation(match.ReceiptID, receiptLink); err != nil {
			failed++
			s.logger.Error("consistency warning: reconciliation link half-written",
				"bank_id", match.BankID,
				"receipt_id", match.ReceiptID,
				"error", err,
			)
			continue
		}

		committed++
	}

	return committed, failed
}

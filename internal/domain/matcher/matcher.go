// Package matcher pairs bank-statement records with receipt records.
//
// The algorithm is a greedy per-bank-record best match: each bank record,
// in input order, is scored against every still-available receipt and takes
// the highest-scoring one above the acceptance floor. A claimed receipt
// leaves the pool, so no receipt appears in more than one match.
//
// This is deliberately not an optimal bipartite assignment. The greedy,
// order-dependent behavior is part of the contract; replacing it with a
// Hungarian-style solver would change which pairs match under ambiguity.
package matcher

import (
	"math"

	"github.com/expensetrackr/reconcile-backend/internal/domain/scorer"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// Matcher pairs bank candidates with receipt candidates
type Matcher struct {
	config Config
}

// NewMatcher creates a new matcher with the given config
func NewMatcher(config Config) *Matcher {
	return &Matcher{
		config: config,
	}
}

// Outcome is the result of matching two candidate sets
type Outcome struct {
	Matches          []MatchResult
	UnmatchedBank    []*storage.ExpenseRecord
	UnmatchedReceipt []*storage.ExpenseRecord
}

// Match greedily pairs each bank record with its best-scoring available
// receipt. Ties are broken by first-encountered order in the receipt list.
func (m *Matcher) Match(bankCandidates, receiptCandidates []*storage.ExpenseRecord) Outcome {
	outcome := Outcome{
		Matches:          make([]MatchResult, 0),
		UnmatchedBank:    make([]*storage.ExpenseRecord, 0),
		UnmatchedReceipt: make([]*storage.ExpenseRecord, 0),
	}

	used := make(map[string]bool, len(receiptCandidates))

	for _, bank := range bankCandidates {
		var best *storage.ExpenseRecord
		var bestScore scorer.Result

		for _, receipt := range receiptCandidates {
			if used[receipt.ID] {
				continue
			}

			result := scorer.Score(bank, receipt, m.config.Tolerances)
			if result.Value > bestScore.Value {
				best = receipt
				bestScore = result
			}
		}

		if best == nil || bestScore.Value <= m.config.MinConfidence {
			outcome.UnmatchedBank = append(outcome.UnmatchedBank, bank)
			continue
		}

		used[best.ID] = true
		outcome.Matches = append(outcome.Matches, MatchResult{
			BankID:             bank.ID,
			ReceiptID:          best.ID,
			Confidence:         bestScore.Value,
			Rationale:          bestScore.Rationale,
			AmountDifference:   math.Abs(bank.Amount - best.Amount),
			DateDifferenceDays: scorer.DaysApart(bank.TransactionDate, best.TransactionDate),
		})
	}

	for _, receipt := range receiptCandidates {
		if !used[receipt.ID] {
			outcome.UnmatchedReceipt = append(outcome.UnmatchedReceipt, receipt)
		}
	}

	return outcome
}

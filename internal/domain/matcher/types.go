package matcher

import (
	"github.com/expensetrackr/reconcile-backend/internal/domain/scorer"
)

// Config holds matcher configuration
type Config struct {
	MinConfidence float64           // Acceptance floor (default: 0.7)
	Tolerances    scorer.Tolerances // Scoring tolerances
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0.7,
		Tolerances:    scorer.DefaultTolerances(),
	}
}

// MatchResult contains one accepted bank/receipt pairing
type MatchResult struct {
	BankID             string  `json:"bank_id"`
	ReceiptID          string  `json:"receipt_id"`
	Confidence         float64 `json:"confidence"`
	Rationale          string  `json:"rationale"`
	AmountDifference   float64 `json:"amount_difference"`
	DateDifferenceDays int     `json:"date_difference_days"`
}

// Package scorer computes the confidence that a bank record and a receipt
// record describe the same transaction.
//
// The score is the sum of three independent weighted components:
//   - Amount (weight 0.4): exact within tolerance, or close within 2%
//   - Date (weight 0.3): same day, decaying within the day tolerance
//   - Vendor (weight 0.3): normalized equality, containment, or edit distance
//
// The total is clamped to 1.0. Each triggered component contributes a note
// to the human-readable rationale.
package scorer

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/storage"
)

// Component weights and thresholds
const (
	amountWeight     = 0.4
	amountCloseAward = 0.3
	dateWeight       = 0.3
	dateDecayBase    = 0.25
	dateDecayPerDay  = 0.05
	vendorWeight     = 0.3
	vendorPartial    = 0.2
	vendorSimilar    = 0.15
	vendorSimilarBar = 0.7
)

// Tolerances holds the caller-supplied matching tolerances. These are
// explicit parameters rather than ambient constants so the scorer stays
// trivially testable with varied values.
type Tolerances struct {
	DateDays int     // Day tolerance (default: 3)
	Amount   float64 // Amount tolerance (default: 0.01, 1 cent)
}

// DefaultTolerances returns sensible defaults
func DefaultTolerances() Tolerances {
	return Tolerances{
		DateDays: 3,
		Amount:   0.01,
	}
}

// Result is the outcome of scoring one candidate pair
type Result struct {
	Value     float64 // Confidence in [0, 1]
	Rationale string  // Comma-joined notes for the triggered components
}

// Score evaluates how likely two records describe the same transaction.
// It is a pure function of its inputs.
func Score(a, b *storage.ExpenseRecord, tol Tolerances) Result {
	var total float64
	var notes []string

	if points, note := amountComponent(a.Amount, b.Amount, tol.Amount); points > 0 {
		total += points
		notes = append(notes, note)
	}
	if points, note := dateComponent(a.TransactionDate, b.TransactionDate, tol.DateDays); points > 0 {
		total += points
		notes = append(notes, note)
	}
	if points, note := vendorComponent(a.VendorText, b.VendorText); points > 0 {
		total += points
		notes = append(notes, note)
	}

	// The weights cannot sum past 1.0 today; clamp anyway so future weight
	// edits cannot push confidence out of range.
	if total > 1.0 {
		total = 1.0
	}

	return Result{
		Value:     total,
		Rationale: strings.Join(notes, ", "),
	}
}

// DaysApart returns the absolute difference in whole days between two
// transaction dates.
func DaysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// amountComponent awards the full weight for amounts within tolerance and a
// reduced award when the difference stays within 2% of the larger amount or
// one currency unit, whichever is greater.
func amountComponent(a, b, tolerance float64) (float64, string) {
	diff := math.Abs(a - b)
	if diff <= tolerance {
		return amountWeight, "exact amount match"
	}

	closeBand := math.Max(math.Max(a, b)*0.02, 1.0)
	if diff <= closeBand {
		return amountCloseAward, "close amount match"
	}

	return 0, ""
}

// dateComponent awards the full weight for same-day transactions and a
// linearly decaying award within the day tolerance. A record with a missing
// transaction date contributes nothing rather than aborting the comparison.
func dateComponent(a, b time.Time, toleranceDays int) (float64, string) {
	if a.IsZero() || b.IsZero() {
		return 0, ""
	}

	gap := DaysApart(a, b)
	if gap == 0 {
		return dateWeight, "same date"
	}
	if gap <= toleranceDays {
		points := dateDecayBase - dateDecayPerDay*float64(gap)
		if points <= 0 {
			return 0, ""
		}
		note := fmt.Sprintf("%d days apart", gap)
		if gap == 1 {
			note = "1 day apart"
		}
		return points, note
	}

	return 0, ""
}

// vendorComponent compares normalized vendor strings: exact equality first,
// then containment, then Levenshtein similarity. Empty vendor text carries
// no signal. The similarity ratio is taken over the length of the longer
// string before noise removal, so that stripping a suffix does not inflate
// how similar two otherwise different names look.
func vendorComponent(a, b string) (float64, string) {
	sa := stripNonAlnum(a)
	sb := stripNonAlnum(b)
	if sa == "" || sb == "" {
		return 0, ""
	}

	na := removeNoise(sa)
	nb := removeNoise(sb)

	if na == nb {
		return vendorWeight, "vendor match"
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return vendorPartial, "partial vendor match"
	}

	maxLen := utf8.RuneCountInString(sa)
	if n := utf8.RuneCountInString(sb); n > maxLen {
		maxLen = n
	}
	dist := levenshtein.ComputeDistance(na, nb)
	if float64(maxLen-dist)/float64(maxLen) > vendorSimilarBar {
		return vendorSimilar, "similar vendor"
	}

	return 0, ""
}

// noiseSubstrings are removed from normalized vendor text. Removal is a
// global substring replacement, not word-boundary aware, so vendor names
// that happen to contain these letter sequences lose them too: "Coco"
// normalizes to the empty string. Known source of false positives.
var noiseSubstrings = []string{"inc", "llc", "corp", "company", "co", "ltd"}

// NormalizeVendor lowercases the vendor text, strips everything that is not
// a letter or digit, then removes common corporate-suffix noise.
func NormalizeVendor(s string) string {
	return removeNoise(stripNonAlnum(s))
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func removeNoise(s string) string {
	for _, noise := range noiseSubstrings {
		s = strings.ReplaceAll(s, noise, "")
	}
	return s
}

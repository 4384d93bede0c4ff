package dto

// ReconcileRequest is the body of the reconciliation trigger endpoint.
// Zero values fall back to the documented defaults; AutoMatch is a pointer
// so that an absent field defaults to true.
type ReconcileRequest struct {
	UserID          string  `json:"user_id"`
	ToleranceDays   int     `json:"tolerance_days"`
	AmountTolerance float64 `json:"amount_tolerance"`
	AutoMatch       *bool   `json:"auto_match"`
}

// AutoMatchEnabled resolves the AutoMatch field, defaulting to true.
func (r ReconcileRequest) AutoMatchEnabled() bool {
	return r.AutoMatch == nil || *r.AutoMatch
}

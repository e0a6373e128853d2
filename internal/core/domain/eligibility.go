package domain

import "time"

// Reasons produced locally. Reasons for ledger-evaluated outcomes are taken
// verbatim from the eligibility predicate.
const (
	ReasonCircleNotFound            = "circle not found"
	ReasonKYCRequired               = "KYC required"
	ReasonCircleLedgerUnavailable   = "circle ledger unavailable"
	ReasonIdentityLedgerUnavailable = "identity ledger unavailable"
	ReasonCircleIDOutOfRange        = "circle id out of range"
)

// UserInfo is the identity snapshot attached to an eligible result.
type UserInfo struct {
	Nationality      string       `json:"nationality"`
	Age              uint64       `json:"age"`
	VerifiedAt       time.Time    `json:"verified_at"`
	VerificationType DocumentType `json:"verification_type,omitempty"`
}

// EligibilityResult is derived per call and never cached.
type EligibilityResult struct {
	Eligible bool      `json:"eligible"`
	Reason   string    `json:"reason"`
	UserInfo *UserInfo `json:"user_info,omitempty"`
}

// Ineligible builds a negative result.
func Ineligible(reason string) EligibilityResult {
	return EligibilityResult{Reason: reason}
}

// SnapshotOf builds the user info snapshot from a verified record.
func SnapshotOf(r KYCRecord) *UserInfo {
	return &UserInfo{
		Nationality:      r.Nationality,
		Age:              r.AgeAtVerification,
		VerifiedAt:       r.VerifiedAt(),
		VerificationType: r.VerificationType,
	}
}

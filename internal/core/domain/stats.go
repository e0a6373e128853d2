package domain

// KYCStats are the identity ledger counters.
type KYCStats struct {
	TotalVerifiedUsers uint64 `json:"total_verified_users"`
	TotalCountries     uint64 `json:"total_countries"`
	ConfigScope        string `json:"config_scope"`
}

// CircleStats are the circle ledger counters. Token amounts are decimal
// strings in base units.
type CircleStats struct {
	TotalCircles     uint64 `json:"total_circles"`
	ActiveCircles    uint64 `json:"active_circles"`
	CompletedCircles uint64 `json:"completed_circles"`
	TotalMembers     uint64 `json:"total_members"`
	TotalValueLocked string `json:"total_value_locked"`
	TotalRevenue     string `json:"total_revenue"`
	SuccessRate      uint64 `json:"success_rate"`
}

// ZeroCircleStats is the default used when the circle ledger cannot answer.
func ZeroCircleStats() CircleStats {
	return CircleStats{TotalValueLocked: "0", TotalRevenue: "0"}
}

// ZeroKYCStats is the default used when the identity ledger cannot answer.
func ZeroKYCStats() KYCStats {
	return KYCStats{ConfigScope: "0"}
}

// PlatformStats combines both ledgers. Degraded lists ledgers whose
// counters were defaulted to zero.
type PlatformStats struct {
	KYC      KYCStats    `json:"kyc"`
	ROSCA    CircleStats `json:"rosca"`
	Degraded []Ledger    `json:"degraded,omitempty"`
}

package ports

import (
	"context"

	"rosca-bridge/internal/core/domain"
)

// EligibilityService is the read-path aggregator. Every method is total
// except for ValidationError on malformed input.
type EligibilityService interface {
	CheckKYCStatus(ctx context.Context, address string) domain.KYCRecord
	ValidateEligibility(ctx context.Context, address string, circleID int64) (domain.EligibilityResult, error)
	GetPlatformStats(ctx context.Context) domain.PlatformStats
}

// BatchEligibilityService checks many addresses against one circle.
type BatchEligibilityService interface {
	BatchCheckEligibility(ctx context.Context, addresses []string, circleID int64) map[string]domain.EligibilityResult
}

// HealthService never fails; it always returns a snapshot.
type HealthService interface {
	HealthCheck(ctx context.Context) domain.HealthSnapshot
}

// VerificationService is the write path: proof verification plus a single
// ledger update attempt.
type VerificationService interface {
	VerifyAndRecord(ctx context.Context, req domain.VerifyRequest) (*domain.VerificationOutcome, error)
}

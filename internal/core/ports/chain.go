package ports

import (
	"context"

	"rosca-bridge/internal/core/domain"
)

// ChainReader is a read-only connection to one ledger. Implementations do
// not retry; failures surface as apperror connectivity or contract-revert
// errors so callers can tell the two apart.
type ChainReader interface {
	Ledger() domain.Ledger
	// Name is the operator-facing chain name (e.g. "celo").
	Name() string
	ContractAddress() string
	BlockHeight(ctx context.Context) (uint64, error)
	Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error)
}

// IdentityLedger is the typed contract surface of chain A.
type IdentityLedger interface {
	GetUserVerificationDetails(ctx context.Context, address string) (domain.KYCRecord, error)
	// IsEligibleForROSCA is the authoritative eligibility predicate.
	IsEligibleForROSCA(ctx context.Context, address, country string, minAge, maxAge uint64) (bool, string, error)
	GetTotalStats(ctx context.Context) (domain.KYCStats, error)
}

// CircleLedger is the typed contract surface of chain B.
type CircleLedger interface {
	// GetCircleInfo returns domain.ErrCircleNotFound for unknown ids.
	GetCircleInfo(ctx context.Context, circleID uint64) (domain.CircleParameters, error)
	GetPlatformStats(ctx context.Context) (domain.CircleStats, error)
}

// LedgerWriter records a verified disclosure on the identity ledger.
type LedgerWriter interface {
	RecordVerification(ctx context.Context, address string, d domain.Disclosure) (string, error)
}

// LogSource streams ABI-decoded logs of the requested kinds into sink until
// the subscription is cancelled.
type LogSource interface {
	Ledger() domain.Ledger
	Subscribe(ctx context.Context, kinds []domain.EventKind, sink chan<- domain.RawLog) (Subscription, error)
}

// Subscription matches go-ethereum's ethereum.Subscription.
type Subscription interface {
	Unsubscribe()
	Err() <-chan error
}

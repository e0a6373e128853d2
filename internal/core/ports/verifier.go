package ports

import (
	"context"

	"rosca-bridge/internal/core/domain"
)

// IdentityVerifier is the adapter boundary to the proof-verification
// oracle. Invalid proofs, transport failures and schema mismatches are all
// apperror.KindExternalVerifier.
type IdentityVerifier interface {
	Verify(ctx context.Context, req domain.VerifyRequest) (domain.Disclosure, error)
	SelfTest(ctx context.Context) error
}

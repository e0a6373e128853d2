package service

import (
	"context"

	"github.com/rs/zerolog"

	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/pkg/apperror"
	"rosca-bridge/pkg/logger"
)

// VerificationServiceImpl implements ports.VerificationService.
type VerificationServiceImpl struct {
	verifier ports.IdentityVerifier
	writer   ports.LedgerWriter
	log      zerolog.Logger
}

// NewVerificationService creates a new VerificationServiceImpl. writer may
// be nil when no signer is configured; verification still works but nothing
// is recorded on chain.
func NewVerificationService(verifier ports.IdentityVerifier, writer ports.LedgerWriter, log zerolog.Logger) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		verifier: verifier,
		writer:   writer,
		log:      logger.Component(log, "verification"),
	}
}

// VerifyAndRecord verifies a proof and makes one attempt to record the
// disclosure on the identity ledger. Verifier errors fail the call; a
// failed write is reported in LedgerUpdate and does not.
func (s *VerificationServiceImpl) VerifyAndRecord(ctx context.Context, req domain.VerifyRequest) (*domain.VerificationOutcome, error) {
	if req.UserAddress != "" && !domain.IsValidAddress(req.UserAddress) {
		return nil, apperror.ErrInvalidAddress(req.UserAddress)
	}

	disclosure, err := s.verifier.Verify(ctx, req)
	if err != nil {
		return nil, err
	}
	outcome := &domain.VerificationOutcome{Disclosure: disclosure}

	switch {
	case req.UserAddress == "":
		outcome.LedgerUpdate.Error = "no user address supplied"
	case s.writer == nil:
		outcome.LedgerUpdate.Error = "ledger writer not configured"
	default:
		outcome.LedgerUpdate.Attempted = true
		txHash, err := s.writer.RecordVerification(ctx, req.UserAddress, disclosure)
		if err != nil {
			s.log.Warn().Err(err).
				Str("address", req.UserAddress).
				Str("attestation_id", disclosure.AttestationID).
				Msg("Recording verification on ledger failed")
			outcome.LedgerUpdate.Error = err.Error()
			break
		}
		outcome.LedgerUpdate.Succeeded = true
		outcome.LedgerUpdate.TxHash = txHash
		s.log.Info().
			Str("address", req.UserAddress).
			Str("tx_hash", txHash).
			Msg("Verification recorded on ledger")
	}

	return outcome, nil
}

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/internal/metrics"
	"rosca-bridge/pkg/apperror"
	"rosca-bridge/pkg/logger"
)

// EligibilityServiceImpl implements ports.EligibilityService.
//
// Read failures are fail-closed: a ledger that cannot answer makes the
// address not verified or not eligible, never eligible. The cause is logged
// and counted instead of returned.
type EligibilityServiceImpl struct {
	identity ports.IdentityLedger
	circles  ports.CircleLedger
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewEligibilityService creates a new EligibilityServiceImpl.
func NewEligibilityService(
	identity ports.IdentityLedger,
	circles ports.CircleLedger,
	m *metrics.Metrics,
	log zerolog.Logger,
) *EligibilityServiceImpl {
	return &EligibilityServiceImpl{
		identity: identity,
		circles:  circles,
		metrics:  m,
		log:      logger.Component(log, "eligibility"),
	}
}

// CheckKYCStatus never fails. Malformed addresses and read errors both
// yield domain.NotVerified.
func (s *EligibilityServiceImpl) CheckKYCStatus(ctx context.Context, address string) domain.KYCRecord {
	record, _ := s.kycRecord(ctx, address)
	return record
}

// kycRecord is CheckKYCStatus plus the suppressed cause, so that
// ValidateEligibility can tell an outage from a missing attestation.
func (s *EligibilityServiceImpl) kycRecord(ctx context.Context, address string) (domain.KYCRecord, error) {
	if !domain.IsValidAddress(address) {
		s.log.Debug().Str("address", address).Msg("KYC lookup for malformed address")
		return domain.NotVerified(address), apperror.ErrInvalidAddress(address)
	}

	record, err := s.identity.GetUserVerificationDetails(ctx, address)
	if err != nil {
		s.readFailed(domain.LedgerIdentity, "getUserVerificationDetails", err)
		return domain.NotVerified(address), err
	}
	return record.Sanitized(), nil
}

// ValidateEligibility returns an error only for malformed input. Every
// ledger failure is folded into an ineligible result with a reason.
func (s *EligibilityServiceImpl) ValidateEligibility(ctx context.Context, address string, circleID int64) (domain.EligibilityResult, error) {
	if !domain.IsValidAddress(address) {
		return domain.EligibilityResult{}, apperror.ErrInvalidAddress(address)
	}
	if circleID < 0 {
		return domain.EligibilityResult{}, apperror.ErrInvalidCircleID()
	}

	circle, err := s.circles.GetCircleInfo(ctx, uint64(circleID))
	if err != nil {
		// The identity ledger is not consulted for a circle we cannot see.
		if errors.Is(err, domain.ErrCircleNotFound) {
			return s.decided(domain.Ineligible(domain.ReasonCircleNotFound)), nil
		}
		s.readFailed(domain.LedgerCircle, "getCircleInfo", err)
		return s.decided(domain.Ineligible(domain.ReasonCircleLedgerUnavailable)), nil
	}

	record, err := s.kycRecord(ctx, address)
	if apperror.IsConnectivity(err) {
		return s.decided(domain.Ineligible(domain.ReasonIdentityLedgerUnavailable)), nil
	}
	if !record.IsVerified {
		return s.decided(domain.Ineligible(domain.ReasonKYCRequired)), nil
	}

	eligible, reason, err := s.identity.IsEligibleForROSCA(ctx, address, circle.Country, circle.MinAge, circle.MaxAge)
	if err != nil {
		s.readFailed(domain.LedgerIdentity, "isEligibleForROSCA", err)
		if apperror.IsContractRevert(err) {
			return s.decided(domain.Ineligible(revertMessage(err))), nil
		}
		return s.decided(domain.Ineligible(domain.ReasonIdentityLedgerUnavailable)), nil
	}

	result := domain.EligibilityResult{Eligible: eligible, Reason: reason}
	if eligible {
		result.UserInfo = domain.SnapshotOf(record)
	}
	return s.decided(result), nil
}

// GetPlatformStats queries both ledgers concurrently. A failed side is
// zeroed and listed in Degraded; the other side is unaffected.
func (s *EligibilityServiceImpl) GetPlatformStats(ctx context.Context) domain.PlatformStats {
	var (
		g     errgroup.Group
		mu    sync.Mutex
		stats = domain.PlatformStats{KYC: domain.ZeroKYCStats(), ROSCA: domain.ZeroCircleStats()}
	)
	degrade := func(l domain.Ledger) {
		mu.Lock()
		stats.Degraded = append(stats.Degraded, l)
		mu.Unlock()
	}

	g.Go(func() error {
		kyc, err := s.identity.GetTotalStats(ctx)
		if err != nil {
			s.readFailed(domain.LedgerIdentity, "getTotalStats", err)
			degrade(domain.LedgerIdentity)
			return nil
		}
		stats.KYC = kyc
		return nil
	})
	g.Go(func() error {
		rosca, err := s.circles.GetPlatformStats(ctx)
		if err != nil {
			s.readFailed(domain.LedgerCircle, "getPlatformStats", err)
			degrade(domain.LedgerCircle)
			return nil
		}
		stats.ROSCA = rosca
		return nil
	})
	_ = g.Wait()

	return stats
}

func (s *EligibilityServiceImpl) decided(r domain.EligibilityResult) domain.EligibilityResult {
	if r.Eligible {
		s.metrics.IncEligibilityOutcome("eligible")
	} else {
		s.metrics.IncEligibilityOutcome("ineligible")
	}
	return r
}

// readFailed is the observability side channel for suppressed read errors.
// Reverts are business outcomes; everything else is a degraded ledger.
func (s *EligibilityServiceImpl) readFailed(ledger domain.Ledger, method string, err error) {
	kind := apperror.KindOf(err)
	s.metrics.IncLedgerReadFailure(string(ledger), string(kind))

	event := s.log.Warn()
	if kind == apperror.KindContractRevert {
		event = s.log.Info()
	}
	event.Err(err).
		Str("ledger", string(ledger)).
		Str("method", method).
		Str("kind", string(kind)).
		Msg("Ledger read failed")
}

// revertMessage surfaces a revert as reason text.
func revertMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

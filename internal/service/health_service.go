package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/internal/metrics"
	"rosca-bridge/pkg/logger"
)

const defaultProbeTimeout = 5 * time.Second

// HealthServiceImpl implements ports.HealthService. Every probe runs
// concurrently under its own timeout, so one hung dependency cannot delay
// the others past probeTimeout.
type HealthServiceImpl struct {
	identity     ports.ChainReader
	circle       ports.ChainReader
	verifier     ports.IdentityVerifier
	dependencies []ports.HealthChecker
	probeTimeout time.Duration
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewHealthService creates a new HealthServiceImpl. dependencies are the
// optional infrastructure checks (redis, rabbitmq).
func NewHealthService(
	identity, circle ports.ChainReader,
	verifier ports.IdentityVerifier,
	probeTimeout time.Duration,
	m *metrics.Metrics,
	log zerolog.Logger,
	dependencies ...ports.HealthChecker,
) *HealthServiceImpl {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &HealthServiceImpl{
		identity:     identity,
		circle:       circle,
		verifier:     verifier,
		dependencies: dependencies,
		probeTimeout: probeTimeout,
		metrics:      m,
		log:          logger.Component(log, "health"),
	}
}

// HealthCheck never fails. A probe that errors, times out or panics marks
// only its own component unhealthy.
func (s *HealthServiceImpl) HealthCheck(ctx context.Context) domain.HealthSnapshot {
	snap := domain.HealthSnapshot{Timestamp: time.Now().UTC()}

	var g errgroup.Group
	g.Go(func() error {
		snap.Identity = s.probeChain(ctx, s.identity, domain.LedgerIdentity)
		return nil
	})
	g.Go(func() error {
		snap.Circle = s.probeChain(ctx, s.circle, domain.LedgerCircle)
		return nil
	})
	g.Go(func() error {
		snap.Verifier = s.probeComponent(ctx, "verifier", s.verifier.SelfTest)
		return nil
	})

	deps := make([]domain.ComponentHealth, len(s.dependencies))
	for i, dep := range s.dependencies {
		i, dep := i, dep
		g.Go(func() error {
			deps[i] = s.probeComponent(ctx, dep.Name(), dep.Ping)
			return nil
		})
	}
	_ = g.Wait()

	if len(deps) > 0 {
		snap.Dependencies = deps
	}
	snap.Status = overallStatus(snap)

	if snap.Status != domain.StatusHealthy {
		s.log.Warn().Str("status", string(snap.Status)).Msg("Health check degraded")
	}
	return snap
}

func (s *HealthServiceImpl) probeChain(ctx context.Context, reader ports.ChainReader, ledger domain.Ledger) domain.ChainHealth {
	h := domain.ChainHealth{
		Name:     reader.Name(),
		Ledger:   ledger,
		Contract: reader.ContractAddress(),
	}

	start := time.Now()
	var height uint64
	err := s.guard(ctx, func(ctx context.Context) error {
		var err error
		height, err = reader.BlockHeight(ctx)
		return err
	})
	h.Latency = time.Since(start)

	if err != nil {
		h.Status = domain.StatusUnhealthy
		h.Error = fmt.Sprintf("%s ledger (%s) unreachable: %v", ledger, h.Name, err)
	} else {
		h.Status = domain.StatusHealthy
		h.Connected = true
		h.LatestBlock = height
	}
	s.metrics.ObserveProbe(string(ledger), string(h.Status), h.Latency)
	return h
}

func (s *HealthServiceImpl) probeComponent(ctx context.Context, name string, probe func(context.Context) error) domain.ComponentHealth {
	start := time.Now()
	err := s.guard(ctx, probe)

	c := domain.ComponentHealth{Name: name, Status: domain.StatusHealthy}
	if err != nil {
		c.Status = domain.StatusUnhealthy
		c.Error = fmt.Sprintf("%s unavailable: %v", name, err)
	}
	s.metrics.ObserveProbe(name, string(c.Status), time.Since(start))
	return c
}

// guard runs probe with the probe timeout and converts a panic or an
// overrun into an error. The probe goroutine is abandoned on timeout.
func (s *HealthServiceImpl) guard(ctx context.Context, probe func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("probe panicked: %v", r)
			}
		}()
		done <- probe(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("probe timed out after %s: %w", s.probeTimeout, ctx.Err())
	}
}

// overallStatus is unhealthy when neither ledger answers, degraded when
// anything else is down.
func overallStatus(s domain.HealthSnapshot) domain.HealthStatus {
	if s.Healthy() {
		return domain.StatusHealthy
	}
	if s.Identity.Status != domain.StatusHealthy && s.Circle.Status != domain.StatusHealthy {
		return domain.StatusUnhealthy
	}
	return domain.StatusDegraded
}

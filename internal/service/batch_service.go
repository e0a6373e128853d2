package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"rosca-bridge/config"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/internal/metrics"
	"rosca-bridge/pkg/logger"
)

const (
	defaultChunkSize  = 10
	defaultChunkDelay = 100 * time.Millisecond
)

// BatchServiceImpl implements ports.BatchEligibilityService.
//
// Addresses are checked in fixed-size chunks. Members of a chunk run
// concurrently; the next chunk starts only after the whole chunk settled and
// chunkDelay elapsed, so at most chunkSize checks are ever in flight.
type BatchServiceImpl struct {
	eligibility ports.EligibilityService
	chunkSize   int
	chunkDelay  time.Duration
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewBatchService creates a new BatchServiceImpl. A negative chunk delay
// falls back to the default; zero disables pacing and is only reachable
// from tests, since config.Validate rejects it.
func NewBatchService(eligibility ports.EligibilityService, cfg config.BatchConfig, m *metrics.Metrics, log zerolog.Logger) *BatchServiceImpl {
	size := cfg.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	delay := cfg.ChunkDelay
	if delay < 0 {
		delay = defaultChunkDelay
	}
	return &BatchServiceImpl{
		eligibility: eligibility,
		chunkSize:   size,
		chunkDelay:  delay,
		metrics:     m,
		log:         logger.Component(log, "batch_eligibility"),
	}
}

// BatchCheckEligibility returns exactly one entry per distinct input
// address. For duplicates the later occurrence wins.
func (s *BatchServiceImpl) BatchCheckEligibility(ctx context.Context, addresses []string, circleID int64) map[string]domain.EligibilityResult {
	results := make([]domain.EligibilityResult, len(addresses))
	chunks := 0

	for start := 0; start < len(addresses); start += s.chunkSize {
		if start > 0 {
			s.pause(ctx)
		}
		end := min(start+s.chunkSize, len(addresses))

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				results[i] = s.checkOne(ctx, addresses[i], circleID)
				return nil
			})
		}
		_ = g.Wait()
		chunks++
	}

	out := make(map[string]domain.EligibilityResult, len(addresses))
	for i, addr := range addresses {
		out[addr] = results[i]
	}

	s.metrics.ObserveBatch(len(addresses), chunks)
	s.log.Debug().
		Int("addresses", len(addresses)).
		Int("chunks", chunks).
		Int64("circle_id", circleID).
		Msg("Batch eligibility checked")
	return out
}

// checkOne folds any error or panic for a single address into its result.
func (s *BatchServiceImpl) checkOne(ctx context.Context, address string, circleID int64) (result domain.EligibilityResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("address", address).Msg("Eligibility check panicked")
			result = domain.Ineligible(fmt.Sprintf("eligibility check failed: %v", r))
		}
	}()

	res, err := s.eligibility.ValidateEligibility(ctx, address, circleID)
	if err != nil {
		return domain.Ineligible(err.Error())
	}
	return res
}

// pause waits out the inter-chunk delay. A cancelled context skips the wait;
// remaining chunks still produce (failed) results.
func (s *BatchServiceImpl) pause(ctx context.Context) {
	if s.chunkDelay == 0 {
		return
	}
	t := time.NewTimer(s.chunkDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"rosca-bridge/config"
	"rosca-bridge/internal/adapter/chain"
	httpHandler "rosca-bridge/internal/adapter/http/handler"
	"rosca-bridge/internal/adapter/http/middleware"
	"rosca-bridge/internal/adapter/messaging/rabbitmq"
	redisStorage "rosca-bridge/internal/adapter/storage/redis"
	"rosca-bridge/internal/adapter/verifier"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/internal/metrics"
	"rosca-bridge/internal/service"
	"rosca-bridge/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("ROSCA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("identity_chain", cfg.IdentityChain.Name).
		Str("circle_chain", cfg.CircleChain.Name).
		Msg("Starting ROSCA bridge")

	ctx := context.Background()

	attestations, err := domain.NewAttestationTable(cfg.Verifier.Attestations)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid attestation table")
	}

	// Ledger connections
	identityClient, err := chain.DialClient(ctx, cfg.IdentityChain)
	if err != nil {
		log.Fatal().Err(err).Str("chain", cfg.IdentityChain.Name).Msg("Failed to dial identity ledger")
	}
	defer identityClient.Close()

	circleClient, err := chain.DialClient(ctx, cfg.CircleChain)
	if err != nil {
		log.Fatal().Err(err).Str("chain", cfg.CircleChain.Name).Msg("Failed to dial circle ledger")
	}
	defer circleClient.Close()

	identityReader := chain.NewReader(identityClient, domain.LedgerIdentity, cfg.IdentityChain, chain.IdentityABI)
	circleReader := chain.NewReader(circleClient, domain.LedgerCircle, cfg.CircleChain, chain.CircleABI)
	identityLedger := chain.NewIdentityContract(identityReader, attestations)
	circleLedger := chain.NewCircleContract(circleReader)

	var writer ports.LedgerWriter
	ledgerWriter, err := chain.NewLedgerWriter(identityClient, cfg.IdentityChain, chain.IdentityABI)
	switch {
	case errors.Is(err, chain.ErrWriterNotConfigured):
		log.Info().Msg("No signer key configured, verifications will not be recorded on chain")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to initialize ledger writer")
	default:
		writer = ledgerWriter
		log.Info().Str("from", ledgerWriter.From()).Msg("Ledger writer ready")
	}

	// Identity verifier
	verifierClient := verifier.NewClient(cfg.Verifier, attestations, nil, log)

	m := metrics.New(prometheus.DefaultRegisterer)
	var healthDeps []ports.HealthChecker

	// Redis backs rate limiting only; the bridge runs without it.
	var rateLimitStore middleware.RateLimitStore
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthDeps = append(healthDeps, redisStorage.NewHealthCheck(rdb))
	}

	// RabbitMQ is the optional sink for derived events.
	var monitorOpts []service.MonitorOption
	if cfg.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.Dial(cfg.RabbitMQ, log)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, derived events stay in-process")
		} else {
			defer publisher.Close()
			monitorOpts = append(monitorOpts, service.WithPublisher(publisher))
			healthDeps = append(healthDeps, publisher)
		}
	}

	// Services
	eligibilitySvc := service.NewEligibilityService(identityLedger, circleLedger, m, log)
	batchSvc := service.NewBatchService(eligibilitySvc, cfg.Batch, m, log)
	verificationSvc := service.NewVerificationService(verifierClient, writer, log)
	healthSvc := service.NewHealthService(identityReader, circleReader, verifierClient, cfg.Health.ProbeTimeout, m, log, healthDeps...)

	sources := []ports.LogSource{
		chain.NewLogWatcher(identityClient, domain.LedgerIdentity, cfg.IdentityChain, chain.IdentityABI, log),
		chain.NewLogWatcher(circleClient, domain.LedgerCircle, cfg.CircleChain, chain.CircleABI, log),
	}
	monitor := service.NewEventMonitor(sources, eligibilitySvc, cfg.Monitor, m, log, monitorOpts...)
	if cfg.Monitor.Enabled {
		startMonitoring(ctx, monitor, log)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		EligibilitySvc:  eligibilitySvc,
		BatchSvc:        batchSvc,
		VerificationSvc: verificationSvc,
		HealthSvc:       healthSvc,
		RateLimitStore:  rateLimitStore,
		RateLimit:       middleware.RateLimitRule{Limit: cfg.RateLimit.Limit, Window: cfg.RateLimit.Window},
		MaxBatch:        cfg.Batch.MaxAddresses,
		Logger:          log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := monitor.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Event monitor did not drain before deadline")
	}

	log.Info().Msg("Server exited")
}

// startMonitoring subscribes to both ledgers and logs monitor errors. A
// ledger that fails to subscribe is logged and left stopped.
func startMonitoring(ctx context.Context, monitor *service.EventMonitor, log zerolog.Logger) {
	go func() {
		for e := range monitor.Errors() {
			log.Debug().Err(e.Err).Str("stage", string(e.Stage)).Msg("Event monitor error drained")
		}
	}()

	for _, ledger := range []domain.Ledger{domain.LedgerIdentity, domain.LedgerCircle} {
		err := monitor.StartEventMonitoring(ctx, ledger, func(ev domain.AppEvent) {
			event := log.Info()
			if ev.Severity == domain.SeverityWarning {
				event = log.Warn()
			}
			event.
				Str("ledger", string(ledger)).
				Str("type", string(ev.Type)).
				Str("tx_hash", ev.Source.TxHash).
				Msg("Chain event")
		})
		if err != nil {
			log.Error().Err(err).Str("ledger", string(ledger)).Msg("Failed to start event monitoring")
		}
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"rosca-bridge/internal/adapter/http/middleware"
	"rosca-bridge/internal/core/ports"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	EligibilitySvc  ports.EligibilityService
	BatchSvc        ports.BatchEligibilityService
	VerificationSvc ports.VerificationService
	HealthSvc       ports.HealthService
	RateLimitStore  middleware.RateLimitStore // nil = rate limiting disabled
	RateLimit       middleware.RateLimitRule
	MaxBatch        int
	Gatherer        prometheus.Gatherer // nil = default registry
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.GET("/health", HealthCheck(deps.HealthSvc))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	rl := func(c *gin.Context) { c.Next() }
	if deps.RateLimitStore != nil {
		rl = middleware.RateLimiter(deps.RateLimitStore, "api", deps.RateLimit, deps.Logger)
	}

	v1 := r.Group("/api/v1", rl)

	bridgeHandler := NewBridgeHandler(deps.EligibilitySvc, deps.BatchSvc, deps.MaxBatch)
	bridge := v1.Group("/bridge")
	{
		bridge.GET("/kyc/:address", bridgeHandler.GetKYCStatus)
		bridge.POST("/validate-eligibility", bridgeHandler.ValidateEligibility)
		bridge.POST("/batch-validate", bridgeHandler.BatchValidate)
		bridge.GET("/stats", bridgeHandler.GetStats)
	}

	verifyHandler := NewVerifyHandler(deps.VerificationSvc)
	v1.POST("/self/verify", verifyHandler.Verify)

	return r
}

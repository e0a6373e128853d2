package domain

import "time"

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// ChainHealth is one ledger's liveness probe result.
type ChainHealth struct {
	Name        string        `json:"name"`
	Ledger      Ledger        `json:"ledger"`
	Status      HealthStatus  `json:"status"`
	Connected   bool          `json:"connected"`
	LatestBlock uint64        `json:"latest_block,omitempty"`
	Contract    string        `json:"contract,omitempty"`
	Latency     time.Duration `json:"latency_ns"`
	Error       string        `json:"error,omitempty"`
}

// ComponentHealth is a non-ledger probe result.
type ComponentHealth struct {
	Name   string       `json:"name"`
	Status HealthStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// HealthSnapshot is recomputed on demand and never cached.
type HealthSnapshot struct {
	Status       HealthStatus      `json:"status"`
	Identity     ChainHealth       `json:"identity"`
	Circle       ChainHealth       `json:"circle"`
	Verifier     ComponentHealth   `json:"verifier"`
	Dependencies []ComponentHealth `json:"dependencies,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Healthy reports whether every probe succeeded.
func (s HealthSnapshot) Healthy() bool {
	if s.Identity.Status != StatusHealthy || s.Circle.Status != StatusHealthy || s.Verifier.Status != StatusHealthy {
		return false
	}
	for _, d := range s.Dependencies {
		if d.Status != StatusHealthy {
			return false
		}
	}
	return true
}

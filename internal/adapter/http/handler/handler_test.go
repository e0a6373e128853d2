package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports/mocks"
	"rosca-bridge/internal/metrics"
	"rosca-bridge/pkg/apperror"
)

const (
	userA = "0x1111111111111111111111111111111111111111"
	userB = "0x2222222222222222222222222222222222222222"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerMocks struct {
	eligibility  *mocks.MockEligibilityService
	batch        *mocks.MockBatchEligibilityService
	verification *mocks.MockVerificationService
	health       *mocks.MockHealthService
	registry     *prometheus.Registry
	router       *gin.Engine
}

func setupRouter(t *testing.T) routerMocks {
	ctrl := gomock.NewController(t)
	m := routerMocks{
		eligibility:  mocks.NewMockEligibilityService(ctrl),
		batch:        mocks.NewMockBatchEligibilityService(ctrl),
		verification: mocks.NewMockVerificationService(ctrl),
		health:       mocks.NewMockHealthService(ctrl),
		registry:     prometheus.NewRegistry(),
	}
	m.router = SetupRouter(RouterDeps{
		EligibilitySvc:  m.eligibility,
		BatchSvc:        m.batch,
		VerificationSvc: m.verification,
		HealthSvc:       m.health,
		MaxBatch:        3,
		Gatherer:        m.registry,
		Logger:          zerolog.Nop(),
	})
	return m
}

func (m routerMocks) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	m.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has data object: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

// --- Bridge Handler Tests ---

func TestGetKYCStatus_Success(t *testing.T) {
	m := setupRouter(t)
	m.eligibility.EXPECT().CheckKYCStatus(gomock.Any(), userA).Return(domain.KYCRecord{
		Address:     userA,
		IsVerified:  true,
		Nationality: "IN",
	})

	w := m.do(http.MethodGet, "/api/v1/bridge/kyc/"+userA, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["is_verified"])
	assert.Equal(t, "IN", data["nationality"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetKYCStatus_InvalidAddress(t *testing.T) {
	m := setupRouter(t)

	w := m.do(http.MethodGet, "/api/v1/bridge/kyc/0xnope", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_002", errorCode(t, w))
}

func TestValidateEligibility_Success(t *testing.T) {
	m := setupRouter(t)
	m.eligibility.EXPECT().ValidateEligibility(gomock.Any(), userA, int64(7)).Return(domain.EligibilityResult{
		Eligible: true,
		Reason:   "Eligible",
		UserInfo: &domain.UserInfo{Nationality: "IN", Age: 30},
	}, nil)

	w := m.do(http.MethodPost, "/api/v1/bridge/validate-eligibility", map[string]interface{}{
		"userAddress": userA,
		"circleId":    7,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["eligible"])
	assert.Equal(t, "Eligible", data["reason"])
}

func TestValidateEligibility_CircleZeroIsValid(t *testing.T) {
	m := setupRouter(t)
	m.eligibility.EXPECT().ValidateEligibility(gomock.Any(), userA, int64(0)).
		Return(domain.Ineligible(domain.ReasonCircleNotFound), nil)

	w := m.do(http.MethodPost, "/api/v1/bridge/validate-eligibility", map[string]interface{}{
		"userAddress": userA,
		"circleId":    0,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ReasonCircleNotFound, decodeData(t, w)["reason"])
}

func TestValidateEligibility_BindingErrors(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"empty body", ""},
		{"missing circle", map[string]interface{}{"userAddress": userA}},
		{"negative circle", map[string]interface{}{"userAddress": userA, "circleId": -1}},
		{"bad address", map[string]interface{}{"userAddress": "0x12", "circleId": 1}},
		{"circle as text", `{"userAddress":"` + userA + `","circleId":"seven"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupRouter(t)

			w := m.do(http.MethodPost, "/api/v1/bridge/validate-eligibility", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VAL_001", errorCode(t, w))
		})
	}
}

func TestBatchValidate_Success(t *testing.T) {
	m := setupRouter(t)
	m.batch.EXPECT().BatchCheckEligibility(gomock.Any(), []string{userA, userB}, int64(2)).
		Return(map[string]domain.EligibilityResult{
			userA: {Eligible: true, Reason: "Eligible"},
			userB: domain.Ineligible(domain.ReasonKYCRequired),
		})

	w := m.do(http.MethodPost, "/api/v1/bridge/batch-validate", map[string]interface{}{
		"userAddresses": []string{userA, " " + userB + " "},
		"circleId":      2,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	results := data["results"].(map[string]interface{})
	assert.Len(t, results, 2)
	assert.Equal(t, domain.ReasonKYCRequired, results[userB].(map[string]interface{})["reason"])
}

func TestBatchValidate_TooMany(t *testing.T) {
	m := setupRouter(t)

	w := m.do(http.MethodPost, "/api/v1/bridge/batch-validate", map[string]interface{}{
		"userAddresses": []string{userA, userB, userA, userB},
		"circleId":      1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 3")
}

func TestBatchValidate_Empty(t *testing.T) {
	m := setupRouter(t)

	w := m.do(http.MethodPost, "/api/v1/bridge/batch-validate", map[string]interface{}{
		"userAddresses": []string{},
		"circleId":      1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	m := setupRouter(t)
	m.eligibility.EXPECT().GetPlatformStats(gomock.Any()).Return(domain.PlatformStats{
		KYC:      domain.ZeroKYCStats(),
		ROSCA:    domain.CircleStats{TotalCircles: 4, TotalValueLocked: "1000", TotalRevenue: "0"},
		Degraded: []domain.Ledger{domain.LedgerIdentity},
	})

	w := m.do(http.MethodGet, "/api/v1/bridge/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, []interface{}{"identity"}, data["degraded"])
	assert.Equal(t, float64(4), data["rosca"].(map[string]interface{})["total_circles"])
}

// --- Verify Handler Tests ---

func TestVerify_Success(t *testing.T) {
	m := setupRouter(t)
	m.verification.EXPECT().VerifyAndRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.VerifyRequest) (*domain.VerificationOutcome, error) {
			assert.Equal(t, "3", req.AttestationID)
			assert.JSONEq(t, `{"pi_a":["1"]}`, string(req.Proof))
			assert.Equal(t, userA, req.UserAddress)
			return &domain.VerificationOutcome{
				Disclosure:   domain.Disclosure{AttestationID: "3", DocumentType: "aadhaar", Nationality: "IN", MinimumAge: 18},
				LedgerUpdate: domain.LedgerUpdate{Attempted: true, Succeeded: true, TxHash: "0xfeed"},
			}, nil
		})

	w := m.do(http.MethodPost, "/api/v1/self/verify", `{"attestationId":3,"proof":{"pi_a":["1"]},"publicSignals":["9"],"userContextData":"0xbeef","userAddress":"`+userA+`"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "aadhaar", data["disclosure"].(map[string]interface{})["document_type"])
	assert.Equal(t, "0xfeed", data["ledger_update"].(map[string]interface{})["tx_hash"])
}

func TestVerify_ProofInvalid(t *testing.T) {
	m := setupRouter(t)
	m.verification.EXPECT().VerifyAndRecord(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrProofInvalid("age check failed"))

	w := m.do(http.MethodPost, "/api/v1/self/verify", `{"attestationId":"1","proof":{},"publicSignals":[],"userContextData":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VER_002", errorCode(t, w))
}

func TestVerify_OracleDown(t *testing.T) {
	m := setupRouter(t)
	m.verification.EXPECT().VerifyAndRecord(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrVerifierUnavailable(nil))

	w := m.do(http.MethodPost, "/api/v1/self/verify", `{"attestationId":"1","proof":{},"publicSignals":[],"userContextData":"x"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestVerify_MissingFields(t *testing.T) {
	m := setupRouter(t)

	w := m.do(http.MethodPost, "/api/v1/self/verify", `{"attestationId":"1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", errorCode(t, w))
}

// --- Health and Metrics ---

func TestHealth(t *testing.T) {
	healthy := domain.HealthSnapshot{
		Status:   domain.StatusHealthy,
		Identity: domain.ChainHealth{Name: "celo", Status: domain.StatusHealthy},
		Circle:   domain.ChainHealth{Name: "ethereum", Status: domain.StatusHealthy},
		Verifier: domain.ComponentHealth{Name: "verifier", Status: domain.StatusHealthy},
	}
	degraded := healthy
	degraded.Status = domain.StatusDegraded
	degraded.Circle = domain.ChainHealth{Name: "ethereum", Status: domain.StatusUnhealthy, Error: "circle ledger (ethereum) unreachable"}

	tests := []struct {
		name string
		snap domain.HealthSnapshot
		code int
	}{
		{"healthy", healthy, http.StatusOK},
		{"degraded", degraded, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupRouter(t)
			m.health.EXPECT().HealthCheck(gomock.Any()).Return(tt.snap)

			w := m.do(http.MethodGet, "/health", nil)

			assert.Equal(t, tt.code, w.Code)
			data := decodeData(t, w)
			assert.Equal(t, string(tt.snap.Status), data["status"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := setupRouter(t)
	metrics.New(m.registry).IncEligibilityOutcome("eligible")

	w := m.do(http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "rosca_bridge_eligibility_outcomes_total"))
}

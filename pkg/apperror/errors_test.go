package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   ErrInvalidCircleID(),
			expected: "[VAL_003] invalid circle id",
		},
		{
			name:     "with wrapped error",
			appErr:   Connectivity("identity", fmt.Errorf("dial tcp: connection refused")),
			expected: "[CHAIN_001] identity ledger unreachable: dial tcp: connection refused",
		},
		{
			name:     "revert with reason",
			appErr:   ContractRevert("circle", "getCircleInfo", "Circle does not exist", nil),
			expected: "[CHAIN_002] circle.getCircleInfo reverted: Circle does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Connectivity("circle", inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		validation   bool
		connectivity bool
		revert       bool
		verifier     bool
	}{
		{"validation", ErrInvalidAddress("0x1"), true, false, false, false},
		{"connectivity", Connectivity("identity", errors.New("timeout")), false, true, false, false},
		{"malformed counts as connectivity", MalformedResponse("identity", "getTotalStats", errors.New("abi")), false, true, false, false},
		{"revert", ContractRevert("identity", "isEligibleForROSCA", "", nil), false, false, true, false},
		{"verifier", ErrProofInvalid("bad proof"), false, false, false, true},
		{"wrapped twice", fmt.Errorf("outer: %w", ErrVerifierUnavailable(errors.New("eof"))), false, false, false, true},
		{"plain error", errors.New("boom"), false, false, false, false},
		{"nil", nil, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.connectivity, IsConnectivity(tt.err))
			assert.Equal(t, tt.revert, IsContractRevert(tt.err))
			assert.Equal(t, tt.verifier, IsExternalVerifier(tt.err))
		})
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("bad").HTTPStatus)
	assert.Equal(t, http.StatusServiceUnavailable, Connectivity("circle", nil).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, ContractRevert("circle", "x", "", nil).HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, ErrVerifierUnavailable(nil).HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, ErrProofInvalid("").HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, ErrRateLimitExceeded().HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, InternalError(nil).HTTPStatus)
}

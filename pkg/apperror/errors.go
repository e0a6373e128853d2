package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError so callers can tell a ledger outage from a
// deterministic rejection without matching on codes.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindConnectivity     Kind = "connectivity"
	KindContractRevert   Kind = "contract_revert"
	KindExternalVerifier Kind = "external_verifier"
	KindInternal         Kind = "internal"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Kind       Kind   `json:"-"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(kind Kind, code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       kind,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(kind Kind, code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       kind,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation rejects malformed input before any network call.
func Validation(message string) *AppError {
	return New(KindValidation, "VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAddress(address string) *AppError {
	return New(KindValidation, "VAL_002", fmt.Sprintf("invalid address %q", address), http.StatusBadRequest)
}

func ErrInvalidCircleID() *AppError {
	return New(KindValidation, "VAL_003", "invalid circle id", http.StatusBadRequest)
}

func ErrUnknownAttestation(id string) *AppError {
	return New(KindValidation, "VAL_004", fmt.Sprintf("unknown attestation id %q", id), http.StatusBadRequest)
}

// ---- Ledgers (CHAIN) ----

// Connectivity marks a ledger as unreachable or timed out.
func Connectivity(ledger string, err error) *AppError {
	return Wrap(KindConnectivity, "CHAIN_001", fmt.Sprintf("%s ledger unreachable", ledger), http.StatusServiceUnavailable, err)
}

// ContractRevert marks a deterministic on-chain rejection. reason is the
// decoded revert string when the node returned one.
func ContractRevert(ledger, method, reason string, err error) *AppError {
	msg := fmt.Sprintf("%s.%s reverted", ledger, method)
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, reason)
	}
	return Wrap(KindContractRevert, "CHAIN_002", msg, http.StatusUnprocessableEntity, err)
}

// MalformedResponse marks ledger output that does not decode against the ABI.
func MalformedResponse(ledger, method string, err error) *AppError {
	return Wrap(KindConnectivity, "CHAIN_003", fmt.Sprintf("%s.%s returned malformed data", ledger, method), http.StatusBadGateway, err)
}

// ---- Identity verifier (VER) ----

func ErrVerifierUnavailable(err error) *AppError {
	return Wrap(KindExternalVerifier, "VER_001", "identity verifier unavailable", http.StatusBadGateway, err)
}

func ErrProofInvalid(details string) *AppError {
	msg := "proof verification failed"
	if details != "" {
		msg = fmt.Sprintf("%s: %s", msg, details)
	}
	return New(KindExternalVerifier, "VER_002", msg, http.StatusBadRequest)
}

func ErrVerifierSchema(err error) *AppError {
	return Wrap(KindExternalVerifier, "VER_003", "identity verifier response does not match schema", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(KindValidation, "RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(KindInternal, "SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool       { return err != nil && KindOf(err) == KindValidation }
func IsConnectivity(err error) bool     { return err != nil && KindOf(err) == KindConnectivity }
func IsContractRevert(err error) bool   { return err != nil && KindOf(err) == KindContractRevert }
func IsExternalVerifier(err error) bool { return err != nil && KindOf(err) == KindExternalVerifier }

package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"rosca-bridge/config"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/pkg/apperror"
	"rosca-bridge/pkg/logger"
)

// maxResponseBytes bounds how much of an oracle response is read.
const maxResponseBytes = 1 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// verifyRequest is the oracle's input shape.
type verifyRequest struct {
	AttestationID   string          `json:"attestationId"`
	Proof           json.RawMessage `json:"proof"`
	PublicSignals   json.RawMessage `json:"publicSignals"`
	UserContextData string          `json:"userContextData"`
}

// verifyResponse is the only response shape the client accepts. Pointers
// distinguish a missing field from a zero value.
type verifyResponse struct {
	IsValidDetails *struct {
		IsValid        *bool  `json:"isValid"`
		InvalidDetails string `json:"invalidDetails"`
	} `json:"isValidDetails"`
	DiscloseOutput *struct {
		Nationality    *string `json:"nationality"`
		OlderThan      *string `json:"olderThan"`
		UserIdentifier *string `json:"userIdentifier"`
	} `json:"discloseOutput"`
}

// Client implements ports.IdentityVerifier over the oracle's HTTP API.
type Client struct {
	baseURL      string
	httpClient   HTTPClient
	attestations domain.AttestationTable
	log          zerolog.Logger
}

func NewClient(cfg config.VerifierConfig, attestations domain.AttestationTable, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.URL, "/"),
		httpClient:   httpClient,
		attestations: attestations,
		log:          logger.Component(log, "verifier_client"),
	}
}

// Verify submits a proof. Unknown attestation ids and empty inputs are
// rejected before any network call.
func (c *Client) Verify(ctx context.Context, req domain.VerifyRequest) (domain.Disclosure, error) {
	docType, ok := c.attestations.Resolve(req.AttestationID)
	if !ok {
		return domain.Disclosure{}, apperror.ErrUnknownAttestation(req.AttestationID)
	}
	if len(req.Proof) == 0 || len(req.PublicSignals) == 0 || req.UserContextData == "" {
		return domain.Disclosure{}, apperror.Validation("proof, public signals and user context data are required")
	}

	body, err := json.Marshal(verifyRequest{
		AttestationID:   req.AttestationID,
		Proof:           req.Proof,
		PublicSignals:   req.PublicSignals,
		UserContextData: req.UserContextData,
	})
	if err != nil {
		return domain.Disclosure{}, apperror.InternalError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return domain.Disclosure{}, apperror.InternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Msg("Verifier request failed")
		return domain.Disclosure{}, apperror.ErrVerifierUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Disclosure{}, apperror.ErrVerifierUnavailable(err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return domain.Disclosure{}, apperror.ErrVerifierUnavailable(fmt.Errorf("verifier returned status %d", resp.StatusCode))
	}

	disclosure, err := parseResponse(raw)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == "VER_002" {
			c.log.Info().Err(err).Str("attestation_id", req.AttestationID).Msg("Proof rejected")
		} else {
			c.log.Error().Err(err).Int("status", resp.StatusCode).Msg("Verifier response does not match schema")
		}
		return domain.Disclosure{}, err
	}
	disclosure.AttestationID = req.AttestationID
	disclosure.DocumentType = docType
	return disclosure, nil
}

// parseResponse applies the response schema once. Anything that does not
// match is a schema error, not a guess.
func parseResponse(raw []byte) (domain.Disclosure, error) {
	var resp verifyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.Disclosure{}, apperror.ErrVerifierSchema(err)
	}
	if resp.IsValidDetails == nil || resp.IsValidDetails.IsValid == nil {
		return domain.Disclosure{}, apperror.ErrVerifierSchema(errors.New("isValidDetails.isValid is missing"))
	}
	if !*resp.IsValidDetails.IsValid {
		return domain.Disclosure{}, apperror.ErrProofInvalid(resp.IsValidDetails.InvalidDetails)
	}

	out := resp.DiscloseOutput
	if out == nil || out.Nationality == nil || out.OlderThan == nil || out.UserIdentifier == nil {
		return domain.Disclosure{}, apperror.ErrVerifierSchema(errors.New("discloseOutput is incomplete"))
	}
	minAge, err := strconv.ParseUint(strings.TrimSpace(*out.OlderThan), 10, 64)
	if err != nil {
		return domain.Disclosure{}, apperror.ErrVerifierSchema(fmt.Errorf("olderThan %q: %w", *out.OlderThan, err))
	}

	return domain.Disclosure{
		Nationality:    *out.Nationality,
		MinimumAge:     minAge,
		UserIdentifier: *out.UserIdentifier,
	}, nil
}

// SelfTest checks the oracle's health endpoint.
func (c *Client) SelfTest(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return apperror.InternalError(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.ErrVerifierUnavailable(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.ErrVerifierUnavailable(fmt.Errorf("health returned status %d", resp.StatusCode))
	}
	return nil
}

package dto

import (
	"bytes"
	"encoding/json"
	"errors"
)

// EligibilityRequest is the request body for a single eligibility check.
type EligibilityRequest struct {
	UserAddress string `json:"userAddress" binding:"required,hex_address"`
	CircleID    *int64 `json:"circleId" binding:"required,gte=0"`
}

// BatchEligibilityRequest is the request body for a batch eligibility check.
// Individual malformed addresses are reported per address, not rejected.
type BatchEligibilityRequest struct {
	UserAddresses []string `json:"userAddresses" binding:"required,min=1"`
	CircleID      *int64   `json:"circleId" binding:"required,gte=0"`
}

// VerifyRequest is the request body for proof verification.
type VerifyRequest struct {
	AttestationID   FlexibleID      `json:"attestationId" binding:"required"`
	Proof           json.RawMessage `json:"proof" binding:"required"`
	PublicSignals   json.RawMessage `json:"publicSignals" binding:"required"`
	UserContextData string          `json:"userContextData" binding:"required"`
	UserAddress     string          `json:"userAddress,omitempty" binding:"omitempty,hex_address"`
}

// FlexibleID accepts either a JSON string or a JSON number. Wallet SDKs send
// attestation ids both ways.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*f = FlexibleID(t)
	case json.Number:
		*f = FlexibleID(t.String())
	default:
		return errors.New("id must be a string or a number")
	}
	return nil
}

// BatchEligibilityResponse maps each submitted address to its result.
type BatchEligibilityResponse struct {
	CircleID int64       `json:"circleId"`
	Results  interface{} `json:"results"`
}

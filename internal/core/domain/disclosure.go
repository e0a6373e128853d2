package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AttestationTable maps verifier attestation ids to document types. It is
// configuration data, not code: the oracle's id space has changed between
// revisions.
type AttestationTable map[string]DocumentType

// NewAttestationTable validates a raw id -> document type mapping.
func NewAttestationTable(raw map[string]string) (AttestationTable, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("attestation table is empty")
	}
	t := make(AttestationTable, len(raw))
	for id, doc := range raw {
		if id == "" || doc == "" {
			return nil, fmt.Errorf("attestation table entry %q=%q is incomplete", id, doc)
		}
		t[id] = DocumentType(doc)
	}
	return t, nil
}

// Resolve looks up an attestation id.
func (t AttestationTable) Resolve(id string) (DocumentType, bool) {
	doc, ok := t[id]
	return doc, ok
}

// ResolveNumeric looks up the numeric verification type stored on chain.
func (t AttestationTable) ResolveNumeric(n uint64) DocumentType {
	if doc, ok := t[strconv.FormatUint(n, 10)]; ok {
		return doc
	}
	return DocumentUnknown
}

// Disclosure is the typed result of a successful proof verification.
type Disclosure struct {
	AttestationID  string       `json:"attestation_id"`
	DocumentType   DocumentType `json:"document_type"`
	Nationality    string       `json:"nationality"`
	MinimumAge     uint64       `json:"minimum_age"`
	UserIdentifier string       `json:"user_identifier"`
}

// VerifyRequest is the input to the write-path proof verification.
type VerifyRequest struct {
	AttestationID   string          `json:"attestation_id"`
	Proof           json.RawMessage `json:"proof"`
	PublicSignals   json.RawMessage `json:"public_signals"`
	UserContextData string          `json:"user_context_data"`
	// UserAddress is the identity ledger account to record the result for.
	// Empty skips the ledger write.
	UserAddress string `json:"user_address,omitempty"`
}

// LedgerUpdate is the diagnostic attached to a successful verification.
// A failed write does not fail the verification.
type LedgerUpdate struct {
	Attempted bool   `json:"attempted"`
	Succeeded bool   `json:"succeeded"`
	TxHash    string `json:"tx_hash,omitempty"`
	Error     string `json:"error,omitempty"`
}

// VerificationOutcome is returned only for valid proofs.
type VerificationOutcome struct {
	Disclosure   Disclosure   `json:"disclosure"`
	LedgerUpdate LedgerUpdate `json:"ledger_update"`
}

package domain

import "time"

// DocumentType is the category of identity document behind an attestation.
type DocumentType string

const DocumentUnknown DocumentType = ""

// KYCRecord is the identity ledger's view of an address. It is recomputed
// on every read and never persisted.
type KYCRecord struct {
	Address               string       `json:"address"`
	IsVerified            bool         `json:"is_verified"`
	Nationality           string       `json:"nationality"`
	AgeAtVerification     uint64       `json:"age_at_verification"`
	VerificationTimestamp int64        `json:"verification_timestamp"`
	IsHuman               bool         `json:"is_human"`
	PassedOFACCheck       bool         `json:"passed_ofac_check"`
	VerificationType      DocumentType `json:"verification_type"`
	UserIdentifier        string       `json:"user_identifier"`
}

// NotVerified returns the fully defaulted record used whenever the identity
// ledger cannot vouch for an address.
func NotVerified(address string) KYCRecord {
	return KYCRecord{Address: address}
}

// Sanitized enforces that an unverified record carries no other data.
func (r KYCRecord) Sanitized() KYCRecord {
	if !r.IsVerified {
		return NotVerified(r.Address)
	}
	return r
}

// VerifiedAt converts the on-chain unix timestamp.
func (r KYCRecord) VerifiedAt() time.Time {
	if r.VerificationTimestamp == 0 {
		return time.Time{}
	}
	return time.Unix(r.VerificationTimestamp, 0).UTC()
}

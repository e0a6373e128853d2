package domain

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger identifies one of the two linked chains.
type Ledger string

const (
	// LedgerIdentity is chain A: KYC attestations and the eligibility predicate.
	LedgerIdentity Ledger = "identity"
	// LedgerCircle is chain B: ROSCA circles and membership.
	LedgerCircle Ledger = "circle"
)

var addressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsValidAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsValidAddress(s string) bool {
	return addressRe.MatchString(s)
}

// NormalizeAddress returns the EIP-55 checksummed form of a hex address.
// Callers must validate first; invalid input yields the zero address.
func NormalizeAddress(s string) string {
	return common.HexToAddress(s).Hex()
}

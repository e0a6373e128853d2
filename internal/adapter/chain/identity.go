package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/pkg/apperror"
)

// IdentityContract implements ports.IdentityLedger on top of a ChainReader
// bound to IdentityABI.
type IdentityContract struct {
	reader       ports.ChainReader
	attestations domain.AttestationTable
}

// NewIdentityContract creates a new IdentityContract.
func NewIdentityContract(reader ports.ChainReader, attestations domain.AttestationTable) *IdentityContract {
	return &IdentityContract{reader: reader, attestations: attestations}
}

// GetUserVerificationDetails reads the attestation record for address.
func (c *IdentityContract) GetUserVerificationDetails(ctx context.Context, address string) (domain.KYCRecord, error) {
	const method = "getUserVerificationDetails"

	out, err := c.reader.Call(ctx, method, common.HexToAddress(address))
	if err != nil {
		return domain.KYCRecord{}, err
	}
	if len(out) != 8 {
		return domain.KYCRecord{}, c.malformed(method, fmt.Errorf("expected 8 outputs, got %d", len(out)))
	}

	isVerified, ok1 := out[0].(bool)
	nationality, ok2 := out[1].(string)
	age, ok3 := toUint64(out[2])
	ts, ok4 := toUint64(out[3])
	isHuman, ok5 := out[4].(bool)
	ofac, ok6 := out[5].(bool)
	vt, ok7 := toUint64(out[6])
	uid, ok8 := out[7].(*big.Int)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return domain.KYCRecord{}, c.malformed(method, fmt.Errorf("unexpected output types %T", out))
	}

	record := domain.KYCRecord{
		Address:               address,
		IsVerified:            isVerified,
		Nationality:           nationality,
		AgeAtVerification:     age,
		VerificationTimestamp: int64(ts),
		IsHuman:               isHuman,
		PassedOFACCheck:       ofac,
		VerificationType:      c.attestations.ResolveNumeric(vt),
		UserIdentifier:        bigString(uid),
	}
	return record.Sanitized(), nil
}

// IsEligibleForROSCA returns the contract's verdict and reason unchanged.
func (c *IdentityContract) IsEligibleForROSCA(ctx context.Context, address, country string, minAge, maxAge uint64) (bool, string, error) {
	const method = "isEligibleForROSCA"

	out, err := c.reader.Call(ctx, method,
		common.HexToAddress(address),
		country,
		new(big.Int).SetUint64(minAge),
		new(big.Int).SetUint64(maxAge),
	)
	if err != nil {
		return false, "", err
	}
	if len(out) != 2 {
		return false, "", c.malformed(method, fmt.Errorf("expected 2 outputs, got %d", len(out)))
	}
	eligible, ok1 := out[0].(bool)
	reason, ok2 := out[1].(string)
	if !ok1 || !ok2 {
		return false, "", c.malformed(method, fmt.Errorf("unexpected output types %T", out))
	}
	return eligible, reason, nil
}

// GetTotalStats reads the registry counters.
func (c *IdentityContract) GetTotalStats(ctx context.Context) (domain.KYCStats, error) {
	const method = "getTotalStats"

	out, err := c.reader.Call(ctx, method)
	if err != nil {
		return domain.KYCStats{}, err
	}
	if len(out) != 3 {
		return domain.KYCStats{}, c.malformed(method, fmt.Errorf("expected 3 outputs, got %d", len(out)))
	}
	users, ok1 := toUint64(out[0])
	countries, ok2 := toUint64(out[1])
	scope, ok3 := out[2].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return domain.KYCStats{}, c.malformed(method, fmt.Errorf("unexpected output types %T", out))
	}
	return domain.KYCStats{
		TotalVerifiedUsers: users,
		TotalCountries:     countries,
		ConfigScope:        bigString(scope),
	}, nil
}

func (c *IdentityContract) malformed(method string, err error) error {
	return apperror.MalformedResponse(c.reader.Name(), method, err)
}

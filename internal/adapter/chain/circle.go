package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/pkg/apperror"
)

// circleInfo mirrors the getCircleInfo tuple. Field names must match the
// camel-cased ABI component names for abi.ConvertType.
type circleInfo struct {
	CircleId      *big.Int
	CircleAddress common.Address
	Creator       common.Address
	MonthlyAmount *big.Int
	MaxMembers    *big.Int
	Duration      *big.Int
	Country       string
	MinAge        *big.Int
	MaxAge        *big.Int
	MemberCount   *big.Int
	Status        uint8
}

type platformStats struct {
	TotalCircles     *big.Int
	ActiveCircles    *big.Int
	CompletedCircles *big.Int
	TotalMembers     *big.Int
	TotalValueLocked *big.Int
	TotalRevenue     *big.Int
	AvgSuccessRate   *big.Int
}

// CircleContract implements ports.CircleLedger on top of a ChainReader
// bound to CircleABI.
type CircleContract struct {
	reader ports.ChainReader
}

// NewCircleContract creates a new CircleContract.
func NewCircleContract(reader ports.ChainReader) *CircleContract {
	return &CircleContract{reader: reader}
}

// GetCircleInfo returns domain.ErrCircleNotFound both for an empty struct and
// for a revert: the factory does either for unknown ids depending on version.
func (c *CircleContract) GetCircleInfo(ctx context.Context, circleID uint64) (domain.CircleParameters, error) {
	const method = "getCircleInfo"

	out, err := c.reader.Call(ctx, method, new(big.Int).SetUint64(circleID))
	if err != nil {
		if apperror.IsContractRevert(err) {
			return domain.CircleParameters{}, fmt.Errorf("%w: %v", domain.ErrCircleNotFound, err)
		}
		return domain.CircleParameters{}, err
	}
	if len(out) != 1 {
		return domain.CircleParameters{}, c.malformed(method, fmt.Errorf("expected 1 output, got %d", len(out)))
	}

	info, err := convert[circleInfo](out[0])
	if err != nil {
		return domain.CircleParameters{}, c.malformed(method, err)
	}
	// Circle ids start at 0, so only an unset circle contract marks absence.
	if info.CircleAddress == (common.Address{}) {
		return domain.CircleParameters{}, domain.ErrCircleNotFound
	}

	minAge, ok1 := toUint64(info.MinAge)
	maxAge, ok2 := toUint64(info.MaxAge)
	maxMembers, ok3 := toUint64(info.MaxMembers)
	duration, ok4 := toUint64(info.Duration)
	if !(ok1 && ok2 && ok3 && ok4) {
		return domain.CircleParameters{}, c.malformed(method, fmt.Errorf("circle %d has out-of-range fields", circleID))
	}

	return domain.CircleParameters{
		CircleID:      circleID,
		CircleAddress: info.CircleAddress.Hex(),
		Creator:       info.Creator.Hex(),
		Country:       info.Country,
		MinAge:        minAge,
		MaxAge:        maxAge,
		MonthlyAmount: bigString(info.MonthlyAmount),
		MaxMembers:    maxMembers,
		Duration:      duration,
	}, nil
}

// GetPlatformStats reads the factory-wide counters.
func (c *CircleContract) GetPlatformStats(ctx context.Context) (domain.CircleStats, error) {
	const method = "getPlatformStats"

	out, err := c.reader.Call(ctx, method)
	if err != nil {
		return domain.CircleStats{}, err
	}
	if len(out) != 1 {
		return domain.CircleStats{}, c.malformed(method, fmt.Errorf("expected 1 output, got %d", len(out)))
	}

	s, err := convert[platformStats](out[0])
	if err != nil {
		return domain.CircleStats{}, c.malformed(method, err)
	}

	var stats domain.CircleStats
	var ok [5]bool
	stats.TotalCircles, ok[0] = toUint64(s.TotalCircles)
	stats.ActiveCircles, ok[1] = toUint64(s.ActiveCircles)
	stats.CompletedCircles, ok[2] = toUint64(s.CompletedCircles)
	stats.TotalMembers, ok[3] = toUint64(s.TotalMembers)
	stats.SuccessRate, ok[4] = toUint64(s.AvgSuccessRate)
	for _, v := range ok {
		if !v {
			return domain.CircleStats{}, c.malformed(method, fmt.Errorf("counter out of range"))
		}
	}
	stats.TotalValueLocked = bigString(s.TotalValueLocked)
	stats.TotalRevenue = bigString(s.TotalRevenue)
	return stats, nil
}

func (c *CircleContract) malformed(method string, err error) error {
	return apperror.MalformedResponse(c.reader.Name(), method, err)
}

// convert copies an abi-generated anonymous tuple struct into T. ConvertType
// panics on shape mismatch, which is a malformed response here.
func convert[T any](v interface{}) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode tuple: %v", r)
		}
	}()
	converted, ok := abi.ConvertType(v, new(T)).(*T)
	if !ok {
		return out, fmt.Errorf("decode tuple: unexpected %T", v)
	}
	return *converted, nil
}

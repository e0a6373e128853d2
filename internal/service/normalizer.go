package service

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"rosca-bridge/internal/core/domain"
)

// Normalize converts a decoded log into a ChainEvent: numeric fields become
// uint64 or decimal strings and addresses become EIP-55 checksummed hex.
func Normalize(raw domain.RawLog, observedAt time.Time) (domain.ChainEvent, error) {
	ev := domain.ChainEvent{
		Kind:       raw.Event,
		Provenance: raw.Provenance,
		ObservedAt: observedAt,
	}
	f := fields(raw.Fields)

	switch raw.Event {
	case domain.EventUserVerified:
		p := &domain.UserVerified{}
		p.UserAddress = f.address("user")
		p.UserIdentifier = f.identifier("userIdentifier")
		p.Nationality = f.str("nationality")
		p.Age = f.uint("age")
		if ts := f.uint("timestamp"); ts > 0 {
			p.VerifiedAt = time.Unix(int64(ts), 0).UTC()
		}
		ev.UserVerified = p

	case domain.EventCircleCreated:
		p := &domain.CircleCreated{}
		p.CircleID = f.uint("circleId")
		p.Creator = f.address("creator")
		p.CircleAddress = f.address("circleAddress")
		p.MonthlyAmount = f.decimal("monthlyAmount")
		p.Country = f.str("country")
		p.MaxMembers = f.uint("maxMembers")
		ev.CircleCreated = p

	case domain.EventCircleJoined:
		p := &domain.CircleJoined{}
		p.CircleID = f.uint("circleId")
		p.Member = f.address("member")
		ev.CircleJoined = p

	default:
		return domain.ChainEvent{}, fmt.Errorf("unknown event kind %q", raw.Event)
	}

	if f.err != nil {
		return domain.ChainEvent{}, fmt.Errorf("normalize %s: %w", raw.Event, f.err)
	}
	return ev, nil
}

// fieldReader records the first coercion failure so each payload can be
// filled field by field.
type fieldReader struct {
	m   map[string]interface{}
	err error
}

func fields(m map[string]interface{}) *fieldReader {
	return &fieldReader{m: m}
}

func (r *fieldReader) get(name string) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.m[name]
	if !ok || v == nil {
		r.err = fmt.Errorf("field %s is missing", name)
		return nil, false
	}
	return v, true
}

func (r *fieldReader) fail(name string, v interface{}) {
	r.err = fmt.Errorf("field %s: cannot coerce %T", name, v)
}

func (r *fieldReader) uint(name string) uint64 {
	v, ok := r.get(name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case *big.Int:
		if n.IsUint64() {
			return n.Uint64()
		}
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	case int64:
		if n >= 0 {
			return uint64(n)
		}
	case string:
		if u, err := strconv.ParseUint(n, 0, 64); err == nil {
			return u
		}
	}
	r.fail(name, v)
	return 0
}

func (r *fieldReader) decimal(name string) string {
	v, ok := r.get(name)
	if !ok {
		return ""
	}
	switch n := v.(type) {
	case *big.Int:
		return n.String()
	case string:
		if b, ok := new(big.Int).SetString(n, 0); ok {
			return b.String()
		}
	}
	if u := r.uint(name); r.err == nil {
		return strconv.FormatUint(u, 10)
	}
	r.fail(name, v)
	return ""
}

func (r *fieldReader) address(name string) string {
	v, ok := r.get(name)
	if !ok {
		return ""
	}
	switch a := v.(type) {
	case common.Address:
		return a.Hex()
	case string:
		if common.IsHexAddress(a) {
			return common.HexToAddress(a).Hex()
		}
	}
	r.fail(name, v)
	return ""
}

func (r *fieldReader) str(name string) string {
	v, ok := r.get(name)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	r.fail(name, v)
	return ""
}

// identifier accepts the uint256 and bytes32 encodings of a user identifier.
func (r *fieldReader) identifier(name string) string {
	v, ok := r.get(name)
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case [32]byte:
		return hexutil.Encode(id[:])
	case common.Hash:
		return id.Hex()
	}
	return r.decimal(name)
}

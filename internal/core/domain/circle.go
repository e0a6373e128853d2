package domain

import "errors"

// ErrCircleNotFound is returned by the circle ledger adapter when no circle
// exists for an id.
var ErrCircleNotFound = errors.New("circle not found")

// CircleParameters are the immutable terms of a circle on chain B.
type CircleParameters struct {
	CircleID      uint64 `json:"circle_id"`
	CircleAddress string `json:"circle_address"`
	Creator       string `json:"creator"`
	Country       string `json:"country"`
	MinAge        uint64 `json:"min_age"`
	MaxAge        uint64 `json:"max_age"`
	MonthlyAmount string `json:"monthly_amount"` // base units, decimal
	MaxMembers    uint64 `json:"max_members"`
	Duration      uint64 `json:"duration"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names an on-chain log the bridge subscribes to.
type EventKind string

const (
	EventUserVerified  EventKind = "UserVerified"
	EventCircleCreated EventKind = "CircleCreated"
	EventCircleJoined  EventKind = "CircleJoined"
)

// Ledger returns the chain that emits the event.
func (k EventKind) Ledger() Ledger {
	if k == EventUserVerified {
		return LedgerIdentity
	}
	return LedgerCircle
}

// EventKindsFor lists the log filters subscribed on a ledger.
func EventKindsFor(l Ledger) []EventKind {
	switch l {
	case LedgerIdentity:
		return []EventKind{EventUserVerified}
	case LedgerCircle:
		return []EventKind{EventCircleCreated, EventCircleJoined}
	default:
		return nil
	}
}

// Provenance locates a log on its ledger.
type Provenance struct {
	Ledger      Ledger `json:"ledger"`
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint   `json:"log_index"`
}

// RawLog is an ABI-decoded log whose field values still carry their wire
// types (*big.Int, common.Address, [32]byte, ...).
type RawLog struct {
	Provenance
	Event  EventKind
	Fields map[string]interface{}
}

// ChainEvent is a normalized log. Exactly one payload pointer matching Kind
// is set.
type ChainEvent struct {
	Kind       EventKind `json:"kind"`
	Provenance `json:"provenance"`
	ObservedAt time.Time `json:"observed_at"`

	UserVerified  *UserVerified  `json:"user_verified,omitempty"`
	CircleCreated *CircleCreated `json:"circle_created,omitempty"`
	CircleJoined  *CircleJoined  `json:"circle_joined,omitempty"`
}

type UserVerified struct {
	UserAddress    string    `json:"user_address"`
	UserIdentifier string    `json:"user_identifier"`
	Nationality    string    `json:"nationality"`
	Age            uint64    `json:"age"`
	VerifiedAt     time.Time `json:"verified_at"`
}

type CircleCreated struct {
	CircleID      uint64 `json:"circle_id"`
	Creator       string `json:"creator"`
	CircleAddress string `json:"circle_address"`
	MonthlyAmount string `json:"monthly_amount"`
	Country       string `json:"country"`
	MaxMembers    uint64 `json:"max_members"`
}

type CircleJoined struct {
	CircleID uint64 `json:"circle_id"`
	Member   string `json:"member"`
}

// AppEventType names a derived application event.
type AppEventType string

const (
	AppEventUserVerified           AppEventType = "user_verified"
	AppEventCircleCreated          AppEventType = "circle_created"
	AppEventCircleJoined           AppEventType = "circle_joined"
	AppEventIneligibleMemberJoined AppEventType = "ineligible_member_joined"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// AppEvent is what the monitor raises for external consumers.
type AppEvent struct {
	ID         uuid.UUID    `json:"id"`
	Type       AppEventType `json:"type"`
	Severity   Severity     `json:"severity"`
	Source     Provenance   `json:"source"`
	Data       interface{}  `json:"data"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewAppEvent stamps a derived event with an id and time.
func NewAppEvent(t AppEventType, sev Severity, src Provenance, data interface{}) AppEvent {
	return AppEvent{
		ID:         uuid.New(),
		Type:       t,
		Severity:   sev,
		Source:     src,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// CircleJoinedData carries the eligibility recomputed for the new member.
type CircleJoinedData struct {
	CircleID    uint64            `json:"circle_id"`
	Member      string            `json:"member"`
	Eligibility EligibilityResult `json:"eligibility"`
}

// IneligibleMemberData is the observe-only drift warning. Membership on the
// circle ledger is authoritative and is not rolled back.
type IneligibleMemberData struct {
	CircleID uint64 `json:"circle_id"`
	Member   string `json:"member"`
	Reason   string `json:"reason"`
}

// EventStage is where in the pipeline an event failed.
type EventStage string

const (
	StageSubscribe EventStage = "subscribe"
	StageNormalize EventStage = "normalize"
	StageHandle    EventStage = "handle"
	StagePublish   EventStage = "publish"
)

// EventError is reported on the monitor's error channel.
type EventError struct {
	Stage  EventStage
	Ledger Ledger
	Kind   EventKind
	TxHash string
	Err    error
	At     time.Time
}

func (e EventError) Error() string {
	return string(e.Stage) + " " + string(e.Kind) + " " + e.TxHash + ": " + e.Err.Error()
}

func (e EventError) Unwrap() error { return e.Err }

// SubscriptionState is the per-ledger monitor state.
type SubscriptionState string

const (
	StateStopped   SubscriptionState = "stopped"
	StateStarting  SubscriptionState = "starting"
	StateListening SubscriptionState = "listening"
)

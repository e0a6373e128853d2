package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
)

// EventHandler turns one chain event into zero or more application events.
type EventHandler func(ctx context.Context, ev domain.ChainEvent) ([]domain.AppEvent, error)

// defaultHandlers wires the built-in reactions for every subscribed kind.
func defaultHandlers(eligibility ports.EligibilityService, log zerolog.Logger) map[domain.EventKind]EventHandler {
	return map[domain.EventKind]EventHandler{
		domain.EventUserVerified:  handleUserVerified,
		domain.EventCircleCreated: handleCircleCreated,
		domain.EventCircleJoined:  circleJoinedHandler(eligibility, log),
	}
}

func handleUserVerified(_ context.Context, ev domain.ChainEvent) ([]domain.AppEvent, error) {
	if ev.UserVerified == nil {
		return nil, fmt.Errorf("%s event without payload", ev.Kind)
	}
	return []domain.AppEvent{
		domain.NewAppEvent(domain.AppEventUserVerified, domain.SeverityInfo, ev.Provenance, *ev.UserVerified),
	}, nil
}

func handleCircleCreated(_ context.Context, ev domain.ChainEvent) ([]domain.AppEvent, error) {
	if ev.CircleCreated == nil {
		return nil, fmt.Errorf("%s event without payload", ev.Kind)
	}
	return []domain.AppEvent{
		domain.NewAppEvent(domain.AppEventCircleCreated, domain.SeverityInfo, ev.Provenance, *ev.CircleCreated),
	}, nil
}

// circleJoinedHandler recomputes the new member's eligibility against the
// identity ledger. A member who would not pass today raises a warning; the
// membership itself stays as the circle ledger recorded it.
func circleJoinedHandler(eligibility ports.EligibilityService, log zerolog.Logger) EventHandler {
	return func(ctx context.Context, ev domain.ChainEvent) ([]domain.AppEvent, error) {
		joined := ev.CircleJoined
		if joined == nil {
			return nil, fmt.Errorf("%s event without payload", ev.Kind)
		}

		var result domain.EligibilityResult
		if joined.CircleID > math.MaxInt64 {
			result = domain.Ineligible(domain.ReasonCircleIDOutOfRange)
		} else {
			var err error
			result, err = eligibility.ValidateEligibility(ctx, joined.Member, int64(joined.CircleID))
			if err != nil {
				return nil, fmt.Errorf("recompute eligibility for %s: %w", joined.Member, err)
			}
		}

		events := []domain.AppEvent{
			domain.NewAppEvent(domain.AppEventCircleJoined, domain.SeverityInfo, ev.Provenance, domain.CircleJoinedData{
				CircleID:    joined.CircleID,
				Member:      joined.Member,
				Eligibility: result,
			}),
		}
		if !result.Eligible {
			log.Warn().
				Uint64("circle_id", joined.CircleID).
				Str("member", joined.Member).
				Str("reason", result.Reason).
				Str("tx_hash", ev.TxHash).
				Msg("Ineligible member joined circle")
			events = append(events, domain.NewAppEvent(domain.AppEventIneligibleMemberJoined, domain.SeverityWarning, ev.Provenance, domain.IneligibleMemberData{
				CircleID: joined.CircleID,
				Member:   joined.Member,
				Reason:   result.Reason,
			}))
		}
		return events, nil
	}
}

package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/rs/zerolog"

	"rosca-bridge/config"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/pkg/apperror"
	"rosca-bridge/pkg/logger"
)

const pushBuffer = 128

// LogWatcher implements ports.LogSource. Websocket endpoints are pushed via
// eth_subscribe; http endpoints are polled with eth_getLogs.
type LogWatcher struct {
	ledger  domain.Ledger
	name    string
	address common.Address
	abi     abi.ABI
	backend Backend
	push    bool
	poll    time.Duration
	log     zerolog.Logger
}

func NewLogWatcher(backend Backend, ledger domain.Ledger, cfg config.ChainConfig, contractABI abi.ABI, log zerolog.Logger) *LogWatcher {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &LogWatcher{
		ledger:  ledger,
		name:    cfg.Name,
		address: common.HexToAddress(cfg.ContractAddress),
		abi:     contractABI,
		backend: backend,
		push:    cfg.IsWebsocket(),
		poll:    poll,
		log:     logger.Component(log, "log_watcher").With().Str("ledger", string(ledger)).Logger(),
	}
}

func (w *LogWatcher) Ledger() domain.Ledger { return w.ledger }

// Subscribe starts delivering decoded logs of the given kinds into sink. The
// returned subscription ends when Unsubscribe is called or ctx is done.
func (w *LogWatcher) Subscribe(ctx context.Context, kinds []domain.EventKind, sink chan<- domain.RawLog) (ports.Subscription, error) {
	query, err := w.filter(kinds)
	if err != nil {
		return nil, err
	}
	if w.push {
		return w.subscribePush(ctx, query, sink)
	}
	return w.subscribePoll(ctx, query, sink)
}

func (w *LogWatcher) filter(kinds []domain.EventKind) (ethereum.FilterQuery, error) {
	ids := make([]common.Hash, 0, len(kinds))
	for _, k := range kinds {
		ev, ok := w.abi.Events[string(k)]
		if !ok {
			return ethereum.FilterQuery{}, apperror.Validation(fmt.Sprintf("event %s is not emitted by the %s ledger", k, w.ledger))
		}
		ids = append(ids, ev.ID)
	}
	return ethereum.FilterQuery{
		Addresses: []common.Address{w.address},
		Topics:    [][]common.Hash{ids},
	}, nil
}

func (w *LogWatcher) subscribePush(ctx context.Context, query ethereum.FilterQuery, sink chan<- domain.RawLog) (ports.Subscription, error) {
	logs := make(chan types.Log, pushBuffer)
	upstream, err := w.backend.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return nil, apperror.Connectivity(w.name, err)
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer upstream.Unsubscribe()
		for {
			select {
			case l := <-logs:
				if !w.deliver(l, sink, quit, ctx.Done()) {
					return nil
				}
			case err := <-upstream.Err():
				if err != nil {
					return apperror.Connectivity(w.name, err)
				}
				return nil
			case <-quit:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	}), nil
}

func (w *LogWatcher) subscribePoll(ctx context.Context, query ethereum.FilterQuery, sink chan<- domain.RawLog) (ports.Subscription, error) {
	head, err := w.backend.BlockNumber(ctx)
	if err != nil {
		return nil, apperror.Connectivity(w.name, err)
	}
	next := head + 1

	return event.NewSubscription(func(quit <-chan struct{}) error {
		ticker := time.NewTicker(w.poll)
		defer ticker.Stop()

		for {
			select {
			case <-quit:
				return nil
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}

			logs, latest, err := w.fetch(ctx, query, next)
			if err != nil {
				// Transient: keep the cursor and retry on the next tick.
				w.log.Warn().Err(err).Uint64("from_block", next).Msg("Log poll failed")
				continue
			}
			for _, l := range logs {
				if !w.deliver(l, sink, quit, ctx.Done()) {
					return nil
				}
			}
			if latest >= next {
				next = latest + 1
			}
		}
	}), nil
}

func (w *LogWatcher) fetch(ctx context.Context, query ethereum.FilterQuery, from uint64) ([]types.Log, uint64, error) {
	latest, err := w.backend.BlockNumber(ctx)
	if err != nil {
		return nil, 0, err
	}
	if latest < from {
		return nil, latest, nil
	}
	query.FromBlock = new(big.Int).SetUint64(from)
	query.ToBlock = new(big.Int).SetUint64(latest)
	logs, err := w.backend.FilterLogs(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return logs, latest, nil
}

// deliver decodes and forwards one log. It returns false when the
// subscription is shutting down.
func (w *LogWatcher) deliver(l types.Log, sink chan<- domain.RawLog, quit <-chan struct{}, done <-chan struct{}) bool {
	if l.Removed {
		w.log.Debug().Str("tx_hash", l.TxHash.Hex()).Msg("Dropping removed log")
		return true
	}
	raw, err := w.Decode(l)
	if err != nil {
		w.log.Error().Err(err).Str("tx_hash", l.TxHash.Hex()).Msg("Undecodable log")
		return true
	}
	select {
	case sink <- raw:
		return true
	case <-quit:
		return false
	case <-done:
		return false
	}
}

// Decode unpacks both the data section and the indexed topics of l into a
// RawLog keyed by ABI argument name.
func (w *LogWatcher) Decode(l types.Log) (domain.RawLog, error) {
	if len(l.Topics) == 0 {
		return domain.RawLog{}, fmt.Errorf("log has no topics")
	}
	ev, err := w.abi.EventByID(l.Topics[0])
	if err != nil {
		return domain.RawLog{}, err
	}

	fields := make(map[string]interface{}, len(ev.Inputs))
	if len(l.Data) > 0 {
		if err := w.abi.UnpackIntoMap(fields, ev.Name, l.Data); err != nil {
			return domain.RawLog{}, fmt.Errorf("unpack %s data: %w", ev.Name, err)
		}
	}
	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, l.Topics[1:]); err != nil {
		return domain.RawLog{}, fmt.Errorf("parse %s topics: %w", ev.Name, err)
	}

	return domain.RawLog{
		Provenance: domain.Provenance{
			Ledger:      w.ledger,
			TxHash:      l.TxHash.Hex(),
			BlockNumber: l.BlockNumber,
			LogIndex:    l.Index,
		},
		Event:  domain.EventKind(ev.Name),
		Fields: fields,
	}, nil
}

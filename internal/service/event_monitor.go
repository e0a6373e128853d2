package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"rosca-bridge/config"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/internal/metrics"
	"rosca-bridge/pkg/apperror"
	"rosca-bridge/pkg/logger"
)

const (
	defaultQueueSize   = 256
	defaultWorkers     = 4
	defaultErrorBuffer = 64
	resubscribeDelay   = 2 * time.Second
)

// ErrMonitorClosed is returned by StartEventMonitoring after Shutdown.
var ErrMonitorClosed = errors.New("event monitor is shut down")

// EventCallback receives every application event derived for a ledger.
type EventCallback func(domain.AppEvent)

// MonitorOption customizes an EventMonitor.
type MonitorOption func(*EventMonitor)

// WithHandler replaces the handler for one event kind.
func WithHandler(kind domain.EventKind, h EventHandler) MonitorOption {
	return func(m *EventMonitor) { m.handlers[kind] = h }
}

// WithPublisher forwards every application event to p in addition to the
// ledger's callback.
func WithPublisher(p ports.EventPublisher) MonitorOption {
	return func(m *EventMonitor) { m.publisher = p }
}

// WithResubscribeDelay sets the pause before a failed subscription is
// re-established.
func WithResubscribeDelay(d time.Duration) MonitorOption {
	return func(m *EventMonitor) { m.resubscribeDelay = d }
}

// EventMonitor subscribes to both ledgers and dispatches normalized events
// to handlers through a bounded queue drained by a fixed worker pool.
//
// Each ledger moves Stopped -> Starting -> Listening. Only Shutdown moves a
// listening ledger back to Stopped; a dropped subscription goes back to
// Starting until it is re-established.
type EventMonitor struct {
	sources          map[domain.Ledger]ports.LogSource
	handlers         map[domain.EventKind]EventHandler
	publisher        ports.EventPublisher
	resubscribeDelay time.Duration
	metrics          *metrics.Metrics
	log              zerolog.Logger

	queue     chan domain.ChainEvent
	workers   int
	workersWG sync.WaitGroup
	ingestWG  sync.WaitGroup

	// handlerCtx outlives subscriptions so queued events drain on shutdown.
	handlerCtx    context.Context
	cancelHandler context.CancelFunc
	subCtx        context.Context
	cancelSubs    context.CancelFunc

	mu        sync.Mutex
	closed    bool
	states    map[domain.Ledger]domain.SubscriptionState
	callbacks map[domain.Ledger]EventCallback

	errMu      sync.RWMutex
	errsClosed bool
	errs       chan domain.EventError

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewEventMonitor creates an EventMonitor and starts its workers. Ledgers
// stay Stopped until StartEventMonitoring is called for them.
func NewEventMonitor(
	sources []ports.LogSource,
	eligibility ports.EligibilityService,
	cfg config.MonitorConfig,
	m *metrics.Metrics,
	log zerolog.Logger,
	opts ...MonitorOption,
) *EventMonitor {
	log = logger.Component(log, "event_monitor")

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	errBuf := cfg.ErrorBuffer
	if errBuf <= 0 {
		errBuf = defaultErrorBuffer
	}

	mon := &EventMonitor{
		sources:          make(map[domain.Ledger]ports.LogSource, len(sources)),
		handlers:         defaultHandlers(eligibility, log),
		resubscribeDelay: resubscribeDelay,
		metrics:          m,
		log:              log,
		queue:            make(chan domain.ChainEvent, queueSize),
		workers:          workers,
		states:           make(map[domain.Ledger]domain.SubscriptionState, len(sources)),
		callbacks:        make(map[domain.Ledger]EventCallback, len(sources)),
		errs:             make(chan domain.EventError, errBuf),
	}
	for _, src := range sources {
		mon.sources[src.Ledger()] = src
		mon.states[src.Ledger()] = domain.StateStopped
	}
	for _, opt := range opts {
		opt(mon)
	}

	mon.handlerCtx, mon.cancelHandler = context.WithCancel(context.Background())
	mon.subCtx, mon.cancelSubs = context.WithCancel(context.Background())

	for i := 0; i < workers; i++ {
		mon.workersWG.Add(1)
		go mon.work()
	}
	return mon
}

// StartEventMonitoring subscribes to ledger and routes its derived events to
// callback. It is a no-op for a ledger that is already starting or
// listening. The subscription lives until Shutdown, not until ctx ends;
// ctx only bounds the initial subscribe.
func (m *EventMonitor) StartEventMonitoring(ctx context.Context, ledger domain.Ledger, callback EventCallback) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMonitorClosed
	}
	src, ok := m.sources[ledger]
	if !ok {
		m.mu.Unlock()
		return apperror.Validation(fmt.Sprintf("no event source for ledger %q", ledger))
	}
	if m.states[ledger] != domain.StateStopped {
		m.mu.Unlock()
		m.log.Debug().Str("ledger", string(ledger)).Msg("Monitoring already active")
		return nil
	}
	m.states[ledger] = domain.StateStarting
	m.callbacks[ledger] = callback
	m.mu.Unlock()

	raw := make(chan domain.RawLog, cap(m.queue))
	sub, err := m.subscribe(ctx, src, raw)
	if err != nil {
		m.setState(ledger, domain.StateStopped)
		m.report(domain.EventError{Stage: domain.StageSubscribe, Ledger: ledger, Err: err})
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		sub.Unsubscribe()
		return ErrMonitorClosed
	}
	m.states[ledger] = domain.StateListening
	m.ingestWG.Add(1)
	m.mu.Unlock()

	m.log.Info().Str("ledger", string(ledger)).Msg("Event monitoring started")
	go m.ingest(src, raw, sub)
	return nil
}

// subscribe opens a subscription bound to the monitor's lifetime. ctx is
// only honoured while the subscribe call itself is in progress.
func (m *EventMonitor) subscribe(ctx context.Context, src ports.LogSource, raw chan<- domain.RawLog) (ports.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return src.Subscribe(m.subCtx, domain.EventKindsFor(src.Ledger()), raw)
}

// State reports a ledger's subscription state.
func (m *EventMonitor) State(ledger domain.Ledger) domain.SubscriptionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[ledger]; ok {
		return st
	}
	return domain.StateStopped
}

// Errors streams subscription, normalization, handler and publish failures.
// Errors are dropped when the buffer is full. The channel is closed by
// Shutdown.
func (m *EventMonitor) Errors() <-chan domain.EventError {
	return m.errs
}

// Shutdown stops all subscriptions, drains queued events and stops the
// workers. Only the first call has an effect. If ctx ends before the queue
// drains, in-flight handlers are cancelled and ctx.Err() is returned.
func (m *EventMonitor) Shutdown(ctx context.Context) error {
	m.shutdownOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		for l := range m.states {
			m.states[l] = domain.StateStopped
		}
		m.mu.Unlock()

		m.cancelSubs()
		m.ingestWG.Wait()
		close(m.queue)

		done := make(chan struct{})
		go func() {
			m.workersWG.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			m.cancelHandler()
			<-done
			m.shutdownErr = ctx.Err()
		}
		m.cancelHandler()

		m.errMu.Lock()
		m.errsClosed = true
		close(m.errs)
		m.errMu.Unlock()

		m.log.Info().Msg("Event monitor stopped")
	})
	return m.shutdownErr
}

// ingest owns one ledger's subscription: it normalizes raw logs onto the
// shared queue and re-establishes the subscription when it fails.
func (m *EventMonitor) ingest(src ports.LogSource, raw chan domain.RawLog, sub ports.Subscription) {
	defer m.ingestWG.Done()
	defer func() { sub.Unsubscribe() }()

	ledger := src.Ledger()
	for {
		select {
		case <-m.subCtx.Done():
			return

		case err, ok := <-sub.Err():
			if !ok || m.subCtx.Err() != nil {
				return
			}
			if err == nil {
				err = errors.New("subscription ended")
			}
			m.report(domain.EventError{Stage: domain.StageSubscribe, Ledger: ledger, Err: err})
			m.setState(ledger, domain.StateStarting)

			sub.Unsubscribe()
			sub = m.resubscribe(src, raw)
			if sub == nil {
				return
			}
			m.setState(ledger, domain.StateListening)
			m.log.Info().Str("ledger", string(ledger)).Msg("Event subscription re-established")

		case r := <-raw:
			ev, err := Normalize(r, time.Now().UTC())
			if err != nil {
				m.report(domain.EventError{Stage: domain.StageNormalize, Ledger: ledger, Kind: r.Event, TxHash: r.TxHash, Err: err})
				continue
			}
			select {
			case m.queue <- ev:
				m.metrics.SetQueueDepth(len(m.queue))
			case <-m.subCtx.Done():
				return
			}
		}
	}
}

// resubscribe retries until it succeeds or the monitor shuts down, in which
// case it returns nil.
func (m *EventMonitor) resubscribe(src ports.LogSource, raw chan domain.RawLog) ports.Subscription {
	for {
		t := time.NewTimer(m.resubscribeDelay)
		select {
		case <-m.subCtx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}

		sub, err := src.Subscribe(m.subCtx, domain.EventKindsFor(src.Ledger()), raw)
		if err == nil {
			return sub
		}
		if m.subCtx.Err() != nil {
			return nil
		}
		m.report(domain.EventError{Stage: domain.StageSubscribe, Ledger: src.Ledger(), Err: err})
	}
}

func (m *EventMonitor) work() {
	defer m.workersWG.Done()
	for ev := range m.queue {
		m.metrics.SetQueueDepth(len(m.queue))
		m.dispatch(ev)
	}
}

// dispatch runs the handler for one event and fans its results out. A
// failing handler is reported and does not affect other events.
func (m *EventMonitor) dispatch(ev domain.ChainEvent) {
	handler, ok := m.handlers[ev.Kind]
	if !ok {
		m.log.Debug().Str("kind", string(ev.Kind)).Msg("No handler for event")
		return
	}

	events, err := m.runHandler(handler, ev)
	if err != nil {
		m.report(domain.EventError{Stage: domain.StageHandle, Ledger: ev.Ledger, Kind: ev.Kind, TxHash: ev.TxHash, Err: err})
		return
	}
	m.metrics.IncEventProcessed(string(ev.Ledger), string(ev.Kind))

	m.mu.Lock()
	callback := m.callbacks[ev.Ledger]
	m.mu.Unlock()

	for _, ae := range events {
		if callback != nil {
			m.runCallback(callback, ae)
		}
		if m.publisher != nil {
			if err := m.publisher.Publish(m.handlerCtx, ae); err != nil {
				m.report(domain.EventError{Stage: domain.StagePublish, Ledger: ev.Ledger, Kind: ev.Kind, TxHash: ev.TxHash, Err: err})
			}
		}
	}
}

func (m *EventMonitor) runHandler(h EventHandler, ev domain.ChainEvent) (events []domain.AppEvent, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(m.handlerCtx, ev)
}

func (m *EventMonitor) runCallback(cb EventCallback, ev domain.AppEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Str("type", string(ev.Type)).Msg("Event callback panicked")
		}
	}()
	cb(ev)
}

func (m *EventMonitor) setState(ledger domain.Ledger, st domain.SubscriptionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.states[ledger] = st
}

func (m *EventMonitor) report(e domain.EventError) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	m.metrics.IncEventError(string(e.Stage))
	m.log.Error().
		Err(e.Err).
		Str("stage", string(e.Stage)).
		Str("ledger", string(e.Ledger)).
		Str("kind", string(e.Kind)).
		Str("tx_hash", e.TxHash).
		Msg("Event processing failed")

	m.errMu.RLock()
	defer m.errMu.RUnlock()
	if m.errsClosed {
		return
	}
	select {
	case m.errs <- e:
	default:
		m.log.Warn().Str("stage", string(e.Stage)).Msg("Event error buffer full, dropping")
	}
}

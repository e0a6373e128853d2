package service

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rosca-bridge/config"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/internal/core/ports/mocks"
	"rosca-bridge/internal/metrics"
)

const waitFor = 2 * time.Second

// fakeSource is a LogSource whose logs are pushed by the test.
type fakeSource struct {
	ledger       domain.Ledger
	subscribeErr error

	mu    sync.Mutex
	sink  chan<- domain.RawLog
	subs  []*fakeSubscription
	kinds []domain.EventKind
}

func (s *fakeSource) Ledger() domain.Ledger { return s.ledger }

func (s *fakeSource) Subscribe(ctx context.Context, kinds []domain.EventKind, sink chan<- domain.RawLog) (ports.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}
	sub := &fakeSubscription{errc: make(chan error, 1)}
	s.sink = sink
	s.kinds = kinds
	s.subs = append(s.subs, sub)
	return sub, nil
}

func (s *fakeSource) emit(raw domain.RawLog) {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	sink <- raw
}

func (s *fakeSource) subscriptions() []*fakeSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*fakeSubscription(nil), s.subs...)
}

type fakeSubscription struct {
	errc         chan error
	once         sync.Once
	unsubscribed atomic.Bool
}

func (s *fakeSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.unsubscribed.Store(true)
		close(s.errc)
	})
}

func (s *fakeSubscription) Err() <-chan error { return s.errc }

type monitorDeps struct {
	identity    *fakeSource
	circle      *fakeSource
	eligibility *mocks.MockEligibilityService
	metrics     *metrics.Metrics
	received    chan domain.AppEvent
	monitor     *EventMonitor
}

func setupMonitor(t *testing.T, opts ...MonitorOption) *monitorDeps {
	ctrl := gomock.NewController(t)
	d := &monitorDeps{
		identity:    &fakeSource{ledger: domain.LedgerIdentity},
		circle:      &fakeSource{ledger: domain.LedgerCircle},
		eligibility: mocks.NewMockEligibilityService(ctrl),
		metrics:     metrics.New(prometheus.NewRegistry()),
		received:    make(chan domain.AppEvent, 16),
	}
	d.monitor = NewEventMonitor(
		[]ports.LogSource{d.identity, d.circle},
		d.eligibility,
		config.MonitorConfig{QueueSize: 8, Workers: 2, ErrorBuffer: 8},
		d.metrics,
		newTestLogger(),
		opts...,
	)
	t.Cleanup(func() { _ = d.monitor.Shutdown(context.Background()) })
	return d
}

func (d *monitorDeps) collect(ev domain.AppEvent) { d.received <- ev }

func nextEvent(t *testing.T, ch <-chan domain.AppEvent) domain.AppEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for app event")
		return domain.AppEvent{}
	}
}

func nextError(t *testing.T, ch <-chan domain.EventError) domain.EventError {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for event error")
		return domain.EventError{}
	}
}

func circleCreatedLog(id int64) domain.RawLog {
	return rawLog(domain.LedgerCircle, domain.EventCircleCreated, map[string]interface{}{
		"circleId":      big.NewInt(id),
		"creator":       common.HexToAddress(otherUser),
		"circleAddress": common.HexToAddress("0x3333333333333333333333333333333333333333"),
		"monthlyAmount": big.NewInt(1000),
		"country":       "IN",
		"maxMembers":    big.NewInt(10),
	})
}

func circleJoinedLog(id int64, member string) domain.RawLog {
	return rawLog(domain.LedgerCircle, domain.EventCircleJoined, map[string]interface{}{
		"circleId": big.NewInt(id),
		"member":   common.HexToAddress(member),
	})
}

func TestEventMonitor_StartStates(t *testing.T) {
	d := setupMonitor(t)

	assert.Equal(t, domain.StateStopped, d.monitor.State(domain.LedgerCircle))

	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))
	assert.Equal(t, domain.StateListening, d.monitor.State(domain.LedgerCircle))
	assert.Equal(t, domain.StateStopped, d.monitor.State(domain.LedgerIdentity))
	assert.Equal(t, []domain.EventKind{domain.EventCircleCreated, domain.EventCircleJoined}, d.circle.kinds)

	// A second start for a listening ledger does not resubscribe.
	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))
	assert.Len(t, d.circle.subscriptions(), 1)
}

func TestEventMonitor_UnknownLedger(t *testing.T) {
	d := setupMonitor(t)

	err := d.monitor.StartEventMonitoring(context.Background(), "bitcoin", d.collect)
	assert.Error(t, err)
}

func TestEventMonitor_SubscribeFailure(t *testing.T) {
	d := setupMonitor(t)
	d.identity.subscribeErr = errors.New("websocket handshake failed")

	err := d.monitor.StartEventMonitoring(context.Background(), domain.LedgerIdentity, d.collect)
	require.Error(t, err)
	assert.Equal(t, domain.StateStopped, d.monitor.State(domain.LedgerIdentity))

	e := nextError(t, d.monitor.Errors())
	assert.Equal(t, domain.StageSubscribe, e.Stage)
	assert.Equal(t, domain.LedgerIdentity, e.Ledger)
}

func TestEventMonitor_UserVerified(t *testing.T) {
	d := setupMonitor(t)
	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerIdentity, d.collect))

	d.identity.emit(rawLog(domain.LedgerIdentity, domain.EventUserVerified, map[string]interface{}{
		"user":           common.HexToAddress(testUser),
		"userIdentifier": big.NewInt(7),
		"nationality":    "PH",
		"age":            big.NewInt(31),
		"timestamp":      big.NewInt(1700000000),
	}))

	ev := nextEvent(t, d.received)
	assert.Equal(t, domain.AppEventUserVerified, ev.Type)
	assert.Equal(t, domain.SeverityInfo, ev.Severity)
	data, ok := ev.Data.(domain.UserVerified)
	require.True(t, ok)
	assert.Equal(t, testUser, data.UserAddress)
	assert.Equal(t, "PH", data.Nationality)
}

// A failing handler for one event must not stop later events.
func TestEventMonitor_HandlerFailureIsIsolated(t *testing.T) {
	d := setupMonitor(t, WithHandler(domain.EventCircleCreated, func(ctx context.Context, ev domain.ChainEvent) ([]domain.AppEvent, error) {
		panic("handler exploded")
	}))
	d.eligibility.EXPECT().ValidateEligibility(gomock.Any(), testUser, int64(7)).
		Return(domain.EligibilityResult{Eligible: true, Reason: "Eligible"}, nil)

	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))

	d.circle.emit(circleCreatedLog(7))
	e := nextError(t, d.monitor.Errors())
	assert.Equal(t, domain.StageHandle, e.Stage)
	assert.Equal(t, domain.EventCircleCreated, e.Kind)
	assert.Contains(t, e.Err.Error(), "handler exploded")

	d.circle.emit(circleJoinedLog(7, testUser))
	ev := nextEvent(t, d.received)
	assert.Equal(t, domain.AppEventCircleJoined, ev.Type)
	data, ok := ev.Data.(domain.CircleJoinedData)
	require.True(t, ok)
	assert.True(t, data.Eligibility.Eligible)

	assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.EventErrors.WithLabelValues("handle")))
}

func TestEventMonitor_IneligibleMemberWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockEventPublisher(ctrl)
	published := make(chan domain.AppEventType, 4)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev domain.AppEvent) error {
		published <- ev.Type
		return nil
	}).Times(2)

	d := setupMonitor(t, WithPublisher(publisher))
	d.eligibility.EXPECT().ValidateEligibility(gomock.Any(), otherUser, int64(8)).
		Return(domain.Ineligible("Country mismatch"), nil)

	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))
	d.circle.emit(circleJoinedLog(8, otherUser))

	joined := nextEvent(t, d.received)
	assert.Equal(t, domain.AppEventCircleJoined, joined.Type)

	warning := nextEvent(t, d.received)
	assert.Equal(t, domain.AppEventIneligibleMemberJoined, warning.Type)
	assert.Equal(t, domain.SeverityWarning, warning.Severity)
	assert.Equal(t, domain.IneligibleMemberData{CircleID: 8, Member: otherUser, Reason: "Country mismatch"}, warning.Data)
	assert.Equal(t, "0xabc", warning.Source.TxHash)

	require.NoError(t, d.monitor.Shutdown(context.Background()))
	close(published)
	var types []domain.AppEventType
	for typ := range published {
		types = append(types, typ)
	}
	assert.Equal(t, []domain.AppEventType{domain.AppEventCircleJoined, domain.AppEventIneligibleMemberJoined}, types)
}

func TestEventMonitor_PublishFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockEventPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))

	d := setupMonitor(t, WithPublisher(publisher))
	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))
	d.circle.emit(circleCreatedLog(3))

	// The callback still sees the event.
	ev := nextEvent(t, d.received)
	assert.Equal(t, domain.AppEventCircleCreated, ev.Type)

	e := nextError(t, d.monitor.Errors())
	assert.Equal(t, domain.StagePublish, e.Stage)
}

func TestEventMonitor_MalformedLogIsReported(t *testing.T) {
	d := setupMonitor(t)
	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))

	d.circle.emit(rawLog(domain.LedgerCircle, domain.EventCircleJoined, map[string]interface{}{"circleId": big.NewInt(1)}))

	e := nextError(t, d.monitor.Errors())
	assert.Equal(t, domain.StageNormalize, e.Stage)
	assert.Equal(t, "0xabc", e.TxHash)
}

func TestEventMonitor_Resubscribes(t *testing.T) {
	d := setupMonitor(t, WithResubscribeDelay(10*time.Millisecond))
	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))

	first := d.circle.subscriptions()[0]
	first.errc <- errors.New("connection reset")

	e := nextError(t, d.monitor.Errors())
	assert.Equal(t, domain.StageSubscribe, e.Stage)

	require.Eventually(t, func() bool {
		return len(d.circle.subscriptions()) == 2 && d.monitor.State(domain.LedgerCircle) == domain.StateListening
	}, waitFor, 5*time.Millisecond)
	assert.True(t, first.unsubscribed.Load())

	d.circle.emit(circleCreatedLog(11))
	ev := nextEvent(t, d.received)
	assert.Equal(t, domain.AppEventCircleCreated, ev.Type)
}

func TestEventMonitor_Shutdown(t *testing.T) {
	d := setupMonitor(t)
	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerIdentity, d.collect))
	require.NoError(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect))

	require.NoError(t, d.monitor.Shutdown(context.Background()))

	assert.Equal(t, domain.StateStopped, d.monitor.State(domain.LedgerIdentity))
	assert.Equal(t, domain.StateStopped, d.monitor.State(domain.LedgerCircle))
	for _, sub := range append(d.identity.subscriptions(), d.circle.subscriptions()...) {
		assert.True(t, sub.unsubscribed.Load())
	}

	_, open := <-d.monitor.Errors()
	assert.False(t, open)

	// Idempotent, and the monitor cannot be restarted.
	require.NoError(t, d.monitor.Shutdown(context.Background()))
	assert.ErrorIs(t, d.monitor.StartEventMonitoring(context.Background(), domain.LedgerCircle, d.collect), ErrMonitorClosed)
}

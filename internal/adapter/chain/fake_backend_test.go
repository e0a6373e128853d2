package chain_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeBackend answers eth_call by method name and serves logs from memory.
type fakeBackend struct {
	abi abi.ABI

	mu       sync.Mutex
	handlers map[string]func(args []interface{}) ([]byte, error)
	calls    map[string]int
	logs     []types.Log

	height    atomic.Uint64
	heightErr error

	pushed chan<- types.Log
	sub    *fakeSub
}

func newFakeBackend(contractABI abi.ABI) *fakeBackend {
	return &fakeBackend{
		abi:      contractABI,
		handlers: make(map[string]func(args []interface{}) ([]byte, error)),
		calls:    make(map[string]int),
	}
}

// returns packs outs as the result of method.
func (f *fakeBackend) returns(method string, outs ...interface{}) {
	f.handle(method, func([]interface{}) ([]byte, error) {
		return f.abi.Methods[method].Outputs.Pack(outs...)
	})
}

func (f *fakeBackend) fails(method string, err error) {
	f.handle(method, func([]interface{}) ([]byte, error) { return nil, err })
}

func (f *fakeBackend) handle(method string, fn func(args []interface{}) ([]byte, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method] = fn
}

func (f *fakeBackend) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	m, err := f.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := m.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls[m.Name]++
	fn := f.handlers[m.Name]
	f.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(args)
}

func (f *fakeBackend) BlockNumber(context.Context) (uint64, error) {
	if f.heightErr != nil {
		return 0, f.heightErr
	}
	return f.height.Load(), nil
}

func (f *fakeBackend) queueLogs(logs ...types.Log) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, logs...)
}

func (f *fakeBackend) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out, keep []types.Log
	for _, l := range f.logs {
		if l.BlockNumber >= q.FromBlock.Uint64() && l.BlockNumber <= q.ToBlock.Uint64() {
			out = append(out, l)
		} else {
			keep = append(keep, l)
		}
	}
	f.logs = keep
	return out, nil
}

func (f *fakeBackend) SubscribeFilterLogs(_ context.Context, _ ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = ch
	f.sub = &fakeSub{errc: make(chan error, 1)}
	return f.sub, nil
}

type fakeSub struct {
	errc         chan error
	unsubscribed atomic.Bool
}

func (s *fakeSub) Unsubscribe()      { s.unsubscribed.Store(true) }
func (s *fakeSub) Err() <-chan error { return s.errc }

// revertError mimics the JSON-RPC error geth returns for a reverted call.
type revertError struct {
	data string
}

func (e revertError) Error() string          { return "execution reverted" }
func (e revertError) ErrorData() interface{} { return e.data }

func newRevertError(reason string) revertError {
	stringType, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: stringType}}.Pack(reason)
	data := append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...)
	return revertError{data: hexutil.Encode(data)}
}

var errDialRefused = errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")

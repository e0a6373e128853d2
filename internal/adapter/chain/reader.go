package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"rosca-bridge/config"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/pkg/apperror"
)

// Backend is the slice of *ethclient.Client the adapters use.
type Backend interface {
	ethereum.ContractCaller
	ethereum.LogFilterer
	BlockNumber(ctx context.Context) (uint64, error)
}

// DialClient opens the RPC connection for one ledger. The caller owns the
// client and closes it on shutdown.
func DialClient(ctx context.Context, cfg config.ChainConfig) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, apperror.Connectivity(cfg.Name, err)
	}
	return client, nil
}

// Reader implements ports.ChainReader over a single contract.
type Reader struct {
	ledger  domain.Ledger
	name    string
	address common.Address
	abi     abi.ABI
	backend Backend
	timeout time.Duration
}

// NewReader creates a new Reader for the contract at cfg.ContractAddress.
func NewReader(backend Backend, ledger domain.Ledger, cfg config.ChainConfig, contractABI abi.ABI) *Reader {
	return &Reader{
		ledger:  ledger,
		name:    cfg.Name,
		address: common.HexToAddress(cfg.ContractAddress),
		abi:     contractABI,
		backend: backend,
		timeout: cfg.CallTimeout,
	}
}

// Ledger reports which of the two chains this reader is bound to.
func (r *Reader) Ledger() domain.Ledger { return r.ledger }

// Name is the configured chain name.
func (r *Reader) Name() string { return r.name }

// ContractAddress is the checksummed address of the bound contract.
func (r *Reader) ContractAddress() string { return r.address.Hex() }

// BlockHeight returns the latest block number. Any failure is a
// connectivity error.
func (r *Reader) BlockHeight(ctx context.Context) (uint64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	height, err := r.backend.BlockNumber(ctx)
	if err != nil {
		return 0, apperror.Connectivity(r.name, err)
	}
	return height, nil
}

// Call packs args for method, runs an eth_call against the latest block and
// unpacks the outputs.
func (r *Reader) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	input, err := r.abi.Pack(method, args...)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("pack %s: %w", method, err))
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	output, err := r.backend.CallContract(ctx, ethereum.CallMsg{To: &r.address, Data: input}, nil)
	if err != nil {
		return nil, classifyError(r.name, method, err)
	}

	values, err := r.abi.Unpack(method, output)
	if err != nil {
		return nil, apperror.MalformedResponse(r.name, method, err)
	}
	return values, nil
}

func (r *Reader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// classifyError splits node failures into deterministic reverts and
// everything else. Only a revert is a business outcome.
func classifyError(ledger, method string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.Connectivity(ledger, err)
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return apperror.ContractRevert(ledger, method, revertReason(dataErr), err)
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return apperror.ContractRevert(ledger, method, reasonFromMessage(err.Error()), err)
	}
	return apperror.Connectivity(ledger, err)
}

func revertReason(dataErr rpc.DataError) string {
	if hexData, ok := dataErr.ErrorData().(string); ok {
		if data, err := hexutil.Decode(hexData); err == nil {
			if reason, err := abi.UnpackRevert(data); err == nil {
				return reason
			}
		}
	}
	return reasonFromMessage(dataErr.Error())
}

func reasonFromMessage(msg string) string {
	const prefix = "execution reverted: "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return ""
}

// toUint64 narrows an unpacked uint256. Values above 2^64 are malformed for
// every counter the bridge reads.
func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil || !n.IsUint64() {
			return 0, false
		}
		return n.Uint64(), true
	case uint8:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

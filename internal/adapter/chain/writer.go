package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"rosca-bridge/config"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/pkg/apperror"
)

// ErrWriterNotConfigured is returned by NewLedgerWriter when no signer key is
// set. The bridge then runs read-only.
var ErrWriterNotConfigured = errors.New("ledger writer not configured")

// LedgerWriter implements ports.LedgerWriter by sending recordVerification
// to the identity contract. It sends exactly once; there are no retries.
type LedgerWriter struct {
	name     string
	contract *bind.BoundContract
	key      *ecdsa.PrivateKey
	chainID  *big.Int
}

func NewLedgerWriter(backend bind.ContractBackend, cfg config.ChainConfig, contractABI abi.ABI) (*LedgerWriter, error) {
	if cfg.SignerKey == "" {
		return nil, ErrWriterNotConfigured
	}
	if cfg.ChainID <= 0 {
		return nil, fmt.Errorf("%s: chain_id is required for signing", cfg.Name)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SignerKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid signer key: %w", cfg.Name, err)
	}

	address := common.HexToAddress(cfg.ContractAddress)
	return &LedgerWriter{
		name:     cfg.Name,
		contract: bind.NewBoundContract(address, contractABI, backend, backend, backend),
		key:      key,
		chainID:  big.NewInt(cfg.ChainID),
	}, nil
}

// From is the account the writer signs with.
func (w *LedgerWriter) From() string {
	return crypto.PubkeyToAddress(w.key.PublicKey).Hex()
}

func (w *LedgerWriter) RecordVerification(ctx context.Context, address string, d domain.Disclosure) (string, error) {
	const method = "recordVerification"

	if !domain.IsValidAddress(address) {
		return "", apperror.ErrInvalidAddress(address)
	}
	uid, ok := new(big.Int).SetString(d.UserIdentifier, 0)
	if !ok || uid.Sign() < 0 {
		return "", apperror.Validation(fmt.Sprintf("user identifier %q is not an unsigned integer", d.UserIdentifier))
	}
	vt, err := strconv.ParseUint(d.AttestationID, 10, 8)
	if err != nil {
		return "", apperror.ErrUnknownAttestation(d.AttestationID)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(w.key, w.chainID)
	if err != nil {
		return "", apperror.InternalError(err)
	}
	opts.Context = ctx

	tx, err := w.contract.Transact(opts, method,
		common.HexToAddress(address),
		d.Nationality,
		new(big.Int).SetUint64(d.MinimumAge),
		uint8(vt),
		uid,
	)
	if err != nil {
		return "", classifyError(w.name, method, err)
	}
	return tx.Hash().Hex(), nil
}

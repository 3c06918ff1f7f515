package ethereum

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/ledger"
	"github.com/feral-file/ff-ledger/internal/logger"
)

// tokenReadABI covers the optional metadata and introspection calls of ERC721, ERC1155 and ERC165
const tokenReadABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"baseURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"interfaceId","type":"bytes4"}],"name":"supportsInterface","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// ErrEmptyResult is returned when a call returns no data, e.g. the target has no code
var ErrEmptyResult = errors.New("empty call result")

type contractReader struct {
	client      adapter.EthClient
	abi         abi.ABI
	callTimeout time.Duration
}

// NewContractReader creates a contract reader over an Ethereum client.
// Every call is bounded by callTimeout.
func NewContractReader(client adapter.EthClient, callTimeout time.Duration) (ledger.ContractReader, error) {
	parsed, err := abi.JSON(strings.NewReader(tokenReadABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}

	return &contractReader{
		client:      client,
		abi:         parsed,
		callTimeout: callTimeout,
	}, nil
}

// call packs method, executes eth_call under the per-call timeout and returns the raw result
func (r *contractReader) call(ctx context.Context, contract string, method string, args ...interface{}) ([]byte, error) {
	data, err := r.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	to := common.HexToAddress(contract)
	result, err := r.client.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("failed to call %s: %w", method, ErrEmptyResult)
	}

	return result, nil
}

// callString executes a call whose output is a single string.
// Legacy contracts answering with bytes32 are decoded up to the first zero byte.
func (r *contractReader) callString(ctx context.Context, contract string, method string, args ...interface{}) (string, error) {
	result, err := r.call(ctx, contract, method, args...)
	if err != nil {
		return "", err
	}

	var out string
	if err := r.abi.UnpackIntoInterface(&out, method, result); err != nil {
		if len(result) == 32 {
			return string(bytes.TrimRight(result, "\x00")), nil
		}
		return "", fmt.Errorf("failed to unpack %s: %w", method, err)
	}

	return out, nil
}

func (r *contractReader) Name(ctx context.Context, contract string) (string, error) {
	return r.callString(ctx, contract, "name")
}

func (r *contractReader) Symbol(ctx context.Context, contract string) (string, error) {
	return r.callString(ctx, contract, "symbol")
}

func (r *contractReader) URIPrefix(ctx context.Context, contract string, standard domain.Standard) (string, error) {
	switch standard {
	case domain.StandardERC721:
		return r.callString(ctx, contract, "baseURI")
	case domain.StandardERC1155:
		return r.callString(ctx, contract, "uri", big.NewInt(0))
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedStandard, standard)
	}
}

func (r *contractReader) TokenURI(ctx context.Context, contract string, tokenID *big.Int) (string, error) {
	return r.callString(ctx, contract, "tokenURI", tokenID)
}

func (r *contractReader) SupportsInterface(ctx context.Context, contract string, interfaceID [4]byte) domain.Capability {
	result, err := r.call(ctx, contract, "supportsInterface", interfaceID)
	if err != nil {
		logger.DebugCtx(ctx, "supportsInterface probe failed",
			zap.String("contract", contract),
			zap.String("interface_id", common.Bytes2Hex(interfaceID[:])),
			zap.Error(err))
		return domain.CapabilityIndeterminate
	}

	return decodeBool(result)
}

// decodeBool maps an ABI-encoded bool to a capability.
// Anything but exactly one word holding 0 or 1 is indeterminate.
func decodeBool(result []byte) domain.Capability {
	if len(result) != 32 {
		return domain.CapabilityIndeterminate
	}
	for _, b := range result[:31] {
		if b != 0 {
			return domain.CapabilityIndeterminate
		}
	}

	switch result[31] {
	case 0:
		return domain.CapabilityUnsupported
	case 1:
		return domain.CapabilitySupported
	default:
		return domain.CapabilityIndeterminate
	}
}

package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia
}

// Standard is the closed set of token standards the ledger folds
type Standard string

const (
	StandardERC721  Standard = "erc721"
	StandardERC1155 Standard = "erc1155"
)

// Valid reports whether the standard is one of the known standards
func (s Standard) Valid() bool {
	return s == StandardERC721 || s == StandardERC1155
}

// Capability is the tri-state outcome of a best-effort capability probe
type Capability int

const (
	// CapabilityIndeterminate means the probe reverted, timed out or returned garbage
	CapabilityIndeterminate Capability = iota
	CapabilitySupported
	CapabilityUnsupported
)

func (c Capability) String() string {
	switch c {
	case CapabilitySupported:
		return "supported"
	case CapabilityUnsupported:
		return "unsupported"
	default:
		return "indeterminate"
	}
}

// EventMeta carries the on-chain origin of a decoded event
type EventMeta struct {
	Contract    string
	TxHash      string
	BlockNumber uint64
	LogIndex    uint64
	Timestamp   time.Time
}

// SourceEventID returns the identifier of the originating log, unique per chain
func (m EventMeta) SourceEventID() string {
	return fmt.Sprintf("%d-%d", m.BlockNumber, m.LogIndex)
}

// MetadataURISet is a decoded ERC-1155 URI event
type MetadataURISet struct {
	EventMeta
	TokenID *big.Int
	Value   string
}

// SingleTransfer is a decoded ERC-1155 TransferSingle event
type SingleTransfer struct {
	EventMeta
	Operator string
	From     string
	To       string
	TokenID  *big.Int
	Amount   *big.Int
}

// BatchTransfer is a decoded ERC-1155 TransferBatch event. TokenIDs and Amounts are parallel arrays.
type BatchTransfer struct {
	EventMeta
	Operator string
	From     string
	To       string
	TokenIDs []*big.Int
	Amounts  []*big.Int
}

// LegacyTransfer is a decoded ERC-721 Transfer event. The amount is implicitly 1.
type LegacyTransfer struct {
	EventMeta
	From    string
	To      string
	TokenID *big.Int
}

// CanonicalTransfer is the uniform shape every transfer notification is folded as
type CanonicalTransfer struct {
	Collection string
	Operator   string
	From       string
	To         string
	TokenID    *big.Int
	Amount     *big.Int
	Standard   Standard
	// Suffix disambiguates records derived from one source event, "" or "-<index>"
	Suffix string
}

// IsMint reports whether the transfer creates tokens
func (t CanonicalTransfer) IsMint() bool {
	return t.From == ETHEREUM_ZERO_ADDRESS
}

// IsBurn reports whether the transfer destroys tokens
func (t CanonicalTransfer) IsBurn() bool {
	return t.To == ETHEREUM_ZERO_ADDRESS
}

// NormalizeAddress normalizes an address to the lowercased hex form used as account and contract key
func NormalizeAddress(address string) string {
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// NormalizeAddresses normalizes a list of addresses in place
func NormalizeAddresses(addresses []string) []string {
	for i, address := range addresses {
		addresses[i] = NormalizeAddress(address)
	}
	return addresses
}

// IsZeroAddress reports whether the address is the mint/burn sentinel
func IsZeroAddress(address string) bool {
	return NormalizeAddress(address) == ETHEREUM_ZERO_ADDRESS
}

// TokenKey returns the token key: <contract>-0x<hex token id>
func TokenKey(contract string, tokenID *big.Int) string {
	return fmt.Sprintf("%s-0x%s", NormalizeAddress(contract), tokenID.Text(16))
}

// BalanceKey returns the balance key: <token key>-<account>
func BalanceKey(tokenKey string, account string) string {
	return fmt.Sprintf("%s-%s", tokenKey, NormalizeAddress(account))
}

// TransferKey returns the transfer record key: <block>-<log index><suffix>
func TransferKey(meta EventMeta, suffix string) string {
	return meta.SourceEventID() + suffix
}

// BatchSuffix returns the record suffix for the i-th element of a batch
func BatchSuffix(i int) string {
	return fmt.Sprintf("-%d", i)
}

package registry

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/domain"
)

// BlacklistRegistry answers whether events of a contract must be left out of the ledger
//
//go:generate mockgen -source=blacklist.go -destination=../mocks/blacklist_registry.go -package=mocks -mock_names=BlacklistRegistry=MockBlacklistRegistry
type BlacklistRegistry interface {
	// IsBlacklisted checks if a contract address is blacklisted for a given chain
	IsBlacklisted(chainID domain.Chain, contractAddress string) bool
}

// BlacklistData represents the structure of the blacklist file
// Key format: "chain_id" -> list of contract addresses
type BlacklistData map[string][]string

// maxBlacklistFileSize bounds the blacklist file read into memory
const maxBlacklistFileSize = 16 * 1024 * 1024

type blacklistRegistry struct {
	// "chain:contract" -> true
	contracts map[string]bool
}

// BlacklistRegistryLoader loads a blacklist registry from a JSON file
type BlacklistRegistryLoader struct {
	fs   adapter.FileSystem
	io   adapter.IO
	json adapter.JSON
}

// NewBlacklistRegistryLoader creates a loader reading through the given adapters
func NewBlacklistRegistryLoader(fs adapter.FileSystem, io adapter.IO, json adapter.JSON) *BlacklistRegistryLoader {
	return &BlacklistRegistryLoader{fs: fs, io: io, json: json}
}

// Load reads and indexes the blacklist file
func (l *BlacklistRegistryLoader) Load(filePath string) (BlacklistRegistry, error) {
	f, err := l.fs.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blacklist file: %w", err)
	}
	defer f.Close()

	data, err := l.io.ReadAll(f, maxBlacklistFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read blacklist file: %w", err)
	}

	var blacklistData BlacklistData
	if err := l.json.Unmarshal(data, &blacklistData); err != nil {
		return nil, fmt.Errorf("failed to parse blacklist JSON: %w", err)
	}

	return NewBlacklistRegistry(blacklistData), nil
}

// NewBlacklistRegistry indexes blacklist data for lookups
func NewBlacklistRegistry(data BlacklistData) BlacklistRegistry {
	bl := &blacklistRegistry{
		contracts: make(map[string]bool),
	}

	for chainID, addresses := range data {
		for _, addr := range addresses {
			bl.contracts[blacklistKey(domain.Chain(chainID), addr)] = true
		}
	}

	return bl
}

// IsBlacklisted checks if a contract address is blacklisted for a given chain.
// An empty chain is read as Ethereum mainnet.
func (b *blacklistRegistry) IsBlacklisted(chainID domain.Chain, contractAddress string) bool {
	if b == nil {
		return false
	}
	return b.contracts[blacklistKey(chainID, contractAddress)]
}

func blacklistKey(chainID domain.Chain, contractAddress string) string {
	if chainID == "" {
		chainID = domain.ChainEthereumMainnet
	}
	return fmt.Sprintf("%s:%s", strings.ToLower(string(chainID)), strings.ToLower(strings.TrimSpace(contractAddress)))
}

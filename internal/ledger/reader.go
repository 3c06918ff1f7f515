package ledger

import (
	"context"
	"math/big"

	"github.com/feral-file/ff-ledger/internal/domain"
)

// ContractReader is the best-effort read collaborator used for enrichment and capability probing.
// String reads return an error on revert, timeout or undecodable output.
//
//go:generate mockgen -source=reader.go -destination=../mocks/contract_reader.go -package=mocks -mock_names=ContractReader=MockContractReader
type ContractReader interface {
	// Name reads name()
	Name(ctx context.Context, contract string) (string, error)
	// Symbol reads symbol()
	Symbol(ctx context.Context, contract string) (string, error)
	// URIPrefix reads baseURI() for ERC721 and uri(0) for ERC1155
	URIPrefix(ctx context.Context, contract string, standard domain.Standard) (string, error)
	// TokenURI reads tokenURI(tokenId)
	TokenURI(ctx context.Context, contract string, tokenID *big.Int) (string, error)
	// SupportsInterface probes supportsInterface(id). Reverts, timeouts and malformed answers are indeterminate.
	SupportsInterface(ctx context.Context, contract string, interfaceID [4]byte) domain.Capability
}

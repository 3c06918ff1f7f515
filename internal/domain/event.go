package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventKind is the decoded log type carried by a LedgerEvent
type EventKind string

const (
	EventKindURI            EventKind = "uri"
	EventKindTransferSingle EventKind = "transfer_single"
	EventKindTransferBatch  EventKind = "transfer_batch"
	EventKindTransfer       EventKind = "transfer"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// LedgerEvent is the wire envelope published by the log-decoding frontend.
// Numbers are decimal strings (or 0x-prefixed hex) so uint256 values survive JSON.
type LedgerEvent struct {
	Kind            EventKind `json:"kind"`
	Chain           Chain     `json:"chain"`
	ContractAddress string    `json:"contract_address"`
	Operator        string    `json:"operator,omitempty"`
	From            string    `json:"from,omitempty"`
	To              string    `json:"to,omitempty"`
	TokenID         string    `json:"token_id,omitempty"`
	Amount          string    `json:"amount,omitempty"`
	TokenIDs        []string  `json:"token_ids,omitempty"`
	Amounts         []string  `json:"amounts,omitempty"`
	URI             *string   `json:"uri,omitempty"`
	TxHash          string    `json:"tx_hash"`
	BlockNumber     uint64    `json:"block_number"`
	LogIndex        uint64    `json:"log_index"`
	Timestamp       time.Time `json:"timestamp"`
}

// Meta returns the origin of the event with the contract address normalized
func (e *LedgerEvent) Meta() EventMeta {
	return EventMeta{
		Contract:    NormalizeAddress(e.ContractAddress),
		TxHash:      strings.ToLower(e.TxHash),
		BlockNumber: e.BlockNumber,
		LogIndex:    e.LogIndex,
		Timestamp:   e.Timestamp.UTC(),
	}
}

// Subject returns the NATS subject the event is published on
func (e *LedgerEvent) Subject(prefix string) string {
	return fmt.Sprintf("%s.%s.%s", prefix, strings.ReplaceAll(string(e.Chain), ":", "_"), e.Kind)
}

// Validate checks the envelope carries every field its kind needs.
// Batch array lengths are checked by the classifier, not here.
func (e *LedgerEvent) Validate() error {
	if e.Chain != "" && !IsValidChain(e.Chain) {
		return fmt.Errorf("%w: unknown chain %q", ErrMalformedEvent, e.Chain)
	}
	if !common.IsHexAddress(e.ContractAddress) {
		return fmt.Errorf("%w: invalid contract address %q", ErrMalformedEvent, e.ContractAddress)
	}

	switch e.Kind {
	case EventKindURI:
		if e.URI == nil {
			return fmt.Errorf("%w: uri event without value", ErrMalformedEvent)
		}
		if _, err := ParseUint256(e.TokenID); err != nil {
			return err
		}
	case EventKindTransferSingle, EventKindTransferBatch, EventKindTransfer:
		addresses := []string{e.From, e.To}
		if e.Kind != EventKindTransfer {
			addresses = append(addresses, e.Operator)
		}
		for _, a := range addresses {
			if !common.IsHexAddress(a) {
				return fmt.Errorf("%w: invalid address %q", ErrMalformedEvent, a)
			}
		}

		switch e.Kind {
		case EventKindTransferSingle:
			if _, err := ParseUint256(e.TokenID); err != nil {
				return err
			}
			if _, err := ParseUint256(e.Amount); err != nil {
				return err
			}
		case EventKindTransferBatch:
			for _, v := range append(append([]string{}, e.TokenIDs...), e.Amounts...) {
				if _, err := ParseUint256(v); err != nil {
					return err
				}
			}
		case EventKindTransfer:
			if _, err := ParseUint256(e.TokenID); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedEvent, e.Kind)
	}

	return nil
}

// ToMetadataURISet converts a validated uri envelope
func (e *LedgerEvent) ToMetadataURISet() (MetadataURISet, error) {
	id, err := ParseUint256(e.TokenID)
	if err != nil {
		return MetadataURISet{}, err
	}
	value := ""
	if e.URI != nil {
		value = *e.URI
	}
	return MetadataURISet{EventMeta: e.Meta(), TokenID: id, Value: value}, nil
}

// ToSingleTransfer converts a validated transfer_single envelope
func (e *LedgerEvent) ToSingleTransfer() (SingleTransfer, error) {
	id, err := ParseUint256(e.TokenID)
	if err != nil {
		return SingleTransfer{}, err
	}
	amount, err := ParseUint256(e.Amount)
	if err != nil {
		return SingleTransfer{}, err
	}
	return SingleTransfer{
		EventMeta: e.Meta(),
		Operator:  NormalizeAddress(e.Operator),
		From:      NormalizeAddress(e.From),
		To:        NormalizeAddress(e.To),
		TokenID:   id,
		Amount:    amount,
	}, nil
}

// ToBatchTransfer converts a validated transfer_batch envelope
func (e *LedgerEvent) ToBatchTransfer() (BatchTransfer, error) {
	ids, err := parseUint256s(e.TokenIDs)
	if err != nil {
		return BatchTransfer{}, err
	}
	amounts, err := parseUint256s(e.Amounts)
	if err != nil {
		return BatchTransfer{}, err
	}
	return BatchTransfer{
		EventMeta: e.Meta(),
		Operator:  NormalizeAddress(e.Operator),
		From:      NormalizeAddress(e.From),
		To:        NormalizeAddress(e.To),
		TokenIDs:  ids,
		Amounts:   amounts,
	}, nil
}

// ToLegacyTransfer converts a validated ERC-721 transfer envelope
func (e *LedgerEvent) ToLegacyTransfer() (LegacyTransfer, error) {
	id, err := ParseUint256(e.TokenID)
	if err != nil {
		return LegacyTransfer{}, err
	}
	return LegacyTransfer{
		EventMeta: e.Meta(),
		From:      NormalizeAddress(e.From),
		To:        NormalizeAddress(e.To),
		TokenID:   id,
	}, nil
}

// ParseUint256 parses a decimal or 0x-prefixed hex string into a uint256 value
func ParseUint256(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty number", ErrMalformedEvent)
	}

	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: invalid number %q", ErrMalformedEvent, s)
	}
	if v.Sign() < 0 || v.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("%w: number out of uint256 range %q", ErrMalformedEvent, s)
	}
	return v, nil
}

func parseUint256s(values []string) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(values))
	for _, s := range values {
		v, err := ParseUint256(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

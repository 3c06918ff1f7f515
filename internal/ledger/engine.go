package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/logger"
	"github.com/feral-file/ff-ledger/internal/store"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

const defaultReadConcurrency = 3

// Options configures the engine
type Options struct {
	Mode AccountingMode
	// ReadConcurrency bounds the number of contract reads in flight
	ReadConcurrency int
}

type engine struct {
	store  store.Store
	reader ContractReader
	json   adapter.JSON
	mode   AccountingMode
	pool   pond.Pool
}

// NewEngine creates a ledger engine over a store and a contract reader
func NewEngine(s store.Store, reader ContractReader, json adapter.JSON, opts Options) Ledger {
	if opts.Mode == "" {
		opts.Mode = AccountingModeUnitStep
	}
	if opts.ReadConcurrency <= 0 {
		opts.ReadConcurrency = defaultReadConcurrency
	}

	return &engine{
		store:  s,
		reader: reader,
		json:   json,
		mode:   opts.Mode,
		pool:   pond.NewPool(opts.ReadConcurrency),
	}
}

func (e *engine) Close() {
	e.pool.StopAndWait()
}

// Handle validates a wire envelope and dispatches it to the matching handler
func (e *engine) Handle(ctx context.Context, event *domain.LedgerEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	switch event.Kind {
	case domain.EventKindURI:
		ev, err := event.ToMetadataURISet()
		if err != nil {
			return err
		}
		return e.OnMetadataURISet(ctx, ev)
	case domain.EventKindTransferSingle:
		ev, err := event.ToSingleTransfer()
		if err != nil {
			return err
		}
		_, err = e.OnSingleTransfer(ctx, ev)
		return err
	case domain.EventKindTransferBatch:
		ev, err := event.ToBatchTransfer()
		if err != nil {
			return err
		}
		_, err = e.OnBatchTransfer(ctx, ev)
		return err
	case domain.EventKindTransfer:
		ev, err := event.ToLegacyTransfer()
		if err != nil {
			return err
		}
		_, err = e.OnLegacyTransfer(ctx, ev)
		return err
	default:
		return fmt.Errorf("%w: unknown event kind %q", domain.ErrMalformedEvent, event.Kind)
	}
}

func (e *engine) OnMetadataURISet(ctx context.Context, event domain.MetadataURISet) error {
	if event.TokenID == nil {
		return fmt.Errorf("%w: missing token id", domain.ErrMalformedEvent)
	}

	uow := newUnitOfWork(e.store)

	contract, err := e.fetchOrCreateContract(ctx, uow, event.Contract, domain.StandardERC1155)
	if err != nil {
		return err
	}

	token, err := uow.resolveToken(ctx, contract, event.TokenID, domain.StandardERC1155)
	if err != nil {
		return err
	}
	token.URI = Normalize(event.Value)

	if err := e.store.ApplyChangeSet(ctx, uow.changeSet()); err != nil {
		return fmt.Errorf("failed to commit metadata uri: %w", err)
	}

	logger.DebugCtx(ctx, "Token metadata URI set",
		zap.String("token", token.ID),
		zap.String("uri", token.URI))

	return nil
}

func (e *engine) OnSingleTransfer(ctx context.Context, event domain.SingleTransfer) ([]*schema.Transfer, error) {
	if event.TokenID == nil || event.Amount == nil {
		return nil, fmt.Errorf("%w: missing token id or amount", domain.ErrMalformedEvent)
	}
	return e.fold(ctx, event.EventMeta, event.Operator, event.From, event.To, ClassifySingle(event), event)
}

func (e *engine) OnBatchTransfer(ctx context.Context, event domain.BatchTransfer) ([]*schema.Transfer, error) {
	transfers, err := ClassifyBatch(event)
	if err != nil {
		return nil, err
	}
	for i, t := range transfers {
		if t.TokenID == nil || t.Amount == nil {
			return nil, fmt.Errorf("%w: missing token id or amount at index %d", domain.ErrMalformedEvent, i)
		}
	}
	return e.fold(ctx, event.EventMeta, event.Operator, event.From, event.To, transfers, event)
}

func (e *engine) OnLegacyTransfer(ctx context.Context, event domain.LegacyTransfer) ([]*schema.Transfer, error) {
	if event.TokenID == nil {
		return nil, fmt.Errorf("%w: missing token id", domain.ErrMalformedEvent)
	}
	return e.fold(ctx, event.EventMeta, event.From, event.From, event.To, ClassifyLegacy(event), event)
}

// fold applies the canonical transfers of one source event in order and commits them together
func (e *engine) fold(
	ctx context.Context,
	meta domain.EventMeta,
	operator, from, to string,
	transfers []domain.CanonicalTransfer,
	source interface{},
) ([]*schema.Transfer, error) {
	standard := domain.StandardERC1155
	if len(transfers) > 0 {
		standard = transfers[0].Standard

		// Skip the external reads when the event was already applied
		key := domain.TransferKey(meta, transfers[0].Suffix)
		existing, err := e.store.GetTransfer(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to check transfer %s: %w", key, err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTransfer, key)
		}
	}

	uow := newUnitOfWork(e.store)

	contract, err := e.fetchOrCreateContract(ctx, uow, meta.Contract, standard)
	if err != nil {
		return nil, err
	}

	// Every party of the event is materialized, the zero address included
	for _, address := range []string{operator, from, to} {
		if _, err := uow.resolveAccount(ctx, address); err != nil {
			return nil, err
		}
	}

	raw := e.rawJSON(ctx, source)

	records := make([]*schema.Transfer, 0, len(transfers))
	for i, t := range transfers {
		record, err := e.applyTransfer(ctx, uow, contract, meta, t, uint64(i)) //nolint:gosec,G115
		if err != nil {
			return nil, err
		}
		record.Raw = raw
		uow.appendTransfer(record)
		records = append(records, record)
	}

	if err := e.store.ApplyChangeSet(ctx, uow.changeSet()); err != nil {
		return nil, fmt.Errorf("failed to commit transfers of %s: %w", meta.SourceEventID(), err)
	}

	logger.DebugCtx(ctx, "Transfers applied",
		zap.String("contract", contract.ID),
		zap.String("source_event_id", meta.SourceEventID()),
		zap.Int("records", len(records)))

	return records, nil
}

// fetchOrCreateContract resolves a contract and enriches it exactly once, when it is first created
func (e *engine) fetchOrCreateContract(ctx context.Context, uow *unitOfWork, address string, standard domain.Standard) (*schema.Contract, error) {
	contract, created, err := uow.resolveContract(ctx, address, standard)
	if err != nil {
		return nil, err
	}
	if created {
		e.enrichContract(ctx, contract)
	}
	return contract, nil
}

// enrichContract reads name, symbol and URI prefix concurrently, falling back on failure
func (e *engine) enrichContract(ctx context.Context, contract *schema.Contract) {
	name := domain.FALLBACK_CONTRACT_NAME
	symbol := domain.FALLBACK_CONTRACT_SYMBOL
	uriPrefix := domain.FALLBACK_URI_PREFIX

	group := e.pool.NewGroup()
	group.Submit(
		func() {
			if v, err := e.reader.Name(ctx, contract.ID); err == nil {
				name = v
			} else {
				logger.DebugCtx(ctx, "Contract name read failed", zap.String("contract", contract.ID), zap.Error(err))
			}
		},
		func() {
			if v, err := e.reader.Symbol(ctx, contract.ID); err == nil {
				symbol = v
			} else {
				logger.DebugCtx(ctx, "Contract symbol read failed", zap.String("contract", contract.ID), zap.Error(err))
			}
		},
		func() {
			if v, err := e.reader.URIPrefix(ctx, contract.ID, contract.Standard); err == nil {
				uriPrefix = v
			} else {
				logger.DebugCtx(ctx, "Contract URI prefix read failed", zap.String("contract", contract.ID), zap.Error(err))
			}
		},
	)
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Contract enrichment did not complete", zap.String("contract", contract.ID), zap.Error(err))
	}

	contract.Name = Normalize(name)
	contract.Symbol = Normalize(symbol)
	contract.URIPrefix = Normalize(uriPrefix)
}

// probeERC721 reports whether the contract answers ERC165 introspection for ERC721 and rejects the invalid id
func (e *engine) probeERC721(ctx context.Context, contract string) bool {
	results := make([]domain.Capability, 3)
	ids := [][4]byte{domain.InterfaceIDERC165, domain.InterfaceIDERC721, domain.InterfaceIDInvalid}

	group := e.pool.NewGroup()
	for i, id := range ids {
		group.Submit(func() {
			results[i] = e.reader.SupportsInterface(ctx, contract, id)
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Capability probe did not complete", zap.String("contract", contract), zap.Error(err))
		return false
	}

	return results[0] == domain.CapabilitySupported &&
		results[1] == domain.CapabilitySupported &&
		results[2] == domain.CapabilityUnsupported
}

// applyTransfer mutates the token, balances, accounts and contract for one canonical transfer
// and returns the transfer record to append
func (e *engine) applyTransfer(
	ctx context.Context,
	uow *unitOfWork,
	contract *schema.Contract,
	meta domain.EventMeta,
	t domain.CanonicalTransfer,
	batchIndex uint64,
) (*schema.Transfer, error) {
	if !t.Standard.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedStandard, t.Standard)
	}

	amount := decimal.NewFromBigInt(t.Amount, 0)

	// 1. Token
	token, err := uow.resolveToken(ctx, contract, t.TokenID, t.Standard)
	if err != nil {
		return nil, err
	}

	record := &schema.Transfer{
		ID:          domain.TransferKey(meta, t.Suffix),
		TxHash:      meta.TxHash,
		BlockNumber: meta.BlockNumber,
		LogIndex:    meta.LogIndex,
		BatchIndex:  batchIndex,
		Timestamp:   meta.Timestamp,
		ContractID:  contract.ID,
		TokenID:     token.ID,
		Operator:    t.Operator,
		FromAddress: t.From,
		ToAddress:   t.To,
		Value:       amount,
	}

	// 2. From side
	if t.IsMint() {
		contract.TotalSupply = contract.TotalSupply.Add(e.mode.mintStep(amount))
		mintedAt := meta.Timestamp
		token.MintTimestamp = &mintedAt

		switch t.Standard {
		case domain.StandardERC721:
			token.TotalSupply = one
			if e.probeERC721(ctx, contract.ID) {
				if uri, err := e.reader.TokenURI(ctx, contract.ID, t.TokenID); err == nil {
					token.URI = Normalize(uri)
				} else {
					logger.DebugCtx(ctx, "Token URI read failed", zap.String("token", token.ID), zap.Error(err))
				}
				creator := t.To
				token.Creator = &creator
			}
		case domain.StandardERC1155:
			if e.mode.exact() {
				token.TotalSupply = token.TotalSupply.Add(amount)
			} else {
				token.TotalSupply = one
			}
		}
	} else {
		sender, err := uow.resolveAccount(ctx, t.From)
		if err != nil {
			return nil, err
		}
		balance, err := uow.resolveBalance(ctx, token, sender)
		if err != nil {
			return nil, err
		}
		balance.Amount = e.saturatingAdd(ctx, "balance", balance.ID, balance.Amount, e.mode.debitStep(amount).Neg())
		e.adjustCounters(ctx, sender, t.Standard, e.mode.senderCounterDelta(amount))
		record.FromBalanceID = &balance.ID
	}

	// 3. To side
	if t.IsBurn() {
		contract.TotalSupply = e.saturatingAdd(ctx, "contract supply", contract.ID, contract.TotalSupply, amount.Neg())
		token.TotalSupply = e.saturatingAdd(ctx, "token supply", token.ID, token.TotalSupply, amount.Neg())
	} else {
		receiver, err := uow.resolveAccount(ctx, t.To)
		if err != nil {
			return nil, err
		}
		balance, err := uow.resolveBalance(ctx, token, receiver)
		if err != nil {
			return nil, err
		}
		balance.Amount = balance.Amount.Add(amount)
		e.adjustCounters(ctx, receiver, t.Standard, e.mode.receiverCounterDelta(amount))
		record.ToBalanceID = &balance.ID
	}

	return record, nil
}

// adjustCounters moves the aggregate and per-standard owned counters of an account.
// The unit_step receiver debit routinely reaches below zero, so its clamp is not a warning.
func (e *engine) adjustCounters(ctx context.Context, account *schema.Account, standard domain.Standard, delta decimal.Decimal) {
	if account.ID == domain.ETHEREUM_ZERO_ADDRESS {
		return
	}

	routine := !e.mode.exact() && delta.IsNegative()
	account.TotalTokensOwned = e.clampedAdd(ctx, "total tokens owned", account.ID, account.TotalTokensOwned, delta, routine)
	switch standard {
	case domain.StandardERC721:
		account.TotalERC721Owned = e.clampedAdd(ctx, "erc721 owned", account.ID, account.TotalERC721Owned, delta, routine)
	case domain.StandardERC1155:
		account.TotalERC1155Owned = e.clampedAdd(ctx, "erc1155 owned", account.ID, account.TotalERC1155Owned, delta, routine)
	}
}

// saturatingAdd returns v+delta clamped at zero
func (e *engine) saturatingAdd(ctx context.Context, field string, key string, v decimal.Decimal, delta decimal.Decimal) decimal.Decimal {
	return e.clampedAdd(ctx, field, key, v, delta, false)
}

// clampedAdd returns v+delta clamped at zero, logging the clamp at debug when it is routine
func (e *engine) clampedAdd(ctx context.Context, field string, key string, v decimal.Decimal, delta decimal.Decimal, routine bool) decimal.Decimal {
	result := v.Add(delta)
	if !result.IsNegative() {
		return result
	}

	fields := []zap.Field{
		zap.String("field", field),
		zap.String("key", key),
		zap.String("value", v.String()),
		zap.String("delta", delta.String()),
		zap.String("mode", string(e.mode)),
	}
	if routine {
		logger.DebugCtx(ctx, "Ledger counter clamped to zero", fields...)
	} else {
		logger.WarnCtx(ctx, "Ledger value would go negative, clamped to zero", fields...)
	}
	return decimal.Zero
}

// rawJSON encodes the source event for the transfer log
func (e *engine) rawJSON(ctx context.Context, source interface{}) datatypes.JSON {
	raw, err := e.json.Marshal(source)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to encode source event", zap.Error(err))
		return nil
	}
	return datatypes.JSON(raw)
}

// IsRetryable reports whether an engine error is an infrastructure failure worth retrying
func IsRetryable(err error) bool {
	return errors.Is(err, domain.ErrStoreUnavailable)
}

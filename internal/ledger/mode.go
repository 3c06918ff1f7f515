package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountingMode selects the arithmetic used by the balance and supply ledger
type AccountingMode string

const (
	// AccountingModeUnitStep reproduces the historical arithmetic: mints count 1 on the
	// contract supply, a first ERC1155 mint sets the token supply to 1, the sender balance is
	// debited by 1 and the account counters move by one unit in the opposite direction of the transfer.
	AccountingModeUnitStep AccountingMode = "unit_step"
	// AccountingModeExact moves every figure by the transferred amount
	AccountingModeExact AccountingMode = "exact"
)

var one = decimal.NewFromInt(1)

// ParseAccountingMode parses a configured mode; an empty value selects unit_step
func ParseAccountingMode(s string) (AccountingMode, error) {
	switch AccountingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AccountingModeUnitStep:
		return AccountingModeUnitStep, nil
	case AccountingModeExact:
		return AccountingModeExact, nil
	default:
		return "", fmt.Errorf("unknown accounting mode: %q", s)
	}
}

func (m AccountingMode) exact() bool {
	return m == AccountingModeExact
}

// mintStep is added to the contract supply on every mint
func (m AccountingMode) mintStep(amount decimal.Decimal) decimal.Decimal {
	if m.exact() {
		return amount
	}
	return one
}

// debitStep is subtracted from the sender balance
func (m AccountingMode) debitStep(amount decimal.Decimal) decimal.Decimal {
	if m.exact() {
		return amount
	}
	return one
}

// senderCounterDelta is applied to the sender's owned counters
func (m AccountingMode) senderCounterDelta(amount decimal.Decimal) decimal.Decimal {
	if m.exact() {
		return amount.Neg()
	}
	return one
}

// receiverCounterDelta is applied to the receiver's owned counters
func (m AccountingMode) receiverCounterDelta(amount decimal.Decimal) decimal.Decimal {
	if m.exact() {
		return amount
	}
	return one.Neg()
}

package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transfer represents the transfers table - append-only log of every applied transfer
type Transfer struct {
	// ID is <block>-<log index> plus "-<i>" for batch elements
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TxHash is the originating transaction
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// BlockNumber is the block the log was emitted in
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint"`
	// LogIndex is the position of the log in the block
	LogIndex uint64 `gorm:"column:log_index;not null;type:bigint"`
	// BatchIndex is the element position inside a batch notification, 0 otherwise
	BatchIndex uint64 `gorm:"column:batch_index;not null;type:bigint;default:0"`
	// Timestamp is the block time
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// ContractID references the collection
	ContractID string `gorm:"column:contract_id;not null;type:text"`
	// TokenID references the token
	TokenID string `gorm:"column:token_id;not null;type:text;index:idx_transfers_token_id"`
	// Operator is the address that triggered the transfer
	Operator string `gorm:"column:operator;not null;type:text"`
	// FromAddress is the sender, the zero address for mints
	FromAddress string `gorm:"column:from_address;not null;type:text;index:idx_transfers_from_address"`
	// ToAddress is the receiver, the zero address for burns
	ToAddress string `gorm:"column:to_address;not null;type:text;index:idx_transfers_to_address"`
	// Value is the transferred quantity
	Value decimal.Decimal `gorm:"column:value;not null;type:numeric(78,0)"`
	// FromBalanceID is the sender balance touched by the transfer, nil for mints
	FromBalanceID *string `gorm:"column:from_balance_id;type:text"`
	// ToBalanceID is the receiver balance touched by the transfer, nil for burns
	ToBalanceID *string `gorm:"column:to_balance_id;type:text"`
	// Raw contains the decoded event envelope the record was derived from
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was appended
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}

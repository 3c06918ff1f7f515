package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-ledger/internal/domain"
)

// Token represents the tokens table - one row per (contract, token id)
type Token struct {
	// ID is the token key: <contract>-0x<hex token id>
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ContractID references the collection
	ContractID string `gorm:"column:contract_id;not null;type:text;index:idx_tokens_contract_id"`
	// TokenID is the on-chain token identifier
	TokenID decimal.Decimal `gorm:"column:token_id;not null;type:numeric(78,0)"`
	// Standard is the token standard
	Standard domain.Standard `gorm:"column:standard;not null;type:text"`
	// URI is the per-token metadata URI
	URI string `gorm:"column:uri;not null;type:text;default:''"`
	// Creator is the first receiver of a probed ERC721 mint
	Creator *string `gorm:"column:creator;type:text"`
	// MintTimestamp is the block time of the latest mint
	MintTimestamp *time.Time `gorm:"column:mint_timestamp;type:timestamptz"`
	// TotalSupply is the running token supply
	TotalSupply decimal.Decimal `gorm:"column:total_supply;not null;type:numeric(78,0);default:0"`
	// CreatedAt is the timestamp when this token was first seen
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this token was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}

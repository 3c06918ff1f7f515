package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents the accounts table - one row per address seen in a transfer
type Account struct {
	// ID is the lowercased hex address
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TotalTokensOwned is the aggregate owned counter across all standards
	TotalTokensOwned decimal.Decimal `gorm:"column:total_tokens_owned;not null;type:numeric(78,0);default:0"`
	// TotalERC721Owned is the owned counter for single-owner tokens
	TotalERC721Owned decimal.Decimal `gorm:"column:total_erc721_owned;not null;type:numeric(78,0);default:0"`
	// TotalERC1155Owned is the owned counter for multi-quantity tokens
	TotalERC1155Owned decimal.Decimal `gorm:"column:total_erc1155_owned;not null;type:numeric(78,0);default:0"`
	// CreatedAt is the timestamp when this account was first seen
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this account was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance represents the balances table - quantity of a token held by an account
type Balance struct {
	// ID is the balance key: <token key>-<account>
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TokenID references the token being owned
	TokenID string `gorm:"column:token_id;not null;type:text;index:idx_balances_token_id"`
	// AccountID references the holder
	AccountID string `gorm:"column:account_id;not null;type:text;index:idx_balances_account_id"`
	// Amount is the quantity held, never negative
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,0);default:0"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}

package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-ledger/internal/domain"
)

// Contract represents the contracts table - one row per token collection
type Contract struct {
	// ID is the lowercased hex contract address
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Standard is the token standard the contract was first seen with
	Standard domain.Standard `gorm:"column:standard;not null;type:text"`
	// Name is the enriched collection name, "NONAME" when the read failed
	Name string `gorm:"column:name;not null;type:text"`
	// Symbol is the enriched collection symbol, "NONE" when the read failed
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// URIPrefix is baseURI() for ERC721 or uri(0) for ERC1155
	URIPrefix string `gorm:"column:uri_prefix;not null;type:text"`
	// TotalSupply is the running collection supply
	TotalSupply decimal.Decimal `gorm:"column:total_supply;not null;type:numeric(78,0);default:0"`
	// CreatedAt is the timestamp when this contract was first seen
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this contract was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Contract model
func (Contract) TableName() string {
	return "contracts"
}

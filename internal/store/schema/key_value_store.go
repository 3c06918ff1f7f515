package schema

import "time"

// KeyValueStore represents the key_value_store table - small pieces of worker state such as
// the last folded block per chain ("ledger_cursor:<chain>")
type KeyValueStore struct {
	// Key is the state name
	Key string `gorm:"column:key;primaryKey;type:text"`
	// Value is the state encoded as text
	Value string `gorm:"column:value;not null;type:text"`
	// CreatedAt is the timestamp when the key was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the value last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the KeyValueStore model
func (KeyValueStore) TableName() string {
	return "key_value_store"
}

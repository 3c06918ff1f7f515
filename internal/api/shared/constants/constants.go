package constants

const (
	MAX_PAGE_SIZE           = 100
	DEFAULT_OFFSET          = uint64(0)
	DEFAULT_BALANCES_LIMIT  = 20
	DEFAULT_TOKENS_LIMIT    = 20
	DEFAULT_HOLDERS_LIMIT   = 20
	DEFAULT_TRANSFERS_LIMIT = 20
)

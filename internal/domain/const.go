package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Enrichment fallbacks used when a collection read reverts, times out or is not implemented
	FALLBACK_CONTRACT_NAME   = "NONAME"
	FALLBACK_CONTRACT_SYMBOL = "NONE"
	FALLBACK_URI_PREFIX      = ""
)

// ERC-165 interface identifiers used by the mint-time capability probe
var (
	InterfaceIDERC165  = [4]byte{0x01, 0xff, 0xc9, 0xa7}
	InterfaceIDERC721  = [4]byte{0x80, 0xac, 0x58, 0xcd}
	InterfaceIDInvalid = [4]byte{0xff, 0xff, 0xff, 0xff}
)

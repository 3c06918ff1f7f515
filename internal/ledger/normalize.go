package ledger

import "strings"

// Normalize makes a contract-supplied string safe to store.
// A lone NUL becomes the empty string; any other NUL and every invalid UTF-8 sequence is replaced by U+FFFD.
func Normalize(s string) string {
	if s == "\x00" {
		return ""
	}
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", "\uFFFD"), "\uFFFD")
}

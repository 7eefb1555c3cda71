package extract

import "strings"

// decodeText decodes plain-text bytes as UTF-8. Invalid byte sequences are
// dropped rather than replaced, so mostly-valid files survive a few bad
// bytes instead of failing outright.
func decodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

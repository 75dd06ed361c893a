package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// HashToken returns the hex SHA-256 digest stored in place of a raw session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// TruncateRunes shortens s to at most limit runes, appending suffix when anything was cut.
func TruncateRunes(s string, limit int, suffix string) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	var b strings.Builder
	count := 0
	for _, r := range s {
		if count == limit {
			break
		}
		b.WriteRune(r)
		count++
	}
	b.WriteString(suffix)

	return b.String()
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

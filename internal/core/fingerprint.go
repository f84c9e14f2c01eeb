package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the sha256 hex digest of the raw code text. It is a
// stored attribute and an optional cache key, never a uniqueness constraint.
func Fingerprint(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// CountNonBlankLines counts the lines of code, excluding blank and
// whitespace-only lines.
func CountNonBlankLines(code string) int {
	count := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

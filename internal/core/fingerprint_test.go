package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	first := Fingerprint("print(1)\n")
	second := Fingerprint("print(1)\n")

	assert.Len(t, first, 64)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, Fingerprint("print(2)\n"))

	// Known sha256 of the empty string.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Fingerprint(""))
}

func TestCountNonBlankLines(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"Blank line excluded", "print(1)\n\nprint(2)\n", 2},
		{"Empty input", "", 0},
		{"Only whitespace", "   \n\t\n", 0},
		{"No trailing newline", "a\nb", 2},
		{"Indented lines count", "def f():\n    return 1\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountNonBlankLines(tt.code))
		})
	}
}

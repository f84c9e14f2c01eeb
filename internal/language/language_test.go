package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.py", "Python"},
		{"app.js", "JavaScript"},
		{"index.ts", "TypeScript"},
		{"Main.java", "Java"},
		{"vector.cpp", "C++"},
		{"kernel.c", "C"},
		{"server.go", "Go"},
		{"lib.rs", "Rust"},
		{"script.rb", "Ruby"},
		{"page.php", "PHP"},
		{"App.swift", "Swift"},
		{"Main.kt", "Kotlin"},
		{"UPPER.PY", "Python"},
		{"notes.txt", Unknown},
		{"Makefile", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFromFilename(tt.filename))
		})
	}
}

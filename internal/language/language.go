// Package language maps file extensions to language names for uploaded code.
package language

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unknown is reported when no mapping exists for the file's extension.
const Unknown = "Unknown"

//go:embed languages.yml
var tableYAML []byte

var extensionTable = mustLoadTable()

func mustLoadTable() map[string]string {
	table := make(map[string]string)
	if err := yaml.Unmarshal(tableYAML, &table); err != nil {
		panic(fmt.Sprintf("language: invalid embedded languages.yml: %v", err))
	}
	return table
}

// DetectFromFilename returns the language for a filename based on its
// extension, or Unknown when the extension is not in the table.
func DetectFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := extensionTable[ext]; ok {
		return lang
	}
	return Unknown
}

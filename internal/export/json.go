// Package export writes merged usage records to disk.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/usage-stats/internal/types"
)

// Marshal renders records as a JSON array indented by two spaces.
// A nil slice renders as an empty array.
func Marshal(records []types.MergedRecord) ([]byte, error) {
	if records == nil {
		records = []types.MergedRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes records to path, creating parent directories as needed.
func WriteJSON(path string, records []types.MergedRecord) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

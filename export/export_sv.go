// Package export writes the current item set to delimited text files
// and PDF, and renders QR code images for part numbers.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"labstock/inventory"
)

// Delimiters maps the supported separated-value formats to their field
// separator.
var Delimiters = map[string]rune{
	"csv": ',',
	"tsv": '\t',
	"psv": '|',
}

// UniquePath returns dir/base.ext, appending a counter when the file
// already exists (base2.ext, base3.ext, ...).
func UniquePath(dir, base, ext string) string {
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext))
	for count := 2; ; count++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s%d.%s", base, count, ext))
	}
}

// WriteSV writes the items as a csv, tsv or psv file in dir and returns
// the created file path.
func WriteSV(format, dir string, items []inventory.Item) (string, error) {
	comma, ok := Delimiters[format]
	if !ok {
		return "", fmt.Errorf("unknown separated-value format %q", format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := UniquePath(dir, format+"_export", format)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = comma

	if err := w.Write(inventory.Headers()); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, item := range items {
		if err := w.Write(item.Row()); err != nil {
			return "", fmt.Errorf("failed to write row for %s: %w", item.PartNum, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export file: %w", err)
	}
	return path, nil
}

// Package output renders comparison reports for the CLI and API shells.
package output

import (
	"fmt"
	"io"

	"github.com/pricewatch/pricewatch/pkg/compare"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatText  Format = "text"
)

// Writer serializes comparison reports.
type Writer interface {
	// Write outputs a single report. Multi-product runs call it once
	// per product.
	Write(report *compare.Report) error

	// Flush ensures all buffered reports are written.
	Flush() error

	// Close releases resources.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	case FormatText:
		return NewTextWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pricewatch/pricewatch/pkg/compare"
)

// YAMLWriter writes YAML output.
type YAMLWriter struct {
	w     *bufio.Writer
	items []ReportView
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]ReportView, 0, 1),
	}
}

// Write buffers a single report.
func (w *YAMLWriter) Write(report *compare.Report) error {
	w.items = append(w.items, View(report))
	return nil
}

// Flush writes the buffered reports as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var err error
	if len(w.items) == 1 {
		err = encoder.Encode(w.items[0])
	} else {
		err = encoder.Encode(w.items)
	}
	if err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}

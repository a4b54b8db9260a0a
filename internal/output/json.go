package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/pricewatch/pricewatch/pkg/compare"
)

// JSONWriter writes pretty-printed JSON output.
type JSONWriter struct {
	w     *bufio.Writer
	items []ReportView
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     bufio.NewWriter(w),
		items: make([]ReportView, 0, 1),
	}
}

// Write buffers a single report.
func (w *JSONWriter) Write(report *compare.Report) error {
	w.items = append(w.items, View(report))
	return nil
}

// Flush writes the buffered reports. A single report is emitted as an
// object, multiple as an array.
func (w *JSONWriter) Flush() error {
	var output []byte
	var err error

	if len(w.items) == 1 {
		output, err = json.MarshalIndent(w.items[0], "", "  ")
	} else {
		output, err = json.MarshalIndent(w.items, "", "  ")
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL), one report per
// line. Suited to multi-product runs piped into line-oriented tools.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single report as a JSON line.
func (w *JSONLWriter) Write(report *compare.Report) error {
	output, err := json.Marshal(View(report))
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}

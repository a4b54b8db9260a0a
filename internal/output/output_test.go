package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pricewatch/pricewatch/pkg/compare"
)

func sampleReport() *compare.Report {
	own := decimal.RequireFromString("10.00")
	a := decimal.RequireFromString("12.00")
	return compare.Analyze(
		compare.Outcome{URL: "https://shop.test/own", Price: &own},
		[]compare.Outcome{
			{URL: "https://a.test", Price: &a},
			{URL: "https://b.test", Err: errors.New("no such host")},
		},
	)
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, Format("csv")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriter_SingleReport(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var view ReportView
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if view.OwnPrice != "10" {
		t.Errorf("own_price = %q, want 10", view.OwnPrice)
	}
	if view.Standing != "lowest" {
		t.Errorf("standing = %q, want lowest", view.Standing)
	}
	if len(view.Competitors) != 2 {
		t.Fatalf("competitors = %d, want 2", len(view.Competitors))
	}
	if view.Competitors[0].PctDiff != "-16.67" {
		t.Errorf("pct_diff = %q, want -16.67", view.Competitors[0].PctDiff)
	}
	if view.Competitors[1].Error == "" {
		t.Error("failed competitor must carry its error")
	}
}

func TestJSONWriter_MultipleReportsAsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var views []ReportView
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("got %d reports, want 2", len(views))
	}
}

func TestJSONLWriter_OneReportPerLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSONL)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var view ReportView
		if err := json.Unmarshal([]byte(line), &view); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if view.Standing != "lowest" {
			t.Errorf("line %d standing = %q, want lowest", i, view.Standing)
		}
	}
}

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var view ReportView
	if err := yaml.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if view.OwnURL != "https://shop.test/own" {
		t.Errorf("own_url = %q", view.OwnURL)
	}
}

func TestTextWriter_Narrative(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Your price: 10") {
		t.Errorf("missing own price line:\n%s", out)
	}
	if !strings.Contains(out, "16.67% cheaper") {
		t.Errorf("missing percentage line:\n%s", out)
	}
	if !strings.Contains(out, "You have the lowest price!") {
		t.Errorf("missing standing line:\n%s", out)
	}
	if !strings.Contains(out, "unable to fetch price") {
		t.Errorf("missing competitor failure line:\n%s", out)
	}
}

func TestTextWriter_OwnPriceMissing(t *testing.T) {
	report := compare.Analyze(
		compare.Outcome{URL: "https://shop.test/own", Err: errors.New("status 500")},
		[]compare.Outcome{{URL: "https://a.test", Err: errors.New("no such host")}},
	)

	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)
	if err := w.Write(report); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Unable to fetch price for https://shop.test/own") {
		t.Errorf("missing own failure line:\n%s", out)
	}
	// Competitor errors stay visible for diagnostics.
	if !strings.Contains(out, "no such host") {
		t.Errorf("missing competitor diagnostic:\n%s", out)
	}
}

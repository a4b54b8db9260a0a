package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pricewatch/pricewatch/pkg/compare"
)

// TextWriter renders the human-readable comparison narrative.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write renders a report immediately.
func (w *TextWriter) Write(report *compare.Report) error {
	if report.Own.Price == nil {
		fmt.Fprintf(w.w, "Unable to fetch price for %s\n", report.Own.URL)
		if report.Own.Err != nil {
			fmt.Fprintf(w.w, "Error: %v\n", report.Own.Err)
		}
		w.writeCompetitorErrors(report)
		return w.w.Flush()
	}

	fmt.Fprintf(w.w, "Your product (%s)\n", report.Own.URL)
	fmt.Fprintf(w.w, "Your price: %s\n\n", report.Own.Price)

	for i, c := range report.Competitors {
		switch c.Relation {
		case compare.RelationUnknown:
			fmt.Fprintf(w.w, "Competitor %d (%s): unable to fetch price\nError: %v\n",
				i+1, c.Outcome.URL, c.Outcome.Err)
		case compare.RelationMoreExpensive:
			fmt.Fprintf(w.w, "Competitor %d (%s): %s (you are %s%% more expensive)\n",
				i+1, c.Outcome.URL, c.Outcome.Price, c.PctDiff.Round(2))
		case compare.RelationCheaper:
			fmt.Fprintf(w.w, "Competitor %d (%s): %s (you are %s%% cheaper)\n",
				i+1, c.Outcome.URL, c.Outcome.Price, c.PctDiff.Abs().Round(2))
		case compare.RelationEqual:
			fmt.Fprintf(w.w, "Competitor %d (%s): %s (same price)\n",
				i+1, c.Outcome.URL, c.Outcome.Price)
		}
	}

	fmt.Fprintf(w.w, "\n%s\n", standingLine(report))
	return w.w.Flush()
}

// writeCompetitorErrors still reports competitor fetch attempts when
// the own price is missing, for diagnostic value.
func (w *TextWriter) writeCompetitorErrors(report *compare.Report) {
	for i, c := range report.Competitors {
		if c.Outcome.Err != nil {
			fmt.Fprintf(w.w, "Competitor %d (%s): unable to fetch price\nError: %v\n",
				i+1, c.Outcome.URL, c.Outcome.Err)
		} else if c.Outcome.Price != nil {
			fmt.Fprintf(w.w, "Competitor %d (%s): %s\n", i+1, c.Outcome.URL, c.Outcome.Price)
		}
	}
}

func standingLine(report *compare.Report) string {
	switch report.Standing {
	case compare.StandingLowest:
		return "You have the lowest price!"
	case compare.StandingAtOrBelow:
		return "Your price is the same as or lower than all competitors."
	case compare.StandingCheaperThanSome:
		return fmt.Sprintf("You are cheaper than %d out of %d competitors.",
			report.CheaperCount, report.ValidCount)
	case compare.StandingHighest:
		return "Your price is higher than all competitors."
	default:
		return "Unable to compare with competitors due to price fetch errors."
	}
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.w.Flush()
}

package output

import "github.com/pricewatch/pricewatch/pkg/compare"

// CompetitorView is the serializable form of one competitor comparison.
type CompetitorView struct {
	URL      string `json:"url" yaml:"url"`
	Price    string `json:"price,omitempty" yaml:"price,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	Relation string `json:"relation" yaml:"relation"`
	PctDiff  string `json:"pct_diff,omitempty" yaml:"pct_diff,omitempty"`
}

// ReportView is the serializable form of a comparison report. Prices
// render as plain decimal strings; the standing stays a discrete value
// so consumers can do their own presentation.
type ReportView struct {
	OwnURL       string           `json:"own_url" yaml:"own_url"`
	OwnPrice     string           `json:"own_price,omitempty" yaml:"own_price,omitempty"`
	OwnError     string           `json:"own_error,omitempty" yaml:"own_error,omitempty"`
	Standing     string           `json:"standing" yaml:"standing"`
	CheaperCount int              `json:"cheaper_count" yaml:"cheaper_count"`
	EqualCount   int              `json:"equal_count" yaml:"equal_count"`
	ValidCount   int              `json:"valid_count" yaml:"valid_count"`
	Competitors  []CompetitorView `json:"competitors" yaml:"competitors"`
}

// View flattens a report into its serializable form.
func View(r *compare.Report) ReportView {
	view := ReportView{
		OwnURL:       r.Own.URL,
		Standing:     r.Standing.String(),
		CheaperCount: r.CheaperCount,
		EqualCount:   r.EqualCount,
		ValidCount:   r.ValidCount,
		Competitors:  make([]CompetitorView, 0, len(r.Competitors)),
	}
	if r.Own.Price != nil {
		view.OwnPrice = r.Own.Price.String()
	}
	if r.Own.Err != nil {
		view.OwnError = r.Own.Err.Error()
	}

	for _, c := range r.Competitors {
		cv := CompetitorView{
			URL:      c.Outcome.URL,
			Relation: c.Relation.String(),
		}
		if c.Outcome.Price != nil {
			cv.Price = c.Outcome.Price.String()
		}
		if c.Outcome.Err != nil {
			cv.Error = c.Outcome.Err.Error()
		}
		if c.Relation != compare.RelationUnknown {
			cv.PctDiff = c.PctDiff.Round(2).String()
		}
		view.Competitors = append(view.Competitors, cv)
	}
	return view
}

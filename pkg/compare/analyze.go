package compare

import (
	"github.com/shopspring/decimal"
)

// Relation classifies the own price against a single competitor.
type Relation int

const (
	// RelationUnknown means the competitor price was unavailable.
	RelationUnknown Relation = iota
	// RelationCheaper means the own price is below the competitor's.
	RelationCheaper
	// RelationEqual means both prices match.
	RelationEqual
	// RelationMoreExpensive means the own price is above the competitor's.
	RelationMoreExpensive
)

func (r Relation) String() string {
	switch r {
	case RelationCheaper:
		return "cheaper"
	case RelationEqual:
		return "equal"
	case RelationMoreExpensive:
		return "more-expensive"
	default:
		return "unknown"
	}
}

// Standing classifies the own price against all competitors that
// yielded a usable price.
type Standing int

const (
	// StandingOwnUnavailable means the own price could not be fetched;
	// no comparison was attempted.
	StandingOwnUnavailable Standing = iota
	// StandingNoComparison means every competitor fetch failed.
	StandingNoComparison
	// StandingLowest means the own price is below every competitor's.
	StandingLowest
	// StandingAtOrBelow means the own price matches or undercuts every
	// competitor's.
	StandingAtOrBelow
	// StandingCheaperThanSome means the own price undercuts some
	// competitors but not all.
	StandingCheaperThanSome
	// StandingHighest means no competitor is more expensive.
	StandingHighest
)

func (s Standing) String() string {
	switch s {
	case StandingOwnUnavailable:
		return "own-unavailable"
	case StandingNoComparison:
		return "no-comparison"
	case StandingLowest:
		return "lowest"
	case StandingAtOrBelow:
		return "at-or-below"
	case StandingCheaperThanSome:
		return "cheaper-than-some"
	case StandingHighest:
		return "highest"
	default:
		return "unknown"
	}
}

// Comparison pairs a competitor outcome with its classification.
type Comparison struct {
	Outcome  Outcome
	Relation Relation
	// PctDiff is how far the own price sits above (+) or below (-)
	// this competitor's, as a percentage of the competitor price.
	// Meaningful only when Relation is not RelationUnknown.
	PctDiff decimal.Decimal
}

// Report is the aggregate result of one comparison run. Derived
// entirely from the outcomes; it holds no state beyond the run.
type Report struct {
	Own          Outcome
	Competitors  []Comparison
	Standing     Standing
	CheaperCount int
	EqualCount   int
	ValidCount   int
}

var hundred = decimal.NewFromInt(100)

// Analyze derives the comparison report from raw outcomes. It never
// fails: missing prices degrade the standing instead of erroring, and
// competitor errors stay visible for diagnostics.
func Analyze(own Outcome, competitors []Outcome) *Report {
	report := &Report{
		Own:         own,
		Competitors: make([]Comparison, 0, len(competitors)),
	}

	if own.Price == nil {
		report.Standing = StandingOwnUnavailable
		for _, c := range competitors {
			report.Competitors = append(report.Competitors, Comparison{Outcome: c})
		}
		return report
	}

	for _, c := range competitors {
		comp := Comparison{Outcome: c}
		if c.Price != nil {
			diff := own.Price.Sub(*c.Price)
			comp.PctDiff = diff.Div(*c.Price).Mul(hundred)
			switch diff.Sign() {
			case 1:
				comp.Relation = RelationMoreExpensive
			case -1:
				comp.Relation = RelationCheaper
				report.CheaperCount++
			default:
				comp.Relation = RelationEqual
				report.EqualCount++
			}
			report.ValidCount++
		}
		report.Competitors = append(report.Competitors, comp)
	}

	switch {
	case report.ValidCount == 0:
		report.Standing = StandingNoComparison
	case report.CheaperCount == report.ValidCount:
		report.Standing = StandingLowest
	case report.CheaperCount+report.EqualCount == report.ValidCount:
		report.Standing = StandingAtOrBelow
	case report.CheaperCount > 0:
		report.Standing = StandingCheaperThanSome
	default:
		report.Standing = StandingHighest
	}
	return report
}

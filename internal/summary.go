package internal

import (
	"fmt"
	"strconv"
)

// SummaryKind identifies which aggregation a summary runs
type SummaryKind string

const (
	SummaryAll      SummaryKind = "all"
	SummaryCategory SummaryKind = "category"
	SummaryDate     SummaryKind = "date"
	SummaryMonth    SummaryKind = "month"
)

// SummaryOptions are the raw filter values from the command line.
// Empty strings mean "not given". Month counts as given when MonthSet is true or
// Month is non-zero.
type SummaryOptions struct {
	All      bool
	Category string
	Date     string
	Month    int
	MonthSet bool
}

// SummaryQuery is a validated, single aggregation
type SummaryQuery struct {
	Kind     SummaryKind
	Category string
	Date     Date
	Month    int
}

// SummaryResult is the outcome of running a SummaryQuery
type SummaryResult struct {
	Query SummaryQuery
	Total float64
}

type summarySelector struct {
	kind    SummaryKind
	present func(SummaryOptions) bool
}

// summaryPrecedence is checked in order; the first present filter wins
var summaryPrecedence = []summarySelector{
	{SummaryCategory, func(o SummaryOptions) bool { return o.Category != "" }},
	{SummaryDate, func(o SummaryOptions) bool { return o.Date != "" }},
	{SummaryMonth, func(o SummaryOptions) bool { return o.MonthSet || o.Month != 0 }},
	{SummaryAll, func(o SummaryOptions) bool { return o.All }},
}

// SelectSummary picks exactly one query from the given options
func SelectSummary(opts SummaryOptions) (SummaryQuery, error) {
	for _, sel := range summaryPrecedence {
		if !sel.present(opts) {
			continue
		}
		q := SummaryQuery{Kind: sel.kind}
		switch sel.kind {
		case SummaryCategory:
			q.Category = opts.Category
		case SummaryDate:
			d, err := ParseDate(opts.Date)
			if err != nil {
				return SummaryQuery{}, err
			}
			q.Date = d
		case SummaryMonth:
			if opts.Month < 1 || opts.Month > 12 {
				return SummaryQuery{}, fmt.Errorf("%w: month %d must be between 1 and 12", ErrInvalidArgument, opts.Month)
			}
			q.Month = opts.Month
		}
		return q, nil
	}
	return SummaryQuery{}, fmt.Errorf("%w: provide --all, --category <name>, --date <YYYY-MM-DD> or --month <1-12>", ErrInvalidArgument)
}

// Run evaluates the query against the ledger
func (q SummaryQuery) Run(l *Ledger) SummaryResult {
	var total float64
	switch q.Kind {
	case SummaryCategory:
		total = l.SummarizeByCategory(q.Category)
	case SummaryDate:
		total = l.SummarizeByDate(q.Date)
	case SummaryMonth:
		total = l.SummarizeByMonth(q.Month)
	default:
		total = l.SummarizeAll()
	}
	return SummaryResult{Query: q, Total: total}
}

// Label is the human readable prefix for the result line
func (q SummaryQuery) Label() string {
	switch q.Kind {
	case SummaryDate:
		return "Expenses by date"
	case SummaryMonth:
		return "Expenses by month"
	default:
		return "Total expenses"
	}
}

// FilterValue is the filter argument as text, empty for the all query
func (q SummaryQuery) FilterValue() string {
	switch q.Kind {
	case SummaryCategory:
		return q.Category
	case SummaryDate:
		return q.Date.String()
	case SummaryMonth:
		return strconv.Itoa(q.Month)
	default:
		return ""
	}
}

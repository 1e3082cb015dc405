package internal

import (
	"errors"
	"testing"
)

func TestSummaryPrecedence(t *testing.T) {
	want := []SummaryKind{SummaryCategory, SummaryDate, SummaryMonth, SummaryAll}
	if len(summaryPrecedence) != len(want) {
		t.Fatalf("expected %d selectors, got %d", len(want), len(summaryPrecedence))
	}
	for i := range want {
		if summaryPrecedence[i].kind != want[i] {
			t.Errorf("summaryPrecedence[%d] = %s, want %s", i, summaryPrecedence[i].kind, want[i])
		}
	}
}

func TestSelectSummary(t *testing.T) {
	tests := []struct {
		name string
		opts SummaryOptions
		want SummaryKind
	}{
		{"all only", SummaryOptions{All: true}, SummaryAll},
		{"category only", SummaryOptions{Category: "food"}, SummaryCategory},
		{"date only", SummaryOptions{Date: "2025-01-10"}, SummaryDate},
		{"month only", SummaryOptions{Month: 3}, SummaryMonth},
		{"category beats everything", SummaryOptions{All: true, Category: "food", Date: "2025-01-10", Month: 3}, SummaryCategory},
		{"date beats month and all", SummaryOptions{All: true, Date: "2025-01-10", Month: 3}, SummaryDate},
		{"month beats all", SummaryOptions{All: true, Month: 3}, SummaryMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := SelectSummary(tt.opts)
			if err != nil {
				t.Fatalf("SelectSummary failed: %v", err)
			}
			if q.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", q.Kind, tt.want)
			}
		})
	}
}

func TestSelectSummary_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts SummaryOptions
	}{
		{"nothing given", SummaryOptions{}},
		{"bad date", SummaryOptions{Date: "2025-13-01"}},
		{"date wrong layout", SummaryOptions{Date: "10/01/2025"}},
		{"month too large", SummaryOptions{Month: 13}},
		{"negative month", SummaryOptions{Month: -1}},
		{"bad date hides all", SummaryOptions{All: true, Date: "nope"}},
		{"explicit zero month", SummaryOptions{Month: 0, MonthSet: true}},
		{"explicit zero month with all", SummaryOptions{All: true, MonthSet: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectSummary(tt.opts)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestSummaryQuery_Run(t *testing.T) {
	l := sampleLedger()

	tests := []struct {
		name      string
		opts      SummaryOptions
		total     float64
		label     string
		filterVal string
	}{
		{"all", SummaryOptions{All: true}, 819.75, "Total expenses", ""},
		{"category", SummaryOptions{Category: "food"}, 19.75, "Total expenses", "food"},
		{"date", SummaryOptions{Date: "2025-01-10"}, 12.50, "Expenses by date", "2025-01-10"},
		{"month", SummaryOptions{Month: 2}, 800, "Expenses by month", "2"},
		{"no match", SummaryOptions{Category: "none"}, 0, "Total expenses", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := SelectSummary(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			res := q.Run(l)
			if res.Total != tt.total {
				t.Errorf("Total = %v, want %v", res.Total, tt.total)
			}
			if q.Label() != tt.label {
				t.Errorf("Label() = %q, want %q", q.Label(), tt.label)
			}
			if q.FilterValue() != tt.filterVal {
				t.Errorf("FilterValue() = %q, want %q", q.FilterValue(), tt.filterVal)
			}
		})
	}
}

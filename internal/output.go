package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output formats
const (
	OutputTable = "table"
	OutputPlain = "plain"
	OutputJSON  = "json"
)

// NoExpensesMessage is printed for an empty ledger
const NoExpensesMessage = "No expenses found."

// JSONOutput is the root JSON object printed by list
type JSONOutput struct {
	Expenses []JSONExpense `json:"expenses"`
	Summary  JSONSummary   `json:"summary"`
}

// JSONExpense is an expense together with its current row number
type JSONExpense struct {
	Row         int     `json:"row"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// JSONSummaryResult is the JSON form of a summary query
type JSONSummaryResult struct {
	Filter   string  `json:"filter"`
	Value    string  `json:"value,omitempty"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// ValidateOutput checks format against the formats a command supports
func ValidateOutput(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown output format %q (available: %s)", ErrInvalidArgument, format, strings.Join(allowed, ", "))
}

// PrintExpenses renders the ledger in the requested format
func PrintExpenses(w io.Writer, l *Ledger, format string, c Currency) error {
	switch format {
	case OutputJSON:
		return PrintExpensesJSON(w, l, c)
	case OutputPlain:
		PrintExpensesPlain(w, l, c)
	case OutputTable, "":
		PrintExpensesTable(w, l, c)
	default:
		return fmt.Errorf("%w: unknown output format %q (available: %s, %s, %s)", ErrInvalidArgument, format, OutputTable, OutputPlain, OutputJSON)
	}
	return nil
}

// PrintExpensesJSON outputs expenses in JSON format
func PrintExpensesJSON(w io.Writer, l *Ledger, c Currency) error {
	expenses := make([]JSONExpense, 0, l.Len())
	for row, e := range l.Rows() {
		expenses = append(expenses, JSONExpense{
			Row:         row,
			Date:        e.Date.String(),
			Category:    e.Category,
			Amount:      e.Amount,
			Description: e.Description,
		})
	}

	output := JSONOutput{
		Expenses: expenses,
		Summary: JSONSummary{
			Count:    l.Len(),
			Total:    l.SummarizeAll(),
			Currency: c.Code,
		},
	}
	return writeJSON(w, output)
}

// PrintExpensesPlain prints one line per expense
func PrintExpensesPlain(w io.Writer, l *Ledger, c Currency) {
	if l.Len() == 0 {
		fmt.Fprintln(w, NoExpensesMessage)
		return
	}
	for row, e := range l.Rows() {
		fmt.Fprintln(w, FormatExpenseLine(row, e, c))
	}
}

// FormatExpenseLine formats a single expense as "N. Date: ..., Category: ..., ..."
func FormatExpenseLine(row int, e Expense, c Currency) string {
	return fmt.Sprintf("%d. Date: %s, Category: %s, Amount: %s, Description: %s",
		row, e.Date, e.Category, c.Format(e.Amount), e.Description)
}

// PrintExpensesTable outputs expenses as a formatted table
func PrintExpensesTable(w io.Writer, l *Ledger, c Currency) {
	if l.Len() == 0 {
		fmt.Fprintln(w, NoExpensesMessage)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Date", "Category", "Amount", "Description"})

	for row, e := range l.Rows() {
		amount := c.Format(e.Amount)
		if e.Amount < 0 {
			amount = text.FgGreen.Sprint(amount)
		}
		t.AppendRow(table.Row{row, e.Date.String(), e.Category, amount, e.Description})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", text.Bold.Sprint("Total"), text.Bold.Sprint(c.Format(l.SummarizeAll())), ""})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	t.Render()
}

// PrintSummary prints a summary result as a line or as JSON
func PrintSummary(w io.Writer, res SummaryResult, format string, c Currency) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, JSONSummaryResult{
			Filter:   string(res.Query.Kind),
			Value:    res.Query.FilterValue(),
			Total:    res.Total,
			Currency: c.Code,
		})
	case OutputPlain, OutputTable, "":
		fmt.Fprintf(w, "%s: %s\n", res.Query.Label(), c.Format(res.Total))
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q (available: %s, %s)", ErrInvalidArgument, format, OutputPlain, OutputJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

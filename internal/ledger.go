package internal

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Expense is a single ledger record
type Expense struct {
	Date        Date    `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// NewExpense validates user input and builds an Expense.
// A zero date means today.
func NewExpense(date Date, category string, amount float64, description string) (Expense, error) {
	if strings.TrimSpace(category) == "" {
		return Expense{}, fmt.Errorf("%w: category must not be empty", ErrInvalidArgument)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Expense{}, fmt.Errorf("%w: amount must be a finite number", ErrInvalidArgument)
	}
	if date.IsZero() {
		date = Today()
	}
	return Expense{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: description,
	}, nil
}

// Ledger is the ordered collection of expenses backing one store.
// Order is insertion order; row numbers are index+1.
type Ledger struct {
	expenses []Expense
}

// NewLedger returns a ledger holding the given expenses in order
func NewLedger(expenses ...Expense) *Ledger {
	l := &Ledger{}
	l.expenses = append(l.expenses, expenses...)
	return l
}

// Len returns the number of expenses
func (l *Ledger) Len() int {
	return len(l.expenses)
}

// Expenses returns a copy of the records in ledger order
func (l *Ledger) Expenses() []Expense {
	out := make([]Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Add appends an expense. It never fails.
func (l *Ledger) Add(e Expense) {
	l.expenses = append(l.expenses, e)
}

// Delete removes the expense at the 1-based row and returns it.
// The ledger is untouched when the row cannot be resolved.
func (l *Ledger) Delete(row int) (Expense, error) {
	idx, err := l.resolveRow(row)
	if err != nil {
		return Expense{}, err
	}
	removed := l.expenses[idx]
	l.expenses = append(l.expenses[:idx], l.expenses[idx+1:]...)
	return removed, nil
}

// resolveRow maps a user-facing row number to a slice index
func (l *Ledger) resolveRow(row int) (int, error) {
	if len(l.expenses) == 0 {
		return 0, ErrNoExpenses
	}
	if row < 1 || row > len(l.expenses) {
		return 0, fmt.Errorf("%w: row %d, expected 1-%d", ErrOutOfRange, row, len(l.expenses))
	}
	return row - 1, nil
}

// Rows yields (row number, expense) pairs in ledger order
func (l *Ledger) Rows() iter.Seq2[int, Expense] {
	return func(yield func(int, Expense) bool) {
		for i, e := range l.expenses {
			if !yield(i+1, e) {
				return
			}
		}
	}
}

func (l *Ledger) SummarizeAll() float64 {
	return l.sum(func(Expense) bool { return true })
}

// SummarizeByCategory sums expenses whose category equals label exactly
func (l *Ledger) SummarizeByCategory(label string) float64 {
	return l.sum(func(e Expense) bool { return e.Category == label })
}

func (l *Ledger) SummarizeByDate(date Date) float64 {
	return l.sum(func(e Expense) bool { return e.Date == date })
}

// SummarizeByMonth sums expenses in the given month (1-12) of any year
func (l *Ledger) SummarizeByMonth(month int) float64 {
	return l.sum(func(e Expense) bool { return int(e.Date.Month) == month })
}

// categories returns the distinct categories in first-seen order
func (l *Ledger) categories() []string {
	seen := make(map[string]bool)
	var result []string
	for _, e := range l.expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			result = append(result, e.Category)
		}
	}
	return result
}

func (l *Ledger) sum(match func(Expense) bool) float64 {
	total := decimal.Zero
	for _, e := range l.expenses {
		if match(e) {
			total = total.Add(decimal.NewFromFloat(e.Amount))
		}
	}
	return total.InexactFloat64()
}

package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultStorePath is used when neither flag, env nor config names a store
const DefaultStorePath = "expenses.json"

// StoreFormat is the persisted representation of a ledger
// Example:
//
//	{
//	  "expenses": [
//	    {"date": "2025-01-10", "category": "food", "amount": 12.5, "description": "lunch"}
//	  ]
//	}
type StoreFormat struct {
	Expenses []Expense `json:"expenses"`
}

// storeRecord is the strict decoding shape: every field must be present
type storeRecord struct {
	Date        *Date    `json:"date"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

type storeDocument struct {
	Expenses *[]storeRecord `json:"expenses"`
}

// LoadLedger reads the store at path. A missing file yields an empty ledger.
func LoadLedger(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}

	expenses, err := DecodeLedger(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	return NewLedger(expenses...), nil
}

// DecodeLedger parses store-format JSON into expenses
func DecodeLedger(data []byte) ([]Expense, error) {
	var doc storeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if doc.Expenses == nil {
		return nil, fmt.Errorf("missing \"expenses\" array")
	}

	expenses := make([]Expense, 0, len(*doc.Expenses))
	for i, rec := range *doc.Expenses {
		switch {
		case rec.Date == nil:
			return nil, fmt.Errorf("expense %d: missing date", i+1)
		case rec.Category == nil:
			return nil, fmt.Errorf("expense %d: missing category", i+1)
		case rec.Amount == nil:
			return nil, fmt.Errorf("expense %d: missing amount", i+1)
		case rec.Description == nil:
			return nil, fmt.Errorf("expense %d: missing description", i+1)
		}
		expenses = append(expenses, Expense{
			Date:        *rec.Date,
			Category:    *rec.Category,
			Amount:      *rec.Amount,
			Description: *rec.Description,
		})
	}
	return expenses, nil
}

// EncodeLedger serializes the ledger in store format
func EncodeLedger(l *Ledger) ([]byte, error) {
	data, err := json.MarshalIndent(StoreFormat{Expenses: l.Expenses()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling ledger: %w", err)
	}
	return append(data, '\n'), nil
}

// storeMode keeps the permissions of an existing store, 0644 for a new one
func storeMode(path string) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0644
	}
	return info.Mode().Perm()
}

// Save replaces the store at path with the whole ledger.
// The data goes to a temp file in the same directory which is then renamed over path.
func (l *Ledger) Save(path string) error {
	data, err := EncodeLedger(l)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file for %s: %v", ErrIO, path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %v", ErrIO, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: syncing %s: %v", ErrIO, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrIO, tmpPath, err)
	}
	if err := os.Chmod(tmpPath, storeMode(path)); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", ErrIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrIO, path, err)
	}
	committed = true
	return nil
}

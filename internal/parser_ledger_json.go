package internal

import (
	"fmt"
	"os"
)

// SourceLedgerJSON imports another store file, e.g. a backup
const SourceLedgerJSON = "ledger-json"

// ParseLedgerJSON parses a JSON file in the store format
func ParseLedgerJSON(path string) ([]Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading file: %v", ErrIO, err)
	}

	expenses, err := DecodeLedger(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return expenses, nil
}

package internal

import "errors"

var (
	// ErrCorruptStore means the store file exists but is not a well-formed ledger
	ErrCorruptStore = errors.New("corrupt store")

	// ErrIO wraps read and write failures against the store path
	ErrIO = errors.New("store i/o failure")

	// ErrOutOfRange is returned for a row number outside 1..len(ledger)
	ErrOutOfRange = errors.New("row number out of range")

	// ErrInvalidArgument covers malformed dates, amounts, months and missing fields
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoExpenses is returned when deleting from an empty ledger
	ErrNoExpenses = errors.New("no expenses found")
)

// Exit codes used by the command line
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidArgument = 2
)

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	default:
		return ExitFailure
	}
}

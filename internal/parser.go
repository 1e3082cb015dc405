package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Parser reads a file into expenses that can be appended to a ledger
type Parser interface {
	Parse(path string) ([]Expense, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]Expense, error)

func (f ParserFunc) Parse(path string) ([]Expense, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// extensionSources maps file extensions to the parser used when no format is given
var extensionSources = map[string]string{}

// RegisterParser registers a parser with the given name and the file extensions it claims
func RegisterParser(name string, p Parser, extensions ...string) {
	parsers[name] = p
	for _, ext := range extensions {
		extensionSources[strings.ToLower(ext)] = name
	}
}

// GetParser returns the parser for the given source type
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("%w: unknown source type: %s (available: %v)", ErrInvalidArgument, source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns the registered source types, sorted
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "xlsx:expenses.xlsx" → ("xlsx", "expenses.xlsx")
// Example: "backup.json" → ("", "backup.json")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg // Not a known parser, treat whole thing as path
}

// ResolveSource picks the parser for a file argument.
// Priority: format prefix > fallback source > file extension.
func ResolveSource(arg, fallback string) (Parser, string, error) {
	format, path := ParseFileArg(arg)
	if format == "" {
		format = fallback
	}
	if format == "" {
		format = extensionSources[strings.ToLower(filepath.Ext(path))]
	}
	if format == "" {
		return nil, "", fmt.Errorf("%w: cannot determine format of %s, use --source or a format: prefix (available: %v)", ErrInvalidArgument, path, AvailableSources())
	}
	p, err := GetParser(format)
	if err != nil {
		return nil, "", err
	}
	return p, path, nil
}

// ImportFiles parses every file argument in order. Nothing is returned on the first failure.
func ImportFiles(args []string, fallback string) ([]Expense, error) {
	var all []Expense
	for _, arg := range args {
		p, path, err := ResolveSource(arg, fallback)
		if err != nil {
			return nil, err
		}
		expenses, err := p.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", path, err)
		}
		all = append(all, expenses...)
	}
	return all, nil
}

func init() {
	// Register built-in parsers
	RegisterParser(SourceLedgerJSON, ParserFunc(ParseLedgerJSON), ".json")
	RegisterParser(SourceXLSX, ParserFunc(ParseXLSX), ".xlsx")
}

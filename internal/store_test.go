package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoadLedger_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")

	l, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("missing store should not be an error: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d expenses", l.Len())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("loading must not create the store file")
	}
}

func TestLedger_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	original := NewLedger(
		Expense{Date: date("2025-01-10"), Category: "food", Amount: 12.50, Description: "lunch"},
		Expense{Date: date("1999-12-31"), Category: "party", Amount: -0.01, Description: "change, \"quoted\""},
		Expense{Date: date("2025-01-11"), Category: "food", Amount: 0, Description: ""},
		Expense{Date: date("2024-02-29"), Category: "ünïcode ₹", Amount: 1e9, Description: "line\nbreak"},
	)

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("LoadLedger failed: %v", err)
	}

	want := original.Expenses()
	got := loaded.Expenses()
	if len(got) != len(want) {
		t.Fatalf("expected %d expenses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expense %d = %+v, want %+v", i+1, got[i], want[i])
		}
	}
}

func TestLedger_SaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	l := NewLedger(Expense{Date: date("2025-01-10"), Category: "food", Amount: 12.5, Description: "lunch"})
	if err := l.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "expenses": [
    {
      "date": "2025-01-10",
      "category": "food",
      "amount": 12.5,
      "description": "lunch"
    }
  ]
}
`
	if string(data) != want {
		t.Errorf("unexpected store content:\n%s\nwant:\n%s", data, want)
	}
}

func TestLedger_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := NewLedger().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"expenses": []`) {
		t.Errorf("empty ledger should serialize an empty array, got %s", data)
	}
	l, err := LoadLedger(path)
	if err != nil || l.Len() != 0 {
		t.Errorf("expected empty ledger back, got %v / %v", l, err)
	}
}

func TestLedger_SaveReplacesWholeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")

	big := NewLedger()
	for i := 0; i < 50; i++ {
		big.Add(Expense{Date: date("2025-01-10"), Category: "food", Amount: float64(i), Description: strings.Repeat("x", 40)})
	}
	if err := big.Save(path); err != nil {
		t.Fatal(err)
	}

	small := NewLedger(Expense{Date: date("2025-01-10"), Category: "food", Amount: 1, Description: "one"})
	if err := small.Save(path); err != nil {
		t.Fatal(err)
	}

	l, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("store left unreadable after shrinking: %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 expense, got %d", l.Len())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the store file in dir, found %v", names)
	}
}

func TestLedger_SaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "expenses.json")
	err := sampleLedger().Save(path)
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestLoadLedger_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid JSON", `{"expenses": [`},
		{"empty file", ``},
		{"not an object", `[1, 2, 3]`},
		{"null", `null`},
		{"missing expenses key", `{}`},
		{"expenses null", `{"expenses": null}`},
		{"expenses not an array", `{"expenses": {"date": "2025-01-01"}}`},
		{"bad date format", `{"expenses": [{"date": "10/01/2025", "category": "food", "amount": 1, "description": "x"}]}`},
		{"date not a string", `{"expenses": [{"date": 20250110, "category": "food", "amount": 1, "description": "x"}]}`},
		{"amount is a string", `{"expenses": [{"date": "2025-01-10", "category": "food", "amount": "1", "description": "x"}]}`},
		{"missing amount", `{"expenses": [{"date": "2025-01-10", "category": "food", "description": "x"}]}`},
		{"missing date", `{"expenses": [{"category": "food", "amount": 1, "description": "x"}]}`},
		{"missing category", `{"expenses": [{"date": "2025-01-10", "amount": 1, "description": "x"}]}`},
		{"missing description", `{"expenses": [{"date": "2025-01-10", "category": "food", "amount": 1}]}`},
		{"trailing garbage", `{"expenses": []} {"expenses": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "expenses.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			l, err := LoadLedger(path)
			if !errors.Is(err, ErrCorruptStore) {
				t.Errorf("expected ErrCorruptStore, got %v", err)
			}
			if l != nil {
				t.Error("expected no ledger for a corrupt store")
			}
		})
	}
}

func TestLoadLedger_TruncatedSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := sampleLedger().Save(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if err := os.WriteFile(path, data[:len(data)/2], 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadLedger(path); !errors.Is(err, ErrCorruptStore) {
		t.Errorf("expected a torn write to be reported as ErrCorruptStore, got %v", err)
	}
}

func TestLoadLedger_UnreadablePath(t *testing.T) {
	// a directory where the file should be
	dir := t.TempDir()
	_, err := LoadLedger(dir)
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestLoadLedger_IgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	content := `{"version": 2, "expenses": [{"date": "2025-01-10", "category": "food", "amount": 1, "description": "x", "tags": ["a"]}]}`
	os.WriteFile(path, []byte(content), 0644)

	l, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 expense, got %d", l.Len())
	}
}

func TestLoadLedger_DoesNotModifyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := sampleLedger().Save(path); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(path)

	for i := 0; i < 2; i++ {
		l, err := LoadLedger(path)
		if err != nil {
			t.Fatal(err)
		}
		l.SummarizeAll()
		for range l.Rows() {
		}
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("store changed after read-only operations")
	}
}

func TestLedger_SaveKeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte(`{"expenses": []}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatal(err)
	}

	if err := sampleLedger().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("mode = %o, want 600", got)
	}

	fresh := filepath.Join(t.TempDir(), "new.json")
	if err := sampleLedger().Save(fresh); err != nil {
		t.Fatal(err)
	}
	info, _ = os.Stat(fresh)
	if got := info.Mode().Perm(); got != 0644 {
		t.Errorf("new store mode = %o, want 644", got)
	}
}

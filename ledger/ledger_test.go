package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileStore_LoadCreatesEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.json")
	s := NewFileStore(path)

	l, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Load() returned %d topics, want 0", l.Len())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ledger file not created: %v", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("ledger file is not JSON: %v", err)
	}
	covered, ok := raw["covered"]
	if !ok {
		t.Fatalf("ledger file %s has no covered field", b)
	}
	if len(covered) != 0 {
		t.Errorf("covered = %v, want empty", covered)
	}
}

func TestFileStore_SaveThenLoadKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "topics.json")
	s := NewFileStore(path)

	l := &Ledger{}
	l.Append("Load Balancer - Round Robin")
	l.Append("Caching Strategy - Cache-Aside")
	l.Append("Rate Limiting - Token Bucket")
	if err := s.Save(l); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.Covered, l.Covered) {
		t.Errorf("Load() = %v, want %v", got.Covered, l.Covered)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestFileStore_LoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Fatal("Load() expected error for corrupt ledger")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.db")
	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error = %v", err)
	}
	defer s.Close()

	l, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("fresh store has %d topics", l.Len())
	}

	l.Append("Consistent Hashing")
	l.Append("Circuit Breaker")
	if err := s.Save(l); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Saving a shorter ledger replaces the previous content.
	l2 := &Ledger{Covered: []string{"Event Sourcing"}}
	if err := s.Save(l2); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.Covered, []string{"Event Sourcing"}) {
		t.Errorf("Load() = %v, want [Event Sourcing]", got.Covered)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, _, err := Open("postgres", "x"); err == nil {
		t.Fatal("Open() expected error for unknown backend")
	}
}

func TestLedger_Recent(t *testing.T) {
	l := &Ledger{Covered: []string{"a", "b", "c", "d"}}

	tests := []struct {
		n    int
		want []string
	}{
		{0, nil},
		{2, []string{"c", "d"}},
		{4, []string{"a", "b", "c", "d"}},
		{10, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		if got := l.Recent(tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Recent(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}

	got := l.Recent(2)
	got[0] = "mutated"
	if l.Covered[2] != "c" {
		t.Error("Recent() must return a copy")
	}
}

func TestLedger_Contains(t *testing.T) {
	l := &Ledger{Covered: []string{"Load Balancer - Round Robin"}}
	if !l.Contains("Load Balancer - Round Robin") {
		t.Error("Contains() = false for covered topic")
	}
	if l.Contains("load balancer - round robin") {
		t.Error("Contains() must be case sensitive")
	}
	var nilLedger *Ledger
	if nilLedger.Contains("x") {
		t.Error("nil ledger contains nothing")
	}
}

// Package ledger persists the ordered history of topics that already have a demo.
package ledger

import "slices"

// Ledger is the append-only list of covered topics, oldest first.
type Ledger struct {
	Covered []string `json:"covered" yaml:"covered"`
}

// Store loads and saves a whole ledger.
type Store interface {
	// Load returns the persisted ledger. When nothing is persisted yet it
	// returns an empty ledger and persists it.
	Load() (*Ledger, error)
	// Save replaces the persisted ledger with l.
	Save(l *Ledger) error
}

// Append records topic as covered. The caller persists the ledger afterwards.
func (l *Ledger) Append(topic string) {
	l.Covered = append(l.Covered, topic)
}

// Contains reports whether topic was already covered.
func (l *Ledger) Contains(topic string) bool {
	if l == nil {
		return false
	}
	return slices.Contains(l.Covered, topic)
}

// Recent returns at most n of the latest topics, in chronological order.
func (l *Ledger) Recent(n int) []string {
	if l == nil || n <= 0 {
		return nil
	}
	if len(l.Covered) <= n {
		return slices.Clone(l.Covered)
	}
	return slices.Clone(l.Covered[len(l.Covered)-n:])
}

// Len returns the number of covered topics.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Covered)
}

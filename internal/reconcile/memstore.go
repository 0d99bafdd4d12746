package reconcile

import (
	"context"
	"errors"
)

var errNoSuchRow = errors.New("no row matches key")

// AssignFunc writes a store-assigned surrogate id into an entry and returns
// the updated copy.
type AssignFunc[E any] func(E, int64) E

type memRow[E any] struct {
	id    int64
	entry E
}

// MemStore is an in-memory Store used by tests and as the reference
// implementation of the store contract. Like the SQL adapter it stages
// mutations in a working copy and only publishes them on Flush; rows keep
// the surrogate id they were assigned on first insert.
type MemStore[E any, K comparable] struct {
	key    KeyFunc[E, K]
	assign AssignFunc[E]

	nextID int64
	rows   []memRow[E]
	staged []memRow[E]
	open   bool
}

// NewMemStore returns an empty store. key derives the alternate key of a
// stored row, assign stamps the surrogate id onto inserted entries.
func NewMemStore[E any, K comparable](key KeyFunc[E, K], assign AssignFunc[E]) *MemStore[E, K] {
	return &MemStore[E, K]{key: key, assign: assign}
}

// begin opens the working copy on the first mutation of a run.
func (m *MemStore[E, K]) begin() {
	if m.open {
		return
	}
	m.staged = make([]memRow[E], len(m.rows))
	copy(m.staged, m.rows)
	m.open = true
}

func (m *MemStore[E, K]) view() []memRow[E] {
	if m.open {
		return m.staged
	}
	return m.rows
}

// Lookup scans stored rows and matches on the key derived from each row as
// it is stored, surrogate id included. That mirrors how a real table lookup
// behaves and is what makes keying on the id field observably wrong.
func (m *MemStore[E, K]) Lookup(_ context.Context, key K) (bool, error) {
	for _, row := range m.view() {
		if m.key(row.entry) == key {
			return true, nil
		}
	}
	return false, nil
}

// Insert stages a new row under the next surrogate id.
func (m *MemStore[E, K]) Insert(_ context.Context, entry E) (int64, error) {
	m.begin()
	m.nextID++
	m.staged = append(m.staged, memRow[E]{id: m.nextID, entry: m.assign(entry, m.nextID)})
	return m.nextID, nil
}

// Update overwrites the business fields of the row matching key, keeping
// the row's original surrogate id.
func (m *MemStore[E, K]) Update(_ context.Context, key K, entry E) error {
	m.begin()
	for i, row := range m.staged {
		if m.key(row.entry) == key {
			m.staged[i].entry = m.assign(entry, row.id)
			return nil
		}
	}
	return errNoSuchRow
}

// Flush publishes the working copy.
func (m *MemStore[E, K]) Flush(_ context.Context) error {
	if !m.open {
		return nil
	}
	m.rows = m.staged
	m.staged = nil
	m.open = false
	return nil
}

// Close discards any unflushed working copy.
func (m *MemStore[E, K]) Close() error {
	m.staged = nil
	m.open = false
	return nil
}

// Len reports the number of published rows.
func (m *MemStore[E, K]) Len() int { return len(m.rows) }

// Rows returns a snapshot of the published rows in insertion order.
func (m *MemStore[E, K]) Rows() []E {
	out := make([]E, len(m.rows))
	for i, row := range m.rows {
		out[i] = row.entry
	}
	return out
}

// IDs returns the surrogate ids of the published rows in insertion order.
func (m *MemStore[E, K]) IDs() []int64 {
	out := make([]int64, len(m.rows))
	for i, row := range m.rows {
		out[i] = row.id
	}
	return out
}

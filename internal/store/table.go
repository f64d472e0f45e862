package store

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrDuplicatePlate = errors.New("license plate already registered")
	ErrItemInUse      = errors.New("maintenance item is referenced by records")
	ErrUnknownItem    = errors.New("unknown maintenance item")
)

// Entity is anything stored by id.
type Entity interface {
	EntityID() string
}

// Table is an insertion-ordered in-memory collection.
// Mutations return the new collection; callers never see the internal slice.
type Table[T Entity] struct {
	mu   sync.RWMutex
	rows []T
}

// NewTable creates a table holding a copy of rows.
func NewTable[T Entity](rows []T) *Table[T] {
	t := &Table[T]{}
	t.Replace(rows)
	return t
}

// All returns a snapshot of every row in insertion order.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot()
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Get looks a row up by id.
func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.index(id); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

// Insert appends row to the end of the collection.
func (t *Table[T]) Insert(row T) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.index(row.EntityID()) >= 0 {
		return nil, fmt.Errorf("insert %s: %w", row.EntityID(), ErrDuplicateID)
	}
	t.rows = append(t.rows, row)
	return t.snapshot(), nil
}

// Update replaces the row with the same id, keeping its position.
func (t *Table[T]) Update(row T) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(row.EntityID())
	if i < 0 {
		return nil, fmt.Errorf("update %s: %w", row.EntityID(), ErrNotFound)
	}
	t.rows[i] = row
	return t.snapshot(), nil
}

// Remove deletes the row with the given id.
func (t *Table[T]) Remove(id string) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return nil, fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	t.rows = append(t.rows[:i:i], t.rows[i+1:]...)
	return t.snapshot(), nil
}

// RemoveWhere deletes every row matching pred and returns how many were removed.
func (t *Table[T]) RemoveWhere(pred func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if !pred(row) {
			kept = append(kept, row)
		}
	}
	removed := len(t.rows) - len(kept)
	t.rows = kept
	return removed
}

// Replace swaps the whole collection.
func (t *Table[T]) Replace(rows []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append([]T(nil), rows...)
}

func (t *Table[T]) index(id string) int {
	for i, row := range t.rows {
		if row.EntityID() == id {
			return i
		}
	}
	return -1
}

func (t *Table[T]) snapshot() []T {
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

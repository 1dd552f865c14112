// Package library implements the browse/mutate operations shared by the
// notes and scripts views: an ordered in-memory sequence mirrored to the
// store on every mutation, with selection, deletion and adjacent-swap
// reordering. Records are only ever created by the deconstruction and remix
// flows, never here.
package library

import (
	"trendremix/internal/types"
)

// Record is anything the library can hold.
type Record interface {
	RecordID() string
}

// Direction of a reorder move.
type Direction int

const (
	Up Direction = iota
	Down
)

// Collection is an ordered sequence of records plus a selection. Every
// mutation rewrites the backing slot through the injected save func.
type Collection[T Record] struct {
	items    []T
	selected string
	save     func([]T) error
}

// New wraps an already-loaded sequence. save persists the full sequence and
// must not be nil.
func New[T Record](items []T, save func([]T) error) *Collection[T] {
	return &Collection[T]{items: items, save: save}
}

// Items returns the sequence in display order. The caller must not mutate it.
func (c *Collection[T]) Items() []T { return c.items }

// Len returns the number of records.
func (c *Collection[T]) Len() int { return len(c.items) }

// SelectedID returns the id of the selected record, or "" when none.
func (c *Collection[T]) SelectedID() string { return c.selected }

// Selected returns the selected record if any.
func (c *Collection[T]) Selected() (T, bool) {
	var zero T
	if c.selected == "" {
		return zero, false
	}
	if i := c.indexOf(c.selected); i >= 0 {
		return c.items[i], true
	}
	return zero, false
}

// Select sets the active record. An unknown or empty id falls back to the
// first record; an empty collection clears the selection.
func (c *Collection[T]) Select(id string) {
	if c.indexOf(id) >= 0 {
		c.selected = id
		return
	}
	if len(c.items) > 0 {
		c.selected = c.items[0].RecordID()
		return
	}
	c.selected = ""
}

// Prepend inserts a freshly created record at the front, selects it, and
// persists.
func (c *Collection[T]) Prepend(item T) error {
	c.items = append([]T{item}, c.items...)
	c.selected = item.RecordID()
	return c.persist()
}

// Delete removes the record with the given id and persists. Deleting the
// selected record clears the selection; an unknown id is a no-op.
func (c *Collection[T]) Delete(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	if c.selected == id {
		c.selected = ""
	}
	return c.persist()
}

// Move swaps the record with its immediate neighbor in the given direction
// and persists. Moving past either boundary is a no-op.
func (c *Collection[T]) Move(id string, dir Direction) error {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	j := i + 1
	if dir == Up {
		j = i - 1
	}
	if j < 0 || j >= len(c.items) {
		return nil
	}
	c.items[i], c.items[j] = c.items[j], c.items[i]
	return c.persist()
}

func (c *Collection[T]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range c.items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) persist() error {
	if err := c.save(c.items); err != nil {
		if types.KindOf(err) == types.KindStorage {
			return err
		}
		return types.Storagef(err, "failed to persist collection")
	}
	return nil
}

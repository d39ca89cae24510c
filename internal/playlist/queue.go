// Package playlist holds the ordered catalog that drives manual and automatic
// track changes.
package playlist

import (
	"fmt"
	"sync"

	"github.com/jscyril/mediacore/api"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
)

// Queue is a cyclic cursor over catalog items. Next and Previous wrap at the ends.
type Queue struct {
	items []api.CatalogItem
	ids   map[string]int
	index int // -1 when nothing has been selected
	mu    sync.RWMutex
}

// NewQueue creates a new empty queue
func NewQueue() *Queue {
	return &Queue{ids: make(map[string]int), index: -1}
}

// Set replaces the entire queue and clears the cursor
func (q *Queue) Set(items []api.CatalogItem) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = make([]api.CatalogItem, len(items))
	copy(q.items, items)
	q.ids = make(map[string]int, len(items))
	for i, item := range q.items {
		if _, dup := q.ids[item.ID]; !dup {
			q.ids[item.ID] = i
		}
	}
	q.index = -1
}

// Current returns the item under the cursor
func (q *Queue) Current() (api.CatalogItem, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.index < 0 || q.index >= len(q.items) {
		return api.CatalogItem{}, false
	}
	return q.items[q.index], true
}

// Next moves to (index+1) mod n. It reports whether the move wrapped past the end.
func (q *Queue) Next() (item api.CatalogItem, wrapped bool, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	if n == 0 {
		return api.CatalogItem{}, false, false
	}
	next := (q.index + 1) % n
	wrapped = q.index >= 0 && next == 0
	q.index = next
	return q.items[q.index], wrapped, true
}

// Previous moves to (index-1+n) mod n
func (q *Queue) Previous() (api.CatalogItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	if n == 0 {
		return api.CatalogItem{}, false
	}
	if q.index < 0 {
		q.index = 0
	}
	q.index = (q.index - 1 + n) % n
	return q.items[q.index], true
}

// JumpTo moves the cursor to index
func (q *Queue) JumpTo(index int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return fmt.Errorf("%w: index %d out of bounds", playerrors.ErrInvalidSelection, index)
	}

	q.index = index
	return nil
}

// Select moves the cursor to the item with id and returns it
func (q *Queue) Select(id string) (api.CatalogItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i, ok := q.ids[id]
	if !ok {
		return api.CatalogItem{}, fmt.Errorf("%w: %s", playerrors.ErrInvalidSelection, id)
	}
	q.index = i
	return q.items[i], nil
}

// Lookup returns the item with id without moving the cursor
func (q *Queue) Lookup(id string) (api.CatalogItem, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	i, ok := q.ids[id]
	if !ok {
		return api.CatalogItem{}, false
	}
	return q.items[i], true
}

// IndexOf returns the position of id, or -1
func (q *Queue) IndexOf(id string) int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if i, ok := q.ids[id]; ok {
		return i
	}
	return -1
}

// Items returns a copy of all items in the queue
func (q *Queue) Items() []api.CatalogItem {
	q.mu.RLock()
	defer q.mu.RUnlock()

	result := make([]api.CatalogItem, len(q.items))
	copy(result, q.items)
	return result
}

// Len returns the number of items in the queue
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// Index returns the current index, or -1 before the first selection
func (q *Queue) Index() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.index
}

package gallery

import (
	"sort"
	"sync"

	"imagechart/internal/entity"
)

// HeaderState is the tri-state of the select-all control: it mirrors
// whether none, some or all rendered rows are selected.
type HeaderState int

const (
	HeaderUnchecked HeaderState = iota
	HeaderIndeterminate
	HeaderChecked
)

// SelectionTracker keeps the set of selected row IDs. The selection is
// always a subset of the currently rendered rows; replacing the rendered
// set prunes anything that is no longer visible.
type SelectionTracker struct {
	mu       sync.Mutex
	rendered map[string]struct{}
	selected map[string]struct{}
}

func NewSelectionTracker() *SelectionTracker {
	return &SelectionTracker{
		rendered: make(map[string]struct{}),
		selected: make(map[string]struct{}),
	}
}

// SetRendered replaces the rendered row set, dropping selections that no
// longer correspond to a visible row.
func (t *SelectionTracker) SetRendered(ids []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rendered = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		t.rendered[id] = struct{}{}
	}
	for id := range t.selected {
		if _, ok := t.rendered[id]; !ok {
			delete(t.selected, id)
		}
	}
}

// Toggle flips the selection of one rendered row.
func (t *SelectionTracker) Toggle(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rendered[id]; !ok {
		return entity.ErrRowNotRendered
	}
	if _, ok := t.selected[id]; ok {
		delete(t.selected, id)
	} else {
		t.selected[id] = struct{}{}
	}
	return nil
}

// SelectAll selects every rendered row.
func (t *SelectionTracker) SelectAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.rendered {
		t.selected[id] = struct{}{}
	}
}

// DeselectAll empties the selection without touching the rendered set.
func (t *SelectionTracker) DeselectAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = make(map[string]struct{})
}

// IsSelected reports whether a row is currently selected.
func (t *SelectionTracker) IsSelected(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.selected[id]
	return ok
}

func (t *SelectionTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.selected)
}

// Selected returns the selected IDs in stable sorted order.
func (t *SelectionTracker) Selected() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.selected))
	for id := range t.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// HeaderState derives the select-all control state from the selection.
// No rendered rows counts as unchecked.
func (t *SelectionTracker) HeaderState() HeaderState {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case len(t.selected) == 0 || len(t.rendered) == 0:
		return HeaderUnchecked
	case len(t.selected) == len(t.rendered):
		return HeaderChecked
	default:
		return HeaderIndeterminate
	}
}

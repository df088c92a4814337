package gallery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagechart/internal/entity"
)

func renderedIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("img-%d", i+1)
	}
	return ids
}

func TestToggleUnrenderedRow(t *testing.T) {
	tr := NewSelectionTracker()
	tr.SetRendered(renderedIDs(3))

	err := tr.Toggle("img-99")
	assert.ErrorIs(t, err, entity.ErrRowNotRendered)
}

func TestToggleFlipsSelection(t *testing.T) {
	tr := NewSelectionTracker()
	tr.SetRendered(renderedIDs(3))

	require.NoError(t, tr.Toggle("img-2"))
	assert.True(t, tr.IsSelected("img-2"))
	assert.Equal(t, 1, tr.Count())

	require.NoError(t, tr.Toggle("img-2"))
	assert.False(t, tr.IsSelected("img-2"))
	assert.Zero(t, tr.Count())
}

func TestHeaderTriState(t *testing.T) {
	tr := NewSelectionTracker()
	tr.SetRendered(renderedIDs(10))
	assert.Equal(t, HeaderUnchecked, tr.HeaderState())

	tr.SelectAll()
	assert.Equal(t, 10, tr.Count())
	assert.Equal(t, HeaderChecked, tr.HeaderState())

	require.NoError(t, tr.Toggle("img-4"))
	assert.Equal(t, HeaderIndeterminate, tr.HeaderState())

	tr.DeselectAll()
	assert.Equal(t, HeaderUnchecked, tr.HeaderState())
	assert.Equal(t, 10, len(renderedIDs(10)))
}

func TestSetRenderedPrunesSelection(t *testing.T) {
	tr := NewSelectionTracker()
	tr.SetRendered(renderedIDs(5))
	tr.SelectAll()

	// New page renders a different set; stale selections must go.
	tr.SetRendered([]string{"img-4", "img-5", "img-6"})

	assert.Equal(t, []string{"img-4", "img-5"}, tr.Selected())
	assert.Equal(t, HeaderIndeterminate, tr.HeaderState())
}

func TestEmptyRenderedSet(t *testing.T) {
	tr := NewSelectionTracker()
	assert.Equal(t, HeaderUnchecked, tr.HeaderState())

	tr.SelectAll()
	assert.Zero(t, tr.Count())
}

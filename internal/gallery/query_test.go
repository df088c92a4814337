package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagechart/internal/entity"
)

func TestQueryDefaults(t *testing.T) {
	q := NewQueryState()

	got := q.Query()
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, DefaultPageSize, got.Limit)
	assert.Equal(t, entity.CategoryAll, got.Category)
	assert.Empty(t, got.Search)
}

func TestSearchResetsPage(t *testing.T) {
	q := NewQueryState()
	q.SetPage(4, 10)
	require.Equal(t, 4, q.Page())

	q.SetSearch("sunset")
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, "sunset", q.Query().Search)
}

func TestCategoryResetsPage(t *testing.T) {
	q := NewQueryState()
	q.SetPage(3, 10)

	q.SetCategory("cat-7")
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, "cat-7", q.Query().Category)

	q.SetCategory("")
	assert.Equal(t, entity.CategoryAll, q.Query().Category)
}

func TestSetPageSize(t *testing.T) {
	q := NewQueryState()
	q.SetPage(5, 10)

	require.NoError(t, q.SetPageSize(100))
	assert.Equal(t, 100, q.PageSize())
	assert.Equal(t, 1, q.Page())

	err := q.SetPageSize(33)
	assert.ErrorIs(t, err, entity.ErrInvalidPageSize)
	assert.Equal(t, 100, q.PageSize())
}

func TestSetPageClamps(t *testing.T) {
	q := NewQueryState()

	q.SetPage(0, 10)
	assert.Equal(t, 1, q.Page())

	q.SetPage(42, 10)
	assert.Equal(t, 10, q.Page())

	q.SetPage(7, 10)
	assert.Equal(t, 7, q.Page())
	assert.True(t, q.HasPrev())
	assert.True(t, q.HasNext(10))
	assert.False(t, q.HasNext(7))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       []int
	}{
		{"middle", 10, 20, []int{8, 9, 10, 11, 12}},
		{"near start", 2, 20, []int{1, 2, 3, 4, 5}},
		{"near end", 19, 20, []int{16, 17, 18, 19, 20}},
		{"few pages", 1, 3, []int{1, 2, 3}},
		{"single page", 1, 1, []int{1}},
		{"no pages", 1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueryState()
			q.SetPage(tt.page, tt.totalPages)
			assert.Equal(t, tt.want, q.PageWindow(tt.totalPages))
		})
	}
}

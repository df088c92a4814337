package database

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagechart/internal/entity"
	"imagechart/internal/pkg/storage"
)

func newTestImageRepo(t *testing.T) ImageRepository {
	t.Helper()
	return NewImageRepository(storage.NewFileStorage(t.TempDir()))
}

func entry(id, name, description string, uploadedAt time.Time) *entity.ImageEntry {
	return &entity.ImageEntry{
		ID:           id,
		Filename:     id + ".jpg",
		OriginalName: name,
		FileSize:     100,
		MimeType:     "image/jpeg",
		Description:  description,
		UploadDate:   uploadedAt,
	}
}

func TestSaveAssignsRowOrder(t *testing.T) {
	repo := newTestImageRepo(t)
	now := time.Now()

	for i, id := range []string{"a", "b", "c"} {
		e := entry(id, id+".jpg", "", now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Save(e))
		assert.Equal(t, i+1, e.RowOrder)
	}
}

func TestFindByIDMissing(t *testing.T) {
	repo := newTestImageRepo(t)

	_, err := repo.FindByID("nope")
	assert.ErrorIs(t, err, entity.ErrImageNotFound)
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestImageRepo(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(entry("old", "old.jpg", "", base)))
	require.NoError(t, repo.Save(entry("mid", "mid.jpg", "", base.Add(time.Hour))))
	require.NoError(t, repo.Save(entry("new", "new.jpg", "", base.Add(2*time.Hour))))

	items, total, err := repo.List(ImageFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[2].ID)
}

func TestListSearchMatchesDescriptionAndName(t *testing.T) {
	repo := newTestImageRepo(t)
	now := time.Now()

	require.NoError(t, repo.Save(entry("1", "Sunset-Beach.jpg", "evening sky", now)))
	require.NoError(t, repo.Save(entry("2", "city.jpg", "night SUNSET panorama", now)))
	require.NoError(t, repo.Save(entry("3", "forest.jpg", "green trees", now)))

	items, total, err := repo.List(ImageFilter{Search: "sunset", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)
}

func TestListCategoryFilter(t *testing.T) {
	repo := newTestImageRepo(t)
	now := time.Now()
	catID := "cat-1"

	tagged := entry("1", "a.jpg", "", now)
	tagged.CategoryID = &catID
	require.NoError(t, repo.Save(tagged))
	require.NoError(t, repo.Save(entry("2", "b.jpg", "", now)))

	items, total, err := repo.List(ImageFilter{CategoryID: &catID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)

	count, err := repo.CountByCategory(catID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListPaginationTotalReflectsFilter(t *testing.T) {
	repo := newTestImageRepo(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		id := string(rune('a' + i))
		require.NoError(t, repo.Save(entry(id, id+".jpg", "match", base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repo.Save(entry("z", "z.jpg", "other", base)))

	items, total, err := repo.List(ImageFilter{Search: "match", Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, total, "total counts filtered rows, not the whole store")
	assert.Len(t, items, 3)

	// Page past the end is empty but keeps the total.
	items, total, err = repo.List(ImageFilter{Search: "match", Page: 5, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Empty(t, items)
}

func TestDeleteRemovesMetadataAndBlob(t *testing.T) {
	repo := newTestImageRepo(t)

	e := entry("1", "a.jpg", "", time.Now())
	require.NoError(t, repo.SaveFile(e.Filename, strings.NewReader("jpeg-bytes")))
	require.NoError(t, repo.Save(e))

	reader, err := repo.GetFile(e.Filename)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, repo.Delete("1"))

	_, err = repo.FindByID("1")
	assert.ErrorIs(t, err, entity.ErrImageNotFound)
	_, err = repo.GetFile(e.Filename)
	assert.ErrorIs(t, err, entity.ErrImageNotFound)

	assert.ErrorIs(t, repo.Delete("1"), entity.ErrImageNotFound)
}

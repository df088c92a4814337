package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagechart/internal/database"
	"imagechart/internal/entity"
	"imagechart/internal/pkg/events"
	"imagechart/internal/pkg/storage"
)

func newTestServices(t *testing.T) (ImageService, CategoryService) {
	t.Helper()
	store := storage.NewFileStorage(t.TempDir())
	imgRepo := database.NewImageRepository(store)
	catRepo := database.NewCategoryRepository(store)
	producer := events.NewMockProducer()
	return NewImageService(imgRepo, catRepo, nil, producer, nil),
		NewCategoryService(catRepo, imgRepo, nil, producer)
}

func uploadOne(t *testing.T, svc ImageService, name, description, categoryID string) *entity.ImageEntry {
	t.Helper()
	created, err := svc.UploadBatch([]entity.IncomingFile{{
		Name:        name,
		MimeType:    "image/jpeg",
		Size:        10,
		Reader:      strings.NewReader("jpeg-bytes"),
		Description: description,
		CategoryID:  categoryID,
	}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestUploadBatchStoresFileAndMetadata(t *testing.T) {
	imgSvc, _ := newTestServices(t)

	created := uploadOne(t, imgSvc, "photo.jpeg", "a sunset", "")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "photo.jpeg", created.OriginalName)
	assert.True(t, strings.HasSuffix(created.Filename, ".jpeg"))
	assert.Equal(t, int64(len("jpeg-bytes")), created.FileSize)
	assert.Nil(t, created.CategoryID)

	reader, entry, err := imgSvc.GetFile(created.ID)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, created.ID, entry.ID)
}

func TestListJoinsCategoryNames(t *testing.T) {
	imgSvc, catSvc := newTestServices(t)

	cat, err := catSvc.Create(entity.CategoryInput{Name: "Nature", Color: "#00aa00"})
	require.NoError(t, err)
	uploadOne(t, imgSvc, "tree.jpg", "", cat.ID)
	uploadOne(t, imgSvc, "car.jpg", "", "")

	list, err := imgSvc.List(entity.ListQuery{Page: 1, Limit: 50, Category: "Nature"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Nature", list.Items[0].CategoryName)
	assert.Equal(t, "#00aa00", list.Items[0].CategoryColor)
	assert.Equal(t, 1, list.Pagination.Total)
}

func TestListUnknownCategoryMatchesNothing(t *testing.T) {
	imgSvc, _ := newTestServices(t)
	uploadOne(t, imgSvc, "a.jpg", "", "")

	list, err := imgSvc.List(entity.ListQuery{Page: 1, Limit: 50, Category: "Ghost"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Pagination.Total)
}

func TestListComputesTotalPages(t *testing.T) {
	imgSvc, _ := newTestServices(t)
	for i := 0; i < 5; i++ {
		uploadOne(t, imgSvc, "img.jpg", "", "")
	}

	list, err := imgSvc.List(entity.ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, list.Pagination.Total)
	assert.Equal(t, 3, list.Pagination.TotalPages)
	assert.Len(t, list.Items, 2)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	imgSvc, catSvc := newTestServices(t)
	cat, err := catSvc.Create(entity.CategoryInput{Name: "Travel"})
	require.NoError(t, err)
	created := uploadOne(t, imgSvc, "a.jpg", "before", cat.ID)

	assert.ErrorIs(t, imgSvc.Update(created.ID, entity.ImageUpdate{}), entity.ErrEmptyUpdate)

	desc := "after"
	require.NoError(t, imgSvc.Update(created.ID, entity.ImageUpdate{Description: &desc}))

	list, err := imgSvc.List(entity.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "after", list.Items[0].Description)
	require.NotNil(t, list.Items[0].CategoryID, "untouched fields keep their value")

	// Explicit empty category clears the reference.
	empty := ""
	require.NoError(t, imgSvc.Update(created.ID, entity.ImageUpdate{CategoryID: &empty}))
	list, err = imgSvc.List(entity.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Nil(t, list.Items[0].CategoryID)
}

func TestBulkFetchSkipsMissing(t *testing.T) {
	imgSvc, _ := newTestServices(t)
	created := uploadOne(t, imgSvc, "a.jpg", "", "")

	files, err := imgSvc.BulkFetch([]string{created.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, created.ID, files[0].ID)
	assert.Equal(t, []byte("jpeg-bytes"), files[0].Data)

	_, err = imgSvc.BulkFetch([]string{"missing-1", "missing-2"})
	assert.ErrorIs(t, err, entity.ErrImageNotFound)
}

func TestCategoryDeleteInUse(t *testing.T) {
	imgSvc, catSvc := newTestServices(t)
	cat, err := catSvc.Create(entity.CategoryInput{Name: "Busy"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategoryColor, cat.Color)
	created := uploadOne(t, imgSvc, "a.jpg", "", cat.ID)

	err = catSvc.Delete(cat.ID)
	var inUse *entity.CategoryInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 1, inUse.Count)

	require.NoError(t, imgSvc.Delete(created.ID))
	require.NoError(t, catSvc.Delete(cat.ID))
}

func TestCategoryListCountsImages(t *testing.T) {
	imgSvc, catSvc := newTestServices(t)
	cat, err := catSvc.Create(entity.CategoryInput{Name: "Counted"})
	require.NoError(t, err)
	uploadOne(t, imgSvc, "a.jpg", "", cat.ID)
	uploadOne(t, imgSvc, "b.jpg", "", cat.ID)

	categories, err := catSvc.List()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 2, categories[0].ImageCount)
}

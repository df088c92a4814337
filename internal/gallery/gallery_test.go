package gallery

import (
	"context"

	"imagechart/internal/entity"
)

// fakeAPI lets each test stub just the calls it cares about.
type fakeAPI struct {
	listImages      func(ctx context.Context, q entity.ListQuery) (*entity.ImageList, error)
	uploadBatch     func(ctx context.Context, batch UploadBatch, progress func(int)) ([]*entity.ImageEntry, error)
	updateImage     func(ctx context.Context, id string, upd entity.ImageUpdate) error
	deleteImage     func(ctx context.Context, id string) error
	fetchImage      func(ctx context.Context, id string) (*entity.ImageFile, error)
	bulkFetchImages func(ctx context.Context, ids []string) ([]entity.ImageFile, error)
	listCategories  func(ctx context.Context) ([]*entity.Category, error)
	createCategory  func(ctx context.Context, input entity.CategoryInput) (*entity.Category, error)
	updateCategory  func(ctx context.Context, id string, upd entity.CategoryUpdate) (*entity.Category, error)
	deleteCategory  func(ctx context.Context, id string) error
}

func (f *fakeAPI) ListImages(ctx context.Context, q entity.ListQuery) (*entity.ImageList, error) {
	return f.listImages(ctx, q)
}

func (f *fakeAPI) UploadBatch(ctx context.Context, batch UploadBatch, progress func(int)) ([]*entity.ImageEntry, error) {
	return f.uploadBatch(ctx, batch, progress)
}

func (f *fakeAPI) UpdateImage(ctx context.Context, id string, upd entity.ImageUpdate) error {
	return f.updateImage(ctx, id, upd)
}

func (f *fakeAPI) DeleteImage(ctx context.Context, id string) error {
	return f.deleteImage(ctx, id)
}

func (f *fakeAPI) FetchImage(ctx context.Context, id string) (*entity.ImageFile, error) {
	return f.fetchImage(ctx, id)
}

func (f *fakeAPI) BulkFetchImages(ctx context.Context, ids []string) ([]entity.ImageFile, error) {
	return f.bulkFetchImages(ctx, ids)
}

func (f *fakeAPI) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return f.listCategories(ctx)
}

func (f *fakeAPI) CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error) {
	return f.createCategory(ctx, input)
}

func (f *fakeAPI) UpdateCategory(ctx context.Context, id string, upd entity.CategoryUpdate) (*entity.Category, error) {
	return f.updateCategory(ctx, id, upd)
}

func (f *fakeAPI) DeleteCategory(ctx context.Context, id string) error {
	return f.deleteCategory(ctx, id)
}

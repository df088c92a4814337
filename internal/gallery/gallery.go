// Package gallery holds the client-side state of the image chart: staged
// uploads, per-row edit sessions, bulk selection and the current query.
// Every piece of state is owned by exactly one controller and mutated in
// response to a single user event at a time; network effects go through
// the API boundary below.
package gallery

import (
	"context"

	"imagechart/internal/entity"
)

// API is the remote collaborator contract. The HTTP implementation lives
// in internal/client; tests substitute fakes.
type API interface {
	ListImages(ctx context.Context, q entity.ListQuery) (*entity.ImageList, error)
	UploadBatch(ctx context.Context, batch UploadBatch, progress func(percent int)) ([]*entity.ImageEntry, error)
	UpdateImage(ctx context.Context, id string, upd entity.ImageUpdate) error
	DeleteImage(ctx context.Context, id string) error
	FetchImage(ctx context.Context, id string) (*entity.ImageFile, error)
	BulkFetchImages(ctx context.Context, ids []string) ([]entity.ImageFile, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id string, upd entity.CategoryUpdate) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// UploadRecord is one file of a batch submission. The wire format uses
// parallel index-aligned arrays; internally a single ordered collection
// keeps file and metadata from drifting apart.
type UploadRecord struct {
	Name        string
	MimeType    string
	Data        []byte
	Description string
	Theme       string
	CategoryID  string
}

type UploadBatch struct {
	Files []UploadRecord
}

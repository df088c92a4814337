package database

import (
	"io"
	"sync"

	"imagechart/internal/entity"
	"imagechart/internal/pkg/storage"
)

// ImageFilter narrows listing queries. A nil CategoryID means no category
// filter; Search matches substrings of description or original filename.
type ImageFilter struct {
	CategoryID *string
	Search     string
	Page       int
	Limit      int
}

type ImageRepository interface {
	Save(image *entity.ImageEntry) error
	FindByID(id string) (*entity.ImageEntry, error)
	Update(image *entity.ImageEntry) error
	List(filter ImageFilter) ([]*entity.ImageEntry, int, error)
	Delete(id string) error
	CountByCategory(categoryID string) (int, error)
	SaveFile(filename string, file io.Reader) error
	GetFile(filename string) (io.ReadCloser, error)
}

type CategoryRepository interface {
	List() ([]*entity.Category, error)
	FindByID(id string) (*entity.Category, error)
	FindByName(name string) (*entity.Category, error)
	Create(category *entity.Category) error
	Update(category *entity.Category) error
	Delete(id string) error
}

type fileImageRepository struct {
	storage storage.FileStorage
	mu      sync.Mutex // serializes row-order assignment
}

type fileCategoryRepository struct {
	storage storage.FileStorage
	mu      sync.Mutex // serializes index document rewrites
}

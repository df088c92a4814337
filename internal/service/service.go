package service

import (
	"io"

	"imagechart/internal/database"
	"imagechart/internal/database/redis"
	"imagechart/internal/entity"
	"imagechart/internal/pkg/compressor"
	"imagechart/internal/pkg/events"
)

type ImageService interface {
	List(q entity.ListQuery) (*entity.ImageList, error)
	UploadBatch(files []entity.IncomingFile) ([]*entity.ImageEntry, error)
	Update(id string, upd entity.ImageUpdate) error
	Delete(id string) error
	GetFile(id string) (io.ReadCloser, *entity.ImageEntry, error)
	BulkFetch(ids []string) ([]entity.ImageFile, error)
}

type CategoryService interface {
	List() ([]*entity.Category, error)
	Create(input entity.CategoryInput) (*entity.Category, error)
	Update(id string, upd entity.CategoryUpdate) (*entity.Category, error)
	Delete(id string) error
}

type imageService struct {
	repo       database.ImageRepository
	categories database.CategoryRepository
	cache      *redis.CacheRepository
	producer   events.Producer
	compressor compressor.ImageCompressor
}

func NewImageService(repo database.ImageRepository, categories database.CategoryRepository, cache *redis.CacheRepository, producer events.Producer, comp compressor.ImageCompressor) ImageService {
	return &imageService{
		repo:       repo,
		categories: categories,
		cache:      cache,
		producer:   producer,
		compressor: comp,
	}
}

type categoryService struct {
	repo     database.CategoryRepository
	images   database.ImageRepository
	cache    *redis.CacheRepository
	producer events.Producer
}

func NewCategoryService(repo database.CategoryRepository, images database.ImageRepository, cache *redis.CacheRepository, producer events.Producer) CategoryService {
	return &categoryService{
		repo:     repo,
		images:   images,
		cache:    cache,
		producer: producer,
	}
}

package storage

import (
	"fmt"
	"io"

	"imagechart/config"
)

// FileStorage is the blob layer behind the repositories: image bytes and
// JSON metadata documents are both stored through it.
type FileStorage interface {
	Save(path string, data io.Reader) error
	Get(path string) (io.ReadCloser, error)
	Delete(path string) error
	Exists(path string) bool
	List(prefix string) ([]string, error)
}

func New(cfg *config.StorageConfig) (FileStorage, error) {
	switch cfg.Type {
	case "local", "":
		return NewFileStorage(cfg.LocalPath), nil
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

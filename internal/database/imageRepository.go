package database

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"imagechart/internal/entity"
	"imagechart/internal/pkg/storage"
)

func NewImageRepository(storage storage.FileStorage) ImageRepository {
	return &fileImageRepository{storage: storage}
}

func (r *fileImageRepository) Save(image *entity.ImageEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if image.RowOrder == 0 {
		order, err := r.maxRowOrder()
		if err != nil {
			return err
		}
		image.RowOrder = order + 1
	}

	return r.write(image)
}

func (r *fileImageRepository) Update(image *entity.ImageEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(image)
}

func (r *fileImageRepository) write(image *entity.ImageEntry) error {
	data, err := json.Marshal(image)
	if err != nil {
		return err
	}
	return r.storage.Save(r.metadataPath(image.ID), bytes.NewReader(data))
}

func (r *fileImageRepository) FindByID(id string) (*entity.ImageEntry, error) {
	reader, err := r.storage.Get(r.metadataPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrImageNotFound
		}
		return nil, err
	}
	defer reader.Close()

	var image entity.ImageEntry
	if err := json.NewDecoder(reader).Decode(&image); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *fileImageRepository) List(filter ImageFilter) ([]*entity.ImageEntry, int, error) {
	entries, err := r.loadAll()
	if err != nil {
		return nil, 0, err
	}

	filtered := entries[:0]
	search := strings.ToLower(filter.Search)
	for _, e := range entries {
		if filter.CategoryID != nil {
			if e.CategoryID == nil || *e.CategoryID != *filter.CategoryID {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Description), search) &&
			!strings.Contains(strings.ToLower(e.OriginalName), search) {
			continue
		}
		filtered = append(filtered, e)
	}

	// Recency order, newest uploads first.
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].UploadDate.Equal(filtered[j].UploadDate) {
			return filtered[i].RowOrder > filtered[j].RowOrder
		}
		return filtered[i].UploadDate.After(filtered[j].UploadDate)
	})

	total := len(filtered)
	start := (filter.Page - 1) * filter.Limit
	if start >= total {
		return []*entity.ImageEntry{}, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (r *fileImageRepository) Delete(id string) error {
	image, err := r.FindByID(id)
	if err != nil {
		return err
	}

	if err := r.storage.Delete(r.metadataPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := r.storage.Delete(r.filePath(image.Filename)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (r *fileImageRepository) CountByCategory(categoryID string) (int, error) {
	entries, err := r.loadAll()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, e := range entries {
		if e.CategoryID != nil && *e.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fileImageRepository) SaveFile(filename string, file io.Reader) error {
	return r.storage.Save(r.filePath(filename), file)
}

func (r *fileImageRepository) GetFile(filename string) (io.ReadCloser, error) {
	reader, err := r.storage.Get(r.filePath(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrImageNotFound
		}
		return nil, err
	}
	return reader, nil
}

func (r *fileImageRepository) loadAll() ([]*entity.ImageEntry, error) {
	paths, err := r.storage.List("metadata")
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.ImageEntry, 0, len(paths))
	for _, p := range paths {
		reader, err := r.storage.Get(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		var image entity.ImageEntry
		err = json.NewDecoder(reader).Decode(&image)
		reader.Close()
		if err != nil {
			return nil, err
		}
		entries = append(entries, &image)
	}
	return entries, nil
}

func (r *fileImageRepository) maxRowOrder() (int, error) {
	entries, err := r.loadAll()
	if err != nil {
		return 0, err
	}

	max := 0
	for _, e := range entries {
		if e.RowOrder > max {
			max = e.RowOrder
		}
	}
	return max, nil
}

func (r *fileImageRepository) metadataPath(id string) string {
	return path.Join("metadata", id+".json")
}

func (r *fileImageRepository) filePath(filename string) string {
	return path.Join("files", filename)
}

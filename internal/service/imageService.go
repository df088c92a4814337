package service

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"imagechart/internal/database"
	"imagechart/internal/entity"
	"imagechart/internal/pkg/events"
)

const defaultPageSize = 50

func (s *imageService) List(q entity.ListQuery) (*entity.ImageList, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}

	filter := database.ImageFilter{
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	}

	if q.Category != "" && q.Category != entity.CategoryAll {
		category, err := s.categories.FindByName(q.Category)
		if err != nil {
			if errors.Is(err, entity.ErrCategoryNotFound) {
				// Filtering on an unknown category name matches nothing.
				return &entity.ImageList{
					Items:      []*entity.ImageEntry{},
					Pagination: entity.Pagination{Page: q.Page, Limit: q.Limit, Total: 0, TotalPages: 0},
				}, nil
			}
			return nil, err
		}
		filter.CategoryID = &category.ID
	}

	items, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	if err := s.joinCategories(items); err != nil {
		return nil, err
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	return &entity.ImageList{
		Items: items,
		Pagination: entity.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *imageService) joinCategories(items []*entity.ImageEntry) error {
	list, err := s.categories.List()
	if err != nil {
		return err
	}

	byID := make(map[string]*entity.Category, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}

	for _, item := range items {
		if item.CategoryID == nil {
			continue
		}
		if c, ok := byID[*item.CategoryID]; ok {
			item.CategoryName = c.Name
			item.CategoryColor = c.Color
		}
	}
	return nil
}

func (s *imageService) UploadBatch(files []entity.IncomingFile) ([]*entity.ImageEntry, error) {
	created := make([]*entity.ImageEntry, 0, len(files))

	for i := range files {
		f := &files[i]

		data, err := io.ReadAll(f.Reader)
		if err != nil {
			return nil, err
		}
		// Clients compress before sending; this catches direct API
		// callers that skip it.
		mimeType := f.MimeType
		if s.compressor != nil {
			data, mimeType = s.compressor.Compress(data, f.MimeType)
		}

		id := uuid.New().String()
		ext := filepath.Ext(f.Name)
		if ext == "" {
			ext = ".jpg"
		}
		filename := id + ext

		if err := s.repo.SaveFile(filename, bytes.NewReader(data)); err != nil {
			return nil, err
		}

		entry := &entity.ImageEntry{
			ID:           id,
			Filename:     filename,
			OriginalName: f.Name,
			FileSize:     int64(len(data)),
			MimeType:     mimeType,
			Description:  f.Description,
			Theme:        f.Theme,
			UploadDate:   time.Now(),
		}
		if f.CategoryID != "" {
			categoryID := f.CategoryID
			entry.CategoryID = &categoryID
		}

		if err := s.repo.Save(entry); err != nil {
			return nil, err
		}
		created = append(created, entry)
	}

	s.invalidateCategoryCache()
	if err := s.producer.Publish(events.ImagesUploaded, map[string]int{"count": len(created)}); err != nil {
		logrus.Warnf("failed to publish upload event: %v", err)
	}

	return created, nil
}

func (s *imageService) Update(id string, upd entity.ImageUpdate) error {
	if upd.Empty() {
		return entity.ErrEmptyUpdate
	}

	image, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	if upd.Description != nil {
		image.Description = *upd.Description
	}
	if upd.Theme != nil {
		image.Theme = *upd.Theme
	}
	if upd.CategoryID != nil {
		if *upd.CategoryID == "" {
			image.CategoryID = nil
		} else {
			image.CategoryID = upd.CategoryID
		}
	}

	if err := s.repo.Update(image); err != nil {
		return err
	}

	s.invalidateCategoryCache()
	if err := s.producer.Publish(events.ImageUpdated, map[string]string{"id": id}); err != nil {
		logrus.Warnf("failed to publish update event: %v", err)
	}
	return nil
}

func (s *imageService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidateCategoryCache()
	if err := s.producer.Publish(events.ImageDeleted, map[string]string{"id": id}); err != nil {
		logrus.Warnf("failed to publish delete event: %v", err)
	}
	return nil
}

func (s *imageService) GetFile(id string) (io.ReadCloser, *entity.ImageEntry, error) {
	image, err := s.repo.FindByID(id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.repo.GetFile(image.Filename)
	if err != nil {
		return nil, nil, err
	}
	return reader, image, nil
}

func (s *imageService) BulkFetch(ids []string) ([]entity.ImageFile, error) {
	files := make([]entity.ImageFile, 0, len(ids))

	for _, id := range ids {
		reader, image, err := s.GetFile(id)
		if err != nil {
			if errors.Is(err, entity.ErrImageNotFound) {
				logrus.Warnf("bulk fetch skipping missing image %s", id)
				continue
			}
			return nil, err
		}

		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, entity.ImageFile{
			ID:   image.ID,
			Name: image.OriginalName,
			Type: image.MimeType,
			Data: data,
		})
	}

	if len(files) == 0 {
		return nil, entity.ErrImageNotFound
	}
	return files, nil
}

func (s *imageService) invalidateCategoryCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCategories(); err != nil {
		logrus.Debugf("category cache invalidation failed: %v", err)
	}
}

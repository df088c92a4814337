package service

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"imagechart/internal/entity"
	"imagechart/internal/pkg/events"
)

func (s *categoryService) List() ([]*entity.Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCategories(); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		count, err := s.images.CountByCategory(c.ID)
		if err != nil {
			return nil, err
		}
		c.ImageCount = count
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(categories); err != nil {
			logrus.Debugf("category cache write failed: %v", err)
		}
	}
	return categories, nil
}

func (s *categoryService) Create(input entity.CategoryInput) (*entity.Category, error) {
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}

	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Color:       color,
		Description: input.Description,
	}

	if err := s.repo.Create(category); err != nil {
		return nil, err
	}

	s.invalidate()
	s.publish()
	return category, nil
}

func (s *categoryService) Update(id string, upd entity.CategoryUpdate) (*entity.Category, error) {
	if upd.Empty() {
		return nil, entity.ErrEmptyUpdate
	}

	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		category.Name = *upd.Name
	}
	if upd.Color != nil {
		category.Color = *upd.Color
	}
	if upd.Description != nil {
		category.Description = *upd.Description
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}

	s.invalidate()
	s.publish()
	return category, nil
}

func (s *categoryService) Delete(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}

	count, err := s.images.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &entity.CategoryInUseError{Count: count}
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidate()
	s.publish()
	return nil
}

func (s *categoryService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCategories(); err != nil {
		logrus.Debugf("category cache invalidation failed: %v", err)
	}
}

func (s *categoryService) publish() {
	if err := s.producer.Publish(events.CategoryChanged, nil); err != nil {
		logrus.Warnf("failed to publish category event: %v", err)
	}
}

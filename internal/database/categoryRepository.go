package database

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"imagechart/internal/entity"
	"imagechart/internal/pkg/storage"
)

const categoryIndexPath = "categories/index.json"

func NewCategoryRepository(storage storage.FileStorage) CategoryRepository {
	return &fileCategoryRepository{storage: storage}
}

func (r *fileCategoryRepository) List() ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileCategoryRepository) FindByID(id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, entity.ErrCategoryNotFound
}

func (r *fileCategoryRepository) FindByName(name string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, entity.ErrCategoryNotFound
}

func (r *fileCategoryRepository) Create(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	return r.store(append(categories, category))
}

func (r *fileCategoryRepository) Update(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	for i, c := range categories {
		if c.ID == category.ID {
			categories[i] = category
			return r.store(categories)
		}
	}
	return entity.ErrCategoryNotFound
}

func (r *fileCategoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	for i, c := range categories {
		if c.ID == id {
			return r.store(append(categories[:i], categories[i+1:]...))
		}
	}
	return entity.ErrCategoryNotFound
}

func (r *fileCategoryRepository) load() ([]*entity.Category, error) {
	reader, err := r.storage.Get(categoryIndexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*entity.Category{}, nil
		}
		return nil, err
	}
	defer reader.Close()

	var categories []*entity.Category
	if err := json.NewDecoder(reader).Decode(&categories); err != nil {
		return nil, err
	}

	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

func (r *fileCategoryRepository) store(categories []*entity.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return r.storage.Save(categoryIndexPath, bytes.NewReader(data))
}

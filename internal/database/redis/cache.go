package redis

import (
	"context"
	"encoding/json"
	"time"

	"imagechart/internal/entity"

	"github.com/redis/go-redis/v9"
)

const categoryListKey = "categories:list"

type CacheRepository struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetCategories(categories []*entity.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}

	return r.client.Set(r.ctx, categoryListKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetCategories() ([]*entity.Category, error) {
	data, err := r.client.Get(r.ctx, categoryListKey).Result()
	if err != nil {
		return nil, err
	}

	var categories []*entity.Category
	err = json.Unmarshal([]byte(data), &categories)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *CacheRepository) InvalidateCategories() error {
	return r.client.Del(r.ctx, categoryListKey).Err()
}

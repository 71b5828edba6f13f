package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emrgen/bookpost/internal/model"
	redis "github.com/redis/go-redis/v9"
)

const postTTL = time.Hour

func postKey(id string) string {
	return "post:" + id
}

var _ PostCache = (*RedisPostCache)(nil)

type RedisPostCache struct {
	client *redis.Client
}

func NewRedisPostCache(addr, password string) *RedisPostCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // Use default DB
		Protocol: 2, // Connection protocol
	})

	return &RedisPostCache{client: client}
}

func (r *RedisPostCache) GetPost(ctx context.Context, id string) (*model.Post, error) {
	res := r.client.Get(ctx, postKey(id))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	post := &model.Post{}
	if err := json.Unmarshal(buf, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (r *RedisPostCache) SetPost(ctx context.Context, post *model.Post) error {
	marshal, err := json.Marshal(post)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, postKey(post.ID), marshal, postTTL).Err()
}

func (r *RedisPostCache) DeletePost(ctx context.Context, id string) error {
	return r.client.Del(ctx, postKey(id)).Err()
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell/inkwell/internal/model"
)

// Cache key prefix and TTL for posts.
const (
	postKeyPrefix = "post:"

	// DefaultPostTTL is the TTL for cached post data. Posts never
	// change after creation, but they disappear when their author's
	// account is deleted; that path invalidates explicitly, expiry
	// covers the rest.
	DefaultPostTTL = 24 * time.Hour
)

// ErrCacheMiss indicates the requested entry is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetPost retrieves a post from cache by slug.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetPost(ctx context.Context, slug string) (*model.CachedPost, error) {
	key := postKeyPrefix + slug

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedPost{
		ID:        result["id"],
		Title:     result["title"],
		Content:   result["content"],
		ImageURL:  result["image_url"],
		AuthorID:  result["author_id"],
		CreatedAt: result["created_at"],
		UpdatedAt: result["updated_at"],
	}

	return cached, nil
}

// SetPost stores a post in cache under its slug.
func (c *Cache) SetPost(ctx context.Context, post *model.Post) error {
	key := postKeyPrefix + post.Slug
	cached := post.ToCachedPost()

	fields := map[string]any{
		"id":         cached.ID,
		"title":      cached.Title,
		"content":    cached.Content,
		"image_url":  cached.ImageURL,
		"author_id":  cached.AuthorID,
		"created_at": cached.CreatedAt,
		"updated_at": cached.UpdatedAt,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, DefaultPostTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache post: %w", err)
	}

	return nil
}

// DeletePost removes a post from cache.
func (c *Cache) DeletePost(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, postKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}
	return nil
}

// Package model defines domain entities for the application.
package model

import (
	"strconv"
	"time"
)

// Post represents a published blog post.
// Posts have no update operation; they are removed only when their
// author's account is deleted.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	Slug      string    `json:"slug"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CachedPost represents post data stored in Redis cache.
// Uses string types for Redis hash compatibility.
type CachedPost struct {
	ID        string `redis:"id"`
	Title     string `redis:"title"`
	Content   string `redis:"content"`
	ImageURL  string `redis:"image_url"`
	AuthorID  string `redis:"author_id"`
	CreatedAt string `redis:"created_at"` // Unix timestamp
	UpdatedAt string `redis:"updated_at"` // Unix timestamp
}

// ToPost converts CachedPost to the Post domain model.
func (c *CachedPost) ToPost(slug string) *Post {
	post := &Post{
		ID:       c.ID,
		Title:    c.Title,
		Content:  c.Content,
		ImageURL: c.ImageURL,
		Slug:     slug,
		AuthorID: c.AuthorID,
	}

	if c.CreatedAt != "" {
		if ts, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
			post.CreatedAt = time.Unix(ts, 0).UTC()
		}
	}

	if c.UpdatedAt != "" {
		if ts, err := strconv.ParseInt(c.UpdatedAt, 10, 64); err == nil {
			post.UpdatedAt = time.Unix(ts, 0).UTC()
		}
	}

	return post
}

// ToCachedPost converts the Post domain model to CachedPost.
func (p *Post) ToCachedPost() *CachedPost {
	return &CachedPost{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		AuthorID:  p.AuthorID,
		CreatedAt: strconv.FormatInt(p.CreatedAt.Unix(), 10),
		UpdatedAt: strconv.FormatInt(p.UpdatedAt.Unix(), 10),
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/oklog/ulid/v2"

	"github.com/inkwell/inkwell/internal/metrics"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
	"github.com/inkwell/inkwell/internal/validate"
)

// Post service errors.
var (
	ErrPostNotFound = errors.New("post not found")
)

// PostStore is the persistence surface the post service needs.
// *repository.Repository satisfies it.
type PostStore interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
}

// PostCache is the cache surface the post service needs.
// *cache.Cache satisfies it.
type PostCache interface {
	GetPost(ctx context.Context, slug string) (*model.CachedPost, error)
	SetPost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, slug string) error
}

// PostService orchestrates creation and reading of posts.
type PostService struct {
	store   PostStore
	cache   PostCache
	metrics metrics.Recorder
}

// NewPostService creates a new PostService. The cache may be nil, in
// which case every read goes to the database.
func NewPostService(store PostStore, postCache PostCache, recorder metrics.Recorder) *PostService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PostService{
		store:   store,
		cache:   postCache,
		metrics: recorder,
	}
}

// CreatePostInput defines input for creating a post.
type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL string
	AuthorID string
}

// Create validates the payload, derives the slug from the title and
// persists a new post owned by the authenticated author. Slug
// derivation is deterministic: the same title always yields the same
// lowercase hyphenated slug. Slugs are not guaranteed unique.
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*model.Post, error) {
	if err := validate.Post(input.Title, input.Content, input.ImageURL); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &model.Post{
		ID:        ulid.Make().String(),
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		Slug:      slug.Make(input.Title),
		AuthorID:  input.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		// A missing author reference is a persistence failure, not a
		// client error; the session middleware already vouched for the
		// identity.
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.metrics.IncPostCreated()

	// Warm the cache; a failure here is not fatal.
	if s.cache != nil {
		_ = s.cache.SetPost(ctx, post)
	}

	return post, nil
}

// GetBySlug retrieves a post by slug, reading through the cache.
func (s *PostService) GetBySlug(ctx context.Context, postSlug string) (*model.Post, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPost(ctx, postSlug)
		if err == nil {
			s.metrics.IncPostCacheHit()
			return cached.ToPost(postSlug), nil
		}
		// Cache miss or cache error: degrade to the database.
		s.metrics.IncPostCacheMiss()
	}

	post, err := s.store.GetPostBySlug(ctx, postSlug)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetPost(ctx, post)
	}

	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

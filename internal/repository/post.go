package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/inkwell/internal/model"
)

// Common errors for post repository operations.
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("post author not found")
)

// CreatePost inserts a new post into the database.
// The posts.author_id foreign key guarantees the author exists; a
// violation is returned as ErrAuthorNotFound.
func (r *Repository) CreatePost(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, title, content, image_url, slug, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.ImageURL,
		post.Slug,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAuthorNotFound
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPostBySlug retrieves a post by its slug. Slugs are not unique; on
// collision the newest post wins.
func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	query := `
		SELECT id, title, content, image_url, slug, author_id, created_at, updated_at
		FROM posts
		WHERE slug = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var post model.Post
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.ImageURL,
		&post.Slug,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return &post, nil
}

// ListPostSlugsByAuthor returns the slugs of every post owned by the
// given author. Callers use it to invalidate cached posts before the
// author row's deletion cascades them away.
func (r *Repository) ListPostSlugsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT slug FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post slugs: %w", err)
	}
	defer rows.Close()

	slugs := make([]string, 0)
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slugs: %w", err)
	}

	return slugs, nil
}

// ListPosts retrieves all posts, newest first.
func (r *Repository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	query := `
		SELECT id, title, content, image_url, slug, author_id, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.ImageURL,
			&post.Slug,
			&post.AuthorID,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

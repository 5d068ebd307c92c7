package dto

import (
	"time"

	"github.com/inkwell/inkwell/internal/model"
)

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageURL"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageURL"`
	Slug      string    `json:"slug"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPostResponse converts a Post model to PostResponse.
func ToPostResponse(post *model.Post) *PostResponse {
	return &PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Slug:      post.Slug,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// ToPostResponses converts a slice of Post models.
func ToPostResponses(posts []*model.Post) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToPostResponse(p))
	}
	return out
}

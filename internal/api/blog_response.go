package api

import (
	"time"

	"blogify/internal/model"

	"github.com/google/uuid"
)

// swagger:model api.AuthorSummary
type AuthorSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username" example:"alice"`
}

// BlogResponse 沒有作者時 author 為 null
// swagger:model api.BlogResponse
type BlogResponse struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title" example:"Hello"`
	Content   string         `json:"content" example:"First post"`
	Author    *AuthorSummary `json:"author"`
	Tags      []string       `json:"tags"`
	Image     string         `json:"image,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// swagger:model api.BlogEnvelope
type BlogEnvelope struct {
	Message string       `json:"message" example:"Blog created successfully"`
	Blog    BlogResponse `json:"blog"`
}

func NewBlogResponse(b *model.Blog) BlogResponse {
	resp := BlogResponse{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Tags:      b.Tags,
		Image:     b.Image,
		CreatedAt: b.CreatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if b.AuthorID != nil {
		author := &AuthorSummary{ID: *b.AuthorID}
		if b.AuthorName != nil {
			author.Username = *b.AuthorName
		}
		resp.Author = author
	}
	return resp
}

func NewBlogList(blogs []model.Blog) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		out = append(out, NewBlogResponse(&blogs[i]))
	}
	return out
}

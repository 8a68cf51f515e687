package api

// swagger:model api.CreateBlogRequest
type CreateBlogRequest struct {
	Title   string   `json:"title" validate:"required" example:"Hello"`
	Content string   `json:"content" validate:"required" example:"First post"`
	Tags    []string `json:"tags" example:"go,web"`
	Image   string   `json:"image" example:"https://example.com/cover.png"`
}

// UpdateBlogRequest 欄位皆可省略；tags 給空陣列代表清空
// swagger:model api.UpdateBlogRequest
type UpdateBlogRequest struct {
	Title   *string  `json:"title,omitempty" example:"Hello again"`
	Content *string  `json:"content,omitempty" example:"Edited"`
	Tags    []string `json:"tags,omitempty" example:"go"`
	Image   *string  `json:"image,omitempty"`
}

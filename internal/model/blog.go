// File: internal/model/blog.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Blog 對應 blogs 資料表；AuthorName 由 users 表 LEFT JOIN 解析而來
type Blog struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Content    string     `db:"content" json:"content"`
	AuthorID   *uuid.UUID `db:"author_id" json:"author_id,omitempty"`
	AuthorName *string    `db:"author_name" json:"author_name,omitempty"`
	Tags       []string   `db:"tags" json:"tags"`
	Image      string     `db:"image" json:"image"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

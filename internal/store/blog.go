// File: internal/store/blog.go
package store

import (
	"context"
	"fmt"

	"blogify/internal/database"
	"blogify/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// 作者名稱以 LEFT JOIN 解析，作者不存在時為 NULL
const blogSelect = `
	SELECT b.id, b.title, b.content, b.author_id, u.username, b.tags, b.image, b.created_at
	FROM blogs b
	LEFT JOIN users u ON u.id = b.author_id`

func scanBlog(row interface{ Scan(dest ...any) error }, b *model.Blog) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Content,
		&b.AuthorID,
		&b.AuthorName,
		&b.Tags,
		&b.Image,
		&b.CreatedAt,
	)
}

// CreateBlog 寫入新文章，b.ID 與 b.CreatedAt 由呼叫端設定
func CreateBlog(ctx context.Context, db database.DB, b *model.Blog) error {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := db.Exec(ctx,
		`INSERT INTO blogs (id, title, content, author_id, tags, image, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID,
		b.Title,
		b.Content,
		b.AuthorID,
		tags,
		b.Image,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateBlog: %w", err)
	}
	return nil
}

func GetBlogByID(ctx context.Context, db database.DB, id uuid.UUID) (*model.Blog, error) {
	b := &model.Blog{}
	row := db.QueryRow(ctx, blogSelect+` WHERE b.id = $1`, id)
	if err := scanBlog(row, b); err != nil {
		return nil, fmt.Errorf("GetBlogByID: %w", err)
	}
	return b, nil
}

// ListBlogs 依建立時間由新到舊列出所有文章，同一時間以寫入順序 (seq) 決定
func ListBlogs(ctx context.Context, db database.DB) ([]model.Blog, error) {
	rows, err := db.Query(ctx, blogSelect+` ORDER BY b.created_at DESC, b.seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("ListBlogs: %w", err)
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		var b model.Blog
		if err := scanBlog(rows, &b); err != nil {
			return nil, fmt.Errorf("ListBlogs: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBlogs: %w", err)
	}
	return blogs, nil
}

// UpdateBlog 覆寫可編輯欄位；author_id 與 created_at 不變
func UpdateBlog(ctx context.Context, db database.DB, b *model.Blog) error {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	tag, err := db.Exec(ctx,
		`UPDATE blogs SET title = $1, content = $2, tags = $3, image = $4
		 WHERE id = $5`,
		b.Title,
		b.Content,
		tags,
		b.Image,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateBlog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateBlog: %w", pgx.ErrNoRows)
	}
	return nil
}

func DeleteBlog(ctx context.Context, db database.DB, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteBlog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteBlog: %w", pgx.ErrNoRows)
	}
	return nil
}

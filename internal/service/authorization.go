package service

import (
	"blogify/internal/model"

	"github.com/google/uuid"
)

// CanMutate 回報 identity 是否可修改或刪除 blog。
// 沒有作者紀錄的文章任何已登入使用者都可修改。
func CanMutate(identity *Claims, blog *model.Blog) bool {
	if blog.AuthorID == nil {
		return true
	}
	if identity == nil {
		return false
	}
	id, err := uuid.Parse(identity.UserID)
	if err != nil {
		return false
	}
	return id == *blog.AuthorID
}

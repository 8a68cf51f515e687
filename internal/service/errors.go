package service

import "errors"

// 對外錯誤，handler 依此決定 HTTP 狀態碼與訊息
var (
	ErrConflict           = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("blog not found")
	ErrForbidden          = errors.New("not the author of this blog")
)

// ValidationError 為輸入欄位不合法，對應 400
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

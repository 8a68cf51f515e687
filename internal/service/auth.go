// File: internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"blogify/internal/database"
	"blogify/internal/model"
	"blogify/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// maxPasswordBytes 為 bcrypt 可處理的長度上限
const maxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var (
	userExists     = store.UserExists
	createUser     = store.CreateUser
	getUserByEmail = store.GetUserByEmail
	newID          = uuid.New
)

// AuthResult 為註冊與登入成功的結果
type AuthResult struct {
	Token string
	User  *model.User
}

type AuthService struct {
	db     database.DB
	tokens *TokenIssuer
}

func NewAuthService(db database.DB, tokens *TokenIssuer) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// NormalizeEmail 去除空白並轉小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 建立角色為 user 的新帳號並直接發行令牌
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	if username == "" {
		return nil, invalid("username", "username is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, invalid("email", "please enter a valid email")
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return nil, invalid("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	exists, err := userExists(ctx, s.db, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, invalid("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := createUser(ctx, s.db, &model.User{
		ID:           newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		// 兩個請求同時通過檢查時由唯一索引擋下
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.issue(user)
}

// Login 驗證帳密；查無使用者與密碼錯誤回傳相同的 ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email", "email and password are required")
	}

	user, err := getUserByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"blogify/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL 為存取令牌固定有效期，不提供刷新
const TokenTTL = 24 * time.Hour

// ErrInvalidToken 代表簽章錯誤、格式錯誤或已過期
var ErrInvalidToken = errors.New("invalid token")

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// Claims 定義 JWT 負載內容，也是請求期間的身分
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer 持有啟動時載入的簽章密鑰
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT secret 未設定")
	}
	return &TokenIssuer{secret: []byte(secret)}, nil
}

// Issue 依據使用者資訊產生 24 小時有效的 HS256 JWT
func (t *TokenIssuer) Issue(user *model.User) (string, error) {
	now := timeNow()
	claims := Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify 驗證並解析 JWT 令牌，任何失敗都包成 ErrInvalidToken
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package middleware

import (
	"net/http"
	"strings"

	"blogify/internal/api"
	"blogify/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier 由 *service.TokenIssuer 實作
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// bearerToken 接受 "Bearer <token>" 或直接給 token
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// RequireAuth 缺少 Authorization 回 401，令牌無效或過期回 403；
// 通過後將 *service.Claims 存在 ContextUserKey
func RequireAuth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Authorization header missing"})
			}
			claims, err := tokens.Verify(bearerToken(authHeader))
			if err != nil {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Invalid token"})
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// CurrentUser 取出 RequireAuth 設定的身分，未通過驗證時回傳 nil
func CurrentUser(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextUserKey).(*service.Claims)
	return claims
}

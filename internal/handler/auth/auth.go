// Package auth 提供註冊與登入的 HTTP handler
package auth

import (
	"context"
	"errors"
	"net/http"

	"blogify/internal/api"
	"blogify/internal/logging"
	"blogify/internal/service"

	"github.com/labstack/echo/v4"
)

// Authenticator 由 *service.AuthService 實作
type Authenticator interface {
	Register(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// writeError 將 service 錯誤對應到狀態碼，其餘一律 500 並記錄原因
func writeError(c echo.Context, action string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: verr.Message})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "User with this email or username already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
	}
	logging.Ctx(c.Request().Context()).Error().Err(err).Str("action", action).Msg("auth request failed")
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
}

func authResponse(message string, res *service.AuthResult) api.AuthResponse {
	return api.AuthResponse{
		Message: message,
		Token:   res.Token,
		User:    api.NewUserSummary(res.User),
	}
}

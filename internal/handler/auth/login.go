// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"blogify/internal/api"
	"blogify/internal/metrics"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳 24 小時有效的存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		res, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		metrics.AuthEvents.WithLabelValues("login", metrics.Outcome(err)).Inc()
		if err != nil {
			return writeError(c, "login", err)
		}

		return c.JSON(http.StatusOK, authResponse("Login successful", res))
	}
}

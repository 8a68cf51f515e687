package auth

import (
	"net/http"

	"blogify/internal/api"
	"blogify/internal/metrics"

	"github.com/labstack/echo/v4"
)

// SignupHandler 建立新帳號並回傳 JWT
// @Summary     Register a new user
// @Description Email 會去除空白並轉小寫，密碼至少 6 個字元
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.SignupRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /signup [post]
func SignupHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignupRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		res, err := svc.Register(c.Request().Context(), req.Username, req.Email, req.Password)
		metrics.AuthEvents.WithLabelValues("signup", metrics.Outcome(err)).Inc()
		if err != nil {
			return writeError(c, "signup", err)
		}

		return c.JSON(http.StatusCreated, authResponse("User registered successfully", res))
	}
}

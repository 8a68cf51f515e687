// Package blogs 提供文章 CRUD 的 HTTP handler
package blogs

import (
	"context"
	"errors"
	"net/http"

	"blogify/internal/api"
	"blogify/internal/logging"
	"blogify/internal/metrics"
	"blogify/internal/middleware"
	"blogify/internal/model"
	"blogify/internal/service"

	"github.com/labstack/echo/v4"
)

// Service 由 *service.BlogService 實作
type Service interface {
	Create(ctx context.Context, identity *service.Claims, in service.BlogInput) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	Update(ctx context.Context, id string, identity *service.Claims, patch service.BlogPatch) (*model.Blog, error)
	Delete(ctx context.Context, id string, identity *service.Claims) error
}

// writeError 依操作決定 403 訊息，未知錯誤一律 500
func writeError(c echo.Context, op string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: verr.Message})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Blog not found"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to " + op + " this blog"})
	}
	logging.Ctx(c.Request().Context()).Error().Err(err).Str("operation", op).Msg("blog request failed")
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
}

func observe(op string, err error) {
	metrics.BlogOperations.WithLabelValues(op, metrics.Outcome(err)).Inc()
}

// CreateBlogHandler 以目前登入者為作者建立文章
// @Summary     Create a blog
// @Tags        blogs
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateBlogRequest true "文章內容"
// @Success     201  {object} api.BlogEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /create-blog [post]
func CreateBlogHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateBlogRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		blog, err := svc.Create(c.Request().Context(), middleware.CurrentUser(c), service.BlogInput{
			Title:   req.Title,
			Content: req.Content,
			Tags:    req.Tags,
			Image:   req.Image,
		})
		observe("create", err)
		if err != nil {
			return writeError(c, "create", err)
		}
		return c.JSON(http.StatusCreated, api.BlogEnvelope{
			Message: "Blog created successfully",
			Blog:    api.NewBlogResponse(blog),
		})
	}
}

// ListBlogsHandler 依建立時間由新到舊列出所有文章
// @Summary     List blogs
// @Tags        blogs
// @Produce     json
// @Success     200 {array}  api.BlogResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /blogs [get]
func ListBlogsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		blogs, err := svc.List(c.Request().Context())
		observe("list", err)
		if err != nil {
			return writeError(c, "list", err)
		}
		return c.JSON(http.StatusOK, api.NewBlogList(blogs))
	}
}

// @Summary     Get a blog by ID
// @Tags        blogs
// @Produce     json
// @Param       id  path     string true "文章 ID (UUID)"
// @Success     200 {object} api.BlogResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /blogs/{id} [get]
func GetBlogHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		blog, err := svc.GetByID(c.Request().Context(), c.Param("id"))
		observe("get", err)
		if err != nil {
			return writeError(c, "get", err)
		}
		return c.JSON(http.StatusOK, api.NewBlogResponse(blog))
	}
}

// UpdateBlogHandler 只有作者可以修改；省略的欄位維持原值
// @Summary     Update a blog
// @Tags        blogs
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "文章 ID (UUID)"
// @Param       body body     api.UpdateBlogRequest true "要修改的欄位"
// @Success     200  {object} api.BlogEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /blogs/{id} [put]
func UpdateBlogHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateBlogRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}

		blog, err := svc.Update(c.Request().Context(), c.Param("id"), middleware.CurrentUser(c), service.BlogPatch{
			Title:   req.Title,
			Content: req.Content,
			Tags:    req.Tags,
			Image:   req.Image,
		})
		observe("update", err)
		if err != nil {
			return writeError(c, "update", err)
		}
		return c.JSON(http.StatusOK, api.BlogEnvelope{
			Message: "Blog updated successfully",
			Blog:    api.NewBlogResponse(blog),
		})
	}
}

// @Summary     Delete a blog
// @Tags        blogs
// @Produce     json
// @Param       id  path     string true "文章 ID (UUID)"
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /blogs/{id} [delete]
func DeleteBlogHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := svc.Delete(c.Request().Context(), c.Param("id"), middleware.CurrentUser(c))
		observe("delete", err)
		if err != nil {
			return writeError(c, "delete", err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Blog deleted successfully"})
	}
}

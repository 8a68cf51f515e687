// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogify/internal/cache"
	"blogify/internal/database"
	"blogify/internal/handler"
	"blogify/internal/handler/auth"
	"blogify/internal/handler/blogs"
	"blogify/internal/metrics"
	"blogify/internal/middleware"
)

// Deps 為路由所需的共用元件，於啟動時建立一次
type Deps struct {
	DB     database.DB
	Cache  cache.Cache
	Auth   auth.Authenticator
	Blogs  blogs.Service
	Tokens middleware.TokenVerifier
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.Tokens)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊與登入
	api.POST("/signup", auth.SignupHandler(d.Auth))
	api.POST("/login", auth.LoginHandler(d.Auth))

	// 文章：讀取公開，寫入需登入
	api.POST("/create-blog", blogs.CreateBlogHandler(d.Blogs), requireAuth)
	api.GET("/blogs", blogs.ListBlogsHandler(d.Blogs))
	api.GET("/blogs/:id", blogs.GetBlogHandler(d.Blogs))
	api.PUT("/blogs/:id", blogs.UpdateBlogHandler(d.Blogs), requireAuth)
	api.DELETE("/blogs/:id", blogs.DeleteBlogHandler(d.Blogs), requireAuth)

	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

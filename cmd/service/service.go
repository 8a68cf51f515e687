// @title        Blogify API
// @version      1.0
// @description  部落格平台後端 API：註冊、登入與文章 CRUD
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"blogify/internal/cache"
	"blogify/internal/config"
	"blogify/internal/database"
	"blogify/internal/logging"
	"blogify/internal/metrics"
	"blogify/internal/router"
	"blogify/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "blogify/docs" // 引入 swag 產出的 docs
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig          = config.Load
	loadMigrationConfig = config.LoadForMigrations
	newPgxPool          = database.NewPgxPool
	newRedisClient      = cache.NewRedisClient
	runMigrationsFn     = database.RunMigrations
	rollbackFn          = database.RollbackAll
	startServer         = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc            = os.Exit
)

func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Debug = cfg.Server.Debug
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logging.RequestContext())
	e.Use(logging.RequestLogger())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())
	return e
}

func run(args []string) error {
	fs := flag.NewFlagSet("service", flag.ContinueOnError)
	rollback := fs.Bool("rollback", false, "回滾所有 migration 後結束")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// 回滾只需要資料庫設定
	load := loadConfig
	if *rollback {
		load = loadMigrationConfig
	}
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if *rollback {
		if err := rollbackFn(cfg.Database.URL); err != nil {
			return fmt.Errorf("Migration 回滾失敗: %w", err)
		}
		logging.Info().Msg("all migrations rolled back")
		return nil
	}

	tokens, err := service.NewTokenIssuer(cfg.JWT.Secret)
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	e := newEcho(cfg)
	router.Setup(e, router.Deps{
		DB:     db,
		Cache:  rdb,
		Auth:   service.NewAuthService(db, tokens),
		Blogs:  service.NewBlogService(db, rdb, cfg.Cache.BlogTTL),
		Tokens: tokens,
	})

	logging.Info().Str("addr", cfg.Server.Addr).Dur("blog_cache_ttl", cfg.Cache.BlogTTL).Msg("server starting")
	if err := startServer(e, cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		logging.Error().Err(err).Msg("service stopped")
		exitFunc(1)
	}
}

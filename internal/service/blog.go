// File: internal/service/blog.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogify/internal/cache"
	"blogify/internal/database"
	"blogify/internal/logging"
	"blogify/internal/metrics"
	"blogify/internal/model"
	"blogify/internal/store"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

var (
	createBlog  = store.CreateBlog
	getBlogByID = store.GetBlogByID
	listBlogs   = store.ListBlogs
	updateBlog  = store.UpdateBlog
	deleteBlog  = store.DeleteBlog
	getUserByID = store.GetUserByID

	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// BlogInput 為建立文章的欄位
type BlogInput struct {
	Title   string
	Content string
	Tags    []string
	Image   string
}

// BlogPatch 為部分更新；nil 表示未提供。
// Title、Content、Image 為空字串時同樣保留原值，Tags 給空陣列則清空。
type BlogPatch struct {
	Title   *string
	Content *string
	Tags    []string
	Image   *string
}

// cacheTombstone 於修改或刪除後寫入，TTL 內讀取一律回資料庫且不回填。
// 讀取端只用 SETNX 回填，因此在寫入端之前讀到的舊資料無法覆蓋墓碑。
const cacheTombstone = "tombstone"

// BlogService 處理文章 CRUD，單篇文章以 Redis 做 read-through 快取
type BlogService struct {
	db    database.DB
	cache cache.Cache
	ttl   time.Duration
}

// NewBlogService 建立服務；c 為 nil 或 ttl <= 0 時不使用快取
func NewBlogService(db database.DB, c cache.Cache, ttl time.Duration) *BlogService {
	return &BlogService{db: db, cache: c, ttl: ttl}
}

func blogCacheKey(id uuid.UUID) string {
	return "blog:" + id.String()
}

func (s *BlogService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *BlogService) Create(ctx context.Context, identity *Claims, in BlogInput) (*model.Blog, error) {
	if identity == nil {
		return nil, ErrForbidden
	}
	authorID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse author id: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalid("content", "content is required")
	}

	// 作者名稱以資料庫為準，不信任令牌內的 username
	author, err := getUserByID(ctx, s.db, authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	username := author.Username

	b := &model.Blog{
		ID:         newID(),
		Title:      title,
		Content:    in.Content,
		AuthorID:   &authorID,
		AuthorName: &username,
		Tags:       tags,
		Image:      strings.TrimSpace(in.Image),
		// PostgreSQL timestamptz 只到微秒
		CreatedAt: timeNow().UTC().Truncate(time.Microsecond),
	}
	if err := createBlog(ctx, s.db, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List 依建立時間由新到舊回傳所有文章
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	return listBlogs(ctx, s.db)
}

// GetByID 先查快取再查資料庫；id 格式不合法視為不存在
func (s *BlogService) GetByID(ctx context.Context, rawID string) (*model.Blog, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrNotFound
	}

	if b, ok := s.fromCache(ctx, id); ok {
		return b, nil
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, b)
	return b, nil
}

func (s *BlogService) Update(ctx context.Context, rawID string, identity *Claims, patch BlogPatch) (*model.Blog, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrNotFound
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutate(identity, b) {
		return nil, ErrForbidden
	}

	if patch.Title != nil {
		if t := strings.TrimSpace(*patch.Title); t != "" {
			b.Title = t
		}
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) != "" {
		b.Content = *patch.Content
	}
	if patch.Image != nil {
		if img := strings.TrimSpace(*patch.Image); img != "" {
			b.Image = img
		}
	}
	if patch.Tags != nil {
		b.Tags = patch.Tags
	}

	if err := updateBlog(ctx, s.db, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, id)
	return b, nil
}

func (s *BlogService) Delete(ctx context.Context, rawID string, identity *Claims) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ErrNotFound
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(identity, b) {
		return ErrForbidden
	}

	if err := deleteBlog(ctx, s.db, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *BlogService) load(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	b, err := getBlogByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// 快取失敗只記錄，不影響回應
func (s *BlogService) fromCache(ctx context.Context, id uuid.UUID) (*model.Blog, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, blogCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.BlogCacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.BlogCacheLookups.WithLabelValues("error").Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("blog_id", id.String()).Msg("blog cache get failed")
		}
		return nil, false
	}

	if string(raw) == cacheTombstone {
		metrics.BlogCacheLookups.WithLabelValues("tombstone").Inc()
		return nil, false
	}

	var b model.Blog
	if err := jsonUnmarshal(raw, &b); err != nil {
		metrics.BlogCacheLookups.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("blog_id", id.String()).Msg("blog cache decode failed")
		return nil, false
	}
	metrics.BlogCacheLookups.WithLabelValues("hit").Inc()
	return &b, true
}

func (s *BlogService) toCache(ctx context.Context, b *model.Blog) {
	if !s.cacheEnabled() {
		return
	}
	raw, err := jsonMarshal(b)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("blog_id", b.ID.String()).Msg("blog cache encode failed")
		return
	}
	// 已有墓碑或較新的資料時不覆蓋
	if err := s.cache.SetNX(ctx, blogCacheKey(b.ID), raw, s.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("blog_id", b.ID.String()).Msg("blog cache set failed")
	}
}

// invalidate 在資料庫寫入後以墓碑覆蓋快取
func (s *BlogService) invalidate(ctx context.Context, id uuid.UUID) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Set(ctx, blogCacheKey(id), cacheTombstone, s.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("blog_id", id.String()).Msg("blog cache invalidate failed")
		// 墓碑寫不進去時至少移除舊資料
		if err := s.cache.Del(ctx, blogCacheKey(id)).Err(); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("blog_id", id.String()).Msg("blog cache delete failed")
		}
	}
}

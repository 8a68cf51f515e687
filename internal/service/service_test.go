package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"blogify/internal/database"
	"blogify/internal/model"
	"blogify/internal/store"

	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newID = uuid.New

	userExists = store.UserExists
	createUser = store.CreateUser
	getUserByEmail = store.GetUserByEmail

	createBlog = store.CreateBlog
	getBlogByID = store.GetBlogByID
	listBlogs = store.ListBlogs
	updateBlog = store.UpdateBlog
	deleteBlog = store.DeleteBlog
	getUserByID = store.GetUserByID

	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
}

// memStore 以記憶體取代 store 套件，行為與資料表約束一致
type memStore struct {
	mu    sync.Mutex
	users []*model.User
	blogs map[uuid.UUID]model.Blog
}

func installMemStore(t *testing.T) *memStore {
	t.Helper()
	t.Cleanup(restoreGlobals)
	m := &memStore{blogs: map[uuid.UUID]model.Blog{}}

	userExists = func(_ context.Context, _ database.DB, email, username string) (bool, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if u.Email == email || u.Username == username {
				return true, nil
			}
		}
		return false, nil
	}
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, x := range m.users {
			if x.Email == u.Email || x.Username == u.Username {
				return nil, fmt.Errorf("CreateUser: %w", store.ErrDuplicate)
			}
		}
		u.CreatedAt = timeNow()
		cp := *u
		m.users = append(m.users, &cp)
		return u, nil
	}
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if u.Email == email {
				cp := *u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", pgx.ErrNoRows)
	}

	getUserByID = func(_ context.Context, _ database.DB, id uuid.UUID) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if u.ID == id {
				cp := *u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByID: %w", pgx.ErrNoRows)
	}

	createBlog = func(_ context.Context, _ database.DB, b *model.Blog) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		cp := *b
		cp.AuthorName = nil
		cp.Tags = append([]string{}, b.Tags...)
		m.blogs[b.ID] = cp
		return nil
	}
	getBlogByID = func(_ context.Context, _ database.DB, id uuid.UUID) (*model.Blog, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		b, ok := m.blogs[id]
		if !ok {
			return nil, fmt.Errorf("GetBlogByID: %w", pgx.ErrNoRows)
		}
		out := m.resolve(b)
		return &out, nil
	}
	listBlogs = func(_ context.Context, _ database.DB) ([]model.Blog, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		out := []model.Blog{}
		for _, b := range m.blogs {
			out = append(out, m.resolve(b))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return out, nil
	}
	updateBlog = func(_ context.Context, _ database.DB, b *model.Blog) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		old, ok := m.blogs[b.ID]
		if !ok {
			return fmt.Errorf("UpdateBlog: %w", pgx.ErrNoRows)
		}
		old.Title = b.Title
		old.Content = b.Content
		old.Tags = append([]string{}, b.Tags...)
		old.Image = b.Image
		m.blogs[b.ID] = old
		return nil
	}
	deleteBlog = func(_ context.Context, _ database.DB, id uuid.UUID) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.blogs[id]; !ok {
			return fmt.Errorf("DeleteBlog: %w", pgx.ErrNoRows)
		}
		delete(m.blogs, id)
		return nil
	}
	return m
}

// resolve 模擬 LEFT JOIN users
func (m *memStore) resolve(b model.Blog) model.Blog {
	b.Tags = append([]string{}, b.Tags...)
	b.AuthorName = nil
	if b.AuthorID == nil {
		return b
	}
	for _, u := range m.users {
		if u.ID == *b.AuthorID {
			name := u.Username
			b.AuthorName = &name
		}
	}
	return b
}

// seedBlog 直接寫入一篇文章，author 可為 nil
func (m *memStore) seedBlog(author *uuid.UUID, title string) model.Blog {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := model.Blog{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content of " + title,
		AuthorID:  author,
		Tags:      []string{"seed"},
		CreatedAt: time.Now().UTC(),
	}
	m.blogs[b.ID] = b
	return b
}

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	ti, err := NewTokenIssuer("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	return ti
}

// fastBcrypt 測試中降低雜湊成本
func fastBcrypt(t *testing.T) {
	t.Helper()
	bcryptGenerateFromPassword = func(p []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(p, bcrypt.MinCost)
	}
}

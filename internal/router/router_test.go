package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blogify/internal/cache"
	"blogify/internal/database"
	"blogify/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	issuer, err := service.NewTokenIssuer("secret")
	require.NoError(t, err)
	db := &database.FakeDB{}
	e := echo.New()
	Setup(e, Deps{
		DB:     db,
		Cache:  &cache.FakeCache{},
		Auth:   service.NewAuthService(db, issuer),
		Blogs:  service.NewBlogService(db, nil, 0),
		Tokens: issuer,
	})
	return e
}

func TestSetupRoutes(t *testing.T) {
	e := newTestEcho(t)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/signup",
		http.MethodPost + " /api/login",
		http.MethodPost + " /api/create-blog",
		http.MethodGet + " /api/blogs",
		http.MethodGet + " /api/blogs/:id",
		http.MethodPut + " /api/blogs/:id",
		http.MethodDelete + " /api/blogs/:id",
		http.MethodGet + " /metrics",
		http.MethodGet + " /swagger/*",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestEcho(t)

	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/create-blog"},
		{http.MethodPut, "/api/blogs/123"},
		{http.MethodDelete, "/api/blogs/123"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		req = httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

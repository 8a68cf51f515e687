package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blogify/internal/model"
	"blogify/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "abc", bearerToken("Bearer abc"))
	require.Equal(t, "abc", bearerToken("bearer  abc"))
	require.Equal(t, "abc", bearerToken("abc"))
	require.Equal(t, "abc", bearerToken(" abc "))
}

func TestRequireAuth(t *testing.T) {
	issuer, err := service.NewTokenIssuer("secret")
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Username: "alice", Role: model.RoleUser}
	tok, err := issuer.Issue(user)
	require.NoError(t, err)

	guard := RequireAuth(issuer)

	for _, header := range []string{"Bearer " + tok, tok} {
		ctx, rec := newContext(header)
		called := false
		h := guard(func(c echo.Context) error {
			called = true
			cl := CurrentUser(c)
			require.NotNil(t, cl)
			require.Equal(t, user.ID.String(), cl.UserID)
			require.Equal(t, "alice", cl.Username)
			return c.String(http.StatusOK, "ok")
		})
		require.NoError(t, h(ctx))
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// missing header
	ctx, rec := newContext("")
	called := false
	require.NoError(t, guard(func(echo.Context) error { called = true; return nil })(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Authorization header missing"}`, rec.Body.String())

	// invalid token
	ctx, rec = newContext("Bearer invalid")
	require.NoError(t, guard(func(echo.Context) error { called = true; return nil })(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())

	// other secret
	other, err := service.NewTokenIssuer("other")
	require.NoError(t, err)
	foreign, err := other.Issue(user)
	require.NoError(t, err)
	ctx, rec = newContext("Bearer " + foreign)
	require.NoError(t, guard(func(echo.Context) error { called = true; return nil })(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCurrentUserMissing(t *testing.T) {
	ctx, _ := newContext("")
	require.Nil(t, CurrentUser(ctx))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) FindByID(id int64) (*entity.User, error) {
	return s.user, nil
}

func runAuth(t *testing.T, repo *stubUserRepo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewAuthMiddleware(&AuthMiddlewareConfig{
		JWTSecret: testSecret,
		UserRepo:  repo,
	})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func signedToken(t *testing.T, user *entity.User) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, &utils.TokenData{
		ID: user.ID, Nome: user.Name, Email: user.Email, Role: user.Role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewarePassesActiveUser(t *testing.T) {
	user := &entity.User{ID: 1, Name: "Maria", Email: "maria@example.com", Role: entity.RoleUser, Active: true}

	rec := runAuth(t, &stubUserRepo{user: user}, "Bearer "+signedToken(t, user))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	rec := runAuth(t, &stubUserRepo{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	rec := runAuth(t, &stubUserRepo{}, "Bearer nonsense")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsTokenForDeletedUser(t *testing.T) {
	user := &entity.User{ID: 1, Role: entity.RoleUser, Active: true}

	rec := runAuth(t, &stubUserRepo{user: nil}, "Bearer "+signedToken(t, user))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBlocksInactiveUser(t *testing.T) {
	user := &entity.User{ID: 1, Role: entity.RoleUser, Active: false}

	rec := runAuth(t, &stubUserRepo{user: user}, "Bearer "+signedToken(t, user))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminMiddlewareBlocksNonAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &entity.User{ID: 1, Role: entity.RoleUser, Active: true})

	handler := NewAdminMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminMiddlewarePassesAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &entity.User{ID: 1, Role: entity.RoleAdmin, Active: true})

	handler := NewAdminMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

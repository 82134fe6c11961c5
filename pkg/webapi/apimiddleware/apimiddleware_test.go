package apimiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStor struct {
	lookups int
	users   map[string]*pcmodel.User
}

func (s *fakeUserStor) CreateUser(user *pcmodel.User) (*pcmodel.User, error) { return user, nil }

func (s *fakeUserStor) GetUserByID(userID int) (*pcmodel.User, error) {
	return nil, apperr.ErrNotFound
}

func (s *fakeUserStor) GetUserByUsername(username string) (*pcmodel.User, error) {
	return nil, apperr.ErrNotFound
}

func (s *fakeUserStor) GetUserByAPIToken(apitoken string) (*pcmodel.User, error) {
	s.lookups++
	if user, ok := s.users[apitoken]; ok {
		return user, nil
	}
	return nil, errors.Wrapf(apperr.ErrNotFound, "api token")
}

func serve(t *testing.T, mw []echo.MiddlewareFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).Username)
	}, mw...)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAPIKeyAuth(t *testing.T) {
	userStor := &fakeUserStor{users: map[string]*pcmodel.User{"k1": {ID: 1, Username: "amy"}}}
	cache := NewAPIKeyCache(userStor)
	auth := APIKeyAuth(APIKeyConfig{HeaderName: "X-API-Key", QueryName: "apikey", GetUserByAPIKey: cache.GetUserByAPIKey})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "k1")
	rec := serve(t, []echo.MiddlewareFunc{auth}, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "amy", rec.Body.String())

	rec = serve(t, []echo.MiddlewareFunc{auth}, httptest.NewRequest(http.MethodGet, "/?apikey=k1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, userStor.lookups, "second request is served from the cache")

	rec = serve(t, []echo.MiddlewareFunc{auth}, httptest.NewRequest(http.MethodGet, "/?apikey=nope", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, []echo.MiddlewareFunc{auth}, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown keys are looked up every time, they are never cached.
	lookups := userStor.lookups
	cache.DeleteUserByID(1)
	rec = serve(t, []echo.MiddlewareFunc{auth}, httptest.NewRequest(http.MethodGet, "/?apikey=k1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, lookups+1, userStor.lookups, "deleted user is reloaded from the stor")
}

func TestRequireAdminAndVerified(t *testing.T) {
	users := map[string]*pcmodel.User{
		"admin":    {ID: 1, Username: "admin", IsAdmin: true},
		"verified": {ID: 2, Username: "verified"},
		"newbie":   {ID: 3, Username: "newbie"},
	}
	auth := APIKeyAuth(APIKeyConfig{
		HeaderName:      "X-API-Key",
		QueryName:       "apikey",
		GetUserByAPIKey: NewAPIKeyCache(&fakeUserStor{users: users}).GetUserByAPIKey,
	})
	verified := RequireVerified(VerifiedConfig{IsVerified: func(userID int) (bool, error) {
		return userID == 2, nil
	}})

	tests := []struct {
		name       string
		mw         []echo.MiddlewareFunc
		key        string
		wantStatus int
	}{
		{"admin passes admin check", []echo.MiddlewareFunc{auth, RequireAdmin()}, "admin", http.StatusOK},
		{"non-admin fails admin check", []echo.MiddlewareFunc{auth, RequireAdmin()}, "verified", http.StatusForbidden},
		{"admin passes verified check", []echo.MiddlewareFunc{auth, verified}, "admin", http.StatusOK},
		{"verified passes verified check", []echo.MiddlewareFunc{auth, verified}, "verified", http.StatusOK},
		{"unverified fails verified check", []echo.MiddlewareFunc{auth, verified}, "newbie", http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := serve(t, test.mw, httptest.NewRequest(http.MethodGet, "/?apikey="+test.key, nil))
			assert.Equal(t, test.wantStatus, rec.Code)
		})
	}
}

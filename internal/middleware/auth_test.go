package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", AdminAuthMiddleware(cfg), func(c *gin.Context) {
		claims := util.GetAdminFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return router
}

func TestAdminAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	router := newAuthRouter(cfg)

	token, err := util.GenerateAdminJWT("admin-1", "admin@example.com", "test-secret", time.Hour)
	require.NoError(t, err)

	// bearer header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")

	// session cookie
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuthMiddlewareRejects(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	router := newAuthRouter(cfg)

	// no token at all
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// token signed with another secret
	forged, err := util.GenerateAdminJWT("admin-1", "admin@example.com", "other-secret", time.Hour)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// expired token
	expired, err := util.GenerateAdminJWT("admin-1", "admin@example.com", "test-secret", -time.Hour)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

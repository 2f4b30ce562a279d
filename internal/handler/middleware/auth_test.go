//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"geargo/internal/domain/user"
	"geargo/internal/handler/middleware"
	"geargo/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRig(roles ...user.Role) (*gin.Engine, *jwt.Service) {
	tokens := jwt.NewService("test-secret", time.Hour)
	auth := middleware.NewAuthMiddleware(tokens)

	engine := gin.New()
	group := engine.Group("/protected", auth.RequireAuth())
	if len(roles) > 0 {
		group.Use(auth.RequireRole(roles...))
	}
	group.GET("", func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.ID, "role": actor.Role})
	})
	return engine, tokens
}

func get(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	engine, tokens := newAuthRig()
	userID := uuid.New()

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.RoleRenter)
		require.NoError(t, err)

		w := get(engine, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		w := get(engine, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		w := get(engine, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		w := get(engine, "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(userID, user.RoleRenter)
		require.NoError(t, err)

		w := get(engine, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	engine, tokens := newAuthRig(user.RoleOwner)
	userID := uuid.New()

	t.Run("allows the named role", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.RoleOwner)
		require.NoError(t, err)

		w := get(engine, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin always passes", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		w := get(engine, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.RoleRenter)
		require.NoError(t, err)

		w := get(engine, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/utils"
)

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint("user_id"),
			"role":    c.GetString("role"),
		})
	})
	r.GET("/secret", handlers...)
	return r
}

func get(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()

	token, err := utils.GenerateToken(7, models.RoleEmployee)
	require.NoError(t, err)

	// Valid bearer token.
	w := get(r, "/secret", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Token via query parameter, for websocket handshakes.
	w = get(r, "/secret?token="+token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Missing and garbage tokens.
	w = get(r, "/secret", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/secret", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(RequireRole(models.RoleAdmin))

	admin, err := utils.GenerateToken(1, models.RoleAdmin)
	require.NoError(t, err)
	employee, err := utils.GenerateToken(2, models.RoleEmployee)
	require.NoError(t, err)

	w := get(r, "/secret", "Bearer "+admin)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/secret", "Bearer "+employee)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"villa-backend/utils"
)

func authTestRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", RequireRole(role), func(c *gin.Context) {
		id, ok := AuthUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth context missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": id})
	})
	return r
}

func TestRequireRoleMissingToken(t *testing.T) {
	r := authTestRouter(utils.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleInvalidToken(t *testing.T) {
	r := authTestRouter(utils.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleWrongRole(t *testing.T) {
	r := authTestRouter(utils.RoleAdmin)

	token, err := utils.GenerateAuthToken(5, utils.RoleHost, "host")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAccepted(t *testing.T) {
	r := authTestRouter(utils.RoleHost)

	token, err := utils.GenerateAuthToken(5, utils.RoleHost, "host")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"uid":5`)
}

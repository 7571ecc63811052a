package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ehealth/database/repository/memory"
	"ehealth/models"
	"ehealth/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*gin.Engine, *memory.UserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := memory.NewUserRepo()

	r := gin.New()
	auth := r.Group("/", JWTAuthUserMiddleware(repo))
	auth.GET("/me", func(c *gin.Context) {
		caller := CurrentCaller(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.ID, "role": caller.Role})
	})
	auth.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	auth.GET("/doctors-only", RequireRole("Not authorized", models.RoleDoctor), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, repo
}

func seedUser(t *testing.T, repo *memory.UserRepo, id, role, status string) string {
	t.Helper()
	token, err := utils.GenerateToken(id, role, utils.TokenTTL())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &models.User{
		ID: id, Email: id + "@x.io", Role: role, Status: status, TokenHash: utils.HashToken(token),
	}))
	return token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, repo := setupTestApp(t)
	token := seedUser(t, repo, "u1", models.RolePatient, models.StatusActive)

	w := get(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"patient"}`, w.Body.String())

	w = get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())

	w = get(r, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	r, repo := setupTestApp(t)
	token := seedUser(t, repo, "u1", models.RolePatient, models.StatusActive)
	require.NoError(t, repo.UpdateTokenHash(context.Background(), "u1", ""))

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", token).Code)
}

func TestAuthMiddlewareRejectsInactive(t *testing.T) {
	r, repo := setupTestApp(t)
	token := seedUser(t, repo, "u1", models.RoleDoctor, models.StatusInactive)

	assert.Equal(t, http.StatusForbidden, get(r, "/me", token).Code)
}

func TestRoleGuards(t *testing.T) {
	r, repo := setupTestApp(t)
	patient := seedUser(t, repo, "p1", models.RolePatient, models.StatusActive)
	admin := seedUser(t, repo, "a1", models.RoleAdmin, models.StatusActive)
	doctor := seedUser(t, repo, "d1", models.RoleDoctor, models.StatusActive)

	w := get(r, "/admin", patient)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, w.Body.String())
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", admin).Code)

	assert.Equal(t, http.StatusForbidden, get(r, "/doctors-only", patient).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/doctors-only", doctor).Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per client IP")
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carrental/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testUser() *models.User {
	return &models.User{
		ID:      7,
		UserUid: "22222222-2222-2222-2222-222222222222",
		Email:   "admin@test.local",
		Name:    "Admin",
		Role:    models.RoleAdmin,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, testUser(), time.Hour)
	require.NoError(t, err)

	principal, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), principal.UserID)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", principal.UserUid)
	assert.Equal(t, models.RoleAdmin, principal.Role)
	assert.True(t, principal.IsAdmin())
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, testUser(), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueToken(testSecret, testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/cars", nil)

	RequireAuth(testSecret)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestRequireAuthValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token, err := IssueToken(testSecret, testUser(), time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/cars", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	RequireAuth(testSecret)(c)

	assert.False(t, c.IsAborted())
	principal, ok := CurrentPrincipal(c)
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, principal.Role)
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PATCH", "/api/admin/users/x", nil)
	SetPrincipal(c, &Principal{UserID: 1, UserUid: "u", Role: models.RoleUser})

	RequireRole(models.RoleAdmin)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PATCH", "/api/admin/users/x", nil)
	SetPrincipal(c, &Principal{UserID: 1, UserUid: "u", Role: models.RoleAdmin})

	RequireRole(models.RoleAdmin)(c)

	assert.False(t, c.IsAborted())
}

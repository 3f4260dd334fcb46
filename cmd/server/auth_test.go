package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/pkg/auth"
	"carrental/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUser(t *testing.T) {
	setupTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/auth/register", map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@test.local",
		"password": "secret123",
	})

	register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@test.local").First(&user).Error)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTest(t)
	createTestUser(t, "alice@test.local", models.RoleUser)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/auth/register", map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@test.local",
		"password": "secret123",
	})

	register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, false, response["success"])
}

func TestRegisterMissingFields(t *testing.T) {
	setupTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/auth/register", map[string]interface{}{
		"email": "not-an-email",
	})

	register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginIssuesToken(t *testing.T) {
	setupTest(t)
	user := createTestUser(t, "admin@test.local", models.RoleAdmin)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "admin@test.local",
		"password": "secret123",
	})

	login(c)

	require.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	data := response["data"].(map[string]interface{})

	principal, err := auth.ParseToken(jwtSecret, data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user.UserUid, principal.UserUid)
	assert.Equal(t, models.RoleAdmin, principal.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTest(t)
	createTestUser(t, "alice@test.local", models.RoleUser)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@test.local",
		"password": "wrong-password",
	})

	login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	setupTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "nobody@test.local",
		"password": "secret123",
	})

	login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

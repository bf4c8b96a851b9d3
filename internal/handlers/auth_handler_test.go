package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet-management-api/internal/database"
	"fleet-management-api/internal/middleware"
	"fleet-management-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	r.POST("/api/register", Register)
	r.POST("/api/login", Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/register", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/login", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice@example.com", resp.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/register", map[string]string{
		"email":    "bob@example.com",
		"name":     "Bob",
		"password": "correct-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/login", map[string]string{
		"email":    "bob@example.com",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := setupAuthRouter(t)

	payload := map[string]string{
		"email":    "carol@example.com",
		"name":     "Carol",
		"password": "s3cret-pass",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/register", payload).Code)
	require.Equal(t, http.StatusBadRequest, postJSON(t, r, "/api/register", payload).Code)
}

func TestGetAllUsers(t *testing.T) {
	r := setupAuthRouter(t)
	r.GET("/api/users", middleware.JWTAuthMiddleware(), GetAllUsers)

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/register", map[string]string{
		"email":    "dave@example.com",
		"name":     "Dave",
		"password": "s3cret-pass",
	}).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/users", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []UserResponse `json:"users"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "dave@example.com", resp.Users[0].Email)
}

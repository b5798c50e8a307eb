//go:build integration

// Full-stack test against real Postgres and Redis via testcontainers:
//
//	go test -tags integration ./internal/router/
package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muhammadjayadi/larastore-management/internal/config"
	"github.com/muhammadjayadi/larastore-management/internal/dto"
	"github.com/muhammadjayadi/larastore-management/internal/infra"
	"github.com/muhammadjayadi/larastore-management/internal/model"
	"github.com/muhammadjayadi/larastore-management/internal/repository"
	"github.com/muhammadjayadi/larastore-management/internal/router"
	"github.com/muhammadjayadi/larastore-management/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	router *gin.Engine
	token  string
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("larastore_test"),
		tcpostgres.WithUsername("larastore"),
		tcpostgres.WithPassword("larastore"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	redisC, err := tcredis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	redisURL, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(redisURL)
	require.NoError(t, err)
	uploads, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "integration-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}

	// Seed the administrator the whole flow acts as.
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo := repository.NewUserRepository(db)
	require.NoError(t, userRepo.Create(ctx, &model.User{
		Name:         "Administrator",
		Username:     "admin",
		Email:        "admin@example.com",
		Roles:        []string{model.RoleAdmin},
		Status:       model.StatusActive,
		PasswordHash: string(hash),
	}))

	e := &env{router: router.New(cfg, db, rdb, uploads)}

	body, _ := json.Marshal(dto.LoginRequest{Username: "admin", Password: "secret123"})
	rec := e.do(t, http.MethodPost, "/v1/auth/login", bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	e.token = login.AccessToken
	return e
}

func (e *env) do(t *testing.T, method, path string, body *bytes.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func categoryForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		fw, err := w.CreateFormFile("image", "img.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return bytes.NewReader(buf.Bytes()), w.FormDataContentType()
}

func TestCategoryLifecycle(t *testing.T) {
	e := setup(t)

	// Create
	body, ct := categoryForm(t, map[string]string{"name": "Electronics"}, true)
	rec := e.do(t, http.MethodPost, "/v1/categories", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.CategoryStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Category)
	assert.Equal(t, "electronics", created.Category.Slug)
	id := created.Category.ID.String()

	// Listed
	rec = e.do(t, http.MethodGet, "/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page dto.CategoryPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)

	// Live search
	rec = e.do(t, http.MethodGet, "/v1/categories/search?q=Elec", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var results []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)

	// Trash
	rec = e.do(t, http.MethodDelete, "/v1/categories/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/v1/categories/trash", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)

	rec = e.do(t, http.MethodGet, "/v1/categories/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Permanent delete refuses nothing here: the row is trashed
	rec = e.do(t, http.MethodPost, "/v1/categories/"+id+"/restore", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/categories/"+id+"/restore", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code, "second restore hits an active row")

	rec = e.do(t, http.MethodDelete, "/v1/categories/"+id+"/permanent", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code, "active rows cannot be purged")

	rec = e.do(t, http.MethodDelete, "/v1/categories/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodDelete, "/v1/categories/"+id+"/permanent", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/v1/categories/trash", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Data)
}

func TestCategoryValidationAndSlugUniqueness(t *testing.T) {
	e := setup(t)

	// Missing name and image
	body, ct := categoryForm(t, nil, false)
	rec := e.do(t, http.MethodPost, "/v1/categories", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body, ct = categoryForm(t, map[string]string{"name": "Kitchen"}, true)
	rec = e.do(t, http.MethodPost, "/v1/categories", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	body, ct = categoryForm(t, map[string]string{"name": "Gaming"}, true)
	rec = e.do(t, http.MethodPost, "/v1/categories", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.CategoryStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Updating Gaming with the slug already held by Kitchen
	body, ct = categoryForm(t, map[string]string{"name": "Gaming", "slug": "kitchen"}, true)
	rec = e.do(t, http.MethodPut, "/v1/categories/"+created.Category.ID.String(), body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestCategoryPagination(t *testing.T) {
	e := setup(t)

	for i := 0; i < 12; i++ {
		body, ct := categoryForm(t, map[string]string{"name": fmt.Sprintf("Category %02d", i)}, true)
		rec := e.do(t, http.MethodPost, "/v1/categories", body, ct)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := e.do(t, http.MethodGet, "/v1/categories?page=1", nil, "")
	var page dto.CategoryPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 10)
	assert.Equal(t, int64(12), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)

	rec = e.do(t, http.MethodGet, "/v1/categories?page=2", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 2)
}

func TestUserCRUD(t *testing.T) {
	e := setup(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Staff One"))
	require.NoError(t, w.WriteField("username", "staff1"))
	require.NoError(t, w.WriteField("email", "staff1@example.com"))
	require.NoError(t, w.WriteField("password", "secret123"))
	require.NoError(t, w.WriteField("roles", model.RoleStaff))
	require.NoError(t, w.Close())

	rec := e.do(t, http.MethodPost, "/v1/users", bytes.NewReader(buf.Bytes()), w.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.UserStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.User)
	id := created.User.ID.String()
	assert.Equal(t, model.StatusActive, created.User.Status)

	// Keyword listing; status alone must not filter
	rec = e.do(t, http.MethodGet, "/v1/users?keyword=staff1", nil, "")
	var page dto.UserPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)

	rec = e.do(t, http.MethodGet, "/v1/users?status=inactive", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 2, "admin + staff1: a lone status filters nothing")

	// Soft delete
	rec = e.do(t, http.MethodDelete, "/v1/users/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/v1/users/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesRequireAdminRole(t *testing.T) {
	e := setup(t)

	// A staff account can log in but cannot touch categories.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Staff Two"))
	require.NoError(t, w.WriteField("username", "staff2"))
	require.NoError(t, w.WriteField("email", "staff2@example.com"))
	require.NoError(t, w.WriteField("password", "secret123"))
	require.NoError(t, w.WriteField("roles", model.RoleStaff))
	require.NoError(t, w.Close())
	rec := e.do(t, http.MethodPost, "/v1/users", bytes.NewReader(buf.Bytes()), w.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code)

	body, _ := json.Marshal(dto.LoginRequest{Username: "staff2", Password: "secret123"})
	rec = e.do(t, http.MethodPost, "/v1/auth/login", bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	staff := &env{router: e.router, token: login.AccessToken}
	rec = staff.do(t, http.MethodGet, "/v1/categories", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = staff.do(t, http.MethodGet, "/v1/users", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code, "users carry no ability gate")
}

func TestUnauthenticatedRejected(t *testing.T) {
	e := setup(t)
	anon := &env{router: e.router}
	rec := anon.do(t, http.MethodGet, "/v1/categories", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

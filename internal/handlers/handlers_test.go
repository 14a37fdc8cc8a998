package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/router"
	"github.com/socializenotion/backend/pkg/config"
	"github.com/socializenotion/backend/validators"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds the full application wired to an in-memory
// database. SetMaxOpenConns(1) keeps every query on the single
// connection holding the in-memory schema.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupRoutes(e, db, &config.Config{JWTSecret: "test-secret"})
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// registerUser creates an account through the API and returns its token and id
func registerUser(t *testing.T, e *echo.Echo, username string) (string, uint) {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/register", "", echo.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	return token, uint(user["id"].(float64))
}

// createFolder creates a folder and returns its id
func createFolder(t *testing.T, e *echo.Echo, token, name string, parentID *uint) uint {
	t.Helper()

	payload := echo.Map{"name": name}
	if parentID != nil {
		payload["parent_folder_id"] = *parentID
	}
	rec := doJSON(t, e, http.MethodPost, "/api/folders", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	folder := decode(t, rec)["folder"].(map[string]any)
	return uint(folder["id"].(float64))
}

// createNote creates a note and returns its id
func createNote(t *testing.T, e *echo.Echo, token string, payload echo.Map) uint {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/notes", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	note := decode(t, rec)["note"].(map[string]any)
	return uint(note["id"].(float64))
}

// createPost creates a text post and returns its id
func createPost(t *testing.T, e *echo.Echo, token, caption string) uint {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/posts", token, echo.Map{
		"content_type": "text",
		"caption":      caption,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	post := decode(t, rec)["post"].(map[string]any)
	return uint(post["id"].(float64))
}

func uintPath(base string, id uint) string {
	return base + "/" + strconv.FormatUint(uint64(id), 10)
}

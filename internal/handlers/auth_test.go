package handlers_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice")

	// login by username
	rec := doJSON(t, e, http.MethodPost, "/api/login", "", echo.Map{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decode(t, rec)["token"])

	// login by email
	rec = doJSON(t, e, http.MethodPost, "/api/login", "", echo.Map{
		"username": "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// wrong password
	rec = doJSON(t, e, http.MethodPost, "/api/login", "", echo.Map{
		"username": "alice",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// unknown user
	rec = doJSON(t, e, http.MethodPost, "/api/login", "", echo.Map{
		"username": "nobody",
		"password": "password123",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterConflicts(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice")

	rec := doJSON(t, e, http.MethodPost, "/api/register", "", echo.Map{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/register", "", echo.Map{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	e := newTestServer(t)

	// username too short
	rec := doJSON(t, e, http.MethodPost, "/api/register", "", echo.Map{
		"username": "ab",
		"email":    "ab@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed email
	rec = doJSON(t, e, http.MethodPost, "/api/register", "", echo.Map{
		"username": "charlie",
		"email":    "not-an-email",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// password too short
	rec = doJSON(t, e, http.MethodPost, "/api/register", "", echo.Map{
		"username": "charlie",
		"email":    "charlie@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/profile", "not-a-real-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func signToken(t *testing.T, userID uint, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestExpiredAndForgedTokensRejected(t *testing.T) {
	e := newTestServer(t)
	_, userID := registerUser(t, e, "alice")

	// a correctly signed token past its expiry is rejected
	expired := signToken(t, userID, "test-secret", time.Now().Add(-time.Hour))
	rec := doJSON(t, e, http.MethodGet, "/api/profile", expired, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// a fresh token signed with the wrong secret is rejected too
	forged := signToken(t, userID, "other-secret", time.Now().Add(time.Hour))
	rec = doJSON(t, e, http.MethodGet, "/api/profile", forged, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// sanity: a valid token for the same user still passes
	valid := signToken(t, userID, "test-secret", time.Now().Add(time.Hour))
	rec = doJSON(t, e, http.MethodGet, "/api/profile", valid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	rec := doJSON(t, e, http.MethodPut, "/api/profile", aliceToken, echo.Map{
		"bio": "Hello there",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]any)
	require.Equal(t, "Hello there", user["bio"])

	// taking another user's username is rejected
	rec = doJSON(t, e, http.MethodPut, "/api/profile", bobToken, echo.Map{
		"username": "alice",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// keeping your own username is not a conflict
	rec = doJSON(t, e, http.MethodPut, "/api/profile", bobToken, echo.Map{
		"username": "bob",
		"bio":      "still bob",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteAccountCascades(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	postID := createPost(t, e, aliceToken, "hello world")

	rec := doJSON(t, e, http.MethodPost, uintPath("/api/posts", postID)+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, uintPath("/api/posts", postID)+"/comments", bobToken, echo.Map{
		"content": "nice post",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodGet, uintPath("/api/posts", postID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	post := decode(t, rec)["post"].(map[string]any)
	require.Equal(t, float64(1), post["likes_count"])
	require.Equal(t, float64(1), post["comments_count"])

	rec = doJSON(t, e, http.MethodDelete, "/api/profile", bobToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// the deleted user's token no longer resolves
	rec = doJSON(t, e, http.MethodGet, "/api/profile", bobToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// the counters on other users' posts were rolled back with the rows
	rec = doJSON(t, e, http.MethodGet, uintPath("/api/posts", postID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	post = decode(t, rec)["post"].(map[string]any)
	require.Equal(t, float64(0), post["likes_count"])
	require.Equal(t, float64(0), post["comments_count"])
}

func TestLogout(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	rec := doJSON(t, e, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// tokens are stateless; the token still works until it expires
	rec = doJSON(t, e, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

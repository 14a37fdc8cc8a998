package handlers_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestFollowUnfollow(t *testing.T) {
	e := newTestServer(t)
	aliceToken, aliceID := registerUser(t, e, "alice")
	bobToken, bobID := registerUser(t, e, "bob")

	rec := doJSON(t, e, http.MethodPost, uintPath("/api/users", aliceID)+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), decode(t, rec)["follower_count"])

	// following twice is a conflict
	rec = doJSON(t, e, http.MethodPost, uintPath("/api/users", aliceID)+"/follow", bobToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// following yourself is rejected outright
	rec = doJSON(t, e, http.MethodPost, uintPath("/api/users", bobID)+"/follow", bobToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown target
	rec = doJSON(t, e, http.MethodPost, uintPath("/api/users", 9999)+"/follow", bobToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// the relationship shows up on the profile
	rec = doJSON(t, e, http.MethodGet, uintPath("/api/users", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)["user"].(map[string]any)
	require.Equal(t, true, profile["is_following"])
	require.Equal(t, false, profile["follows_back"])

	// and in reverse for the followed user
	rec = doJSON(t, e, http.MethodGet, uintPath("/api/users", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile = decode(t, rec)["user"].(map[string]any)
	require.Equal(t, false, profile["is_following"])
	require.Equal(t, true, profile["follows_back"])

	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/users", aliceID)+"/unfollow", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), decode(t, rec)["follower_count"])

	// unfollowing without a follow edge is an error
	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/users", aliceID)+"/unfollow", bobToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFollowerListings(t *testing.T) {
	e := newTestServer(t)
	aliceToken, aliceID := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")
	carolToken, _ := registerUser(t, e, "carol")

	rec := doJSON(t, e, http.MethodPost, uintPath("/api/users", aliceID)+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, uintPath("/api/users", aliceID)+"/follow", carolToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, uintPath("/api/users", aliceID)+"/followers", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	followers := body["followers"].([]any)
	require.Len(t, followers, 2)
	pagination := body["pagination"].(map[string]any)
	require.Equal(t, float64(2), pagination["total"])

	rec = doJSON(t, e, http.MethodGet, uintPath("/api/users", aliceID)+"/following", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["following"].([]any), 0)
}

func TestFeedShowsFollowedAuthors(t *testing.T) {
	e := newTestServer(t)
	aliceToken, aliceID := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	createPost(t, e, aliceToken, "alice post")

	// before following, bob's feed is empty
	rec := doJSON(t, e, http.MethodGet, "/api/posts", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["posts"].([]any), 0)

	rec = doJSON(t, e, http.MethodPost, uintPath("/api/users", aliceID)+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	createPost(t, e, bobToken, "bob post")

	// after following, the feed holds both authors, newest first
	rec = doJSON(t, e, http.MethodGet, "/api/posts", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decode(t, rec)["posts"].([]any)
	require.Len(t, posts, 2)
	require.Equal(t, "bob post", posts[0].(map[string]any)["caption"])
	require.Equal(t, "alice post", posts[1].(map[string]any)["caption"])
	require.Equal(t, "alice", posts[1].(map[string]any)["author"].(map[string]any)["username"])
}

func TestPostAuthorOnlyMutations(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	postID := createPost(t, e, aliceToken, "original")

	rec := doJSON(t, e, http.MethodPut, uintPath("/api/posts", postID), bobToken, echo.Map{
		"caption": "defaced",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/posts", postID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodPut, uintPath("/api/posts", postID), aliceToken, echo.Map{
		"caption": "edited",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	post := decode(t, rec)["post"].(map[string]any)
	require.Equal(t, "edited", post["caption"])

	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/posts", postID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodGet, uintPath("/api/posts", postID), aliceToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePostValidation(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	rec := doJSON(t, e, http.MethodPost, "/api/posts", token, echo.Map{
		"content_type": "hologram",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/posts", token, echo.Map{
		"caption": "no content type",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLikeUnlikeCounters(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	postID := createPost(t, e, aliceToken, "like me")
	likePath := uintPath("/api/posts", postID) + "/like"

	rec := doJSON(t, e, http.MethodPost, likePath, bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), decode(t, rec)["likes_count"])

	// a second like from the same user is a conflict, not a double count
	rec = doJSON(t, e, http.MethodPost, likePath, bobToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPost, likePath, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(2), decode(t, rec)["likes_count"])

	// the like flag is per viewer
	rec = doJSON(t, e, http.MethodGet, uintPath("/api/posts", postID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	post := decode(t, rec)["post"].(map[string]any)
	require.Equal(t, true, post["liked_by_user"])
	require.Equal(t, float64(2), post["likes_count"])

	rec = doJSON(t, e, http.MethodDelete, likePath, bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), decode(t, rec)["likes_count"])

	// unliking something you never liked is an error
	rec = doJSON(t, e, http.MethodDelete, likePath, bobToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodGet, uintPath("/api/posts", postID), bobToken, nil)
	post = decode(t, rec)["post"].(map[string]any)
	require.Equal(t, false, post["liked_by_user"])
	require.Equal(t, float64(1), post["likes_count"])

	// likes on a missing post 404
	rec = doJSON(t, e, http.MethodPost, uintPath("/api/posts", 9999)+"/like", bobToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComments(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	postID := createPost(t, e, aliceToken, "discuss")
	commentsPath := uintPath("/api/posts", postID) + "/comments"

	rec := doJSON(t, e, http.MethodPost, commentsPath, bobToken, echo.Map{"content": "first"})
	require.Equal(t, http.StatusCreated, rec.Code)
	comment := decode(t, rec)["comment"].(map[string]any)
	require.Equal(t, "first", comment["content"])
	require.Equal(t, "bob", comment["author"].(map[string]any)["username"])

	rec = doJSON(t, e, http.MethodPost, commentsPath, aliceToken, echo.Map{"content": "second"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// empty comments are rejected
	rec = doJSON(t, e, http.MethodPost, commentsPath, bobToken, echo.Map{"content": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// newest first
	rec = doJSON(t, e, http.MethodGet, commentsPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	comments := body["comments"].([]any)
	require.Len(t, comments, 2)
	require.Equal(t, "second", comments[0].(map[string]any)["content"])
	require.Equal(t, "first", comments[1].(map[string]any)["content"])
	require.Equal(t, float64(2), body["pagination"].(map[string]any)["total"])

	// the denormalized counter tracks the rows
	rec = doJSON(t, e, http.MethodGet, uintPath("/api/posts", postID), aliceToken, nil)
	post := decode(t, rec)["post"].(map[string]any)
	require.Equal(t, float64(2), post["comments_count"])

	rec = doJSON(t, e, http.MethodGet, uintPath("/api/posts", 9999)+"/comments", aliceToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentPagination(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	postID := createPost(t, e, token, "busy thread")
	commentsPath := uintPath("/api/posts", postID) + "/comments"

	for i := 0; i < 5; i++ {
		rec := doJSON(t, e, http.MethodPost, commentsPath, token, echo.Map{"content": "c"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, e, http.MethodGet, commentsPath+"?page=2&per_page=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Len(t, body["comments"].([]any), 2)

	pagination := body["pagination"].(map[string]any)
	require.Equal(t, float64(2), pagination["page"])
	require.Equal(t, float64(3), pagination["pages"])
	require.Equal(t, float64(5), pagination["total"])
	require.Equal(t, true, pagination["has_next"])
	require.Equal(t, true, pagination["has_prev"])
}

func TestUserSearchAndDiscover(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	_, bobID := registerUser(t, e, "bobby")
	registerUser(t, e, "carol")

	// blank query returns nothing rather than everyone
	rec := doJSON(t, e, http.MethodGet, "/api/users/search?q=", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["users"].([]any), 0)

	rec = doJSON(t, e, http.MethodGet, "/api/users/search?q=bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode(t, rec)["users"].([]any)
	require.Len(t, users, 1)
	found := users[0].(map[string]any)
	require.Equal(t, "bobby", found["username"])
	require.Equal(t, false, found["is_following"])

	// the requester never appears in their own search results
	rec = doJSON(t, e, http.MethodGet, "/api/users/search?q=alice", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["users"].([]any), 0)

	// discover excludes self and already-followed accounts
	rec = doJSON(t, e, http.MethodPost, uintPath("/api/users", bobID)+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/users/discover", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users = decode(t, rec)["users"].([]any)
	require.Len(t, users, 1)
	require.Equal(t, "carol", users[0].(map[string]any)["username"])
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
)

// FeedHandler assembles the home feed
type FeedHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	likeRepository   repositories.LikeRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		likeRepository:   likeRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
}

// GetFeed lists posts from the user and everyone they follow, newest
// first, each annotated with the user's like status
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user := currentUser(c)
	page, perPage := parsePagination(c, 10)

	followingIDs, err := h.followRepository.GetFollowingIDs(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorIDs := append(followingIDs, user.ID) // include own posts

	posts, total, err := h.postRepository.GetFeedPosts(authorIDs, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, postResponse(&posts[i], user.ID, h.userRepository, h.followRepository, h.likeRepository))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":      responses,
		"pagination": models.NewPagination(page, perPage, total),
	})
}

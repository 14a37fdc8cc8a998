package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostHandler handles post CRUD
type PostHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	likeRepository   repositories.LikeRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		likeRepository:   likeRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := currentUser(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		UserID:      user.ID,
		ContentType: req.ContentType,
		MediaURL:    req.MediaURL,
		Caption:     req.Caption,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post created successfully",
		"post":    postResponse(post, user.ID, h.userRepository, h.followRepository, h.likeRepository),
	})
}

// GetPost returns one post annotated with its author and the viewer's like status
func (h *PostHandler) GetPost(c echo.Context) error {
	user := currentUser(c)
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.loadPost(postID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post": postResponse(post, user.ID, h.userRepository, h.followRepository, h.likeRepository),
	})
}

// UpdatePost updates a post's caption/media (author-only)
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user := currentUser(c)
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.loadPost(postID)
	if err != nil {
		return err
	}
	if post.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized to edit this post")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Caption != nil {
		post.Caption = *req.Caption
	}
	if req.MediaURL != "" {
		post.MediaURL = req.MediaURL
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post updated successfully",
		"post":    postResponse(post, user.ID, h.userRepository, h.followRepository, h.likeRepository),
	})
}

// DeletePost deletes a post (author-only) with its likes and comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	user := currentUser(c)
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.loadPost(postID)
	if err != nil {
		return err
	}
	if post.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized to delete this post")
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// GetUserPosts lists one user's posts, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	user := currentUser(c)
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	page, perPage := parsePagination(c, 10)

	posts, total, err := h.postRepository.GetPostsByUserID(targetID, page, perPage)
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

func (h *PostHandler) loadPost(postID uint) (*models.Post, error) {
	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}

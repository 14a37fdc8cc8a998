package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentHandler handles comments on posts
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	followRepository       repositories.FollowRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	notifRepo repositories.NotificationRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		userRepository:         userRepo,
		followRepository:       followRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetComments)
	g.POST("/posts/:id/comments", h.CreateComment)
}

// GetComments lists a post's comments, newest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	page, perPage := parsePagination(c, 20)

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, total, err := h.commentRepository.GetCommentsByPostID(postID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, commentResponse(&comments[i], h.userRepository, h.followRepository))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments":   responses,
		"pagination": models.NewPagination(page, perPage, total),
	})
}

// CreateComment adds a comment to a post; the comment row and the
// counter increment commit in one transaction
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user := currentUser(c)
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := &models.Comment{
		UserID:  user.ID,
		PostID:  postID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != user.ID {
		notif := &models.Notification{
			UserID:  post.UserID,
			Type:    models.NotificationComment,
			Content: user.Username + " commented on your post",
		}
		h.notificationRepository.CreateNotification(notif)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Comment created successfully",
		"comment": commentResponse(comment, h.userRepository, h.followRepository),
	})
}

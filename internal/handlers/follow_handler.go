package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow and follower listings
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/unfollow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser creates a directed follow edge to the target user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	user := currentUser(c)
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if targetID == user.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing, err := h.followRepository.IsFollowing(user.ID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{FollowerID: user.ID, FollowingID: targetID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notif := &models.Notification{
		UserID:  targetID,
		Type:    models.NotificationFollow,
		Content: user.Username + " started following you",
	}
	h.notificationRepository.CreateNotification(notif)

	followerCount, _ := h.followRepository.GetFollowersCount(targetID)
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Now following " + target.Username,
		"follower_count": followerCount,
	})
}

// UnfollowUser removes an existing follow edge
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user := currentUser(c)
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if targetID == user.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot unfollow yourself")
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.DeleteFollow(user.ID, targetID); err != nil {
		if errors.Is(err, repositories.ErrFollowNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followerCount, _ := h.followRepository.GetFollowersCount(targetID)
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Unfollowed " + target.Username,
		"follower_count": followerCount,
	})
}

// GetFollowers lists a user's followers; each entry is annotated with
// whether the requesting user follows that entry
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	user := currentUser(c)
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	page, perPage := parsePagination(c, 20)

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	followers, total, err := h.followRepository.GetFollowers(targetID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"followers":  h.annotatedProfiles(followers, user.ID),
		"pagination": models.NewPagination(page, perPage, total),
	})
}

// GetFollowing lists who a user follows; annotation is relative to the
// requesting user, not the listed user
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	user := currentUser(c)
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	page, perPage := parsePagination(c, 20)

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	following, total, err := h.followRepository.GetFollowing(targetID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"following":  h.annotatedProfiles(following, user.ID),
		"pagination": models.NewPagination(page, perPage, total),
	})
}

func (h *FollowHandler) annotatedProfiles(users []models.User, viewerID uint) []models.UserProfile {
	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profile := profileOf(&users[i], h.followRepository)
		isFollowing, _ := h.followRepository.IsFollowing(viewerID, users[i].ID)
		profile.IsFollowing = &isFollowing
		profiles = append(profiles, profile)
	}
	return profiles
}

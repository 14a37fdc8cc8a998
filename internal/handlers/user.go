package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserHandler handles user lookup, search and discovery
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/discover", h.DiscoverUsers)
	g.GET("/users/:id", h.GetUserProfile)
}

// SearchUsers searches users by username, email or bio substring. Every
// result is annotated with whether the requesting user follows it.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	user := currentUser(c)
	query := strings.TrimSpace(c.QueryParam("q"))
	page, perPage := parsePagination(c, 20)

	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"users":      []models.UserProfile{},
			"pagination": models.NewPagination(1, perPage, 0),
		})
	}

	users, total, err := h.userRepository.SearchUsers(query, user.ID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profile := profileOf(&users[i], h.followRepository)
		isFollowing, _ := h.followRepository.IsFollowing(user.ID, users[i].ID)
		profile.IsFollowing = &isFollowing
		profiles = append(profiles, profile)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":      profiles,
		"pagination": models.NewPagination(page, perPage, total),
	})
}

// GetUserProfile returns another user's profile, annotated with the
// follow relationship in both directions when not viewing oneself
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	user := currentUser(c)
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := profileOf(target, h.followRepository)
	if targetID != user.ID {
		isFollowing, _ := h.followRepository.IsFollowing(user.ID, targetID)
		followsBack, _ := h.followRepository.IsFollowing(targetID, user.ID)
		profile.IsFollowing = &isFollowing
		profile.FollowsBack = &followsBack
	}

	return c.JSON(http.StatusOK, echo.Map{"user": profile})
}

// DiscoverUsers lists users the requester does not follow yet, newest
// accounts first
func (h *UserHandler) DiscoverUsers(c echo.Context) error {
	user := currentUser(c)
	page, perPage := parsePagination(c, 20)

	followingIDs, err := h.followRepository.GetFollowingIDs(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	excludeIDs := append(followingIDs, user.ID)

	users, total, err := h.userRepository.DiscoverUsers(excludeIDs, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notFollowing := false
	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profile := profileOf(&users[i], h.followRepository)
		profile.IsFollowing = &notFollowing // by definition
		profiles = append(profiles, profile)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":      profiles,
		"pagination": models.NewPagination(page, perPage, total),
	})
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Username          string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email             string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash      string    `json:"-" gorm:"size:255;not null"` // Store bcrypt hash, never the raw password
	ProfilePictureURL string    `json:"profile_picture_url" gorm:"size:255"`
	Bio               string    `json:"bio" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserProfile is the public representation of a user, annotated with
// follower/following counts and, where relevant, relationship flags
// relative to the requesting user.
type UserProfile struct {
	ID                uint      `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	Bio               string    `json:"bio"`
	FollowerCount     int64     `json:"follower_count"`
	FollowingCount    int64     `json:"following_count"`
	IsFollowing       *bool     `json:"is_following,omitempty"`
	FollowsBack       *bool     `json:"follows_back,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToProfile builds the public profile for a user
func (u *User) ToProfile(followerCount, followingCount int64) UserProfile {
	return UserProfile{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		ProfilePictureURL: u.ProfilePictureURL,
		Bio:               u.Bio,
		FollowerCount:     followerCount,
		FollowingCount:    followingCount,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Bio      string `json:"bio,omitempty"`
}

// LoginRequest defines the request body for login; Username accepts
// either a username or an email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Username          string  `json:"username,omitempty" validate:"omitempty,min=3,max=80"`
	Email             string  `json:"email,omitempty" validate:"omitempty,email"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL string  `json:"profile_picture_url,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

package models

import "time"

// Post content types
const (
	ContentTypePhoto = "photo"
	ContentTypeVideo = "video"
	ContentTypeText  = "text"
)

// Post represents a social media post. The likes/comments counters are
// denormalized and must only be mutated in the same transaction as the
// corresponding Like/Comment row.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	ContentType   string    `json:"content_type" gorm:"size:20;not null"` // photo, video, text
	MediaURL      string    `json:"media_url" gorm:"size:255"`
	Caption       string    `json:"caption" gorm:"type:text"`
	LikesCount    int       `json:"likes_count" gorm:"default:0"`
	CommentsCount int       `json:"comments_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PostResponse is a post annotated with its author and whether the
// requesting user has liked it.
type PostResponse struct {
	Post
	Author      *UserProfile `json:"author,omitempty"`
	LikedByUser bool         `json:"liked_by_user"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=photo video text"`
	MediaURL    string `json:"media_url,omitempty" validate:"omitempty,max=255"`
	Caption     string `json:"caption,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Caption  *string `json:"caption,omitempty"`
	MediaURL string  `json:"media_url,omitempty" validate:"omitempty,max=255"`
}

package models

import "time"

// Like represents a like on a post, unique per (user, post) pair
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like;not null"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_like;not null"`
	CreatedAt time.Time `json:"created_at"`
}

package repositories

import (
	"errors"

	"github.com/socializenotion/backend/internal/models"
	"gorm.io/gorm"
)

// ErrLikeNotFound is returned when unliking a post the user never liked
var ErrLikeNotFound = errors.New("like not found")

// ErrAlreadyLiked is returned when the (user, post) like row already
// exists. Handlers pre-check, but a concurrent like can still hit the
// unique index inside the transaction.
var ErrAlreadyLiked = errors.New("post already liked")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	LikePost(postID, userID uint) (*models.Like, error)
	UnlikePost(postID, userID uint) error
	HasUserLikedPost(postID, userID uint) (bool, error)
	GetLikesCountByPostID(postID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// LikePost inserts the like row and increments the post's counter in
// one transaction so the counter never diverges from the row count.
func (r *PostgresLikeRepository) LikePost(postID, userID uint) (*models.Like, error) {
	like := &models.Like{PostID: postID, UserID: userID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

// UnlikePost removes the like row and decrements the post's counter,
// floored at zero, in one transaction
func (r *PostgresLikeRepository) UnlikePost(postID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLikeNotFound
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
	})
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCountByPostID counts the like rows for a post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

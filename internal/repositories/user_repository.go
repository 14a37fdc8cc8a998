package repositories

import (
	"github.com/socializenotion/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsernameOrEmail(identifier string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	SearchUsers(query string, excludeID uint, page, perPage int) ([]models.User, int64, error)
	DiscoverUsers(excludeIDs []uint, page, perPage int) ([]models.User, int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsernameOrEmail retrieves a user matching the identifier as
// either a username or an email address
func (r *PostgresUserRepository) GetUserByUsernameOrEmail(identifier string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser deletes a user and everything they own in one transaction:
// likes, comments, follow edges on either side, collaborations held by
// the user and on the user's notes, notifications, notes, folders and
// posts. Counters on other users' posts are adjusted before the
// like/comment rows disappear so they keep matching the row counts.
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		likedPosts := tx.Model(&models.Like{}).Select("post_id").Where("user_id = ?", id)
		if err := tx.Model(&models.Post{}).Where("id IN (?)", likedPosts).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
			return err
		}
		// a user may hold several comments on the same post
		commentedPosts := tx.Model(&models.Comment{}).Select("post_id").Where("user_id = ?", id)
		if err := tx.Model(&models.Post{}).Where("id IN (?)", commentedPosts).
			UpdateColumn("comments_count", gorm.Expr(
				"comments_count - (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.user_id = ?)", id)).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		ownedNotes := tx.Model(&models.Note{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("user_id = ? OR note_id IN (?)", id, ownedNotes).Delete(&models.Collaboration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Folder{}).Error; err != nil {
			return err
		}

		ownedPosts := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("post_id IN (?)", ownedPosts).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", ownedPosts).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// SearchUsers searches users by username, email or bio substring,
// excluding the requesting user. Results are username-ordered so page
// boundaries stay stable across requests.
func (r *PostgresUserRepository) SearchUsers(query string, excludeID uint, page, perPage int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	pattern := "%" + query + "%"
	q := r.db.Model(&models.User{}).
		Where("(username LIKE ? OR email LIKE ? OR bio LIKE ?)", pattern, pattern, pattern).
		Where("id <> ?", excludeID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("username ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error
	return users, total, err
}

// DiscoverUsers lists users not in excludeIDs, newest accounts first
func (r *PostgresUserRepository) DiscoverUsers(excludeIDs []uint, page, perPage int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	q := r.db.Model(&models.User{}).Where("id NOT IN (?)", excludeIDs)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error
	return users, total, err
}

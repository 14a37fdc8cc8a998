package repositories

import (
	"github.com/socializenotion/backend/internal/models"
	"gorm.io/gorm"
)

// CollaborationRepository defines the interface for collaboration data operations
type CollaborationRepository interface {
	CreateCollaboration(collab *models.Collaboration) error
	GetCollaboration(noteID, userID uint) (*models.Collaboration, error)
	GetCollaborationsByNoteID(noteID uint) ([]models.Collaboration, error)
	UpdateCollaboration(collab *models.Collaboration) error
	DeleteCollaboration(id uint) error
}

// PostgresCollaborationRepository implements CollaborationRepository for PostgreSQL
type PostgresCollaborationRepository struct {
	db *gorm.DB
}

// NewPostgresCollaborationRepository creates a new PostgresCollaborationRepository
func NewPostgresCollaborationRepository(db *gorm.DB) *PostgresCollaborationRepository {
	return &PostgresCollaborationRepository{db: db}
}

// CreateCollaboration creates a new collaboration grant
func (r *PostgresCollaborationRepository) CreateCollaboration(collab *models.Collaboration) error {
	return r.db.Create(collab).Error
}

// GetCollaboration retrieves the grant for a (note, user) pair
func (r *PostgresCollaborationRepository) GetCollaboration(noteID, userID uint) (*models.Collaboration, error) {
	var collab models.Collaboration
	if err := r.db.Where("note_id = ? AND user_id = ?", noteID, userID).First(&collab).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// GetCollaborationsByNoteID lists all grants on a note
func (r *PostgresCollaborationRepository) GetCollaborationsByNoteID(noteID uint) ([]models.Collaboration, error) {
	var collabs []models.Collaboration
	if err := r.db.Where("note_id = ?", noteID).Find(&collabs).Error; err != nil {
		return nil, err
	}
	return collabs, nil
}

// UpdateCollaboration updates an existing grant
func (r *PostgresCollaborationRepository) UpdateCollaboration(collab *models.Collaboration) error {
	return r.db.Save(collab).Error
}

// DeleteCollaboration deletes a grant by ID
func (r *PostgresCollaborationRepository) DeleteCollaboration(id uint) error {
	return r.db.Delete(&models.Collaboration{}, id).Error
}

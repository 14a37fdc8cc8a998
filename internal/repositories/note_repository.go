package repositories

import (
	"github.com/socializenotion/backend/internal/models"
	"gorm.io/gorm"
)

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	CreateNote(note *models.Note) error
	GetNoteByID(id uint) (*models.Note, error)
	UpdateNote(note *models.Note) error
	DeleteNote(id uint) error
	ListVisibleNotes(userID uint, folderID *uint, tag, search string, page, perPage int) ([]models.Note, int64, error)
	ListSharedNotes(userID uint, page, perPage int) ([]models.Note, int64, error)
}

// PostgresNoteRepository implements NoteRepository for PostgreSQL
type PostgresNoteRepository struct {
	db *gorm.DB
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository
func NewPostgresNoteRepository(db *gorm.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

// CreateNote creates a new note
func (r *PostgresNoteRepository) CreateNote(note *models.Note) error {
	return r.db.Create(note).Error
}

// GetNoteByID retrieves a note by ID
func (r *PostgresNoteRepository) GetNoteByID(id uint) (*models.Note, error) {
	var note models.Note
	if err := r.db.First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote updates an existing note
func (r *PostgresNoteRepository) UpdateNote(note *models.Note) error {
	return r.db.Save(note).Error
}

// DeleteNote deletes a note and its collaboration grants in one transaction
func (r *PostgresNoteRepository) DeleteNote(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.Collaboration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, id).Error
	})
}

// ListVisibleNotes lists notes the user owns or collaborates on,
// optionally narrowed by folder, tag and a title/content search,
// newest-updated first. The tag filter is a substring match against
// the comma-joined tag string, so it can match across tag boundaries
// ("art" matches "smart").
func (r *PostgresNoteRepository) ListVisibleNotes(userID uint, folderID *uint, tag, search string, page, perPage int) ([]models.Note, int64, error) {
	var notes []models.Note
	var total int64

	sharedIDs := r.db.Model(&models.Collaboration{}).Select("note_id").Where("user_id = ?", userID)
	q := r.db.Model(&models.Note{}).Where("user_id = ? OR id IN (?)", userID, sharedIDs)

	if folderID != nil {
		q = q.Where("folder_id = ?", *folderID)
	}
	if tag != "" {
		q = q.Where("tags LIKE ?", "%"+tag+"%")
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("(title LIKE ? OR content LIKE ?)", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("updated_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&notes).Error
	return notes, total, err
}

// ListSharedNotes lists notes where the user holds a collaboration
// grant, newest-updated first
func (r *PostgresNoteRepository) ListSharedNotes(userID uint, page, perPage int) ([]models.Note, int64, error) {
	var notes []models.Note
	var total int64

	sharedIDs := r.db.Model(&models.Collaboration{}).Select("note_id").Where("user_id = ?", userID)
	q := r.db.Model(&models.Note{}).Where("id IN (?)", sharedIDs)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("updated_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&notes).Error
	return notes, total, err
}

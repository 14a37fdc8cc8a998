package repositories

import (
	"github.com/socializenotion/backend/internal/models"
	"gorm.io/gorm"
)

// FolderRepository defines the interface for folder data operations
type FolderRepository interface {
	CreateFolder(folder *models.Folder) error
	GetFolderByID(id uint) (*models.Folder, error)
	GetFoldersByParent(ownerID uint, parentID *uint) ([]models.Folder, error)
	GetFoldersByOwner(ownerID uint) ([]models.Folder, error)
	NameExists(ownerID uint, name string, parentID *uint, excludeID uint) (bool, error)
	UpdateFolder(folder *models.Folder) error
	DeleteFolder(id uint) error
	CountSubfolders(folderID uint) (int64, error)
	CountNotes(folderID uint) (int64, error)
	NoteCountsByFolder(ownerID uint) (map[uint]int64, error)
	WouldCreateCycle(ownerID, folderID, newParentID uint) (bool, error)
}

// PostgresFolderRepository implements FolderRepository for PostgreSQL
type PostgresFolderRepository struct {
	db *gorm.DB
}

// NewPostgresFolderRepository creates a new PostgresFolderRepository
func NewPostgresFolderRepository(db *gorm.DB) *PostgresFolderRepository {
	return &PostgresFolderRepository{db: db}
}

// CreateFolder creates a new folder
func (r *PostgresFolderRepository) CreateFolder(folder *models.Folder) error {
	return r.db.Create(folder).Error
}

// GetFolderByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetFolderByID(id uint) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.First(&folder, id).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// GetFoldersByParent lists the direct children of parentID (root
// folders when parentID is nil), ordered by name
func (r *PostgresFolderRepository) GetFoldersByParent(ownerID uint, parentID *uint) ([]models.Folder, error) {
	var folders []models.Folder
	q := r.db.Where("user_id = ?", ownerID)
	if parentID != nil {
		q = q.Where("parent_folder_id = ?", *parentID)
	} else {
		q = q.Where("parent_folder_id IS NULL")
	}
	err := q.Order("name ASC").Find(&folders).Error
	return folders, err
}

// GetFoldersByOwner lists all of an owner's folders, ordered by name
func (r *PostgresFolderRepository) GetFoldersByOwner(ownerID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.Where("user_id = ?", ownerID).Order("name ASC").Find(&folders).Error
	return folders, err
}

// NameExists reports whether a sibling folder with this name already
// exists under the given parent for the owner. Unique indexes cannot
// cover root folders (NULL parent), so this guard runs on every create
// and rename. excludeID skips the folder being renamed.
func (r *PostgresFolderRepository) NameExists(ownerID uint, name string, parentID *uint, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Folder{}).Where("user_id = ? AND name = ?", ownerID, name)
	if parentID != nil {
		q = q.Where("parent_folder_id = ?", *parentID)
	} else {
		q = q.Where("parent_folder_id IS NULL")
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFolder updates an existing folder
func (r *PostgresFolderRepository) UpdateFolder(folder *models.Folder) error {
	return r.db.Save(folder).Error
}

// DeleteFolder deletes a folder by ID
func (r *PostgresFolderRepository) DeleteFolder(id uint) error {
	return r.db.Delete(&models.Folder{}, id).Error
}

// CountSubfolders counts the direct child folders of a folder
func (r *PostgresFolderRepository) CountSubfolders(folderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Folder{}).Where("parent_folder_id = ?", folderID).Count(&count).Error
	return count, err
}

// CountNotes counts the notes directly inside a folder
func (r *PostgresFolderRepository) CountNotes(folderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Note{}).Where("folder_id = ?", folderID).Count(&count).Error
	return count, err
}

// NoteCountsByFolder returns direct note counts keyed by folder ID for
// all of an owner's folders in one grouped query
func (r *PostgresFolderRepository) NoteCountsByFolder(ownerID uint) (map[uint]int64, error) {
	var rows []struct {
		FolderID uint
		Count    int64
	}
	err := r.db.Model(&models.Note{}).
		Select("folder_id, COUNT(*) as count").
		Where("user_id = ? AND folder_id IS NOT NULL", ownerID).
		Group("folder_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.FolderID] = row.Count
	}
	return counts, nil
}

// WouldCreateCycle reports whether re-parenting folderID under
// newParentID would introduce a cycle. It loads the owner's folders
// once and walks parent pointers upward from the candidate parent in
// memory; the walk is bounded by the owner's folder count so a
// corrupted chain cannot loop forever.
func (r *PostgresFolderRepository) WouldCreateCycle(ownerID, folderID, newParentID uint) (bool, error) {
	if folderID == newParentID {
		return true, nil
	}

	folders, err := r.GetFoldersByOwner(ownerID)
	if err != nil {
		return false, err
	}
	parents := make(map[uint]*uint, len(folders))
	for _, f := range folders {
		parents[f.ID] = f.ParentFolderID
	}

	current := newParentID
	for steps := 0; steps <= len(folders); steps++ {
		parent, ok := parents[current]
		if !ok || parent == nil {
			return false, nil
		}
		if *parent == folderID {
			return true, nil
		}
		current = *parent
	}
	// Walk exceeded the folder count: the chain is already cyclic.
	return true, nil
}

package models

import "time"

// Folder represents a node in a user's folder forest. ParentFolderID is
// a plain identifier reference; acyclicity is enforced at the
// application layer on every re-parent. Sibling names must be unique
// per (owner, parent), including the root level where parent is nil —
// the database cannot express that constraint for NULL parents, so the
// repository guards it.
type Folder struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	ParentFolderID *uint     `json:"parent_folder_id" gorm:"index"`
	CreatedAt      time.Time `json:"created_at"`
}

// FolderTreeNode is a folder with its nested children and direct note count
type FolderTreeNode struct {
	Folder
	NotesCount int64             `json:"notes_count"`
	Children   []*FolderTreeNode `json:"children"`
}

// FolderDetail is a folder annotated with its direct contents counts
type FolderDetail struct {
	Folder
	SubfoldersCount int64 `json:"subfolders_count"`
	NotesCount      int64 `json:"notes_count"`
}

// CreateFolderRequest defines the request body for creating a folder
type CreateFolderRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	ParentFolderID *uint  `json:"parent_folder_id,omitempty"`
}

// UpdateFolderRequest defines the request body for renaming or
// re-parenting a folder. parent_folder_id = 0 moves the folder to the
// root level.
type UpdateFolderRequest struct {
	Name           string `json:"name,omitempty" validate:"omitempty,max=255"`
	ParentFolderID *uint  `json:"parent_folder_id,omitempty"`
}

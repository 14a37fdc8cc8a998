package models

import (
	"strings"
	"time"
)

// Note represents a rich-text note. Content is an opaque blob (the
// frontend stores JSON block data in it). Tags are persisted as a
// comma-separated string; ordering is irrelevant and duplicates are
// allowed.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	FolderID  *uint     `json:"folder_id" gorm:"index"`
	Tags      string    `json:"-" gorm:"size:500"`
	IsPublic  bool      `json:"is_public" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagList splits the encoded tag string back into a slice
func (n *Note) TagList() []string {
	if n.Tags == "" {
		return []string{}
	}
	return strings.Split(n.Tags, ",")
}

// SetTags encodes a tag slice into the persisted comma-separated form
func (n *Note) SetTags(tags []string) {
	n.Tags = strings.Join(tags, ",")
}

// NoteResponse is a note with decoded tags, its author, and the
// requesting user's effective permission on it.
type NoteResponse struct {
	ID             uint         `json:"id"`
	UserID         uint         `json:"user_id"`
	Author         *UserProfile `json:"author,omitempty"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	FolderID       *uint        `json:"folder_id"`
	Tags           []string     `json:"tags"`
	IsPublic       bool         `json:"is_public"`
	UserPermission string       `json:"user_permission,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ToResponse builds the API representation of a note
func (n *Note) ToResponse() NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		FolderID:  n.FolderID,
		Tags:      n.TagList(),
		IsPublic:  n.IsPublic,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// CreateNoteRequest defines the request body for creating a new note
type CreateNoteRequest struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Content  string   `json:"content,omitempty"`
	FolderID *uint    `json:"folder_id,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	IsPublic bool     `json:"is_public,omitempty"`
}

// UpdateNoteRequest defines the request body for updating a note.
// Pointer fields distinguish "absent" from zero values; folder_id = 0
// moves the note to the root (no folder).
type UpdateNoteRequest struct {
	Title    string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	FolderID *uint     `json:"folder_id,omitempty"`
	IsPublic *bool     `json:"is_public,omitempty"`
}

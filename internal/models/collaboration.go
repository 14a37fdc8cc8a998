package models

import "time"

// Collaboration permission levels
const (
	PermissionView  = "view"
	PermissionEdit  = "edit"
	PermissionAdmin = "admin"
)

// Collaboration grants a non-owner user a permission level on one note
type Collaboration struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	NoteID          uint      `json:"note_id" gorm:"index;uniqueIndex:idx_note_user;not null"`
	UserID          uint      `json:"user_id" gorm:"index;uniqueIndex:idx_note_user;not null"`
	PermissionLevel string    `json:"permission_level" gorm:"size:20;not null"` // view, edit, admin
	CreatedAt       time.Time `json:"created_at"`
}

// CollaborationResponse is a collaboration annotated with the collaborator's profile
type CollaborationResponse struct {
	Collaboration
	Collaborator *UserProfile `json:"collaborator,omitempty"`
}

// AddCollaboratorRequest defines the request body for sharing a note
type AddCollaboratorRequest struct {
	Username        string `json:"username" validate:"required"`
	PermissionLevel string `json:"permission_level" validate:"required,oneof=view edit admin"`
}

// UpdateCollaboratorRequest defines the request body for changing a grant
type UpdateCollaboratorRequest struct {
	PermissionLevel string `json:"permission_level" validate:"required,oneof=view edit admin"`
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
	"gorm.io/gorm"
)

// NoteHandler handles notes and their collaboration grants
type NoteHandler struct {
	noteRepository          repositories.NoteRepository
	folderRepository        repositories.FolderRepository
	collaborationRepository repositories.CollaborationRepository
	userRepository          repositories.UserRepository
	followRepository        repositories.FollowRepository
	notificationRepository  repositories.NotificationRepository
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(
	noteRepo repositories.NoteRepository,
	folderRepo repositories.FolderRepository,
	collabRepo repositories.CollaborationRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	notifRepo repositories.NotificationRepository,
) *NoteHandler {
	return &NoteHandler{
		noteRepository:          noteRepo,
		folderRepository:        folderRepo,
		collaborationRepository: collabRepo,
		userRepository:          userRepo,
		followRepository:        followRepo,
		notificationRepository:  notifRepo,
	}
}

// RegisterNoteRoutes registers note-related routes
func (h *NoteHandler) RegisterNoteRoutes(g *echo.Group) {
	g.GET("/notes", h.GetNotes)
	g.POST("/notes", h.CreateNote)
	g.GET("/notes/shared", h.GetSharedNotes)
	g.GET("/notes/:id", h.GetNote)
	g.PUT("/notes/:id", h.UpdateNote)
	g.DELETE("/notes/:id", h.DeleteNote)
	g.POST("/notes/:id/collaborate", h.AddCollaborator)
	g.GET("/notes/:id/collaborators", h.GetCollaborators)
	g.PUT("/notes/:id/collaborators/:user_id", h.UpdateCollaborator)
	g.DELETE("/notes/:id/collaborators/:user_id", h.RemoveCollaborator)
}

// GetNotes lists the notes visible to the user (owned plus shared),
// optionally filtered by folder, tag and title/content search
func (h *NoteHandler) GetNotes(c echo.Context) error {
	user := currentUser(c)
	page, perPage := parsePagination(c, 20)

	var folderID *uint
	if raw := c.QueryParam("folder_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid folder_id")
		}
		fid := uint(id)
		folderID = &fid
	}

	notes, total, err := h.noteRepository.ListVisibleNotes(
		user.ID, folderID, c.QueryParam("tag"), c.QueryParam("search"), page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, noteResponse(&notes[i], h.userRepository, h.followRepository))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notes":      responses,
		"pagination": models.NewPagination(page, perPage, total),
	})
}

// CreateNote creates a note, validating folder ownership when a folder
// is given
func (h *NoteHandler) CreateNote(c echo.Context) error {
	user := currentUser(c)

	var req models.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.FolderID != nil {
		folder, err := h.folderRepository.GetFolderByID(*req.FolderID)
		if err != nil || folder.UserID != user.ID {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid folder")
		}
	}

	note := &models.Note{
		UserID:   user.ID,
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		IsPublic: req.IsPublic,
	}
	note.SetTags(req.Tags)

	if err := h.noteRepository.CreateNote(note); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Note created successfully",
		"note":    noteResponse(note, h.userRepository, h.followRepository),
	})
}

// GetNote returns one note. Access requires ownership, publicity or a
// collaboration grant; the response carries the caller's effective
// permission.
func (h *NoteHandler) GetNote(c echo.Context) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	note, err := h.loadNote(noteID)
	if err != nil {
		return err
	}

	collab, collabErr := h.collaborationRepository.GetCollaboration(noteID, user.ID)
	isCollaborator := collabErr == nil

	if note.UserID != user.ID && !note.IsPublic && !isCollaborator {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	resp := noteResponse(note, h.userRepository, h.followRepository)
	switch {
	case note.UserID == user.ID:
		resp.UserPermission = models.PermissionAdmin
	case isCollaborator:
		resp.UserPermission = collab.PermissionLevel
	default:
		resp.UserPermission = models.PermissionView
	}

	return c.JSON(http.StatusOK, echo.Map{"note": resp})
}

// UpdateNote updates title/content/tags for the owner or a collaborator
// with edit/admin permission. Folder and publicity changes are
// owner-only regardless of collaboration level.
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	note, err := h.loadNote(noteID)
	if err != nil {
		return err
	}

	isOwner := note.UserID == user.ID
	canEdit := isOwner
	if !canEdit {
		if collab, err := h.collaborationRepository.GetCollaboration(noteID, user.ID); err == nil {
			canEdit = collab.PermissionLevel == models.PermissionEdit || collab.PermissionLevel == models.PermissionAdmin
		}
	}
	if !canEdit {
		return echo.NewHTTPError(http.StatusForbidden, "No edit permission")
	}

	var req models.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.SetTags(*req.Tags)
	}

	if isOwner {
		if req.FolderID != nil {
			if *req.FolderID == 0 {
				note.FolderID = nil
			} else {
				folder, err := h.folderRepository.GetFolderByID(*req.FolderID)
				if err != nil || folder.UserID != user.ID {
					return echo.NewHTTPError(http.StatusBadRequest, "Invalid folder")
				}
				note.FolderID = req.FolderID
			}
		}
		if req.IsPublic != nil {
			note.IsPublic = *req.IsPublic
		}
	}

	if err := h.noteRepository.UpdateNote(note); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Note updated successfully",
		"note":    noteResponse(note, h.userRepository, h.followRepository),
	})
}

// DeleteNote deletes a note (owner-only) together with its
// collaboration grants
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	note, err := h.loadNote(noteID)
	if err != nil {
		return err
	}
	if note.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Only owner can delete note")
	}

	if err := h.noteRepository.DeleteNote(noteID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted successfully"})
}

// AddCollaborator grants another user a permission level on a note
// (owner-only). The grant is unique per (note, user) pair.
func (h *NoteHandler) AddCollaborator(c echo.Context) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	note, err := h.loadNote(noteID)
	if err != nil {
		return err
	}
	if note.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Only owner can add collaborators")
	}

	var req models.AddCollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	collaborator, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if collaborator.ID == user.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot collaborate with yourself")
	}

	if _, err := h.collaborationRepository.GetCollaboration(noteID, collaborator.ID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User is already a collaborator")
	}

	collab := &models.Collaboration{
		NoteID:          noteID,
		UserID:          collaborator.ID,
		PermissionLevel: req.PermissionLevel,
	}
	if err := h.collaborationRepository.CreateCollaboration(collab); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notif := &models.Notification{
		UserID:  collaborator.ID,
		Type:    models.NotificationCollaboration,
		Content: user.Username + " shared a note with you: " + note.Title,
	}
	h.notificationRepository.CreateNotification(notif)

	profile := profileOf(collaborator, h.followRepository)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Collaborator added successfully",
		"collaboration": models.CollaborationResponse{
			Collaboration: *collab,
			Collaborator:  &profile,
		},
	})
}

// UpdateCollaborator changes an existing grant's permission level (owner-only)
func (h *NoteHandler) UpdateCollaborator(c echo.Context) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	collaboratorID, err := parseUintParam(c, "user_id")
	if err != nil {
		return err
	}

	note, err := h.loadNote(noteID)
	if err != nil {
		return err
	}
	if note.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Only owner can manage collaborators")
	}

	var req models.UpdateCollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	collab, err := h.collaborationRepository.GetCollaboration(noteID, collaboratorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Collaborator not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	collab.PermissionLevel = req.PermissionLevel
	if err := h.collaborationRepository.UpdateCollaboration(collab); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Collaborator updated successfully",
		"collaboration": collab,
	})
}

// RemoveCollaborator revokes a grant (owner-only)
func (h *NoteHandler) RemoveCollaborator(c echo.Context) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	collaboratorID, err := parseUintParam(c, "user_id")
	if err != nil {
		return err
	}

	note, err := h.loadNote(noteID)
	if err != nil {
		return err
	}
	if note.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Only owner can manage collaborators")
	}

	collab, err := h.collaborationRepository.GetCollaboration(noteID, collaboratorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Collaborator not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.collaborationRepository.DeleteCollaboration(collab.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Collaborator removed successfully"})
}

// GetCollaborators lists the grants on a note; visible to the owner and
// to collaborators
func (h *NoteHandler) GetCollaborators(c echo.Context) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	note, err := h.loadNote(noteID)
	if err != nil {
		return err
	}

	if note.UserID != user.ID {
		if _, err := h.collaborationRepository.GetCollaboration(noteID, user.ID); err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		}
	}

	collabs, err := h.collaborationRepository.GetCollaborationsByNoteID(noteID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.CollaborationResponse, 0, len(collabs))
	for _, collab := range collabs {
		resp := models.CollaborationResponse{Collaboration: collab}
		if collaborator, err := h.userRepository.GetUserByID(collab.UserID); err == nil {
			profile := profileOf(collaborator, h.followRepository)
			resp.Collaborator = &profile
		}
		responses = append(responses, resp)
	}

	return c.JSON(http.StatusOK, echo.Map{"collaborators": responses})
}

// GetSharedNotes lists the notes shared with the user, newest-updated first
func (h *NoteHandler) GetSharedNotes(c echo.Context) error {
	user := currentUser(c)
	page, perPage := parsePagination(c, 20)

	notes, total, err := h.noteRepository.ListSharedNotes(user.ID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, noteResponse(&notes[i], h.userRepository, h.followRepository))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notes":      responses,
		"pagination": models.NewPagination(page, perPage, total),
	})
}

func (h *NoteHandler) loadNote(noteID uint) (*models.Note, error) {
	note, err := h.noteRepository.GetNoteByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return note, nil
}

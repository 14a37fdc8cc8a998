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

// FolderHandler handles the folder hierarchy
type FolderHandler struct {
	folderRepository repositories.FolderRepository
}

// NewFolderHandler creates a new FolderHandler
func NewFolderHandler(folderRepo repositories.FolderRepository) *FolderHandler {
	return &FolderHandler{folderRepository: folderRepo}
}

// RegisterFolderRoutes registers folder-related routes
func (h *FolderHandler) RegisterFolderRoutes(g *echo.Group) {
	g.GET("/folders", h.GetFolders)
	g.POST("/folders", h.CreateFolder)
	g.GET("/folders/tree", h.GetFolderTree)
	g.GET("/folders/:id", h.GetFolder)
	g.PUT("/folders/:id", h.UpdateFolder)
	g.DELETE("/folders/:id", h.DeleteFolder)
}

// GetFolders lists the direct children of ?parent_id, or the root
// folders when no parent is given, ordered by name
func (h *FolderHandler) GetFolders(c echo.Context) error {
	user := currentUser(c)

	var parentID *uint
	if raw := c.QueryParam("parent_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parent_id")
		}
		pid := uint(id)
		parentID = &pid
	}

	folders, err := h.folderRepository.GetFoldersByParent(user.ID, parentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"folders": folders})
}

// CreateFolder creates a folder, enforcing parent ownership and
// sibling-name uniqueness
func (h *FolderHandler) CreateFolder(c echo.Context) error {
	user := currentUser(c)

	var req models.CreateFolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.ParentFolderID != nil {
		parent, err := h.folderRepository.GetFolderByID(*req.ParentFolderID)
		if err != nil || parent.UserID != user.ID {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parent folder")
		}
	}

	exists, err := h.folderRepository.NameExists(user.ID, req.Name, req.ParentFolderID, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if exists {
		return echo.NewHTTPError(http.StatusConflict, "Folder with this name already exists in this location")
	}

	folder := &models.Folder{
		UserID:         user.ID,
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
	}
	if err := h.folderRepository.CreateFolder(folder); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Folder created successfully",
		"folder":  folder,
	})
}

// GetFolder returns one folder with its direct contents counts
func (h *FolderHandler) GetFolder(c echo.Context) error {
	user := currentUser(c)
	folderID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	folder, err := h.loadOwnedFolder(folderID, user.ID)
	if err != nil {
		return err
	}

	subfolders, err := h.folderRepository.CountSubfolders(folderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	notes, err := h.folderRepository.CountNotes(folderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"folder": models.FolderDetail{
		Folder:          *folder,
		SubfoldersCount: subfolders,
		NotesCount:      notes,
	}})
}

// UpdateFolder renames and/or re-parents a folder. A rename re-checks
// sibling uniqueness under the current parent; a re-parent re-checks
// parent ownership and rejects any move that would place the folder
// under itself or one of its own descendants.
func (h *FolderHandler) UpdateFolder(c echo.Context) error {
	user := currentUser(c)
	folderID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	folder, err := h.loadOwnedFolder(folderID, user.ID)
	if err != nil {
		return err
	}

	var req models.UpdateFolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" && req.Name != folder.Name {
		exists, err := h.folderRepository.NameExists(user.ID, req.Name, folder.ParentFolderID, folder.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if exists {
			return echo.NewHTTPError(http.StatusConflict, "Folder with this name already exists in this location")
		}
		folder.Name = req.Name
	}

	if req.ParentFolderID != nil {
		if *req.ParentFolderID == 0 {
			// Move to root level
			folder.ParentFolderID = nil
		} else {
			newParentID := *req.ParentFolderID
			parent, err := h.folderRepository.GetFolderByID(newParentID)
			if err != nil || parent.UserID != user.ID {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid parent folder")
			}
			if newParentID == folderID {
				return echo.NewHTTPError(http.StatusBadRequest, "Folder cannot be its own parent")
			}
			cycle, err := h.folderRepository.WouldCreateCycle(user.ID, folderID, newParentID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			if cycle {
				return echo.NewHTTPError(http.StatusBadRequest, "Cannot move folder to its own descendant")
			}
			folder.ParentFolderID = &newParentID
		}
	}

	if err := h.folderRepository.UpdateFolder(folder); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Folder updated successfully",
		"folder":  folder,
	})
}

// DeleteFolder deletes an empty folder; folders with any direct
// subfolder or note are rejected
func (h *FolderHandler) DeleteFolder(c echo.Context) error {
	user := currentUser(c)
	folderID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.loadOwnedFolder(folderID, user.ID); err != nil {
		return err
	}

	subfolders, err := h.folderRepository.CountSubfolders(folderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	notes, err := h.folderRepository.CountNotes(folderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if subfolders > 0 || notes > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot delete folder that contains subfolders or notes")
	}

	if err := h.folderRepository.DeleteFolder(folderID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Folder deleted successfully"})
}

// GetFolderTree returns the owner's whole folder forest as a nested
// tree. All folders are loaded once and assembled in memory from the
// flat list; no per-node queries.
func (h *FolderHandler) GetFolderTree(c echo.Context) error {
	user := currentUser(c)

	folders, err := h.folderRepository.GetFoldersByOwner(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	noteCounts, err := h.folderRepository.NoteCountsByFolder(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// First pass: one node per folder
	nodes := make(map[uint]*models.FolderTreeNode, len(folders))
	for _, folder := range folders {
		nodes[folder.ID] = &models.FolderTreeNode{
			Folder:     folder,
			NotesCount: noteCounts[folder.ID],
			Children:   []*models.FolderTreeNode{},
		}
	}

	// Second pass: nest under parents; the flat list is name-ordered,
	// so children stay name-ordered too
	tree := []*models.FolderTreeNode{}
	for _, folder := range folders {
		node := nodes[folder.ID]
		if folder.ParentFolderID == nil {
			tree = append(tree, node)
		} else if parent, ok := nodes[*folder.ParentFolderID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"folder_tree": tree})
}

// loadOwnedFolder fetches a folder and enforces ownership
func (h *FolderHandler) loadOwnedFolder(folderID, userID uint) (*models.Folder, error) {
	folder, err := h.folderRepository.GetFolderByID(folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Folder not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if folder.UserID != userID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	return folder, nil
}

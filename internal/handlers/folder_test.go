package handlers_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestCreateFolderSiblingNameConflict(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	workID := createFolder(t, e, aliceToken, "Work", nil)

	// same name at the same level is rejected
	rec := doJSON(t, e, http.MethodPost, "/api/folders", aliceToken, echo.Map{"name": "Work"})
	require.Equal(t, http.StatusConflict, rec.Code)

	// same name under a different parent is fine
	createFolder(t, e, aliceToken, "Work", &workID)

	// same name for a different owner is fine
	createFolder(t, e, bobToken, "Work", nil)
}

func TestCreateFolderInvalidParent(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	bobFolder := createFolder(t, e, bobToken, "Private", nil)

	// another user's folder cannot be used as a parent
	rec := doJSON(t, e, http.MethodPost, "/api/folders", aliceToken, echo.Map{
		"name":             "Sneaky",
		"parent_folder_id": bobFolder,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/folders", aliceToken, echo.Map{
		"name":             "Orphan",
		"parent_folder_id": 9999,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFolderRejectsCycles(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	a := createFolder(t, e, token, "A", nil)
	b := createFolder(t, e, token, "B", &a)
	c := createFolder(t, e, token, "C", &b)

	// moving the root of a chain under its own descendant
	rec := doJSON(t, e, http.MethodPut, uintPath("/api/folders", a), token, echo.Map{
		"parent_folder_id": c,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// a folder cannot be its own parent
	rec = doJSON(t, e, http.MethodPut, uintPath("/api/folders", a), token, echo.Map{
		"parent_folder_id": a,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// a legal re-parent still works: C moves directly under A
	rec = doJSON(t, e, http.MethodPut, uintPath("/api/folders", c), token, echo.Map{
		"parent_folder_id": a,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// and back to the root level via parent_folder_id = 0
	rec = doJSON(t, e, http.MethodPut, uintPath("/api/folders", c), token, echo.Map{
		"parent_folder_id": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	folder := decode(t, rec)["folder"].(map[string]any)
	require.Nil(t, folder["parent_folder_id"])
}

func TestUpdateFolderRenameConflict(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	createFolder(t, e, token, "Work", nil)
	personal := createFolder(t, e, token, "Personal", nil)

	rec := doJSON(t, e, http.MethodPut, uintPath("/api/folders", personal), token, echo.Map{
		"name": "Work",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPut, uintPath("/api/folders", personal), token, echo.Map{
		"name": "Life",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteFolderRequiresEmpty(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	parent := createFolder(t, e, token, "Parent", nil)
	child := createFolder(t, e, token, "Child", &parent)

	rec := doJSON(t, e, http.MethodDelete, uintPath("/api/folders", parent), token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// a folder holding a note is not empty either
	createNote(t, e, token, echo.Map{"title": "Todo", "folder_id": child})
	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/folders", child), token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// empty it out, then bottom-up deletion succeeds
	rec = doJSON(t, e, http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decode(t, rec)["notes"].([]any)
	require.Len(t, notes, 1)
	noteID := uint(notes[0].(map[string]any)["id"].(float64))

	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/notes", noteID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/folders", child), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/folders", parent), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestFolderAccessIsOwnerScoped(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := registerUser(t, e, "alice")
	bobToken, _ := registerUser(t, e, "bob")

	folderID := createFolder(t, e, aliceToken, "Secret", nil)

	rec := doJSON(t, e, http.MethodGet, uintPath("/api/folders", folderID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, uintPath("/api/folders", folderID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodGet, uintPath("/api/folders", 9999), aliceToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFolderDetailCounts(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	parent := createFolder(t, e, token, "Projects", nil)
	createFolder(t, e, token, "Go", &parent)
	createFolder(t, e, token, "Rust", &parent)
	createNote(t, e, token, echo.Map{"title": "Roadmap", "folder_id": parent})

	rec := doJSON(t, e, http.MethodGet, uintPath("/api/folders", parent), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	folder := decode(t, rec)["folder"].(map[string]any)
	require.Equal(t, float64(2), folder["subfolders_count"])
	require.Equal(t, float64(1), folder["notes_count"])
}

func TestFolderTree(t *testing.T) {
	e := newTestServer(t)
	token, _ := registerUser(t, e, "alice")

	work := createFolder(t, e, token, "Work", nil)
	createFolder(t, e, token, "Archive", nil)
	reports := createFolder(t, e, token, "Reports", &work)
	createFolder(t, e, token, "Drafts", &work)
	createNote(t, e, token, echo.Map{"title": "Q3", "folder_id": reports})

	rec := doJSON(t, e, http.MethodGet, "/api/folders/tree", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	tree := decode(t, rec)["folder_tree"].([]any)
	require.Len(t, tree, 2)

	// roots come back name-ordered
	first := tree[0].(map[string]any)
	second := tree[1].(map[string]any)
	require.Equal(t, "Archive", first["name"])
	require.Equal(t, "Work", second["name"])

	children := second["children"].([]any)
	require.Len(t, children, 2)
	require.Equal(t, "Drafts", children[0].(map[string]any)["name"])

	reportsNode := children[1].(map[string]any)
	require.Equal(t, "Reports", reportsNode["name"])
	require.Equal(t, float64(1), reportsNode["notes_count"])
}

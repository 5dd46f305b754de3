package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Tariq-Monowar/timetree/middleware"
	"github.com/Tariq-Monowar/timetree/services"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserID(r.Context())

	var input services.CreateProjectInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.CreateProject(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.GetProjectByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetAllProjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserID(r.Context())

	var patch services.ProjectPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.UpdateProject(r.Context(), mux.Vars(r)["id"], actor, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserID(r.Context())

	if err := h.service.DeleteProject(r.Context(), mux.Vars(r)["id"], actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func (h *ProjectHandler) AddUserToProject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserID(r.Context())

	var req struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	projectID := mux.Vars(r)["id"]
	if err := h.service.AddUserToProject(r.Context(), projectID, actor, req.UserID, req.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "User added to project successfully",
		"projectId": projectID,
		"userId":    req.UserID,
	})
}

func (h *ProjectHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserID(r.Context())

	var req struct {
		UserID  string `json:"userId"`
		NewRole string `json:"newRole"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.UpdateUserRole(r.Context(), mux.Vars(r)["id"], actor, req.UserID, req.NewRole); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User role updated successfully"})
}

func (h *ProjectHandler) RemoveUsersFromProject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserID(r.Context())

	var req struct {
		UserIDs []string `json:"userIds"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.RemoveUsersFromProject(r.Context(), mux.Vars(r)["id"], actor, req.UserIDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Users removed from project successfully"})
}

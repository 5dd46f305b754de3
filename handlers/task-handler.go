package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Tariq-Monowar/timetree/middleware"
	"github.com/Tariq-Monowar/timetree/models"
	"github.com/Tariq-Monowar/timetree/services"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]
	actor := middleware.UserID(r.Context())

	var input services.CreateTaskInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.CreateTask(r.Context(), projectID, actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.GetTaskByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]
	actor := middleware.UserID(r.Context())

	tasks, err := h.service.GetTasksByProject(r.Context(), projectID, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	actor := middleware.UserID(r.Context())

	var patch models.TaskPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), vars["projectId"], vars["id"], actor, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	actor := middleware.UserID(r.Context())

	if err := h.service.DeleteTask(r.Context(), vars["projectId"], vars["id"], actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Task deleted successfully.",
		"id":      vars["id"],
	})
}

func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserID(r.Context())

	task, err := h.service.CompleteTask(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task marked as completed.",
		"task":    task,
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/response"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description"`
}

// updateTaskRequest uses pointers so absent fields can be told apart from
// zero values: only fields present in the payload are applied.
type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
}

// taskBody is the wire representation of a task
type taskBody struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func toBody(t *entity.Task) taskBody {
	return taskBody{ID: t.ID, Title: t.Title, Description: t.Description, Status: string(t.Status)}
}

// storageError logs the failure and answers with the opaque 500 body.
func (h *TaskHandler) storageError(c *gin.Context, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("task storage error")
	}
	response.Message(c, http.StatusInternalServerError, "database error")
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "task not found")
		return 0, false
	}
	return id, true
}

// Create POST /task/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToDetails(err))
		return
	}
	ownerID := c.GetInt64(middleware.CtxUserIDKey)
	ownerEmail := c.GetString(middleware.CtxUserEmailKey)
	t, err := h.Svc.Create(c.Request.Context(), ownerID, ownerEmail, req.Title, req.Description)
	if err != nil {
		h.storageError(c, err)
		return
	}
	response.MessageWith(c, http.StatusCreated, "task created successfully", gin.H{"task": toBody(t)})
}

// List GET /task/tasks
func (h *TaskHandler) List(c *gin.Context) {
	ownerID := c.GetInt64(middleware.CtxUserIDKey)
	tasks, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		h.storageError(c, err)
		return
	}
	out := make([]taskBody, 0, len(tasks))
	for i := range tasks {
		out = append(out, toBody(&tasks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get GET /task/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Message(c, http.StatusNotFound, "task not found")
			return
		}
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBody(t))
}

// Update PUT /task/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToDetails(err))
		return
	}
	patch := repository.TaskPatch{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		st := entity.TaskStatus(*req.Status)
		patch.Status = &st
	}
	t, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Message(c, http.StatusNotFound, "task not found")
			return
		}
		h.storageError(c, err)
		return
	}
	response.MessageWith(c, http.StatusOK, "task updated successfully", gin.H{"task": toBody(t)})
}

// Delete DELETE /task/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Message(c, http.StatusNotFound, "task not found")
			return
		}
		h.storageError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "task deleted")
}

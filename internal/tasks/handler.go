package tasks

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"odialipi-backend/internal/shared/server/middleware"
	"odialipi-backend/internal/shared/server/respond"
)

// Handler exposes the task lifecycle over HTTP.
type Handler struct {
	Svc *Service
}

// RegisterRoutes mounts the task endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ocr/upload", h.upload)
	rg.GET("/ocr/assign", h.assign)
	rg.GET("/ocr/task/:taskId", h.get)
	rg.POST("/ocr/submit", h.submit)
	rg.GET("/ocr/history", h.history)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "missing_file", "image file is required", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_file", "could not read uploaded file", nil)
		return
	}
	defer f.Close()

	task, err := h.Svc.CreateFromUpload(c.Request.Context(), userID, fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit", nil)
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "only image uploads are supported", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_file", "uploaded file is empty", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "extraction_failed", "could not extract text from the image", nil)
		}
		return
	}

	c.Set("taskId", task.ID)
	respond.Created(c, gin.H{"task": task})
}

func (h *Handler) assign(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	task, err := h.Svc.Repo.ClaimNext(c.Request.Context(), userID, nowUTC())
	if err != nil {
		if errors.Is(err, ErrNoTaskAvailable) {
			respond.Error(c, http.StatusNotFound, "no_task_available", "no tasks available right now", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to assign a task", nil)
		return
	}

	c.Set("taskId", task.ID)
	c.Set("statusTransition", "assigned->in_progress")
	respond.OK(c, gin.H{"task": task})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	taskID := c.Param("taskId")
	task, err := h.Svc.Repo.GetForUser(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "task_not_found", "task not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load task", nil)
		return
	}

	respond.OK(c, gin.H{"task": task})
}

type submitRequest struct {
	TaskID        string `json:"taskId" binding:"required"`
	CorrectedText string `json:"correctedText" binding:"required"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "taskId and correctedText are required", nil)
		return
	}

	task, err := h.Svc.Repo.Submit(c.Request.Context(), userID, req.TaskID, req.CorrectedText, nowUTC())
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadySubmitted):
			respond.Error(c, http.StatusConflict, "already_submitted", "task has already been submitted", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "task_not_found", "task not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit task", nil)
		}
		return
	}

	c.Set("taskId", task.ID)
	c.Set("statusTransition", "in_progress->submitted")
	respond.OK(c, gin.H{"task": task})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := ListFilter{Page: page, Limit: limit}
	if raw := c.Query("status"); raw != "" {
		status := Status(raw)
		if !status.Valid() {
			respond.Error(c, http.StatusBadRequest, "invalid_status", "unknown status filter", nil)
			return
		}
		filter.Status = status
	}

	items, total, err := h.Svc.Repo.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	if items == nil {
		items = []*Task{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	respond.OK(c, gin.H{
		"tasks":       items,
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
		"hasNextPage": page < totalPages,
		"hasPrevPage": page > 1,
	})
}

package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"odialipi-backend/internal/reports"
	"odialipi-backend/internal/shared/server/middleware"
	"odialipi-backend/internal/shared/server/respond"
	"odialipi-backend/internal/tasks"
)

// Handler exposes account and profile endpoints.
type Handler struct {
	Svc     *Service
	Reports *reports.Service
	Tasks   tasks.Repo
}

// RegisterPublicRoutes mounts signup and login, which need no token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes mounts the authenticated profile endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/profile", h.profile)
	rg.GET("/auth/stats", h.homeStats)
	rg.PUT("/auth/display-name", h.setDisplayName)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email and password are required", nil)
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			respond.Error(c, http.StatusBadRequest, "invalid_email", "invalid email address", nil)
		case errors.Is(err, ErrPasswordTooShort):
			respond.Error(c, http.StatusBadRequest, "password_too_short", "password must be at least 6 characters", nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "email is already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create account", nil)
		}
		return
	}

	respond.Created(c, gin.H{"token": token, "user": Summarize(u)})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email and password are required", nil)
		return
	}

	u, token, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	respond.OK(c, gin.H{"token": token, "user": Summarize(u)})
}

func (h *Handler) profile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	u, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	recent, err := h.Tasks.Recent(c.Request.Context(), userID, 5)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load recent tasks", nil)
		return
	}
	if recent == nil {
		recent = []*tasks.Task{}
	}

	respond.OK(c, gin.H{"user": Summarize(u), "recentTasks": recent})
}

func (h *Handler) homeStats(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	stats, err := h.Reports.Home(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute statistics", nil)
		return
	}
	respond.OK(c, gin.H{"stats": stats})
}

type displayNameRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
}

func (h *Handler) setDisplayName(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	var req displayNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "displayName is required", nil)
		return
	}

	u, err := h.Svc.SetDisplayName(c.Request.Context(), userID, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDisplayName):
			respond.Error(c, http.StatusBadRequest, "invalid_display_name", "display name must be 2-50 letters and spaces", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update display name", nil)
		}
		return
	}

	respond.OK(c, gin.H{"user": Summarize(u)})
}

package reports

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"odialipi-backend/internal/shared/server/middleware"
	"odialipi-backend/internal/shared/server/respond"
)

// Handler exposes contribution statistics over HTTP.
type Handler struct {
	Svc *Service
}

// RegisterRoutes mounts the stats endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ocr/stats", h.stats)
	rg.GET("/ocr/progress", h.progress)
}

func (h *Handler) stats(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	stats, err := h.Svc.Overview(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute statistics", nil)
		return
	}
	respond.OK(c, gin.H{"stats": stats})
}

func (h *Handler) progress(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))
	progress, err := h.Svc.MonthlyProgress(c.Request.Context(), userID, months)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute progress", nil)
		return
	}
	respond.OK(c, gin.H{"progress": progress})
}

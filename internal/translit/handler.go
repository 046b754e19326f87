package translit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"odialipi-backend/internal/shared/server/respond"
)

// Handler exposes word suggestions over HTTP so the editor frontend can
// fetch candidates as the user types.
type Handler struct {
	Engine *Engine
}

// RegisterRoutes mounts the suggestion endpoint on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/translit/suggest", h.suggest)
}

type suggestRequest struct {
	Text  string `json:"text"`
	Caret *int   `json:"caret"`
}

func (h *Handler) suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "text and caret are required", nil)
		return
	}

	caret := len([]rune(req.Text))
	if req.Caret != nil {
		caret = *req.Caret
	}

	word, ok := CurrentWord(req.Text, caret)
	if !ok {
		respond.OK(c, gin.H{"word": "", "start": caret, "end": caret, "suggestions": []string{}})
		return
	}

	suggestions := h.Engine.Suggest(c.Request.Context(), word.Text)
	if suggestions == nil {
		suggestions = []string{}
	}
	respond.OK(c, gin.H{
		"word":        word.Text,
		"start":       word.Start,
		"end":         word.End,
		"suggestions": suggestions,
	})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/services"
)

type AdminHandler struct {
	log     *logger.Logger
	updater services.SimilarityUpdateService
}

func NewAdminHandler(log *logger.Logger, updater services.SimilarityUpdateService) *AdminHandler {
	return &AdminHandler{
		log:     log.With("handler", "AdminHandler"),
		updater: updater,
	}
}

// UpdateSimilarities triggers a full graph rebuild and blocks until it
// completes. The full rescan is O(n^2); callers should expect this to take
// a while on large datasets.
func (h *AdminHandler) UpdateSimilarities(c *gin.Context) {
	stats, err := h.updater.UpdateAll(c.Request.Context())
	if err != nil {
		h.log.Error("Similarity update failed", "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"message": "Similarities updated successfully",
		"stats":   stats,
	})
}

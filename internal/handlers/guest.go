package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/minazuki/interview-tracker-api/internal/errors"
	"github.com/minazuki/interview-tracker-api/internal/middleware"
	"github.com/minazuki/interview-tracker-api/internal/services"
)

// GuestHandler accepts the client-local guest store for one-way migration
// into server-owned rows.
type GuestHandler struct {
	guestService *services.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(guestService *services.GuestService) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
	}
}

// Import replays guest entries through the normal creation path. The
// response tells the client how many leading entries were imported; the
// client prunes exactly those and retries the remainder next session.
func (h *GuestHandler) Import(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type importRequest struct {
		Version    int                   `json:"version"`
		Interviews []services.GuestEntry `json:"interviews"`
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Version != services.GuestStorageVersion {
		apierrors.BadRequest(c, "Unsupported guest storage version")
		return
	}

	result := h.guestService.Import(userID, req.Interviews)
	if result.Err != nil {
		log.Printf("guest import: %v", result.Err)
		c.JSON(http.StatusConflict, gin.H{
			"imported": result.Imported,
			"total":    result.Total,
			"message":  "Import stopped at first failure; retry with the remaining entries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": result.Imported,
		"total":    result.Total,
	})
}

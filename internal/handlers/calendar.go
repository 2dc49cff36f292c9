package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/minazuki/interview-tracker-api/internal/errors"
	"github.com/minazuki/interview-tracker-api/internal/middleware"
	"github.com/minazuki/interview-tracker-api/internal/services"
)

// CalendarHandler serves the feed-token settings and the token-keyed feed.
type CalendarHandler struct {
	calendarService *services.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
	}
}

// GetSettings returns the caller's calendar token and derived feed URL
func (h *CalendarHandler) GetSettings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	settings, err := h.calendarService.Settings(userID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// RegenerateToken replaces the caller's calendar token, invalidating the
// previously issued feed URL
func (h *CalendarHandler) RegenerateToken(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	settings, err := h.calendarService.RegenerateToken(userID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetFeed serves the iCalendar feed. This endpoint is deliberately outside
// session auth: possession of the token is the credential.
func (h *CalendarHandler) GetFeed(c *gin.Context) {
	token := c.Param("token")

	feed, err := h.calendarService.Feed(token)
	if err != nil {
		if errors.Is(err, services.ErrCalendarNotFound) {
			c.String(http.StatusNotFound, "Calendar not found")
			return
		}
		log.Printf("calendar feed: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `inline; filename="interviews.ics"`)
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.String(http.StatusOK, feed)
}

func respondCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Printf("calendar handler: %v", err)
		apierrors.InternalError(c, "")
	}
}

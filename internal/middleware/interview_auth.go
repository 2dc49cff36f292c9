package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minazuki/interview-tracker-api/internal/database"
	apierrors "github.com/minazuki/interview-tracker-api/internal/errors"
	"github.com/minazuki/interview-tracker-api/internal/models"
)

// ContextKeyInterview is where RequireInterviewAccess stores the loaded row.
const ContextKeyInterview = "interview"

// RequireInterviewAccess validates the id path parameter and checks that the
// interview belongs to the current user. Foreign rows get a 404, not a 403,
// so other users' data never leaks existence.
func RequireInterviewAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		interviewIDStr := c.Param("id")
		interviewID, err := strconv.ParseUint(interviewIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid interview ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var interview models.Interview
		if err := database.GetDB().
			Preload("Company").
			Preload("Stage").
			Preload("StageMethod").
			Where("user_id = ?", userID).
			First(&interview, interviewID).Error; err != nil {
			apierrors.NotFound(c, "Interview not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyInterview, interview)
		c.Next()
	}
}

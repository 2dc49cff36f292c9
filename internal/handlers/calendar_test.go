package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minazuki/interview-tracker-api/internal/constants"
	"github.com/minazuki/interview-tracker-api/internal/database"
	"github.com/minazuki/interview-tracker-api/internal/models"
	"github.com/minazuki/interview-tracker-api/internal/repository"
	"github.com/minazuki/interview-tracker-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type calendarHandlerTestEnv struct {
	db      *gorm.DB
	handler *CalendarHandler
	user    *models.User
}

func setupCalendarHandlerTestEnv(t *testing.T) calendarHandlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Stage{},
		&models.StageMethod{},
		&models.Interview{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	calendarService := services.NewCalendarService(userRepo, interviewRepo, "http://localhost:8080")
	handler := NewCalendarHandler(calendarService)

	user := &models.User{
		Email:         "cal@example.com",
		PasswordHash:  "hashedpassword",
		CalendarToken: "feed-token-1",
	}
	db.Create(user)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return calendarHandlerTestEnv{db: db, handler: handler, user: user}
}

func (env calendarHandlerTestEnv) createScheduledInterview(t *testing.T, date time.Time) {
	t.Helper()

	company := &models.Company{UserID: env.user.ID, Name: "Acme Corp"}
	require.NoError(t, env.db.Create(company).Error)
	stage := &models.Stage{Stage: "Final Interview"}
	require.NoError(t, env.db.Create(stage).Error)

	interview := &models.Interview{
		UserID:          env.user.ID,
		CompanyID:       company.ID,
		JobTitle:        "Backend Engineer",
		StageID:         stage.ID,
		Outcome:         models.OutcomeScheduled,
		ApplicationDate: time.Now(),
		Date:            &date,
	}
	require.NoError(t, env.db.Create(interview).Error)
}

func TestCalendarHandler_GetSettings(t *testing.T) {
	env := setupCalendarHandlerTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, env.user.ID)

	env.handler.GetSettings(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response services.CalendarSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "feed-token-1", response.CalendarToken)
	require.True(t, strings.HasSuffix(response.CalendarURL, "/api/calendar/feed-token-1"))
}

func TestCalendarHandler_RegenerateToken(t *testing.T) {
	env := setupCalendarHandlerTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, env.user.ID)

	env.handler.RegenerateToken(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response services.CalendarSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEqual(t, "feed-token-1", response.CalendarToken)
	require.NotEmpty(t, response.CalendarToken)
}

func TestCalendarHandler_GetFeed(t *testing.T) {
	env := setupCalendarHandlerTestEnv(t)
	env.createScheduledInterview(t, time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC))

	r := gin.New()
	r.GET("/api/calendar/:token", env.handler.GetFeed)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar/feed-token-1", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "interviews.ics")
	require.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	require.Contains(t, w.Body.String(), "SUMMARY:Interview: Backend Engineer - Acme Corp")
}

func TestCalendarHandler_GetFeedUnknownToken(t *testing.T) {
	env := setupCalendarHandlerTestEnv(t)

	r := gin.New()
	r.GET("/api/calendar/:token", env.handler.GetFeed)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar/no-such-token", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Calendar not found", w.Body.String())
}

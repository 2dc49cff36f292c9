package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

type guestHandlerTestEnv struct {
	db      *gorm.DB
	handler *GuestHandler
	user    *models.User
}

func setupGuestHandlerTestEnv(t *testing.T) guestHandlerTestEnv {
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

	interviewRepo := repository.NewInterviewRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	interviewService := services.NewInterviewService(interviewRepo, catalogRepo)
	handler := NewGuestHandler(services.NewGuestService(interviewService))

	user := &models.User{
		Email:         "guest@example.com",
		PasswordHash:  "hashedpassword",
		CalendarToken: "guest-token",
	}
	db.Create(user)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return guestHandlerTestEnv{db: db, handler: handler, user: user}
}

func (env guestHandlerTestEnv) importRequest(t *testing.T, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/guest-import", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(constants.ContextKeyUserID, env.user.ID)

	env.handler.Import(c)
	return w
}

func TestGuestHandler_ImportSuccess(t *testing.T) {
	env := setupGuestHandlerTestEnv(t)

	w := env.importRequest(t, map[string]interface{}{
		"version": 1,
		"interviews": []map[string]string{
			{
				"stage":       "HR Screening",
				"companyName": "Acme Corp",
				"jobTitle":    "Backend Engineer",
				"date":        "2026-09-10",
				"time":        "14:00",
			},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, float64(1), response["imported"])
	require.Equal(t, float64(1), response["total"])

	var count int64
	env.db.Model(&models.Interview{}).Where("user_id = ?", env.user.ID).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestGuestHandler_ImportUnsupportedVersion(t *testing.T) {
	env := setupGuestHandlerTestEnv(t)

	w := env.importRequest(t, map[string]interface{}{
		"version":    2,
		"interviews": []map[string]string{},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuestHandler_ImportPartialFailure(t *testing.T) {
	env := setupGuestHandlerTestEnv(t)

	w := env.importRequest(t, map[string]interface{}{
		"version": 1,
		"interviews": []map[string]string{
			{
				"stage":       "HR Screening",
				"companyName": "Acme Corp",
				"jobTitle":    "Backend Engineer",
			},
			{
				// Missing jobTitle: the replay stops here
				"stage":       "HR Screening",
				"companyName": "Globex",
			},
		},
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, float64(1), response["imported"])
	require.Equal(t, float64(2), response["total"])
}

package services

import (
	"testing"
	"time"

	"github.com/minazuki/interview-tracker-api/internal/models"
	"github.com/minazuki/interview-tracker-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type calendarTestEnv struct {
	db      *gorm.DB
	service *CalendarService
	user    *models.User
}

func setupCalendarTestEnv(t *testing.T) calendarTestEnv {
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

	userRepo := repository.NewUserRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	service := NewCalendarService(userRepo, interviewRepo, "http://localhost:8080")

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

	return calendarTestEnv{db: db, service: service, user: user}
}

func (env calendarTestEnv) createInterview(t *testing.T, outcome models.Outcome, date, deadline *time.Time) *models.Interview {
	t.Helper()

	company := &models.Company{UserID: env.user.ID, Name: "Acme Corp"}
	require.NoError(t, env.db.FirstOrCreate(company, models.Company{UserID: env.user.ID, Name: "Acme Corp"}).Error)
	stage := &models.Stage{Stage: "Final Interview"}
	require.NoError(t, env.db.FirstOrCreate(stage, models.Stage{Stage: "Final Interview"}).Error)

	interview := &models.Interview{
		UserID:          env.user.ID,
		CompanyID:       company.ID,
		JobTitle:        "Backend Engineer",
		StageID:         stage.ID,
		Outcome:         outcome,
		ApplicationDate: time.Now(),
		Date:            date,
		Deadline:        deadline,
	}
	require.NoError(t, env.db.Create(interview).Error)
	return interview
}

func TestCalendarService_Settings(t *testing.T) {
	env := setupCalendarTestEnv(t)

	settings, err := env.service.Settings(env.user.ID)
	require.NoError(t, err)
	require.Equal(t, "feed-token-1", settings.CalendarToken)
	require.Equal(t, "http://localhost:8080/api/calendar/feed-token-1", settings.CalendarURL)
}

func TestCalendarService_SettingsAssignsTokenLazily(t *testing.T) {
	env := setupCalendarTestEnv(t)

	// Simulate an account that predates the calendar feature
	require.NoError(t, env.db.Model(env.user).Update("calendar_token", "").Error)

	settings, err := env.service.Settings(env.user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, settings.CalendarToken)

	var reloaded models.User
	require.NoError(t, env.db.First(&reloaded, env.user.ID).Error)
	require.Equal(t, settings.CalendarToken, reloaded.CalendarToken)
}

func TestCalendarService_RegenerateTokenInvalidatesOldFeed(t *testing.T) {
	env := setupCalendarTestEnv(t)

	settings, err := env.service.RegenerateToken(env.user.ID)
	require.NoError(t, err)
	require.NotEqual(t, "feed-token-1", settings.CalendarToken)

	_, err = env.service.Feed("feed-token-1")
	require.ErrorIs(t, err, ErrCalendarNotFound)

	_, err = env.service.Feed(settings.CalendarToken)
	require.NoError(t, err)
}

func TestCalendarService_FeedUnknownToken(t *testing.T) {
	env := setupCalendarTestEnv(t)

	_, err := env.service.Feed("no-such-token")
	require.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestCalendarService_FeedTimedEvent(t *testing.T) {
	env := setupCalendarTestEnv(t)

	date := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	env.createInterview(t, models.OutcomeScheduled, &date, nil)

	feed, err := env.service.Feed("feed-token-1")
	require.NoError(t, err)

	require.Contains(t, feed, "BEGIN:VCALENDAR\r\n")
	require.Contains(t, feed, "END:VCALENDAR\r\n")
	require.Contains(t, feed, "DTSTART:20260910T140000Z\r\n")
	require.Contains(t, feed, "DTEND:20260910T150000Z\r\n")
	require.Contains(t, feed, "SUMMARY:Interview: Backend Engineer - Acme Corp\r\n")
	require.Contains(t, feed, "STATUS:CONFIRMED\r\n")
	require.Contains(t, feed, "TRIGGER:-PT30M\r\n")
}

func TestCalendarService_FeedDeadlineBecomesAllDay(t *testing.T) {
	env := setupCalendarTestEnv(t)

	deadline := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	env.createInterview(t, models.OutcomeScheduled, nil, &deadline)

	feed, err := env.service.Feed("feed-token-1")
	require.NoError(t, err)

	require.Contains(t, feed, "DTSTART;VALUE=DATE:20260920\r\n")
	require.Contains(t, feed, "DTEND;VALUE=DATE:20260920\r\n")
	// All-day deadlines carry no reminder
	require.NotContains(t, feed, "BEGIN:VALARM")
}

func TestCalendarService_FeedExcludesNonScheduled(t *testing.T) {
	env := setupCalendarTestEnv(t)

	date := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	env.createInterview(t, models.OutcomeRejected, &date, nil)

	feed, err := env.service.Feed("feed-token-1")
	require.NoError(t, err)
	require.NotContains(t, feed, "BEGIN:VEVENT")
}

func TestEscapeICalText(t *testing.T) {
	require.Equal(t, `Tech\, Inc\; R&D`, escapeICalText("Tech, Inc; R&D"))
	require.Equal(t, `line1\nline2`, escapeICalText("line1\nline2"))
	require.Equal(t, `back\\slash`, escapeICalText(`back\slash`))
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minazuki/interview-tracker-api/internal/models"
	"github.com/minazuki/interview-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCalendarNotFound = errors.New("calendar not found")
)

// CalendarService owns the feed token lifecycle and the projection of
// scheduled interviews into iCalendar text.
type CalendarService struct {
	userRepo      repository.UserRepository
	interviewRepo repository.InterviewRepository
	baseURL       string
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(userRepo repository.UserRepository, interviewRepo repository.InterviewRepository, baseURL string) *CalendarService {
	return &CalendarService{
		userRepo:      userRepo,
		interviewRepo: interviewRepo,
		baseURL:       baseURL,
	}
}

// CalendarSettings is the token plus the derived feed URL.
type CalendarSettings struct {
	CalendarToken string `json:"calendar_token"`
	CalendarURL   string `json:"calendar_url"`
}

// NewCalendarToken returns a fresh unguessable feed token. uuid.NewString
// draws from crypto/rand.
func NewCalendarToken() string {
	return uuid.NewString()
}

// Settings returns the user's current token and feed URL, assigning a token
// lazily for accounts that predate the feature.
func (s *CalendarService) Settings(userID uint64) (*CalendarSettings, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	token := user.CalendarToken
	if token == "" {
		token = NewCalendarToken()
		if err := s.userRepo.UpdateCalendarToken(userID, token); err != nil {
			return nil, fmt.Errorf("failed to assign calendar token: %w", err)
		}
	}

	return s.settingsFor(token), nil
}

// RegenerateToken replaces the user's token. The previous feed URL stops
// resolving the moment the update commits.
func (s *CalendarService) RegenerateToken(userID uint64) (*CalendarSettings, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	token := NewCalendarToken()
	if err := s.userRepo.UpdateCalendarToken(userID, token); err != nil {
		return nil, fmt.Errorf("failed to regenerate calendar token: %w", err)
	}

	return s.settingsFor(token), nil
}

func (s *CalendarService) settingsFor(token string) *CalendarSettings {
	return &CalendarSettings{
		CalendarToken: token,
		CalendarURL:   fmt.Sprintf("%s/api/calendar/%s", s.baseURL, token),
	}
}

// Feed renders the iCalendar text for the user owning the token.
func (s *CalendarService) Feed(token string) (string, error) {
	user, err := s.userRepo.FindByCalendarToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCalendarNotFound
		}
		return "", fmt.Errorf("failed to resolve calendar token: %w", err)
	}

	interviews, err := s.interviewRepo.ListForCalendar(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load interviews: %w", err)
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//Interview Tracker//Calendar//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")
	b.WriteString("X-WR-CALNAME:Interview Schedule\r\n")
	b.WriteString("X-WR-TIMEZONE:UTC\r\n")

	for i := range interviews {
		b.WriteString(buildCalendarEvent(&interviews[i]))
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String(), nil
}

// buildCalendarEvent maps one interview to a VEVENT. Deadlines become
// all-day events with no alarm; timed dates get a fixed one-hour slot with a
// 30-minute reminder. An interview with neither is skipped, not an error.
func buildCalendarEvent(interview *models.Interview) string {
	var dtstart, dtend string
	allDay := false

	switch {
	case interview.Deadline != nil:
		dtstart = interview.Deadline.UTC().Format("20060102")
		dtend = dtstart
		allDay = true
	case interview.Date != nil:
		start := interview.Date.UTC()
		dtstart = formatICalTime(start)
		dtend = formatICalTime(start.Add(time.Hour))
	default:
		return ""
	}

	companyName := interview.Company.Name
	if interview.ClientCompany != nil && *interview.ClientCompany != "" {
		companyName = *interview.ClientCompany
	}
	summary := escapeICalText(fmt.Sprintf("Interview: %s - %s", interview.JobTitle, companyName))

	descriptionParts := []string{
		fmt.Sprintf("Stage: %s", interview.Stage.Stage),
	}
	if interview.Interviewer != nil && *interview.Interviewer != "" {
		descriptionParts = append(descriptionParts, fmt.Sprintf("Interviewer: %s", *interview.Interviewer))
	}
	if interview.Notes != nil && *interview.Notes != "" {
		descriptionParts = append(descriptionParts, fmt.Sprintf("\nNotes: %s", *interview.Notes))
	}
	description := escapeICalText(strings.Join(descriptionParts, "\n"))

	var b strings.Builder
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:interview-%d@interview-tracker\r\n", interview.ID)
	fmt.Fprintf(&b, "DTSTAMP:%s\r\n", formatICalTime(time.Now().UTC()))

	if allDay {
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", dtstart)
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", dtend)
	} else {
		fmt.Fprintf(&b, "DTSTART:%s\r\n", dtstart)
		fmt.Fprintf(&b, "DTEND:%s\r\n", dtend)
	}

	fmt.Fprintf(&b, "SUMMARY:%s\r\n", summary)
	fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", description)

	if interview.Link != nil && *interview.Link != "" {
		fmt.Fprintf(&b, "LOCATION:%s\r\n", escapeICalText(*interview.Link))
	}

	// The feed query already filters to SCHEDULED; the per-event check keeps
	// the mapping safe for any caller.
	if interview.Outcome == models.OutcomeScheduled {
		b.WriteString("STATUS:CONFIRMED\r\n")
	}

	if !allDay {
		b.WriteString("BEGIN:VALARM\r\n")
		b.WriteString("ACTION:DISPLAY\r\n")
		b.WriteString("DESCRIPTION:Interview in 30 minutes\r\n")
		b.WriteString("TRIGGER:-PT30M\r\n")
		b.WriteString("END:VALARM\r\n")
	}

	b.WriteString("END:VEVENT\r\n")
	return b.String()
}

// formatICalTime renders a UTC timestamp as iCal basic format.
func formatICalTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICalText escapes the characters RFC 5545 treats as special in text
// values.
func escapeICalText(text string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(text)
}

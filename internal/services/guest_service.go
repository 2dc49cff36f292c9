package services

import (
	"fmt"
	"strings"
)

// GuestStorageVersion is the only client payload version this server
// understands.
const GuestStorageVersion = 1

// GuestEntry is one interview captured client-side before sign-in.
type GuestEntry struct {
	ID             string `json:"id"`
	Stage          string `json:"stage"`
	CompanyName    string `json:"companyName"`
	ClientCompany  string `json:"clientCompany"`
	JobTitle       string `json:"jobTitle"`
	JobPostingLink string `json:"jobPostingLink"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Interviewer    string `json:"interviewer"`
	LocationType   string `json:"locationType"`
	InterviewLink  string `json:"interviewLink"`
	Notes          string `json:"notes"`
	CreatedAt      string `json:"createdAt"`
	Hash           string `json:"hash"`
}

// GuestEntryHash is the dedupe key the client computes before storing an
// entry locally: companyName|jobTitle|date|time, names lowercased.
func GuestEntryHash(entry GuestEntry) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(entry.CompanyName)),
		strings.ToLower(strings.TrimSpace(entry.JobTitle)),
		entry.Date,
		entry.Time,
	}
	return strings.Join(parts, "|")
}

// combineGuestDateTime joins the client's separate date and time fields into
// one parseable timestamp. A missing time yields a bare date.
func combineGuestDateTime(date, clock string) string {
	if date == "" {
		return ""
	}
	if clock == "" {
		return date
	}
	return fmt.Sprintf("%sT%s:00", date, clock)
}

// GuestService replays client-local interview entries through the normal
// creation path when a user first authenticates.
type GuestService struct {
	interviewService *InterviewService
}

// NewGuestService creates a new GuestService.
func NewGuestService(interviewService *InterviewService) *GuestService {
	return &GuestService{
		interviewService: interviewService,
	}
}

// ImportResult reports how far a replay got. Imported entries are safe for
// the client to prune; everything after the failure stays local for the next
// attempt.
type ImportResult struct {
	Imported int   `json:"imported"`
	Total    int   `json:"total"`
	Err      error `json:"-"`
}

// Import replays entries in their original creation order, stopping at the
// first failure so a retry never duplicates already-imported rows.
func (s *GuestService) Import(userID uint64, entries []GuestEntry) ImportResult {
	result := ImportResult{Total: len(entries)}

	for _, entry := range entries {
		input := CreateInterviewInput{
			UserID:         userID,
			Stage:          entry.Stage,
			CompanyName:    entry.CompanyName,
			ClientCompany:  entry.ClientCompany,
			JobTitle:       entry.JobTitle,
			JobPostingLink: entry.JobPostingLink,
			Date:           combineGuestDateTime(entry.Date, entry.Time),
			Interviewer:    entry.Interviewer,
			LocationType:   entry.LocationType,
			InterviewLink:  entry.InterviewLink,
			Notes:          entry.Notes,
		}

		if _, err := s.interviewService.Create(input); err != nil {
			result.Err = fmt.Errorf("guest import stopped at entry %d: %w", result.Imported, err)
			return result
		}
		result.Imported++
	}

	return result
}

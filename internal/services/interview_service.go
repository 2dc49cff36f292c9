package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minazuki/interview-tracker-api/internal/constants"
	"github.com/minazuki/interview-tracker-api/internal/models"
	"github.com/minazuki/interview-tracker-api/internal/repository"
	"github.com/minazuki/interview-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInterviewNotFound     = errors.New("interview not found")
	ErrMissingRequiredFields = errors.New("stage, company name and job title are required")
	ErrInvalidDate           = errors.New("invalid date value")
	ErrInvalidOutcome        = errors.New("invalid outcome value")
	ErrTerminalOutcome       = errors.New("interview outcome is terminal and cannot change")
	ErrPredecessorNotFound   = errors.New("predecessor interview not found")
)

// InterviewService governs the interview lifecycle: outcome derivation,
// date placement, transitions, and the filtered read path.
type InterviewService struct {
	interviewRepo repository.InterviewRepository
	catalogRepo   repository.CatalogRepository
}

// NewInterviewService creates a new InterviewService.
func NewInterviewService(interviewRepo repository.InterviewRepository, catalogRepo repository.CatalogRepository) *InterviewService {
	return &InterviewService{
		interviewRepo: interviewRepo,
		catalogRepo:   catalogRepo,
	}
}

// CreateInterviewInput represents one interview stage to log. Date and
// Deadline are ISO strings; either may be empty.
type CreateInterviewInput struct {
	UserID         uint64
	Stage          string
	CompanyName    string
	ClientCompany  string
	JobTitle       string
	JobPostingLink string
	Date           string
	Deadline       string
	Interviewer    string
	LocationType   string // "phone" | "link" | ""
	InterviewLink  string
	Notes          string
}

// Create logs a new interview stage. The outcome is derived from the stage
// label (Applied waits, everything else is scheduled) and the supplied date
// lands in either date or deadline depending on the stage type.
func (s *InterviewService) Create(input CreateInterviewInput) (*models.Interview, error) {
	if input.Stage == "" || input.CompanyName == "" || input.JobTitle == "" {
		return nil, ErrMissingRequiredFields
	}

	interview, err := s.buildInterview(input)
	if err != nil {
		return nil, err
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	return s.Get(interview.ID, input.UserID)
}

// Progress logs the next stage of a pipeline and marks the predecessor
// PASSED. Both writes happen in one transaction.
func (s *InterviewService) Progress(input CreateInterviewInput, predecessorID uint64) (*models.Interview, error) {
	if input.Stage == "" || input.CompanyName == "" || input.JobTitle == "" {
		return nil, ErrMissingRequiredFields
	}

	interview, err := s.buildInterview(input)
	if err != nil {
		return nil, err
	}

	if err := s.interviewRepo.CreateWithPredecessor(interview, predecessorID, input.UserID); err != nil {
		if errors.Is(err, repository.ErrPredecessorNotFound) {
			return nil, ErrPredecessorNotFound
		}
		return nil, fmt.Errorf("failed to progress interview: %w", err)
	}

	return s.Get(interview.ID, input.UserID)
}

// buildInterview resolves catalog rows and applies the creation-time rules.
func (s *InterviewService) buildInterview(input CreateInterviewInput) (*models.Interview, error) {
	date, err := parseOptionalTime(input.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	deadline, err := parseOptionalTime(input.Deadline)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// Neither supplied: default to today at 09:00 local before placement.
	if date == nil && deadline == nil {
		now := time.Now()
		fallback := time.Date(now.Year(), now.Month(), now.Day(), constants.DefaultInterviewHour, 0, 0, 0, now.Location())
		date = &fallback
	}

	company, err := s.catalogRepo.FindOrCreateCompany(input.UserID, input.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company: %w", err)
	}

	stage, err := s.catalogRepo.FindOrCreateStage(input.Stage)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stage: %w", err)
	}

	methodName := utils.InferStageMethod(input.LocationType, input.InterviewLink)
	stageMethod, err := s.catalogRepo.FindOrCreateStageMethod(methodName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stage method: %w", err)
	}

	outcome := models.OutcomeScheduled
	if input.Stage == constants.StageApplied {
		outcome = models.OutcomeAwaitingResponse
	}

	metadata := map[string]any{}
	if input.JobPostingLink != "" {
		metadata["jobListing"] = input.JobPostingLink
	}
	if input.LocationType == "phone" || input.LocationType == "link" {
		metadata["location"] = input.LocationType
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	interview := &models.Interview{
		UserID:          input.UserID,
		CompanyID:       company.ID,
		ClientCompany:   optionalString(input.ClientCompany),
		JobTitle:        input.JobTitle,
		ApplicationDate: time.Now(),
		StageID:         stage.ID,
		StageMethodID:   &stageMethod.ID,
		Outcome:         outcome,
		Notes:           optionalString(input.Notes),
		Metadata:        metadata,
	}

	// Technical tests are asynchronous: they carry a date-only deadline and
	// no timed event, interviewer or meeting link.
	if strings.EqualFold(input.Stage, constants.StageTechnicalTest) {
		if deadline != nil {
			interview.Deadline = deadline
		} else {
			interview.Deadline = date
		}
	} else {
		interview.Date = date
		interview.Interviewer = optionalString(input.Interviewer)
		interview.Link = optionalString(input.InterviewLink)
	}

	return interview, nil
}

// Get returns one interview owned by the user.
func (s *InterviewService) Get(id, userID uint64) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return interview, nil
}

// List runs the compound query for the user.
func (s *InterviewService) List(filter repository.InterviewFilter) ([]models.Interview, error) {
	return s.interviewRepo.List(filter)
}

// CountByOutcome groups the user's interviews by outcome. Rows with no
// outcome recorded are bucketed as SCHEDULED.
func (s *InterviewService) CountByOutcome(userID uint64) (map[models.Outcome]int64, error) {
	return s.interviewRepo.CountByOutcome(userID)
}

// EditInterviewInput carries a field-level update. Nil pointers mean "leave
// untouched"; only fields present in the request are written.
type EditInterviewInput struct {
	Outcome       *string
	Notes         *string
	Link          *string
	Date          *string
	Deadline      *string
	Interviewer   *string
	ClientCompany *string
	StageID       *uint64
	StageMethodID *uint64
	Metadata      map[string]any
}

// Edit applies a constrained field-level update to an interview the user
// owns. Malformed dates and unknown outcomes are rejected, not dropped.
func (s *InterviewService) Edit(id, userID uint64, input EditInterviewInput) (*models.Interview, error) {
	interview, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Outcome != nil {
		next := models.Outcome(*input.Outcome)
		if !next.IsValid() {
			return nil, ErrInvalidOutcome
		}
		if interview.Outcome.IsTerminal() && next != interview.Outcome {
			return nil, ErrTerminalOutcome
		}
		interview.Outcome = next
	}
	if input.Notes != nil {
		interview.Notes = optionalString(*input.Notes)
	}
	if input.Link != nil {
		interview.Link = optionalString(*input.Link)
	}
	if input.Date != nil {
		parsed, err := parseOptionalTime(*input.Date)
		if err != nil || parsed == nil {
			return nil, ErrInvalidDate
		}
		interview.Date = parsed
	}
	if input.Deadline != nil {
		parsed, err := parseOptionalTime(*input.Deadline)
		if err != nil || parsed == nil {
			return nil, ErrInvalidDate
		}
		interview.Deadline = parsed
	}
	if input.Interviewer != nil {
		interview.Interviewer = optionalString(*input.Interviewer)
	}
	if input.ClientCompany != nil {
		interview.ClientCompany = optionalString(*input.ClientCompany)
	}
	if input.StageID != nil {
		interview.StageID = *input.StageID
	}
	if input.StageMethodID != nil {
		interview.StageMethodID = input.StageMethodID
	}
	if input.Metadata != nil {
		interview.Metadata = input.Metadata
	}

	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, fmt.Errorf("failed to update interview: %w", err)
	}

	return s.Get(id, userID)
}

// UpdateOutcome transitions an interview's outcome. Terminal outcomes refuse
// further transitions; re-applying the current outcome stays a no-op rather
// than an error so repeated rejects are tolerated.
func (s *InterviewService) UpdateOutcome(id, userID uint64, outcome models.Outcome) (*models.Interview, error) {
	if !outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}

	interview, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if interview.Outcome == outcome {
		return interview, nil
	}
	if interview.Outcome.IsTerminal() {
		return nil, ErrTerminalOutcome
	}

	interview.Outcome = outcome
	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, fmt.Errorf("failed to update outcome: %w", err)
	}

	return interview, nil
}

// parseOptionalTime accepts RFC3339 timestamps and bare dates; empty input
// yields nil without error.
func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable time: %q", value)
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

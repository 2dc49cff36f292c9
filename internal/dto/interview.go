package dto

import (
	"time"

	"github.com/minazuki/interview-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// StageDTO represents a stage catalog row in API responses
type StageDTO struct {
	ID    uint64 `json:"id"`
	Stage string `json:"stage"`
}

// StageMethodDTO represents a stage-method catalog row in API responses
type StageMethodDTO struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
}

// InterviewDTO is the one projection every interview endpoint returns.
type InterviewDTO struct {
	ID              uint64          `json:"id"`
	JobTitle        string          `json:"jobTitle"`
	Interviewer     *string         `json:"interviewer"`
	Company         CompanyDTO      `json:"company"`
	ClientCompany   *string         `json:"clientCompany"`
	Stage           StageDTO        `json:"stage"`
	StageMethod     *StageMethodDTO `json:"stageMethod"`
	ApplicationDate time.Time       `json:"applicationDate"`
	Date            *time.Time      `json:"date"`
	Deadline        *time.Time      `json:"deadline"`
	Outcome         models.Outcome  `json:"outcome"`
	Notes           *string         `json:"notes"`
	Metadata        map[string]any  `json:"metadata"`
	Link            *string         `json:"link"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// ToCompanyDTO converts a Company model to CompanyDTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:   company.ID,
		Name: company.Name,
	}
}

// ToStageDTO converts a Stage model to StageDTO
func ToStageDTO(stage models.Stage) StageDTO {
	return StageDTO{
		ID:    stage.ID,
		Stage: stage.Stage,
	}
}

// ToStageMethodDTO converts a StageMethod model to StageMethodDTO
func ToStageMethodDTO(method models.StageMethod) StageMethodDTO {
	return StageMethodDTO{
		ID:     method.ID,
		Method: method.Method,
	}
}

// ToInterviewDTO converts an Interview model (with catalog relations
// preloaded) to the shared projection.
func ToInterviewDTO(interview models.Interview) InterviewDTO {
	dto := InterviewDTO{
		ID:              interview.ID,
		JobTitle:        interview.JobTitle,
		Interviewer:     interview.Interviewer,
		Company:         ToCompanyDTO(interview.Company),
		ClientCompany:   interview.ClientCompany,
		Stage:           ToStageDTO(interview.Stage),
		ApplicationDate: interview.ApplicationDate,
		Date:            interview.Date,
		Deadline:        interview.Deadline,
		Outcome:         interview.Outcome,
		Notes:           interview.Notes,
		Metadata:        interview.Metadata,
		Link:            interview.Link,
	}

	if interview.StageMethod != nil {
		method := ToStageMethodDTO(*interview.StageMethod)
		dto.StageMethod = &method
	}

	return dto
}

// ToInterviewDTOs converts a slice of interviews
func ToInterviewDTOs(interviews []models.Interview) []InterviewDTO {
	dtos := make([]InterviewDTO, len(interviews))
	for i, interview := range interviews {
		dtos[i] = ToInterviewDTO(interview)
	}
	return dtos
}

package repository

import (
	"time"

	"github.com/minazuki/interview-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByCalendarToken finds a user by calendar feed token
	FindByCalendarToken(token string) (*models.User, error)

	// UpdateCalendarToken replaces the user's calendar token. The old token
	// stops resolving immediately.
	UpdateCalendarToken(userID uint64, token string) error
}

// CatalogRepository resolves loosely-specified identifying text to canonical
// Company/Stage/StageMethod rows, creating them on first use.
type CatalogRepository interface {
	// FindOrCreateCompany resolves (userID, name) with an exact name match.
	FindOrCreateCompany(userID uint64, name string) (*models.Company, error)

	// FindOrCreateStage resolves a stage label with an exact global match.
	FindOrCreateStage(label string) (*models.Stage, error)

	// FindOrCreateStageMethod looks up case-insensitively but creates with
	// the exact casing of the provided label.
	FindOrCreateStageMethod(label string) (*models.StageMethod, error)

	// ListCompanies lists the user's companies, alphabetical.
	ListCompanies(userID uint64) ([]models.Company, error)

	// ListStages lists the global stage catalog, alphabetical.
	ListStages() ([]models.Stage, error)

	// ListStageMethods lists the global method catalog, alphabetical.
	ListStageMethods() ([]models.StageMethod, error)
}

// InterviewFilter holds the compound filter for listing interviews. The
// owning user is always applied; everything else is optional.
type InterviewFilter struct {
	UserID        uint64
	Date          *time.Time // exact day, UTC midnight
	DateFrom      *time.Time
	DateTo        *time.Time
	IncludePast   bool // resolved by the caller, see handlers.resolveIncludePast
	CompanyID     *uint64
	CompanyName   string // case-insensitive substring
	StageID       *uint64
	StageMethodID *uint64
	Outcomes      []models.Outcome
	Query         string // free text across job title, interviewer, company, client company
	Take          int
	Skip          int
}

// InterviewRepository defines the interface for interview data access
type InterviewRepository interface {
	// Create creates a new interview
	Create(interview *models.Interview) error

	// CreateWithPredecessor creates the next-stage interview and marks the
	// predecessor PASSED within a single transaction.
	CreateWithPredecessor(interview *models.Interview, predecessorID, userID uint64) error

	// FindByIDForUser finds an interview owned by the given user, with
	// catalog relations preloaded.
	FindByIDForUser(id, userID uint64) (*models.Interview, error)

	// List retrieves interviews matching the filter, ordered by date then
	// deadline ascending, paginated.
	List(filter InterviewFilter) ([]models.Interview, error)

	// ListForCalendar retrieves SCHEDULED interviews carrying a date or
	// deadline for one user, in feed order.
	ListForCalendar(userID uint64) ([]models.Interview, error)

	// Update persists field-level changes to an interview
	Update(interview *models.Interview) error

	// CountByOutcome groups the user's interviews by outcome
	CountByOutcome(userID uint64) (map[models.Outcome]int64, error)
}

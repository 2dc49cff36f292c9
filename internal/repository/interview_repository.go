package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/minazuki/interview-tracker-api/internal/database"
	"github.com/minazuki/interview-tracker-api/internal/models"
	"github.com/minazuki/interview-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrPredecessorNotFound is returned when the progress transaction cannot
	// find the predecessor row under the given owner.
	ErrPredecessorNotFound = errors.New("interview repository: predecessor not found")
)

// interviewPreloads are the catalog relations every projection needs.
var interviewPreloads = []string{"Company", "Stage", "StageMethod"}

// GormInterviewRepository is a GORM implementation of InterviewRepository
type GormInterviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &GormInterviewRepository{db: db}
}

// Create creates a new interview
func (r *GormInterviewRepository) Create(interview *models.Interview) error {
	return r.db.Create(interview).Error
}

// CreateWithPredecessor creates the next-stage interview and marks the
// predecessor PASSED atomically. Both writes commit or neither does.
func (r *GormInterviewRepository) CreateWithPredecessor(interview *models.Interview, predecessorID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(interview).Error; err != nil {
			return fmt.Errorf("create next stage: %w", err)
		}

		res := tx.Model(&models.Interview{}).
			Where("id = ? AND user_id = ?", predecessorID, userID).
			Update("outcome", models.OutcomePassed)
		if res.Error != nil {
			return fmt.Errorf("mark predecessor passed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrPredecessorNotFound
		}
		return nil
	})
}

// FindByIDForUser finds an interview owned by the given user. Foreign rows
// come back as record-not-found, never as a different error, so callers
// cannot leak existence.
func (r *GormInterviewRepository) FindByIDForUser(id, userID uint64) (*models.Interview, error) {
	var interview models.Interview
	query := r.db
	for _, p := range interviewPreloads {
		query = query.Preload(p)
	}
	if err := query.Where("interviews.user_id = ?", userID).First(&interview, id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

// List retrieves interviews matching the compound filter. Date windows apply
// to date OR deadline identically so technical-test deadlines interleave with
// timed events; ordering is date ASC then deadline ASC for the same reason.
func (r *GormInterviewRepository) List(filter InterviewFilter) ([]models.Interview, error) {
	query := r.db.Model(&models.Interview{}).
		Joins("JOIN companies ON companies.id = interviews.company_id").
		Where("interviews.user_id = ?", filter.UserID)

	// Date filters
	switch {
	case filter.Date != nil:
		start := filter.Date.UTC().Truncate(24 * time.Hour)
		end := start.Add(24 * time.Hour)
		query = query.Where(
			"(interviews.date >= ? AND interviews.date < ?) OR (interviews.deadline >= ? AND interviews.deadline < ?)",
			start, end, start, end,
		)
	case filter.DateFrom != nil && filter.DateTo != nil:
		from := *filter.DateFrom
		// Inclusive through the last millisecond of that day
		to := filter.DateTo.UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Millisecond)
		// Both bounds must hold on the same field so a row carrying both a
		// date and a deadline cannot straddle the window
		query = query.Where(
			"(interviews.date >= ? AND interviews.date <= ?) OR (interviews.deadline >= ? AND interviews.deadline <= ?)",
			from, to, from, to,
		)
	case filter.DateFrom != nil:
		from := *filter.DateFrom
		query = query.Where("interviews.date >= ? OR interviews.deadline >= ?", from, from)
	case filter.DateTo != nil:
		to := filter.DateTo.UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Millisecond)
		query = query.Where("interviews.date <= ? OR interviews.deadline <= ?", to, to)
	case !filter.IncludePast:
		now := time.Now().UTC()
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		query = query.Where("interviews.date >= ? OR interviews.deadline >= ?", startOfToday, startOfToday)
	}

	// Company filters: the FK takes precedence over the name match
	if filter.CompanyID != nil {
		query = query.Where("interviews.company_id = ?", *filter.CompanyID)
	} else if filter.CompanyName != "" {
		like := "%" + filter.CompanyName + "%"
		query = query.Where(
			"LOWER(companies.name) LIKE LOWER(?) OR LOWER(interviews.client_company) LIKE LOWER(?)",
			like, like,
		)
	}

	if filter.StageID != nil {
		query = query.Where("interviews.stage_id = ?", *filter.StageID)
	}
	if filter.StageMethodID != nil {
		query = query.Where("interviews.stage_method_id = ?", *filter.StageMethodID)
	}
	if len(filter.Outcomes) > 0 {
		query = query.Where("interviews.outcome IN ?", filter.Outcomes)
	}

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where(
			"LOWER(interviews.job_title) LIKE LOWER(?) OR LOWER(interviews.interviewer) LIKE LOWER(?) OR LOWER(companies.name) LIKE LOWER(?) OR LOWER(interviews.client_company) LIKE LOWER(?)",
			like, like, like, like,
		)
	}

	query = query.Order("interviews.date ASC, interviews.deadline ASC")

	if filter.Take > 0 {
		query = query.Scopes(database.Paginate(utils.PageParams{Take: filter.Take, Skip: filter.Skip}))
	}

	var interviews []models.Interview
	for _, p := range interviewPreloads {
		query = query.Preload(p)
	}
	if err := query.Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

// ListForCalendar retrieves SCHEDULED interviews carrying a date or deadline
func (r *GormInterviewRepository) ListForCalendar(userID uint64) ([]models.Interview, error) {
	var interviews []models.Interview
	query := r.db.
		Where("user_id = ? AND outcome = ?", userID, models.OutcomeScheduled).
		Where("date IS NOT NULL OR deadline IS NOT NULL").
		Order("date ASC, deadline ASC")
	for _, p := range interviewPreloads {
		query = query.Preload(p)
	}
	if err := query.Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

// Update persists field-level changes to an interview
func (r *GormInterviewRepository) Update(interview *models.Interview) error {
	return r.db.Save(interview).Error
}

// CountByOutcome groups the user's interviews by outcome
func (r *GormInterviewRepository) CountByOutcome(userID uint64) (map[models.Outcome]int64, error) {
	type row struct {
		Outcome models.Outcome
		Count   int64
	}
	var rows []row
	err := r.db.Model(&models.Interview{}).
		Select("outcome, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("outcome").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Outcome]int64, len(rows))
	for _, r := range rows {
		outcome := r.Outcome
		if outcome == "" {
			outcome = models.OutcomeScheduled
		}
		counts[outcome] += r.Count
	}
	return counts, nil
}

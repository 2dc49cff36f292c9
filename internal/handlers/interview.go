package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minazuki/interview-tracker-api/internal/dto"
	apierrors "github.com/minazuki/interview-tracker-api/internal/errors"
	"github.com/minazuki/interview-tracker-api/internal/middleware"
	"github.com/minazuki/interview-tracker-api/internal/models"
	"github.com/minazuki/interview-tracker-api/internal/repository"
	"github.com/minazuki/interview-tracker-api/internal/services"
	"github.com/minazuki/interview-tracker-api/internal/utils"
)

type InterviewHandler struct {
	interviewService *services.InterviewService
	aiService        *services.AIService
}

func NewInterviewHandler(interviewService *services.InterviewService, aiService *services.AIService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		aiService:        aiService,
	}
}

// createInterviewRequest is shared by the create and progress endpoints.
type createInterviewRequest struct {
	Stage          string `json:"stage"`
	CompanyName    string `json:"companyName"`
	ClientCompany  string `json:"clientCompany"`
	JobTitle       string `json:"jobTitle"`
	JobPostingLink string `json:"jobPostingLink"`
	Date           string `json:"date"`
	Deadline       string `json:"deadline"`
	Interviewer    string `json:"interviewer"`
	LocationType   string `json:"locationType"`
	InterviewLink  string `json:"interviewLink"`
	Notes          string `json:"notes"`
}

func (r createInterviewRequest) toInput(userID uint64) services.CreateInterviewInput {
	return services.CreateInterviewInput{
		UserID:         userID,
		Stage:          r.Stage,
		CompanyName:    r.CompanyName,
		ClientCompany:  r.ClientCompany,
		JobTitle:       r.JobTitle,
		JobPostingLink: r.JobPostingLink,
		Date:           r.Date,
		Deadline:       r.Deadline,
		Interviewer:    r.Interviewer,
		LocationType:   r.LocationType,
		InterviewLink:  r.InterviewLink,
		Notes:          r.Notes,
	}
}

// CreateInterview logs a new interview stage
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	interview, err := h.interviewService.Create(req.toInput(userID))
	if err != nil {
		respondInterviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInterviewDTO(*interview))
}

// ProgressInterview logs the next stage and marks the current row PASSED.
// RequireInterviewAccess has already verified ownership of the predecessor.
func (h *InterviewHandler) ProgressInterview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	predecessor, ok := interviewFromContext(c)
	if !ok {
		return
	}

	var req createInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	interview, err := h.interviewService.Progress(req.toInput(userID), predecessor.ID)
	if err != nil {
		respondInterviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInterviewDTO(*interview))
}

// GetInterview returns a single interview projection.
// The row is loaded by RequireInterviewAccess.
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	interview, ok := interviewFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewDTO(interview))
}

// UpdateInterview applies a field-level edit. Only fields present in the
// request body are written; malformed values are rejected, never dropped.
func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	interview, ok := interviewFromContext(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, errMsg := buildEditInput(rawReq)
	if errMsg != "" {
		apierrors.BadRequest(c, errMsg)
		return
	}

	updated, err := h.interviewService.Edit(interview.ID, userID, input)
	if err != nil {
		respondInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewDTO(*updated))
}

// buildEditInput maps present JSON fields onto an EditInterviewInput. A
// non-empty second return value is a validation failure message.
func buildEditInput(raw map[string]any) (services.EditInterviewInput, string) {
	var input services.EditInterviewInput

	if v, ok := raw["outcome"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, "outcome must be a string"
		}
		input.Outcome = &s
	}
	if v, ok := raw["notes"]; ok {
		if s, ok := v.(string); ok {
			input.Notes = &s
		}
	}
	if v, ok := raw["link"]; ok {
		switch s := v.(type) {
		case string:
			input.Link = &s
		case nil:
			empty := ""
			input.Link = &empty
		}
	}
	if v, ok := raw["date"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return input, "date must be an ISO string"
		}
		input.Date = &s
	}
	if v, ok := raw["deadline"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return input, "deadline must be an ISO string"
		}
		input.Deadline = &s
	}
	if v, ok := raw["interviewer"]; ok {
		switch s := v.(type) {
		case string:
			input.Interviewer = &s
		case nil:
			empty := ""
			input.Interviewer = &empty
		}
	}
	if v, ok := raw["clientCompany"]; ok {
		switch s := v.(type) {
		case string:
			input.ClientCompany = &s
		case nil:
			empty := ""
			input.ClientCompany = &empty
		}
	}
	if v, ok := raw["stageId"]; ok {
		n, ok := v.(float64)
		if !ok || n < 1 {
			return input, "stageId must be a positive number"
		}
		id := uint64(n)
		input.StageID = &id
	}
	if v, ok := raw["stageMethodId"]; ok {
		n, ok := v.(float64)
		if !ok || n < 1 {
			return input, "stageMethodId must be a positive number"
		}
		id := uint64(n)
		input.StageMethodID = &id
	}
	if v, ok := raw["metadata"]; ok {
		if m, ok := v.(map[string]any); ok {
			input.Metadata = m
		}
	}

	return input, ""
}

// UpdateOutcome handles the outcome-only PATCH
func (h *InterviewHandler) UpdateOutcome(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	interview, ok := interviewFromContext(c)
	if !ok {
		return
	}

	type updateOutcomeRequest struct {
		Outcome string `json:"outcome" binding:"required"`
	}

	var req updateOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.interviewService.UpdateOutcome(interview.ID, userID, models.Outcome(req.Outcome))
	if err != nil {
		respondInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      updated.ID,
		"outcome": updated.Outcome,
	})
}

// ListInterviews runs the compound query
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	filter, errMsg := buildInterviewFilter(c, userID)
	if errMsg != "" {
		apierrors.BadRequest(c, errMsg)
		return
	}

	interviews, err := h.interviewService.List(filter)
	if err != nil {
		log.Printf("list interviews: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewDTOs(interviews))
}

// buildInterviewFilter assembles the repository filter from query params. A
// non-empty second return value is a validation failure message.
func buildInterviewFilter(c *gin.Context, userID uint64) (repository.InterviewFilter, string) {
	filter := repository.InterviewFilter{UserID: userID}

	if v := c.Query("date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, "Invalid date"
		}
		filter.Date = &day
	}
	if v := c.Query("dateFrom"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, "Invalid dateFrom"
		}
		filter.DateFrom = &from
	}
	if v := c.Query("dateTo"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, "Invalid dateTo"
		}
		filter.DateTo = &to
	}

	if v := c.Query("companyId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, "Invalid companyId"
		}
		filter.CompanyID = &id
	}
	filter.CompanyName = c.Query("company")

	if v := c.Query("stageId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, "Invalid stageId"
		}
		filter.StageID = &id
	}
	if v := c.Query("stageMethodId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, "Invalid stageMethodId"
		}
		filter.StageMethodID = &id
	}

	for _, v := range c.QueryArray("outcome") {
		outcome := models.Outcome(v)
		if !outcome.IsValid() {
			return filter, "Invalid outcome"
		}
		filter.Outcomes = append(filter.Outcomes, outcome)
	}

	filter.Query = c.Query("q")

	var explicitIncludePast *bool
	if v := c.Query("includePast"); v != "" {
		b := v == "true"
		explicitIncludePast = &b
	}
	filter.IncludePast = resolveIncludePast(explicitIncludePast, filter)

	params := utils.GetPageParams(c)
	filter.Take = params.Take
	filter.Skip = params.Skip

	return filter, ""
}

// resolveIncludePast computes the default date scoping. Future-only is the
// baseline; a company filter means the caller is reviewing one pipeline's
// history, and an outcome filter means they want the full history behind
// that outcome. An explicit includePast always wins.
func resolveIncludePast(explicit *bool, filter repository.InterviewFilter) bool {
	if explicit != nil {
		return *explicit
	}
	if filter.CompanyID != nil || filter.CompanyName != "" {
		return true
	}
	if len(filter.Outcomes) > 0 {
		return true
	}
	return false
}

// GetStats groups the user's interviews by outcome
func (h *InterviewHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	counts, err := h.interviewService.CountByOutcome(userID)
	if err != nil {
		log.Printf("interview stats: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcomes": counts})
}

// ParsePosting extracts interview fields from pasted text using AI
func (h *InterviewHandler) ParsePosting(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type parseRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI parsing is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	parsed, err := h.aiService.ParsePosting(context.Background(), req.Text)
	if err != nil {
		log.Printf("parse posting: %v", err)
		apierrors.InternalError(c, "Failed to parse posting")
		return
	}

	c.JSON(http.StatusOK, parsed)
}

// interviewFromContext pulls the row loaded by RequireInterviewAccess.
func interviewFromContext(c *gin.Context) (models.Interview, bool) {
	value, exists := c.Get(middleware.ContextKeyInterview)
	if !exists {
		apierrors.InternalError(c, "Interview not found in context")
		return models.Interview{}, false
	}

	interview, ok := value.(models.Interview)
	if !ok {
		apierrors.InternalError(c, "Invalid interview data")
		return models.Interview{}, false
	}

	return interview, true
}

func respondInterviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingRequiredFields),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidOutcome):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTerminalOutcome):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInterviewNotFound),
		errors.Is(err, services.ErrPredecessorNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Printf("interview handler: %v", err)
		apierrors.InternalError(c, "")
	}
}

package constants

// Session
const (
	SessionCookieName = "interview_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Query pagination bounds (take/skip are clamped, never rejected)
const (
	DefaultTake = 100
	MaxTake     = 200
)

// Stage labels with special lifecycle behavior. These are the only two
// labels the state machine treats differently; every other stage is generic.
const (
	StageApplied       = "Applied"
	StageTechnicalTest = "Technical Test"
)

// DefaultInterviewHour is the local hour used when a creation request
// carries neither a date nor a deadline.
const DefaultInterviewHour = 9

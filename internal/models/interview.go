package models

import (
	"time"

	"gorm.io/gorm"
)

type Outcome string

const (
	OutcomeAwaitingResponse Outcome = "AWAITING_RESPONSE"
	OutcomeScheduled        Outcome = "SCHEDULED"
	OutcomePassed           Outcome = "PASSED"
	OutcomeRejected         Outcome = "REJECTED"
	OutcomeOfferReceived    Outcome = "OFFER_RECEIVED"
	OutcomeOfferAccepted    Outcome = "OFFER_ACCEPTED"
	OutcomeOfferDeclined    Outcome = "OFFER_DECLINED"
	OutcomeWithdrew         Outcome = "WITHDREW"
)

// IsValid reports whether o is one of the enumerated outcomes.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeAwaitingResponse, OutcomeScheduled, OutcomePassed,
		OutcomeRejected, OutcomeOfferReceived, OutcomeOfferAccepted,
		OutcomeOfferDeclined, OutcomeWithdrew:
		return true
	}
	return false
}

// IsTerminal reports whether o permits no further transitions. PASSED is
// not terminal: the progress flow marks predecessors PASSED and a mis-click
// must stay correctable.
func (o Outcome) IsTerminal() bool {
	switch o {
	case OutcomeRejected, OutcomeOfferDeclined, OutcomeWithdrew:
		return true
	}
	return false
}

// Interview is one row of a pipeline. Progressing to the next stage creates
// a new sibling row; the predecessor is only marked PASSED, never deleted.
// Date and Deadline are mutually exclusive: technical-test stages carry a
// deadline (date-only cutoff), every other stage carries a timed date.
type Interview struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	UserID        uint64         `gorm:"not null;index" json:"user_id"`
	CompanyID     uint64         `gorm:"not null;index" json:"company_id"`
	ClientCompany *string        `gorm:"type:varchar(255)" json:"client_company"`
	JobTitle      string         `gorm:"type:varchar(255);not null" json:"job_title"`
	Interviewer   *string        `gorm:"type:varchar(255)" json:"interviewer"`
	Notes         *string        `gorm:"type:text" json:"notes"`
	Metadata      map[string]any `gorm:"serializer:json" json:"metadata"`
	Link          *string        `gorm:"type:varchar(2048)" json:"link"`
	Date          *time.Time     `json:"date"`
	Deadline      *time.Time     `json:"deadline"`
	StageID       uint64         `gorm:"not null;index" json:"stage_id"`
	StageMethodID *uint64        `gorm:"index" json:"stage_method_id"`
	Outcome       Outcome        `gorm:"type:varchar(30);not null" json:"outcome"`
	// ApplicationDate is the immutable creation timestamp, distinct from
	// Date/Deadline.
	ApplicationDate time.Time      `gorm:"not null" json:"application_date"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company     Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Stage       Stage        `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	StageMethod *StageMethod `gorm:"foreignKey:StageMethodID" json:"stage_method,omitempty"`
}

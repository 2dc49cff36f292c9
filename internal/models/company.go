package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is scoped to its owning user: the same name may exist once per
// distinct user, never twice within one user's scope.
type Company struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null;uniqueIndex:idx_companies_user_name" json:"user_id"`
	Name      string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_companies_user_name" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Interviews []Interview `gorm:"foreignKey:CompanyID" json:"interviews,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64  `gorm:"primarykey" json:"id"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Name         *string `gorm:"type:varchar(255)" json:"name"`
	// CalendarToken grants unauthenticated read access to the user's feed.
	// Regenerating it invalidates every previously issued feed URL.
	CalendarToken string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Companies  []Company   `gorm:"foreignKey:UserID" json:"-"`
	Interviews []Interview `gorm:"foreignKey:UserID" json:"-"`
}

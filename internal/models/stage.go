package models

import "time"

// Stage is a global catalog row, shared across users. Unique by label;
// first writer wins and everyone reusing the label shares the row.
type Stage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Stage     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

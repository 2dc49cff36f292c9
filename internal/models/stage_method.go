package models

import "time"

// StageMethod is a global catalog of communication-method labels ("Zoom",
// "Phone", ...). Lookups are case-insensitive so "zoom" resolves to an
// existing "Zoom" row; creation preserves the canonical casing it was given.
type StageMethod struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Method    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"method"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

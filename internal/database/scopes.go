package database

import (
	"gorm.io/gorm"

	"github.com/minazuki/interview-tracker-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PageParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Skip).Limit(params.Take)
	}
}

package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Interview indexes for the query engine's filters and ordering
		{"interviews", "idx_interviews_user_id_date", "user_id, date"},
		{"interviews", "idx_interviews_user_id_deadline", "user_id, deadline"},
		{"interviews", "idx_interviews_company_id", "company_id"},
		{"interviews", "idx_interviews_stage_id", "stage_id"},
		{"interviews", "idx_interviews_stage_method_id", "stage_method_id"},
		{"interviews", "idx_interviews_outcome", "outcome"},

		// Company name lookups within a user's scope
		{"companies", "idx_companies_user_id", "user_id"},

		// Calendar feed token lookup
		{"users", "idx_users_calendar_token", "calendar_token"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

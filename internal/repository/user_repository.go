package repository

import (
	"github.com/minazuki/interview-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCalendarToken finds a user by calendar feed token
func (r *GormUserRepository) FindByCalendarToken(token string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("calendar_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCalendarToken replaces the user's calendar token
func (r *GormUserRepository) UpdateCalendarToken(userID uint64, token string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("calendar_token", token).Error
}

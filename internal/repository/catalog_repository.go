package repository

import (
	"errors"

	"github.com/minazuki/interview-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindOrCreateCompany resolves (userID, name) with an exact name match.
// A concurrent first use can make the create hit the unique constraint;
// that means someone else already created the row, so re-read and use theirs.
func (r *GormCatalogRepository) FindOrCreateCompany(userID uint64, name string) (*models.Company, error) {
	var company models.Company
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company = models.Company{UserID: userID, Name: name}
	if createErr := r.db.Create(&company).Error; createErr != nil {
		var existing models.Company
		if err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &company, nil
}

// FindOrCreateStage resolves a stage label with an exact global match
func (r *GormCatalogRepository) FindOrCreateStage(label string) (*models.Stage, error) {
	var stage models.Stage
	err := r.db.Where("stage = ?", label).First(&stage).Error
	if err == nil {
		return &stage, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stage = models.Stage{Stage: label}
	if createErr := r.db.Create(&stage).Error; createErr != nil {
		var existing models.Stage
		if err := r.db.Where("stage = ?", label).First(&existing).Error; err == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &stage, nil
}

// FindOrCreateStageMethod looks up case-insensitively so that "zoom" resolves
// to an existing "Zoom" row; a genuinely new label is stored with the exact
// casing it was provided in.
func (r *GormCatalogRepository) FindOrCreateStageMethod(label string) (*models.StageMethod, error) {
	var method models.StageMethod
	err := r.db.Where("LOWER(method) = LOWER(?)", label).First(&method).Error
	if err == nil {
		return &method, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	method = models.StageMethod{Method: label}
	if createErr := r.db.Create(&method).Error; createErr != nil {
		var existing models.StageMethod
		if err := r.db.Where("LOWER(method) = LOWER(?)", label).First(&existing).Error; err == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &method, nil
}

// ListCompanies lists the user's companies, alphabetical
func (r *GormCatalogRepository) ListCompanies(userID uint64) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&companies).Error
	return companies, err
}

// ListStages lists the global stage catalog, alphabetical
func (r *GormCatalogRepository) ListStages() ([]models.Stage, error) {
	var stages []models.Stage
	err := r.db.Order("stage ASC").Find(&stages).Error
	return stages, err
}

// ListStageMethods lists the global method catalog, alphabetical
func (r *GormCatalogRepository) ListStageMethods() ([]models.StageMethod, error) {
	var methods []models.StageMethod
	err := r.db.Order("method ASC").Find(&methods).Error
	return methods, err
}

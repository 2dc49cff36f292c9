package repository

import (
	"testing"

	"github.com/minazuki/interview-tracker-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogRepo(t *testing.T) (CatalogRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Stage{},
		&models.StageMethod{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewCatalogRepository(db), db
}

func TestFindOrCreateStageMethod_CaseInsensitiveLookup(t *testing.T) {
	repo, db := setupCatalogRepo(t)

	created, err := repo.FindOrCreateStageMethod("Zoom")
	require.NoError(t, err)

	// A lowercase lookup must resolve to the existing row, not create a
	// near-duplicate differing only by case
	found, err := repo.FindOrCreateStageMethod("zoom")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, "Zoom", found.Method)

	var count int64
	db.Model(&models.StageMethod{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestFindOrCreateStageMethod_PreservesGivenCasing(t *testing.T) {
	repo, _ := setupCatalogRepo(t)

	method, err := repo.FindOrCreateStageMethod("BlueJeans")
	require.NoError(t, err)
	require.Equal(t, "BlueJeans", method.Method)
}

func TestFindOrCreateCompany_ScopedPerUser(t *testing.T) {
	repo, db := setupCatalogRepo(t)

	first, err := repo.FindOrCreateCompany(1, "Acme Corp")
	require.NoError(t, err)

	// Same user, same name: reuse the row
	again, err := repo.FindOrCreateCompany(1, "Acme Corp")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	// A different user gets their own row for the same name
	other, err := repo.FindOrCreateCompany(2, "Acme Corp")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, other.ID)

	var count int64
	db.Model(&models.Company{}).Count(&count)
	require.Equal(t, int64(2), count)
}

func TestFindOrCreateCompany_ExactNameMatch(t *testing.T) {
	repo, db := setupCatalogRepo(t)

	_, err := repo.FindOrCreateCompany(1, "Acme Corp")
	require.NoError(t, err)

	// Company names are case-sensitive, unlike stage methods
	_, err = repo.FindOrCreateCompany(1, "acme corp")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Company{}).Count(&count)
	require.Equal(t, int64(2), count)
}

func TestFindOrCreateStage_GlobalReuse(t *testing.T) {
	repo, db := setupCatalogRepo(t)

	first, err := repo.FindOrCreateStage("Phone Screen")
	require.NoError(t, err)

	// Stages are a global catalog: every caller reusing the label shares
	// the row
	again, err := repo.FindOrCreateStage("Phone Screen")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	var count int64
	db.Model(&models.Stage{}).Count(&count)
	require.Equal(t, int64(1), count)
}

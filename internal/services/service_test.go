package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Farm{},
		&models.Section{},
		&models.OliveTree{},
		&models.Activity{},
		&models.TreeActivity{},
		&models.Harvest{},
		&models.OliveVariety{},
		&models.MonthlyTask{},
		&models.RiskFactor{},
		&models.CareGuideline{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// seedUser creates a test user
func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		AuthzID:   "authz-" + t.Name(),
		Email:     "farmer@example.com",
		FirstName: "Γιώργος",
		LastName:  "Παπαδόπουλος",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// seedFarm creates a test farm for the user
func seedFarm(t *testing.T, db *gorm.DB, userID string, area *float64) *models.Farm {
	t.Helper()

	farm := models.Farm{
		Name:      "Ελαιώνας Καλαμάτας",
		Location:  "Καλαμάτα",
		TotalArea: area,
		UserID:    userID,
	}
	if err := db.Create(&farm).Error; err != nil {
		t.Fatalf("Failed to create test farm: %v", err)
	}
	return &farm
}

func floatPtr(v float64) *float64 {
	return &v
}

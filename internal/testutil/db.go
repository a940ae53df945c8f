package testutil

import (
	"testing"

	"launchboard_backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PricingBracket{},
		&models.PaymentIntent{},
		&models.Transaction{},
		&models.Referral{},
		&models.Suggestion{},
		&models.SuggestionVote{},
		&models.SuggestionReaction{},
		&models.SuggestionComment{},
		&models.BlogPost{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

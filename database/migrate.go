package database

import (
	"launchboard_backend/internal/logger"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date and seeds the pricing table on a
// fresh database.
func Migrate(db *gorm.DB) error {
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
		return err
	}

	return seedPricingBrackets(db)
}

func intPtr(v int) *int { return &v }

// seedPricingBrackets installs the launch pricing ladder once. Operators
// adjust brackets directly in the table afterwards.
func seedPricingBrackets(db *gorm.DB) error {
	pricingRepo := repositories.NewPricingRepository()

	count, err := pricingRepo.CountAll(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	brackets := []models.PricingBracket{
		{StakeholderType: models.StakeholderEcosystem, Currency: "INR", MinSignups: 1, MaxSignups: intPtr(100), Amount: 999, Label: "Founding 100"},
		{StakeholderType: models.StakeholderEcosystem, Currency: "INR", MinSignups: 101, MaxSignups: intPtr(500), Amount: 1999, Label: "Early"},
		{StakeholderType: models.StakeholderEcosystem, Currency: "INR", MinSignups: 501, MaxSignups: intPtr(2000), Amount: 3999, Label: "Growth"},
		{StakeholderType: models.StakeholderEcosystem, Currency: "INR", MinSignups: 2001, Amount: 8199, Label: "Standard"},

		{StakeholderType: models.StakeholderEcosystem, Currency: "USD", MinSignups: 1, MaxSignups: intPtr(100), Amount: 14.99, Label: "Founding 100"},
		{StakeholderType: models.StakeholderEcosystem, Currency: "USD", MinSignups: 101, MaxSignups: intPtr(500), Amount: 29.99, Label: "Early"},
		{StakeholderType: models.StakeholderEcosystem, Currency: "USD", MinSignups: 501, MaxSignups: intPtr(2000), Amount: 59.99, Label: "Growth"},
		{StakeholderType: models.StakeholderEcosystem, Currency: "USD", MinSignups: 2001, Amount: 99.99, Label: "Standard"},

		{StakeholderType: models.StakeholderProfessional, Currency: "INR", MinSignups: 1, MaxSignups: intPtr(500), Amount: 99, Label: "Founding"},
		{StakeholderType: models.StakeholderProfessional, Currency: "INR", MinSignups: 501, MaxSignups: intPtr(2000), Amount: 199, Label: "Early"},
		{StakeholderType: models.StakeholderProfessional, Currency: "INR", MinSignups: 2001, Amount: 499, Label: "Standard"},

		{StakeholderType: models.StakeholderProfessional, Currency: "USD", MinSignups: 1, MaxSignups: intPtr(500), Amount: 1.49, Label: "Founding"},
		{StakeholderType: models.StakeholderProfessional, Currency: "USD", MinSignups: 501, MaxSignups: intPtr(2000), Amount: 2.99, Label: "Early"},
		{StakeholderType: models.StakeholderProfessional, Currency: "USD", MinSignups: 2001, Amount: 6.99, Label: "Standard"},
	}

	for i := range brackets {
		if err := pricingRepo.Create(db, &brackets[i]); err != nil {
			return err
		}
	}

	logger.Info("Seeded pricing brackets", "count", len(brackets))
	return nil
}

package repositories

import (
	"errors"

	"launchboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNoBrackets = errors.New("no pricing brackets configured")

type PricingRepository interface {
	// FindBrackets returns the brackets for a (stakeholderType, currency)
	// pair ordered by min_signups ascending, or ErrNoBrackets when none
	// are configured for the pair.
	FindBrackets(db *gorm.DB, st models.StakeholderType, currency string) ([]models.PricingBracket, error)
	Create(db *gorm.DB, bracket *models.PricingBracket) error
	CountAll(db *gorm.DB) (int64, error)
}

type pricingRepository struct{}

func NewPricingRepository() PricingRepository {
	return &pricingRepository{}
}

func (r *pricingRepository) FindBrackets(db *gorm.DB, st models.StakeholderType, currency string) ([]models.PricingBracket, error) {
	var brackets []models.PricingBracket
	err := db.Where("stakeholder_type = ? AND currency = ?", st, currency).
		Order("min_signups ASC").Find(&brackets).Error
	if err != nil {
		return nil, err
	}
	if len(brackets) == 0 {
		return nil, ErrNoBrackets
	}
	return brackets, nil
}

func (r *pricingRepository) Create(db *gorm.DB, bracket *models.PricingBracket) error {
	return db.Create(bracket).Error
}

func (r *pricingRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.PricingBracket{}).Count(&count).Error
	return count, err
}

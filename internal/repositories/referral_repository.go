package repositories

import (
	"launchboard_backend/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository interface {
	Create(db *gorm.DB, referral *models.Referral) error
	Exists(db *gorm.DB, referrerID, referredUserID string) (bool, error)
	ListByReferrer(db *gorm.DB, referrerID string) ([]models.Referral, error)
	CountByReferrer(db *gorm.DB, referrerID string) (int64, error)
}

type referralRepository struct{}

func NewReferralRepository() ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(db *gorm.DB, referral *models.Referral) error {
	return db.Create(referral).Error
}

func (r *referralRepository) Exists(db *gorm.DB, referrerID, referredUserID string) (bool, error) {
	var count int64
	err := db.Model(&models.Referral{}).
		Where("referrer_id = ? AND referred_user_id = ?", referrerID, referredUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *referralRepository) ListByReferrer(db *gorm.DB, referrerID string) ([]models.Referral, error) {
	var referrals []models.Referral
	err := db.Where("referrer_id = ?", referrerID).
		Order("created_at DESC").Find(&referrals).Error
	return referrals, err
}

func (r *referralRepository) CountByReferrer(db *gorm.DB, referrerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Referral{}).Where("referrer_id = ?", referrerID).Count(&count).Error
	return count, err
}

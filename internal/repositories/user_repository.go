package repositories

import (
	"errors"
	"time"

	"launchboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrPhoneTaken    = errors.New("phone already registered")
	ErrPaymentIDUsed = errors.New("payment id already used")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByPhone(db *gorm.DB, phone string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindByReferralCode(db *gorm.DB, code string) (*models.User, error)
	FindByPaymentID(db *gorm.DB, paymentID string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Save(db *gorm.DB, user *models.User) error
	CountByStakeholderType(db *gorm.DB, st models.StakeholderType) (int64, error)
	FindActive(db *gorm.DB, limit, offset int) ([]models.User, error)
	CountActive(db *gorm.DB) (int64, error)
	IncrementReferralCount(db *gorm.DB, userID string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(db *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByReferralCode(db *gorm.DB, code string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPaymentID(db *gorm.DB, paymentID string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if user.Email != nil {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", *user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
	}
	if user.Phone != nil {
		var count int64
		if err := db.Model(&models.User{}).Where("phone = ?", *user.Phone).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPhoneTaken
		}
	}
	if user.PaymentID != nil {
		var count int64
		if err := db.Model(&models.User{}).Where("payment_id = ?", *user.PaymentID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPaymentIDUsed
		}
	}
	return db.Create(user).Error
}

func (r *userRepository) Save(db *gorm.DB, user *models.User) error {
	user.UpdatedAt = time.Now()
	return db.Save(user).Error
}

func (r *userRepository) CountByStakeholderType(db *gorm.DB, st models.StakeholderType) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("stakeholder_type = ?", st).Count(&count).Error
	return count, err
}

func (r *userRepository) FindActive(db *gorm.DB, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := db.Where("subscription_status IN ?", []models.SubscriptionStatus{
		models.SubscriptionActive,
		models.SubscriptionActivePreview,
		models.SubscriptionActiveLive,
	}).Order("created_at ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *userRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("subscription_status IN ?", []models.SubscriptionStatus{
		models.SubscriptionActive,
		models.SubscriptionActivePreview,
		models.SubscriptionActiveLive,
	}).Count(&count).Error
	return count, err
}

func (r *userRepository) IncrementReferralCount(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("referral_count", gorm.Expr("referral_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

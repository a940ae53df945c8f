package repositories

import (
	"errors"

	"launchboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentIntentNotFound = errors.New("payment intent not found")

type PaymentRepository interface {
	CreateIntent(db *gorm.DB, intent *models.PaymentIntent) error
	FindIntentByID(db *gorm.DB, id string) (*models.PaymentIntent, error)
	// FindOpenIntentByUserID returns the latest non-verified intent.
	FindOpenIntentByUserID(db *gorm.DB, userID string) (*models.PaymentIntent, error)
	SaveIntent(db *gorm.DB, intent *models.PaymentIntent) error
	ListIntents(db *gorm.DB, status models.PaymentIntentStatus, limit, offset int) ([]models.PaymentIntent, int64, error)

	CreateTransaction(db *gorm.DB, txn *models.Transaction) error
	ListTransactionsByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Transaction, error)
}

type paymentRepository struct{}

func NewPaymentRepository() PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) CreateIntent(db *gorm.DB, intent *models.PaymentIntent) error {
	return db.Create(intent).Error
}

func (r *paymentRepository) FindIntentByID(db *gorm.DB, id string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := db.First(&intent, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentIntentNotFound
		}
		return nil, err
	}
	return &intent, nil
}

func (r *paymentRepository) FindOpenIntentByUserID(db *gorm.DB, userID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := db.Where("user_id = ? AND status <> ?", userID, models.PaymentIntentVerified).
		Order("created_at DESC").First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentIntentNotFound
		}
		return nil, err
	}
	return &intent, nil
}

func (r *paymentRepository) SaveIntent(db *gorm.DB, intent *models.PaymentIntent) error {
	return db.Save(intent).Error
}

func (r *paymentRepository) ListIntents(db *gorm.DB, status models.PaymentIntentStatus, limit, offset int) ([]models.PaymentIntent, int64, error) {
	query := db.Model(&models.PaymentIntent{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var intents []models.PaymentIntent
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&intents).Error
	return intents, total, err
}

func (r *paymentRepository) CreateTransaction(db *gorm.DB, txn *models.Transaction) error {
	return db.Create(txn).Error
}

func (r *paymentRepository) ListTransactionsByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&txns).Error
	return txns, err
}

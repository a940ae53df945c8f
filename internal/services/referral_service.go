package services

import (
	"context"
	"math"

	"launchboard_backend/internal/exchange"
	"launchboard_backend/internal/logger"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// referralSharePercent of a confirmed payment goes to the referrer's
// available wallet, in the payment's currency.
const referralSharePercent = 10.0

type ReferralStats struct {
	ReferralCode   string             `json:"referralCode"`
	ReferralCount  int64              `json:"referralCount"`
	Earned         map[string]float64 `json:"earned"`
	EarnedTotal    float64            `json:"earnedTotal"`
	TotalCurrency  string             `json:"totalCurrency"`
	Referrals      []models.Referral  `json:"referrals"`
}

type ReferralService interface {
	// Settle credits the referrer of referredUser once their payment of
	// amount/currency is confirmed. Returns true when a credit happened;
	// false when there is no referrer or the pair was already settled.
	Settle(db *gorm.DB, referredUser *models.User, amount float64, currency string) (bool, error)
	Stats(ctx context.Context, db *gorm.DB, userID string, displayCurrency string) (*ReferralStats, error)
}

type referralService struct {
	userRepo     repositories.UserRepository
	referralRepo repositories.ReferralRepository
	paymentRepo  repositories.PaymentRepository
	rates        *exchange.Cache
}

func NewReferralService(
	userRepo repositories.UserRepository,
	referralRepo repositories.ReferralRepository,
	paymentRepo repositories.PaymentRepository,
	rates *exchange.Cache,
) ReferralService {
	return &referralService{
		userRepo:     userRepo,
		referralRepo: referralRepo,
		paymentRepo:  paymentRepo,
		rates:        rates,
	}
}

// Settle is idempotent per (referrer, referred) pair through the
// edge-existence check. Two concurrent completions of the same pending
// payment are not locked against each other; the unique index on the pair is
// the only backstop.
func (s *referralService) Settle(db *gorm.DB, referredUser *models.User, amount float64, currency string) (bool, error) {
	if referredUser.ReferredBy == "" {
		return false, nil
	}

	referrer, err := s.userRepo.FindByReferralCode(db, referredUser.ReferredBy)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.Warn("referral code does not resolve, skipping settlement",
				"code", referredUser.ReferredBy, "referred_user", referredUser.ID)
			return false, nil
		}
		return false, err
	}

	exists, err := s.referralRepo.Exists(db, referrer.ID, referredUser.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	bonus := math.Round(amount*referralSharePercent) / 100

	return true, db.Transaction(func(tx *gorm.DB) error {
		referrer.CreditAvailable(currency, bonus)
		if err := s.userRepo.Save(tx, referrer); err != nil {
			return err
		}
		if err := s.userRepo.IncrementReferralCount(tx, referrer.ID); err != nil {
			return err
		}
		if err := s.paymentRepo.CreateTransaction(tx, &models.Transaction{
			UserID:    referrer.ID,
			Type:      models.TransactionReferralBonus,
			Amount:    bonus,
			Currency:  currency,
			Status:    models.TransactionCompleted,
			Reference: referredUser.ID,
		}); err != nil {
			return err
		}
		return s.referralRepo.Create(tx, &models.Referral{
			ReferrerID:     referrer.ID,
			ReferredUserID: referredUser.ID,
			EarnedAmount:   bonus,
			Currency:       currency,
			Status:         models.ReferralCompleted,
		})
	})
}

func (s *referralService) Stats(ctx context.Context, db *gorm.DB, userID string, displayCurrency string) (*ReferralStats, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("referral", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	referrals, err := s.referralRepo.ListByReferrer(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The edge count is authoritative; the user's counter column is a
	// denormalized copy kept for the leaderboard.
	count, err := s.referralRepo.CountByReferrer(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if displayCurrency == "" {
		displayCurrency = "INR"
	}

	earned := make(map[string]float64)
	for _, ref := range referrals {
		earned[ref.Currency] += ref.EarnedAmount
	}

	total := 0.0
	for currency, amount := range earned {
		rate, err := s.rates.Rate(ctx, currency, displayCurrency)
		if err != nil {
			logger.CtxWarn(ctx, "exchange rate unavailable, skipping currency in total",
				"from", currency, "to", displayCurrency)
			continue
		}
		total += amount * rate
	}

	return &ReferralStats{
		ReferralCode:  user.ReferralCode,
		ReferralCount: count,
		Earned:        earned,
		EarnedTotal:   math.Round(total*100) / 100,
		TotalCurrency: displayCurrency,
		Referrals:     referrals,
	}, nil
}

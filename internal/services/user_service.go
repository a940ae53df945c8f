package services

import (
	"errors"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// LeaderboardEntry is the public projection of a user. Preview accounts show
// rank only; live accounts expose name and country.
type LeaderboardEntry struct {
	Rank            int                    `json:"rank"`
	Name            string                 `json:"name,omitempty"`
	Country         string                 `json:"country,omitempty"`
	Sector          string                 `json:"sector,omitempty"`
	StakeholderType models.StakeholderType `json:"stakeholderType"`
	ReferralCount   int                    `json:"referralCount"`
}

type UserService interface {
	GetByID(db *gorm.DB, id string) (*models.User, error)
	Leaderboard(db *gorm.DB, page, pageSize int) ([]LeaderboardEntry, int64, error)
	Transactions(db *gorm.DB, userID string, page, pageSize int) ([]models.Transaction, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
}

func NewUserService(userRepo repositories.UserRepository, paymentRepo repositories.PaymentRepository) UserService {
	return &userService{userRepo: userRepo, paymentRepo: paymentRepo}
}

func (s *userService) GetByID(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// Leaderboard lists active accounts in signup order. Accounts that opted for
// preview display keep their identity hidden.
func (s *userService) Leaderboard(db *gorm.DB, page, pageSize int) ([]LeaderboardEntry, int64, error) {
	offset := (page - 1) * pageSize

	users, err := s.userRepo.FindActive(db, pageSize, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountActive(db)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entry := LeaderboardEntry{
			Rank:            offset + i + 1,
			StakeholderType: user.StakeholderType,
			ReferralCount:   user.ReferralCount,
		}
		if user.SubscriptionStatus != models.SubscriptionActivePreview {
			entry.Name = user.Name
			entry.Country = user.Country
			entry.Sector = user.Sector
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

// Transactions lists the caller's ledger entries, newest first.
func (s *userService) Transactions(db *gorm.DB, userID string, page, pageSize int) ([]models.Transaction, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	offset := (page - 1) * pageSize
	txns, err := s.paymentRepo.ListTransactionsByUser(db, userID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return txns, nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/services/dto"
	"launchboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// bestPeriods maps the recognition window name to its duration looking back
// from now. Calendar months are approximated with fixed day counts.
var bestPeriods = map[string]time.Duration{
	"hour":      time.Hour,
	"day":       24 * time.Hour,
	"week":      7 * 24 * time.Hour,
	"month":     30 * 24 * time.Hour,
	"quarter":   91 * 24 * time.Hour,
	"half_year": 182 * 24 * time.Hour,
	"year":      365 * 24 * time.Hour,
	"2_years":   2 * 365 * 24 * time.Hour,
	"3_years":   3 * 365 * 24 * time.Hour,
	"5_years":   5 * 365 * 24 * time.Hour,
	"decade":    10 * 365 * 24 * time.Hour,
}

type SuggestionService interface {
	Create(db *gorm.DB, userID *string, req *dto.CreateSuggestionRequest) (*models.Suggestion, error)
	Get(db *gorm.DB, id string) (*models.Suggestion, error)
	List(db *gorm.DB, category string, page, pageSize int) ([]models.Suggestion, int64, error)
	Update(db *gorm.DB, id, userID string, isAdmin bool, req *dto.UpdateSuggestionRequest) (*models.Suggestion, error)
	Delete(db *gorm.DB, id, userID string, isAdmin bool) error

	Vote(db *gorm.DB, suggestionID, userID string) (*models.Suggestion, error)
	Best(db *gorm.DB, period string, limit int) ([]models.Suggestion, error)
	React(db *gorm.DB, suggestionID string, userID, guestSessionID *string, reactionType string) (*models.SuggestionReaction, error)
	Comment(db *gorm.DB, suggestionID string, userID *string, req *dto.CommentRequest) (*models.SuggestionComment, error)
	ListComments(db *gorm.DB, suggestionID string) ([]models.SuggestionComment, error)

	Award(db *gorm.DB, suggestionID string, req *dto.AwardSuggestionRequest) (*models.Suggestion, error)
}

type suggestionService struct {
	suggestionRepo repositories.SuggestionRepository
	userRepo       repositories.UserRepository
	paymentRepo    repositories.PaymentRepository
	now            func() time.Time
}

func NewSuggestionService(
	suggestionRepo repositories.SuggestionRepository,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
) SuggestionService {
	return &suggestionService{
		suggestionRepo: suggestionRepo,
		userRepo:       userRepo,
		paymentRepo:    paymentRepo,
		now:            time.Now,
	}
}

func (s *suggestionService) Create(db *gorm.DB, userID *string, req *dto.CreateSuggestionRequest) (*models.Suggestion, error) {
	if userID == nil && req.GuestName == "" {
		return nil, apperrors.NewBadRequestError("Guest suggestions require a guest name")
	}

	suggestion := &models.Suggestion{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Status:   models.SuggestionOpen,
		UserID:   userID,
	}
	if userID == nil {
		suggestion.GuestName = req.GuestName
		suggestion.GuestContact = req.GuestContact
	}

	if err := s.suggestionRepo.Create(db, suggestion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return suggestion, nil
}

func (s *suggestionService) Get(db *gorm.DB, id string) (*models.Suggestion, error) {
	suggestion, err := s.suggestionRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSuggestionNotFound) {
			return nil, apperrors.NewNotFoundError("suggestion", "Suggestion not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return suggestion, nil
}

func (s *suggestionService) List(db *gorm.DB, category string, page, pageSize int) ([]models.Suggestion, int64, error) {
	offset := (page - 1) * pageSize
	suggestions, total, err := s.suggestionRepo.List(db, category, pageSize, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return suggestions, total, nil
}

func (s *suggestionService) authorize(suggestion *models.Suggestion, userID string, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if suggestion.UserID == nil || *suggestion.UserID != userID {
		return apperrors.NewForbiddenError("You can only modify your own suggestions")
	}
	return nil
}

func (s *suggestionService) Update(db *gorm.DB, id, userID string, isAdmin bool, req *dto.UpdateSuggestionRequest) (*models.Suggestion, error) {
	suggestion, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(suggestion, userID, isAdmin); err != nil {
		return nil, err
	}

	if req.Title != "" {
		suggestion.Title = req.Title
	}
	if req.Content != "" {
		suggestion.Content = req.Content
	}
	if req.Category != "" {
		suggestion.Category = req.Category
	}

	if err := s.suggestionRepo.Save(db, suggestion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return suggestion, nil
}

func (s *suggestionService) Delete(db *gorm.DB, id, userID string, isAdmin bool) error {
	suggestion, err := s.Get(db, id)
	if err != nil {
		return err
	}
	if err := s.authorize(suggestion, userID, isAdmin); err != nil {
		return err
	}

	if err := s.suggestionRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrSuggestionNotFound) {
			return apperrors.NewNotFoundError("suggestion", "Suggestion not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Vote records one vote per (suggestion, user). A second vote from the same
// user is a plain 400.
func (s *suggestionService) Vote(db *gorm.DB, suggestionID, userID string) (*models.Suggestion, error) {
	if _, err := s.Get(db, suggestionID); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.suggestionRepo.CreateVote(tx, &models.SuggestionVote{
			SuggestionID: suggestionID,
			UserID:       userID,
		}); err != nil {
			return err
		}
		return s.suggestionRepo.IncrementVoteCount(tx, suggestionID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyVoted) {
			return nil, apperrors.NewBadRequestError("You have already voted for this suggestion")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.Get(db, suggestionID)
}

func (s *suggestionService) Best(db *gorm.DB, period string, limit int) ([]models.Suggestion, error) {
	window, ok := bestPeriods[period]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Unknown period: %s", period))
	}
	if limit <= 0 {
		limit = 10
	}

	suggestions, err := s.suggestionRepo.FindBest(db, s.now().Add(-window), limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return suggestions, nil
}

// React upserts the caller's reaction: a repeat of the same type is a no-op,
// a different type replaces the previous one.
func (s *suggestionService) React(db *gorm.DB, suggestionID string, userID, guestSessionID *string, reactionType string) (*models.SuggestionReaction, error) {
	if userID == nil && guestSessionID == nil {
		return nil, apperrors.NewBadRequestError("Reactions require a session or a guest session id")
	}
	if _, err := s.Get(db, suggestionID); err != nil {
		return nil, err
	}

	existing, err := s.suggestionRepo.FindReaction(db, suggestionID, userID, guestSessionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if existing != nil {
		if existing.ReactionType == reactionType {
			return existing, nil
		}
		existing.ReactionType = reactionType
		if err := s.suggestionRepo.SaveReaction(db, existing); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return existing, nil
	}

	reaction := &models.SuggestionReaction{
		SuggestionID:   suggestionID,
		UserID:         userID,
		GuestSessionID: guestSessionID,
		ReactionType:   reactionType,
	}
	if err := s.suggestionRepo.SaveReaction(db, reaction); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reaction, nil
}

func (s *suggestionService) Comment(db *gorm.DB, suggestionID string, userID *string, req *dto.CommentRequest) (*models.SuggestionComment, error) {
	if _, err := s.Get(db, suggestionID); err != nil {
		return nil, err
	}

	comment := &models.SuggestionComment{
		SuggestionID: suggestionID,
		UserID:       userID,
		Content:      req.Content,
	}
	if userID == nil {
		comment.GuestName = req.GuestName
	}

	if err := s.suggestionRepo.CreateComment(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}

func (s *suggestionService) ListComments(db *gorm.DB, suggestionID string) ([]models.SuggestionComment, error) {
	if _, err := s.Get(db, suggestionID); err != nil {
		return nil, err
	}
	comments, err := s.suggestionRepo.ListComments(db, suggestionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comments, nil
}

// Award credits the suggestion owner's available wallet and marks the
// suggestion. Guest suggestions can be marked but have no wallet to credit.
func (s *suggestionService) Award(db *gorm.DB, suggestionID string, req *dto.AwardSuggestionRequest) (*models.Suggestion, error) {
	suggestion, err := s.Get(db, suggestionID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		now := s.now()
		suggestion.RewardAmount = req.Amount
		suggestion.RewardCurrency = req.Currency
		suggestion.AwardedAt = &now
		suggestion.Status = models.SuggestionAwarded
		if err := s.suggestionRepo.Save(tx, suggestion); err != nil {
			return err
		}

		if suggestion.UserID == nil {
			return nil
		}

		owner, err := s.userRepo.FindByID(tx, *suggestion.UserID)
		if err != nil {
			return err
		}
		owner.CreditAvailable(req.Currency, req.Amount)
		if err := s.userRepo.Save(tx, owner); err != nil {
			return err
		}
		return s.paymentRepo.CreateTransaction(tx, &models.Transaction{
			UserID:    owner.ID,
			Type:      models.TransactionSuggestionAward,
			Amount:    req.Amount,
			Currency:  req.Currency,
			Status:    models.TransactionCompleted,
			Reference: suggestion.ID,
		})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return suggestion, nil
}

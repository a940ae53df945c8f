package repositories

import (
	"errors"
	"time"

	"launchboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrAlreadyVoted       = errors.New("user has already voted for this suggestion")
)

type SuggestionRepository interface {
	Create(db *gorm.DB, s *models.Suggestion) error
	FindByID(db *gorm.DB, id string) (*models.Suggestion, error)
	List(db *gorm.DB, category string, limit, offset int) ([]models.Suggestion, int64, error)
	Save(db *gorm.DB, s *models.Suggestion) error
	Delete(db *gorm.DB, id string) error

	CreateVote(db *gorm.DB, vote *models.SuggestionVote) error
	IncrementVoteCount(db *gorm.DB, suggestionID string) error
	FindBest(db *gorm.DB, cutoff time.Time, limit int) ([]models.Suggestion, error)

	FindReaction(db *gorm.DB, suggestionID string, userID, guestSessionID *string) (*models.SuggestionReaction, error)
	SaveReaction(db *gorm.DB, reaction *models.SuggestionReaction) error

	CreateComment(db *gorm.DB, comment *models.SuggestionComment) error
	ListComments(db *gorm.DB, suggestionID string) ([]models.SuggestionComment, error)
}

type suggestionRepository struct{}

func NewSuggestionRepository() SuggestionRepository {
	return &suggestionRepository{}
}

func (r *suggestionRepository) Create(db *gorm.DB, s *models.Suggestion) error {
	return db.Create(s).Error
}

func (r *suggestionRepository) FindByID(db *gorm.DB, id string) (*models.Suggestion, error) {
	var s models.Suggestion
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *suggestionRepository) List(db *gorm.DB, category string, limit, offset int) ([]models.Suggestion, int64, error) {
	query := db.Model(&models.Suggestion{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suggestions []models.Suggestion
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&suggestions).Error
	return suggestions, total, err
}

func (r *suggestionRepository) Save(db *gorm.DB, s *models.Suggestion) error {
	return db.Save(s).Error
}

func (r *suggestionRepository) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("suggestion_id = ?", id).Delete(&models.SuggestionVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("suggestion_id = ?", id).Delete(&models.SuggestionReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("suggestion_id = ?", id).Delete(&models.SuggestionComment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Suggestion{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSuggestionNotFound
		}
		return nil
	})
}

// CreateVote inserts the vote only if the (suggestion, user) pair has none
// yet, so the uniqueness check and the insert share the caller's transaction.
func (r *suggestionRepository) CreateVote(db *gorm.DB, vote *models.SuggestionVote) error {
	var count int64
	if err := db.Model(&models.SuggestionVote{}).
		Where("suggestion_id = ? AND user_id = ?", vote.SuggestionID, vote.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyVoted
	}
	return db.Create(vote).Error
}

// IncrementVoteCount bumps vote_count with a floor at zero. Votes are never
// removed, the floor is defensive.
func (r *suggestionRepository) IncrementVoteCount(db *gorm.DB, suggestionID string) error {
	result := db.Model(&models.Suggestion{}).Where("id = ?", suggestionID).
		UpdateColumn("vote_count", gorm.Expr("CASE WHEN vote_count < 0 THEN 1 ELSE vote_count + 1 END"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSuggestionNotFound
	}
	return nil
}

func (r *suggestionRepository) FindBest(db *gorm.DB, cutoff time.Time, limit int) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	err := db.Where("created_at > ?", cutoff).
		Order("vote_count DESC").Limit(limit).Find(&suggestions).Error
	return suggestions, err
}

func (r *suggestionRepository) FindReaction(db *gorm.DB, suggestionID string, userID, guestSessionID *string) (*models.SuggestionReaction, error) {
	query := db.Where("suggestion_id = ?", suggestionID)
	switch {
	case userID != nil:
		query = query.Where("user_id = ?", *userID)
	case guestSessionID != nil:
		query = query.Where("guest_session_id = ?", *guestSessionID)
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var reaction models.SuggestionReaction
	if err := query.First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *suggestionRepository) SaveReaction(db *gorm.DB, reaction *models.SuggestionReaction) error {
	return db.Save(reaction).Error
}

func (r *suggestionRepository) CreateComment(db *gorm.DB, comment *models.SuggestionComment) error {
	return db.Create(comment).Error
}

func (r *suggestionRepository) ListComments(db *gorm.DB, suggestionID string) ([]models.SuggestionComment, error) {
	var comments []models.SuggestionComment
	err := db.Where("suggestion_id = ?", suggestionID).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}

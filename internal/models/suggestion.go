package models

import "time"

// Suggestion is owned either by a registered user (UserID set) or a guest
// (GuestName + GuestContact, no account).
type Suggestion struct {
	BaseModel
	Title    string           `gorm:"not null" json:"title"`
	Content  string           `gorm:"not null" json:"content"`
	Category string           `gorm:"type:varchar(40)" json:"category,omitempty"`
	Status   SuggestionStatus `gorm:"type:varchar(20);default:'open'" json:"status"`

	UserID       *string `gorm:"index" json:"user_id,omitempty"`
	GuestName    string  `json:"guest_name,omitempty"`
	GuestContact string  `json:"guest_contact,omitempty"`

	// Monotonic non-negative counter, floored at zero defensively.
	VoteCount int `gorm:"default:0" json:"vote_count"`

	RewardAmount   float64    `json:"reward_amount,omitempty"`
	RewardCurrency string     `gorm:"type:varchar(3)" json:"reward_currency,omitempty"`
	AwardedAt      *time.Time `json:"awarded_at,omitempty"`

	RecognitionPeriod string     `gorm:"type:varchar(20)" json:"recognition_period,omitempty"`
	RecognitionDate   *time.Time `json:"recognition_date,omitempty"`
}

// SuggestionVote enforces at-most-one-vote-per-user through the unique
// (suggestion, user) index.
type SuggestionVote struct {
	BaseModel
	SuggestionID string `gorm:"not null;index:idx_vote_pair,unique" json:"suggestion_id"`
	UserID       string `gorm:"not null;index:idx_vote_pair,unique" json:"user_id"`
}

// SuggestionReaction is keyed by either a user id or a guest session id.
// Switching reaction type replaces the row.
type SuggestionReaction struct {
	BaseModel
	SuggestionID   string  `gorm:"not null;index" json:"suggestion_id"`
	UserID         *string `gorm:"index" json:"user_id,omitempty"`
	GuestSessionID *string `gorm:"index" json:"guest_session_id,omitempty"`
	ReactionType   string  `gorm:"type:varchar(20);not null" json:"reaction_type"`
}

type SuggestionComment struct {
	BaseModel
	SuggestionID string  `gorm:"not null;index" json:"suggestion_id"`
	UserID       *string `gorm:"index" json:"user_id,omitempty"`
	GuestName    string  `json:"guest_name,omitempty"`
	Content      string  `gorm:"not null" json:"content"`
}

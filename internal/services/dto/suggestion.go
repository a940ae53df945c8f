package dto

type CreateSuggestionRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`
	Content      string `json:"content" validate:"required,min=10"`
	Category     string `json:"category" validate:"omitempty,max=40"`
	GuestName    string `json:"guestName" validate:"omitempty,max=120"`
	GuestContact string `json:"guestContact" validate:"omitempty,max=120"`
}

type UpdateSuggestionRequest struct {
	Title    string `json:"title" validate:"omitempty,min=3,max=200"`
	Content  string `json:"content" validate:"omitempty,min=10"`
	Category string `json:"category" validate:"omitempty,max=40"`
}

type ReactionRequest struct {
	ReactionType string `json:"reactionType" validate:"required,oneof=like celebrate insightful"`
}

type CommentRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=2000"`
	GuestName string `json:"guestName" validate:"omitempty,max=120"`
}

type AwardSuggestionRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,oneof=INR USD"`
}

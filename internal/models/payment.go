package models

import "time"

// PaymentIntent tracks a registration whose payment was not confirmed
// immediately. Lifecycle: pending -> submitted -> verified | failed; failed
// intents may be resubmitted.
type PaymentIntent struct {
	BaseModel
	UserID   string              `gorm:"not null;index" json:"user_id"`
	Status   PaymentIntentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Amount   float64             `json:"amount"`
	Currency string              `gorm:"type:varchar(3)" json:"currency"`
	Provider PaymentProvider     `gorm:"type:varchar(20)" json:"provider"`
	// Transaction reference submitted by the user or gateway.
	PaymentRef string     `gorm:"index" json:"payment_ref,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	FailReason string     `json:"fail_reason,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Transaction is an append-only ledger entry. Rows are never mutated after
// creation.
type Transaction struct {
	BaseModel
	UserID   string            `gorm:"not null;index" json:"user_id"`
	Type     TransactionType   `gorm:"type:varchar(30);not null" json:"type"`
	Amount   float64           `gorm:"not null" json:"amount"`
	Currency string            `gorm:"type:varchar(3);not null" json:"currency"`
	Status   TransactionStatus `gorm:"type:varchar(20);default:'completed'" json:"status"`
	// Free-form reference: payment id, suggestion id, referred user id.
	Reference string `json:"reference,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

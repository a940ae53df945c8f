package models

import (
	"time"

	"gorm.io/datatypes"
)

// Balances keys wallet amounts by currency code ("INR", "USD").
type Balances map[string]float64

type User struct {
	BaseModel
	Name     string  `gorm:"not null" json:"name"`
	Username string  `gorm:"uniqueIndex" json:"username"`
	Email    *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone    *string `gorm:"uniqueIndex" json:"phone,omitempty"`

	PasswordHash string `gorm:"not null" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	Role            string          `gorm:"type:varchar(30);not null" json:"role"`
	StakeholderType StakeholderType `gorm:"type:varchar(20);not null;index" json:"stakeholder_type"`
	Country         string          `json:"country,omitempty"`
	Sector          string          `json:"sector,omitempty"`

	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(20);default:'pending_payment'" json:"subscription_status"`
	DisplayPreference  string             `gorm:"type:varchar(20)" json:"display_preference,omitempty"`

	// PaymentID is unique once set: replay protection for verified payments.
	PaymentID       *string         `gorm:"uniqueIndex" json:"payment_id,omitempty"`
	PaymentProvider PaymentProvider `gorm:"type:varchar(20)" json:"payment_provider,omitempty"`
	PaymentCurrency string          `gorm:"type:varchar(3)" json:"payment_currency,omitempty"`

	ReferralCode  string `gorm:"uniqueIndex;not null" json:"referral_code"`
	ReferredBy    string `gorm:"index" json:"referred_by,omitempty"` // another user's referral code, not an ownership relation
	ReferralCount int    `gorm:"default:0" json:"referral_count"`

	WalletAvailable datatypes.JSONType[Balances] `json:"wallet_available"`
	WalletPending   datatypes.JSONType[Balances] `json:"wallet_pending"`

	// Set when the user reports a platform-caused payment glitch; drives the
	// delay bonus at completion time.
	PaymentGlitchFlaggedAt *time.Time `json:"payment_glitch_flagged_at,omitempty"`
}

// CreditAvailable adds amount to the available balance for currency.
func (u *User) CreditAvailable(currency string, amount float64) {
	balances := u.WalletAvailable.Data()
	if balances == nil {
		balances = Balances{}
	}
	balances[currency] += amount
	u.WalletAvailable = datatypes.NewJSONType(balances)
}

func (u *User) AvailableBalance(currency string) float64 {
	balances := u.WalletAvailable.Data()
	if balances == nil {
		return 0
	}
	return balances[currency]
}

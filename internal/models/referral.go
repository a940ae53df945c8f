package models

// Referral is the edge from referrer to referred user, created at most once
// per pair when the referred user's payment is confirmed.
type Referral struct {
	BaseModel
	ReferrerID     string         `gorm:"not null;index:idx_referral_pair,unique" json:"referrer_id"`
	ReferredUserID string         `gorm:"not null;index:idx_referral_pair,unique" json:"referred_user_id"`
	EarnedAmount   float64        `gorm:"not null" json:"earned_amount"`
	Currency       string         `gorm:"type:varchar(3);not null" json:"currency"`
	Status         ReferralStatus `gorm:"type:varchar(20);default:'completed'" json:"status"`

	Referrer     User `gorm:"foreignKey:ReferrerID" json:"-"`
	ReferredUser User `gorm:"foreignKey:ReferredUserID" json:"-"`
}

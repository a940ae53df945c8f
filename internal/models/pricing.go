package models

// PricingBracket maps a signup-count range to a fixed registration fee for a
// (stakeholder type, currency) pair. Brackets for a pair partition the count
// line into non-overlapping increasing ranges; the highest bracket is
// open-ended (MaxSignups nil).
type PricingBracket struct {
	BaseModel
	StakeholderType StakeholderType `gorm:"type:varchar(20);not null;index:idx_bracket_pair" json:"stakeholder_type"`
	Currency        string          `gorm:"type:varchar(3);not null;index:idx_bracket_pair" json:"currency"`
	MinSignups      int             `gorm:"not null" json:"min_signups"`
	MaxSignups      *int            `json:"max_signups"`
	Amount          float64         `gorm:"not null" json:"amount"`
	Label           string          `json:"label,omitempty"`
}

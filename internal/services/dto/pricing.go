package dto

// PricingQuery is shared by the price and dynamic-stats endpoints; the
// stats endpoint ignores Currency and reports both.
type PricingQuery struct {
	StakeholderType string `form:"stakeholderType" validate:"omitempty,oneof=ecosystem professional"`
	Currency        string `form:"currency" validate:"omitempty,oneof=INR USD"`
}

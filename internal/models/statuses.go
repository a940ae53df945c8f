package models

type StakeholderType string
type SubscriptionStatus string
type PaymentIntentStatus string
type PaymentProvider string
type TransactionType string
type TransactionStatus string
type ReferralStatus string
type SuggestionStatus string

const (
	StakeholderEcosystem    StakeholderType = "ecosystem"
	StakeholderProfessional StakeholderType = "professional"

	SubscriptionPendingPayment SubscriptionStatus = "pending_payment"
	SubscriptionActive         SubscriptionStatus = "active"
	SubscriptionActivePreview  SubscriptionStatus = "active_preview"
	SubscriptionActiveLive     SubscriptionStatus = "active_live"

	PaymentIntentPending   PaymentIntentStatus = "pending"
	PaymentIntentSubmitted PaymentIntentStatus = "submitted"
	PaymentIntentVerified  PaymentIntentStatus = "verified"
	PaymentIntentFailed    PaymentIntentStatus = "failed"

	ProviderCashfree PaymentProvider = "cashfree"
	ProviderPayPal   PaymentProvider = "paypal"
	ProviderNone     PaymentProvider = "none"

	TransactionRegistrationPayment TransactionType = "registration_payment"
	TransactionReferralBonus       TransactionType = "referral_bonus"
	TransactionPaymentDelayBonus   TransactionType = "payment_delay_bonus"
	TransactionSuggestionAward     TransactionType = "suggestion_award"

	TransactionCompleted TransactionStatus = "completed"

	ReferralCompleted ReferralStatus = "completed"

	SuggestionOpen        SuggestionStatus = "open"
	SuggestionUnderReview SuggestionStatus = "under_review"
	SuggestionImplemented SuggestionStatus = "implemented"
	SuggestionRejected    SuggestionStatus = "rejected"
	SuggestionAwarded     SuggestionStatus = "awarded"
)

// subscriptionTransitions is the allowed state machine for a user account.
// Anything not listed is rejected instead of overwriting the field.
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionPendingPayment: {SubscriptionActive, SubscriptionActivePreview, SubscriptionActiveLive},
	SubscriptionActive:         {SubscriptionActivePreview, SubscriptionActiveLive},
	SubscriptionActivePreview:  {SubscriptionActiveLive},
	SubscriptionActiveLive:     {SubscriptionActivePreview},
}

func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s SubscriptionStatus) IsActive() bool {
	return s == SubscriptionActive || s == SubscriptionActivePreview || s == SubscriptionActiveLive
}

// paymentIntentTransitions: pending -> submitted -> verified | failed.
// A failed submission may be resubmitted.
var paymentIntentTransitions = map[PaymentIntentStatus][]PaymentIntentStatus{
	PaymentIntentPending:   {PaymentIntentSubmitted},
	PaymentIntentSubmitted: {PaymentIntentVerified, PaymentIntentFailed},
	PaymentIntentFailed:    {PaymentIntentSubmitted},
}

func (s PaymentIntentStatus) CanTransitionTo(next PaymentIntentStatus) bool {
	for _, allowed := range paymentIntentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentIntentStatus) IsTerminal() bool {
	return s == PaymentIntentVerified
}

// freeRoles register without payment and go straight to active.
var freeRoles = map[string]bool{
	"government": true,
	"ngo":        true,
}

func IsFreeRole(role string) bool {
	return freeRoles[role]
}

// professionalRoles map to the professional pricing table; every other role
// is an ecosystem participant.
var professionalRoles = map[string]bool{
	"student":      true,
	"professional": true,
	"freelancer":   true,
	"jobseeker":    true,
}

func StakeholderForRole(role string) StakeholderType {
	if professionalRoles[role] {
		return StakeholderProfessional
	}
	return StakeholderEcosystem
}

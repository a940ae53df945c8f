package handlers

import (
	"launchboard_backend/internal/services"
	"launchboard_backend/internal/validator"
)

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	Registration *RegistrationHandler
	Pricing      *PricingHandler
	Payment      *PaymentHandler
	Referral     *ReferralHandler
	Suggestion   *SuggestionHandler
	User         *UserHandler
	Blog         *BlogHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Registration: NewRegistrationHandler(base, svc.Registration, svc.User),
		Pricing:      NewPricingHandler(base, svc.Pricing),
		Payment:      NewPaymentHandler(base, svc.Payment),
		Referral:     NewReferralHandler(base, svc.Referral),
		Suggestion:   NewSuggestionHandler(base, svc.Suggestion),
		User:         NewUserHandler(base, svc.User),
		Blog:         NewBlogHandler(base, svc.Blog),
	}
}

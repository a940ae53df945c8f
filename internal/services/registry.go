package services

import (
	"launchboard_backend/internal/email"
	"launchboard_backend/internal/exchange"
	"launchboard_backend/internal/gateways"
	"launchboard_backend/internal/repositories"
)

// ServiceContainer wires every service over the shared repositories. Handlers
// receive this whole container and pick what they need.
type ServiceContainer struct {
	Registration RegistrationService
	Pricing      PricingService
	Payment      PaymentService
	Referral     ReferralService
	Suggestion   SuggestionService
	User         UserService
	Blog         BlogService
}

type Dependencies struct {
	Gateways *gateways.Registry
	Cashfree *gateways.CashfreeGateway
	Rates    *exchange.Cache
	Emails   email.Provider
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	pricingRepo := repositories.NewPricingRepository()
	paymentRepo := repositories.NewPaymentRepository()
	referralRepo := repositories.NewReferralRepository()
	suggestionRepo := repositories.NewSuggestionRepository()
	blogRepo := repositories.NewBlogRepository()

	pricing := NewPricingService(userRepo, pricingRepo)
	referral := NewReferralService(userRepo, referralRepo, paymentRepo, deps.Rates)

	return &ServiceContainer{
		Registration: NewRegistrationService(userRepo, paymentRepo, pricing, deps.Gateways),
		Pricing:      pricing,
		Payment:      NewPaymentService(userRepo, paymentRepo, pricing, referral, deps.Gateways, deps.Cashfree, deps.Emails),
		Referral:     referral,
		Suggestion:   NewSuggestionService(suggestionRepo, userRepo, paymentRepo),
		User:         NewUserService(userRepo, paymentRepo),
		Blog:         NewBlogService(blogRepo),
	}
}

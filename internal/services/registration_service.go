package services

import (
	"context"
	"math"
	"strings"

	"launchboard_backend/internal/auth"
	"launchboard_backend/internal/gateways"
	"launchboard_backend/internal/logger"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/services/dto"
	"launchboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// amountTolerance is the accepted drift between the gateway-reported amount
// and the required registration fee, per currency.
var amountTolerance = map[string]float64{
	"INR": 1.0,
	"USD": 0.50,
}

type RegistrationService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type registrationService struct {
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
	pricing     PricingService
	gateways    *gateways.Registry
}

func NewRegistrationService(
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	pricing PricingService,
	gatewayRegistry *gateways.Registry,
) RegistrationService {
	return &registrationService{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		pricing:     pricing,
		gateways:    gatewayRegistry,
	}
}

// skipsVerification reports whether the submitted payment identifier never
// reaches a gateway: free registrations and deferred payments.
func skipsVerification(provider models.PaymentProvider, paymentID string) bool {
	if provider == models.ProviderNone {
		return true
	}
	return strings.HasPrefix(paymentID, "free_") || strings.HasPrefix(paymentID, "pending_")
}

func statusForDisplayPreference(pref string) models.SubscriptionStatus {
	switch pref {
	case "preview":
		return models.SubscriptionActivePreview
	case "live":
		return models.SubscriptionActiveLive
	default:
		return models.SubscriptionActive
	}
}

// Register runs the registration state machine. Payment verification failure
// is never fatal here: the account is created in pending_payment and the
// payment can be completed later. Only a claimed-verified payment with wrong
// currency/amount (402) or a replayed verified payment id (400) rejects the
// registration outright.
func (s *registrationService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Email == "" && req.Phone == "" {
		return nil, apperrors.NewBadRequestError("Either email or phone is required")
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	stakeholder := models.StakeholderForRole(role)
	provider := models.PaymentProvider(req.PaymentProvider)

	if req.Email != "" {
		if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
			return nil, apperrors.NewConflictError("registration", "Email already registered")
		}
	}
	if req.Phone != "" {
		if _, err := s.userRepo.FindByPhone(db, req.Phone); err == nil {
			return nil, apperrors.NewConflictError("registration", "Phone already registered")
		}
	}

	verified := false
	paymentPending := false
	verifiedCurrency := ""

	if !skipsVerification(provider, req.PaymentID) {
		gw, ok := s.gateways.Get(provider)
		if !ok {
			// Unknown provider degrades like a gateway failure.
			logger.CtxWarn(ctx, "unknown payment provider at registration", "provider", req.PaymentProvider)
		} else {
			result := gw.VerifyPaymentByID(ctx, req.PaymentID)
			if result.Success {
				if err := s.checkVerifiedPayment(db, gw, result, req.Currency, stakeholder, req.PaymentID, ""); err != nil {
					return nil, err
				}
				verified = true
				verifiedCurrency = gw.ExpectedCurrency()
			} else {
				logger.CtxInfo(ctx, "payment not verified at registration, degrading to pending",
					"provider", req.PaymentProvider, "status", result.Status)
			}
		}
	}

	var status models.SubscriptionStatus
	switch {
	case verified:
		status = statusForDisplayPreference(req.DisplayPreference)
	case models.IsFreeRole(role):
		status = models.SubscriptionActive
	default:
		status = models.SubscriptionPendingPayment
		paymentPending = true
	}

	tempPassword, err := auth.HashPassword(auth.GenerateTempPassword())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:               req.Name,
		Username:           auth.GenerateUsername(req.Name),
		Role:               role,
		StakeholderType:    stakeholder,
		Country:            req.Country,
		Sector:             req.Sector,
		SubscriptionStatus: status,
		DisplayPreference:  req.DisplayPreference,
		ReferralCode:       auth.GenerateReferralCode(req.Name),
		ReferredBy:         req.ReferredBy,
		PasswordHash:       tempPassword,
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}
	if verified {
		paymentID := req.PaymentID
		user.PaymentID = &paymentID
		user.PaymentProvider = provider
		user.PaymentCurrency = verifiedCurrency
	}

	if err := s.userRepo.Create(db, user); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrEmailTaken):
			return nil, apperrors.NewConflictError("registration", "Email already registered")
		case apperrors.Is(err, repositories.ErrPhoneTaken):
			return nil, apperrors.NewConflictError("registration", "Phone already registered")
		case apperrors.Is(err, repositories.ErrPaymentIDUsed):
			return nil, apperrors.New(apperrors.CodePaymentReplay, "payment",
				"This payment id has already been used", 400)
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if verified {
		txn := &models.Transaction{
			UserID:    user.ID,
			Type:      models.TransactionRegistrationPayment,
			Amount:    s.requiredAmount(db, stakeholder, verifiedCurrency),
			Currency:  verifiedCurrency,
			Status:    models.TransactionCompleted,
			Reference: req.PaymentID,
		}
		if err := s.paymentRepo.CreateTransaction(db, txn); err != nil {
			return nil, apperrors.InternalError(err)
		}
	} else if paymentPending {
		intent := &models.PaymentIntent{
			UserID:   user.ID,
			Status:   models.PaymentIntentPending,
			Amount:   s.requiredAmount(db, stakeholder, req.Currency),
			Currency: req.Currency,
			Provider: provider,
		}
		// A real-looking payment id that failed verification is kept as the
		// submitted reference for later manual review.
		if req.PaymentID != "" && !skipsVerification(provider, req.PaymentID) {
			intent.Status = models.PaymentIntentSubmitted
			intent.PaymentRef = req.PaymentID
		}
		if err := s.paymentRepo.CreateIntent(db, intent); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	message := "Registration successful"
	if paymentPending {
		message = "Registration successful. Payment is pending; you can complete it any time."
	}

	return &dto.RegisterResponse{
		Success:        true,
		Message:        message,
		UserID:         user.ID,
		ReferralCode:   user.ReferralCode,
		User:           user,
		PaymentPending: paymentPending,
	}, nil
}

// checkVerifiedPayment enforces the three gates for a gateway-confirmed
// payment: currency, amount within tolerance, and replay protection.
// excludeUserID skips the replay check for that user's own payment id.
func (s *registrationService) checkVerifiedPayment(
	db *gorm.DB,
	gw gateways.Gateway,
	result gateways.VerificationResult,
	claimedCurrency string,
	stakeholder models.StakeholderType,
	paymentID string,
	excludeUserID string,
) error {
	expectedCurrency := gw.ExpectedCurrency()

	if claimedCurrency != "" && claimedCurrency != expectedCurrency {
		return apperrors.NewPaymentMismatchError(apperrors.CodeCurrencyMismatch,
			"Payment currency does not match the gateway's settlement currency")
	}
	if result.Currency != "" && result.Currency != expectedCurrency {
		return apperrors.NewPaymentMismatchError(apperrors.CodeCurrencyMismatch,
			"Gateway reported an unexpected settlement currency")
	}

	required := s.requiredAmount(db, stakeholder, expectedCurrency)
	if math.Abs(result.Amount-required) > amountTolerance[expectedCurrency] {
		return apperrors.NewPaymentMismatchError(apperrors.CodeAmountMismatch,
			"Paid amount does not match the required registration fee")
	}

	if existing, err := s.userRepo.FindByPaymentID(db, paymentID); err == nil && existing.ID != excludeUserID {
		return apperrors.New(apperrors.CodePaymentReplay, "payment",
			"This payment id has already been used", 400)
	}

	return nil
}

func (s *registrationService) requiredAmount(db *gorm.DB, st models.StakeholderType, currency string) float64 {
	quote, err := s.pricing.GetCurrentPrice(db, st, currency)
	if err != nil {
		// Pricing must not block registration; use the hardcoded default.
		return defaultAmounts[st][currency]
	}
	return quote.Amount
}

// Login authenticates by email, phone or username.
func (s *registrationService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case req.Email != "":
		user, err = s.userRepo.FindByEmail(db, req.Email)
	case req.Phone != "":
		user, err = s.userRepo.FindByPhone(db, req.Phone)
	case req.Username != "":
		user, err = s.userRepo.FindByUsername(db, req.Username)
	default:
		return nil, apperrors.NewBadRequestError("Email, phone or username is required")
	}
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid credentials", 401)
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid credentials", 401)
	}

	token, err := auth.NewSessionToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{Success: true, SessionToken: token, User: user}, nil
}

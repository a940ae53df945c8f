package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"launchboard_backend/internal/email"
	"launchboard_backend/internal/gateways"
	"launchboard_backend/internal/logger"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/services/dto"
	"launchboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// DelayBonusPercent computes the wallet credit (as a percent of the required
// amount) owed to a user who flagged a platform-caused payment glitch:
// 20 + 20 per elapsed day (platform-delay credit) plus a goodwill credit that
// starts at 30 and decays by 5 per day. One function serves both the
// pending-status display and the completion application so the two paths
// cannot drift.
func DelayBonusPercent(flaggedAt, now time.Time) float64 {
	delayDays := int(now.Sub(flaggedAt).Hours() / 24)
	if delayDays < 0 {
		delayDays = 0
	}

	platformCredit := 20.0 + 20.0*float64(delayDays)
	goodwillCredit := 30.0 - 5.0*float64(delayDays)
	if goodwillCredit < 0 {
		goodwillCredit = 0
	}
	return platformCredit + goodwillCredit
}

type PaymentService interface {
	UpdatePayment(ctx context.Context, db *gorm.DB, req *dto.UpdatePaymentRequest) (*dto.UpdatePaymentResponse, error)
	CompletePending(ctx context.Context, db *gorm.DB, req *dto.CompletePendingRequest) (*dto.CompletePendingResponse, error)
	PendingStatus(db *gorm.DB, userID string) (*dto.PendingStatusResponse, error)
	ReportGlitch(db *gorm.DB, userID string) error
	HandleCashfreeWebhook(ctx context.Context, timestamp string, body []byte, signature string) error
	ListIntents(db *gorm.DB, status models.PaymentIntentStatus, page, pageSize int) ([]models.PaymentIntent, int64, error)
	VerifyIntent(ctx context.Context, db *gorm.DB, intentID string, req *dto.VerifyIntentRequest) (*models.PaymentIntent, error)
}

type paymentService struct {
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
	pricing     PricingService
	referrals   ReferralService
	gateways    *gateways.Registry
	cashfree    *gateways.CashfreeGateway
	emails      email.Provider
	now         func() time.Time
}

func NewPaymentService(
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	pricing PricingService,
	referrals ReferralService,
	gatewayRegistry *gateways.Registry,
	cashfree *gateways.CashfreeGateway,
	emails email.Provider,
) PaymentService {
	return &paymentService{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		pricing:     pricing,
		referrals:   referrals,
		gateways:    gatewayRegistry,
		cashfree:    cashfree,
		emails:      emails,
		now:         time.Now,
	}
}

func (s *paymentService) requiredAmount(db *gorm.DB, st models.StakeholderType, currency string) float64 {
	quote, err := s.pricing.GetCurrentPrice(db, st, currency)
	if err != nil {
		// Pricing must not block registration; use the hardcoded default.
		return defaultAmounts[st][currency]
	}
	return quote.Amount
}

// verifyForUser runs gateway verification plus the currency/amount/replay
// gates for an existing user, and on success moves the account to active and
// writes the payment ledger entry. Returns the settled amount and currency.
func (s *paymentService) verifyForUser(ctx context.Context, db *gorm.DB, user *models.User, paymentID string, provider models.PaymentProvider) (float64, string, error) {
	gw, ok := s.gateways.Get(provider)
	if !ok {
		return 0, "", apperrors.NewBadRequestError("Unknown payment provider: " + string(provider))
	}

	result := gw.VerifyPaymentByID(ctx, paymentID)
	if !result.Success {
		// A gateway/infra failure is not a payment decision; the account
		// stays pending and the client can retry once the gateway is back.
		if result.Status == gateways.StatusVerificationError {
			return 0, "", apperrors.NewGatewayUnavailableError(
				"Payment could not be verified with the gateway")
		}
		return 0, "", apperrors.New(apperrors.CodePaymentRequired, "payment",
			fmt.Sprintf("Payment is not confirmed by the gateway (status: %s)", result.Status), 402)
	}

	currency := gw.ExpectedCurrency()
	if result.Currency != "" && result.Currency != currency {
		return 0, "", apperrors.NewPaymentMismatchError(apperrors.CodeCurrencyMismatch,
			"Gateway reported an unexpected settlement currency")
	}

	required := s.requiredAmount(db, user.StakeholderType, currency)
	if math.Abs(result.Amount-required) > amountTolerance[currency] {
		return 0, "", apperrors.NewPaymentMismatchError(apperrors.CodeAmountMismatch,
			"Paid amount does not match the required registration fee")
	}

	if existing, err := s.userRepo.FindByPaymentID(db, paymentID); err == nil && existing.ID != user.ID {
		return 0, "", apperrors.New(apperrors.CodePaymentReplay, "payment",
			"This payment id has already been used", 400)
	}

	target := statusForDisplayPreference(user.DisplayPreference)
	if !user.SubscriptionStatus.CanTransitionTo(target) {
		return 0, "", apperrors.New(apperrors.CodeInvalidStatus, "payment",
			fmt.Sprintf("Cannot activate an account in state %s", user.SubscriptionStatus), 400)
	}

	user.PaymentID = &paymentID
	user.PaymentProvider = provider
	user.PaymentCurrency = currency
	user.SubscriptionStatus = target
	if err := s.userRepo.Save(db, user); err != nil {
		return 0, "", apperrors.InternalError(err)
	}

	if err := s.paymentRepo.CreateTransaction(db, &models.Transaction{
		UserID:    user.ID,
		Type:      models.TransactionRegistrationPayment,
		Amount:    required,
		Currency:  currency,
		Status:    models.TransactionCompleted,
		Reference: paymentID,
	}); err != nil {
		return 0, "", apperrors.InternalError(err)
	}

	// Close the open intent if one exists.
	if intent, err := s.paymentRepo.FindOpenIntentByUserID(db, user.ID); err == nil {
		if intent.Status == models.PaymentIntentPending {
			intent.Status = models.PaymentIntentSubmitted
		}
		if intent.Status.CanTransitionTo(models.PaymentIntentVerified) {
			now := s.now()
			intent.Status = models.PaymentIntentVerified
			intent.PaymentRef = paymentID
			intent.VerifiedAt = &now
			if err := s.paymentRepo.SaveIntent(db, intent); err != nil {
				return 0, "", apperrors.InternalError(err)
			}
		}
	}

	return required, currency, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, db *gorm.DB, req *dto.UpdatePaymentRequest) (*dto.UpdatePaymentResponse, error) {
	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if _, _, err := s.verifyForUser(ctx, db, user, req.PaymentID, models.PaymentProvider(req.PaymentProvider)); err != nil {
		return nil, err
	}

	return &dto.UpdatePaymentResponse{
		Success:            true,
		Message:            "Payment verified",
		SubscriptionStatus: user.SubscriptionStatus,
	}, nil
}

// CompletePending is the settlement path: on top of verification it credits
// the referrer (once per pair) and applies the delay bonus for flagged
// glitches.
func (s *paymentService) CompletePending(ctx context.Context, db *gorm.DB, req *dto.CompletePendingRequest) (*dto.CompletePendingResponse, error) {
	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	amount, currency, err := s.verifyForUser(ctx, db, user, req.PaymentID, models.PaymentProvider(req.PaymentProvider))
	if err != nil {
		return nil, err
	}

	settled, err := s.referrals.Settle(db, user, amount, currency)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CompletePendingResponse{
		Success:            true,
		Message:            "Payment completed",
		SubscriptionStatus: user.SubscriptionStatus,
		ReferralSettled:    settled,
	}

	if user.PaymentGlitchFlaggedAt != nil {
		percent := DelayBonusPercent(*user.PaymentGlitchFlaggedAt, s.now())
		bonus := math.Round(amount*percent) / 100

		user.CreditAvailable(currency, bonus)
		user.PaymentGlitchFlaggedAt = nil
		if err := s.userRepo.Save(db, user); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := s.paymentRepo.CreateTransaction(db, &models.Transaction{
			UserID:    user.ID,
			Type:      models.TransactionPaymentDelayBonus,
			Amount:    bonus,
			Currency:  currency,
			Status:    models.TransactionCompleted,
			Reference: req.PaymentID,
		}); err != nil {
			return nil, apperrors.InternalError(err)
		}

		resp.DelayBonusPercent = percent
		resp.DelayBonusAmount = bonus
	}

	return resp, nil
}

func (s *paymentService) PendingStatus(db *gorm.DB, userID string) (*dto.PendingStatusResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	intent, err := s.paymentRepo.FindOpenIntentByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentIntentNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "No pending payment for this user")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PendingStatusResponse{
		Status:          intent.Status,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		GlitchFlaggedAt: user.PaymentGlitchFlaggedAt,
	}

	// Same shared function as CompletePending: the preview must match what
	// will actually be credited.
	if user.PaymentGlitchFlaggedAt != nil {
		percent := DelayBonusPercent(*user.PaymentGlitchFlaggedAt, s.now())
		resp.DelayBonusPercent = percent
		resp.DelayBonusAmount = math.Round(intent.Amount*percent) / 100
	}

	return resp, nil
}

func (s *paymentService) ReportGlitch(db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("payment", "User not found")
		}
		return apperrors.InternalError(err)
	}

	if user.SubscriptionStatus.IsActive() {
		return apperrors.NewBadRequestError("Account is already active; there is no pending payment to flag")
	}

	// First flag wins; re-reporting must not reset the clock.
	if user.PaymentGlitchFlaggedAt != nil {
		return nil
	}

	now := s.now()
	user.PaymentGlitchFlaggedAt = &now
	if err := s.userRepo.Save(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// HandleCashfreeWebhook verifies the signature and alerts the admin. State
// mutation happens only on the explicit verify-by-id path, so replayed
// webhooks are harmless.
func (s *paymentService) HandleCashfreeWebhook(ctx context.Context, timestamp string, body []byte, signature string) error {
	if !s.cashfree.VerifyWebhookSignature(timestamp, body, signature) {
		return apperrors.NewUnauthorizedError("Invalid webhook signature")
	}

	if err := s.emails.SendAdminAlert("Cashfree webhook received",
		fmt.Sprintf("Received at %s:\n\n%s", s.now().Format(time.RFC3339), string(body))); err != nil {
		// Alert failure must not make the gateway retry forever.
		logger.CtxWithError(ctx, "failed to send webhook admin alert", err)
	}
	return nil
}

func (s *paymentService) ListIntents(db *gorm.DB, status models.PaymentIntentStatus, page, pageSize int) ([]models.PaymentIntent, int64, error) {
	offset := (page - 1) * pageSize
	return s.paymentRepo.ListIntents(db, status, pageSize, offset)
}

// VerifyIntent is the admin's manual action on a submitted intent. Approval
// is a completion of the pending payment and settles the referral like
// CompletePending does.
func (s *paymentService) VerifyIntent(ctx context.Context, db *gorm.DB, intentID string, req *dto.VerifyIntentRequest) (*models.PaymentIntent, error) {
	intent, err := s.paymentRepo.FindIntentByID(db, intentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentIntentNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "Payment intent not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if intent.Status.IsTerminal() {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, "payment",
			"Intent is already verified", 400)
	}

	if intent.Status == models.PaymentIntentPending && req.PaymentRef != "" {
		intent.Status = models.PaymentIntentSubmitted
		intent.PaymentRef = req.PaymentRef
	}

	target := models.PaymentIntentFailed
	if req.Approve {
		target = models.PaymentIntentVerified
	}
	if !intent.Status.CanTransitionTo(target) {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, "payment",
			fmt.Sprintf("Intent in state %s cannot move to %s", intent.Status, target), 400)
	}

	intent.Status = target
	if !req.Approve {
		intent.FailReason = req.FailReason
		if err := s.paymentRepo.SaveIntent(db, intent); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return intent, nil
	}

	now := s.now()
	intent.VerifiedAt = &now
	if err := s.paymentRepo.SaveIntent(db, intent); err != nil {
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(db, intent.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	activated := statusForDisplayPreference(user.DisplayPreference)
	if user.SubscriptionStatus.CanTransitionTo(activated) {
		user.SubscriptionStatus = activated
		if intent.PaymentRef != "" {
			ref := intent.PaymentRef
			user.PaymentID = &ref
			user.PaymentProvider = intent.Provider
			user.PaymentCurrency = intent.Currency
		}
		if err := s.userRepo.Save(db, user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.paymentRepo.CreateTransaction(db, &models.Transaction{
		UserID:    user.ID,
		Type:      models.TransactionRegistrationPayment,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
		Status:    models.TransactionCompleted,
		Reference: intent.PaymentRef,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.referrals.Settle(db, user, intent.Amount, intent.Currency); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.emails.SendAdminAlert("Payment intent verified",
		fmt.Sprintf("Intent %s for user %s verified manually.", intent.ID, user.ID)); err != nil {
		logger.CtxWithError(ctx, "failed to send verification alert", err)
	}

	return intent, nil
}

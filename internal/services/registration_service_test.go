package services

import (
	"context"
	"testing"

	"launchboard_backend/internal/gateways"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/services/dto"
	"launchboard_backend/internal/testutil"
	"launchboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRegistrationService(registry *gateways.Registry) RegistrationService {
	userRepo := repositories.NewUserRepository()
	paymentRepo := repositories.NewPaymentRepository()
	pricing := NewPricingService(userRepo, repositories.NewPricingRepository())
	return NewRegistrationService(userRepo, paymentRepo, pricing, registry)
}

func registerRequest(mutate func(*dto.RegisterRequest)) *dto.RegisterRequest {
	req := &dto.RegisterRequest{
		Name:            "Asha Rao",
		Email:           "asha@startup.test",
		Role:            "startup",
		Currency:        "INR",
		PaymentProvider: "none",
	}
	if mutate != nil {
		mutate(req)
	}
	return req
}

func appError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr
}

func TestRegister_FreeRoleActivatesImmediately(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newRegistrationService(gateways.NewRegistry())

	resp, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.Role = "government"
	}))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.PaymentPending)
	assert.Equal(t, models.SubscriptionActive, resp.User.SubscriptionStatus)
	assert.NotEmpty(t, resp.ReferralCode)
	assert.Nil(t, resp.User.PaymentID)
}

func TestRegister_PaidRoleWithoutPaymentIsPending(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newRegistrationService(gateways.NewRegistry())

	resp, err := svc.Register(context.Background(), db, registerRequest(nil))
	require.NoError(t, err)

	assert.True(t, resp.PaymentPending)
	assert.Equal(t, models.SubscriptionPendingPayment, resp.User.SubscriptionStatus)

	intent, err := repositories.NewPaymentRepository().FindOpenIntentByUserID(db, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentIntentPending, intent.Status)
	assert.Equal(t, 999.0, intent.Amount)
	assert.Equal(t, "INR", intent.Currency)
}

func TestRegister_RequiresEmailOrPhone(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newRegistrationService(gateways.NewRegistry())

	_, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.Email = ""
		r.Phone = ""
	}))
	require.Error(t, err)
	assert.Equal(t, 400, appError(t, err).HTTPCode)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newRegistrationService(gateways.NewRegistry())

	_, err := svc.Register(context.Background(), db, registerRequest(nil))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.Name = "Someone Else"
	}))
	require.Error(t, err)
	appErr := appError(t, err)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "Email already registered")
}

func TestRegister_VerifiedPaymentActivates(t *testing.T) {
	db := testutil.NewTestDB(t)
	registry := gateways.NewRegistry(paidGateway(models.ProviderCashfree, "INR", 999))
	svc := newRegistrationService(registry)

	resp, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.PaymentProvider = "cashfree"
		r.PaymentID = "order_abc123"
	}))
	require.NoError(t, err)

	assert.False(t, resp.PaymentPending)
	assert.Equal(t, models.SubscriptionActive, resp.User.SubscriptionStatus)
	require.NotNil(t, resp.User.PaymentID)
	assert.Equal(t, "order_abc123", *resp.User.PaymentID)

	var txns []models.Transaction
	require.NoError(t, db.Where("user_id = ?", resp.UserID).Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionRegistrationPayment, txns[0].Type)
	assert.Equal(t, 999.0, txns[0].Amount)
}

func TestRegister_VerificationFailureDegradesToPending(t *testing.T) {
	db := testutil.NewTestDB(t)
	registry := gateways.NewRegistry(failedGateway(models.ProviderCashfree, "INR"))
	svc := newRegistrationService(registry)

	resp, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.PaymentProvider = "cashfree"
		r.PaymentID = "order_unpaid"
	}))
	require.NoError(t, err)

	assert.True(t, resp.PaymentPending)
	assert.Equal(t, models.SubscriptionPendingPayment, resp.User.SubscriptionStatus)
	assert.Nil(t, resp.User.PaymentID)

	// The failed id is kept on the intent for manual review.
	intent, err := repositories.NewPaymentRepository().FindOpenIntentByUserID(db, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentIntentSubmitted, intent.Status)
	assert.Equal(t, "order_unpaid", intent.PaymentRef)
}

func TestRegister_CurrencyMismatchIs402(t *testing.T) {
	db := testutil.NewTestDB(t)
	registry := gateways.NewRegistry(paidGateway(models.ProviderPayPal, "USD", 14.99))
	svc := newRegistrationService(registry)

	// PayPal settles in USD; claiming INR on a verified PayPal payment is a
	// hard mismatch, not a degradable failure.
	_, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.PaymentProvider = "paypal"
		r.PaymentID = "PAY-123"
		r.Currency = "INR"
	}))
	require.Error(t, err)

	appErr := appError(t, err)
	assert.Equal(t, 402, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeCurrencyMismatch, appErr.Code)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "CURRENCY_MISMATCH", details["code"])
}

func TestRegister_AmountMismatchIs402(t *testing.T) {
	db := testutil.NewTestDB(t)
	registry := gateways.NewRegistry(paidGateway(models.ProviderCashfree, "INR", 500))
	svc := newRegistrationService(registry)

	_, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.PaymentProvider = "cashfree"
		r.PaymentID = "order_short"
	}))
	require.Error(t, err)

	appErr := appError(t, err)
	assert.Equal(t, 402, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeAmountMismatch, appErr.Code)
}

func TestRegister_AmountWithinToleranceAccepted(t *testing.T) {
	db := testutil.NewTestDB(t)
	registry := gateways.NewRegistry(paidGateway(models.ProviderCashfree, "INR", 998.50))
	svc := newRegistrationService(registry)

	resp, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.PaymentProvider = "cashfree"
		r.PaymentID = "order_offbyhalf"
	}))
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, resp.User.SubscriptionStatus)
}

func TestRegister_ReplayedPaymentIDRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	registry := gateways.NewRegistry(paidGateway(models.ProviderCashfree, "INR", 999))
	svc := newRegistrationService(registry)

	usedID := "order_used"
	createTestUser(t, db, func(u *models.User) {
		u.PaymentID = &usedID
	})

	_, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.PaymentProvider = "cashfree"
		r.PaymentID = usedID
	}))
	require.Error(t, err)

	appErr := appError(t, err)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodePaymentReplay, appErr.Code)
}

func TestRegister_PaymentIDGuardedAtInsert(t *testing.T) {
	db := testutil.NewTestDB(t)

	usedID := "order_insert_race"
	createTestUser(t, db, func(u *models.User) {
		u.PaymentID = &usedID
	})

	err := repositories.NewUserRepository().Create(db, &models.User{
		Name:               "Late Arrival",
		Username:           "latearrival",
		Role:               "startup",
		StakeholderType:    models.StakeholderEcosystem,
		SubscriptionStatus: models.SubscriptionActive,
		ReferralCode:       "LATE-000001",
		PasswordHash:       "x",
		PaymentID:          &usedID,
	})
	require.ErrorIs(t, err, repositories.ErrPaymentIDUsed)
}

func TestRegister_DisplayPreferencePreview(t *testing.T) {
	db := testutil.NewTestDB(t)
	registry := gateways.NewRegistry(paidGateway(models.ProviderCashfree, "INR", 999))
	svc := newRegistrationService(registry)

	resp, err := svc.Register(context.Background(), db, registerRequest(func(r *dto.RegisterRequest) {
		r.PaymentProvider = "cashfree"
		r.PaymentID = "order_preview"
		r.DisplayPreference = "preview"
	}))
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActivePreview, resp.User.SubscriptionStatus)
}

func TestLogin_ByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newRegistrationService(gateways.NewRegistry())

	seedLoginUser(t, db, "login@test.com", "s3cret-pass")

	resp, err := svc.Login(db, &dto.LoginRequest{Email: "login@test.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newRegistrationService(gateways.NewRegistry())

	seedLoginUser(t, db, "login2@test.com", "s3cret-pass")

	_, err := svc.Login(db, &dto.LoginRequest{Email: "login2@test.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, 401, appError(t, err).HTTPCode)
}

func seedLoginUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	return createTestUser(t, db, func(u *models.User) {
		u.Email = &email
		hash, err := hashForTest(password)
		require.NoError(t, err)
		u.PasswordHash = hash
	})
}

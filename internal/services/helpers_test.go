package services

import (
	"context"
	"fmt"
	"os"
	"testing"

	"launchboard_backend/internal/auth"
	"launchboard_backend/internal/gateways"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"

	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	auth.InitSession("test-session-secret", 60)
	os.Exit(m.Run())
}

func hashForTest(password string) (string, error) {
	return auth.HashPassword(password)
}

// fakeGateway returns a canned verification result.
type fakeGateway struct {
	provider models.PaymentProvider
	currency string
	result   gateways.VerificationResult
}

func (g *fakeGateway) Provider() models.PaymentProvider { return g.provider }
func (g *fakeGateway) ExpectedCurrency() string         { return g.currency }
func (g *fakeGateway) VerifyPaymentByID(ctx context.Context, paymentID string) gateways.VerificationResult {
	return g.result
}

func paidGateway(provider models.PaymentProvider, currency string, amount float64) *fakeGateway {
	return &fakeGateway{
		provider: provider,
		currency: currency,
		result: gateways.VerificationResult{
			Success:  true,
			Status:   gateways.StatusPaid,
			Amount:   amount,
			Currency: currency,
		},
	}
}

func failedGateway(provider models.PaymentProvider, currency string) *fakeGateway {
	return &fakeGateway{
		provider: provider,
		currency: currency,
		result:   gateways.VerificationResult{Success: false, Status: gateways.StatusFailed},
	}
}

// errorGateway simulates an unreachable or misconfigured processor.
func errorGateway(provider models.PaymentProvider, currency string) *fakeGateway {
	return &fakeGateway{
		provider: provider,
		currency: currency,
		result:   gateways.VerificationResult{Success: false, Status: gateways.StatusVerificationError},
	}
}

var testUserSeq int

// createTestUser inserts a user directly, bypassing the registration flow.
func createTestUser(t *testing.T, db *gorm.DB, mutate func(*models.User)) *models.User {
	t.Helper()

	testUserSeq++
	email := fmt.Sprintf("user%d@test.com", testUserSeq)
	user := &models.User{
		Name:               fmt.Sprintf("Test User %d", testUserSeq),
		Username:           fmt.Sprintf("testuser%d", testUserSeq),
		Email:              &email,
		Role:               "startup",
		StakeholderType:    models.StakeholderEcosystem,
		SubscriptionStatus: models.SubscriptionActive,
		ReferralCode:       fmt.Sprintf("TEST-%06d", testUserSeq),
		PasswordHash:       "x",
	}
	if mutate != nil {
		mutate(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// seedTestBrackets installs a small pricing ladder for one stakeholder type.
func seedTestBrackets(t *testing.T, db *gorm.DB, st models.StakeholderType, currency string, ladder [][2]float64) {
	t.Helper()

	repo := repositories.NewPricingRepository()
	for _, step := range ladder {
		bracket := &models.PricingBracket{
			StakeholderType: st,
			Currency:        currency,
			MinSignups:      int(step[0]),
			Amount:          step[1],
		}
		if err := repo.Create(db, bracket); err != nil {
			t.Fatalf("failed to seed bracket: %v", err)
		}
	}
}

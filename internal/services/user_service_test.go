package services

import (
	"testing"
	"time"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboard_RanksActiveUsersOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(), repositories.NewPaymentRepository())

	createTestUser(t, db, func(u *models.User) {
		u.Name = "First Active"
	})
	createTestUser(t, db, func(u *models.User) {
		u.Name = "Still Pending"
		u.SubscriptionStatus = models.SubscriptionPendingPayment
	})
	createTestUser(t, db, func(u *models.User) {
		u.Name = "Second Active"
		u.SubscriptionStatus = models.SubscriptionActiveLive
	})

	entries, total, err := svc.Leaderboard(db, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "First Active", entries[0].Name)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Second Active", entries[1].Name)
}

func TestLeaderboard_PreviewHidesIdentity(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(), repositories.NewPaymentRepository())

	createTestUser(t, db, func(u *models.User) {
		u.Name = "Hidden Founder"
		u.Country = "India"
		u.SubscriptionStatus = models.SubscriptionActivePreview
	})

	entries, _, err := svc.Leaderboard(db, 1, 20)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Empty(t, entries[0].Name)
	assert.Empty(t, entries[0].Country)
}

func TestLeaderboard_PaginationKeepsGlobalRank(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(), repositories.NewPaymentRepository())

	for i := 0; i < 5; i++ {
		createTestUser(t, db, nil)
	}

	entries, total, err := svc.Leaderboard(db, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(5), total)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Rank)
	assert.Equal(t, 4, entries[1].Rank)
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(), repositories.NewPaymentRepository())

	_, err := svc.GetByID(db, "missing-id")
	require.Error(t, err)
	assert.Equal(t, 404, appError(t, err).HTTPCode)
}

func TestTransactions_NewestFirstAndScopedToUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(), repositories.NewPaymentRepository())
	paymentRepo := repositories.NewPaymentRepository()

	user := createTestUser(t, db, nil)
	other := createTestUser(t, db, nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := &models.Transaction{
		UserID:   user.ID,
		Type:     models.TransactionRegistrationPayment,
		Amount:   999,
		Currency: "INR",
		Status:   models.TransactionCompleted,
	}
	older.CreatedAt = base
	require.NoError(t, paymentRepo.CreateTransaction(db, older))

	newer := &models.Transaction{
		UserID:   user.ID,
		Type:     models.TransactionReferralBonus,
		Amount:   99.9,
		Currency: "INR",
		Status:   models.TransactionCompleted,
	}
	newer.CreatedAt = base.Add(time.Hour)
	require.NoError(t, paymentRepo.CreateTransaction(db, newer))

	foreign := &models.Transaction{
		UserID:   other.ID,
		Type:     models.TransactionRegistrationPayment,
		Amount:   14.99,
		Currency: "USD",
		Status:   models.TransactionCompleted,
	}
	require.NoError(t, paymentRepo.CreateTransaction(db, foreign))

	txns, err := svc.Transactions(db, user.ID, 1, 20)
	require.NoError(t, err)

	require.Len(t, txns, 2)
	assert.Equal(t, newer.ID, txns[0].ID)
	assert.Equal(t, older.ID, txns[1].ID)
}

func TestTransactions_UnknownUserIs404(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(), repositories.NewPaymentRepository())

	_, err := svc.Transactions(db, "missing-id", 1, 20)
	require.Error(t, err)
	assert.Equal(t, 404, appError(t, err).HTTPCode)
}

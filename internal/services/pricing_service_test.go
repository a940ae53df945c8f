package services

import (
	"testing"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricingService(t *testing.T) PricingService {
	t.Helper()
	return NewPricingService(repositories.NewUserRepository(), repositories.NewPricingRepository())
}

func TestGetCurrentPrice_SelectsBracketForNextRegistrant(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPricingService(t)

	seedTestBrackets(t, db, models.StakeholderEcosystem, "INR", [][2]float64{
		{1, 999},
		{4, 1999},
		{10, 3999},
	})

	// Three existing ecosystem signups. The next registrant is position 4,
	// which already falls into the second bracket.
	for i := 0; i < 3; i++ {
		createTestUser(t, db, nil)
	}

	quote, err := svc.GetCurrentPrice(db, models.StakeholderEcosystem, "INR")
	require.NoError(t, err)
	assert.Equal(t, 1999.0, quote.Amount)
	assert.Equal(t, int64(3), quote.SignupCount)
	require.NotNil(t, quote.Bracket)
	assert.Equal(t, 4, quote.Bracket.MinSignups)
}

func TestGetCurrentPrice_StaysInBracketBelowBoundary(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPricingService(t)

	seedTestBrackets(t, db, models.StakeholderEcosystem, "INR", [][2]float64{
		{1, 999},
		{5, 1999},
	})

	// Three signups, next registrant is position 4: still the first bracket.
	for i := 0; i < 3; i++ {
		createTestUser(t, db, nil)
	}

	quote, err := svc.GetCurrentPrice(db, models.StakeholderEcosystem, "INR")
	require.NoError(t, err)
	assert.Equal(t, 999.0, quote.Amount)
}

func TestGetCurrentPrice_ProfessionalBaseline(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPricingService(t)

	seedTestBrackets(t, db, models.StakeholderProfessional, "INR", [][2]float64{
		{1, 99},
		{50, 199},
		{100, 499},
	})

	// No professional users in the table, but the baseline of 67 puts the
	// next registrant at position 68, inside the second bracket.
	quote, err := svc.GetCurrentPrice(db, models.StakeholderProfessional, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(67), quote.SignupCount)
	assert.Equal(t, 199.0, quote.Amount)
}

func TestGetCurrentPrice_DefaultsWithoutBrackets(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPricingService(t)

	quote, err := svc.GetCurrentPrice(db, models.StakeholderEcosystem, "USD")
	require.NoError(t, err)
	assert.Equal(t, 14.99, quote.Amount)
	assert.Nil(t, quote.Bracket)

	quote, err = svc.GetCurrentPrice(db, models.StakeholderProfessional, "INR")
	require.NoError(t, err)
	assert.Equal(t, 99.0, quote.Amount)
}

func TestGetCurrentPrice_NeverDecreasesAsSignupsGrow(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPricingService(t)

	seedTestBrackets(t, db, models.StakeholderEcosystem, "INR", [][2]float64{
		{1, 999},
		{3, 1999},
		{6, 3999},
	})

	previous := 0.0
	for i := 0; i < 8; i++ {
		quote, err := svc.GetCurrentPrice(db, models.StakeholderEcosystem, "INR")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, quote.Amount, previous, "price dropped after %d signups", i)
		previous = quote.Amount
		createTestUser(t, db, nil)
	}
}

func TestGetDynamicStats_SpotsAndNextTier(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPricingService(t)

	for _, currency := range []string{"INR", "USD"} {
		seedTestBrackets(t, db, models.StakeholderEcosystem, currency, [][2]float64{
			{1, 999},
			{10, 1999},
		})
	}

	for i := 0; i < 4; i++ {
		createTestUser(t, db, nil)
	}

	stats, err := svc.GetDynamicStats(db, models.StakeholderEcosystem)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.SignupCount)

	tier := stats.ByCurrency["INR"]
	assert.Equal(t, 999.0, tier.CurrentAmount)
	require.NotNil(t, tier.NextAmount)
	assert.Equal(t, 1999.0, *tier.NextAmount)
	// Next tier starts at 10; the next registrant is position 5.
	require.NotNil(t, tier.SpotsRemaining)
	assert.Equal(t, 5, *tier.SpotsRemaining)
	require.NotNil(t, tier.EstimatedDays)
	assert.Equal(t, 1, *tier.EstimatedDays)
}

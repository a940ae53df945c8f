package services

import (
	"testing"
	"time"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/services/dto"
	"launchboard_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSuggestionService() *suggestionService {
	svc := NewSuggestionService(
		repositories.NewSuggestionRepository(),
		repositories.NewUserRepository(),
		repositories.NewPaymentRepository(),
	)
	return svc.(*suggestionService)
}

func createSuggestion(t *testing.T, db *gorm.DB, svc SuggestionService, userID *string, title string) *models.Suggestion {
	t.Helper()

	suggestion, err := svc.Create(db, userID, &dto.CreateSuggestionRequest{
		Title:     title,
		Content:   "Please add dark mode to the leaderboard pages.",
		GuestName: "Guest Author",
	})
	require.NoError(t, err)
	return suggestion
}

func TestCreateSuggestion_GuestRequiresName(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	_, err := svc.Create(db, nil, &dto.CreateSuggestionRequest{
		Title:   "No name",
		Content: "Guest suggestion without a name should fail.",
	})
	require.Error(t, err)
	assert.Equal(t, 400, appError(t, err).HTTPCode)
}

func TestCreateSuggestion_UserOwned(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	user := createTestUser(t, db, nil)
	suggestion := createSuggestion(t, db, svc, &user.ID, "User idea")

	require.NotNil(t, suggestion.UserID)
	assert.Equal(t, user.ID, *suggestion.UserID)
	// Ownership is exclusive: user suggestions carry no guest identity.
	assert.Empty(t, suggestion.GuestName)
	assert.Equal(t, models.SuggestionOpen, suggestion.Status)
}

func TestVote_OnlyCountsOncePerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	voter := createTestUser(t, db, nil)
	suggestion := createSuggestion(t, db, svc, nil, "Votable idea")

	updated, err := svc.Vote(db, suggestion.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.VoteCount)

	_, err = svc.Vote(db, suggestion.ID, voter.ID)
	require.Error(t, err)
	assert.Equal(t, 400, appError(t, err).HTTPCode)

	fresh, err := svc.Get(db, suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.VoteCount)
}

func TestVote_DistinctUsersAccumulate(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	suggestion := createSuggestion(t, db, svc, nil, "Popular idea")

	for i := 0; i < 3; i++ {
		voter := createTestUser(t, db, nil)
		_, err := svc.Vote(db, suggestion.ID, voter.ID)
		require.NoError(t, err)
	}

	fresh, err := svc.Get(db, suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.VoteCount)
}

func TestBest_WindowExcludesOldSuggestions(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	recent := createSuggestion(t, db, svc, nil, "Two days old")
	require.NoError(t, db.Model(&models.Suggestion{}).Where("id = ?", recent.ID).
		UpdateColumn("created_at", now.Add(-2*24*time.Hour)).Error)
	require.NoError(t, db.Model(&models.Suggestion{}).Where("id = ?", recent.ID).
		UpdateColumn("vote_count", 2).Error)

	old := createSuggestion(t, db, svc, nil, "Eight days old")
	require.NoError(t, db.Model(&models.Suggestion{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", now.Add(-8*24*time.Hour)).Error)
	require.NoError(t, db.Model(&models.Suggestion{}).Where("id = ?", old.ID).
		UpdateColumn("vote_count", 50).Error)

	top := createSuggestion(t, db, svc, nil, "Fresh and popular")
	require.NoError(t, db.Model(&models.Suggestion{}).Where("id = ?", top.ID).
		UpdateColumn("created_at", now.Add(-1*time.Hour)).Error)
	require.NoError(t, db.Model(&models.Suggestion{}).Where("id = ?", top.ID).
		UpdateColumn("vote_count", 10).Error)

	best, err := svc.Best(db, "week", 10)
	require.NoError(t, err)

	require.Len(t, best, 2)
	assert.Equal(t, "Fresh and popular", best[0].Title)
	assert.Equal(t, "Two days old", best[1].Title)
}

func TestBest_UnknownPeriodRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	_, err := svc.Best(db, "fortnight", 10)
	require.Error(t, err)
	assert.Equal(t, 400, appError(t, err).HTTPCode)
}

func TestReact_SwitchReplacesPreviousReaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	user := createTestUser(t, db, nil)
	suggestion := createSuggestion(t, db, svc, nil, "Reactable idea")

	first, err := svc.React(db, suggestion.ID, &user.ID, nil, "like")
	require.NoError(t, err)
	assert.Equal(t, "like", first.ReactionType)

	second, err := svc.React(db, suggestion.ID, &user.ID, nil, "celebrate")
	require.NoError(t, err)
	assert.Equal(t, "celebrate", second.ReactionType)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.SuggestionReaction{}).
		Where("suggestion_id = ?", suggestion.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReact_GuestSession(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	suggestion := createSuggestion(t, db, svc, nil, "Guest reactable")
	guest := "guest-session-1"

	reaction, err := svc.React(db, suggestion.ID, nil, &guest, "insightful")
	require.NoError(t, err)
	require.NotNil(t, reaction.GuestSessionID)
	assert.Equal(t, guest, *reaction.GuestSessionID)

	_, err = svc.React(db, suggestion.ID, nil, nil, "like")
	require.Error(t, err)
	assert.Equal(t, 400, appError(t, err).HTTPCode)
}

func TestUpdateSuggestion_OnlyOwnerOrAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	owner := createTestUser(t, db, nil)
	other := createTestUser(t, db, nil)
	suggestion := createSuggestion(t, db, svc, &owner.ID, "Editable idea")

	_, err := svc.Update(db, suggestion.ID, other.ID, false, &dto.UpdateSuggestionRequest{Title: "Hijacked"})
	require.Error(t, err)
	assert.Equal(t, 403, appError(t, err).HTTPCode)

	updated, err := svc.Update(db, suggestion.ID, owner.ID, false, &dto.UpdateSuggestionRequest{Title: "Edited by owner"})
	require.NoError(t, err)
	assert.Equal(t, "Edited by owner", updated.Title)

	updated, err = svc.Update(db, suggestion.ID, other.ID, true, &dto.UpdateSuggestionRequest{Title: "Edited by admin"})
	require.NoError(t, err)
	assert.Equal(t, "Edited by admin", updated.Title)
}

func TestDeleteSuggestion_CascadesChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	owner := createTestUser(t, db, nil)
	voter := createTestUser(t, db, nil)
	suggestion := createSuggestion(t, db, svc, &owner.ID, "Doomed idea")

	_, err := svc.Vote(db, suggestion.ID, voter.ID)
	require.NoError(t, err)
	_, err = svc.Comment(db, suggestion.ID, &voter.ID, &dto.CommentRequest{Content: "agreed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(db, suggestion.ID, owner.ID, false))

	_, err = svc.Get(db, suggestion.ID)
	require.Error(t, err)
	assert.Equal(t, 404, appError(t, err).HTTPCode)

	var votes, comments int64
	require.NoError(t, db.Model(&models.SuggestionVote{}).Where("suggestion_id = ?", suggestion.ID).Count(&votes).Error)
	require.NoError(t, db.Model(&models.SuggestionComment{}).Where("suggestion_id = ?", suggestion.ID).Count(&comments).Error)
	assert.Zero(t, votes)
	assert.Zero(t, comments)
}

func TestAward_CreditsOwnerWallet(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	owner := createTestUser(t, db, nil)
	suggestion := createSuggestion(t, db, svc, &owner.ID, "Award-worthy idea")

	awarded, err := svc.Award(db, suggestion.ID, &dto.AwardSuggestionRequest{Amount: 500, Currency: "INR"})
	require.NoError(t, err)

	assert.Equal(t, models.SuggestionAwarded, awarded.Status)
	assert.Equal(t, 500.0, awarded.RewardAmount)
	require.NotNil(t, awarded.AwardedAt)

	fresh, err := repositories.NewUserRepository().FindByID(db, owner.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, fresh.AvailableBalance("INR"), 0.001)

	var txns []models.Transaction
	require.NoError(t, db.Where("user_id = ? AND type = ?", owner.ID, models.TransactionSuggestionAward).Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, suggestion.ID, txns[0].Reference)
}

func TestAward_RepeatCreditsAgain(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	owner := createTestUser(t, db, nil)
	suggestion := createSuggestion(t, db, svc, &owner.ID, "Twice-awarded idea")

	_, err := svc.Award(db, suggestion.ID, &dto.AwardSuggestionRequest{Amount: 500, Currency: "INR"})
	require.NoError(t, err)
	_, err = svc.Award(db, suggestion.ID, &dto.AwardSuggestionRequest{Amount: 500, Currency: "INR"})
	require.NoError(t, err)

	// Awarding is not guarded against repeats; each award credits the wallet.
	fresh, err := repositories.NewUserRepository().FindByID(db, owner.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, fresh.AvailableBalance("INR"), 0.001)
}

func TestAward_GuestSuggestionMarksWithoutCredit(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSuggestionService()

	suggestion := createSuggestion(t, db, svc, nil, "Guest-owned idea")

	awarded, err := svc.Award(db, suggestion.ID, &dto.AwardSuggestionRequest{Amount: 250, Currency: "INR"})
	require.NoError(t, err)
	assert.Equal(t, models.SuggestionAwarded, awarded.Status)

	var txns int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txns).Error)
	assert.Zero(t, txns)
}

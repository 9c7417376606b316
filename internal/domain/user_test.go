package domain

import (
	"testing"
	"time"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserDomain() UserDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewOAuth2Repository(),
		repository.NewRefreshTokenRepository(),
		repository.NewCampaignRepository(&testutil.MockRedisClient{}),
		repository.NewCampaignMemberRepository(),
		repository.NewTransactionRepository(),
	)
}

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newUserDomain()

	resp, err := domain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Username, resp.Username)
	require.Equal(t, testutil.User1.Email, resp.Email)
}

func Test_userDomain_UpdateMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newUserDomain()

	resp, err := domain.UpdateMe(ctx, &model.UpdateMeRequest{
		Username:  "user1_renamed",
		AvatarURL: "https://cdn.example.com/avatar.png",
	})
	require.NoError(t, err)
	require.Equal(t, "user1_renamed", resp.User.Username)
	require.Equal(t, "https://cdn.example.com/avatar.png", resp.User.AvatarURL)

	// Taking an existing username is refused.
	_, err = domain.UpdateMe(ctx, &model.UpdateMeRequest{Username: testutil.User2.Username})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// Keeping the current username is not a conflict.
	_, err = domain.UpdateMe(ctx, &model.UpdateMeRequest{Username: "user1_renamed"})
	require.NoError(t, err)
}

func Test_userDomain_GetJoinedCampaigns(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	memberRepo := repository.NewCampaignMemberRepository()
	err := memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     testutil.User1.ID,
		CampaignID: testutil.PublicCampaign.ID,
		Status:     entity.MemberParticipant,
	})
	require.NoError(t, err)

	err = memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     testutil.User1.ID,
		CampaignID: testutil.PrivateCampaign.ID,
		Status:     entity.MemberWaitlist,
	})
	require.NoError(t, err)

	domain := newUserDomain()

	resp, err := domain.GetJoinedCampaigns(ctx, &model.GetJoinedCampaignsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Campaigns, 2)

	statusSet := map[string]string{}
	for _, joined := range resp.Campaigns {
		statusSet[joined.Campaign.ID] = joined.Status
	}
	require.Equal(t, string(entity.MemberParticipant), statusSet[testutil.PublicCampaign.ID])
	require.Equal(t, string(entity.MemberWaitlist), statusSet[testutil.PrivateCampaign.ID])
}

func Test_userDomain_GetMyTransactions(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	transactionRepo := repository.NewTransactionRepository()
	err := transactionRepo.Create(ctx, &entity.Transaction{
		Base:   entity.Base{ID: "tx1"},
		UserID: testutil.User1.ID,
		Type:   entity.TransactionEarning,
		Amount: 40,
	})
	require.NoError(t, err)

	err = transactionRepo.Create(ctx, &entity.Transaction{
		Base:   entity.Base{ID: "tx2"},
		UserID: testutil.User1.ID,
		Type:   entity.TransactionEarning,
		Amount: 60,
	})
	require.NoError(t, err)

	// A deposit of another user must not leak into the total.
	err = transactionRepo.Create(ctx, &entity.Transaction{
		Base:   entity.Base{ID: "tx3"},
		UserID: testutil.User2.ID,
		Type:   entity.TransactionEarning,
		Amount: 1000,
	})
	require.NoError(t, err)

	domain := newUserDomain()

	resp, err := domain.GetMyTransactions(ctx, &model.GetMyTransactionsRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 2)
	require.Equal(t, float64(100), resp.TotalEarning)
}

func Test_userDomain_GetUsers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newUserDomain()

	resp, err := domain.GetUsers(ctx, &model.GetUsersRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Users, 3)

	resp, err = domain.GetUsers(ctx, &model.GetUsersRequest{Q: "user1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, testutil.User1.Username, resp.Users[0].Username)

	resp, err = domain.GetUsers(ctx, &model.GetUsersRequest{Role: "admin", Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, testutil.Admin.Username, resp.Users[0].Username)

	_, err = domain.GetUsers(ctx, &model.GetUsersRequest{Role: "superuser", Limit: 10})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_userDomain_UpdateUser_DeactivateRevokesTokens(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	refreshTokenRepo := repository.NewRefreshTokenRepository()
	err := refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     testutil.User1.ID,
		Family:     "family",
		Counter:    0,
		Expiration: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	domain := newUserDomain()

	isActive := false
	resp, err := domain.UpdateUser(ctx, &model.UpdateUserRequest{
		ID:       testutil.User1.ID,
		IsActive: &isActive,
	})
	require.NoError(t, err)
	require.False(t, resp.User.IsActive)

	_, err = refreshTokenRepo.Get(ctx, "family")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_userDomain_DeleteUser(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newUserDomain()

	// Deleting yourself is refused.
	_, err := domain.DeleteUser(ctx, &model.DeleteUserRequest{ID: testutil.Admin.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.DeleteUser(ctx, &model.DeleteUserRequest{ID: testutil.User2.ID})
	require.NoError(t, err)

	var user entity.User
	err = xcontext.DB(ctx).Where("id = ?", testutil.User2.ID).First(&user).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The row is really gone, so the username and email are free again.
	authDomain := NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository(),
		repository.NewOAuth2Repository(),
		nil,
	)
	_, err = authDomain.Signup(ctx, &model.SignupRequest{
		Username: testutil.User2.Username,
		Email:    testutil.User2.Email,
		Password: "super-secret",
	})
	require.NoError(t, err)
}

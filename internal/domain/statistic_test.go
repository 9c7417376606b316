package domain

import (
	"testing"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetAnalytics(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	memberRepo := repository.NewCampaignMemberRepository()
	for _, userID := range []string{testutil.User1.ID, testutil.User2.ID} {
		err := memberRepo.Upsert(ctx, &entity.CampaignMember{
			UserID:     userID,
			CampaignID: testutil.PublicCampaign.ID,
			Status:     entity.MemberParticipant,
		})
		require.NoError(t, err)
	}

	// A waitlisted member is not a participant.
	err := memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     testutil.User1.ID,
		CampaignID: testutil.PrivateCampaign.ID,
		Status:     entity.MemberWaitlist,
	})
	require.NoError(t, err)

	transactionRepo := repository.NewTransactionRepository()
	err = transactionRepo.Create(ctx, &entity.Transaction{
		Base:   entity.Base{ID: "tx1"},
		UserID: testutil.User1.ID,
		Type:   entity.TransactionEarning,
		Amount: 70,
	})
	require.NoError(t, err)

	err = transactionRepo.Create(ctx, &entity.Transaction{
		Base:   entity.Base{ID: "tx2"},
		UserID: testutil.User2.ID,
		Type:   entity.TransactionDeposit,
		Amount: 500,
	})
	require.NoError(t, err)

	domain := NewStatisticDomain(
		repository.NewUserRepository(),
		repository.NewCampaignRepository(&testutil.MockRedisClient{}),
		memberRepo,
		repository.NewPostRepository(),
		transactionRepo,
	)

	resp, err := domain.GetAnalytics(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.TotalUsers)
	require.Equal(t, int64(3), resp.ActiveUsers)
	require.Equal(t, int64(3), resp.TotalCampaigns)
	require.Equal(t, int64(2), resp.TotalPosts)
	require.Equal(t, int64(2), resp.TotalParticipants)
	require.Equal(t, float64(70), resp.TotalEarning)
	require.Equal(t, float64(500), resp.TotalDeposit)

	require.NotEmpty(t, resp.TopCampaigns)
	require.Equal(t, testutil.PublicCampaign.ID, resp.TopCampaigns[0].Campaign.ID)
	require.Equal(t, int64(2), resp.TopCampaigns[0].Participants)
}

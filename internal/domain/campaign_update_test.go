package domain

import (
	"testing"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newCampaignUpdateDomain() CampaignUpdateDomain {
	return NewCampaignUpdateDomain(
		repository.NewCampaignUpdateRepository(),
		repository.NewCampaignRepository(&testutil.MockRedisClient{}),
		repository.NewUserRepository(),
		repository.NewCampaignMemberRepository(),
	)
}

func Test_campaignUpdateDomain_CreateAndGet(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignUpdateDomain()

	resp, err := domain.CreateCampaignUpdate(ctx, &model.CreateCampaignUpdateRequest{
		CampaignID: testutil.PublicCampaign.ID,
		Title:      "Week 1 recap",
		Content:    "We crossed 1M views.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	_, err = domain.CreateCampaignUpdate(ctx, &model.CreateCampaignUpdateRequest{
		CampaignID: testutil.PublicCampaign.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	updates, err := domain.GetCampaignUpdates(ctx, &model.GetCampaignUpdatesRequest{
		CampaignID: testutil.PublicCampaign.ID,
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, updates.Updates, 1)
	require.Equal(t, "Week 1 recap", updates.Updates[0].Title)
	require.Equal(t, testutil.Admin.Username, updates.Updates[0].Author.Username)
}

func Test_campaignUpdateDomain_PrivateCampaign(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignUpdateDomain()

	_, err := domain.CreateCampaignUpdate(ctx, &model.CreateCampaignUpdateRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		Title:      "Insiders only",
	})
	require.NoError(t, err)

	// A user who did not join cannot read updates of a private campaign.
	outsiderCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.GetCampaignUpdates(outsiderCtx, &model.GetCampaignUpdatesRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		Limit:      10,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// A waitlisted member cannot either.
	memberRepo := repository.NewCampaignMemberRepository()
	err = memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     testutil.User1.ID,
		CampaignID: testutil.PrivateCampaign.ID,
		Status:     entity.MemberWaitlist,
	})
	require.NoError(t, err)

	_, err = domain.GetCampaignUpdates(outsiderCtx, &model.GetCampaignUpdatesRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		Limit:      10,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// An approved participant can.
	err = memberRepo.Approve(ctx, testutil.User1.ID, testutil.PrivateCampaign.ID)
	require.NoError(t, err)

	updates, err := domain.GetCampaignUpdates(outsiderCtx, &model.GetCampaignUpdatesRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, updates.Updates, 1)
}

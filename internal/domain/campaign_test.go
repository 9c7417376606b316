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

func newCampaignDomain() CampaignDomain {
	return NewCampaignDomain(
		repository.NewCampaignRepository(&testutil.MockRedisClient{}),
		repository.NewCampaignMemberRepository(),
		repository.NewUserRepository(),
	)
}

func Test_campaignDomain_JoinCampaign_Public(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	resp, err := domain.JoinCampaign(ctx, &model.JoinCampaignRequest{
		CampaignID: testutil.PublicCampaign.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.MemberParticipant), resp.Status)

	// Joining again changes nothing.
	resp, err = domain.JoinCampaign(ctx, &model.JoinCampaignRequest{
		CampaignID: testutil.PublicCampaign.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.MemberParticipant), resp.Status)
}

func Test_campaignDomain_JoinCampaign_PrivateAndApprove(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	// Joining a private campaign puts the user on the waitlist.
	resp, err := domain.JoinCampaign(ctx, &model.JoinCampaignRequest{
		CampaignID: testutil.PrivateCampaign.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.MemberWaitlist), resp.Status)

	_, err = domain.ApproveCampaignMember(ctx, &model.ApproveCampaignMemberRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		UserID:     testutil.User1.ID,
	})
	require.NoError(t, err)

	// A repeated join after approval must not kick the member back to the
	// waitlist.
	resp, err = domain.JoinCampaign(ctx, &model.JoinCampaignRequest{
		CampaignID: testutil.PrivateCampaign.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.MemberParticipant), resp.Status)

	// Approving twice fails because the member is no longer waitlisted.
	_, err = domain.ApproveCampaignMember(ctx, &model.ApproveCampaignMemberRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		UserID:     testutil.User1.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_campaignDomain_JoinCampaign_Ended(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	_, err := domain.JoinCampaign(ctx, &model.JoinCampaignRequest{
		CampaignID: testutil.EndedCampaign.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_campaignDomain_ApproveCampaignMember_NotJoined(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	_, err := domain.ApproveCampaignMember(ctx, &model.ApproveCampaignMemberRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		UserID:     testutil.User2.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
	require.Equal(t, "Not found a waitlisted member to approve", err.Error())
}

func Test_campaignDomain_GetCampaignMembers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	memberRepo := repository.NewCampaignMemberRepository()
	err := memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     testutil.User1.ID,
		CampaignID: testutil.PrivateCampaign.ID,
		Status:     entity.MemberParticipant,
	})
	require.NoError(t, err)

	err = memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     testutil.User2.ID,
		CampaignID: testutil.PrivateCampaign.ID,
		Status:     entity.MemberWaitlist,
	})
	require.NoError(t, err)

	domain := newCampaignDomain()

	resp, err := domain.GetCampaignMembers(ctx, &model.GetCampaignMembersRequest{
		CampaignID: testutil.PrivateCampaign.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Members, 2)

	// Only the waitlist when a status is given.
	resp, err = domain.GetCampaignMembers(ctx, &model.GetCampaignMembersRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		Status:     string(entity.MemberWaitlist),
	})
	require.NoError(t, err)
	require.Len(t, resp.Members, 1)
	require.Equal(t, testutil.User2.Username, resp.Members[0].User.Username)

	_, err = domain.GetCampaignMembers(ctx, &model.GetCampaignMembersRequest{
		CampaignID: testutil.PrivateCampaign.ID,
		Status:     "banned",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.GetCampaignMembers(ctx, &model.GetCampaignMembersRequest{
		CampaignID: "not-exist",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_campaignDomain_GetCampaigns_HidePrivate(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	resp, err := domain.GetCampaigns(ctx, &model.GetCampaignsRequest{Limit: 50})
	require.NoError(t, err)
	for _, campaign := range resp.Campaigns {
		require.NotEqual(t, testutil.PrivateCampaign.ID, campaign.ID)
	}

	// Admins see private campaigns too.
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	resp, err = domain.GetCampaigns(adminCtx, &model.GetCampaignsRequest{Limit: 50})
	require.NoError(t, err)

	found := false
	for _, campaign := range resp.Campaigns {
		if campaign.ID == testutil.PrivateCampaign.ID {
			found = true
		}
	}
	require.True(t, found)
}

func Test_campaignDomain_GetCampaign_ParticipantCount(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	_, err := domain.JoinCampaign(ctx, &model.JoinCampaignRequest{
		CampaignID: testutil.PublicCampaign.ID,
	})
	require.NoError(t, err)

	resp, err := domain.GetCampaign(ctx, &model.GetCampaignRequest{ID: testutil.PublicCampaign.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.ParticipantCount)
	require.Equal(t, string(entity.MemberParticipant), resp.MemberStatus)
}

func Test_campaignDomain_CreateCampaign(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	resp, err := domain.CreateCampaign(ctx, &model.CreateCampaignRequest{
		Name:     "Fresh Drop",
		Type:     "UGC",
		Category: "Music",
		Budget:   500,
		Channels: []model.Channel{{Name: "general", Type: "chat"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	// A new campaign always starts in the Soon status.
	created, err := domain.GetCampaign(ctx, &model.GetCampaignRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.CampaignSoon), created.Status)

	// The name is unique.
	_, err = domain.CreateCampaign(ctx, &model.CreateCampaignRequest{
		Name:     "Fresh Drop",
		Type:     "UGC",
		Category: "Music",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	_, err = domain.CreateCampaign(ctx, &model.CreateCampaignRequest{
		Name:     "Bad Type",
		Type:     "NotAType",
		Category: "Music",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_campaignDomain_UpdateCampaign_SkipUnparsableNumber(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	// An unparsable budget is skipped while the rest of the payload still
	// applies.
	resp, err := domain.UpdateCampaign(ctx, &model.UpdateCampaignRequest{
		ID:        testutil.PublicCampaign.ID,
		Budget:    "not-a-number",
		MinPayout: "25.5",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.PublicCampaign.Budget, resp.Campaign.Budget)
	require.Equal(t, 25.5, resp.Campaign.MinPayout)
}

func Test_campaignDomain_UpdateCampaign_Status(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	resp, err := domain.UpdateCampaign(ctx, &model.UpdateCampaignRequest{
		ID:     testutil.PublicCampaign.ID,
		Status: "Paused",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.CampaignPaused), resp.Campaign.Status)

	_, err = domain.UpdateCampaign(ctx, &model.UpdateCampaignRequest{
		ID:     testutil.PublicCampaign.ID,
		Status: "NotAStatus",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_campaignDomain_DeleteCampaign(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newCampaignDomain()

	_, err := domain.DeleteCampaign(ctx, &model.DeleteCampaignRequest{
		ID: testutil.PublicCampaign.ID,
	})
	require.NoError(t, err)

	_, err = domain.GetCampaign(ctx, &model.GetCampaignRequest{ID: testutil.PublicCampaign.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	// The unique name is reusable after the delete.
	_, err = domain.CreateCampaign(ctx, &model.CreateCampaignRequest{
		Name:     testutil.PublicCampaign.Name,
		Type:     string(entity.CampaignClipping),
		Category: string(entity.CategoryMusic),
	})
	require.NoError(t, err)
}

package domain

import (
	"context"
	"testing"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newChatDomain() ChatDomain {
	return NewChatDomain(
		repository.NewChatMessageRepository(),
		repository.NewCampaignRepository(&testutil.MockRedisClient{}),
		repository.NewUserRepository(),
		repository.NewCampaignMemberRepository(),
		&testutil.MockRedisClient{},
	)
}

func Test_chatDomain_GetMessages(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	memberRepo := repository.NewCampaignMemberRepository()
	err := memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     testutil.User1.ID,
		CampaignID: testutil.PublicCampaign.ID,
		Status:     entity.MemberParticipant,
	})
	require.NoError(t, err)

	messageRepo := repository.NewChatMessageRepository()
	for i, content := range []string{"first", "second", "third"} {
		err := messageRepo.Create(ctx, &entity.ChatMessage{
			ID:         int64(i + 1),
			CampaignID: testutil.PublicCampaign.ID,
			Channel:    "general",
			AuthorID:   testutil.User1.ID,
			Content:    content,
		})
		require.NoError(t, err)
	}

	domain := NewChatDomain(
		messageRepo,
		repository.NewCampaignRepository(&testutil.MockRedisClient{}),
		repository.NewUserRepository(),
		memberRepo,
		&testutil.MockRedisClient{
			SCardFunc: func(ctx context.Context, key string) (uint64, error) {
				return 2, nil
			},
		},
	)

	// Messages come back newest first.
	resp, err := domain.GetMessages(ctx, &model.GetMessagesRequest{
		CampaignID: testutil.PublicCampaign.ID,
		Channel:    "general",
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 3)
	require.Equal(t, "third", resp.Messages[0].Content)
	require.Equal(t, testutil.User1.Username, resp.Messages[0].Author.Username)
	require.Equal(t, uint64(2), resp.OnlineCount)

	// The cursor excludes the message it points at.
	resp, err = domain.GetMessages(ctx, &model.GetMessagesRequest{
		CampaignID: testutil.PublicCampaign.ID,
		Channel:    "general",
		Before:     3,
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
	require.Equal(t, "second", resp.Messages[0].Content)
}

func Test_chatDomain_GetMessages_Permission(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newChatDomain()

	var errx errorx.Error

	// An unknown channel name.
	_, err := domain.GetMessages(ctx, &model.GetMessagesRequest{
		CampaignID: testutil.PublicCampaign.ID,
		Channel:    "nope",
		Limit:      10,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	// A user who did not join the campaign.
	_, err = domain.GetMessages(ctx, &model.GetMessagesRequest{
		CampaignID: testutil.PublicCampaign.ID,
		Channel:    "general",
		Limit:      10,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

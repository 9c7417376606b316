package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/reelify-app/backend/internal/common"
	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/ws"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/reelify-app/backend/pkg/xredis"
	"gorm.io/gorm"
)

type ChatDomain interface {
	ServeChannel(context.Context, *model.ServeChannelRequest) (*model.ServeChannelResponse, error)
	GetMessages(context.Context, *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
}

type chatDomain struct {
	hub            *ws.Hub
	messageRepo    repository.ChatMessageRepository
	campaignRepo   repository.CampaignRepository
	userRepo       repository.UserRepository
	redisClient    xredis.Client
	memberVerifier *common.CampaignMemberVerifier
}

func NewChatDomain(
	messageRepo repository.ChatMessageRepository,
	campaignRepo repository.CampaignRepository,
	userRepo repository.UserRepository,
	memberRepo repository.CampaignMemberRepository,
	redisClient xredis.Client,
) ChatDomain {
	d := &chatDomain{
		hub:            ws.NewHub(),
		messageRepo:    messageRepo,
		campaignRepo:   campaignRepo,
		userRepo:       userRepo,
		redisClient:    redisClient,
		memberVerifier: common.NewCampaignMemberVerifier(userRepo, memberRepo),
	}

	go d.hub.Run()
	return d
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (d *chatDomain) ServeChannel(
	ctx context.Context, req *model.ServeChannelRequest,
) (*model.ServeChannelResponse, error) {
	campaign, channel, err := d.verifyChannel(ctx, req.CampaignID, req.Channel)
	if err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upgrade the connection: %v", err)
		return nil, errorx.Unknown
	}

	channelKey := channelKey(campaign.ID, channel.Name)
	client := ws.NewClient(conn, channelKey)
	d.hub.Register(client)
	defer d.hub.Unregister(client)

	onlineKey := common.RedisKeyChannelOnline(campaign.ID, channel.Name)
	if err := d.redisClient.SAdd(ctx, onlineKey, user.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot track online member: %v", err)
	}
	defer func() {
		if err := d.redisClient.SRem(ctx, onlineKey, user.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot untrack online member: %v", err)
		}
	}()

	for raw := range client.R {
		content := string(raw)
		if content == "" {
			continue
		}

		message := &entity.ChatMessage{
			ID:         xcontext.SnowFlake(ctx).Generate().Int64(),
			CampaignID: campaign.ID,
			Channel:    channel.Name,
			AuthorID:   user.ID,
			Content:    content,
		}

		if err := d.messageRepo.Create(ctx, message); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot persist chat message: %v", err)
			continue
		}

		b, err := json.Marshal(model.ConvertChatMessage(message, user))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal chat message: %v", err)
			continue
		}

		d.hub.BroadcastByChannel(channelKey, b)
	}

	// The response was already carried over the websocket.
	return nil, nil
}

func (d *chatDomain) GetMessages(
	ctx context.Context, req *model.GetMessagesRequest,
) (*model.GetMessagesResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	campaign, channel, err := d.verifyChannel(ctx, req.CampaignID, req.Channel)
	if err != nil {
		return nil, err
	}

	records, err := d.messageRepo.GetList(ctx, campaign.ID, channel.Name, req.Before, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat messages: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	for _, record := range records {
		authorIDs = append(authorIDs, record.AuthorID)
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	authorSet := map[string]*entity.User{}
	for i := range authors {
		authorSet[authors[i].ID] = &authors[i]
	}

	messages := []model.ChatMessage{}
	for _, record := range records {
		record := record
		messages = append(messages, model.ConvertChatMessage(&record, authorSet[record.AuthorID]))
	}

	onlineCount, err := d.redisClient.SCard(ctx, common.RedisKeyChannelOnline(campaign.ID, channel.Name))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count online members: %v", err)
	}

	return &model.GetMessagesResponse{Messages: messages, OnlineCount: onlineCount}, nil
}

func (d *chatDomain) verifyChannel(
	ctx context.Context, campaignID, channelName string,
) (*entity.Campaign, *entity.Channel, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, nil, errorx.Unknown
	}

	var channel *entity.Channel
	for i := range campaign.Channels {
		if campaign.Channels[i].Name == channelName {
			channel = &campaign.Channels[i]
			break
		}
	}

	if channel == nil {
		return nil, nil, errorx.New(errorx.NotFound, "Not found channel %s", channelName)
	}

	if err := d.memberVerifier.Verify(ctx, campaign.ID); err != nil {
		return nil, nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return campaign, channel, nil
}

func channelKey(campaignID, channel string) string {
	return fmt.Sprintf("%s/%s", campaignID, channel)
}

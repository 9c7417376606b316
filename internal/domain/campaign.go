package domain

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/enum"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CampaignDomain interface {
	GetCampaigns(context.Context, *model.GetCampaignsRequest) (*model.GetCampaignsResponse, error)
	GetCampaign(context.Context, *model.GetCampaignRequest) (*model.GetCampaignResponse, error)
	JoinCampaign(context.Context, *model.JoinCampaignRequest) (*model.JoinCampaignResponse, error)
	CreateCampaign(context.Context, *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)
	UpdateCampaign(context.Context, *model.UpdateCampaignRequest) (*model.UpdateCampaignResponse, error)
	DeleteCampaign(context.Context, *model.DeleteCampaignRequest) (*model.DeleteCampaignResponse, error)
	ApproveCampaignMember(context.Context, *model.ApproveCampaignMemberRequest) (*model.ApproveCampaignMemberResponse, error)
	GetCampaignMembers(context.Context, *model.GetCampaignMembersRequest) (*model.GetCampaignMembersResponse, error)
}

type campaignDomain struct {
	campaignRepo repository.CampaignRepository
	memberRepo   repository.CampaignMemberRepository
	userRepo     repository.UserRepository
}

func NewCampaignDomain(
	campaignRepo repository.CampaignRepository,
	memberRepo repository.CampaignMemberRepository,
	userRepo repository.UserRepository,
) CampaignDomain {
	return &campaignDomain{
		campaignRepo: campaignRepo,
		memberRepo:   memberRepo,
		userRepo:     userRepo,
	}
}

func (d *campaignDomain) GetCampaigns(
	ctx context.Context, req *model.GetCampaignsRequest,
) (*model.GetCampaignsResponse, error) {
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

	filter := repository.GetListCampaignFilter{
		Q:              req.Q,
		Offset:         req.Offset,
		Limit:          req.Limit,
		IncludePrivate: d.isAdmin(ctx),
	}

	if req.Type != "" {
		campaignType, err := enum.ToEnum[entity.CampaignType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid campaign type %s", req.Type)
		}

		filter.Type = campaignType
	}

	if req.Category != "" {
		category, err := enum.ToEnum[entity.CampaignCategory](req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}

		filter.Category = category
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.CampaignStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	records, err := d.campaignRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaigns: %v", err)
		return nil, errorx.Unknown
	}

	campaignIDs := []string{}
	for _, record := range records {
		campaignIDs = append(campaignIDs, record.ID)
	}

	counts, err := d.memberRepo.CountByCampaignIDs(ctx, campaignIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	countSet := map[string]int64{}
	for _, count := range counts {
		countSet[count.CampaignID] = count.Count
	}

	memberStatusSet := d.memberStatusSet(ctx)

	campaigns := []model.Campaign{}
	for _, record := range records {
		record := record
		campaigns = append(campaigns, model.ConvertCampaign(
			&record, countSet[record.ID], memberStatusSet[record.ID]))
	}

	return &model.GetCampaignsResponse{Campaigns: campaigns}, nil
}

func (d *campaignDomain) GetCampaign(
	ctx context.Context, req *model.GetCampaignRequest,
) (*model.GetCampaignResponse, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.memberRepo.CountByCampaignID(ctx, campaign.ID, entity.MemberParticipant)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	memberStatus := ""
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		member, err := d.memberRepo.Get(ctx, userID, campaign.ID)
		if err == nil {
			memberStatus = string(member.Status)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get campaign member: %v", err)
			return nil, errorx.Unknown
		}
	}

	resp := model.GetCampaignResponse(model.ConvertCampaign(campaign, count, memberStatus))
	return &resp, nil
}

func (d *campaignDomain) JoinCampaign(
	ctx context.Context, req *model.JoinCampaignRequest,
) (*model.JoinCampaignResponse, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	if campaign.Status == entity.CampaignEnded {
		return nil, errorx.New(errorx.Unavailable, "This campaign has ended")
	}

	userID := xcontext.RequestUserID(ctx)

	// Repeating a join must not kick an approved member back to the
	// waitlist, so an existing row always wins.
	member, err := d.memberRepo.Get(ctx, userID, campaign.ID)
	if err == nil {
		return &model.JoinCampaignResponse{Status: string(member.Status)}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get campaign member: %v", err)
		return nil, errorx.Unknown
	}

	status := entity.MemberParticipant
	if campaign.IsPrivate {
		status = entity.MemberWaitlist
	}

	err = d.memberRepo.Upsert(ctx, &entity.CampaignMember{
		UserID:     userID,
		CampaignID: campaign.ID,
		Status:     status,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot join campaign: %v", err)
		return nil, errorx.Unknown
	}

	// A concurrent join may have won the insert. Read the row back so the
	// response reflects what was actually stored.
	member, err = d.memberRepo.Get(ctx, userID, campaign.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign member after join: %v", err)
		return nil, errorx.Unknown
	}

	return &model.JoinCampaignResponse{Status: string(member.Status)}, nil
}

func (d *campaignDomain) CreateCampaign(
	ctx context.Context, req *model.CreateCampaignRequest,
) (*model.CreateCampaignResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty campaign name")
	}

	if _, err := d.campaignRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This campaign name is already used")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get campaign by name: %v", err)
		return nil, errorx.Unknown
	}

	campaignType, err := enum.ToEnum[entity.CampaignType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid campaign type %s", req.Type)
	}

	category, err := enum.ToEnum[entity.CampaignCategory](req.Category)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
	}

	channels, err := convertChannels(req.Channels)
	if err != nil {
		return nil, err
	}

	campaign := &entity.Campaign{
		Base:           entity.Base{ID: uuid.NewString()},
		CreatedBy:      xcontext.RequestUserID(ctx),
		Name:           req.Name,
		PhotoURL:       req.PhotoURL,
		Rules:          []byte(req.Rules),
		Budget:         req.Budget,
		RewardPerKView: req.RewardPerKView,
		MinPayout:      req.MinPayout,
		MaxPayout:      req.MaxPayout,
		Type:           campaignType,
		Category:       category,
		Status:         entity.CampaignSoon,
		IsPrivate:      req.IsPrivate,
		Channels:       channels,
	}

	if err := d.campaignRepo.Create(ctx, campaign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCampaignResponse{ID: campaign.ID}, nil
}

func (d *campaignDomain) UpdateCampaign(
	ctx context.Context, req *model.UpdateCampaignRequest,
) (*model.UpdateCampaignResponse, error) {
	if _, err := d.campaignRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	updateMap := map[string]any{}

	if req.Name != "" {
		existing, err := d.campaignRepo.GetByName(ctx, req.Name)
		if err == nil && existing.ID != req.ID {
			return nil, errorx.New(errorx.AlreadyExists, "This campaign name is already used")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get campaign by name: %v", err)
			return nil, errorx.Unknown
		}

		updateMap["name"] = req.Name
	}

	if req.PhotoURL != "" {
		updateMap["photo_url"] = req.PhotoURL
	}

	if req.Rules != "" {
		updateMap["rules"] = []byte(req.Rules)
	}

	// Numeric fields arrive as strings. An unparsable value is skipped so a
	// malformed payload can never zero a column.
	setFloat(ctx, updateMap, "budget", req.Budget)
	setFloat(ctx, updateMap, "reward_per_k_view", req.RewardPerKView)
	setFloat(ctx, updateMap, "min_payout", req.MinPayout)
	setFloat(ctx, updateMap, "max_payout", req.MaxPayout)

	if req.Type != "" {
		campaignType, err := enum.ToEnum[entity.CampaignType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid campaign type %s", req.Type)
		}

		updateMap["type"] = campaignType
	}

	if req.Category != "" {
		category, err := enum.ToEnum[entity.CampaignCategory](req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}

		updateMap["category"] = category
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.CampaignStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		updateMap["status"] = status
	}

	if req.IsPrivate != nil {
		updateMap["is_private"] = *req.IsPrivate
	}

	if req.Channels != nil {
		channels, err := convertChannels(req.Channels)
		if err != nil {
			return nil, err
		}

		updateMap["channels"] = channels
	}

	if err := d.campaignRepo.UpdateByID(ctx, req.ID, updateMap); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update campaign: %v", err)
		return nil, errorx.Unknown
	}

	campaign, err := d.campaignRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign after update: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.memberRepo.CountByCampaignID(ctx, campaign.ID, entity.MemberParticipant)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCampaignResponse{
		Campaign: model.ConvertCampaign(campaign, count, ""),
	}, nil
}

func (d *campaignDomain) DeleteCampaign(
	ctx context.Context, req *model.DeleteCampaignRequest,
) (*model.DeleteCampaignResponse, error) {
	if _, err := d.campaignRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.campaignRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete campaign: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCampaignResponse{}, nil
}

func (d *campaignDomain) ApproveCampaignMember(
	ctx context.Context, req *model.ApproveCampaignMemberRequest,
) (*model.ApproveCampaignMemberResponse, error) {
	err := d.memberRepo.Approve(ctx, req.UserID, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found a waitlisted member to approve")
		}

		xcontext.Logger(ctx).Errorf("Cannot approve campaign member: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ApproveCampaignMemberResponse{}, nil
}

func (d *campaignDomain) GetCampaignMembers(
	ctx context.Context, req *model.GetCampaignMembersRequest,
) (*model.GetCampaignMembersResponse, error) {
	if _, err := d.campaignRepo.GetByID(ctx, req.CampaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	var statusFilter entity.MemberStatus
	if req.Status != "" {
		status, err := enum.ToEnum[entity.MemberStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid member status %s", req.Status)
		}

		statusFilter = status
	}

	records, err := d.memberRepo.GetListByCampaignID(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign members: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, record := range records {
		userIDs = append(userIDs, record.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members info: %v", err)
		return nil, errorx.Unknown
	}

	userSet := map[string]*entity.User{}
	for i := range users {
		userSet[users[i].ID] = &users[i]
	}

	members := []model.CampaignMember{}
	for _, record := range records {
		if statusFilter != "" && record.Status != statusFilter {
			continue
		}

		members = append(members, model.CampaignMember{
			User:     model.ConvertShortUser(userSet[record.UserID]),
			Status:   string(record.Status),
			JoinedAt: record.CreatedAt.Format(model.DefaultTimeLayout),
		})
	}

	return &model.GetCampaignMembersResponse{Members: members}, nil
}

func (d *campaignDomain) isAdmin(ctx context.Context) bool {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return false
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false
	}

	return slices.Contains(entity.GlobalAdminRoles, user.Role)
}

func (d *campaignDomain) memberStatusSet(ctx context.Context) map[string]string {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil
	}

	members, err := d.memberRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get memberships of user: %v", err)
		return nil
	}

	statusSet := map[string]string{}
	for _, member := range members {
		statusSet[member.CampaignID] = string(member.Status)
	}

	return statusSet
}

func setFloat(ctx context.Context, updateMap map[string]any, column, value string) {
	if value == "" {
		return
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Skip unparsable value %q of %s: %v", value, column, err)
		return
	}

	updateMap[column] = parsed
}

func convertChannels(channels []model.Channel) (entity.Array[entity.Channel], error) {
	converted := entity.Array[entity.Channel]{}
	for _, c := range channels {
		channelType, err := enum.ToEnum[entity.ChannelType](c.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid channel type %s", c.Type)
		}

		converted = append(converted, entity.Channel{Name: c.Name, Type: channelType})
	}

	return converted, nil
}

package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/enum"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateMe(context.Context, *model.UpdateMeRequest) (*model.UpdateMeResponse, error)
	GetJoinedCampaigns(context.Context, *model.GetJoinedCampaignsRequest) (*model.GetJoinedCampaignsResponse, error)
	GetMyTransactions(context.Context, *model.GetMyTransactionsRequest) (*model.GetMyTransactionsResponse, error)
	GetUsers(context.Context, *model.GetUsersRequest) (*model.GetUsersResponse, error)
	UpdateUser(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	DeleteUser(context.Context, *model.DeleteUserRequest) (*model.DeleteUserResponse, error)
}

type userDomain struct {
	userRepo         repository.UserRepository
	oauth2Repo       repository.OAuth2Repository
	refreshTokenRepo repository.RefreshTokenRepository
	campaignRepo     repository.CampaignRepository
	memberRepo       repository.CampaignMemberRepository
	transactionRepo  repository.TransactionRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	oauth2Repo repository.OAuth2Repository,
	refreshTokenRepo repository.RefreshTokenRepository,
	campaignRepo repository.CampaignRepository,
	memberRepo repository.CampaignMemberRepository,
	transactionRepo repository.TransactionRepository,
) UserDomain {
	return &userDomain{
		userRepo:         userRepo,
		oauth2Repo:       oauth2Repo,
		refreshTokenRepo: refreshTokenRepo,
		campaignRepo:     campaignRepo,
		memberRepo:       memberRepo,
		transactionRepo:  transactionRepo,
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	oauth2Records, err := d.oauth2Repo.GetAllByUserID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get all service user ids: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, oauth2Records, true))
	return &resp, nil
}

func (d *userDomain) UpdateMe(
	ctx context.Context, req *model.UpdateMeRequest,
) (*model.UpdateMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	updateMap := map[string]any{}

	if req.Username != "" {
		username := strings.TrimSpace(req.Username)
		if err := checkUsername(username); err != nil {
			return nil, err
		}

		existing, err := d.userRepo.GetByUsername(ctx, username)
		if err == nil && existing.ID != userID {
			return nil, errorx.New(errorx.AlreadyExists, "This username is already taken")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
			return nil, errorx.Unknown
		}

		updateMap["username"] = username
	}

	if req.AvatarURL != "" {
		updateMap["avatar_url"] = req.AvatarURL
	}

	if err := d.userRepo.UpdateByID(ctx, userID, updateMap); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateMeResponse{User: model.ConvertUser(user, nil, true)}, nil
}

func (d *userDomain) GetJoinedCampaigns(
	ctx context.Context, req *model.GetJoinedCampaignsRequest,
) (*model.GetJoinedCampaignsResponse, error) {
	members, err := d.memberRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined campaigns: %v", err)
		return nil, errorx.Unknown
	}

	campaignIDs := []string{}
	for _, member := range members {
		campaignIDs = append(campaignIDs, member.CampaignID)
	}

	campaigns, err := d.campaignRepo.GetByIDs(ctx, campaignIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaigns: %v", err)
		return nil, errorx.Unknown
	}

	campaignSet := map[string]entity.Campaign{}
	for _, campaign := range campaigns {
		campaignSet[campaign.ID] = campaign
	}

	joined := []model.JoinedCampaign{}
	for _, member := range members {
		campaign, ok := campaignSet[member.CampaignID]
		if !ok {
			continue
		}

		joined = append(joined, model.JoinedCampaign{
			Campaign: model.ConvertCampaign(&campaign, 0, string(member.Status)),
			Status:   string(member.Status),
			JoinedAt: member.CreatedAt.Format(model.DefaultTimeLayout),
		})
	}

	return &model.GetJoinedCampaignsResponse{Campaigns: joined}, nil
}

func (d *userDomain) GetMyTransactions(
	ctx context.Context, req *model.GetMyTransactionsRequest,
) (*model.GetMyTransactionsResponse, error) {
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

	userID := xcontext.RequestUserID(ctx)
	records, err := d.transactionRepo.GetListByUserID(ctx, userID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions: %v", err)
		return nil, errorx.Unknown
	}

	totalEarning, err := d.transactionRepo.SumByUserID(ctx, userID, entity.TransactionEarning)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum transactions: %v", err)
		return nil, errorx.Unknown
	}

	transactions := []model.Transaction{}
	for _, record := range records {
		record := record
		transactions = append(transactions, model.ConvertTransaction(&record))
	}

	return &model.GetMyTransactionsResponse{
		Transactions: transactions,
		TotalEarning: totalEarning,
	}, nil
}

func (d *userDomain) GetUsers(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
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

	filter := repository.GetListUserFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	if req.Role != "" {
		role, err := enum.ToEnum[entity.GlobalRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}

		filter.Role = role
	}

	records, err := d.userRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	users := []model.User{}
	for _, record := range records {
		record := record
		users = append(users, model.ConvertUser(&record, nil, true))
	}

	return &model.GetUsersResponse{Users: users}, nil
}

func (d *userDomain) UpdateUser(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	if _, err := d.userRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	updateMap := map[string]any{}
	if req.Role != "" {
		role, err := enum.ToEnum[entity.GlobalRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}

		updateMap["role"] = role
	}

	if req.IsActive != nil {
		updateMap["is_active"] = *req.IsActive
	}

	if req.IsVerified != nil {
		updateMap["is_verified"] = *req.IsVerified
	}

	if err := d.userRepo.UpdateByID(ctx, req.ID, updateMap); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	// A deactivated user must not keep a living session.
	if req.IsActive != nil && !*req.IsActive {
		if err := d.refreshTokenRepo.DeleteByUserID(ctx, req.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot revoke refresh tokens: %v", err)
			return nil, errorx.Unknown
		}
	}

	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{User: model.ConvertUser(user, nil, true)}, nil
}

func (d *userDomain) DeleteUser(
	ctx context.Context, req *model.DeleteUserRequest,
) (*model.DeleteUserResponse, error) {
	if req.ID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "You cannot delete yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.refreshTokenRepo.DeleteByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke refresh tokens: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.oauth2Repo.DeleteByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete oauth2 records: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteUserResponse{}, nil
}

package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/reelify-app/backend/internal/common"
	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CampaignUpdateDomain interface {
	GetCampaignUpdates(context.Context, *model.GetCampaignUpdatesRequest) (*model.GetCampaignUpdatesResponse, error)
	CreateCampaignUpdate(context.Context, *model.CreateCampaignUpdateRequest) (*model.CreateCampaignUpdateResponse, error)
}

type campaignUpdateDomain struct {
	updateRepo     repository.CampaignUpdateRepository
	campaignRepo   repository.CampaignRepository
	userRepo       repository.UserRepository
	memberVerifier *common.CampaignMemberVerifier
}

func NewCampaignUpdateDomain(
	updateRepo repository.CampaignUpdateRepository,
	campaignRepo repository.CampaignRepository,
	userRepo repository.UserRepository,
	memberRepo repository.CampaignMemberRepository,
) CampaignUpdateDomain {
	return &campaignUpdateDomain{
		updateRepo:     updateRepo,
		campaignRepo:   campaignRepo,
		userRepo:       userRepo,
		memberVerifier: common.NewCampaignMemberVerifier(userRepo, memberRepo),
	}
}

func (d *campaignUpdateDomain) GetCampaignUpdates(
	ctx context.Context, req *model.GetCampaignUpdatesRequest,
) (*model.GetCampaignUpdatesResponse, error) {
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

	campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	// Updates of a private campaign are visible to its participants only.
	if campaign.IsPrivate {
		if err := d.memberVerifier.Verify(ctx, campaign.ID); err != nil {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	records, err := d.updateRepo.GetListByCampaignID(ctx, req.CampaignID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign updates: %v", err)
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

	updates := []model.CampaignUpdate{}
	for _, record := range records {
		record := record
		updates = append(updates, model.ConvertCampaignUpdate(&record, authorSet[record.AuthorID]))
	}

	return &model.GetCampaignUpdatesResponse{Updates: updates}, nil
}

func (d *campaignUpdateDomain) CreateCampaignUpdate(
	ctx context.Context, req *model.CreateCampaignUpdateRequest,
) (*model.CreateCampaignUpdateResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if _, err := d.campaignRepo.GetByID(ctx, req.CampaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	update := &entity.CampaignUpdate{
		Base:       entity.Base{ID: uuid.NewString()},
		CampaignID: req.CampaignID,
		AuthorID:   xcontext.RequestUserID(ctx),
		Title:      req.Title,
		Content:    []byte(req.Content),
	}

	if err := d.updateRepo.Create(ctx, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCampaignUpdateResponse{ID: update.ID}, nil
}

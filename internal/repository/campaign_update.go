package repository

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
)

type CampaignUpdateRepository interface {
	Create(ctx context.Context, data *entity.CampaignUpdate) error
	GetByID(ctx context.Context, id string) (*entity.CampaignUpdate, error)
	GetListByCampaignID(ctx context.Context, campaignID string, offset, limit int) ([]entity.CampaignUpdate, error)
	DeleteByID(ctx context.Context, id string) error
}

type campaignUpdateRepository struct{}

func NewCampaignUpdateRepository() CampaignUpdateRepository {
	return &campaignUpdateRepository{}
}

func (r *campaignUpdateRepository) Create(ctx context.Context, data *entity.CampaignUpdate) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *campaignUpdateRepository) GetByID(ctx context.Context, id string) (*entity.CampaignUpdate, error) {
	var record entity.CampaignUpdate
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *campaignUpdateRepository) GetListByCampaignID(
	ctx context.Context, campaignID string, offset, limit int,
) ([]entity.CampaignUpdate, error) {
	var records []entity.CampaignUpdate
	err := xcontext.DB(ctx).
		Where("campaign_id=?", campaignID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *campaignUpdateRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.CampaignUpdate{}).Error
}

package repository

import (
	"context"
	"errors"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CampaignMemberCount struct {
	CampaignID string
	Count      int64
}

type CampaignMemberRepository interface {
	Upsert(ctx context.Context, data *entity.CampaignMember) error
	Get(ctx context.Context, userID, campaignID string) (*entity.CampaignMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.CampaignMember, error)
	GetListByCampaignID(ctx context.Context, campaignID string) ([]entity.CampaignMember, error)
	Approve(ctx context.Context, userID, campaignID string) error
	Delete(ctx context.Context, userID, campaignID string) error
	CountByCampaignID(ctx context.Context, campaignID string, status entity.MemberStatus) (int64, error)
	CountByCampaignIDs(ctx context.Context, campaignIDs []string) ([]CampaignMemberCount, error)
	Count(ctx context.Context) (int64, error)
}

type campaignMemberRepository struct{}

func NewCampaignMemberRepository() CampaignMemberRepository {
	return &campaignMemberRepository{}
}

func (r *campaignMemberRepository) Upsert(ctx context.Context, data *entity.CampaignMember) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "campaign_id"}},
			DoNothing: true,
		}).
		Create(data).Error
}

func (r *campaignMemberRepository) Get(
	ctx context.Context, userID, campaignID string,
) (*entity.CampaignMember, error) {
	var record entity.CampaignMember
	err := xcontext.DB(ctx).
		Where("user_id=? AND campaign_id=?", userID, campaignID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *campaignMemberRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.CampaignMember, error) {
	var records []entity.CampaignMember
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *campaignMemberRepository) GetListByCampaignID(
	ctx context.Context, campaignID string,
) ([]entity.CampaignMember, error) {
	var records []entity.CampaignMember
	err := xcontext.DB(ctx).
		Where("campaign_id=?", campaignID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Approve moves a waitlisted member to participant. It is a single
// conditional update, so a concurrent approval of the same member
// cannot double-apply.
func (r *campaignMemberRepository) Approve(ctx context.Context, userID, campaignID string) error {
	tx := xcontext.DB(ctx).Model(&entity.CampaignMember{}).
		Where("user_id=? AND campaign_id=? AND status=?",
			userID, campaignID, entity.MemberWaitlist).
		Update("status", entity.MemberParticipant)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *campaignMemberRepository) Delete(ctx context.Context, userID, campaignID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND campaign_id=?", userID, campaignID).
		Delete(&entity.CampaignMember{}).Error
}

func (r *campaignMemberRepository) CountByCampaignID(
	ctx context.Context, campaignID string, status entity.MemberStatus,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.CampaignMember{}).
		Where("campaign_id=? AND status=?", campaignID, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *campaignMemberRepository) CountByCampaignIDs(
	ctx context.Context, campaignIDs []string,
) ([]CampaignMemberCount, error) {
	tx := xcontext.DB(ctx).Model(&entity.CampaignMember{}).
		Select("campaign_id, COUNT(*) as count").
		Where("status=?", entity.MemberParticipant).
		Group("campaign_id").
		Order("count DESC")

	if len(campaignIDs) > 0 {
		tx = tx.Where("campaign_id IN (?)", campaignIDs)
	}

	var records []CampaignMemberCount
	if err := tx.Scan(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *campaignMemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.CampaignMember{}).
		Where("status=?", entity.MemberParticipant).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

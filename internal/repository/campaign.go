package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/reelify-app/backend/pkg/xredis"
)

type GetListCampaignFilter struct {
	Q              string
	Type           entity.CampaignType
	Category       entity.CampaignCategory
	Status         entity.CampaignStatus
	IncludePrivate bool
	Offset         int
	Limit          int
}

type CampaignRepository interface {
	Create(ctx context.Context, data *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Campaign, error)
	GetByName(ctx context.Context, name string) (*entity.Campaign, error)
	GetList(ctx context.Context, filter GetListCampaignFilter) ([]entity.Campaign, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type campaignRepository struct {
	redisClient xredis.Client
}

func NewCampaignRepository(redisClient xredis.Client) CampaignRepository {
	return &campaignRepository{redisClient: redisClient}
}

func (r *campaignRepository) cacheKeyByID(campaignID string) string {
	return fmt.Sprintf("cache:campaign:%s", campaignID)
}

func (r *campaignRepository) cache(ctx context.Context, campaigns ...entity.Campaign) {
	redisKV := map[string]any{}
	for _, record := range campaigns {
		redisKV[r.cacheKeyByID(record.ID)] = record
	}

	if err := r.redisClient.MSet(ctx, redisKV); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple set for campaign redis: %v", err)
	}
}

func (r *campaignRepository) fromCacheByID(ctx context.Context, ids ...string) []entity.Campaign {
	keys := []string{}
	for _, id := range ids {
		keys = append(keys, r.cacheKeyByID(id))
	}

	var records []entity.Campaign
	values, err := r.redisClient.MGet(ctx, keys...)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple get campaign from redis: %v", err)
		return nil
	}

	for i := range keys {
		if values[i] == nil {
			continue
		}

		s, ok := values[i].(string)
		if !ok {
			xcontext.Logger(ctx).Warnf("Invalid type of campaign %T", values[i])
			continue
		}

		var result entity.Campaign
		if err := json.Unmarshal([]byte(s), &result); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot unmarshal campaign object: %v", err)
			continue
		}

		records = append(records, result)
	}

	return records
}

func (r *campaignRepository) invalidateCache(ctx context.Context, ids ...string) {
	keys := []string{}
	for _, id := range ids {
		keys = append(keys, r.cacheKeyByID(id))
	}

	if len(keys) > 0 {
		if err := r.redisClient.Del(ctx, keys...); err != nil && err != redis.Nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate campaign redis key: %v", err)
		}
	}
}

func (r *campaignRepository) Create(ctx context.Context, data *entity.Campaign) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	if cached := r.fromCacheByID(ctx, id); len(cached) == 1 {
		return &cached[0], nil
	}

	var record entity.Campaign
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	r.cache(ctx, record)
	return &record, nil
}

func (r *campaignRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Campaign, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records := r.fromCacheByID(ctx, ids...)
	if len(records) == len(ids) {
		return records, nil
	}

	cachedSet := map[string]any{}
	for _, record := range records {
		cachedSet[record.ID] = nil
	}

	missedIDs := []string{}
	for _, id := range ids {
		if _, ok := cachedSet[id]; !ok {
			missedIDs = append(missedIDs, id)
		}
	}

	var missedRecords []entity.Campaign
	if err := xcontext.DB(ctx).Where("id IN (?)", missedIDs).Find(&missedRecords).Error; err != nil {
		return nil, err
	}

	r.cache(ctx, missedRecords...)
	return append(records, missedRecords...), nil
}

func (r *campaignRepository) GetByName(ctx context.Context, name string) (*entity.Campaign, error) {
	var record entity.Campaign
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *campaignRepository) GetList(
	ctx context.Context, filter GetListCampaignFilter,
) ([]entity.Campaign, error) {
	tx := xcontext.DB(ctx)

	if filter.Q != "" {
		tx = tx.Where("name LIKE ?", "%"+filter.Q+"%")
	}

	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if !filter.IncludePrivate {
		tx = tx.Where("is_private=?", false)
	}

	var records []entity.Campaign
	err := tx.Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *campaignRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}

	err := xcontext.DB(ctx).Model(&entity.Campaign{}).Where("id=?", id).Updates(data).Error
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *campaignRepository) DeleteByID(ctx context.Context, id string) error {
	if err := xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Campaign{}).Error; err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *campaignRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Campaign{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

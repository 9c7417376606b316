package repository

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, data *entity.ChatMessage) error
	GetList(ctx context.Context, campaignID, channel string, before int64, limit int) ([]entity.ChatMessage, error)
}

type chatMessageRepository struct{}

func NewChatMessageRepository() ChatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(ctx context.Context, data *entity.ChatMessage) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *chatMessageRepository) GetList(
	ctx context.Context, campaignID, channel string, before int64, limit int,
) ([]entity.ChatMessage, error) {
	tx := xcontext.DB(ctx).Where("campaign_id=? AND channel=?", campaignID, channel)
	if before > 0 {
		tx = tx.Where("id < ?", before)
	}

	var records []entity.ChatMessage
	if err := tx.Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

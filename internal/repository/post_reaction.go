package repository

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type PostReactionCount struct {
	PostID string
	Emoji  string
	Count  int64
}

type PostReactionRepository interface {
	Upsert(ctx context.Context, data *entity.PostReaction) error
	Get(ctx context.Context, postID, userID string) (*entity.PostReaction, error)
	Delete(ctx context.Context, postID, userID string) error
	CountByPostIDs(ctx context.Context, postIDs []string) ([]PostReactionCount, error)
}

type postReactionRepository struct{}

func NewPostReactionRepository() PostReactionRepository {
	return &postReactionRepository{}
}

func (r *postReactionRepository) Upsert(ctx context.Context, data *entity.PostReaction) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emoji", "updated_at"}),
		}).
		Create(data).Error
}

func (r *postReactionRepository) Get(
	ctx context.Context, postID, userID string,
) (*entity.PostReaction, error) {
	var record entity.PostReaction
	err := xcontext.DB(ctx).
		Where("post_id=? AND user_id=?", postID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postReactionRepository) Delete(ctx context.Context, postID, userID string) error {
	return xcontext.DB(ctx).
		Where("post_id=? AND user_id=?", postID, userID).
		Delete(&entity.PostReaction{}).Error
}

func (r *postReactionRepository) CountByPostIDs(
	ctx context.Context, postIDs []string,
) ([]PostReactionCount, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var records []PostReactionCount
	err := xcontext.DB(ctx).Model(&entity.PostReaction{}).
		Select("post_id, emoji, COUNT(*) as count").
		Where("post_id IN (?)", postIDs).
		Group("post_id, emoji").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

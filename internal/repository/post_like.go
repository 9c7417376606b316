package repository

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
)

type PostLikeCount struct {
	PostID string
	Count  int64
}

type PostLikeRepository interface {
	Create(ctx context.Context, data *entity.PostLike) error
	Get(ctx context.Context, postID, userID string) (*entity.PostLike, error)
	Delete(ctx context.Context, postID, userID string) error
	CountByPostIDs(ctx context.Context, postIDs []string) ([]PostLikeCount, error)
	GetListByUserID(ctx context.Context, userID string, postIDs []string) ([]entity.PostLike, error)
}

type postLikeRepository struct{}

func NewPostLikeRepository() PostLikeRepository {
	return &postLikeRepository{}
}

func (r *postLikeRepository) Create(ctx context.Context, data *entity.PostLike) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postLikeRepository) Get(ctx context.Context, postID, userID string) (*entity.PostLike, error) {
	var record entity.PostLike
	err := xcontext.DB(ctx).
		Where("post_id=? AND user_id=?", postID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postLikeRepository) Delete(ctx context.Context, postID, userID string) error {
	return xcontext.DB(ctx).
		Where("post_id=? AND user_id=?", postID, userID).
		Delete(&entity.PostLike{}).Error
}

func (r *postLikeRepository) CountByPostIDs(
	ctx context.Context, postIDs []string,
) ([]PostLikeCount, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var records []PostLikeCount
	err := xcontext.DB(ctx).Model(&entity.PostLike{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN (?)", postIDs).
		Group("post_id").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postLikeRepository) GetListByUserID(
	ctx context.Context, userID string, postIDs []string,
) ([]entity.PostLike, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var records []entity.PostLike
	err := xcontext.DB(ctx).
		Where("user_id=? AND post_id IN (?)", userID, postIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

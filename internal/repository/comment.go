package repository

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID string, offset, limit int) ([]entity.Comment, error)
	UpdateContentByID(ctx context.Context, id string, content []byte) error
	DeleteByID(ctx context.Context, id string) error
	CountByPostID(ctx context.Context, postID string) (int64, error)
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var record entity.Comment
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentRepository) GetListByPostID(
	ctx context.Context, postID string, offset, limit int,
) ([]entity.Comment, error) {
	var records []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *commentRepository) UpdateContentByID(ctx context.Context, id string, content []byte) error {
	return xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("id=?", id).
		Update("content", content).Error
}

func (r *commentRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Comment{}).Error
}

func (r *commentRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("post_id=?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

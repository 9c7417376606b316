package repository

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
)

type OAuth2Repository interface {
	Create(ctx context.Context, data *entity.OAuth2) error
	GetByServiceUserID(ctx context.Context, service, serviceUserID string) (*entity.OAuth2, error)
	GetAllByUserID(ctx context.Context, userID string) ([]entity.OAuth2, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type oauth2Repository struct{}

func NewOAuth2Repository() OAuth2Repository {
	return &oauth2Repository{}
}

func (r *oauth2Repository) Create(ctx context.Context, data *entity.OAuth2) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *oauth2Repository) GetByServiceUserID(
	ctx context.Context, service, serviceUserID string,
) (*entity.OAuth2, error) {
	var record entity.OAuth2
	err := xcontext.DB(ctx).
		Where("service=? AND service_user_id=?", service, serviceUserID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *oauth2Repository) GetAllByUserID(ctx context.Context, userID string) ([]entity.OAuth2, error) {
	var records []entity.OAuth2
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *oauth2Repository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.OAuth2{}).Error
}

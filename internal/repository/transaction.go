package repository

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
)

type TransactionSum struct {
	Type entity.TransactionType
	Sum  float64
}

type TransactionRepository interface {
	Create(ctx context.Context, data *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Transaction, error)
	SumByType(ctx context.Context) ([]TransactionSum, error)
	SumByUserID(ctx context.Context, userID string, txType entity.TransactionType) (float64, error)
}

type transactionRepository struct{}

func NewTransactionRepository() TransactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, data *entity.Transaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var record entity.Transaction
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *transactionRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Transaction, error) {
	var records []entity.Transaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *transactionRepository) SumByType(ctx context.Context) ([]TransactionSum, error) {
	var records []TransactionSum
	err := xcontext.DB(ctx).Model(&entity.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) as sum").
		Group("type").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *transactionRepository) SumByUserID(
	ctx context.Context, userID string, txType entity.TransactionType,
) (float64, error) {
	var sum float64
	err := xcontext.DB(ctx).Model(&entity.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=? AND type=?", userID, txType).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

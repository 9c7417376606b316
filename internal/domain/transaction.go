package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/enum"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TransactionDomain interface {
	CreateTransaction(context.Context, *model.CreateTransactionRequest) (*model.CreateTransactionResponse, error)
}

type transactionDomain struct {
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	campaignRepo    repository.CampaignRepository
}

func NewTransactionDomain(
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	campaignRepo repository.CampaignRepository,
) TransactionDomain {
	return &transactionDomain{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		campaignRepo:    campaignRepo,
	}
}

func (d *transactionDomain) CreateTransaction(
	ctx context.Context, req *model.CreateTransactionRequest,
) (*model.CreateTransactionResponse, error) {
	txType, err := enum.ToEnum[entity.TransactionType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid transaction type %s", req.Type)
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	campaignID := sql.NullString{}
	if req.CampaignID != "" {
		if _, err := d.campaignRepo.GetByID(ctx, req.CampaignID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found campaign")
			}

			xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
			return nil, errorx.Unknown
		}

		campaignID = sql.NullString{Valid: true, String: req.CampaignID}
	}

	transaction := &entity.Transaction{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     req.UserID,
		CampaignID: campaignID,
		Type:       txType,
		Amount:     req.Amount,
		Note:       req.Note,
	}

	if err := d.transactionRepo.Create(ctx, transaction); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create transaction: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTransactionResponse{ID: transaction.ID}, nil
}

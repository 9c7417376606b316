package domain

import (
	"testing"

	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTransactionDomain() TransactionDomain {
	return NewTransactionDomain(
		repository.NewTransactionRepository(),
		repository.NewUserRepository(),
		repository.NewCampaignRepository(&testutil.MockRedisClient{}),
	)
}

func Test_transactionDomain_CreateTransaction(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTransactionDomain()

	resp, err := domain.CreateTransaction(ctx, &model.CreateTransactionRequest{
		UserID:     testutil.User1.ID,
		CampaignID: testutil.PublicCampaign.ID,
		Type:       "Earning",
		Amount:     42.5,
		Note:       "July payout",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	// The campaign is optional.
	_, err = domain.CreateTransaction(ctx, &model.CreateTransactionRequest{
		UserID: testutil.User1.ID,
		Type:   "Deposit",
		Amount: 100,
	})
	require.NoError(t, err)
}

func Test_transactionDomain_CreateTransaction_InvalidInput(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTransactionDomain()

	var errx errorx.Error

	_, err := domain.CreateTransaction(ctx, &model.CreateTransactionRequest{
		UserID: testutil.User1.ID,
		Type:   "Withdrawal",
		Amount: 10,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.CreateTransaction(ctx, &model.CreateTransactionRequest{
		UserID: testutil.User1.ID,
		Type:   "Earning",
		Amount: -1,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.CreateTransaction(ctx, &model.CreateTransactionRequest{
		UserID: "who_is_this",
		Type:   "Earning",
		Amount: 10,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	_, err = domain.CreateTransaction(ctx, &model.CreateTransactionRequest{
		UserID:     testutil.User1.ID,
		CampaignID: "not_a_campaign",
		Type:       "Earning",
		Amount:     10,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

package domain

import (
	"context"
	"time"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/xcontext"
)

const (
	topCampaignCount = 5
	activeUserWindow = 30 * 24 * time.Hour
)

type StatisticDomain interface {
	GetAnalytics(context.Context, *model.GetAnalyticsRequest) (*model.GetAnalyticsResponse, error)
}

type statisticDomain struct {
	userRepo        repository.UserRepository
	campaignRepo    repository.CampaignRepository
	memberRepo      repository.CampaignMemberRepository
	postRepo        repository.PostRepository
	transactionRepo repository.TransactionRepository
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	campaignRepo repository.CampaignRepository,
	memberRepo repository.CampaignMemberRepository,
	postRepo repository.PostRepository,
	transactionRepo repository.TransactionRepository,
) StatisticDomain {
	return &statisticDomain{
		userRepo:        userRepo,
		campaignRepo:    campaignRepo,
		memberRepo:      memberRepo,
		postRepo:        postRepo,
		transactionRepo: transactionRepo,
	}
}

func (d *statisticDomain) GetAnalytics(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetAnalyticsResponse, error) {
	totalUsers, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	totalCampaigns, err := d.campaignRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count campaigns: %v", err)
		return nil, errorx.Unknown
	}

	totalPosts, err := d.postRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	activeUsers, err := d.userRepo.CountActiveSince(ctx, time.Now().Add(-activeUserWindow))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count active users: %v", err)
		return nil, errorx.Unknown
	}

	totalParticipants, err := d.memberRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	sums, err := d.transactionRepo.SumByType(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum transactions: %v", err)
		return nil, errorx.Unknown
	}

	var totalEarning, totalDeposit float64
	for _, sum := range sums {
		switch sum.Type {
		case entity.TransactionEarning:
			totalEarning = sum.Sum
		case entity.TransactionDeposit:
			totalDeposit = sum.Sum
		}
	}

	memberCounts, err := d.memberRepo.CountByCampaignIDs(ctx, nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count members per campaign: %v", err)
		return nil, errorx.Unknown
	}

	if len(memberCounts) > topCampaignCount {
		memberCounts = memberCounts[:topCampaignCount]
	}

	topIDs := []string{}
	for _, count := range memberCounts {
		topIDs = append(topIDs, count.CampaignID)
	}

	campaigns, err := d.campaignRepo.GetByIDs(ctx, topIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get top campaigns: %v", err)
		return nil, errorx.Unknown
	}

	campaignSet := map[string]entity.Campaign{}
	for _, campaign := range campaigns {
		campaignSet[campaign.ID] = campaign
	}

	topCampaigns := []model.TopCampaign{}
	for _, count := range memberCounts {
		campaign, ok := campaignSet[count.CampaignID]
		if !ok {
			continue
		}

		topCampaigns = append(topCampaigns, model.TopCampaign{
			Campaign:     model.ConvertCampaign(&campaign, count.Count, ""),
			Participants: count.Count,
		})
	}

	return &model.GetAnalyticsResponse{
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		TotalCampaigns:    totalCampaigns,
		TotalPosts:        totalPosts,
		TotalParticipants: totalParticipants,
		TotalEarning:      totalEarning,
		TotalDeposit:      totalDeposit,
		TopCampaigns:      topCampaigns,
	}, nil
}

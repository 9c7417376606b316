package testutil

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/repository"
)

// Shared fixture rows. Tests insert them with CreateFixtures and refer to
// them by these variables instead of re-declaring sample data everywhere.
var (
	Admin = &entity.User{
		Base:       entity.Base{ID: "admin"},
		Username:   "admin",
		Email:      "admin@example.com",
		Role:       entity.RoleAdmin,
		IsActive:   true,
		IsVerified: true,
	}

	User1 = &entity.User{
		Base:       entity.Base{ID: "user1"},
		Username:   "user1",
		Email:      "user1@example.com",
		Role:       entity.RoleUser,
		IsActive:   true,
		IsVerified: true,
	}

	User2 = &entity.User{
		Base:     entity.Base{ID: "user2"},
		Username: "user2",
		Email:    "user2@example.com",
		Role:     entity.RoleUser,
		IsActive: true,
	}

	PublicCampaign = &entity.Campaign{
		Base:      entity.Base{ID: "campaign1"},
		CreatedBy: Admin.ID,
		Name:      "Summer Clips",
		Type:      entity.CampaignClipping,
		Category:  entity.CategoryMusic,
		Status:    entity.CampaignActive,
		IsPrivate: false,
		Budget:    1000,
		Channels: entity.Array[entity.Channel]{
			{Name: "general", Type: entity.ChannelChat},
			{Name: "announcements", Type: entity.ChannelUpdates},
		},
	}

	PrivateCampaign = &entity.Campaign{
		Base:      entity.Base{ID: "campaign2"},
		CreatedBy: Admin.ID,
		Name:      "Brand Insiders",
		Type:      entity.CampaignUGC,
		Category:  entity.CategoryBrand,
		Status:    entity.CampaignActive,
		IsPrivate: true,
		Channels: entity.Array[entity.Channel]{
			{Name: "general", Type: entity.ChannelChat},
		},
	}

	EndedCampaign = &entity.Campaign{
		Base:      entity.Base{ID: "campaign3"},
		CreatedBy: Admin.ID,
		Name:      "Last Winter",
		Type:      entity.CampaignFaceless,
		Category:  entity.CategoryOther,
		Status:    entity.CampaignEnded,
	}

	Post1 = &entity.Post{
		Base:     entity.Base{ID: "post1"},
		AuthorID: Admin.ID,
		Content:  []byte("Welcome to the platform!"),
	}

	Post2 = &entity.Post{
		Base:     entity.Base{ID: "post2"},
		AuthorID: Admin.ID,
		Content:  []byte("Second announcement."),
	}
)

func CreateFixtureDb(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range []*entity.User{Admin, User1, User2} {
		cp := *u
		if err := userRepo.Create(ctx, &cp); err != nil {
			panic(err)
		}
	}

	campaignRepo := repository.NewCampaignRepository(&MockRedisClient{})
	for _, c := range []*entity.Campaign{PublicCampaign, PrivateCampaign, EndedCampaign} {
		cp := *c
		if err := campaignRepo.Create(ctx, &cp); err != nil {
			panic(err)
		}
	}

	postRepo := repository.NewPostRepository()
	for _, p := range []*entity.Post{Post1, Post2} {
		cp := *p
		if err := postRepo.Create(ctx, &cp); err != nil {
			panic(err)
		}
	}
}

package entity

import (
	"context"

	"github.com/reelify-app/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&OAuth2{},
		&RefreshToken{},
		&Campaign{},
		&CampaignMember{},
		&Post{},
		&PostLike{},
		&PostReaction{},
		&Comment{},
		&Transaction{},
		&CampaignUpdate{},
		&ChatMessage{},
	)
}

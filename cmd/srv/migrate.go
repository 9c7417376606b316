package main

import (
	"context"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func migrate(ctx context.Context, db *gorm.DB) error {
	ctx = xcontext.WithDB(ctx, db)
	return entity.MigrateTable(ctx)
}

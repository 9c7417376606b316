package domain

import (
	"context"

	"github.com/reelify-app/backend/internal/common"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/storage"
)

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	storage storage.Storage
}

func NewFileDomain(storage storage.Storage) FileDomain {
	return &fileDomain{storage: storage}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	// The upload happens before anything references the url. If it fails,
	// no record points at a missing object.
	uresp, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		common.PromCounters[common.UploadFailureTotal].WithLabelValues("uploadImage").Inc()
		return nil, err
	}

	if len(uresp) == 0 {
		return nil, errorx.Unknown
	}

	return &model.UploadImageResponse{URL: uresp[0].Url}, nil
}

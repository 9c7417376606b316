package domain

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/pkg/storage"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func generateRandomImage(path string) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	img.Set(2, 3, color.RGBA{255, 0, 0, 255})
	f, _ := os.Create(path)
	defer f.Close()
	_ = png.Encode(f, img)
}

func Test_fileDomain_UploadImage(t *testing.T) {
	path := "out.png"
	generateRandomImage(path)
	defer os.Remove(path)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	fw, err := writer.CreateFormFile("image", file.Name())
	require.NoError(t, err)

	_, err = io.Copy(fw, file)
	require.NoError(t, err)
	writer.Close()

	request := httptest.NewRequest("POST", "/uploadImage", body)
	request.Header.Add("Content-Type", writer.FormDataContentType())

	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	ctx = xcontext.WithHTTPRequest(ctx, request)
	testutil.CreateFixtureDb(ctx)

	var uploaded []*storage.UploadObject
	stg := &testutil.MockStorage{
		BulkUploadFunc: func(
			_ context.Context, objs []*storage.UploadObject,
		) ([]*storage.UploadResponse, error) {
			uploaded = objs
			resps := []*storage.UploadResponse{}
			for _, obj := range objs {
				resps = append(resps, &storage.UploadResponse{Url: obj.FileName})
			}
			return resps, nil
		},
	}

	domain := NewFileDomain(stg)

	resp, err := domain.UploadImage(ctx, &model.UploadImageRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.URL)
	require.Len(t, uploaded, 2)
}

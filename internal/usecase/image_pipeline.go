package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"gudang/pkg/errors"
	"gudang/pkg/logger"
)

// imageFolder is the fixed object-storage namespace for product images.
const imageFolder = "product-images"

// uploadImages pushes every file to object storage and returns the durable
// URLs in input order. Uploads run concurrently; results land in
// index-stable slots so completion order never reorders the output. The
// first failure cancels the group, already-stored objects are cleaned up
// best effort, and no partial list reaches the caller.
func (uc *ProductUseCase) uploadImages(ctx context.Context, images []ImageUpload) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	urls := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)

	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			url, err := uc.fileService.UploadFile(gctx, img.Content, img.FileType, imageFolder)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.cleanupUploads(urls)
		return nil, errors.UploadFailed("Image upload failed", err)
	}

	return urls, nil
}

// cleanupUploads removes objects left behind by an aborted mutation. Runs
// on a fresh context because the request context may already be dead.
func (uc *ProductUseCase) cleanupUploads(urls []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := uc.fileService.DeleteFile(ctx, url); err != nil {
			logger.Warn("Failed to clean up uploaded image %s: %v", url, err)
		}
	}
}

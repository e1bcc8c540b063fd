package service

import (
	"context"

	"github.com/offer-fe/offer-be/internal/dto"
	objectstorage "github.com/offer-fe/offer-be/internal/infrastructure/object-storage"
	"github.com/rs/zerolog/log"
)

// uploadSequentially stores files one after another. The first failure is
// returned as is and files stored before it are left in place.
func uploadSequentially(ctx context.Context, storage objectstorage.Storage, files []dto.ImageFile, dir string) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, file := range files {
		url, err := uploadOne(ctx, storage, file, dir)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "uploadSequentially").Str("filename", file.Filename).Msg("")
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func uploadOne(ctx context.Context, storage objectstorage.Storage, file dto.ImageFile, dir string) (string, error) {
	body, err := file.Open()
	if err != nil {
		return "", err
	}
	defer body.Close()

	return storage.Upload(ctx, file.Filename, body, dir)
}

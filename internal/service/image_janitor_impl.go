package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/offer-fe/offer-be/config"
	"github.com/offer-fe/offer-be/internal/dto"
	objectstorage "github.com/offer-fe/offer-be/internal/infrastructure/object-storage"
	"github.com/offer-fe/offer-be/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ImageJanitorImpl struct {
	repository repository.ArticleRepository
	storage    objectstorage.Storage
	reader     messageReader
	dirs       []string
	retention  time.Duration
	now        func() time.Time
}

func CreateImageJanitor(repository repository.ArticleRepository, storage objectstorage.Storage, reader messageReader, articleConfig config.ArticleConfig, reaperConfig config.ReaperConfig) ImageJanitor {
	return &ImageJanitorImpl{
		repository: repository,
		storage:    storage,
		reader:     reader,
		dirs:       []string{articleConfig.ProductImgDir, articleConfig.ProfileImgDir},
		retention:  time.Duration(reaperConfig.RetentionHours) * time.Hour,
		now:        time.Now,
	}
}

// ConsumeEvent reads article events until ctx is cancelled.
func (s *ImageJanitorImpl) ConsumeEvent(ctx context.Context) {
	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("Error reading Kafka message")
			continue
		}

		if err := s.HandleMessage(ctx, msg.Value); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Int64("offset", msg.Offset).Msg("skipped message")
		}
	}
}

func (s *ImageJanitorImpl) HandleMessage(ctx context.Context, value []byte) (err error) {
	var receivedMsg dto.KafkaMessage
	if err := json.Unmarshal(value, &receivedMsg); err != nil {
		return fmt.Errorf("unmarshalling Kafka message: %w", err)
	}

	switch receivedMsg.EventType {
	case dto.EventArticleImagesDiscarded:
		var event dto.ImagesDiscardedEvent
		dataBytes, err := json.Marshal(receivedMsg.Data)
		if err != nil {
			return fmt.Errorf("marshalling event data: %w", err)
		}
		if err := json.Unmarshal(dataBytes, &event); err != nil {
			return fmt.Errorf("unmarshalling event data: %w", err)
		}

		_, err = s.deleteUnreferenced(ctx, event.ImageURLs)
		return err
	default:
		log.Debug().Str("event_type", receivedMsg.EventType).Msg("event ignored")
		return nil
	}
}

// ReapOrphanImages removes stored images older than the retention window that nothing references.
func (s *ImageJanitorImpl) ReapOrphanImages(ctx context.Context) (deleted int, err error) {
	threshold := s.now().Add(-s.retention)

	for _, dir := range s.dirs {
		objects, err := s.storage.List(ctx, dir)
		if err != nil {
			log.Error().Err(err).Str("component", "ReapOrphanImages").Str("dir", dir).Msg("")
			return deleted, err
		}

		var candidates []string
		for _, obj := range objects {
			if obj.LastModified.Before(threshold) {
				candidates = append(candidates, obj.URL)
			}
		}

		n, err := s.deleteUnreferenced(ctx, candidates)
		deleted += n
		if err != nil {
			return deleted, err
		}
	}

	log.Info().Str("component", "ReapOrphanImages").Int("deleted", deleted).Msg("image reaper finished")
	return deleted, nil
}

func (s *ImageJanitorImpl) deleteUnreferenced(ctx context.Context, urls []string) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}

	referenced, err := s.repository.GetReferencedImageURLs(ctx, urls)
	if err != nil {
		return 0, err
	}

	deleted := 0
	var errs []error
	for _, url := range urls {
		if referenced[url] {
			continue
		}
		if err := s.storage.Delete(ctx, url); err != nil {
			log.Error().Err(err).Str("component", "deleteUnreferenced").Str("url", url).Msg("")
			errs = append(errs, err)
			continue
		}
		deleted++
	}

	return deleted, errors.Join(errs...)
}

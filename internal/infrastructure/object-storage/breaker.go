package objectstorage

import (
	"context"
	"io"

	circuitbreaker "github.com/offer-fe/offer-be/internal/infrastructure/circuit-breaker"
	"github.com/sony/gobreaker/v2"
)

// BreakerStorage stops calling the backing storage while it keeps failing.
type BreakerStorage struct {
	next Storage
	cb   *gobreaker.CircuitBreaker[any]
}

func WithCircuitBreaker(next Storage, name string) *BreakerStorage {
	return &BreakerStorage{
		next: next,
		cb:   circuitbreaker.CreateCircuitBreaker[any](name),
	}
}

func (s *BreakerStorage) Upload(ctx context.Context, filename string, body io.Reader, dir string) (string, error) {
	res, err := s.cb.Execute(func() (any, error) {
		return s.next.Upload(ctx, filename, body, dir)
	})
	if err != nil {
		return "", err
	}

	return res.(string), nil
}

func (s *BreakerStorage) Delete(ctx context.Context, url string) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, s.next.Delete(ctx, url)
	})

	return err
}

func (s *BreakerStorage) List(ctx context.Context, dir string) ([]StoredObject, error) {
	res, err := s.cb.Execute(func() (any, error) {
		return s.next.List(ctx, dir)
	})
	if err != nil {
		return nil, err
	}

	return res.([]StoredObject), nil
}

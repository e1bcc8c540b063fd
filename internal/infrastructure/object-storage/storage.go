package objectstorage

import (
	"context"
	"io"
	"time"
)

type StoredObject struct {
	URL          string
	LastModified time.Time
}

// Storage keeps uploaded image files and addresses them by public URL.
type Storage interface {
	Upload(ctx context.Context, filename string, body io.Reader, dir string) (string, error)
	Delete(ctx context.Context, url string) error
	List(ctx context.Context, dir string) ([]StoredObject, error)
}

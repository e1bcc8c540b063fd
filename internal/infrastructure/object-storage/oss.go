package objectstorage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/offer-fe/offer-be/config"
	"github.com/oklog/ulid/v2"
)

type OSSStorage struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
	Prefix     string
}

func CreateOSSStorage(conf config.OSSConfig) (*OSSStorage, error) {
	if conf.Endpoint == "" || conf.AccessKey == "" || conf.SecretKey == "" || conf.Bucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(conf.Endpoint, conf.AccessKey, conf.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(conf.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSStorage{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   conf.Endpoint,
		BucketName: conf.Bucket,
		PublicBase: strings.TrimRight(conf.PublicBase, "/"),
		Prefix:     strings.Trim(conf.Prefix, "/"),
	}, nil
}

func (s *OSSStorage) Upload(ctx context.Context, filename string, body io.Reader, dir string) (string, error) {
	key := s.buildObjectKey(dir, filename)

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		opts = append(opts, oss.ContentType(ct))
	}

	if err := s.Bucket.PutObject(key, body, opts...); err != nil {
		return "", err
	}

	return s.PublicURL(key), nil
}

func (s *OSSStorage) Delete(ctx context.Context, url string) error {
	key, err := s.ExtractKey(url)
	if err != nil {
		return err
	}

	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStorage) List(ctx context.Context, dir string) ([]StoredObject, error) {
	var objects []StoredObject

	marker := oss.Marker("")
	for {
		lor, err := s.Bucket.ListObjects(oss.Prefix(s.dirPrefix(dir)), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return nil, err
		}

		for _, obj := range lor.Objects {
			if obj.Key == "" {
				continue
			}
			objects = append(objects, StoredObject{
				URL:          s.PublicURL(obj.Key),
				LastModified: obj.LastModified,
			})
		}

		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}

	return objects, nil
}

func (s *OSSStorage) PublicURL(key string) string {
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}

	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSStorage) ExtractKey(publicURL string) (string, error) {
	if publicURL == "" {
		return "", fmt.Errorf("empty url")
	}

	if s.PublicBase != "" && strings.HasPrefix(publicURL, s.PublicBase+"/") {
		return strings.TrimPrefix(publicURL, s.PublicBase+"/"), nil
	}

	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}

	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

func (s *OSSStorage) dirPrefix(dir string) string {
	parts := make([]string, 0, 2)
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "/") + "/"
}

// buildObjectKey renders dir/slug_timestamp_ulid.ext under the configured prefix.
func (s *OSSStorage) buildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	ts := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s%s_%s_%s%s", s.dirPrefix(dir), slugify(base), ts, strings.ToLower(ulid.Make().String()), ext)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/offer-fe/offer-be/internal/dto"
	objectstorage "github.com/offer-fe/offer-be/internal/infrastructure/object-storage"
)

const testCDN = "https://cdn.test"

type memoryStorage struct {
	mu        sync.Mutex
	objects   map[string]time.Time
	uploads   int
	failOn    int
	uploadErr error
	deleted   []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string]time.Time)}
}

func (s *memoryStorage) Upload(ctx context.Context, filename string, body io.Reader, dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads++
	if s.failOn != 0 && s.uploads == s.failOn {
		return "", s.uploadErr
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/%s", testCDN, dir, filename)
	s.objects[url] = time.Now()
	return url, nil
}

func (s *memoryStorage) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[url]; !ok {
		return errors.New("no such object")
	}
	delete(s.objects, url)
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *memoryStorage) List(ctx context.Context, dir string) ([]objectstorage.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := fmt.Sprintf("%s/%s/", testCDN, dir)
	var res []objectstorage.StoredObject
	for url, modified := range s.objects {
		if strings.HasPrefix(url, prefix) {
			res = append(res, objectstorage.StoredObject{URL: url, LastModified: modified})
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].URL < res[j].URL })
	return res, nil
}

func (s *memoryStorage) put(url string, modified time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[url] = modified
}

func (s *memoryStorage) has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[url]
	return ok
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.KafkaMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return p.err
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		types = append(types, m.EventType)
	}
	return types
}

func (p *recordingPublisher) find(eventType string) (dto.KafkaMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.messages {
		if m.EventType == eventType {
			return m, true
		}
	}
	return dto.KafkaMessage{}, false
}

type notification struct {
	to    string
	title string
	price int64
}

type recordingNotifier struct {
	sent []notification
	err  error
}

func (n *recordingNotifier) NotifyOffer(ctx context.Context, to string, articleTitle string, price int64) error {
	n.sent = append(n.sent, notification{to: to, title: articleTitle, price: price})
	return n.err
}

func imageFile(name, content string) dto.ImageFile {
	return dto.ImageFile{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}
